package layout

import (
	"testing"
)

type fakeTree struct {
	root     int
	titles   map[int]string
	children map[int]map[int]int
}

func (f fakeTree) RootID() int                 { return f.root }
func (f fakeTree) Title(id int) string         { return f.titles[id] }
func (f fakeTree) Children(id int) map[int]int { return f.children[id] }

func sampleTree() fakeTree {
	return fakeTree{
		root: 1,
		titles: map[int]string{
			1: "center", 2: "lower left", 3: "upper left",
			4: "upper right", 5: "lower right", 6: "leaf",
		},
		children: map[int]map[int]int{
			1: {-2: 2, -1: 3, 1: 4, 2: 5},
			5: {1: 6},
		},
	}
}

func TestCalculatePlacesSidesByRankSign(t *testing.T) {
	l := Calculate(sampleTree())

	if len(l.Nodes) != 6 {
		t.Fatalf("expected 6 nodes, got %d", len(l.Nodes))
	}
	center := l.Nodes[1]
	for _, id := range []int{4, 5, 6} {
		if l.Nodes[id].X <= center.X {
			t.Errorf("node %d should be right of center: %+v", id, l.Nodes[id])
		}
	}
	for _, id := range []int{2, 3} {
		if l.Nodes[id].X >= center.X {
			t.Errorf("node %d should be left of center: %+v", id, l.Nodes[id])
		}
	}
	if l.Nodes[6].X <= l.Nodes[5].X {
		t.Error("grandchild should continue outward")
	}
}

func TestCalculateOrdersByRankMagnitude(t *testing.T) {
	l := Calculate(sampleTree())

	if l.Nodes[4].Y >= l.Nodes[5].Y {
		t.Errorf("rank 1 should sit above rank 2: %d vs %d", l.Nodes[4].Y, l.Nodes[5].Y)
	}
	if l.Nodes[3].Y >= l.Nodes[2].Y {
		t.Errorf("rank -1 should sit above rank -2: %d vs %d", l.Nodes[3].Y, l.Nodes[2].Y)
	}
}

func TestCalculateRecordsHierarchy(t *testing.T) {
	l := Calculate(sampleTree())

	tests := []struct {
		id, parent, level int
	}{
		{1, 0, 0},
		{3, 1, 1},
		{6, 5, 2},
	}
	for _, tt := range tests {
		n := l.Nodes[tt.id]
		if n.Parent != tt.parent || n.Level != tt.level {
			t.Errorf("node %d: expected parent %d level %d, got %d %d", tt.id, tt.parent, tt.level, n.Parent, n.Level)
		}
	}
}

func TestSiblingsDoNotOverlap(t *testing.T) {
	tree := fakeTree{
		root:     1,
		titles:   map[int]string{1: "c", 2: "a\nb\nc", 3: "d", 4: "e"},
		children: map[int]map[int]int{1: {1: 2, 2: 3, 3: 4}},
	}
	l := Calculate(tree)
	ids := []int{2, 3, 4}
	for i := 0; i < len(ids)-1; i++ {
		a, b := l.Nodes[ids[i]], l.Nodes[ids[i+1]]
		if a.Y+a.Height > b.Y {
			t.Errorf("node %d overlaps node %d", a.ID, b.ID)
		}
	}
}

func TestNodeSizeFitsTitle(t *testing.T) {
	n := box(1, "a much longer title\nsecond")
	if n.Width != len("a much longer title")+2 {
		t.Errorf("unexpected width %d", n.Width)
	}
	if n.Height != 4 {
		t.Errorf("unexpected height %d", n.Height)
	}
	if short := box(2, "x"); short.Width != minNodeWidth {
		t.Errorf("expected minimum width %d, got %d", minNodeWidth, short.Width)
	}
}

func TestNodeViewEqual(t *testing.T) {
	a := NodeView{ID: 1, X: 1, Title: "a", Attrs: map[string]string{"color": "red"}}
	b := a
	b.Attrs = map[string]string{"color": "red"}
	if !a.Equal(b) {
		t.Error("structurally identical views should be equal")
	}
	b.Attrs["color"] = "blue"
	if a.Equal(b) {
		t.Error("differing attrs should not be equal")
	}
	c := a
	c.X = 2
	if a.Equal(c) {
		t.Error("differing coordinates should not be equal")
	}
}

func TestBoundsAndIDs(t *testing.T) {
	if _, _, _, _, ok := (Layout{}).Bounds(); ok {
		t.Error("empty layout should have no bounds")
	}
	l := Layout{Nodes: map[int]NodeView{
		3: {ID: 3, X: -5, Y: 2, Width: 8, Height: 3},
		1: {ID: 1, X: 4, Y: -1, Width: 10, Height: 3},
	}}
	minX, minY, maxX, maxY, ok := l.Bounds()
	if !ok || minX != -5 || minY != -1 || maxX != 14 || maxY != 5 {
		t.Errorf("unexpected bounds %d %d %d %d", minX, minY, maxX, maxY)
	}
	ids := l.IDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("unexpected ids %v", ids)
	}
	if !l.Has(3) || l.Has(2) {
		t.Error("Has reported wrong membership")
	}
}
