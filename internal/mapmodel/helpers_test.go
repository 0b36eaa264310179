package mapmodel

import (
	"mapterm/internal/events"
	"mapterm/internal/idea"
	"mapterm/internal/layout"
)

// recorder collects everything a model publishes.
type recorder struct {
	created    []layout.NodeView
	moved      []layout.NodeView
	removed    []layout.NodeView
	sequence   []string
	selections []SelectionChange
	analytics  []Analytic
	scale      []bool
	input      []bool
}

func record(m *MapModel) *recorder {
	r := &recorder{}
	bus := m.Events()
	events.Subscribe(bus, NodeCreated, func(n layout.NodeView) {
		r.created = append(r.created, n)
		r.sequence = append(r.sequence, "created")
	})
	events.Subscribe(bus, NodeMoved, func(n layout.NodeView) {
		r.moved = append(r.moved, n)
		r.sequence = append(r.sequence, "moved")
	})
	events.Subscribe(bus, NodeRemoved, func(n layout.NodeView) {
		r.removed = append(r.removed, n)
		r.sequence = append(r.sequence, "removed")
	})
	events.Subscribe(bus, NodeSelectionChanged, func(s SelectionChange) { r.selections = append(r.selections, s) })
	events.Subscribe(bus, AnalyticEvent, func(a Analytic) { r.analytics = append(r.analytics, a) })
	events.Subscribe(bus, MapScaleChanged, func(up bool) { r.scale = append(r.scale, up) })
	events.Subscribe(bus, InputEnabledChanged, func(on bool) { r.input = append(r.input, on) })
	return r
}

func (r *recorder) lastSelection() (SelectionChange, bool) {
	if len(r.selections) == 0 {
		return SelectionChange{}, false
	}
	return r.selections[len(r.selections)-1], true
}

func (r *recorder) hasSelection(want SelectionChange) bool {
	for _, s := range r.selections {
		if s == want {
			return true
		}
	}
	return false
}

func ids(views []layout.NodeView) []int {
	out := make([]int, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

// fixedLayout returns a calculator that ignores the tree.
func fixedLayout(nodes map[int]layout.NodeView) LayoutCalculator {
	return func(IdeaTree) layout.Layout {
		return layout.Layout{Nodes: nodes}
	}
}

func emptyLayout(IdeaTree) layout.Layout {
	return layout.Layout{}
}

// navigationTree is a center with two children on each side and one
// grandchild under the outer right child.
func navigationTree() *idea.Content {
	return idea.New(&idea.Idea{
		ID:    1,
		Title: "center",
		Ideas: map[int]*idea.Idea{
			-2: {ID: 2, Title: "lower left"},
			-1: {ID: 3, Title: "upper left"},
			1:  {ID: 4, Title: "upper right"},
			2: {ID: 5, Title: "lower right", Ideas: map[int]*idea.Idea{
				1: {ID: 6},
			}},
		},
	})
}

func navigationLayout() map[int]layout.NodeView {
	return map[int]layout.NodeView{
		1: {ID: 1, X: 0},
		2: {ID: 2, X: -10},
		3: {ID: 3, X: -10},
		4: {ID: 4, X: 10},
		5: {ID: 5, X: 10},
	}
}

type addCall struct {
	parent int
	title  string
}

// spyTree records mutations without applying them.
type spyTree struct {
	*idea.Content
	adds    []addCall
	removes []int
	renames []addCall
}

func (s *spyTree) AddSubIdea(parentID int, title string) error {
	s.adds = append(s.adds, addCall{parent: parentID, title: title})
	return nil
}

func (s *spyTree) RemoveSubIdea(id int) error {
	s.removes = append(s.removes, id)
	return nil
}

func (s *spyTree) UpdateTitle(id int, title string) error {
	s.renames = append(s.renames, addCall{parent: id, title: title})
	return nil
}
