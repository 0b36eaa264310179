package mapmodel

import (
	"testing"

	"mapterm/internal/layout"
)

func navigationModel(t *testing.T) (*MapModel, *recorder) {
	t.Helper()
	m := New(fixedLayout(navigationLayout()))
	m.SetIdea(navigationTree())
	return m, record(m)
}

func TestSelectNodePublishesSelection(t *testing.T) {
	m, rec := navigationModel(t)

	m.SelectNode(2)

	if len(rec.selections) != 1 || rec.selections[0] != (SelectionChange{ID: 2, Selected: true}) {
		t.Errorf("expected (2, true), got %v", rec.selections)
	}
	if id, ok := m.Selected(); !ok || id != 2 {
		t.Errorf("expected 2 selected, got %d (%v)", id, ok)
	}
}

func TestSelectNodeDeselectsPrevious(t *testing.T) {
	m, rec := navigationModel(t)
	m.SelectNode(1)
	rec.selections = nil

	m.SelectNode(2)

	want := []SelectionChange{{ID: 1, Selected: false}, {ID: 2, Selected: true}}
	if len(rec.selections) != 2 || rec.selections[0] != want[0] || rec.selections[1] != want[1] {
		t.Errorf("expected %v, got %v", want, rec.selections)
	}
}

func TestSelectingTheSelectedNodeIsANoop(t *testing.T) {
	m, rec := navigationModel(t)

	m.SelectNode(3)
	m.SelectNode(3)

	if len(rec.selections) != 1 {
		t.Errorf("expected exactly one selection event, got %v", rec.selections)
	}
}

func TestRemovingSelectedNodeSelectsParent(t *testing.T) {
	m, rec := navigationModel(t)
	m.SelectNode(6)

	if err := m.RemoveSubIdea("toolbar"); err != nil {
		t.Fatalf("RemoveSubIdea: %v", err)
	}

	if !rec.hasSelection(SelectionChange{ID: 5, Selected: true}) {
		t.Errorf("expected parent 5 to be selected, got %v", rec.selections)
	}
	if id, _ := m.Selected(); id != 5 {
		t.Errorf("expected 5 selected, got %d", id)
	}
}

func TestRemovingTopLevelNodeSelectsCenter(t *testing.T) {
	m := New(func(tree IdeaTree) layout.Layout { return layout.Calculate(tree) })
	m.SetIdea(navigationTree())
	rec := record(m)
	m.SelectNode(3)

	if err := m.RemoveSubIdea("keyboard"); err != nil {
		t.Fatal(err)
	}

	if last, _ := rec.lastSelection(); last != (SelectionChange{ID: 1, Selected: true}) {
		t.Errorf("expected center selected, got %v", rec.selections)
	}
}

func TestRemovingAncestorSelectsNearestSurvivor(t *testing.T) {
	m := New(func(tree IdeaTree) layout.Layout { return layout.Calculate(tree) })
	tree := navigationTree()
	m.SetIdea(tree)
	m.SelectNode(6)

	if err := tree.RemoveSubIdea(5); err != nil {
		t.Fatal(err)
	}

	if id, ok := m.Selected(); !ok || id != 1 {
		t.Errorf("expected center selected after its subtree went away, got %d (%v)", id, ok)
	}
}

func TestSelectionWithoutFormerParentIsCleared(t *testing.T) {
	m, rec := navigationModel(t)
	tree := navigationTree()
	m.SetIdea(tree)
	m.SelectNode(123)
	rec.selections = nil

	tree.Changed()

	if _, ok := m.Selected(); ok {
		t.Error("selection of an unknown node should be cleared")
	}
	if len(rec.selections) != 1 || rec.selections[0] != (SelectionChange{ID: 123, Selected: false}) {
		t.Errorf("expected (123, false), got %v", rec.selections)
	}
}

func TestSelectionSurvivesWhenNodeRemains(t *testing.T) {
	m, rec := navigationModel(t)
	tree := navigationTree()
	m.SetIdea(tree)
	m.SelectNode(4)
	rec.selections = nil

	_ = tree.UpdateTitle(4, "renamed")

	if len(rec.selections) != 0 {
		t.Errorf("selection changed unexpectedly: %v", rec.selections)
	}
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name     string
		selected int // 0 leaves the map unselected
		move     func(*MapModel)
		want     int // 0 means no selection event
	}{
		{"right from nothing enters rank 1", 0, func(m *MapModel) { m.SelectNodeRight("toolbar") }, 4},
		{"left from nothing enters rank -1", 0, func(m *MapModel) { m.SelectNodeLeft("toolbar") }, 3},
		{"right from center", 1, func(m *MapModel) { m.SelectNodeRight("toolbar") }, 4},
		{"left from center", 1, func(m *MapModel) { m.SelectNodeLeft("toolbar") }, 3},
		{"right from left side returns to parent", 3, func(m *MapModel) { m.SelectNodeRight("toolbar") }, 1},
		{"left from right side returns to parent", 5, func(m *MapModel) { m.SelectNodeLeft("toolbar") }, 1},
		{"up selects smaller rank", 5, func(m *MapModel) { m.SelectNodeUp("toolbar") }, 4},
		{"down selects larger rank", 4, func(m *MapModel) { m.SelectNodeDown("toolbar") }, 5},
		{"up on left side", 2, func(m *MapModel) { m.SelectNodeUp("toolbar") }, 3},
		{"down on left side", 3, func(m *MapModel) { m.SelectNodeDown("toolbar") }, 2},
		{"up at innermost is a noop", 4, func(m *MapModel) { m.SelectNodeUp("toolbar") }, 0},
		{"down at outermost is a noop", 5, func(m *MapModel) { m.SelectNodeDown("toolbar") }, 0},
		{"up from center is a noop", 1, func(m *MapModel) { m.SelectNodeUp("toolbar") }, 0},
		{"down with nothing selected is a noop", 0, func(m *MapModel) { m.SelectNodeDown("toolbar") }, 0},
		{"only child has no siblings", 6, func(m *MapModel) { m.SelectNodeDown("toolbar") }, 0},
		{"deep right-side node steps back toward center on left", 6, func(m *MapModel) { m.SelectNodeLeft("toolbar") }, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, rec := navigationModel(t)
			if tt.selected != 0 {
				m.SelectNode(tt.selected)
			}
			rec.selections = nil

			tt.move(m)

			if tt.want == 0 {
				if len(rec.selections) != 0 {
					t.Errorf("expected no selection change, got %v", rec.selections)
				}
				return
			}
			if !rec.hasSelection(SelectionChange{ID: tt.want, Selected: true}) {
				t.Errorf("expected (%d, true), got %v", tt.want, rec.selections)
			}
		})
	}
}

// Moving further out on the side the selection is already on has no agreed
// target yet; until it does, the selection stays put.
func TestSameSideHorizontalMoveIsUndecidedNoop(t *testing.T) {
	for _, tc := range []struct {
		selected int
		move     func(*MapModel)
	}{
		{4, func(m *MapModel) { m.SelectNodeRight("toolbar") }},
		{5, func(m *MapModel) { m.SelectNodeRight("toolbar") }},
		{3, func(m *MapModel) { m.SelectNodeLeft("toolbar") }},
	} {
		m, rec := navigationModel(t)
		m.SelectNode(tc.selected)
		rec.selections = nil

		tc.move(m)

		if len(rec.selections) != 0 {
			t.Errorf("from %d: expected no selection change, got %v", tc.selected, rec.selections)
		}
	}
}

func TestNavigationWithoutTargetIsNoop(t *testing.T) {
	m := New(emptyLayout)
	m.SetIdea(navigationTree())
	rec := record(m)
	m.SelectNode(1)
	rec.selections = nil

	lonely := New(emptyLayout)
	lonelyRec := record(lonely)
	lonely.SelectNodeRight("toolbar")
	if len(lonelyRec.selections) != 0 {
		t.Errorf("navigation without a tree selected something: %v", lonelyRec.selections)
	}

	m.SelectNodeUp("toolbar")
	if len(rec.selections) != 0 {
		t.Errorf("unexpected selection %v", rec.selections)
	}
}
