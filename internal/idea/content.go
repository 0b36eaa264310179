// Package idea implements the editable idea tree behind a mind map.
//
// Children are keyed by a signed rank: negative ranks sit on the left of the
// center node, positive ranks on the right, and the magnitude orders siblings.
// Every successful mutation fires a single "changed" notification.
package idea

import (
	"errors"
	"fmt"

	"mapterm/internal/events"
)

var (
	ErrIdeaNotFound = errors.New("idea not found")
	ErrRootRemoval  = errors.New("the central idea cannot be removed")
)

var changed = events.NewTopic[struct{}]("changed")

// Idea is a node of the tree.
type Idea struct {
	ID    int
	Title string
	Ideas map[int]*Idea
}

// Content owns an idea tree and its edit history.
type Content struct {
	root      *Idea
	bus       events.Bus
	undoStack []action
	redoStack []action
}

// New wraps root. Missing child maps are created; ids are taken as given.
func New(root *Idea) *Content {
	if root == nil {
		root = &Idea{ID: 1}
	}
	ensureMaps(root)
	return &Content{root: root}
}

func ensureMaps(i *Idea) {
	if i.Ideas == nil {
		i.Ideas = make(map[int]*Idea)
	}
	for _, child := range i.Ideas {
		ensureMaps(child)
	}
}

// OnChanged registers fn to run after every mutation, undo and redo.
func (c *Content) OnChanged(fn func()) (unsubscribe func()) {
	return events.Subscribe(&c.bus, changed, func(struct{}) { fn() })
}

// Changed fires the change notification without mutating anything.
func (c *Content) Changed() {
	events.Publish(&c.bus, changed, struct{}{})
}

func (c *Content) RootID() int {
	return c.root.ID
}

// Title returns the title of id, or "" when id is unknown.
func (c *Content) Title(id int) string {
	if i := c.FindSubIdea(id); i != nil {
		return i.Title
	}
	return ""
}

// Children returns a rank to id map of the direct children of id.
func (c *Content) Children(id int) map[int]int {
	i := c.FindSubIdea(id)
	if i == nil {
		return nil
	}
	out := make(map[int]int, len(i.Ideas))
	for rank, child := range i.Ideas {
		out[rank] = child.ID
	}
	return out
}

// ParentOf returns the parent id of id. The root has no parent.
func (c *Content) ParentOf(id int) (int, bool) {
	parent, _ := c.findParent(c.root, id)
	if parent == nil {
		return 0, false
	}
	return parent.ID, true
}

// RankOf returns the rank id holds under its parent.
func (c *Content) RankOf(id int) (int, bool) {
	parent, rank := c.findParent(c.root, id)
	if parent == nil {
		return 0, false
	}
	return rank, true
}

// FindSubIdea returns the idea with id anywhere in the tree, or nil.
func (c *Content) FindSubIdea(id int) *Idea {
	return find(c.root, id)
}

func find(i *Idea, id int) *Idea {
	if i.ID == id {
		return i
	}
	for _, child := range i.Ideas {
		if found := find(child, id); found != nil {
			return found
		}
	}
	return nil
}

func (c *Content) findParent(i *Idea, id int) (*Idea, int) {
	for rank, child := range i.Ideas {
		if child.ID == id {
			return i, rank
		}
		if parent, r := c.findParent(child, id); parent != nil {
			return parent, r
		}
	}
	return nil, 0
}

// AddSubIdea appends a new child titled title under parentID.
func (c *Content) AddSubIdea(parentID int, title string) error {
	parent := c.FindSubIdea(parentID)
	if parent == nil {
		return fmt.Errorf("add sub idea to %d: %w", parentID, ErrIdeaNotFound)
	}
	child := &Idea{ID: c.maxID() + 1, Title: title, Ideas: make(map[int]*Idea)}
	rank := c.nextChildRank(parent)
	parent.Ideas[rank] = child

	c.record(actionAdd, attachData{ParentID: parentID, Rank: rank, Idea: child})
	c.Changed()
	return nil
}

// RemoveSubIdea detaches id and its whole subtree.
func (c *Content) RemoveSubIdea(id int) error {
	if id == c.root.ID {
		return ErrRootRemoval
	}
	parent, rank := c.findParent(c.root, id)
	if parent == nil {
		return fmt.Errorf("remove sub idea %d: %w", id, ErrIdeaNotFound)
	}
	removed := parent.Ideas[rank]
	delete(parent.Ideas, rank)

	c.record(actionRemove, attachData{ParentID: parent.ID, Rank: rank, Idea: removed})
	c.Changed()
	return nil
}

// UpdateTitle renames id.
func (c *Content) UpdateTitle(id int, title string) error {
	i := c.FindSubIdea(id)
	if i == nil {
		return fmt.Errorf("update title of %d: %w", id, ErrIdeaNotFound)
	}
	old := i.Title
	i.Title = title

	c.record(actionRetitle, retitleData{ID: id, NewTitle: title, OldTitle: old})
	c.Changed()
	return nil
}

// nextChildRank balances the center node's children between both sides and
// appends everywhere else.
func (c *Content) nextChildRank(parent *Idea) int {
	sign := 1
	if parent.ID == c.root.ID {
		positive, negative := 0, 0
		for rank := range parent.Ideas {
			if rank < 0 {
				negative++
			} else {
				positive++
			}
		}
		if negative < positive {
			sign = -1
		}
	}
	return sign * (maxMagnitude(parent.Ideas, sign) + 1)
}

func maxMagnitude(ideas map[int]*Idea, sign int) int {
	best := 0
	for rank := range ideas {
		if rank*sign > best {
			best = rank * sign
		}
	}
	return best
}

func (c *Content) maxID() int {
	var walk func(*Idea) int
	walk = func(i *Idea) int {
		best := i.ID
		for _, child := range i.Ideas {
			best = max(best, walk(child))
		}
		return best
	}
	return walk(c.root)
}
