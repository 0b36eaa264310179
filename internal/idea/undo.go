package idea

type actionType int

const (
	actionAdd actionType = iota
	actionRemove
	actionRetitle
)

type action struct {
	Type actionType
	Data any
}

// attachData describes a subtree hanging under ParentID at Rank.
type attachData struct {
	ParentID int
	Rank     int
	Idea     *Idea
}

type retitleData struct {
	ID       int
	NewTitle string
	OldTitle string
}

func (c *Content) record(t actionType, data any) {
	c.undoStack = append(c.undoStack, action{Type: t, Data: data})
	c.redoStack = c.redoStack[:0]
}

// CanUndo reports whether there is anything to undo.
func (c *Content) CanUndo() bool {
	return len(c.undoStack) > 0
}

// CanRedo reports whether there is anything to redo.
func (c *Content) CanRedo() bool {
	return len(c.redoStack) > 0
}

// Undo reverts the most recent mutation. It returns false when the history
// is empty.
func (c *Content) Undo() bool {
	if len(c.undoStack) == 0 {
		return false
	}
	last := len(c.undoStack) - 1
	a := c.undoStack[last]
	c.undoStack = c.undoStack[:last]

	switch a.Type {
	case actionAdd:
		c.detach(a.Data.(attachData))
	case actionRemove:
		c.attach(a.Data.(attachData))
	case actionRetitle:
		data := a.Data.(retitleData)
		c.setTitle(data.ID, data.OldTitle)
	}

	c.redoStack = append(c.redoStack, a)
	c.Changed()
	return true
}

// Redo reapplies the most recently undone mutation.
func (c *Content) Redo() bool {
	if len(c.redoStack) == 0 {
		return false
	}
	last := len(c.redoStack) - 1
	a := c.redoStack[last]
	c.redoStack = c.redoStack[:last]

	switch a.Type {
	case actionAdd:
		c.attach(a.Data.(attachData))
	case actionRemove:
		c.detach(a.Data.(attachData))
	case actionRetitle:
		data := a.Data.(retitleData)
		c.setTitle(data.ID, data.NewTitle)
	}

	c.undoStack = append(c.undoStack, a)
	c.Changed()
	return true
}

func (c *Content) attach(data attachData) {
	if parent := c.FindSubIdea(data.ParentID); parent != nil {
		parent.Ideas[data.Rank] = data.Idea
	}
}

func (c *Content) detach(data attachData) {
	if parent := c.FindSubIdea(data.ParentID); parent != nil {
		delete(parent.Ideas, data.Rank)
	}
}

func (c *Content) setTitle(id int, title string) {
	if i := c.FindSubIdea(id); i != nil {
		i.Title = title
	}
}
