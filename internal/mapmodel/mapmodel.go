// Package mapmodel keeps a mind map's visual layout in step with its idea
// tree. It publishes what changed between layouts, tracks a single selected
// node, and resolves keyboard navigation against the tree's ranks.
//
// Everything runs synchronously on the caller's goroutine: a command returns
// only after the tree change it caused has been reconciled and every listener
// has run.
package mapmodel

import (
	"errors"
	"log/slog"
	"math/rand/v2"

	"mapterm/internal/events"
	"mapterm/internal/layout"
)

const (
	componentName = "mapModel"
	defaultTitle  = "double click to edit"
)

var ErrNoIdea = errors.New("mapmodel: no idea tree set")

// IdeaTree is the part of the idea tree MapModel reads and mutates.
type IdeaTree interface {
	layout.Tree
	ParentOf(id int) (int, bool)
	RankOf(id int) (int, bool)
	AddSubIdea(parentID int, title string) error
	RemoveSubIdea(id int) error
	UpdateTitle(id int, title string) error
	OnChanged(fn func()) (unsubscribe func())
}

// LayoutCalculator derives a complete layout from a tree.
type LayoutCalculator func(IdeaTree) layout.Layout

// SelectionChange is the payload of NodeSelectionChanged.
type SelectionChange struct {
	ID       int
	Selected bool
}

// Analytic is the payload of the Analytic topic.
type Analytic struct {
	Component string
	Operation string
	Source    string
}

var (
	InputEnabledChanged  = events.NewTopic[bool]("inputEnabledChanged")
	NodeCreated          = events.NewTopic[layout.NodeView]("nodeCreated")
	NodeMoved            = events.NewTopic[layout.NodeView]("nodeMoved")
	NodeRemoved          = events.NewTopic[layout.NodeView]("nodeRemoved")
	NodeSelectionChanged = events.NewTopic[SelectionChange]("nodeSelectionChanged")
	NodeEditRequested    = events.NewScopedTopic[bool]("nodeEditRequested")
	MapScaleChanged      = events.NewTopic[bool]("mapScaleChanged")
	AnalyticEvent        = events.NewTopic[Analytic]("analytic")
)

type MapModel struct {
	calc   LayoutCalculator
	titles []string
	random func() float64
	logger *slog.Logger
	bus    events.Bus

	idea            IdeaTree
	unsubscribeIdea func()

	current layout.Layout
	// parents is the hierarchy as it stood at the last reconciliation, used to
	// find a removed node's former parent.
	parents map[int]int

	selected     int
	hasSelection bool
	scale        int
	inputEnabled bool
}

type Option func(*MapModel)

// WithTitles makes new ideas take a random title from titles instead of the
// placeholder.
func WithTitles(titles []string) Option {
	return func(m *MapModel) {
		m.titles = append([]string(nil), titles...)
	}
}

// WithRandom replaces the source of random numbers in [0, 1).
func WithRandom(random func() float64) Option {
	return func(m *MapModel) {
		m.random = random
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *MapModel) {
		m.logger = logger
	}
}

// New returns a model with no idea tree. A nil calc yields empty layouts.
func New(calc LayoutCalculator, opts ...Option) *MapModel {
	m := &MapModel{
		calc:         calc,
		random:       rand.Float64,
		inputEnabled: true,
		parents:      map[int]int{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.logger = m.logger.With(slog.String("component", "mapmodel"))
	return m
}

// Events returns the bus every MapModel topic is published on.
func (m *MapModel) Events() *events.Bus {
	return &m.bus
}

// SetIdea attaches tree, detaching any previous tree, and reconciles at once.
// The first layout is diffed against an empty one, so every node is reported
// as created.
func (m *MapModel) SetIdea(tree IdeaTree) {
	if m.unsubscribeIdea != nil {
		m.unsubscribeIdea()
		m.unsubscribeIdea = nil
	}
	m.idea = tree
	if tree != nil {
		m.unsubscribeIdea = tree.OnChanged(m.reconcile)
	}
	m.reconcile()
}

// Layout returns the most recent layout snapshot.
func (m *MapModel) Layout() layout.Layout {
	return m.current
}

// Selected returns the selected node id; ok is false when nothing is selected.
func (m *MapModel) Selected() (id int, ok bool) {
	return m.selected, m.hasSelection
}

func (m *MapModel) InputEnabled() bool {
	return m.inputEnabled
}

// Scale returns the number of net scale-up steps.
func (m *MapModel) Scale() int {
	return m.scale
}

func (m *MapModel) analytic(operation, source string) {
	m.logger.Debug("analytic", slog.String("operation", operation), slog.String("source", source))
	events.Publish(&m.bus, AnalyticEvent, Analytic{Component: componentName, Operation: operation, Source: source})
}
