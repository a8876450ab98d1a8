// Package input turns pointer and keyboard events into board edits.
package input

import (
	"InkBoard/internal/geom"
	"InkBoard/internal/logging"
	"InkBoard/internal/state"
)

// Mode selects which handler table receives events.
type Mode int

const (
	ModeDraw Mode = iota
	ModeMenu
)

func (m Mode) String() string {
	switch m {
	case ModeDraw:
		return "draw"
	case ModeMenu:
		return "menu"
	}
	return "unknown"
}

// Phase is the stroke state within draw mode.
type Phase int

const (
	Idle Phase = iota
	Drawing
)

type EventKind int

const (
	Down EventKind = iota
	Move
	Up
	OpenMenu
	Dismiss
	Undo
	Redo
)

// Event is one host input. Sample is meaningful for pointer events.
type Event struct {
	Kind   EventKind
	Sample geom.Sample
}

// Surface is the part of the board the controller edits.
type Surface interface {
	AddSegment(prev *geom.Sample, curr geom.Sample) state.ShapeID
	Undo() (state.Action, bool)
	Redo() (state.Action, bool)
}

type handler func(c *Controller, ev Event)

var handlers = map[Mode]map[EventKind]handler{
	ModeDraw: {
		Down:     (*Controller).beginStroke,
		Move:     (*Controller).continueStroke,
		Up:       (*Controller).endStroke,
		OpenMenu: (*Controller).openMenu,
		Undo:     (*Controller).undo,
		Redo:     (*Controller).redo,
	},
	ModeMenu: {
		Down:    (*Controller).closeMenu,
		Dismiss: (*Controller).closeMenu,
		Undo:    (*Controller).undo,
		Redo:    (*Controller).redo,
	},
}

// Controller owns the input state of one surface. Events must be delivered
// from a single goroutine.
type Controller struct {
	surface Surface
	mode    Mode
	phase   Phase
	last    geom.Sample

	// OnMenu is called with the pointer position when the menu opens.
	OnMenu func(at geom.Point)
}

func NewController(s Surface) *Controller {
	return &Controller{surface: s}
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) Phase() Phase { return c.phase }

// Handle dispatches ev through the table of the current mode. It reports
// false when the mode has no handler for the event.
func (c *Controller) Handle(ev Event) bool {
	h, ok := handlers[c.mode][ev.Kind]
	if !ok {
		return false
	}
	h(c, ev)
	return true
}

func (c *Controller) beginStroke(ev Event) {
	c.surface.AddSegment(nil, ev.Sample)
	c.last = ev.Sample
	c.phase = Drawing
}

func (c *Controller) continueStroke(ev Event) {
	if c.phase != Drawing {
		return
	}
	prev := c.last
	c.surface.AddSegment(&prev, ev.Sample)
	c.last = ev.Sample
}

func (c *Controller) endStroke(ev Event) {
	if c.phase != Drawing {
		return
	}
	c.continueStroke(ev)
	c.phase = Idle
}

func (c *Controller) openMenu(ev Event) {
	c.phase = Idle
	c.mode = ModeMenu
	logging.For("input").Debug("mode changed", "mode", c.mode)
	if c.OnMenu != nil {
		c.OnMenu(ev.Sample.Point())
	}
}

func (c *Controller) closeMenu(Event) {
	c.mode = ModeDraw
	logging.For("input").Debug("mode changed", "mode", c.mode)
}

// Undo and redo end the stroke in progress; later moves must not attach to
// whatever stroke is then on top of the history.
func (c *Controller) undo(Event) {
	c.phase = Idle
	c.surface.Undo()
}

func (c *Controller) redo(Event) {
	c.phase = Idle
	c.surface.Redo()
}
