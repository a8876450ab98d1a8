package state

import (
	"fmt"
	"slices"
	"sync"

	"InkBoard/internal/geom"
	"InkBoard/internal/history"
	"InkBoard/internal/ink"
	"InkBoard/internal/logging"

	"github.com/google/uuid"
)

// Action is an undoable edit over shape handles.
type Action = history.Action[ShapeID]

// Board is the shape table of one drawing surface. Local edits go through
// the history log; ops from other sites are merged with Apply and are never
// undone here.
type Board struct {
	mu      sync.RWMutex
	site    string
	clock   Clock
	engine  geom.Engine
	color   string
	shapes  map[ShapeID]*Shape
	order   []ShapeID
	history *history.Log[ShapeID]
	ops     []Op
	applied map[string]struct{}

	// OnLocalOp receives every op produced by a local edit, for broadcast.
	OnLocalOp func(Op)
	// OnChange runs after any change to the visible shapes.
	OnChange func()
}

// NewBoard creates an empty board with a fresh site ID. Local shapes are
// drawn with color.
func NewBoard(engine geom.Engine, color string) *Board {
	return &Board{
		site:    uuid.NewString(),
		engine:  engine,
		color:   color,
		shapes:  make(map[ShapeID]*Shape),
		history: history.New[ShapeID](),
		applied: make(map[string]struct{}),
	}
}

func (b *Board) Site() string { return b.site }

// AddSegment draws the segment between prev and curr and records it. A nil
// prev starts a new stroke, which becomes a new undo step.
func (b *Board) AddSegment(prev *geom.Sample, curr geom.Sample) ShapeID {
	id := uuid.New()

	b.mu.Lock()
	op := Op{
		ID:      uuid.NewString(),
		Type:    OpInsertShape,
		Site:    b.site,
		Lamport: b.clock.Tick(),
		Shape:   id,
		Color:   b.color,
		Scale:   b.engine.Scale(),
		Curr:    curr,
	}
	if prev != nil {
		p := *prev
		op.Prev = &p
	}
	b.record(op)
	b.insert(op)
	b.history.RecordAdd(id, prev == nil)
	b.mu.Unlock()

	logging.For("board").Debug("segment added", "shape", id, "stroke_start", prev == nil)
	b.emit(op)
	return id
}

// Undo reverts the newest local stroke. It reports false when there is
// nothing to undo.
func (b *Board) Undo() (Action, bool) {
	return b.replay("undo", (*history.Log[ShapeID]).Undo, true)
}

// Redo re-applies the newest undone stroke.
func (b *Board) Redo() (Action, bool) {
	return b.replay("redo", (*history.Log[ShapeID]).Redo, false)
}

func (b *Board) replay(what string, step func(*history.Log[ShapeID]) *Action, reverse bool) (Action, bool) {
	b.mu.Lock()
	a := step(b.history)
	if a == nil {
		b.mu.Unlock()
		return Action{}, false
	}
	hide, show := a.Added, a.Removed
	if !reverse {
		hide, show = a.Removed, a.Added
	}
	op := b.visibilityOp(hide, show)
	b.record(op)
	b.setVisible(op)
	out := Action{Added: slices.Clone(a.Added), Removed: slices.Clone(a.Removed)}
	undoDepth, redoDepth := b.history.UndoDepth(), b.history.RedoDepth()
	b.mu.Unlock()

	logging.For("board").Info(what, "added", len(out.Added), "removed", len(out.Removed),
		"undo_depth", undoDepth, "redo_depth", redoDepth)
	b.emit(op)
	return out, true
}

// Clear hides every visible shape drawn on this site as a single undo step.
func (b *Board) Clear() bool {
	b.mu.Lock()
	var ids []ShapeID
	for _, id := range b.order {
		if s := b.shapes[id]; s.Visible && s.Owner == b.site {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		b.mu.Unlock()
		return false
	}
	b.history.Record(Action{Removed: ids})
	op := b.visibilityOp(ids, nil)
	b.record(op)
	b.setVisible(op)
	b.mu.Unlock()

	logging.For("board").Info("cleared", "shapes", len(ids))
	b.emit(op)
	return true
}

// Erase hides the topmost visible local shape under p as its own undo step.
func (b *Board) Erase(p geom.Point) (ShapeID, bool) {
	b.mu.Lock()
	id, ok := b.shapeAt(p)
	if !ok {
		b.mu.Unlock()
		return ShapeID{}, false
	}
	b.history.RecordRemove(id, true)
	op := b.visibilityOp([]ShapeID{id}, nil)
	b.record(op)
	b.setVisible(op)
	b.mu.Unlock()

	logging.For("board").Info("erased", "shape", id)
	b.emit(op)
	return id, true
}

// ShapeAt returns the topmost visible local shape containing p, the one
// Erase would hide.
func (b *Board) ShapeAt(p geom.Point) (ShapeID, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.shapeAt(p)
}

func (b *Board) shapeAt(p geom.Point) (ShapeID, bool) {
	for i := len(b.order) - 1; i >= 0; i-- {
		s := b.shapes[b.order[i]]
		if !s.Visible || s.Owner != b.site {
			continue
		}
		if s.Geometry.Bounds().Contains(p) && s.Geometry.Contains(p) {
			return s.ID, true
		}
	}
	return ShapeID{}, false
}

// Apply merges an op from another site. It returns false for ops that were
// already applied.
func (b *Board) Apply(op Op) bool {
	b.mu.Lock()
	if _, seen := b.applied[op.ID]; seen {
		b.mu.Unlock()
		return false
	}
	b.clock.Update(op.Lamport)
	switch op.Type {
	case OpInsertShape:
		if _, exists := b.shapes[op.Shape]; exists {
			b.mu.Unlock()
			logging.For("board").Warn("duplicate shape ignored", "shape", op.Shape, "site", op.Site)
			return false
		}
		if err := validInsert(op); err != nil {
			b.mu.Unlock()
			logging.For("board").Warn("insert rejected", "shape", op.Shape, "site", op.Site, "err", err)
			return false
		}
		b.insert(op)
	case OpSetVisibility:
		b.setVisible(op)
	default:
		b.mu.Unlock()
		logging.For("board").Warn("unknown op", "type", op.Type, "site", op.Site)
		return false
	}
	b.record(op)
	b.mu.Unlock()

	logging.For("board").Debug("remote op applied", "type", op.Type, "site", op.Site, "lamport", op.Lamport)
	if b.OnChange != nil {
		b.OnChange()
	}
	return true
}

// Ops returns every op applied to the board, in order. Replaying them on an
// empty board reproduces the current shapes.
func (b *Board) Ops() []Op {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.ops)
}

// Visible returns the shapes to draw, oldest first.
func (b *Board) Visible() []Shape {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Shape, 0, len(b.order))
	for _, id := range b.order {
		if s := b.shapes[id]; s.Visible {
			out = append(out, *s)
		}
	}
	return out
}

// Len returns the number of shapes in the table, hidden ones included.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// Extent returns the union of the bounds of shapes. It reports false for
// an empty slice.
func Extent(shapes []Shape) (geom.Rect, bool) {
	if len(shapes) == 0 {
		return geom.Rect{}, false
	}
	r := shapes[0].Geometry.Bounds()
	for _, s := range shapes[1:] {
		r = r.Union(s.Geometry.Bounds())
	}
	return r, true
}

func (b *Board) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.CanUndo()
}

func (b *Board) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.CanRedo()
}

// Reset empties the board and its history, keeping the site ID. It is
// called when the surface is torn down and does not run OnChange.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shapes = make(map[ShapeID]*Shape)
	b.order = nil
	b.ops = nil
	b.applied = make(map[string]struct{})
	b.history.Reset()
	logging.For("board").Debug("board reset", "lamport", b.clock.Now())
}

func (b *Board) record(op Op) {
	b.applied[op.ID] = struct{}{}
	b.ops = append(b.ops, op)
}

func (b *Board) insert(op Op) {
	b.shapes[op.Shape] = &Shape{
		ID:       op.Shape,
		Owner:    op.Site,
		Color:    op.Color,
		Geometry: geom.Engine{RadiusScale: op.Scale}.Segment(op.Prev, op.Curr),
		Visible:  true,
		Lamport:  op.Lamport,
	}
	b.order = append(b.order, op.Shape)
}

func validInsert(op Op) error {
	if _, err := ink.Parse(op.Color); err != nil {
		return err
	}
	if op.Scale < 0 {
		return fmt.Errorf("negative radius scale %v", op.Scale)
	}
	return nil
}

func (b *Board) visibilityOp(hide, show []ShapeID) Op {
	return Op{
		ID:      uuid.NewString(),
		Type:    OpSetVisibility,
		Site:    b.site,
		Lamport: b.clock.Tick(),
		Hide:    slices.Clone(hide),
		Show:    slices.Clone(show),
	}
}

// setVisible applies the hide and show lists of op. Unknown shapes are
// skipped.
func (b *Board) setVisible(op Op) {
	for _, id := range op.Hide {
		if s, ok := b.shapes[id]; ok {
			s.Visible = false
		}
	}
	for _, id := range op.Show {
		if s, ok := b.shapes[id]; ok {
			s.Visible = true
		}
	}
}

func (b *Board) emit(op Op) {
	if b.OnLocalOp != nil {
		b.OnLocalOp(op)
	}
	if b.OnChange != nil {
		b.OnChange()
	}
}
