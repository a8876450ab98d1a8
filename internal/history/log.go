// Package history keeps the undo and redo stacks of a drawing surface.
package history

// Action is one undoable edit: the handles it made visible and the ones it
// hid. Undoing an action reverses both lists.
type Action[H comparable] struct {
	Added   []H `json:"added"`
	Removed []H `json:"removed"`
}

// Log groups shape insertions into strokes and replays them backwards and
// forwards. A Log is owned by a single surface and is not safe for
// concurrent use.
type Log[H comparable] struct {
	undo []*Action[H]
	redo []*Action[H]
}

func New[H comparable]() *Log[H] {
	return &Log[H]{}
}

// RecordAdd appends h to the stroke on top of the undo stack. A new action
// is opened first when strokeStart is set or there is nothing to append to,
// so one undo removes a whole stroke.
func (l *Log[H]) RecordAdd(h H, strokeStart bool) {
	a := l.top(strokeStart)
	a.Added = append(a.Added, h)
}

// RecordRemove is RecordAdd for handles hidden by an edit.
func (l *Log[H]) RecordRemove(h H, groupStart bool) {
	a := l.top(groupStart)
	a.Removed = append(a.Removed, h)
}

// Record pushes a as a complete action of its own.
func (l *Log[H]) Record(a Action[H]) {
	l.redo = nil
	l.undo = append(l.undo, &a)
}

func (l *Log[H]) top(open bool) *Action[H] {
	// Anything recorded after an undo makes the undone strokes unreachable.
	l.redo = nil
	if open || len(l.undo) == 0 {
		l.undo = append(l.undo, &Action[H]{})
	}
	return l.undo[len(l.undo)-1]
}

// Undo moves the newest action to the redo stack and returns it. The caller
// hides its Added handles and shows its Removed ones. Undo returns nil when
// there is nothing to undo.
func (l *Log[H]) Undo() *Action[H] {
	a, ok := pop(&l.undo)
	if !ok {
		return nil
	}
	l.redo = append(l.redo, a)
	return a
}

// Redo is the inverse of Undo. The caller shows the Added handles of the
// returned action and hides its Removed ones.
func (l *Log[H]) Redo() *Action[H] {
	a, ok := pop(&l.redo)
	if !ok {
		return nil
	}
	l.undo = append(l.undo, a)
	return a
}

func pop[H comparable](stack *[]*Action[H]) (*Action[H], bool) {
	s := *stack
	if len(s) == 0 {
		return nil, false
	}
	a := s[len(s)-1]
	s[len(s)-1] = nil
	*stack = s[:len(s)-1]
	return a, true
}

// Reset drops both stacks, as when the surface is torn down.
func (l *Log[H]) Reset() {
	l.undo = nil
	l.redo = nil
}

func (l *Log[H]) UndoDepth() int { return len(l.undo) }

func (l *Log[H]) RedoDepth() int { return len(l.redo) }

func (l *Log[H]) CanUndo() bool { return len(l.undo) > 0 }

func (l *Log[H]) CanRedo() bool { return len(l.redo) > 0 }
