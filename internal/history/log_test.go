package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrokeIsOneAction(t *testing.T) {
	l := New[int]()
	l.RecordAdd(1, true)
	l.RecordAdd(2, false)

	a := l.Undo()
	require.NotNil(t, a)
	assert.Equal(t, []int{1, 2}, a.Added)
	assert.Empty(t, a.Removed)

	r := l.Redo()
	assert.Same(t, a, r)
	assert.Equal(t, []int{1, 2}, r.Added)
	assert.Equal(t, 1, l.UndoDepth())
	assert.Equal(t, 0, l.RedoDepth())
}

func TestUndoRedoEmpty(t *testing.T) {
	l := New[string]()
	assert.Nil(t, l.Undo())
	assert.Nil(t, l.Redo())
	assert.Nil(t, l.Undo())
	assert.Zero(t, l.UndoDepth())
	assert.Zero(t, l.RedoDepth())
	assert.False(t, l.CanUndo())
	assert.False(t, l.CanRedo())
}

func TestFirstAddOpensAction(t *testing.T) {
	l := New[int]()
	l.RecordAdd(7, false)
	require.Equal(t, 1, l.UndoDepth())
	assert.Equal(t, []int{7}, l.Undo().Added)
}

func TestNewStrokeDropsRedo(t *testing.T) {
	l := New[string]()
	l.RecordAdd("h1", true)
	l.Undo()
	require.True(t, l.CanRedo())

	l.RecordAdd("h2", true)
	assert.Zero(t, l.RedoDepth())
	assert.Nil(t, l.Redo())
	require.Equal(t, 1, l.UndoDepth())
	assert.Equal(t, []string{"h2"}, l.Undo().Added)
}

func TestLIFOAcrossStrokes(t *testing.T) {
	l := New[int]()
	for stroke := 0; stroke < 3; stroke++ {
		for seg := 0; seg < 4; seg++ {
			l.RecordAdd(stroke*10+seg, seg == 0)
		}
	}
	require.Equal(t, 3, l.UndoDepth())

	assert.Equal(t, []int{20, 21, 22, 23}, l.Undo().Added)
	assert.Equal(t, []int{10, 11, 12, 13}, l.Undo().Added)
	assert.Equal(t, []int{10, 11, 12, 13}, l.Redo().Added)
	assert.Equal(t, []int{10, 11, 12, 13}, l.Undo().Added)
	assert.Equal(t, []int{0, 1, 2, 3}, l.Undo().Added)
	assert.Nil(t, l.Undo())
	assert.Equal(t, 3, l.RedoDepth())

	// Replaying everything restores the original order.
	assert.Equal(t, []int{0, 1, 2, 3}, l.Redo().Added)
	assert.Equal(t, []int{10, 11, 12, 13}, l.Redo().Added)
	assert.Equal(t, []int{20, 21, 22, 23}, l.Redo().Added)
	assert.Nil(t, l.Redo())
}

func TestNoActionLostByUndoRedo(t *testing.T) {
	l := New[int]()
	l.RecordAdd(1, true)
	l.RecordAdd(2, true)
	l.RecordAdd(3, true)
	l.Undo()
	l.Undo()
	l.Redo()

	var seq []int
	for _, a := range l.undo {
		seq = append(seq, a.Added...)
	}
	for i := len(l.redo) - 1; i >= 0; i-- {
		seq = append(seq, l.redo[i].Added...)
	}
	assert.Equal(t, []int{1, 2, 3}, seq)
}

func TestRecordRemovedGroup(t *testing.T) {
	l := New[int]()
	l.RecordAdd(1, true)
	l.Record(Action[int]{Removed: []int{1}})
	l.RecordRemove(2, false)

	a := l.Undo()
	assert.Empty(t, a.Added)
	assert.Equal(t, []int{1, 2}, a.Removed)
	assert.Equal(t, []int{1}, l.Undo().Added)
}

func TestReset(t *testing.T) {
	l := New[int]()
	l.RecordAdd(1, true)
	l.RecordAdd(2, true)
	l.Undo()
	l.Reset()
	assert.False(t, l.CanUndo())
	assert.False(t, l.CanRedo())
}
