package ui

import (
	"InkBoard/internal/geom"
	"InkBoard/internal/input"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type toolbar struct {
	undo, redo *widget.ToolbarAction
	object     fyne.CanvasObject
}

// NewToolbar returns the row above the board: history actions, view reset
// and export. Undo and redo are disabled while there is nothing to replay.
func NewToolbar(board *BoardWidget, exp *Exporter) fyne.CanvasObject {
	return newToolbar(board, exp).object
}

func newToolbar(board *BoardWidget, exp *Exporter) *toolbar {
	t := &toolbar{
		undo: widget.NewToolbarAction(theme.ContentUndoIcon(), func() {
			board.Handle(input.Undo)
		}),
		redo: widget.NewToolbarAction(theme.ContentRedoIcon(), func() {
			board.Handle(input.Redo)
		}),
	}
	tb := widget.NewToolbar(
		t.undo,
		t.redo,
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			board.Board().Clear()
		}),
		widget.NewToolbarAction(theme.ViewRestoreIcon(), board.ResetView),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), exp.SavePDF),
		widget.NewToolbarAction(theme.FileImageIcon(), exp.SaveSVG),
	)
	t.object = container.NewHBox(tb, layout.NewSpacer())

	board.OnUpdate(func() {
		setEnabled(t.undo, board.Board().CanUndo())
		setEnabled(t.redo, board.Board().CanRedo())
	})
	return t
}

func setEnabled(a *widget.ToolbarAction, on bool) {
	if on {
		a.Enable()
	} else {
		a.Disable()
	}
}

// contextMenu is shown on a secondary click at a board position.
func contextMenu(board *BoardWidget, exp *Exporter) func(at geom.Point) *fyne.Menu {
	return func(at geom.Point) *fyne.Menu {
		b := board.Board()
		undo := fyne.NewMenuItem("Undo", func() { board.Handle(input.Undo) })
		undo.Disabled = !b.CanUndo()
		redo := fyne.NewMenuItem("Redo", func() { board.Handle(input.Redo) })
		redo.Disabled = !b.CanRedo()
		erase := fyne.NewMenuItem("Erase here", func() { b.Erase(at) })
		_, hit := b.ShapeAt(at)
		erase.Disabled = !hit

		return fyne.NewMenu("",
			undo,
			redo,
			fyne.NewMenuItemSeparator(),
			erase,
			fyne.NewMenuItem("Clear my strokes", func() { b.Clear() }),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Export PDF…", exp.SavePDF),
		)
	}
}
