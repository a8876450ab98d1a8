package ui

import (
	"image/color"
	"testing"

	"InkBoard/internal/geom"
	"InkBoard/internal/input"
	"InkBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWidget(t *testing.T) (*BoardWidget, *state.Board) {
	t.Helper()
	test.NewTempApp(t)
	b := state.NewBoard(geom.Engine{}, "black")
	w := NewBoardWidget(b, 1, 0.25)
	w.Resize(fyne.NewSize(200, 200))
	return w, b
}

func mouse(x, y float32, button desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     button,
	}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestBoardWidgetDrawsStroke(t *testing.T) {
	w, b := newTestWidget(t)

	w.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	w.Dragged(drag(40, 10))
	w.MouseUp(mouse(70, 10, desktop.MouseButtonPrimary))

	assert.Equal(t, 3, b.Len())
	assert.Len(t, b.Visible(), 3)
	assert.True(t, b.CanUndo())

	w.Handle(input.Undo)
	assert.Empty(t, b.Visible())
	w.Handle(input.Redo)
	assert.Len(t, b.Visible(), 3)
}

func TestBoardWidgetPan(t *testing.T) {
	w, b := newTestWidget(t)

	w.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(10, 5)})
	w.MouseDown(mouse(10, 5, desktop.MouseButtonPrimary))

	shapes := b.Visible()
	require.Len(t, shapes, 1)
	assert.Equal(t, geom.Disc{Center: geom.Pt(0, 0), Radius: 20}, shapes[0].Geometry)

	w.ResetView()
	w.MouseDown(mouse(10, 5, desktop.MouseButtonPrimary))
	shapes = b.Visible()
	require.Len(t, shapes, 2)
	assert.Equal(t, geom.Disc{Center: geom.Pt(10, 5), Radius: 20}, shapes[1].Geometry)
}

func TestBoardWidgetRaster(t *testing.T) {
	w, _ := newTestWidget(t)
	w.Resize(fyne.NewSize(100, 100))
	w.MouseDown(mouse(50, 50, desktop.MouseButtonPrimary))
	w.MouseUp(mouse(50, 50, desktop.MouseButtonPrimary))

	img := w.draw(100, 100)
	r, g, bl, _ := img.At(50, 50).RGBA()
	assert.Less(t, r>>8, uint32(40))
	assert.Less(t, g>>8, uint32(40))
	assert.Less(t, bl>>8, uint32(40))
	assert.Equal(t, color.RGBAModel.Convert(color.White), color.RGBAModel.Convert(img.At(2, 2)))
}

func TestSecondaryClickOpensMenu(t *testing.T) {
	w, b := newTestWidget(t)
	win := test.NewWindow(w)
	defer win.Close()
	w.OnMenu = contextMenu(w, &Exporter{Board: b, Window: win})

	w.MouseDown(mouse(20, 20, desktop.MouseButtonSecondary))
	assert.Equal(t, input.ModeMenu, w.ctrl.Mode())
	require.NotNil(t, w.menu)

	// Closing the popup hands input back to drawing.
	w.menu.OnDismiss()
	assert.Equal(t, input.ModeDraw, w.ctrl.Mode())
	assert.Zero(t, b.Len())
}

func TestSecondaryClickWithoutMenu(t *testing.T) {
	w, _ := newTestWidget(t)
	w.MouseDown(mouse(20, 20, desktop.MouseButtonSecondary))
	assert.Equal(t, input.ModeDraw, w.ctrl.Mode())
}

func menuItem(t *testing.T, m *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, it := range m.Items {
		if it.Label == label {
			return it
		}
	}
	t.Fatalf("no menu item %q", label)
	return nil
}

func TestContextMenuActions(t *testing.T) {
	w, b := newTestWidget(t)
	w.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	w.MouseUp(mouse(10, 10, desktop.MouseButtonPrimary))
	w.MouseDown(mouse(150, 150, desktop.MouseButtonPrimary))
	w.MouseUp(mouse(150, 150, desktop.MouseButtonPrimary))
	require.Len(t, b.Visible(), 4)

	menu := contextMenu(w, &Exporter{Board: b})
	assert.True(t, menuItem(t, menu(geom.Pt(80, 80)), "Erase here").Disabled)
	assert.True(t, menuItem(t, menu(geom.Pt(80, 80)), "Redo").Disabled)
	assert.False(t, menuItem(t, menu(geom.Pt(80, 80)), "Undo").Disabled)

	menuItem(t, menu(geom.Pt(150, 150)), "Erase here").Action()
	assert.Len(t, b.Visible(), 3)

	menuItem(t, menu(geom.Pt(0, 0)), "Undo").Action()
	assert.Len(t, b.Visible(), 4)

	menuItem(t, menu(geom.Pt(0, 0)), "Clear my strokes").Action()
	assert.Empty(t, b.Visible())
}

func TestToolbarFollowsHistory(t *testing.T) {
	w, b := newTestWidget(t)
	tb := newToolbar(w, &Exporter{Board: b})
	assert.True(t, tb.undo.Disabled())
	assert.True(t, tb.redo.Disabled())

	w.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	w.MouseUp(mouse(10, 10, desktop.MouseButtonPrimary))
	assert.False(t, tb.undo.Disabled())
	assert.True(t, tb.redo.Disabled())

	tb.undo.OnActivated()
	assert.True(t, tb.undo.Disabled())
	assert.False(t, tb.redo.Disabled())
}
