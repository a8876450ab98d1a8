package ui

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"InkBoard/internal/geom"
	"InkBoard/internal/input"
	"InkBoard/internal/render"
	"InkBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// BoardWidget shows a board and feeds pointer input to its controller.
type BoardWidget struct {
	widget.BaseWidget

	board    *state.Board
	ctrl     *input.Controller
	pressure float64

	mu       sync.Mutex
	renderer render.Renderer
	panX     float32
	panY     float32

	raster *canvas.Raster
	menu   *widget.PopUpMenu
	// updates run on the UI goroutine after every board change.
	updates []func()

	// OnMenu builds the context menu opened at a board position.
	OnMenu func(at geom.Point) *fyne.Menu
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

// NewBoardWidget wires b to a new controller. pressure is reported for every
// sample, since fyne pointer events carry none.
func NewBoardWidget(b *state.Board, pressure, tolerance float64) *BoardWidget {
	w := &BoardWidget{
		board:    b,
		ctrl:     input.NewController(b),
		pressure: pressure,
		renderer: render.Renderer{Tolerance: tolerance},
	}
	w.ctrl.OnMenu = w.showMenu
	w.raster = canvas.NewRaster(w.draw)
	w.ExtendBaseWidget(w)

	b.OnChange = func() {
		fyne.Do(w.update)
	}
	return w
}

// OnUpdate registers f to run after every board change, and once now. It
// must be called from the UI goroutine.
func (w *BoardWidget) OnUpdate(f func()) {
	w.updates = append(w.updates, f)
	f()
}

func (w *BoardWidget) update() {
	w.raster.Refresh()
	for _, f := range w.updates {
		f()
	}
}

func (w *BoardWidget) Board() *state.Board { return w.board }

// Handle passes a non-pointer event, such as a shortcut, to the controller.
func (w *BoardWidget) Handle(kind input.EventKind) {
	w.ctrl.Handle(input.Event{Kind: kind})
}

// sample converts a widget position to a board sample.
func (w *BoardWidget) sample(pos fyne.Position) geom.Sample {
	w.mu.Lock()
	defer w.mu.Unlock()
	return geom.Sample{
		X:        float64(pos.X - w.panX),
		Y:        float64(pos.Y - w.panY),
		Pressure: w.pressure,
	}
}

func (w *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	switch e.Button {
	case desktop.MouseButtonPrimary:
		w.ctrl.Handle(input.Event{Kind: input.Down, Sample: w.sample(e.Position)})
	case desktop.MouseButtonSecondary:
		w.ctrl.Handle(input.Event{Kind: input.OpenMenu, Sample: w.sample(e.Position)})
	}
}

func (w *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.ctrl.Handle(input.Event{Kind: input.Up, Sample: w.sample(e.Position)})
	}
}

func (w *BoardWidget) Dragged(e *fyne.DragEvent) {
	w.ctrl.Handle(input.Event{Kind: input.Move, Sample: w.sample(e.Position)})
}

func (w *BoardWidget) DragEnd() {}

func (w *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	w.mu.Lock()
	w.panX += e.Scrolled.DX
	w.panY += e.Scrolled.DY
	w.mu.Unlock()
	w.raster.Refresh()
}

// ResetView scrolls back to the board origin.
func (w *BoardWidget) ResetView() {
	w.mu.Lock()
	w.panX, w.panY = 0, 0
	w.mu.Unlock()
	w.raster.Refresh()
}

func (w *BoardWidget) showMenu(at geom.Point) {
	if w.OnMenu == nil {
		w.ctrl.Handle(input.Event{Kind: input.Dismiss})
		return
	}
	c := fyne.CurrentApp().Driver().CanvasForObject(w)
	if c == nil {
		w.ctrl.Handle(input.Event{Kind: input.Dismiss})
		return
	}
	w.menu = widget.NewPopUpMenu(w.OnMenu(at), c)
	w.menu.OnDismiss = func() {
		w.menu.Hide()
		w.ctrl.Handle(input.Event{Kind: input.Dismiss})
	}

	w.mu.Lock()
	pos := fyne.NewPos(float32(at.X)+w.panX, float32(at.Y)+w.panY)
	w.mu.Unlock()
	w.menu.ShowAtRelativePosition(pos, w)
}

// draw renders the visible shapes at the raster's pixel size.
func (w *BoardWidget) draw(pw, ph int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	size := w.Size()
	w.mu.Lock()
	defer w.mu.Unlock()
	if size.Width > 0 {
		w.renderer.Scale = float64(pw) / float64(size.Width)
	}
	w.renderer.Draw(img, w.board.Visible(), geom.Pt(float64(-w.panX), float64(-w.panY)))
	return img
}

func (w *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardWidgetRenderer{board: w}
}

type boardWidgetRenderer struct {
	board *BoardWidget
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.raster}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.board.raster.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Refresh() {
	r.board.raster.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}
