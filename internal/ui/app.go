package ui

import (
	"InkBoard/internal/config"
	"InkBoard/internal/export"
	"InkBoard/internal/input"
	"InkBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// App is the board window.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	board   *BoardWidget
	status  *widget.Label
	link    *fyne.Container
}

func NewApp(title string, b *state.Board, cfg config.Config) *App {
	a := &App{fyneApp: app.New(), status: widget.NewLabel("Ready")}
	a.window = a.fyneApp.NewWindow(title)
	a.window.Resize(fyne.NewSize(cfg.Board.Width, cfg.Board.Height))

	a.board = NewBoardWidget(b, cfg.Geometry.Pressure, cfg.Geometry.FlattenTolerance)
	exp := &Exporter{
		Board:   b,
		Window:  a.window,
		Options: export.Options{Margin: cfg.Export.Margin, Tolerance: cfg.Geometry.FlattenTolerance},
		Status:  a.SetStatus,
	}
	a.board.OnMenu = contextMenu(a.board, exp)
	a.link = container.NewHBox()

	shortcuts := map[fyne.Shortcut]input.EventKind{
		&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}:                         input.Undo,
		&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}:                         input.Redo,
		&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}: input.Redo,
	}
	for sc, kind := range shortcuts {
		a.window.Canvas().AddShortcut(sc, func(fyne.Shortcut) { a.board.Handle(kind) })
	}

	bottom := container.NewBorder(nil, nil, nil, a.link, a.status)
	a.window.SetContent(container.NewBorder(NewToolbar(a.board, exp), bottom, nil, nil, a.board))
	return a
}

// SetStatus updates the status bar. It may be called from any goroutine.
func (a *App) SetStatus(text string) {
	fyne.Do(func() { a.status.SetText(text) })
}

// SetShareLink shows the link clients use to join, with a copy button.
func (a *App) SetShareLink(link string) {
	fyne.Do(func() {
		copyBtn := widget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() {
			a.window.Clipboard().SetContent(link)
			a.status.SetText("Share link copied")
		})
		a.link.Objects = []fyne.CanvasObject{widget.NewLabel(link), copyBtn}
		a.link.Refresh()
	})
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	a.window.ShowAndRun()
}
