package ui

import (
	"fmt"
	"log/slog"

	"InkBoard/internal/export"
	"InkBoard/internal/logging"
	"InkBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// Exporter saves the visible board through a file dialog.
type Exporter struct {
	Board   *state.Board
	Window  fyne.Window
	Options export.Options
	// Status reports the outcome to the user.
	Status func(string)
}

func (e *Exporter) SavePDF() {
	e.save("board.pdf", ".pdf", func(w fyne.URIWriteCloser, shapes []state.Shape) error {
		return export.PDF(w, shapes, e.Options)
	})
}

func (e *Exporter) SaveSVG() {
	e.save("board.svg", ".svg", func(w fyne.URIWriteCloser, shapes []state.Shape) error {
		return export.SVG(w, shapes, e.Options.Margin)
	})
}

func (e *Exporter) save(name, ext string, write func(fyne.URIWriteCloser, []state.Shape) error) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, e.Window)
			return
		}
		if w == nil {
			return // cancelled
		}
		defer func() {
			if err := w.Close(); err != nil {
				logging.For("export").Warn("close failed", "uri", w.URI(), "err", err)
			}
		}()

		shapes := e.Board.Visible()
		if err := write(w, shapes); err != nil {
			logging.For("export").Error("export failed", "uri", w.URI(), "err", err)
			dialog.ShowError(err, e.Window)
			return
		}
		logging.For("export").Info("exported", slog.String("uri", w.URI().String()), slog.Int("shapes", len(shapes)))
		if e.Status != nil {
			e.Status(fmt.Sprintf("Exported %d shapes to %s", len(shapes), w.URI().Name()))
		}
	}, e.Window)
	d.SetFileName(name)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}
