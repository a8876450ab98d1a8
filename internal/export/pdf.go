// Package export writes the visible board to PDF and SVG documents.
package export

import (
	"fmt"
	"io"

	"InkBoard/internal/geom"
	"InkBoard/internal/ink"
	"InkBoard/internal/state"

	"github.com/jung-kurt/gofpdf"
)

type Options struct {
	// Margin around the drawing, in points.
	Margin float64
	// Tolerance for flattening belts into polygons.
	Tolerance float64
}

// PDF writes shapes on a single page sized to their extent. One board unit
// is one PDF point. A board with nothing of positive size yields a blank A4
// page.
func PDF(w io.Writer, shapes []state.Shape, opts Options) error {
	ext, ok := state.Extent(shapes)
	size := gofpdf.SizeType{
		Wd: ext.Dx() + 2*opts.Margin,
		Ht: ext.Dy() + 2*opts.Margin,
	}

	var p *gofpdf.Fpdf
	if ok && size.Wd > 0 && size.Ht > 0 {
		p = gofpdf.NewCustom(&gofpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "pt",
			Size:           size,
		})
	} else {
		p = gofpdf.New("P", "pt", "A4", "")
	}
	p.SetCreator("InkBoard", true)
	p.AddPage()

	origin := ext.Min.Sub(geom.Pt(opts.Margin, opts.Margin))
	for _, s := range shapes {
		c := ink.Of(s.Color)
		p.SetFillColor(int(c.R), int(c.G), int(c.B))

		switch g := s.Geometry.(type) {
		case geom.Disc:
			p.Circle(g.Center.X-origin.X, g.Center.Y-origin.Y, g.Radius, "F")
		case geom.Belt:
			pts := geom.Flatten(g, opts.Tolerance)
			poly := make([]gofpdf.PointType, len(pts))
			for i, pt := range pts {
				poly[i] = gofpdf.PointType{X: pt.X - origin.X, Y: pt.Y - origin.Y}
			}
			p.Polygon(poly, "F")
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
