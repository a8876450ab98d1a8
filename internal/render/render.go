// Package render rasterises board shapes.
package render

import (
	"image"

	"InkBoard/internal/geom"
	"InkBoard/internal/ink"
	"InkBoard/internal/state"

	"golang.org/x/image/vector"
)

// Renderer draws shapes onto an RGBA image. It keeps one rasteriser between
// calls and is not safe for concurrent use.
type Renderer struct {
	// Tolerance is the flattening tolerance in pixels.
	Tolerance float64
	// Scale is the number of pixels per board unit; zero means 1.
	Scale float64

	z *vector.Rasterizer
}

// Draw paints shapes over dst in order. origin is the board position that
// maps to the top-left pixel of dst.
func (r *Renderer) Draw(dst *image.RGBA, shapes []state.Shape, origin geom.Point) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	if r.z == nil {
		r.z = vector.NewRasterizer(w, h)
	}
	scale := r.Scale
	if scale <= 0 {
		scale = 1
	}
	tol := r.Tolerance
	if tol <= 0 {
		tol = geom.DefaultTolerance
	}
	view := geom.Rect{Min: origin, Max: origin.Add(geom.Pt(float64(w)/scale, float64(h)/scale))}
	px := func(p geom.Point) (float32, float32) {
		return float32((p.X - origin.X) * scale), float32((p.Y - origin.Y) * scale)
	}

	for _, s := range shapes {
		if !overlaps(view, s.Geometry.Bounds()) {
			continue
		}
		pts := geom.Flatten(s.Geometry, tol/scale)
		if len(pts) < 3 {
			continue
		}
		r.z.Reset(w, h)
		r.z.MoveTo(px(pts[0]))
		for _, p := range pts[1:] {
			r.z.LineTo(px(p))
		}
		r.z.ClosePath()
		r.z.Draw(dst, b, image.NewUniform(ink.Of(s.Color)), b.Min)
	}
}

func overlaps(a, b geom.Rect) bool {
	return a.Min.X <= b.Max.X && b.Min.X <= a.Max.X && a.Min.Y <= b.Max.Y && b.Min.Y <= a.Max.Y
}
