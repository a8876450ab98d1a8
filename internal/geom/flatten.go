package geom

import (
	"math"

	"cogentcore.org/core/paint/ppath"
	"cogentcore.org/core/paint/ppath/intersect"
)

// DefaultTolerance is the flattening tolerance used when none is given.
const DefaultTolerance = 0.25

const pointEpsilon = 1e-4

// Outline returns the closed outline of s as a ppath path, with arcs in the
// same order and orientation as PathData.
func Outline(s Shape) ppath.Path {
	var p ppath.Path
	switch s := s.(type) {
	case Disc:
		r := float32(s.Radius)
		x, y := float32(s.Center.X), float32(s.Center.Y)
		p.MoveTo(x-r, y)
		p.ArcTo(r, r, 0, true, false, x+r, y)
		p.ArcTo(r, r, 0, true, false, x-r, y)
	case Belt:
		p.MoveTo(float32(s.ArcLarge.From.X), float32(s.ArcLarge.From.Y))
		arcTo(&p, s.ArcLarge)
		p.LineTo(float32(s.TangentLine1.To.X), float32(s.TangentLine1.To.Y))
		arcTo(&p, s.ArcSmall)
	}
	p.Close()
	return p
}

func arcTo(p *ppath.Path, a Arc) {
	r := float32(a.Radius)
	rot := float32(a.Rotation * math.Pi / 180)
	p.ArcTo(r, r, rot, a.LargeArc, a.Sweep, float32(a.To.X), float32(a.To.Y))
}

// Flatten approximates the outline of s by a closed polygon whose edges stay
// within tol of the true curve. The closing edge is implicit.
func Flatten(s Shape, tol float64) []Point {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if d, ok := s.(Disc); ok && d.Radius <= 0 {
		return []Point{d.Center}
	}

	flat := intersect.Flatten(Outline(s), float32(tol))
	var pts []Point
	for sc := flat.Scanner(); sc.Scan(); {
		switch sc.Cmd() {
		case ppath.MoveTo, ppath.LineTo:
			end := sc.End()
			p := Pt(float64(end.X), float64(end.Y))
			if n := len(pts); n > 0 && pts[n-1].Dist(p) < pointEpsilon {
				continue
			}
			pts = append(pts, p)
		}
	}
	if n := len(pts); n > 1 && pts[0].Dist(pts[n-1]) < pointEpsilon {
		pts = pts[:n-1]
	}
	return pts
}
