package geom

import "math"

// Engine turns pairs of samples into shapes. The zero value uses
// DefaultRadiusScale.
type Engine struct {
	RadiusScale float64
}

var defaultEngine = Engine{RadiusScale: DefaultRadiusScale}

// ComputeSegmentShape is Engine.Segment with the default radius scale.
func ComputeSegmentShape(prev *Sample, curr Sample) Shape {
	return defaultEngine.Segment(prev, curr)
}

// Scale returns the radius of a sample with pressure 1.
func (e Engine) Scale() float64 {
	if e.RadiusScale == 0 {
		return DefaultRadiusScale
	}
	return e.RadiusScale
}

// Circle returns the footprint of s.
func (e Engine) Circle(s Sample) Circle {
	return Circle{Center: s.Point(), Radius: s.Pressure * e.Scale()}
}

func (e Engine) disc(s Sample) Disc {
	c := e.Circle(s)
	return Disc{Center: c.Center, Radius: c.Radius}
}

// Segment returns the outline connecting prev to curr. A nil prev marks the
// start of a stroke and yields the disc of curr.
//
// Of the two samples the one with the higher pressure owns the large circle;
// on a tie curr does. When the samples coincide, or the small circle lies
// entirely inside the large one, the result is the disc of curr rather than
// of the larger circle.
func (e Engine) Segment(prev *Sample, curr Sample) Shape {
	if prev == nil {
		return e.disc(curr)
	}

	small, large := *prev, curr
	if prev.Pressure > curr.Pressure {
		small, large = curr, *prev
	}
	s, l := e.Circle(small), e.Circle(large)

	d := l.Center.Dist(s.Center)
	if d == 0 || d+s.Radius < l.Radius {
		return e.disc(curr)
	}
	return belt(l, s, d)
}

// belt builds the outer tangent hull of l and s, whose centres are d apart.
func belt(l, s Circle, d float64) Belt {
	u := s.Center.Sub(l.Center).Mul(1 / d)
	n := Point{X: -u.Y, Y: u.X}

	cosPhi := math.Min((l.Radius-s.Radius)/d, 1)
	sinPhi := math.Sqrt(math.Max(0, 1-cosPhi*cosPhi))
	phi := math.Acos(cosPhi) * 180 / math.Pi

	plus := u.Mul(cosPhi).Add(n.Mul(sinPhi))
	minus := u.Mul(cosPhi).Sub(n.Mul(sinPhi))

	p1 := l.Center.Add(plus.Mul(l.Radius))
	p2 := l.Center.Add(minus.Mul(l.Radius))
	p3 := s.Center.Add(minus.Mul(s.Radius))
	p4 := s.Center.Add(plus.Mul(s.Radius))

	return Belt{
		ArcLarge: Arc{
			From: p1, To: p2, Center: l.Center, Radius: l.Radius,
			Rotation: phi, LargeArc: true, Sweep: true,
		},
		TangentLine1: Segment{From: p2, To: p3},
		ArcSmall: Arc{
			From: p3, To: p4, Center: s.Center, Radius: s.Radius,
			Rotation: phi - 180, LargeArc: false, Sweep: true,
		},
		TangentLine2: Segment{From: p4, To: p1},
	}
}
