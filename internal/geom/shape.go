package geom

// Shape is the outline of one ink segment. It is either a Disc or a Belt.
type Shape interface {
	// Bounds returns the axis-aligned extent of the outline.
	Bounds() Rect
	// Contains reports whether p lies inside the outline.
	Contains(p Point) bool
	// PathData encodes the outline as SVG path data.
	PathData() string

	isShape()
}

// Disc is drawn for an isolated sample, or when one circle swallows the other.
type Disc struct {
	Center Point
	Radius float64
}

func (d Disc) circle() Circle { return Circle{Center: d.Center, Radius: d.Radius} }

func (d Disc) Bounds() Rect { return d.circle().bounds() }

func (d Disc) Contains(p Point) bool { return d.circle().contains(p) }

func (Disc) isShape() {}

// Arc is an elliptical-arc path command with equal radii, in the SVG sense.
// Rotation is in degrees.
type Arc struct {
	From, To Point
	Center   Point
	Radius   float64
	Rotation float64
	LargeArc bool
	Sweep    bool
}

// Segment is a straight path command.
type Segment struct {
	From, To Point
}

// Belt is the outer-tangent hull of two circles: an arc around the large
// circle, a tangent line, an arc around the small circle and the closing
// tangent line back to the start.
type Belt struct {
	ArcLarge     Arc
	TangentLine1 Segment
	ArcSmall     Arc
	TangentLine2 Segment
}

// Large and Small return the two circles the belt wraps.
func (b Belt) Large() Circle { return Circle{Center: b.ArcLarge.Center, Radius: b.ArcLarge.Radius} }

func (b Belt) Small() Circle { return Circle{Center: b.ArcSmall.Center, Radius: b.ArcSmall.Radius} }

// TangentPoints returns the four points where the tangent lines touch the
// circles, in path order.
func (b Belt) TangentPoints() [4]Point {
	return [4]Point{b.ArcLarge.From, b.ArcLarge.To, b.ArcSmall.From, b.ArcSmall.To}
}

func (b Belt) Bounds() Rect { return b.Large().bounds().Union(b.Small().bounds()) }

func (b Belt) Contains(p Point) bool {
	if b.Large().contains(p) || b.Small().contains(p) {
		return true
	}
	return convexContains(b.TangentPoints(), p)
}

func (Belt) isShape() {}

// convexContains reports whether p is inside the convex quadrilateral q,
// whatever its winding.
func convexContains(q [4]Point, p Point) bool {
	var pos, neg bool
	for i := range q {
		a, b := q[i], q[(i+1)%len(q)]
		c := b.Sub(a).cross(p.Sub(a))
		switch {
		case c > 0:
			pos = true
		case c < 0:
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return pos || neg
}
