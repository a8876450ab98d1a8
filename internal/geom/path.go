package geom

import (
	"math"
	"strconv"
	"strings"
)

// PathData draws the disc as two half-circle arcs.
func (d Disc) PathData() string {
	left := Point{d.Center.X - d.Radius, d.Center.Y}
	right := Point{d.Center.X + d.Radius, d.Center.Y}

	var w pathWriter
	w.move(left)
	w.arc(Arc{To: right, Radius: d.Radius, LargeArc: true})
	w.arc(Arc{To: left, Radius: d.Radius, LargeArc: true})
	w.close()
	return w.String()
}

func (b Belt) PathData() string {
	var w pathWriter
	w.move(b.ArcLarge.From)
	w.arc(b.ArcLarge)
	w.line(b.TangentLine1.To)
	w.arc(b.ArcSmall)
	w.close()
	return w.String()
}

type pathWriter struct {
	strings.Builder
}

func (w *pathWriter) cmd(c string, args ...float64) {
	if w.Len() > 0 {
		w.WriteByte(' ')
	}
	w.WriteString(c)
	for _, a := range args {
		w.WriteByte(' ')
		w.WriteString(formatNumber(a))
	}
}

func (w *pathWriter) move(p Point) { w.cmd("M", p.X, p.Y) }

func (w *pathWriter) line(p Point) { w.cmd("L", p.X, p.Y) }

func (w *pathWriter) close() { w.cmd("Z") }

func (w *pathWriter) arc(a Arc) {
	w.cmd("A", a.Radius, a.Radius, a.Rotation, flag(a.LargeArc), flag(a.Sweep), a.To.X, a.To.Y)
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// formatNumber rounds to three decimals and drops trailing zeros.
func formatNumber(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
