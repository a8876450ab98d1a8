package export

import (
	"bufio"
	"fmt"
	"io"

	"InkBoard/internal/ink"
	"InkBoard/internal/state"
)

// SVG writes shapes as filled paths in a standalone document whose viewBox
// is their extent grown by margin.
func SVG(w io.Writer, shapes []state.Shape, margin float64) error {
	ext, _ := state.Extent(shapes)
	x, y := ext.Min.X-margin, ext.Min.Y-margin
	width, height := ext.Dx()+2*margin, ext.Dy()+2*margin

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g" width="%g" height="%g">`+"\n",
		x, y, width, height, width, height)
	for _, s := range shapes {
		fmt.Fprintf(bw, `  <path fill="%s" d="%s"/>`+"\n", ink.Hex(ink.Of(s.Color)), s.Geometry.PathData())
	}
	fmt.Fprintln(bw, "</svg>")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
