package export

import (
	"bytes"
	"encoding/xml"
	"testing"

	"InkBoard/internal/geom"
	"InkBoard/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strokeShapes() []state.Shape {
	prev := geom.Sample{X: 0, Y: 0, Pressure: 1}
	curr := geom.Sample{X: 100, Y: 0, Pressure: 1}
	return []state.Shape{
		{Color: "red", Geometry: geom.ComputeSegmentShape(nil, prev), Visible: true},
		{Color: "red", Geometry: geom.ComputeSegmentShape(&prev, curr), Visible: true},
	}
}

func TestPDF(t *testing.T) {
	var empty, full bytes.Buffer
	require.NoError(t, PDF(&empty, nil, Options{Margin: 10}))
	require.NoError(t, PDF(&full, strokeShapes(), Options{Margin: 10, Tolerance: 0.5}))

	assert.True(t, bytes.HasPrefix(empty.Bytes(), []byte("%PDF-")))
	assert.True(t, bytes.HasPrefix(full.Bytes(), []byte("%PDF-")))
	// 140x40 drawing plus the margin.
	assert.Contains(t, full.String(), "/MediaBox [0 0 160.00 60.00]")
}

type svgDoc struct {
	ViewBox string `xml:"viewBox,attr"`
	Paths   []struct {
		Fill string `xml:"fill,attr"`
		D    string `xml:"d,attr"`
	} `xml:"path"`
}

func TestSVG(t *testing.T) {
	shapes := strokeShapes()
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, shapes, 5))

	var doc svgDoc
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "-25 -25 150 50", doc.ViewBox)
	require.Len(t, doc.Paths, 2)
	assert.Equal(t, "#ff0000", doc.Paths[0].Fill)
	assert.Equal(t, shapes[1].Geometry.PathData(), doc.Paths[1].D)
}

func TestPDFZeroSizeDrawing(t *testing.T) {
	dot := []state.Shape{{Color: "red", Geometry: geom.ComputeSegmentShape(nil, geom.Sample{X: 5, Y: 5}), Visible: true}}
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, dot, Options{}))
	assert.Contains(t, buf.String(), "/MediaBox [0 0 595.28 841.89]")
}

func TestSVGColorIsSanitised(t *testing.T) {
	shapes := strokeShapes()
	shapes[0].Color = `red"/><script>alert(1)</script><path d="`
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, shapes, 0))

	assert.NotContains(t, buf.String(), "<script>")
	var doc svgDoc
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Paths, 2)
	assert.Equal(t, "#000000", doc.Paths[0].Fill)
	assert.Equal(t, "#ff0000", doc.Paths[1].Fill)
}
