package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BeamDetail/internal/geom"
)

func pt(x, y float64) geom.Point { return geom.Point{X: x, Y: y} }

func TestDimensionMeasurementAndLabel(t *testing.T) {
	d := Dimension{Base: pt(0, -300), P1: pt(100, 0), P2: pt(700, 50), Text: "4 x 150 = <>"}
	assert.InDelta(t, 600, d.Measurement(), 1e-9)
	assert.Equal(t, "4 x 150 = 600", d.Label())

	v := Dimension{Base: pt(-200, 0), P1: pt(0, 0), P2: pt(0, 400), Angle: 90}
	assert.InDelta(t, 400, v.Measurement(), 1e-9)
	assert.Equal(t, "400", v.Label(), "empty text means the measured value")
}

func TestDimensionLinePoints(t *testing.T) {
	d := Dimension{Base: pt(0, -300), P1: pt(100, 0), P2: pt(700, 50)}
	a, b := d.LinePoints()
	assert.InDelta(t, 100, a.X, 1e-9)
	assert.InDelta(t, -300, a.Y, 1e-9)
	assert.InDelta(t, 700, b.X, 1e-9)
	assert.InDelta(t, -300, b.Y, 1e-9)

	v := Dimension{Base: pt(-200, 0), P1: pt(0, 0), P2: pt(0, 400), Angle: 90}
	a, b = v.LinePoints()
	assert.InDelta(t, -200, a.X, 1e-9)
	assert.InDelta(t, 400, b.Y, 1e-9)
}

func TestCellTextAnchor(t *testing.T) {
	c := Cell{TopLeft: pt(0, 0), Width: 200, Height: 100, TextHeight: 50}
	assert.Equal(t, pt(100, -50), c.TextAnchor())

	c.Align = AlignMiddleLeft
	assert.Equal(t, pt(20, -50), c.TextAnchor())

	c.Align = AlignMiddleRight
	assert.Equal(t, pt(180, -50), c.TextAnchor())

	lo, hi := c.Bounds()
	assert.Equal(t, pt(0, -100), lo)
	assert.Equal(t, pt(200, 0), hi)
}

func TestSymbolExplode(t *testing.T) {
	sym := Symbol{
		Name:    "marker",
		Circles: []Circle{{Layer: "L", Center: pt(4, 0), Radius: 4}},
		Texts: []SymbolText{
			{Text: Text{Layer: "L", Position: pt(4, 0), Height: 2.5}, Attr: "NUMBER"},
			{Text: Text{Layer: "L", Position: pt(10, 0), Height: 2.5, Value: "L="}},
		},
	}
	items := sym.Explode(pt(100, 100), 20, map[string]string{"NUMBER": "3"})
	require.Len(t, items, 3)

	c := items[0].(Circle)
	assert.Equal(t, pt(180, 100), c.Center)
	assert.Equal(t, 80.0, c.Radius)

	num := items[1].(Text)
	assert.Equal(t, "3", num.Value)
	assert.Equal(t, 50.0, num.Height)
	assert.Equal(t, "L=", items[2].(Text).Value)
}

func TestRecorderReplayAndSymbols(t *testing.T) {
	style := DefaultStyle()
	rec := NewRecorder()
	rec.Polyline(Rect(style.Layers.Outline.Name, 0, 0, 1000, 400))
	rec.Circle(Circle{Layer: style.Layers.Bars.Name, Center: pt(50, 50), Radius: 8})
	rec.Dimension(Dimension{Base: pt(0, -300), P1: pt(0, 0), P2: pt(1000, 0)})

	// Inserting an undefined symbol is ignored.
	rec.InsertSymbol("marker", pt(0, 0), 20, nil)
	assert.Len(t, rec.Items, 3)

	assert.False(t, rec.HasSymbol("marker"))
	rec.DefineSymbol(Symbol{Name: "marker", Circles: []Circle{{Center: pt(4, 0), Radius: 4}}})
	assert.True(t, rec.HasSymbol("marker"))
	rec.InsertSymbol("marker", pt(2000, 0), 20, map[string]string{"NUMBER": "1"})
	require.Len(t, rec.Items, 4)

	copyRec := NewRecorder()
	rec.Replay(copyRec)
	assert.Equal(t, rec.Items, copyRec.Items)
	assert.True(t, copyRec.HasSymbol("marker"), "replay defines missing symbols")

	lo, hi := rec.Bounds()
	assert.InDelta(t, -300, lo.Y, 1e-9)
	assert.InDelta(t, 2160, hi.X, 1e-9)

	assert.Len(t, rec.Polylines(style.Layers.Outline.Name), 1)
	assert.Len(t, rec.Polylines("missing"), 0)
	assert.Len(t, rec.Dimensions(), 1)
	assert.Len(t, rec.Exploded(), 4)
}

func TestDefaultStyleLayers(t *testing.T) {
	s := DefaultStyle()
	layers := s.Layers.All()
	require.Len(t, layers, 6)
	seen := map[string]bool{}
	for _, l := range layers {
		assert.NotEmpty(t, l.Name)
		assert.False(t, seen[l.Name], "duplicate layer %s", l.Name)
		seen[l.Name] = true
	}
	assert.Equal(t, LineDashed, s.Layers.Hidden.LineType)
	assert.Equal(t, 50.0, s.ModelText(2.5))
}

func TestHatchLinesStayInsideBoundary(t *testing.T) {
	box := []geom.Point{pt(0, 0), pt(0, -200), pt(300, -200), pt(300, 0)}
	lines := HatchLines(box, 60)
	require.NotEmpty(t, lines)
	for _, l := range lines {
		for _, p := range []geom.Point{l.A, l.B} {
			assert.True(t, p.X >= -1e-9 && p.X <= 300+1e-9, "x %v", p.X)
			assert.True(t, p.Y >= -200-1e-9 && p.Y <= 1e-9, "y %v", p.Y)
		}
		assert.InDelta(t, l.B.X-l.A.X, l.B.Y-l.A.Y, 1e-9, "45 degrees")
	}
	assert.Nil(t, HatchLines(box[:2], 60))
	assert.Nil(t, HatchLines(box, 0))
}

func TestDimensionGeometry(t *testing.T) {
	d := Dimension{Kind: DimStandard, Base: pt(0, -300), P1: pt(100, 0), P2: pt(700, 0)}
	g := d.Geometry(30, 40)
	require.Len(t, g.Lines, 5, "dimension line, two extension lines, two ticks")
	assert.Equal(t, "600", g.Label)
	assert.InDelta(t, 400, g.LabelAt.X, 1e-9)
	assert.InDelta(t, -260, g.LabelAt.Y, 1e-9)

	bar := Dimension{Kind: DimBar, Base: pt(-25, 0), P1: pt(0, 0), P2: pt(0, 400), Angle: 90}
	g = bar.Geometry(30, 40)
	require.Len(t, g.Lines, 1)
	assert.InDelta(t, -65, g.LabelAt.X, 1e-9)
	assert.InDelta(t, 200, g.LabelAt.Y, 1e-9)
	assert.Equal(t, 90.0, g.Rotation)
}
