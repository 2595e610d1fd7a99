package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBendRadius(t *testing.T) {
	tests := []struct {
		diameter float64
		want     float64
	}{
		{8, 20},
		{12, 30},
		{16, 40},
		{17, 68},
		{20, 80},
		{32, 128},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, BendRadius(tt.diameter), 1e-9, "diameter %v", tt.diameter)
	}
}

func TestMinBarSpacing(t *testing.T) {
	// Aggregate 16 gives a 21 mm clear gap for small bars.
	assert.Equal(t, 41.0, MinBarSpacing(20, 16))
	assert.Equal(t, 33.0, MinBarSpacing(12, 16))
	// Large bars are governed by their own diameter.
	assert.Equal(t, 64.0, MinBarSpacing(32, 16))
	// Non-integer clear gap is rounded up before adding the diameter.
	assert.Equal(t, 45.5, MinBarSpacing(22.5, 16))
	// Zero aggregate falls back to the default.
	assert.Equal(t, MinBarSpacing(20, DefaultAggregateSize), MinBarSpacing(20, 0))
}

func TestMassPerMeter(t *testing.T) {
	assert.Equal(t, 0.395, MassPerMeter(8, SteelDensity))
	assert.Equal(t, 1.578, MassPerMeter(16, SteelDensity))
	assert.Equal(t, 2.466, MassPerMeter(20, SteelDensity))
	assert.Equal(t, MassPerMeter(12, SteelDensity), MassPerMeter(12, 0))
}

func TestPointPosition(t *testing.T) {
	// Bearing 0 points straight up, 90 to the right.
	p := PointPosition(10, 10, 100, 0)
	assert.InDelta(t, 10, p.X, 1e-9)
	assert.InDelta(t, 110, p.Y, 1e-9)

	p = PointPosition(0, 0, 100, 90)
	assert.InDelta(t, 100, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)

	p = PointPosition(0, 0, 100, 150)
	assert.InDelta(t, 50, p.X, 1e-9)
	assert.InDelta(t, -100*math.Sqrt(3)/2, p.Y, 1e-9)
}

func TestArcLength(t *testing.T) {
	assert.InDelta(t, math.Pi*40/2, ArcLength(40, 90), 1e-9)
	assert.InDelta(t, 2*math.Pi*10, ArcLength(10, 360), 1e-9)
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.24, RoundTo(1.236, 2))
	assert.Equal(t, 2.0, RoundTo(1.5, 0))
	assert.Equal(t, -2.0, RoundTo(-1.5, 0))
}

func TestTurnBulge(t *testing.T) {
	up := Point{X: 0, Y: 1}
	right := Point{X: 1, Y: 0}
	left := Point{X: -1, Y: 0}

	// Up then right is a clockwise quarter turn.
	assert.InDelta(t, -(math.Sqrt2 - 1), TurnBulge(up, right), 1e-12)
	assert.InDelta(t, math.Sqrt2-1, TurnBulge(up, left), 1e-12)
	assert.InDelta(t, 0, TurnBulge(up, up), 1e-12)
	assert.InDelta(t, 90, BulgeAngle(TurnBulge(up, right)), 1e-9)
	assert.InDelta(t, math.Sqrt2-1, BulgeForAngle(90), 1e-12)
}

func TestSagittaMatchesBendConstruction(t *testing.T) {
	r := 40.0
	chord := r * math.Sqrt2
	b := BulgeForAngle(90)
	assert.InDelta(t, BendSagitta(r, 90), Sagitta(b, chord), 1e-9)
}

func TestPathLength(t *testing.T) {
	r := 40.0
	b := -BulgeForAngle(90)
	p := Path{
		{Point: Point{X: 0, Y: 0}},
		{Point: Point{X: 0, Y: 100}, Bulge: b},
		{Point: Point{X: r, Y: 100 + r}},
		{Point: Point{X: 500, Y: 100 + r}},
	}
	want := 100 + ArcLength(r, 90) + (500 - r)
	assert.InDelta(t, want, p.Length(r), 1e-9)
	assert.Equal(t, 1, p.Bends())
	assert.Len(t, p.Points(), 4)
}

func TestBulgeArcPointsQuarterCircle(t *testing.T) {
	// Counter-clockwise quarter from (1,0) to (0,1) around the origin.
	pts := BulgeArcPoints(Point{X: 1, Y: 0}, Point{X: 0, Y: 1}, BulgeForAngle(90), 8)
	require.Len(t, pts, 9)
	for _, p := range pts {
		assert.InDelta(t, 1, math.Hypot(p.X, p.Y), 1e-9)
	}
	assert.InDelta(t, math.Sqrt2/2, pts[4].X, 1e-9)
	assert.InDelta(t, math.Sqrt2/2, pts[4].Y, 1e-9)

	// Clockwise from (0,1) to (1,0) bows the same way.
	pts = BulgeArcPoints(Point{X: 0, Y: 1}, Point{X: 1, Y: 0}, -BulgeForAngle(90), 8)
	assert.InDelta(t, math.Sqrt2/2, pts[4].X, 1e-9)
	assert.InDelta(t, math.Sqrt2/2, pts[4].Y, 1e-9)
}

func TestArcCenter(t *testing.T) {
	c, r := ArcCenter(Point{X: 1, Y: 0}, Point{X: 0, Y: 1}, BulgeForAngle(90))
	assert.InDelta(t, 0, c.X, 1e-9)
	assert.InDelta(t, 0, c.Y, 1e-9)
	assert.InDelta(t, 1, r, 1e-9)

	c, r = ArcCenter(Point{X: 0, Y: 1}, Point{X: 1, Y: 0}, -BulgeForAngle(90))
	assert.InDelta(t, 0, c.X, 1e-9)
	assert.InDelta(t, 0, c.Y, 1e-9)
	assert.InDelta(t, 1, r, 1e-9)
}

func TestFlatten(t *testing.T) {
	p := Path{
		{Point: Point{X: 0, Y: 0}},
		{Point: Point{X: 0, Y: 10}, Bulge: -BulgeForAngle(90)},
		{Point: Point{X: 5, Y: 15}},
	}
	pts := p.Flatten(4)
	require.Len(t, pts, 2+4)
	assert.Equal(t, Point{X: 0, Y: 0}, pts[0])
	assert.InDelta(t, 5, pts[len(pts)-1].X, 1e-9)
	assert.InDelta(t, 15, pts[len(pts)-1].Y, 1e-9)
}
