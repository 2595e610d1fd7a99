package draw

import (
	"math"

	"github.com/piwi3910/BeamDetail/internal/geom"
)

// Segment is a straight line between two points.
type Segment struct {
	A, B geom.Point
}

// HatchLines returns 45° pattern lines, spacing apart, covering the bounding
// box of boundary. Support and section boundaries are rectangles, so the box
// is the boundary.
func HatchLines(boundary []geom.Point, spacing float64) []Segment {
	if len(boundary) < 3 || spacing <= 0 {
		return nil
	}
	lo, hi := boundsOf(boundary)
	step := spacing * math.Sqrt2

	var out []Segment
	for c := lo.X - hi.Y + step; c < hi.X-lo.Y; c += step {
		// points on y = x - c
		x0 := math.Max(lo.X, lo.Y+c)
		x1 := math.Min(hi.X, hi.Y+c)
		if x1-x0 <= 1e-9 {
			continue
		}
		out = append(out, Segment{A: geom.Point{X: x0, Y: x0 - c}, B: geom.Point{X: x1, Y: x1 - c}})
	}
	return out
}

// DimensionGeometry is a dimension broken down into plain lines and a
// label position.
type DimensionGeometry struct {
	Lines    []Segment
	Label    string
	LabelAt  geom.Point
	Rotation float64
}

// Geometry expands d for backends without native dimensions. Standard
// dimensions get extension lines and oblique ticks of the given size; bar
// dimensions only the dimension line. The label sits textGap off the line.
func (d Dimension) Geometry(tick, textGap float64) DimensionGeometry {
	a, b := d.LinePoints()
	g := DimensionGeometry{Label: d.Label(), Rotation: d.Angle}
	g.Lines = append(g.Lines, Segment{A: a, B: b})

	if d.Kind == DimStandard {
		if d.P1.Dist(a) > 1e-9 {
			g.Lines = append(g.Lines, Segment{A: d.P1, B: a})
		}
		if d.P2.Dist(b) > 1e-9 {
			g.Lines = append(g.Lines, Segment{A: d.P2, B: b})
		}
		rad := (d.Angle + 45) * math.Pi / 180
		tx, ty := math.Cos(rad)*tick/2, math.Sin(rad)*tick/2
		for _, p := range []geom.Point{a, b} {
			g.Lines = append(g.Lines, Segment{A: p.Add(-tx, -ty), B: p.Add(tx, ty)})
		}
	}

	rad := d.Angle * math.Pi / 180
	nx, ny := -math.Sin(rad), math.Cos(rad)
	mid := geom.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	g.LabelAt = mid.Add(nx*textGap, ny*textGap)
	return g
}
