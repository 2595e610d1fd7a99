// Package geom holds the pure geometry used by the detailing engine:
// points, bent-bar paths, bend radii and the spacing rules for parallel bars.
// All lengths are in millimetres.
package geom

import "math"

// DefaultAggregateSize is the nominal maximum aggregate size in mm used by
// the clear spacing rule when the caller does not supply one.
const DefaultAggregateSize = 16.0

// SteelDensity is the density of reinforcing steel in kg/m³.
const SteelDensity = 7850.0

// StandardBendAngle is the turn, in degrees, of every bend the engine draws.
const StandardBendAngle = 90.0

// Point is a 2D coordinate in mm.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p shifted by dx, dy.
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// PointPosition offsets (x0, y0) by distance along a bearing of theta degrees
// measured clockwise from the positive Y axis.
func PointPosition(x0, y0, distance, theta float64) Point {
	rad := math.Pi/2 - theta*math.Pi/180
	return Point{
		X: x0 + distance*math.Cos(rad),
		Y: y0 + distance*math.Sin(rad),
	}
}

// BendRadius returns the mandrel radius for a bar of the given diameter:
// 2.5d up to and including 16 mm, 4d above.
func BendRadius(diameter float64) float64 {
	if diameter <= 16 {
		return diameter * 2.5
	}
	return diameter * 4.0
}

// MinBarSpacing returns the minimum centre-to-centre distance between two
// parallel bars: the clear gap max(d, 20, aggregate+5) rounded up, plus d.
func MinBarSpacing(diameter, aggregateSize float64) float64 {
	if aggregateSize <= 0 {
		aggregateSize = DefaultAggregateSize
	}
	clear := math.Max(diameter, math.Max(20, aggregateSize+5))
	return math.Ceil(clear) + diameter
}

// MassPerMeter returns the mass of one metre of bar in kg/m, rounded to
// three decimals.
func MassPerMeter(diameter, density float64) float64 {
	if density <= 0 {
		density = SteelDensity
	}
	r := diameter / 2 / 1000
	return RoundTo(density*math.Pi*r*r, 3)
}

// ArcLength returns the length of a circular arc of the given radius that
// turns through angle degrees.
func ArcLength(radius, angle float64) float64 {
	return 2 * (angle / 360) * math.Pi * radius
}

// RoundTo rounds v to the given number of decimal places, halves away from zero.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
