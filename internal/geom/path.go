package geom

import "math"

// Vertex is a path waypoint. A non-zero Bulge marks a bend: the segment from
// this vertex to the next one is a circular arc rather than a straight line.
// The bulge follows the DXF convention, tan(sweep/4), positive for a
// counter-clockwise arc.
type Vertex struct {
	Point
	Bulge float64 `json:"bulge,omitempty"`
}

// IsBend reports whether the segment leaving v is an arc.
func (v Vertex) IsBend() bool {
	return math.Abs(v.Bulge) > 1e-12
}

// Path is an ordered list of waypoints describing one bar or stirrup.
type Path []Vertex

// Points returns the waypoints without bend markers.
func (p Path) Points() []Point {
	pts := make([]Point, len(p))
	for i, v := range p {
		pts[i] = v.Point
	}
	return pts
}

// Bends returns the number of arc segments in the path.
func (p Path) Bends() int {
	n := 0
	for i := 0; i < len(p)-1; i++ {
		if p[i].IsBend() {
			n++
		}
	}
	return n
}

// Translate shifts every vertex by dx, dy.
func (p Path) Translate(dx, dy float64) Path {
	out := make(Path, len(p))
	for i, v := range p {
		out[i] = Vertex{Point: v.Add(dx, dy), Bulge: v.Bulge}
	}
	return out
}

// Length returns the developed length of the path. Straight segments count
// their chord; each bend counts the arc of the given radius through the
// angle encoded in its bulge.
func (p Path) Length(radius float64) float64 {
	total := 0.0
	for i := 0; i < len(p)-1; i++ {
		if p[i].IsBend() {
			total += ArcLength(radius, BulgeAngle(p[i].Bulge))
			continue
		}
		total += p[i].Dist(p[i+1].Point)
	}
	return total
}

// TurnBulge returns the bulge of an arc that is tangent to the incoming
// direction in and leaves along out. Right-hand turns give a negative bulge.
func TurnBulge(in, out Point) float64 {
	cross := in.X*out.Y - in.Y*out.X
	dot := in.X*out.X + in.Y*out.Y
	turn := math.Atan2(cross, dot)
	return math.Tan(turn / 4)
}

// BulgeForAngle returns the magnitude of the bulge of an arc sweeping the
// given angle in degrees.
func BulgeForAngle(angle float64) float64 {
	return math.Tan(angle * math.Pi / 180 / 4)
}

// BulgeAngle returns the absolute sweep in degrees encoded by a bulge.
func BulgeAngle(bulge float64) float64 {
	return 4 * math.Atan(math.Abs(bulge)) * 180 / math.Pi
}

// Sagitta returns the rise of an arc over its chord for the given bulge.
func Sagitta(bulge, chord float64) float64 {
	return math.Abs(bulge) * chord / 2
}

// BendSagitta returns the rise over the chord of a bend of the given radius
// and sweep in degrees.
func BendSagitta(radius, angle float64) float64 {
	return radius * (1 - math.Cos(angle*math.Pi/180/2))
}

// BulgeArcPoints tessellates the arc between p1 and p2 described by bulge into
// numSegments straight pieces. Both endpoints are included.
func BulgeArcPoints(p1, p2 Point, bulge float64, numSegments int) []Point {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 || math.Abs(bulge) < 1e-12 {
		return []Point{p1, p2}
	}

	sagitta := Sagitta(bulge, chordLen)
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	// Centre lies on the chord bisector, on the side opposite the bulge.
	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge < 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else if endAngle < startAngle {
		endAngle += 2 * math.Pi
	}

	pts := make([]Point, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		a := startAngle + t*(endAngle-startAngle)
		pts = append(pts, Point{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)})
	}
	return pts
}

// ArcCenter returns the centre and radius of the arc from p1 to p2 with the
// given bulge.
func ArcCenter(p1, p2 Point, bulge float64) (Point, float64) {
	chord := p1.Dist(p2)
	theta := 4 * math.Atan(bulge)
	radius := chord / (2 * math.Abs(math.Sin(theta/2)))
	// Negative for major arcs, which puts the centre across the chord.
	h := radius * math.Cos(theta/2)
	dx, dy := (p2.X-p1.X)/chord, (p2.Y-p1.Y)/chord
	nx, ny := -dy, dx
	if bulge < 0 {
		nx, ny = -nx, -ny
	}
	mid := Point{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2}
	return Point{X: mid.X + nx*h, Y: mid.Y + ny*h}, radius
}

// Flatten expands every bend of the path into straight pieces.
func (p Path) Flatten(segmentsPerBend int) []Point {
	if len(p) == 0 {
		return nil
	}
	var pts []Point
	for i := 0; i < len(p)-1; i++ {
		if p[i].IsBend() {
			arc := BulgeArcPoints(p[i].Point, p[i+1].Point, p[i].Bulge, segmentsPerBend)
			pts = append(pts, arc[:len(arc)-1]...)
			continue
		}
		pts = append(pts, p[i].Point)
	}
	return append(pts, p[len(p)-1].Point)
}
