package draw

import (
	"math"
	"strings"

	"github.com/piwi3910/BeamDetail/internal/geom"
	"github.com/piwi3910/BeamDetail/internal/model"
)

// MeasuredText is the placeholder in a dimension text that backends
// replace with the measured distance.
const MeasuredText = "<>"

// Align is the anchor of a text relative to its position, following the
// MTEXT attachment points.
type Align int

const (
	AlignMiddleCenter Align = iota
	AlignMiddleLeft
	AlignMiddleRight
	AlignBottomCenter
	AlignBottomLeft
)

// DimKind selects between the two dimension looks: ticks with extension
// lines for the beam, bare lines for bar shapes.
type DimKind int

const (
	DimStandard DimKind = iota
	DimBar
)

// Primitive is anything a Sink can draw.
type Primitive interface {
	Emit(s Sink)
	Bounds() (min, max geom.Point)
}

// Polyline is an open or closed chain of vertices. Vertices with a bulge
// are followed by an arc.
type Polyline struct {
	Layer  string
	Path   geom.Path
	Closed bool
}

func (p Polyline) Emit(s Sink) { s.Polyline(p) }

func (p Polyline) Bounds() (geom.Point, geom.Point) {
	return boundsOf(p.Path.Flatten(8))
}

// Circle is an outline circle.
type Circle struct {
	Layer  string
	Center geom.Point
	Radius float64
}

func (c Circle) Emit(s Sink) { s.Circle(c) }

func (c Circle) Bounds() (geom.Point, geom.Point) {
	return c.Center.Add(-c.Radius, -c.Radius), c.Center.Add(c.Radius, c.Radius)
}

// Fill is a solid filled disc, used for bar cross-sections.
type Fill struct {
	Layer  string
	Center geom.Point
	Radius float64
}

func (f Fill) Emit(s Sink) { s.Fill(f) }

func (f Fill) Bounds() (geom.Point, geom.Point) {
	return f.Center.Add(-f.Radius, -f.Radius), f.Center.Add(f.Radius, f.Radius)
}

// Hatch is a closed boundary filled with a line pattern.
type Hatch struct {
	Layer    string
	Boundary []geom.Point
	Pattern  string
	Spacing  float64 // model-space distance between pattern lines
}

func (h Hatch) Emit(s Sink) { s.Hatch(h) }

func (h Hatch) Bounds() (geom.Point, geom.Point) { return boundsOf(h.Boundary) }

// Dimension is a linear dimension. The dimension line passes through Base
// and is drawn at Angle degrees; P1 and P2 are the measured points. Text
// may contain MeasuredText.
type Dimension struct {
	Layer string
	Kind  DimKind
	Base  geom.Point
	P1    geom.Point
	P2    geom.Point
	Angle float64
	Text  string
}

func (d Dimension) Emit(s Sink) { s.Dimension(d) }

func (d Dimension) Bounds() (geom.Point, geom.Point) {
	a, b := d.LinePoints()
	return boundsOf([]geom.Point{d.P1, d.P2, a, b})
}

// Measurement returns the distance between P1 and P2 projected on the
// dimension direction.
func (d Dimension) Measurement() float64 {
	rad := d.Angle * math.Pi / 180
	dx, dy := d.P2.X-d.P1.X, d.P2.Y-d.P1.Y
	return math.Abs(dx*math.Cos(rad) + dy*math.Sin(rad))
}

// Label returns the dimension text with the measurement filled in.
func (d Dimension) Label() string {
	text := d.Text
	if text == "" {
		text = MeasuredText
	}
	return strings.ReplaceAll(text, MeasuredText, model.FormatNumber(geom.RoundTo(d.Measurement(), 1)))
}

// LinePoints returns the two ends of the dimension line: P1 and P2
// projected onto the line through Base at Angle.
func (d Dimension) LinePoints() (geom.Point, geom.Point) {
	rad := d.Angle * math.Pi / 180
	ux, uy := math.Cos(rad), math.Sin(rad)
	project := func(p geom.Point) geom.Point {
		t := (p.X-d.Base.X)*ux + (p.Y-d.Base.Y)*uy
		return geom.Point{X: d.Base.X + t*ux, Y: d.Base.Y + t*uy}
	}
	return project(d.P1), project(d.P2)
}

// Text is a single line of text. Height is in model space.
type Text struct {
	Layer    string
	Position geom.Point
	Height   float64
	Value    string
	Align    Align
	Rotation float64
}

func (t Text) Emit(s Sink) { s.Text(t) }

func (t Text) Bounds() (geom.Point, geom.Point) {
	w := t.Height * 0.6 * float64(len([]rune(t.Value)))
	x0, y0 := -w/2, -t.Height/2
	switch t.Align {
	case AlignMiddleLeft, AlignBottomLeft:
		x0 = 0
	case AlignMiddleRight:
		x0 = -w
	}
	if t.Align == AlignBottomCenter || t.Align == AlignBottomLeft {
		y0 = 0
	}
	return t.Position.Add(x0, y0), t.Position.Add(x0+w, y0+t.Height)
}

// Cell is a rectangular table cell with an optional text. TopLeft is the
// upper left corner; Width and Height are in model space.
type Cell struct {
	Layer      string
	TopLeft    geom.Point
	Width      float64
	Height     float64
	Value      string
	TextHeight float64
	Align      Align
}

func (c Cell) Emit(s Sink) { s.Cell(c) }

func (c Cell) Bounds() (geom.Point, geom.Point) {
	return c.TopLeft.Add(0, -c.Height), c.TopLeft.Add(c.Width, 0)
}

// TextAnchor returns where the cell text is placed for its alignment,
// keeping a margin of one text height from the cell sides.
func (c Cell) TextAnchor() geom.Point {
	midY := c.TopLeft.Y - c.Height/2
	switch c.Align {
	case AlignMiddleLeft:
		return geom.Point{X: c.TopLeft.X + c.TextHeight/2.5, Y: midY}
	case AlignMiddleRight:
		return geom.Point{X: c.TopLeft.X + c.Width - c.TextHeight/2.5, Y: midY}
	default:
		return geom.Point{X: c.TopLeft.X + c.Width/2, Y: midY}
	}
}

// Outline returns the closed rectangle of the cell.
func (c Cell) Outline() []geom.Point {
	x, y := c.TopLeft.X, c.TopLeft.Y
	return []geom.Point{{X: x, Y: y}, {X: x + c.Width, Y: y}, {X: x + c.Width, Y: y - c.Height}, {X: x, Y: y - c.Height}}
}

// Rect returns a closed polyline through the four corners.
func Rect(layer string, x, y, w, h float64) Polyline {
	return Polyline{
		Layer: layer,
		Path: geom.Path{
			{Point: geom.Point{X: x, Y: y}},
			{Point: geom.Point{X: x + w, Y: y}},
			{Point: geom.Point{X: x + w, Y: y + h}},
			{Point: geom.Point{X: x, Y: y + h}},
		},
		Closed: true,
	}
}

// Line returns a two-point polyline.
func Line(layer string, a, b geom.Point) Polyline {
	return Polyline{Layer: layer, Path: geom.Path{{Point: a}, {Point: b}}}
}

func boundsOf(pts []geom.Point) (geom.Point, geom.Point) {
	if len(pts) == 0 {
		return geom.Point{}, geom.Point{}
	}
	min, max := pts[0], pts[0]
	for _, p := range pts[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}
