package draw

import "github.com/piwi3910/BeamDetail/internal/geom"

// Sink receives drawing primitives. Implementations own the output file or
// stream; the engine never reads anything back except whether a reusable
// symbol has already been defined.
type Sink interface {
	Polyline(p Polyline)
	Circle(c Circle)
	Fill(f Fill)
	Hatch(h Hatch)
	Dimension(d Dimension)
	Text(t Text)
	Cell(c Cell)

	HasSymbol(name string) bool
	DefineSymbol(sym Symbol)
	InsertSymbol(name string, at geom.Point, scale float64, attrs map[string]string)
}

// SymbolText is a text inside a symbol. When Attr is set the text value is
// taken from the insert's attributes.
type SymbolText struct {
	Text
	Attr string
}

// Symbol is a reusable group of primitives in paper units, placed with
// InsertSymbol at a model-space point and scale.
type Symbol struct {
	Name    string
	Lines   []Polyline
	Circles []Circle
	Texts   []SymbolText
}

// Explode returns the symbol's primitives placed at at and scaled, with
// attribute texts filled from attrs.
func (sym Symbol) Explode(at geom.Point, scale float64, attrs map[string]string) []Primitive {
	place := func(p geom.Point) geom.Point {
		return geom.Point{X: at.X + p.X*scale, Y: at.Y + p.Y*scale}
	}

	var out []Primitive
	for _, l := range sym.Lines {
		path := make(geom.Path, len(l.Path))
		for i, v := range l.Path {
			path[i] = geom.Vertex{Point: place(v.Point), Bulge: v.Bulge}
		}
		out = append(out, Polyline{Layer: l.Layer, Path: path, Closed: l.Closed})
	}
	for _, c := range sym.Circles {
		out = append(out, Circle{Layer: c.Layer, Center: place(c.Center), Radius: c.Radius * scale})
	}
	for _, t := range sym.Texts {
		value := t.Value
		if t.Attr != "" {
			value = attrs[t.Attr]
		}
		out = append(out, Text{
			Layer:    t.Layer,
			Position: place(t.Position),
			Height:   t.Height * scale,
			Value:    value,
			Align:    t.Align,
			Rotation: t.Rotation,
		})
	}
	return out
}

// Insert is a placed symbol reference.
type Insert struct {
	Symbol Symbol
	At     geom.Point
	Scale  float64
	Attrs  map[string]string
}

func (in Insert) Emit(s Sink) {
	if !s.HasSymbol(in.Symbol.Name) {
		s.DefineSymbol(in.Symbol)
	}
	s.InsertSymbol(in.Symbol.Name, in.At, in.Scale, in.Attrs)
}

func (in Insert) Bounds() (geom.Point, geom.Point) {
	return BoundsOf(in.Symbol.Explode(in.At, in.Scale, in.Attrs))
}

// BoundsOf returns the extents of all primitives.
func BoundsOf(items []Primitive) (geom.Point, geom.Point) {
	var pts []geom.Point
	for _, it := range items {
		lo, hi := it.Bounds()
		pts = append(pts, lo, hi)
	}
	return boundsOf(pts)
}
