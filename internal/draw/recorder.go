package draw

import "github.com/piwi3910/BeamDetail/internal/geom"

// Recorder is an in-memory Sink. It keeps primitives in emission order so
// one detailing run can be replayed into several backends.
type Recorder struct {
	Items   []Primitive
	symbols map[string]Symbol
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{symbols: map[string]Symbol{}}
}

func (r *Recorder) Polyline(p Polyline)   { r.Items = append(r.Items, p) }
func (r *Recorder) Circle(c Circle)       { r.Items = append(r.Items, c) }
func (r *Recorder) Fill(f Fill)           { r.Items = append(r.Items, f) }
func (r *Recorder) Hatch(h Hatch)         { r.Items = append(r.Items, h) }
func (r *Recorder) Dimension(d Dimension) { r.Items = append(r.Items, d) }
func (r *Recorder) Text(t Text)           { r.Items = append(r.Items, t) }
func (r *Recorder) Cell(c Cell)           { r.Items = append(r.Items, c) }

func (r *Recorder) HasSymbol(name string) bool {
	_, ok := r.symbols[name]
	return ok
}

func (r *Recorder) DefineSymbol(sym Symbol) {
	r.symbols[sym.Name] = sym
}

// InsertSymbol records a reference to a defined symbol. Unknown names are
// ignored.
func (r *Recorder) InsertSymbol(name string, at geom.Point, scale float64, attrs map[string]string) {
	sym, ok := r.symbols[name]
	if !ok {
		return
	}
	cp := make(map[string]string, len(attrs))
	for k, v := range attrs {
		cp[k] = v
	}
	r.Items = append(r.Items, Insert{Symbol: sym, At: at, Scale: scale, Attrs: cp})
}

// Replay emits every recorded primitive into s in the original order.
func (r *Recorder) Replay(s Sink) {
	for _, it := range r.Items {
		it.Emit(s)
	}
}

// Exploded returns the recorded primitives with every symbol insert
// replaced by its placed content.
func (r *Recorder) Exploded() []Primitive {
	out := make([]Primitive, 0, len(r.Items))
	for _, it := range r.Items {
		if in, ok := it.(Insert); ok {
			out = append(out, in.Symbol.Explode(in.At, in.Scale, in.Attrs)...)
			continue
		}
		out = append(out, it)
	}
	return out
}

// Bounds returns the extents of everything recorded.
func (r *Recorder) Bounds() (geom.Point, geom.Point) {
	return BoundsOf(r.Items)
}

// Polylines returns the recorded polylines on the given layer, or on every
// layer when layer is empty.
func (r *Recorder) Polylines(layer string) []Polyline {
	var out []Polyline
	for _, it := range r.Items {
		if p, ok := it.(Polyline); ok && (layer == "" || p.Layer == layer) {
			out = append(out, p)
		}
	}
	return out
}

// Dimensions returns the recorded dimensions.
func (r *Recorder) Dimensions() []Dimension {
	var out []Dimension
	for _, it := range r.Items {
		if d, ok := it.(Dimension); ok {
			out = append(out, d)
		}
	}
	return out
}

// Texts returns every text, including those inside symbols and cells.
func (r *Recorder) Texts() []string {
	var out []string
	for _, it := range r.Exploded() {
		switch t := it.(type) {
		case Text:
			out = append(out, t.Value)
		case Cell:
			if t.Value != "" {
				out = append(out, t.Value)
			}
		}
	}
	return out
}

// Count returns how many recorded primitives satisfy keep.
func (r *Recorder) Count(keep func(Primitive) bool) int {
	n := 0
	for _, it := range r.Items {
		if keep(it) {
			n++
		}
	}
	return n
}
