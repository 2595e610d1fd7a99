package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/BeamDetail/internal/draw"
	"github.com/piwi3910/BeamDetail/internal/geom"
)

// dxfDiameter is the AutoCAD control code for the diameter sign.
const dxfDiameter = "%%c"

// dxfFold maps drawing text onto plain ASCII for R12 TEXT entities, whose
// reading depends on the codepage of the reader.
var dxfFold = strings.NewReplacer(
	"⌀", dxfDiameter, "Ø", dxfDiameter, "°", "%%d", "±", "%%p", "×", "x",
	"ą", "a", "Ą", "A", "ć", "c", "Ć", "C", "ę", "e", "Ę", "E",
	"ł", "l", "Ł", "L", "ń", "n", "Ń", "N", "ó", "o", "Ó", "O",
	"ś", "s", "Ś", "S", "ź", "z", "Ź", "Z", "ż", "z", "Ż", "Z",
	"ä", "ae", "Ä", "Ae", "ö", "oe", "Ö", "Oe", "ü", "ue", "Ü", "Ue", "ß", "ss",
)

// dxfText prepares s for a TEXT entity. Characters without an ASCII
// spelling are written as \U+XXXX escapes.
func dxfText(s string) string {
	s = dxfFold.Replace(s)
	var b strings.Builder
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		fmt.Fprintf(&b, "\\U+%04X", r)
	}
	return b.String()
}

// DXFWriter is a draw.Sink that builds a DXF drawing. Symbols are exploded
// on insertion. Sink methods cannot fail, so the first error is kept and
// returned by SaveAs.
type DXFWriter struct {
	d       *drawing.Drawing
	style   draw.Style
	symbols map[string]draw.Symbol
	layer   string
	err     error
}

// NewDXFWriter creates an empty drawing with one layer per style layer.
func NewDXFWriter(style draw.Style) (*DXFWriter, error) {
	d := dxf.NewDrawing()
	for _, l := range style.Layers.All() {
		lt := dxf.DefaultLineType
		if l.LineType == draw.LineDashed {
			lt = table.LT_HIDDEN
		}
		if _, err := d.AddLayer(l.Name, color.ColorNumber(l.Color), lt, false); err != nil {
			return nil, fmt.Errorf("failed to add layer %s: %w", l.Name, err)
		}
	}
	return &DXFWriter{d: d, style: style, symbols: map[string]draw.Symbol{}}, nil
}

// ExportDXF writes the recorded drawing to path.
func ExportDXF(path string, rec *draw.Recorder, style draw.Style) error {
	w, err := NewDXFWriter(style)
	if err != nil {
		return err
	}
	rec.Replay(w)
	return w.SaveAs(path)
}

// SaveAs writes the drawing to path.
func (w *DXFWriter) SaveAs(path string) error {
	if w.err != nil {
		return w.err
	}
	if err := w.d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF file: %w", err)
	}
	return nil
}

func (w *DXFWriter) fail(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

func (w *DXFWriter) use(layer string) bool {
	if w.err != nil {
		return false
	}
	if layer == w.layer {
		return true
	}
	if err := w.d.ChangeLayer(layer); err != nil {
		w.fail(fmt.Errorf("failed to switch to layer %s: %w", layer, err))
		return false
	}
	w.layer = layer
	return true
}

func (w *DXFWriter) line(a, b geom.Point) {
	_, err := w.d.Line(a.X, a.Y, 0, b.X, b.Y, 0)
	w.fail(err)
}

func (w *DXFWriter) Polyline(p draw.Polyline) {
	if len(p.Path) < 2 || !w.use(p.Layer) {
		return
	}
	verts := make([][]float64, len(p.Path))
	bulges := make([]float64, len(p.Path))
	for i, v := range p.Path {
		verts[i] = []float64{v.X, v.Y}
		bulges[i] = v.Bulge
	}
	lw, err := w.d.LwPolyline(p.Closed, verts...)
	if err != nil {
		w.fail(err)
		return
	}
	if p.Path.Bends() > 0 {
		lw.Bulges = bulges
	}
}

func (w *DXFWriter) Circle(c draw.Circle) {
	if !w.use(c.Layer) {
		return
	}
	_, err := w.d.Circle(c.Center.X, c.Center.Y, 0, c.Radius)
	w.fail(err)
}

// Fill draws concentric circles; the bar sections are a few millimetres
// across, so at drawing scale they read as solid.
func (w *DXFWriter) Fill(f draw.Fill) {
	if !w.use(f.Layer) {
		return
	}
	step := math.Max(f.Radius/4, 0.5)
	for r := f.Radius; r > 0; r -= step {
		_, err := w.d.Circle(f.Center.X, f.Center.Y, 0, r)
		w.fail(err)
	}
}

func (w *DXFWriter) Hatch(h draw.Hatch) {
	if !w.use(h.Layer) {
		return
	}
	for _, s := range draw.HatchLines(h.Boundary, h.Spacing) {
		w.line(s.A, s.B)
	}
}

func (w *DXFWriter) Dimension(d draw.Dimension) {
	if !w.use(d.Layer) {
		return
	}
	height := w.style.ModelText(w.style.TextHeight)
	g := d.Geometry(w.style.ModelText(w.style.ArrowSize), height)
	for _, s := range g.Lines {
		w.line(s.A, s.B)
	}
	w.text(g.Label, g.LabelAt, height, draw.AlignBottomCenter)
}

func (w *DXFWriter) Text(t draw.Text) {
	if !w.use(t.Layer) {
		return
	}
	w.text(t.Value, t.Position, t.Height, t.Align)
}

func (w *DXFWriter) Cell(c draw.Cell) {
	if !w.use(c.Layer) {
		return
	}
	corners := c.Outline()
	verts := make([][]float64, len(corners))
	for i, p := range corners {
		verts[i] = []float64{p.X, p.Y}
	}
	_, err := w.d.LwPolyline(true, verts...)
	w.fail(err)
	if c.Value != "" {
		w.text(c.Value, c.TextAnchor(), c.TextHeight, c.Align)
	}
}

// text places a plain TEXT entity. Its insertion point is the left end of
// the baseline, so the anchor is shifted by the estimated text size.
func (w *DXFWriter) text(value string, at geom.Point, height float64, align draw.Align) {
	if value == "" {
		return
	}
	lo, _ := draw.Text{Position: at, Height: height, Value: value, Align: align}.Bounds()
	value = dxfText(value)
	_, err := w.d.Text(value, lo.X, lo.Y, 0, height)
	w.fail(err)
}

func (w *DXFWriter) HasSymbol(name string) bool {
	_, ok := w.symbols[name]
	return ok
}

func (w *DXFWriter) DefineSymbol(sym draw.Symbol) {
	w.symbols[sym.Name] = sym
}

func (w *DXFWriter) InsertSymbol(name string, at geom.Point, scale float64, attrs map[string]string) {
	sym, ok := w.symbols[name]
	if !ok {
		w.fail(fmt.Errorf("symbol %q is not defined", name))
		return
	}
	for _, p := range sym.Explode(at, scale, attrs) {
		p.Emit(w)
	}
}
