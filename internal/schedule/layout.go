package schedule

import (
	"strconv"

	"github.com/piwi3910/BeamDetail/internal/draw"
	"github.com/piwi3910/BeamDetail/internal/geom"
	"github.com/piwi3910/BeamDetail/internal/model"
)

// Fixed paper sizes of the schedule grid, in mm.
const (
	markWidth    = 10.0
	fieldWidth   = 15.0
	commentWidth = 20.0
	titleHeight  = 10.0
	rowHeight    = 5.0
	footerRows   = 4
	fixedColumns = 5 // mark, diameter, length, number in element, total number
	headerRows   = 4 // title plus three header rows
)

// Grid places cells on a table whose column widths and row heights are
// declared once. Sizes are paper millimetres; Scale converts to model space.
// Rows grow downward from Origin, the upper left corner.
type Grid struct {
	Origin geom.Point
	Cols   []float64
	Rows   []float64
	Scale  float64
}

// Span returns the upper left corner and model-space size of the block from
// column c0 to c1 and row r0 to r1, inclusive.
func (g Grid) Span(c0, r0, c1, r1 int) (geom.Point, float64, float64) {
	x := sum(g.Cols[:c0]) * g.Scale
	y := sum(g.Rows[:r0]) * g.Scale
	w := sum(g.Cols[c0:c1+1]) * g.Scale
	h := sum(g.Rows[r0:r1+1]) * g.Scale
	return geom.Point{X: g.Origin.X + x, Y: g.Origin.Y - y}, w, h
}

// Width returns the full model-space width of the grid.
func (g Grid) Width() float64 { return sum(g.Cols) * g.Scale }

// Height returns the full model-space height of the grid.
func (g Grid) Height() float64 { return sum(g.Rows) * g.Scale }

// NewGrid sizes the schedule grid for a table.
func NewGrid(t Table, origin geom.Point, scale float64) Grid {
	n := max(len(t.Columns), 1)
	cols := []float64{markWidth, fieldWidth, fieldWidth, fieldWidth, fieldWidth}
	for i := 0; i < n; i++ {
		cols = append(cols, fieldWidth)
	}
	cols = append(cols, commentWidth)

	rows := []float64{titleHeight, rowHeight, rowHeight, rowHeight, rowHeight}
	for i := 0; i < len(t.Rows)+footerRows; i++ {
		rows = append(rows, rowHeight)
	}
	return Grid{Origin: origin, Cols: cols, Rows: rows, Scale: scale}
}

// Layout lays the table out as cells with its upper left corner at origin.
func Layout(t Table, lb Labels, st draw.Style, origin geom.Point) []draw.Primitive {
	g := NewGrid(t, origin, st.Scale)
	layer := st.Layers.Outline.Name
	textH := st.ModelText(st.TextHeight)
	n := max(len(t.Columns), 1)
	firstDia := fixedColumns
	lastDia := fixedColumns + n - 1
	comment := lastDia + 1

	var out []draw.Primitive
	cell := func(c0, r0, c1, r1 int, value string, align draw.Align) draw.Cell {
		tl, w, h := g.Span(c0, r0, c1, r1)
		c := draw.Cell{Layer: layer, TopLeft: tl, Width: w, Height: h, Value: value, TextHeight: textH, Align: align}
		out = append(out, c)
		return c
	}
	// rightText adds a second, right-aligned text inside an emitted cell.
	rightText := func(c draw.Cell, value string) {
		c.Align = draw.AlignMiddleRight
		out = append(out, draw.Text{Layer: layer, Position: c.TextAnchor(), Height: textH, Value: value, Align: draw.AlignMiddleRight})
	}

	title := cell(0, 0, comment, 0, lb.BendingSchedule, draw.AlignMiddleCenter)
	out[len(out)-1] = withTextHeight(title, st.ModelText(st.TitleHeight))

	cell(0, 1, 0, 3, lb.Mark, draw.AlignMiddleCenter)
	cell(1, 1, 1, 2, lb.Dia, draw.AlignMiddleCenter)
	cell(1, 3, 1, 3, lb.LengthMM, draw.AlignMiddleCenter)
	cell(2, 1, 2, 2, lb.LengthBar, draw.AlignMiddleCenter)
	cell(2, 3, 2, 3, lb.LengthMM, draw.AlignMiddleCenter)
	cell(3, 1, 3, 2, lb.NumberInElement, draw.AlignMiddleCenter)
	cell(3, 3, 3, 3, lb.Pcs, draw.AlignMiddleCenter)
	cell(4, 1, 4, 2, lb.TotalNumber, draw.AlignMiddleCenter)
	cell(4, 3, 4, 3, lb.Pcs, draw.AlignMiddleCenter)
	cell(firstDia, 1, lastDia, 1, lb.TotalLength, draw.AlignMiddleCenter)
	col := firstDia
	for _, gc := range t.Grades {
		cell(col, 2, col+len(gc.Diameters)-1, 2, gc.Grade, draw.AlignMiddleCenter)
		for _, d := range gc.Diameters {
			cell(col, 3, col, 3, "⌀"+model.FormatNumber(d), draw.AlignMiddleCenter)
			col++
		}
	}
	cell(comment, 1, comment, 3, lb.Comments, draw.AlignMiddleCenter)

	elementRow := headerRows
	ec := cell(0, elementRow, comment, elementRow, lb.Element+" "+t.Element, draw.AlignMiddleLeft)
	rightText(ec, lb.Make+" "+strconv.Itoa(t.Elements)+" "+lb.Pcs)

	for i, row := range t.Rows {
		r := elementRow + 1 + i
		rec := row.Record
		cell(0, r, 0, r, strconv.Itoa(rec.Number), draw.AlignMiddleCenter)
		cell(1, r, 1, r, "⌀"+model.FormatNumber(rec.Diameter), draw.AlignMiddleCenter)
		cell(2, r, 2, r, model.FormatNumber(rec.Length), draw.AlignMiddleCenter)
		cell(3, r, 3, r, strconv.Itoa(rec.Quantity), draw.AlignMiddleCenter)
		cell(4, r, 4, r, strconv.Itoa(row.TotalQuantity), draw.AlignMiddleCenter)
		for j := 0; j < n; j++ {
			value := "-"
			if j == row.Column {
				value = model.FormatNumber(row.TotalLength)
			}
			cell(firstDia+j, r, firstDia+j, r, value, draw.AlignMiddleCenter)
		}
		cell(comment, r, comment, r, "", draw.AlignMiddleCenter)
	}

	footer := []struct {
		label, unit string
		values      []float64
	}{
		{lb.TotalLengthDia, lb.LengthM, t.TotalLength},
		{lb.Mass1m, lb.MassLength, t.MassPerMeter},
		{lb.MassAccordingDia, lb.Mass, t.Mass},
		{lb.MassTotal, lb.Mass, nil},
	}
	for k, f := range footer {
		r := elementRow + 1 + len(t.Rows) + k
		lc := cell(0, r, fixedColumns-1, r, f.label, draw.AlignMiddleLeft)
		rightText(lc, f.unit)
		if f.values == nil {
			cell(firstDia, r, lastDia, r, model.FormatNumber(t.TotalMass), draw.AlignMiddleCenter)
		} else {
			for j := 0; j < n; j++ {
				value := ""
				if j < len(f.values) {
					value = model.FormatNumber(f.values[j])
				}
				cell(firstDia+j, r, firstDia+j, r, value, draw.AlignMiddleCenter)
			}
		}
		cell(comment, r, comment, r, "", draw.AlignMiddleCenter)
	}
	return out
}

func withTextHeight(c draw.Cell, h float64) draw.Cell {
	c.TextHeight = h
	return c
}

func sum(vs []float64) float64 {
	total := 0.0
	for _, v := range vs {
		total += v
	}
	return total
}
