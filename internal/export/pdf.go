// Package export writes detailing results to files: DXF drawings, PDF
// sheets, Excel schedules, bar tags and section previews.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/BeamDetail/internal/draw"
	"github.com/piwi3910/BeamDetail/internal/engine"
	"github.com/piwi3910/BeamDetail/internal/geom"
	"github.com/piwi3910/BeamDetail/internal/model"
)

// rgb is a PDF drawing colour.
type rgb struct {
	R, G, B int
}

// aciColors maps the AutoCAD colour indices of the style onto colours that
// read well on white paper.
var aciColors = map[int]rgb{
	draw.ColorRed:     {R: 220, G: 0, B: 0},
	draw.ColorYellow:  {R: 190, G: 150, B: 0},
	draw.ColorGreen:   {R: 0, G: 140, B: 0},
	draw.ColorCyan:    {R: 0, G: 140, B: 170},
	draw.ColorBlue:    {R: 0, G: 0, B: 220},
	draw.ColorMagenta: {R: 190, G: 0, B: 190},
	draw.ColorWhite:   {R: 0, G: 0, B: 0},
	draw.ColorGray:    {R: 128, G: 128, B: 128},
}

// Page layout constants (A3 landscape in mm).
const (
	pageWidth    = 420.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	ptPerMM      = 72 / 25.4
)

// ExportPDF writes a two page PDF: the recorded drawing scaled to fit the
// first page, and the bending schedule with any warnings on the second.
func ExportPDF(path string, rec *draw.Recorder, res engine.Result, style draw.Style) error {
	if len(rec.Items) == 0 {
		return fmt.Errorf("no drawing to export")
	}

	pdf := fpdf.New("L", "mm", "A3", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(pdfText(s)) }

	pdf.AddPage()
	renderDrawingPage(pdf, rec, res, style, text)

	pdf.AddPage()
	renderSchedulePage(pdf, res, text)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF file: %w", err)
	}
	return nil
}

// pageMapper converts model coordinates to page millimetres. Model y grows
// up, page y grows down.
type pageMapper struct {
	scale      float64
	lo, hi     geom.Point
	offX, offY float64
}

func newPageMapper(lo, hi geom.Point, x, y, w, h float64) pageMapper {
	mw := math.Max(hi.X-lo.X, 1)
	mh := math.Max(hi.Y-lo.Y, 1)
	scale := math.Min(w/mw, h/mh)
	return pageMapper{
		scale: scale,
		lo:    lo,
		hi:    hi,
		offX:  x + (w-mw*scale)/2,
		offY:  y,
	}
}

func (m pageMapper) pt(p geom.Point) (float64, float64) {
	return m.offX + (p.X-m.lo.X)*m.scale, m.offY + (m.hi.Y-p.Y)*m.scale
}

func (m pageMapper) line(pdf *fpdf.Fpdf, a, b geom.Point) {
	x1, y1 := m.pt(a)
	x2, y2 := m.pt(b)
	pdf.Line(x1, y1, x2, y2)
}

// renderDrawingPage draws every recorded primitive with its layer colour.
func renderDrawingPage(pdf *fpdf.Fpdf, rec *draw.Recorder, res engine.Result, style draw.Style, text func(string) string) {
	cfg := res.Config

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Beam %s: %.0f x %.0f mm, span %.0f mm", cfg.Name, cfg.Width, cfg.Height, cfg.Span)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, text(title), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Elements: %d | Stirrups: %d | Marks: %d | Steel: %.1f kg",
		cfg.Elements, res.Layout.Count(), len(res.Records), res.Schedule.TotalMass)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, text(stats), "", 0, "L", false, 0, "")

	items := rec.Exploded()
	lo, hi := draw.BoundsOf(items)
	m := newPageMapper(lo, hi, marginLeft, drawAreaTop,
		pageWidth-marginLeft-marginRight, pageHeight-drawAreaTop-marginBottom)

	layers := map[string]draw.Layer{}
	for _, l := range style.Layers.All() {
		layers[l.Name] = l
	}
	setLayer := func(name string) {
		l := layers[name]
		col, ok := aciColors[l.Color]
		if !ok {
			col = aciColors[draw.ColorWhite]
		}
		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetTextColor(col.R, col.G, col.B)
		if l.LineType == draw.LineDashed {
			pdf.SetDashPattern([]float64{2, 1}, 0)
		} else {
			pdf.SetDashPattern([]float64{}, 0)
		}
	}

	pdf.SetLineWidth(0.2)
	for _, it := range items {
		switch p := it.(type) {
		case draw.Polyline:
			setLayer(p.Layer)
			pts := p.Path.Flatten(8)
			for i := 1; i < len(pts); i++ {
				m.line(pdf, pts[i-1], pts[i])
			}
			if p.Closed && len(pts) > 2 {
				m.line(pdf, pts[len(pts)-1], pts[0])
			}
		case draw.Circle:
			setLayer(p.Layer)
			x, y := m.pt(p.Center)
			pdf.Circle(x, y, p.Radius*m.scale, "D")
		case draw.Fill:
			setLayer(p.Layer)
			x, y := m.pt(p.Center)
			pdf.Circle(x, y, p.Radius*m.scale, "F")
		case draw.Hatch:
			setLayer(p.Layer)
			for _, s := range draw.HatchLines(p.Boundary, p.Spacing) {
				m.line(pdf, s.A, s.B)
			}
		case draw.Dimension:
			setLayer(p.Layer)
			height := style.ModelText(style.TextHeight)
			g := p.Geometry(style.ModelText(style.ArrowSize), height/2)
			for _, s := range g.Lines {
				m.line(pdf, s.A, s.B)
			}
			placeText(pdf, m, text(g.Label), g.LabelAt, height, draw.AlignBottomCenter, g.Rotation)
		case draw.Text:
			setLayer(p.Layer)
			placeText(pdf, m, text(p.Value), p.Position, p.Height, p.Align, p.Rotation)
		case draw.Cell:
			setLayer(p.Layer)
			x, y := m.pt(p.TopLeft)
			pdf.Rect(x, y, p.Width*m.scale, p.Height*m.scale, "D")
			if p.Value != "" {
				placeText(pdf, m, text(p.Value), p.TextAnchor(), p.TextHeight, p.Align, 0)
			}
		}
	}
	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetTextColor(0, 0, 0)
}

// placeText writes value anchored at the model point at. Height is in model
// units and is converted to a font size in points.
func placeText(pdf *fpdf.Fpdf, m pageMapper, value string, at geom.Point, height float64, align draw.Align, rotation float64) {
	if value == "" {
		return
	}
	size := height * m.scale
	if size < 0.5 {
		return
	}
	pdf.SetFont("Helvetica", "", size*ptPerMM)
	w := pdf.GetStringWidth(value)

	x, y := m.pt(at)
	dx, dy := -w/2, size/2 // baseline offset for middle alignment
	switch align {
	case draw.AlignMiddleLeft:
		dx = 0
	case draw.AlignMiddleRight:
		dx = -w
	case draw.AlignBottomCenter:
		dy = 0
	case draw.AlignBottomLeft:
		dx, dy = 0, 0
	}

	if rotation != 0 {
		pdf.TransformBegin()
		pdf.TransformRotate(rotation, x, y)
		pdf.Text(x+dx, y+dy, value)
		pdf.TransformEnd()
		return
	}
	pdf.Text(x+dx, y+dy, value)
}

// renderSchedulePage draws the bending schedule as a table, followed by
// warnings and a footer with the request id.
func renderSchedulePage(pdf *fpdf.Fpdf, res engine.Result, text func(string) string) {
	t, lb := res.Schedule, res.Labels

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, text(lb.BendingSchedule), "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	element := fmt.Sprintf("%s: %s | %s %d %s", lb.Element, t.Element, lb.Make, t.Elements, lb.Pcs)
	pdf.CellFormat(200, 7, text(element), "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 20, 30, 30, 30}
	headers := []string{lb.Mark, lb.Dia, lb.LengthBar + " [" + lb.LengthMM + "]", lb.NumberInElement, lb.TotalNumber}
	for _, c := range t.Columns {
		colWidths = append(colWidths, 25)
		headers = append(headers, fmt.Sprintf("%s ⌀%s", c.Grade, model.FormatNumber(c.Diameter)))
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, text(header), "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range t.Rows {
		r := row.Record
		cells := []string{
			fmt.Sprintf("%d", r.Number),
			"⌀" + model.FormatNumber(r.Diameter),
			model.FormatNumber(r.Length),
			fmt.Sprintf("%d", r.Quantity),
			fmt.Sprintf("%d", row.TotalQuantity),
		}
		for c := range t.Columns {
			if c == row.Column {
				cells = append(cells, fmt.Sprintf("%.2f", row.TotalLength))
			} else {
				cells = append(cells, "-")
			}
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range cells {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, text(cell), "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	labelWidth := sumWidths(colWidths[:5])
	footer := []struct {
		label  string
		unit   string
		values []float64
		format string
	}{
		{lb.TotalLengthDia, lb.LengthM, t.TotalLength, "%.2f"},
		{lb.Mass1m, "kg/m", t.MassPerMeter, "%.3f"},
		{lb.MassLength, lb.Mass, t.Mass, "%.1f"},
	}
	pdf.SetFillColor(255, 255, 255)
	for _, f := range footer {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(labelWidth, 6, text(f.label+" ["+f.unit+"]"), "1", 0, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		xPos = marginLeft + labelWidth
		for c, v := range f.values {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[5+c], 6, fmt.Sprintf(f.format, v), "1", 0, "C", false, 0, "")
			xPos += colWidths[5+c]
		}
		y += 6
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(labelWidth, 6, text(lb.MassTotal+" ["+lb.Mass+"]"), "1", 0, "R", false, 0, "")
	pdf.SetXY(marginLeft+labelWidth, y)
	pdf.CellFormat(math.Max(sumWidths(colWidths[5:]), 25), 6, fmt.Sprintf("%.1f", t.TotalMass), "1", 0, "C", false, 0, "")
	y += 6

	if len(res.Warnings) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, w := range res.Warnings {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(300, 5, text("- "+w), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BeamDetail - request "+res.RequestID, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func sumWidths(ws []float64) float64 {
	total := 0.0
	for _, w := range ws {
		total += w
	}
	return total
}

// pdfFold replaces characters the core PDF fonts cannot show.
var pdfFold = strings.NewReplacer(
	"⌀", "Ø",
	"ą", "a", "Ą", "A", "ć", "c", "Ć", "C", "ę", "e", "Ę", "E",
	"ł", "l", "Ł", "L", "ń", "n", "Ń", "N", "ś", "s", "Ś", "S",
	"ź", "z", "Ź", "Z", "ż", "z", "Ż", "Z",
)

// pdfText prepares s for the cp1252 core fonts.
func pdfText(s string) string {
	return pdfFold.Replace(s)
}
