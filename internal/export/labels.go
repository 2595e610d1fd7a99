package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/BeamDetail/internal/engine"
	"github.com/piwi3910/BeamDetail/internal/model"
)

// TagInfo holds the data encoded into each bundle tag's QR code.
type TagInfo struct {
	Element   string  `json:"element"`
	Mark      int     `json:"mark"`
	Kind      string  `json:"kind"`
	Diameter  float64 `json:"diameter_mm"`
	Grade     string  `json:"grade"`
	Length    float64 `json:"length_mm"`
	Quantity  int     `json:"quantity"` // bars in the bundle, all elements
	Bends     int     `json:"bends"`
	RequestID string  `json:"request_id"`
}

// Tag layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportBarTags generates a PDF with one QR-coded bundle tag per bar mark.
// Tags are laid out on a standard label sheet (Avery 5160 / 3 columns x 10
// rows on US Letter).
func ExportBarTags(path string, res engine.Result) error {
	tags := CollectTagInfos(res)
	if len(tags) == 0 {
		return fmt.Errorf("no bar marks to generate tags for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, tag := range tags {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderTag(pdf, x, y, tag, tr); err != nil {
			return fmt.Errorf("failed to render tag for mark %d: %w", tag.Mark, err)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write tag file: %w", err)
	}
	return nil
}

// renderTag draws a single bundle tag at the given position.
func renderTag(pdf *fpdf.Fpdf, x, y float64, info TagInfo, tr func(string) string) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal tag info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.Element, info.Mark)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// QR code on the right side of the tag
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	// Truncate the heading if too long
	heading := tr(pdfText(fmt.Sprintf("%s / %d", info.Element, info.Mark)))
	if pdf.GetStringWidth(heading) > textW {
		for len(heading) > 0 && pdf.GetStringWidth(heading+"...") > textW {
			heading = heading[:len(heading)-1]
		}
		heading += "..."
	}
	pdf.CellFormat(textW, 4.5, heading, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	bar := fmt.Sprintf("%d ⌀%s L=%s mm", info.Quantity, model.FormatNumber(info.Diameter), model.FormatNumber(info.Length))
	pdf.CellFormat(textW, 3.5, tr(pdfText(bar)), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, tr(fmt.Sprintf("%s, %s", info.Grade, info.Kind)), "", 1, "L", false, 0, "")

	if info.Bends > 0 {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, fmt.Sprintf("Bends: %d", info.Bends), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectTagInfos builds one tag per bar record of a detailing result.
// Quantities cover every element.
func CollectTagInfos(res engine.Result) []TagInfo {
	elements := res.Config.Elements
	if elements < 1 {
		elements = 1
	}
	tags := make([]TagInfo, 0, len(res.Records))
	for _, r := range res.Records {
		tags = append(tags, TagInfo{
			Element:   r.Element,
			Mark:      r.Number,
			Kind:      r.Kind.String(),
			Diameter:  r.Diameter,
			Grade:     r.Grade,
			Length:    r.Length,
			Quantity:  r.Quantity * elements,
			Bends:     r.Shape.Bends(),
			RequestID: res.RequestID,
		})
	}
	return tags
}
