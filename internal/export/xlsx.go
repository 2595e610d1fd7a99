package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BeamDetail/internal/engine"
	"github.com/piwi3910/BeamDetail/internal/model"
)

// Sheet names of the schedule workbook.
const (
	SheetSchedule = "Schedule"
	SheetCutting  = "Cutting"
)

// ExportScheduleXLSX writes the bending schedule of res to an Excel
// workbook. When plan is not nil a second sheet lists the stock bars.
func ExportScheduleXLSX(path string, res engine.Result, plan *engine.CutPlan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSchedule); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeScheduleSheet(f, res); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}
	if plan != nil {
		if _, err := f.NewSheet(SheetCutting); err != nil {
			return fmt.Errorf("failed to add sheet: %w", err)
		}
		if err := writeCuttingSheet(f, *plan); err != nil {
			return fmt.Errorf("failed to write cutting plan: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// cell returns the A1 name of the 1-based column and row.
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for i, v := range values {
		if err := f.SetCellValue(sheet, cell(i+1, row), v); err != nil {
			return err
		}
	}
	return nil
}

func writeScheduleSheet(f *excelize.File, res engine.Result) error {
	t, lb := res.Schedule, res.Labels
	sh := SheetSchedule
	lastCol := 5 + max(len(t.Columns), 1)

	bold, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	// Title and element
	if err := f.SetCellValue(sh, cell(1, 1), lb.BendingSchedule); err != nil {
		return err
	}
	if err := f.MergeCell(sh, cell(1, 1), cell(lastCol, 1)); err != nil {
		return err
	}
	element := fmt.Sprintf("%s: %s", lb.Element, t.Element)
	if err := setRow(f, sh, 2, element); err != nil {
		return err
	}
	if err := f.SetCellValue(sh, cell(lastCol, 2), fmt.Sprintf("%s %d %s", lb.Make, t.Elements, lb.Pcs)); err != nil {
		return err
	}

	// Header: fixed columns over two rows, then one column per grade and diameter
	headers := []string{lb.Mark, lb.Dia, lb.LengthBar + " [" + lb.LengthMM + "]", lb.NumberInElement, lb.TotalNumber}
	for i, h := range headers {
		if err := f.SetCellValue(sh, cell(i+1, 3), h); err != nil {
			return err
		}
		if err := f.MergeCell(sh, cell(i+1, 3), cell(i+1, 4)); err != nil {
			return err
		}
	}
	if err := f.SetCellValue(sh, cell(6, 3), lb.TotalLengthDia+" ["+lb.LengthM+"]"); err != nil {
		return err
	}
	if err := f.MergeCell(sh, cell(6, 3), cell(lastCol, 3)); err != nil {
		return err
	}
	for c, col := range t.Columns {
		if err := f.SetCellValue(sh, cell(6+c, 4), fmt.Sprintf("%s ⌀%s", col.Grade, model.FormatNumber(col.Diameter))); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sh, cell(1, 3), cell(lastCol, 4), bold); err != nil {
		return err
	}

	row := 5
	for _, r := range t.Rows {
		values := []any{r.Record.Number, r.Record.Diameter, r.Record.Length, r.Record.Quantity, r.TotalQuantity}
		for c := range t.Columns {
			if c == r.Column {
				values = append(values, r.TotalLength)
			} else {
				values = append(values, "-")
			}
		}
		if err := setRow(f, sh, row, values...); err != nil {
			return err
		}
		row++
	}

	footer := []struct {
		label  string
		values []float64
	}{
		{lb.TotalLengthDia + " [" + lb.LengthM + "]", t.TotalLength},
		{lb.Mass1m + " [kg/m]", t.MassPerMeter},
		{lb.MassLength + " [" + lb.Mass + "]", t.Mass},
	}
	for _, ft := range footer {
		if err := f.SetCellValue(sh, cell(1, row), ft.label); err != nil {
			return err
		}
		if err := f.MergeCell(sh, cell(1, row), cell(5, row)); err != nil {
			return err
		}
		for c, v := range ft.values {
			if err := f.SetCellValue(sh, cell(6+c, row), v); err != nil {
				return err
			}
		}
		row++
	}
	if err := f.SetCellValue(sh, cell(1, row), lb.MassTotal+" ["+lb.Mass+"]"); err != nil {
		return err
	}
	if err := f.MergeCell(sh, cell(1, row), cell(5, row)); err != nil {
		return err
	}
	if err := f.SetCellValue(sh, cell(6, row), t.TotalMass); err != nil {
		return err
	}
	if err := f.MergeCell(sh, cell(6, row), cell(lastCol, row)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, cell(1, row-3), cell(5, row), bold); err != nil {
		return err
	}

	for i, w := range res.Warnings {
		if err := f.SetCellValue(sh, cell(1, row+2+i), w); err != nil {
			return err
		}
	}

	return f.SetColWidth(sh, "A", "E", 14)
}

func writeCuttingSheet(f *excelize.File, plan engine.CutPlan) error {
	sh := SheetCutting
	if err := setRow(f, sh, 1, "Grade", "Diameter", "Stock bar", "Stock length", "Used", "Offcut", "Pieces"); err != nil {
		return err
	}
	row := 2
	for _, g := range plan.Groups {
		offcuts := g.Offcuts()
		for i, b := range g.Bars {
			pieces := ""
			for j, p := range b.Pieces {
				if j > 0 {
					pieces += " "
				}
				pieces += fmt.Sprintf("%d:%s", p.Mark, model.FormatNumber(p.Length))
			}
			if err := setRow(f, sh, row, g.Grade, g.Diameter, i+1, g.StockLength, b.Used, offcuts[i], pieces); err != nil {
				return err
			}
			row++
		}
		for _, p := range g.Unplaced {
			if err := setRow(f, sh, row, g.Grade, g.Diameter, "-", g.StockLength, "-", "-", fmt.Sprintf("%d:%s too long", p.Mark, model.FormatNumber(p.Length))); err != nil {
				return err
			}
			row++
		}
	}
	return f.SetColWidth(sh, "A", "G", 14)
}
