package schedule

import (
	"github.com/piwi3910/BeamDetail/internal/geom"
	"github.com/piwi3910/BeamDetail/internal/model"
)

// GradeColumns lists the diameters used with one steel grade, in first-use
// order.
type GradeColumns struct {
	Grade     string
	Diameters []float64
}

// Column is one (grade, diameter) column of the total length block.
type Column struct {
	Grade    string
	Diameter float64
}

// Row is one bar mark of the schedule.
type Row struct {
	Record        model.BarRecord
	TotalQuantity int
	Column        int     // index into Table.Columns
	TotalLength   float64 // metres for all elements, rounded to 0.01
}

// Table is the aggregated bending schedule of one beam.
type Table struct {
	Element      string
	Elements     int
	Grades       []GradeColumns
	Columns      []Column
	Rows         []Row
	TotalLength  []float64 // per column, metres
	MassPerMeter []float64 // per column, kg/m
	Mass         []float64 // per column, kg rounded to 0.1
	TotalMass    float64
}

// Build aggregates records into a schedule table. Grades and diameters keep
// the order they first appear in; rows keep the record order.
func Build(records []model.BarRecord, element string, elements int, density float64) Table {
	if elements < 1 {
		elements = 1
	}
	t := Table{Element: element, Elements: elements}

	gradeIndex := map[string]int{}
	for _, r := range records {
		gi, ok := gradeIndex[r.Grade]
		if !ok {
			gi = len(t.Grades)
			gradeIndex[r.Grade] = gi
			t.Grades = append(t.Grades, GradeColumns{Grade: r.Grade})
		}
		if !containsDiameter(t.Grades[gi].Diameters, r.Diameter) {
			t.Grades[gi].Diameters = append(t.Grades[gi].Diameters, r.Diameter)
		}
	}
	for _, g := range t.Grades {
		for _, d := range g.Diameters {
			t.Columns = append(t.Columns, Column{Grade: g.Grade, Diameter: d})
		}
	}

	t.TotalLength = make([]float64, len(t.Columns))
	for _, r := range records {
		col := t.columnOf(r.Grade, r.Diameter)
		total := geom.RoundTo(r.Length/1000*float64(r.Quantity*elements), 2)
		t.Rows = append(t.Rows, Row{
			Record:        r,
			TotalQuantity: r.Quantity * elements,
			Column:        col,
			TotalLength:   total,
		})
		t.TotalLength[col] += total
	}

	t.MassPerMeter = make([]float64, len(t.Columns))
	t.Mass = make([]float64, len(t.Columns))
	for i, c := range t.Columns {
		t.TotalLength[i] = geom.RoundTo(t.TotalLength[i], 2)
		t.MassPerMeter[i] = geom.MassPerMeter(c.Diameter, density)
		t.Mass[i] = geom.RoundTo(t.TotalLength[i]*t.MassPerMeter[i], 1)
		t.TotalMass += t.Mass[i]
	}
	t.TotalMass = geom.RoundTo(t.TotalMass, 1)
	return t
}

func (t Table) columnOf(grade string, diameter float64) int {
	for i, c := range t.Columns {
		if c.Grade == grade && c.Diameter == diameter {
			return i
		}
	}
	return -1
}

// LengthByDiameter returns the total length in metres per diameter, summed
// over grades.
func (t Table) LengthByDiameter() map[float64]float64 {
	out := map[float64]float64{}
	for i, c := range t.Columns {
		out[c.Diameter] += t.TotalLength[i]
	}
	return out
}

func containsDiameter(ds []float64, d float64) bool {
	for _, v := range ds {
		if v == d {
			return true
		}
	}
	return false
}
