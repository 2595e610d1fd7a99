package model

import (
	"sort"

	"github.com/google/uuid"

	"github.com/piwi3910/BeamDetail/internal/geom"
)

// MinOffcutLength is the shortest remnant (in mm) worth keeping for reuse.
// Shorter remnants are scrap.
const MinOffcutLength = 500.0

// Offcut is a usable remnant of a stock bar left over after cutting.
type Offcut struct {
	ID       string  `json:"id"`
	Grade    string  `json:"grade"`
	Diameter float64 `json:"diameter"`
	Length   float64 `json:"length"`    // mm
	BarIndex int     `json:"bar_index"` // stock bar of the group it came from
}

// Mass returns the mass of the offcut in kg.
func (o Offcut) Mass(density float64) float64 {
	return o.Length / 1000 * geom.MassPerMeter(o.Diameter, density)
}

// DetectOffcuts turns the remaining length of every stock bar of one group
// into offcuts, keeping those of at least minLength. The result is sorted
// longest first.
func DetectOffcuts(grade string, diameter float64, remaining []float64, minLength float64) []Offcut {
	if minLength <= 0 {
		minLength = MinOffcutLength
	}
	var out []Offcut
	for i, l := range remaining {
		if l < minLength {
			continue
		}
		out = append(out, Offcut{
			ID:       uuid.New().String()[:8],
			Grade:    grade,
			Diameter: diameter,
			Length:   l,
			BarIndex: i,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Length > out[j].Length })
	return out
}

// TotalOffcutLength returns the summed length of offcuts in mm.
func TotalOffcutLength(offcuts []Offcut) float64 {
	total := 0.0
	for _, o := range offcuts {
		total += o.Length
	}
	return total
}
