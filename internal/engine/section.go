package engine

import (
	"fmt"

	"github.com/piwi3910/BeamDetail/internal/geom"
)

// SectionOverflowError reports bars that do not fit the section at the
// minimum spacing even after wrapping to a second row. It is not fatal:
// the caller draws a warning in place of the bars that did not fit.
type SectionOverflowError struct {
	Diameter   float64
	Quantity   int
	Placed     int
	MinSpacing float64
	Available  float64 // centre-to-centre width available in the second row
}

func (e *SectionOverflowError) Error() string {
	return fmt.Sprintf("%d bars ⌀%g do not fit the section: %d placed, %g mm available for the rest at %g mm minimum spacing",
		e.Quantity, e.Diameter, e.Placed, e.Available, e.MinSpacing)
}

// PackRequest describes one layer of parallel bars in a rectangular section.
type PackRequest struct {
	Diameter        float64
	Quantity        int
	Width           float64
	CoverLeft       float64
	CoverRight      float64
	CoverFace       float64 // cover at the face the bars are packed against
	StirrupDiameter float64
	AggregateSize   float64
}

// SectionPacking is the result of packing. X runs across the section from
// its left face; Depth is measured inward from the packed face.
type SectionPacking struct {
	Bars       []SectionBar
	FirstRow   int
	SecondRow  int
	MinSpacing float64
	Inset      [2]float64 // first-row centre line limits
}

// SectionBar is one packed bar centre.
type SectionBar struct {
	X     float64
	Depth float64
	Row   int
}

// FirstRowInset returns the horizontal limits of the first-row bar centres.
// Bars normally sit inside the stirrup leg; when the stirrup bend is larger
// than the bar they sit on the centre of the bend instead.
func FirstRowInset(r PackRequest) (float64, float64) {
	bend := geom.BendRadius(r.StirrupDiameter)
	if bend-r.StirrupDiameter/2 >= r.Diameter/2 {
		return r.CoverLeft + r.StirrupDiameter/2 + bend,
			r.Width - r.CoverRight - r.StirrupDiameter/2 - bend
	}
	return r.CoverLeft + r.StirrupDiameter + r.Diameter/2,
		r.Width - r.CoverRight - r.StirrupDiameter - r.Diameter/2
}

// PackBars distributes the bars of r across the section width. Bars that
// would break the minimum spacing are moved one by one to a second row,
// one minimum spacing deeper. A SectionOverflowError is returned with the
// bars that fit when the second row is still too tight.
func PackBars(r PackRequest) (SectionPacking, error) {
	minSpacing := geom.MinBarSpacing(r.Diameter, r.AggregateSize)
	x0, x1 := FirstRowInset(r)
	depth := r.CoverFace + r.StirrupDiameter + r.Diameter/2

	p := SectionPacking{MinSpacing: minSpacing, Inset: [2]float64{x0, x1}}
	if r.Quantity <= 0 {
		return p, nil
	}
	if r.Quantity == 1 {
		p.FirstRow = 1
		p.Bars = []SectionBar{{X: (x0 + x1) / 2, Depth: depth, Row: 1}}
		return p, nil
	}

	line := x1 - x0
	first, next := r.Quantity, 0
	for first > 1 && line/float64(first-1) < minSpacing {
		first--
		next++
	}

	p.FirstRow = first
	if first == 1 {
		p.Bars = append(p.Bars, SectionBar{X: (x0 + x1) / 2, Depth: depth, Row: 1})
	} else {
		step := line / float64(first-1)
		for i := 0; i < first; i++ {
			p.Bars = append(p.Bars, SectionBar{X: x0 + step*float64(i), Depth: depth, Row: 1})
		}
	}
	if next == 0 {
		return p, nil
	}

	secondDepth := depth + minSpacing
	s0 := r.CoverLeft + r.StirrupDiameter + r.Diameter/2
	s1 := r.Width - r.CoverRight - r.StirrupDiameter - r.Diameter/2
	if next == 1 {
		p.SecondRow = 1
		p.Bars = append(p.Bars, SectionBar{X: s0, Depth: secondDepth, Row: 2})
		return p, nil
	}

	available := s1 - s0
	if available/float64(next-1) < minSpacing {
		return p, &SectionOverflowError{
			Diameter:   r.Diameter,
			Quantity:   r.Quantity,
			Placed:     first,
			MinSpacing: minSpacing,
			Available:  available,
		}
	}
	p.SecondRow = next
	step := available / float64(next-1)
	for i := 0; i < next; i++ {
		p.Bars = append(p.Bars, SectionBar{X: s0 + step*float64(i), Depth: secondDepth, Row: 2})
	}
	return p, nil
}
