package model

import (
	"fmt"

	"github.com/piwi3910/BeamDetail/internal/geom"
)

// BarKind identifies which part of the beam a bar belongs to.
type BarKind int

const (
	BarTop BarKind = iota
	BarBottom
	BarStirrup
)

func (k BarKind) String() string {
	switch k {
	case BarTop:
		return "top"
	case BarBottom:
		return "bottom"
	case BarStirrup:
		return "stirrup"
	default:
		return fmt.Sprintf("BarKind(%d)", int(k))
	}
}

// BarRecord is one line of the bill of materials. Number is assigned by the
// registry; everything else is fixed once the bar's length is known.
type BarRecord struct {
	Number   int        `json:"number"`
	Element  string     `json:"element"`
	Kind     BarKind    `json:"kind"`
	Diameter float64    `json:"diameter"`
	Quantity int        `json:"quantity"`
	Length   float64    `json:"length"` // mm, rounded to whole millimetres
	Grade    string     `json:"grade"`
	Anchor   geom.Point `json:"anchor"` // where the callout is placed on the drawing
	Shape    geom.Path  `json:"shape,omitempty"`
}

// TotalLength returns the developed length of all bars of this record in
// one element, in metres.
func (b BarRecord) TotalLength() float64 {
	return b.Length / 1000 * float64(b.Quantity)
}

// Label returns the short callout text, e.g. "2 ⌀16 L=4520".
func (b BarRecord) Label() string {
	return fmt.Sprintf("%d ⌀%s L=%s", b.Quantity, FormatNumber(b.Diameter), FormatNumber(b.Length))
}

// FormatNumber prints v without a trailing ".0" for whole numbers.
func FormatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
