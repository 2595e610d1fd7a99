package model

import (
	"testing"

	"github.com/piwi3910/BeamDetail/internal/geom"
)

func TestActiveRows(t *testing.T) {
	tests := []struct {
		name                string
		rangeL, spacingL    float64
		rangeR, spacingR    float64
		want                ActiveRows
		wantLeft, wantRight bool
	}{
		{"none", 0, 0, 0, 0, RowsNone, false, false},
		{"left", 600, 150, 0, 0, RowsLeft, true, false},
		{"right", 0, 0, 600, 150, RowsRight, false, true},
		{"both", 600, 150, 500, 100, RowsBoth, true, true},
		{"range without spacing", 600, 0, 0, 0, RowsNone, false, false},
		{"spacing without range", 0, 150, 0, 100, RowsNone, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultBeamConfig()
			c.FirstRowRangeLeft, c.FirstRowSpacingLeft = tt.rangeL, tt.spacingL
			c.FirstRowRangeRight, c.FirstRowSpacingRight = tt.rangeR, tt.spacingR
			got := c.ActiveRows()
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
			if got.Left() != tt.wantLeft || got.Right() != tt.wantRight {
				t.Errorf("Left/Right = %v/%v, want %v/%v", got.Left(), got.Right(), tt.wantLeft, tt.wantRight)
			}
		})
	}
}

func TestTotalLength(t *testing.T) {
	c := DefaultBeamConfig()
	if got := c.TotalLength(); got != 4500 {
		t.Errorf("expected 4500, got %f", got)
	}
}

func TestBarRecordTotalsAndLabel(t *testing.T) {
	b := BarRecord{Diameter: 16, Quantity: 2, Length: 4520, Grade: "B500SP", Anchor: geom.Point{X: 1, Y: 2}}
	if got := b.TotalLength(); got != 9.04 {
		t.Errorf("expected 9.04 m, got %f", got)
	}
	if got := b.Label(); got != "2 ⌀16 L=4520" {
		t.Errorf("unexpected label %q", got)
	}
	if BarStirrup.String() != "stirrup" {
		t.Errorf("unexpected kind name %q", BarStirrup.String())
	}
}

func TestStirrupLayoutHelpers(t *testing.T) {
	l := StirrupLayout{Positions: []float64{25, 175, 325}, Residual: 50}
	if l.Count() != 3 {
		t.Errorf("expected 3 stirrups, got %d", l.Count())
	}
	if l.EdgeOffset() != 25 {
		t.Errorf("expected edge offset 25, got %f", l.EdgeOffset())
	}
}

func TestFormatNumber(t *testing.T) {
	if FormatNumber(12) != "12" {
		t.Errorf("expected 12, got %s", FormatNumber(12))
	}
	if FormatNumber(12.5) != "12.5" {
		t.Errorf("expected 12.5, got %s", FormatNumber(12.5))
	}
}
