package model

import (
	"testing"
)

func TestDetectOffcutsKeepsLongRemnants(t *testing.T) {
	offcuts := DetectOffcuts("B500SP", 16, []float64{1864, 120, 3000}, 500)
	if len(offcuts) != 2 {
		t.Fatalf("expected 2 offcuts, got %d", len(offcuts))
	}
	if offcuts[0].Length != 3000 || offcuts[0].BarIndex != 2 {
		t.Errorf("expected the longest offcut first, got %+v", offcuts[0])
	}
	if offcuts[1].Length != 1864 || offcuts[1].BarIndex != 0 {
		t.Errorf("unexpected second offcut %+v", offcuts[1])
	}
	for _, o := range offcuts {
		if o.ID == "" || o.Grade != "B500SP" || o.Diameter != 16 {
			t.Errorf("offcut not fully populated: %+v", o)
		}
	}
}

func TestDetectOffcutsDefaultMinimum(t *testing.T) {
	offcuts := DetectOffcuts("B500SP", 8, []float64{499, 500}, 0)
	if len(offcuts) != 1 || offcuts[0].Length != 500 {
		t.Errorf("expected only the 500 mm remnant, got %+v", offcuts)
	}
}

func TestTotalOffcutLength(t *testing.T) {
	offcuts := []Offcut{{Length: 600}, {Length: 1400}}
	if got := TotalOffcutLength(offcuts); got != 2000 {
		t.Errorf("expected 2000, got %f", got)
	}
	if got := TotalOffcutLength(nil); got != 0 {
		t.Errorf("expected 0 for no offcuts, got %f", got)
	}
}

func TestOffcutMass(t *testing.T) {
	o := Offcut{Diameter: 10, Length: 1000}
	// 1 m of 10 mm bar at 7850 kg/m³ is 0.617 kg
	if m := o.Mass(7850); m < 0.61 || m > 0.62 {
		t.Errorf("unexpected mass %f", m)
	}
}
