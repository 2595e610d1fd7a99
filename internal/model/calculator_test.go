package model

import (
	"math"
	"testing"
)

func TestCalculatePurchaseEstimateBasic(t *testing.T) {
	usage := []StockUsage{
		{Grade: "B500SP", Diameter: 20, StockLength: 12000, StockBars: 2, UsedLength: 18000},
	}
	est := CalculatePurchaseEstimate(usage, 0, 4.5, 7850)

	// 2 bars x 12 m x 2.466 kg/m
	if math.Abs(est.StockMass-59.2) > 0.05 {
		t.Errorf("expected stock mass 59.2, got %.2f", est.StockMass)
	}
	if math.Abs(est.UsedMass-44.4) > 0.05 {
		t.Errorf("expected used mass 44.4, got %.2f", est.UsedMass)
	}
	if est.OffcutPercent <= 0 {
		t.Error("expected positive offcut percentage")
	}
	if len(est.Lines) != 1 || est.Lines[0].OrderBars != 2 {
		t.Fatalf("expected one line ordering 2 bars, got %+v", est.Lines)
	}
	if math.Abs(est.EstimatedCost-est.OrderMass*4.5) > 0.01 {
		t.Errorf("expected cost %.2f, got %.2f", est.OrderMass*4.5, est.EstimatedCost)
	}
}

func TestCalculatePurchaseEstimateWasteRoundsUp(t *testing.T) {
	usage := []StockUsage{
		{Grade: "B500SP", Diameter: 8, StockLength: 6000, StockBars: 3, UsedLength: 15000},
	}
	est := CalculatePurchaseEstimate(usage, 10, 0, 7850)
	if est.Lines[0].OrderBars != 4 {
		t.Errorf("expected 10%% waste on 3 bars to order 4, got %d", est.Lines[0].OrderBars)
	}
	if est.OrderMass <= est.StockMass {
		t.Error("order mass should exceed stock mass when a waste factor is applied")
	}
	if est.EstimatedCost != 0 {
		t.Errorf("expected zero cost without a price, got %f", est.EstimatedCost)
	}
}

func TestCalculatePurchaseEstimateEmpty(t *testing.T) {
	est := CalculatePurchaseEstimate(nil, 5, 1, 7850)
	if len(est.Lines) != 0 {
		t.Errorf("expected no lines, got %d", len(est.Lines))
	}
	if est.OffcutPercent != 0 {
		t.Errorf("expected 0 offcut for empty usage, got %f", est.OffcutPercent)
	}
}
