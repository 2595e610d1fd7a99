package model

import (
	"math"

	"github.com/piwi3910/BeamDetail/internal/geom"
)

// StockUsage is the stock bar consumption of one (grade, diameter) group
// of a cutting plan.
type StockUsage struct {
	Grade       string  `json:"grade"`
	Diameter    float64 `json:"diameter"`
	StockLength float64 `json:"stock_length"` // mm per stock bar
	StockBars   int     `json:"stock_bars"`
	UsedLength  float64 `json:"used_length"` // mm actually built into the beam
}

// PurchaseLine is the order quantity for one (grade, diameter) group.
type PurchaseLine struct {
	Grade     string  `json:"grade"`
	Diameter  float64 `json:"diameter"`
	StockBars int     `json:"stock_bars"`
	OrderBars int     `json:"order_bars"`
	Mass      float64 `json:"mass"` // kg of ordered bars
}

// PurchaseEstimate holds the results of a rebar purchasing calculation.
type PurchaseEstimate struct {
	Lines         []PurchaseLine `json:"lines"`
	UsedMass      float64        `json:"used_mass"`      // kg built into the beam
	StockMass     float64        `json:"stock_mass"`     // kg of stock bars the plan consumes
	OrderMass     float64        `json:"order_mass"`     // kg including the waste factor
	OffcutPercent float64        `json:"offcut_percent"` // share of stock mass lost to offcuts
	WastePercent  float64        `json:"waste_percent"`  // extra factor applied to the order
	EstimatedCost float64        `json:"estimated_cost"`
	PricePerKg    float64        `json:"price_per_kg"`
}

// CalculatePurchaseEstimate converts a cutting plan's stock usage into an
// order. wastePercent adds spare bars on top of what the plan consumes.
func CalculatePurchaseEstimate(usage []StockUsage, wastePercent, pricePerKg, density float64) PurchaseEstimate {
	est := PurchaseEstimate{
		Lines:        make([]PurchaseLine, 0, len(usage)),
		WastePercent: wastePercent,
		PricePerKg:   pricePerKg,
	}

	wasteFactor := 1.0 + (wastePercent / 100.0)
	for _, u := range usage {
		mpm := geom.MassPerMeter(u.Diameter, density)
		orderBars := int(math.Ceil(float64(u.StockBars) * wasteFactor))
		if orderBars < u.StockBars {
			orderBars = u.StockBars
		}
		line := PurchaseLine{
			Grade:     u.Grade,
			Diameter:  u.Diameter,
			StockBars: u.StockBars,
			OrderBars: orderBars,
			Mass:      geom.RoundTo(float64(orderBars)*u.StockLength/1000*mpm, 1),
		}
		est.Lines = append(est.Lines, line)
		est.UsedMass += u.UsedLength / 1000 * mpm
		est.StockMass += float64(u.StockBars) * u.StockLength / 1000 * mpm
		est.OrderMass += line.Mass
	}

	est.UsedMass = geom.RoundTo(est.UsedMass, 1)
	est.StockMass = geom.RoundTo(est.StockMass, 1)
	est.OrderMass = geom.RoundTo(est.OrderMass, 1)
	if est.StockMass > 0 {
		est.OffcutPercent = geom.RoundTo((est.StockMass-est.UsedMass)/est.StockMass*100, 1)
	}
	est.EstimatedCost = geom.RoundTo(est.OrderMass*pricePerKg, 2)
	return est
}
