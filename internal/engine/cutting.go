package engine

import (
	"sort"

	"github.com/piwi3910/BeamDetail/internal/model"
)

// DefaultStockLength is the usual mill length of straight rebar.
const DefaultStockLength = 12000.0

// Piece is one bar to be cut from stock.
type Piece struct {
	Mark   int     `json:"mark"`
	Length float64 `json:"length"`
}

// StockBar is one stock length with the pieces cut from it.
type StockBar struct {
	Pieces []Piece `json:"pieces"`
	Used   float64 `json:"used"` // mm including kerf
}

// CutGroup is the cutting plan of one (grade, diameter) pair.
type CutGroup struct {
	Grade       string     `json:"grade"`
	Diameter    float64    `json:"diameter"`
	StockLength float64    `json:"stock_length"`
	Bars        []StockBar `json:"bars"`
	Unplaced    []Piece    `json:"unplaced,omitempty"` // longer than the stock bar
}

// PieceLength returns the total length of all placed pieces, without kerf.
func (g CutGroup) PieceLength() float64 {
	total := 0.0
	for _, b := range g.Bars {
		for _, p := range b.Pieces {
			total += p.Length
		}
	}
	return total
}

// Utilization returns the share of bought stock that ends up in pieces,
// in percent.
func (g CutGroup) Utilization() float64 {
	stock := float64(len(g.Bars)) * g.StockLength
	if stock == 0 {
		return 0
	}
	return g.PieceLength() / stock * 100
}

// Offcuts returns the remaining length of every stock bar.
func (g CutGroup) Offcuts() []float64 {
	out := make([]float64, len(g.Bars))
	for i, b := range g.Bars {
		out[i] = g.StockLength - b.Used
	}
	return out
}

// CutPlan is the result of cutting all records of a beam from stock.
type CutPlan struct {
	Groups []CutGroup `json:"groups"`
	Kerf   float64    `json:"kerf"`
}

// Usage converts the plan to stock consumption for a purchase estimate.
func (p CutPlan) Usage() []model.StockUsage {
	out := make([]model.StockUsage, 0, len(p.Groups))
	for _, g := range p.Groups {
		out = append(out, model.StockUsage{
			Grade:       g.Grade,
			Diameter:    g.Diameter,
			StockLength: g.StockLength,
			StockBars:   len(g.Bars),
			UsedLength:  g.PieceLength(),
		})
	}
	return out
}

// StockBars returns the number of stock bars over all groups.
func (p CutPlan) StockBars() int {
	n := 0
	for _, g := range p.Groups {
		n += len(g.Bars)
	}
	return n
}

// Utilization returns the share of all bought stock that ends up in
// pieces, in percent.
func (p CutPlan) Utilization() float64 {
	var used, stock float64
	for _, g := range p.Groups {
		used += g.PieceLength()
		stock += float64(len(g.Bars)) * g.StockLength
	}
	if stock == 0 {
		return 0
	}
	return used / stock * 100
}

// ReusableOffcuts returns the remnants of at least minLength over all
// groups.
func (p CutPlan) ReusableOffcuts(minLength float64) []model.Offcut {
	var out []model.Offcut
	for _, g := range p.Groups {
		out = append(out, model.DetectOffcuts(g.Grade, g.Diameter, g.Offcuts(), minLength)...)
	}
	return out
}

// Unplaced returns every piece that could not be cut from stock.
func (p CutPlan) Unplaced() []Piece {
	var out []Piece
	for _, g := range p.Groups {
		out = append(out, g.Unplaced...)
	}
	return out
}

// CutPlanner assigns bar pieces to stock lengths.
type CutPlanner struct {
	StockLength float64
	Kerf        float64
}

func NewCutPlanner(stockLength, kerf float64) *CutPlanner {
	if stockLength <= 0 {
		stockLength = DefaultStockLength
	}
	if kerf < 0 {
		kerf = 0
	}
	return &CutPlanner{StockLength: stockLength, Kerf: kerf}
}

// PlanCuts cuts every piece of records, times the element count, from
// stock bars of stockLength.
func PlanCuts(records []model.BarRecord, elements int, stockLength, kerf float64) CutPlan {
	return NewCutPlanner(stockLength, kerf).Plan(records, elements)
}

// Plan runs first-fit decreasing per (grade, diameter) group. Groups keep
// the order they first appear in the records.
func (c *CutPlanner) Plan(records []model.BarRecord, elements int) CutPlan {
	if elements < 1 {
		elements = 1
	}
	plan := CutPlan{Kerf: c.Kerf}
	for _, g := range groupByGrade(records) {
		plan.Groups = append(plan.Groups, c.cutGroup(g.grade, g.diameter, expand(g.records, elements)))
	}
	return plan
}

func (c *CutPlanner) cutGroup(grade string, diameter float64, pieces []Piece) CutGroup {
	sort.SliceStable(pieces, func(i, j int) bool {
		return pieces[i].Length > pieces[j].Length
	})
	return c.place(grade, diameter, pieces)
}

// place cuts pieces in the given order, each into the first stock bar with
// room left.
func (c *CutPlanner) place(grade string, diameter float64, pieces []Piece) CutGroup {
	g := CutGroup{Grade: grade, Diameter: diameter, StockLength: c.StockLength}
	for _, p := range pieces {
		if p.Length > c.StockLength {
			g.Unplaced = append(g.Unplaced, p)
			continue
		}
		placed := false
		for i := range g.Bars {
			need := p.Length + c.Kerf
			if g.Bars[i].Used+need <= c.StockLength+1e-9 {
				g.Bars[i].Pieces = append(g.Bars[i].Pieces, p)
				g.Bars[i].Used += need
				placed = true
				break
			}
		}
		if !placed {
			// A piece that exactly fills the stock bar needs no cut.
			used := p.Length + c.Kerf
			if used > c.StockLength {
				used = c.StockLength
			}
			g.Bars = append(g.Bars, StockBar{Pieces: []Piece{p}, Used: used})
		}
	}
	return g
}

// expand lists every piece of one group, times the element count.
func expand(records []model.BarRecord, elements int) []Piece {
	var pieces []Piece
	for _, r := range records {
		for i := 0; i < r.Quantity*elements; i++ {
			pieces = append(pieces, Piece{Mark: r.Number, Length: r.Length})
		}
	}
	return pieces
}

// gradeGroup holds the records of one (grade, diameter) pair.
type gradeGroup struct {
	grade    string
	diameter float64
	records  []model.BarRecord
}

func groupByGrade(records []model.BarRecord) []gradeGroup {
	type key struct {
		grade    string
		diameter float64
	}
	index := map[key]int{}
	var groups []gradeGroup
	for _, r := range records {
		k := key{r.Grade, r.Diameter}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, gradeGroup{grade: r.Grade, diameter: r.Diameter})
		}
		groups[i].records = append(groups[i].records, r)
	}
	return groups
}
