package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/BeamDetail/internal/model"
)

const (
	// MaxResidualGap is the largest uncovered length allowed between the
	// stirrup zones and the supports.
	MaxResidualGap = 60.0
	// SpacingStep is the grid the secondary spacing is rounded to and
	// reduced by.
	SpacingStep = 5.0
	// DefaultMinStirrupSpacing is the practical lower bound for the
	// secondary spacing.
	DefaultMinStirrupSpacing = 50.0
	// MaxSecondarySpacing caps the secondary spacing regardless of height.
	MaxSecondarySpacing = 400.0

	eps = 1e-9
)

// SpacingSolverError is returned when the secondary spacing would have to
// drop below the practical minimum to close the residual gap.
type SpacingSolverError struct {
	Spacing  float64
	Min      float64
	Residual float64
}

func (e *SpacingSolverError) Error() string {
	return fmt.Sprintf("stirrup spacing %g fell below the minimum %g with %g mm left uncovered",
		e.Spacing, e.Min, e.Residual)
}

// InitialSecondarySpacing returns the starting secondary spacing: the
// configured target capped at 0.75·h·0.9, at 0.75·h and at 400, rounded
// down to the 5 mm grid.
func InitialSecondarySpacing(cfg model.BeamConfig) float64 {
	s := floorStep(math.Min(0.75*cfg.Height*0.9, cfg.SecondarySpacing))
	return floorStep(math.Min(math.Min(s, MaxSecondarySpacing), math.Trunc(cfg.Height*0.75)))
}

// FirstRowExtent returns the length covered by the active first-row groups,
// each rounded up to whole spacings.
func FirstRowExtent(cfg model.BeamConfig) float64 {
	extent := 0.0
	if cfg.LeftRowActive() {
		extent += intervals(cfg.FirstRowRangeLeft, cfg.FirstRowSpacingLeft) * cfg.FirstRowSpacingLeft
	}
	if cfg.RightRowActive() {
		extent += intervals(cfg.FirstRowRangeRight, cfg.FirstRowSpacingRight) * cfg.FirstRowSpacingRight
	}
	return extent
}

// ResidualGap returns the part of the span not covered by the first rows
// and whole secondary spacings.
func ResidualGap(cfg model.BeamConfig, spacing float64) float64 {
	extent := FirstRowExtent(cfg)
	inner := math.Max(0, cfg.Span-extent)
	residual := cfg.Span - (extent + math.Floor(inner/spacing+eps)*spacing)
	return math.Max(0, residual)
}

// StirrupSolver distributes stirrups along the span.
type StirrupSolver struct {
	MinSpacing float64
}

// NewStirrupSolver returns a solver with the given practical minimum
// spacing; zero selects DefaultMinStirrupSpacing.
func NewStirrupSolver(minSpacing float64) *StirrupSolver {
	if minSpacing <= 0 {
		minSpacing = DefaultMinStirrupSpacing
	}
	return &StirrupSolver{MinSpacing: minSpacing}
}

// Solve shrinks the secondary spacing in 5 mm steps until the residual gap
// is at most MaxResidualGap, then places the first-row and secondary
// stirrups. The residual is split evenly between both ends.
func (s *StirrupSolver) Solve(cfg model.BeamConfig) (model.StirrupLayout, error) {
	spacing := InitialSecondarySpacing(cfg)
	if spacing < s.MinSpacing {
		return model.StirrupLayout{}, &SpacingSolverError{Spacing: spacing, Min: s.MinSpacing, Residual: cfg.Span}
	}

	residual := ResidualGap(cfg, spacing)
	iterations := 0
	for residual > MaxResidualGap {
		next := spacing - SpacingStep
		if next < s.MinSpacing {
			return model.StirrupLayout{}, &SpacingSolverError{Spacing: next, Min: s.MinSpacing, Residual: residual}
		}
		spacing = next
		residual = ResidualGap(cfg, spacing)
		iterations++
	}

	layout := model.StirrupLayout{
		SecondarySpacing: spacing,
		Residual:         residual,
		Active:           cfg.ActiveRows(),
		Iterations:       iterations,
		LastLeft:         0,
		LastRight:        cfg.Span,
	}
	edge := residual / 2
	leftN, rightN, overlap := firstRowIntervals(cfg, edge)

	var positions []float64
	if cfg.LeftRowActive() {
		for i := 0; i <= leftN; i++ {
			positions = append(positions, edge+float64(i)*cfg.FirstRowSpacingLeft)
		}
		layout.LastLeft = positions[len(positions)-1]
	}
	if cfg.RightRowActive() {
		for i := 0; i <= rightN; i++ {
			positions = append(positions, cfg.Span-edge-float64(i)*cfg.FirstRowSpacingRight)
		}
		layout.LastRight = positions[len(positions)-1]
	}

	start, end := SecondaryZone(layout, cfg.Span)
	if !overlap && end >= start {
		n := int(math.Floor((end-start)/spacing+eps)) + 1
		for i := 0; i < n; i++ {
			positions = append(positions, start+float64(i)*spacing)
		}
	}

	layout.Positions = dedupeSorted(positions)
	layout.Breakpoints = breakpoints(layout, cfg.Span)
	if !overlap {
		layout.SecondaryCount = SecondaryIntervals(layout)
	}
	return layout, nil
}

// firstRowIntervals returns the number of spacings of each first row. When
// both rows, rounded up to whole spacings, would reach past each other,
// each row stops at its last stirrup before the middle of the overlap and
// overlap is true; the gap left between the rows gets no secondary
// stirrups.
func firstRowIntervals(cfg model.BeamConfig, edge float64) (left, right int, overlap bool) {
	if cfg.LeftRowActive() {
		left = int(intervals(cfg.FirstRowRangeLeft, cfg.FirstRowSpacingLeft))
	}
	if cfg.RightRowActive() {
		right = int(intervals(cfg.FirstRowRangeRight, cfg.FirstRowSpacingRight))
	}
	if !cfg.LeftRowActive() || !cfg.RightRowActive() {
		return left, right, false
	}

	leftEnd := edge + float64(left)*cfg.FirstRowSpacingLeft
	rightEnd := cfg.Span - edge - float64(right)*cfg.FirstRowSpacingRight
	if leftEnd <= rightEnd+eps {
		return left, right, false
	}
	meet := (leftEnd + rightEnd) / 2
	left = int(math.Floor((meet-edge)/cfg.FirstRowSpacingLeft + eps))
	right = int(math.Floor((cfg.Span-edge-meet)/cfg.FirstRowSpacingRight + eps))
	return left, right, true
}

// SecondaryZone returns the start and end of the uniformly spaced zone:
// the last first-row stirrup on each active side, or the edge offset where
// no first row exists.
func SecondaryZone(l model.StirrupLayout, span float64) (start, end float64) {
	edge := l.Residual / 2
	start, end = edge, span-edge
	if l.Active.Left() {
		start = l.LastLeft
	}
	if l.Active.Right() {
		end = l.LastRight
	}
	return start, end
}

// SecondaryIntervals returns the number of secondary spacings drawn between
// the zone boundaries. The raw count is measured from the support faces
// when a side has no first row, so it is one too high whenever a residual
// gap exists on a side without a first row.
func SecondaryIntervals(l model.StirrupLayout) int {
	if l.SecondarySpacing <= 0 {
		return 0
	}
	raw := int(math.Ceil((l.LastRight-l.LastLeft)/l.SecondarySpacing - eps))
	n := raw + secondaryCountAdjustment(l.Active, l.Residual)
	if n < 0 {
		return 0
	}
	return n
}

// secondaryCountAdjustment is the per-case correction of the raw secondary
// count:
//
//	rows   residual>0  residual=0
//	none       -1          0
//	left       -1          0
//	right      -1          0
//	both        0          0
func secondaryCountAdjustment(active model.ActiveRows, residual float64) int {
	if residual <= eps {
		return 0
	}
	switch active {
	case model.RowsNone, model.RowsLeft, model.RowsRight:
		return -1
	default:
		return 0
	}
}

func breakpoints(l model.StirrupLayout, span float64) []float64 {
	edge := l.Residual / 2
	pts := []float64{0, span}
	if l.Active.Left() {
		pts = append(pts, l.LastLeft)
	}
	if l.Active.Right() {
		pts = append(pts, l.LastRight)
	}
	pts = append(pts, edge, span-edge)
	return dedupeSorted(pts)
}

// intervals returns ⌈range/spacing⌉ with a tolerance for float noise.
func intervals(length, spacing float64) float64 {
	return math.Ceil(length/spacing - eps)
}

func floorStep(v float64) float64 {
	return math.Floor(v/SpacingStep+eps) * SpacingStep
}

// dedupeSorted sorts values and drops those within 1e-6 of their
// predecessor.
func dedupeSorted(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v-out[len(out)-1] > 1e-6 {
			out = append(out, v)
		}
	}
	return out
}
