package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BeamDetail/internal/model"
)

func withRows(cfg model.BeamConfig, left, right bool) model.BeamConfig {
	if !left {
		cfg.FirstRowRangeLeft = 0
		cfg.FirstRowSpacingLeft = 0
	}
	if !right {
		cfg.FirstRowRangeRight = 0
		cfg.FirstRowSpacingRight = 0
	}
	return cfg
}

func TestInitialSecondarySpacing(t *testing.T) {
	cfg := model.DefaultBeamConfig()
	assert.Equal(t, 200.0, InitialSecondarySpacing(cfg))

	cfg.Height = 300 // 0.75·300·0.9 = 202.5
	assert.Equal(t, 200.0, InitialSecondarySpacing(cfg))

	cfg.Height = 250 // 168.75
	assert.Equal(t, 165.0, InitialSecondarySpacing(cfg))

	cfg.Height = 1500
	cfg.SecondarySpacing = 400
	assert.Equal(t, 400.0, InitialSecondarySpacing(cfg))
}

func TestSolveDefaultBeam(t *testing.T) {
	cfg := model.DefaultBeamConfig()
	l, err := NewStirrupSolver(0).Solve(cfg)
	require.NoError(t, err)

	assert.Equal(t, 200.0, l.SecondarySpacing)
	assert.Zero(t, l.Residual)
	assert.Zero(t, l.Iterations)
	assert.Equal(t, 600.0, l.LastLeft)
	assert.Equal(t, 3400.0, l.LastRight)
	assert.Equal(t, []float64{0, 600, 3400, 4000}, l.Breakpoints)
	assert.Equal(t, 14, l.SecondaryCount)
	assert.Equal(t, 23, l.Count())
	assert.Equal(t, model.RowsBoth, l.Active)
	assert.Equal(t, 0.0, l.Positions[0])
	assert.Equal(t, 4000.0, l.Positions[l.Count()-1])
}

func TestSolveCases(t *testing.T) {
	tests := []struct {
		name        string
		span        float64
		left, right bool
		secondary   float64
		spacing     float64
		residual    float64
		iterations  int
		breakpoints []float64
		secCount    int
		count       int
	}{
		{"no first rows", 4000, false, false, 200, 200, 0, 0, []float64{0, 4000}, 20, 21},
		{"left only", 4000, true, false, 200, 200, 0, 0, []float64{0, 600, 4000}, 17, 22},
		{"right only", 4000, false, true, 200, 200, 0, 0, []float64{0, 3400, 4000}, 17, 22},
		{"longer span", 4200, true, true, 200, 200, 0, 0, []float64{0, 600, 3600, 4200}, 15, 24},
		{"spacing reduced", 3990, false, false, 200, 190, 0, 2, []float64{0, 3990}, 21, 22},
		{"left with residual", 4030, true, false, 200, 200, 30, 0, []float64{0, 15, 615, 4015, 4030}, 17, 22},
		{"right with residual", 4030, false, true, 200, 200, 30, 0, []float64{0, 15, 3415, 4015, 4030}, 17, 22},
		{"both with residual", 4030, true, true, 200, 200, 30, 0, []float64{0, 15, 615, 3415, 4015, 4030}, 14, 23},
		{"wider spacing", 4000, false, false, 250, 250, 0, 0, []float64{0, 4000}, 16, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := withRows(model.DefaultBeamConfig(), tt.left, tt.right)
			cfg.Span = tt.span
			cfg.SecondarySpacing = tt.secondary

			l, err := NewStirrupSolver(0).Solve(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.spacing, l.SecondarySpacing)
			assert.InDelta(t, tt.residual, l.Residual, 1e-9)
			assert.Equal(t, tt.iterations, l.Iterations)
			assert.InDeltaSlice(t, tt.breakpoints, l.Breakpoints, 1e-9)
			assert.Equal(t, tt.secCount, l.SecondaryCount)
			assert.Equal(t, tt.count, l.Count())
		})
	}
}

func TestSolveResidualBound(t *testing.T) {
	solver := NewStirrupSolver(0)
	for span := 400.0; span <= 9000; span += 37 {
		for _, rows := range [][2]bool{{false, false}, {true, false}, {false, true}, {true, true}} {
			cfg := withRows(model.DefaultBeamConfig(), rows[0], rows[1])
			cfg.Span = span
			if cfg.Span < cfg.FirstRowRangeLeft+cfg.FirstRowRangeRight {
				continue
			}
			l, err := solver.Solve(cfg)
			require.NoError(t, err, "span %g", span)
			assert.LessOrEqual(t, l.Residual, MaxResidualGap, "span %g", span)
			assert.GreaterOrEqual(t, l.Residual, 0.0)

			for i := 1; i < len(l.Positions); i++ {
				assert.Greater(t, l.Positions[i], l.Positions[i-1])
			}
			assert.InDelta(t, l.EdgeOffset(), l.Positions[0], 1e-9)
			assert.InDelta(t, span-l.EdgeOffset(), l.Positions[len(l.Positions)-1], 1e-9)
		}
	}
}

func TestSolveLowerCapNeverWidensSpacing(t *testing.T) {
	solver := NewStirrupSolver(0)
	for _, span := range []float64{2500, 3990, 4030, 5555, 7210} {
		cfg := model.DefaultBeamConfig()
		cfg.Span = span
		cfg.Height = 800

		prevSpacing, prevCount := 0.0, 0
		for limit := 400.0; limit >= 100; limit -= 5 {
			cfg.SecondarySpacing = limit
			l, err := solver.Solve(cfg)
			require.NoError(t, err)
			if prevSpacing > 0 {
				assert.LessOrEqual(t, l.SecondarySpacing, prevSpacing, "span %g limit %g", span, limit)
				assert.GreaterOrEqual(t, l.Count(), prevCount, "span %g limit %g", span, limit)
			}
			prevSpacing, prevCount = l.SecondarySpacing, l.Count()
		}
	}
}

func TestSolveBelowMinimum(t *testing.T) {
	cfg := model.DefaultBeamConfig()
	cfg.SecondarySpacing = 0
	_, err := NewStirrupSolver(0).Solve(cfg)
	var se *SpacingSolverError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, DefaultMinStirrupSpacing, se.Min)

	cfg = withRows(model.DefaultBeamConfig(), false, false)
	cfg.Span = 3990
	_, err = NewStirrupSolver(200).Solve(cfg)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 195.0, se.Spacing)
	assert.Equal(t, 190.0, se.Residual)
	assert.Contains(t, err.Error(), "below the minimum 200")
}

func TestSolveOverlappingFirstRows(t *testing.T) {
	cfg := model.DefaultBeamConfig()
	cfg.Span = 1000
	cfg.FirstRowRangeLeft = 500
	cfg.FirstRowRangeRight = 500

	l, err := NewStirrupSolver(0).Solve(cfg)
	require.NoError(t, err)
	assert.Zero(t, l.Residual)
	assert.Equal(t, 450.0, l.LastLeft)
	assert.Equal(t, 550.0, l.LastRight)
	assert.LessOrEqual(t, l.LastLeft, l.LastRight)
	assert.Equal(t, []float64{0, 150, 300, 450, 550, 700, 850, 1000}, l.Positions)
	assert.Equal(t, []float64{0, 450, 550, 1000}, l.Breakpoints)
	assert.Zero(t, l.SecondaryCount)
}

func TestSolveIsDeterministic(t *testing.T) {
	cfg := model.DefaultBeamConfig()
	cfg.Span = 5123
	a, err := NewStirrupSolver(0).Solve(cfg)
	require.NoError(t, err)
	b, err := NewStirrupSolver(0).Solve(cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSecondaryCountAdjustment(t *testing.T) {
	for _, active := range []model.ActiveRows{model.RowsNone, model.RowsLeft, model.RowsRight, model.RowsBoth} {
		assert.Zero(t, secondaryCountAdjustment(active, 0), active.String())
	}
	assert.Equal(t, -1, secondaryCountAdjustment(model.RowsNone, 20))
	assert.Equal(t, -1, secondaryCountAdjustment(model.RowsLeft, 20))
	assert.Equal(t, -1, secondaryCountAdjustment(model.RowsRight, 20))
	assert.Equal(t, 0, secondaryCountAdjustment(model.RowsBoth, 20))
}

func TestResidualGap(t *testing.T) {
	cfg := model.DefaultBeamConfig()
	assert.Equal(t, 1200.0, FirstRowExtent(cfg))
	assert.Zero(t, ResidualGap(cfg, 200))
	assert.Equal(t, 100.0, ResidualGap(cfg, 300))

	cfg.Span = 1000 // first rows alone exceed the span
	assert.Zero(t, ResidualGap(cfg, 200))
}
