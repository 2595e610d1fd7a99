package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/piwi3910/BeamDetail/internal/draw"
	"github.com/piwi3910/BeamDetail/internal/geom"
	"github.com/piwi3910/BeamDetail/internal/model"
	"github.com/piwi3910/BeamDetail/internal/schedule"
	"github.com/piwi3910/BeamDetail/internal/validate"
)

// Offsets of the sheet views from the lower left corner of the elevation.
const (
	topCopyOffset     = 800.0 // below the beam soffit, plus the beam height
	bottomCopyOffset  = 950.0
	sectionGap        = 500.0
	detailGap         = 400.0
	scheduleGapX      = 300.0
	scheduleDropY     = 300.0
	calloutOffset     = 400.0
	mainDimOffset     = 400.0
	stirrupDimOffset  = 300.0
	heightDimOffset   = 200.0
	markerAbove       = 300.0
	markerBelow       = 500.0
	leaderOffset      = 100.0
	sectionTitleGap   = 200.0
	sectionDimOffset  = 200.0
	sectionHDimOffset = 50.0
	hiddenOverhang    = 200.0
)

// Options tunes the engineering constants of a run.
type Options struct {
	AggregateSize     float64
	MinStirrupSpacing float64
	Density           float64
	Origin            geom.Point
}

// DefaultOptions returns the standard constants with the beam at the origin.
func DefaultOptions() Options {
	return Options{
		AggregateSize:     geom.DefaultAggregateSize,
		MinStirrupSpacing: DefaultMinStirrupSpacing,
		Density:           geom.SteelDensity,
	}
}

// Result is everything one detailing run produced besides the primitives.
type Result struct {
	RequestID string
	Config    model.BeamConfig
	Layout    model.StirrupLayout
	Records   []model.BarRecord
	Schedule  schedule.Table
	Labels    schedule.Labels
	Warnings  []string

	// Packed bars of section A-A. Depth is measured from the top face for
	// the top bars and from the soffit for the bottom bars.
	TopSection    SectionPacking
	BottomSection SectionPacking
}

// Detailer turns a beam configuration into drawing primitives, bar records
// and a bending schedule.
type Detailer struct {
	Style   draw.Style
	Options Options
	Logger  zerolog.Logger
}

func NewDetailer(style draw.Style, opts Options, logger zerolog.Logger) *Detailer {
	return &Detailer{Style: style, Options: opts, Logger: logger}
}

// sheet holds the computed geometry of one beam before anything is emitted.
type sheet struct {
	cfg    model.BeamConfig
	st     draw.Style
	labels schedule.Labels
	origin geom.Point

	layout  model.StirrupLayout
	dims    []SpanDimension
	top     model.BarRecord
	bottom  model.BarRecord
	stirrup model.BarRecord

	topPath, bottomPath         geom.Path
	topCopy, bottomCopy         geom.Path
	closedStirrup, openStirrup  geom.Path
	topPack, bottomPack         SectionPacking
	sectionOrigin, detailOrigin geom.Point

	records  []model.BarRecord
	table    schedule.Table
	warnings []string
	overflow bool
}

// Run validates cfg, computes the whole beam and then emits it into sink.
// Every fatal error is returned before the first primitive is emitted.
func (d *Detailer) Run(cfg model.BeamConfig, sink draw.Sink) (Result, error) {
	valid, err := validate.Config(cfg)
	if err != nil {
		return Result{}, fmt.Errorf("failed to validate beam %q: %w", cfg.Name, err)
	}
	cfg = valid

	reqID := uuid.NewString()
	logger := d.Logger.With().Str("request_id", reqID).Str("element", cfg.Name).Logger()

	s, err := d.compute(cfg, logger)
	if err != nil {
		return Result{}, err
	}

	for _, w := range s.warnings {
		logger.Warn().Msg(w)
	}

	s.emit(sink)

	logger.Info().
		Int("stirrups", s.layout.Count()).
		Float64("secondary_spacing", s.layout.SecondarySpacing).
		Int("records", len(s.records)).
		Float64("total_mass", s.table.TotalMass).
		Msg("beam detailed")

	return Result{
		RequestID: reqID,
		Config:    cfg,
		Layout:    s.layout,
		Records:   s.records,
		Schedule:  s.table,
		Labels:    s.labels,
		Warnings:  s.warnings,

		TopSection:    s.topPack,
		BottomSection: s.bottomPack,
	}, nil
}

func (d *Detailer) compute(cfg model.BeamConfig, logger zerolog.Logger) (*sheet, error) {
	opts := d.Options
	s := &sheet{
		cfg:    cfg,
		st:     d.Style,
		labels: schedule.LabelsFor(cfg.Language),
		origin: opts.Origin,
	}
	x, y := s.origin.X, s.origin.Y
	total := cfg.TotalLength()

	layout, err := NewStirrupSolver(opts.MinStirrupSpacing).Solve(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to distribute stirrups: %w", err)
	}
	logger.Debug().
		Float64("initial_spacing", InitialSecondarySpacing(cfg)).
		Float64("spacing", layout.SecondarySpacing).
		Int("iterations", layout.Iterations).
		Float64("residual", layout.Residual).
		Int("stirrups", layout.Count()).
		Msg("stirrups solved")
	s.layout = layout
	s.dims = StirrupDimensions(cfg, layout)

	s.topPath = TopBarPath(cfg, s.origin)
	s.bottomPath = BottomBarPath(cfg, s.origin)
	s.topCopy = TopBarPath(cfg, pt(x, y-cfg.Height-topCopyOffset))
	s.bottomCopy = BottomBarPath(cfg, pt(x, y-cfg.Height-bottomCopyOffset))
	s.sectionOrigin = pt(x+total+sectionGap, y)
	s.detailOrigin = pt(s.sectionOrigin.X+cfg.Width+detailGap, y)
	s.closedStirrup = ClosedStirrupPath(cfg, s.sectionOrigin)
	s.openStirrup = OpenStirrupPath(cfg, s.detailOrigin)

	reg := schedule.NewRegistry()
	s.top = reg.Register(model.BarRecord{
		Element:  cfg.Name,
		Kind:     model.BarTop,
		Diameter: cfg.TopDiameter,
		Quantity: cfg.TopQuantity,
		Length:   BarLength(s.topCopy, cfg.TopDiameter),
		Grade:    cfg.TopGrade,
		Anchor:   pt(midX(s.topCopy), s.topCopy[3].Y),
		Shape:    s.topCopy,
	})
	s.bottom = reg.Register(model.BarRecord{
		Element:  cfg.Name,
		Kind:     model.BarBottom,
		Diameter: cfg.BottomDiameter,
		Quantity: cfg.BottomQuantity,
		Length:   BarLength(s.bottomCopy, cfg.BottomDiameter),
		Grade:    cfg.BottomGrade,
		Anchor:   pt(midX(s.bottomCopy), s.bottomCopy[0].Y),
		Shape:    s.bottomCopy,
	})
	s.stirrup = reg.Register(model.BarRecord{
		Element:  cfg.Name,
		Kind:     model.BarStirrup,
		Diameter: cfg.StirrupDiameter,
		Quantity: layout.Count(),
		Length:   BarLength(s.closedStirrup, cfg.StirrupDiameter),
		Grade:    cfg.StirrupGrade,
		Anchor: pt(s.detailOrigin.X+cfg.Width-cfg.CoverRight+calloutOffset,
			s.detailOrigin.Y+cfg.Height/2-leaderOffset),
		Shape: s.closedStirrup,
	})
	s.records = reg.Snapshot()

	s.topPack = s.pack(s.top, cfg.CoverTop, opts.AggregateSize)
	s.bottomPack = s.pack(s.bottom, cfg.CoverBottom, opts.AggregateSize)

	s.table = schedule.Build(s.records, cfg.Name, cfg.Elements, opts.Density)
	return s, nil
}

// pack places the bars of rec in the section. Overflow is kept as a
// warning; the bars that fit are still drawn.
func (s *sheet) pack(rec model.BarRecord, face, aggregate float64) SectionPacking {
	p, err := PackBars(PackRequest{
		Diameter:        rec.Diameter,
		Quantity:        rec.Quantity,
		Width:           s.cfg.Width,
		CoverLeft:       s.cfg.CoverLeft,
		CoverRight:      s.cfg.CoverRight,
		CoverFace:       face,
		StirrupDiameter: s.cfg.StirrupDiameter,
		AggregateSize:   aggregate,
	})
	var overflow *SectionOverflowError
	if errors.As(err, &overflow) {
		s.overflow = true
		s.warnings = append(s.warnings, fmt.Sprintf("bar %d (%s): %v", rec.Number, rec.Kind, overflow))
	}
	return p
}

func midX(p geom.Path) float64 {
	return p[0].X + (p[len(p)-1].X-p[0].X)/2
}
