package model

// ActiveRows tells which first-row stirrup groups a beam carries. It drives
// how the span is split into dimension regions.
type ActiveRows int

const (
	RowsNone  ActiveRows = iota // Secondary spacing over the whole span
	RowsLeft                    // First row at the left support only
	RowsRight                   // First row at the right support only
	RowsBoth                    // First rows at both supports
)

func (a ActiveRows) String() string {
	switch a {
	case RowsLeft:
		return "left"
	case RowsRight:
		return "right"
	case RowsBoth:
		return "both"
	default:
		return "none"
	}
}

// Left reports whether the left first row is active.
func (a ActiveRows) Left() bool { return a == RowsLeft || a == RowsBoth }

// Right reports whether the right first row is active.
func (a ActiveRows) Right() bool { return a == RowsRight || a == RowsBoth }

// BeamConfig holds every engineering input of one beam. Lengths are in mm.
// Values are only trusted after validate.Validate has produced them.
type BeamConfig struct {
	Name     string `json:"name" yaml:"name"`
	Language string `json:"language" yaml:"language"`
	Elements int    `json:"number_of_elements" yaml:"number_of_elements"`

	Span         float64 `json:"beam_span" yaml:"beam_span"`
	Height       float64 `json:"beam_height" yaml:"beam_height"`
	Width        float64 `json:"beam_width" yaml:"beam_width"`
	SupportLeft  float64 `json:"width_support_left" yaml:"width_support_left"`
	SupportRight float64 `json:"width_support_right" yaml:"width_support_right"`

	TopDiameter    float64 `json:"diameter_main_top" yaml:"diameter_main_top"`
	TopQuantity    int     `json:"quantity_main_top" yaml:"quantity_main_top"`
	TopGrade       string  `json:"steel_grade_main_top" yaml:"steel_grade_main_top"`
	BottomDiameter float64 `json:"diameter_main_bottom" yaml:"diameter_main_bottom"`
	BottomQuantity int     `json:"quantity_main_bottom" yaml:"quantity_main_bottom"`
	BottomGrade    string  `json:"steel_grade_main_bottom" yaml:"steel_grade_main_bottom"`

	StirrupDiameter float64 `json:"diameter_stirrup" yaml:"diameter_stirrup"`
	StirrupGrade    string  `json:"steel_grade_stirrup" yaml:"steel_grade_stirrup"`

	CoverTop       float64 `json:"cover_top" yaml:"cover_top"`
	CoverBottom    float64 `json:"cover_bottom" yaml:"cover_bottom"`
	CoverLeft      float64 `json:"cover_left" yaml:"cover_left"`
	CoverRight     float64 `json:"cover_right" yaml:"cover_right"`
	CoverViewLeft  float64 `json:"cover_view_left" yaml:"cover_view_left"`
	CoverViewRight float64 `json:"cover_view_right" yaml:"cover_view_right"`

	FirstRowRangeLeft    float64 `json:"first_row_stirrup_range_left" yaml:"first_row_stirrup_range_left"`
	FirstRowRangeRight   float64 `json:"first_row_stirrup_range_right" yaml:"first_row_stirrup_range_right"`
	FirstRowSpacingLeft  float64 `json:"first_row_stirrup_spacing_left" yaml:"first_row_stirrup_spacing_left"`
	FirstRowSpacingRight float64 `json:"first_row_stirrup_spacing_right" yaml:"first_row_stirrup_spacing_right"`
	SecondarySpacing     float64 `json:"secondary_stirrup_spacing" yaml:"secondary_stirrup_spacing"`
}

// DefaultBeamConfig returns a 4 m simply supported beam that passes
// validation and is used as the starting point for new presets.
func DefaultBeamConfig() BeamConfig {
	return BeamConfig{
		Name:                 "Beam",
		Language:             "eng",
		Elements:             1,
		Span:                 4000,
		Height:               400,
		Width:                250,
		SupportLeft:          250,
		SupportRight:         250,
		TopDiameter:          16,
		TopQuantity:          2,
		TopGrade:             "B500SP",
		BottomDiameter:       20,
		BottomQuantity:       3,
		BottomGrade:          "B500SP",
		StirrupDiameter:      8,
		StirrupGrade:         "B500SP",
		CoverTop:             25,
		CoverBottom:          25,
		CoverLeft:            25,
		CoverRight:           25,
		CoverViewLeft:        25,
		CoverViewRight:       25,
		FirstRowRangeLeft:    600,
		FirstRowRangeRight:   600,
		FirstRowSpacingLeft:  150,
		FirstRowSpacingRight: 150,
		SecondarySpacing:     200,
	}
}

// TotalLength returns the outer length of the beam including both supports.
func (c BeamConfig) TotalLength() float64 {
	return c.SupportLeft + c.Span + c.SupportRight
}

// LeftRowActive reports whether a first-row group is configured at the left support.
func (c BeamConfig) LeftRowActive() bool {
	return c.FirstRowRangeLeft != 0 && c.FirstRowSpacingLeft != 0
}

// RightRowActive reports whether a first-row group is configured at the right support.
func (c BeamConfig) RightRowActive() bool {
	return c.FirstRowRangeRight != 0 && c.FirstRowSpacingRight != 0
}

// ActiveRows classifies the beam by its configured first-row groups.
func (c BeamConfig) ActiveRows() ActiveRows {
	switch {
	case c.LeftRowActive() && c.RightRowActive():
		return RowsBoth
	case c.LeftRowActive():
		return RowsLeft
	case c.RightRowActive():
		return RowsRight
	default:
		return RowsNone
	}
}

// StirrupLayout is the solved distribution of stirrups along the clear span.
// Positions are measured from the face of the left support.
type StirrupLayout struct {
	Positions        []float64  `json:"positions"`
	LastLeft         float64    `json:"last_left"`  // 0 when the left first row is inactive
	LastRight        float64    `json:"last_right"` // span when the right first row is inactive
	SecondarySpacing float64    `json:"secondary_spacing"`
	SecondaryCount   int        `json:"secondary_count"`
	Residual         float64    `json:"residual"` // gap left uncovered, split over both ends
	Breakpoints      []float64  `json:"breakpoints"`
	Active           ActiveRows `json:"active"`
	Iterations       int        `json:"iterations"`
}

// Count returns the number of stirrups in the beam.
func (l StirrupLayout) Count() int {
	return len(l.Positions)
}

// EdgeOffset returns the distance from each support face to the first stirrup.
func (l StirrupLayout) EdgeOffset() float64 {
	return l.Residual / 2
}
