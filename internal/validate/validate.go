// Package validate turns a flat set of named parameters into a checked
// model.BeamConfig. Checks run in a fixed order and the first failure is
// returned; no partial configuration is ever handed out.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/BeamDetail/internal/model"
)

// MaxNameLength is the longest accepted element, grade or language name.
const MaxNameLength = 20

// ForbiddenNameChars are the characters rejected in names because the name
// ends up in output file names.
const ForbiddenNameChars = `/\:*?"<>|`

// MinFirstRowSpacing is the smallest non-zero first-row stirrup spacing.
// Zero disables the row.
const MinFirstRowSpacing = 50.0

// Kind is the value type a parameter accepts.
type Kind int

const (
	KindLength Kind = iota // real number, mm
	KindCount              // whole number
	KindName               // path-safe string
)

// Rule describes one accepted parameter.
type Rule struct {
	Key          string
	Kind         Kind
	Min, Max     float64
	MinExclusive bool
	Floor        float64 // non-zero values below Floor are rejected
	Optional     bool
	Default      any
	Help         string

	set func(c *model.BeamConfig, num float64, str string)
}

func length(key string, min, max float64, help string, set func(c *model.BeamConfig, v float64)) Rule {
	return Rule{Key: key, Kind: KindLength, Min: min, Max: max, Help: help,
		set: func(c *model.BeamConfig, v float64, _ string) { set(c, v) }}
}

func count(key string, min, max float64, help string, set func(c *model.BeamConfig, v int)) Rule {
	return Rule{Key: key, Kind: KindCount, Min: min, Max: max, Help: help,
		set: func(c *model.BeamConfig, v float64, _ string) { set(c, int(v)) }}
}

func name(key, help string, set func(c *model.BeamConfig, v string)) Rule {
	return Rule{Key: key, Kind: KindName, Help: help,
		set: func(c *model.BeamConfig, _ float64, s string) { set(c, s) }}
}

func withFloor(r Rule, floor float64) Rule {
	r.Floor = floor
	return r
}

func optional(r Rule, def any) Rule {
	r.Optional = true
	r.Default = def
	return r
}

// rules lists every parameter in checking order. The first-row ranges come
// before the span because the span check depends on them.
var rules = []Rule{
	optional(withFloor(length("first_row_stirrup_spacing_right", 0, 400, "first-row stirrup spacing at the right support",
		func(c *model.BeamConfig, v float64) { c.FirstRowSpacingRight = v }), MinFirstRowSpacing), 0.0),
	optional(withFloor(length("first_row_stirrup_spacing_left", 0, 400, "first-row stirrup spacing at the left support",
		func(c *model.BeamConfig, v float64) { c.FirstRowSpacingLeft = v }), MinFirstRowSpacing), 0.0),
	optional(length("first_row_stirrup_range_right", 0, 15000, "length of the first-row zone at the right support",
		func(c *model.BeamConfig, v float64) { c.FirstRowRangeRight = v }), 0.0),
	optional(length("first_row_stirrup_range_left", 0, 15000, "length of the first-row zone at the left support",
		func(c *model.BeamConfig, v float64) { c.FirstRowRangeLeft = v }), 0.0),
	optional(name("name", "element name",
		func(c *model.BeamConfig, v string) { c.Name = v }), "Beam"),
	optional(count("number_of_elements", 1, 1000, "number of identical elements",
		func(c *model.BeamConfig, v int) { c.Elements = v }), 1),
	length("cover_right", 5, 100, "side cover, right face of the section",
		func(c *model.BeamConfig, v float64) { c.CoverRight = v }),
	length("cover_left", 5, 100, "side cover, left face of the section",
		func(c *model.BeamConfig, v float64) { c.CoverLeft = v }),
	length("beam_width", 100, 1000, "section width",
		func(c *model.BeamConfig, v float64) { c.Width = v }),
	length("cover_top", 5, 100, "top cover",
		func(c *model.BeamConfig, v float64) { c.CoverTop = v }),
	length("cover_bottom", 5, 100, "bottom cover",
		func(c *model.BeamConfig, v float64) { c.CoverBottom = v }),
	length("cover_view_right", 5, 100, "end cover at the right end of the beam",
		func(c *model.BeamConfig, v float64) { c.CoverViewRight = v }),
	length("cover_view_left", 5, 100, "end cover at the left end of the beam",
		func(c *model.BeamConfig, v float64) { c.CoverViewLeft = v }),
	length("diameter_main_bottom", 1, 100, "bottom bar diameter",
		func(c *model.BeamConfig, v float64) { c.BottomDiameter = v }),
	count("quantity_main_top", 1, 40, "number of top bars",
		func(c *model.BeamConfig, v int) { c.TopQuantity = v }),
	name("steel_grade_main_top", "top bar steel grade",
		func(c *model.BeamConfig, v string) { c.TopGrade = v }),
	length("diameter_main_top", 1, 100, "top bar diameter",
		func(c *model.BeamConfig, v float64) { c.TopDiameter = v }),
	count("quantity_main_bottom", 1, 40, "number of bottom bars",
		func(c *model.BeamConfig, v int) { c.BottomQuantity = v }),
	name("steel_grade_main_bottom", "bottom bar steel grade",
		func(c *model.BeamConfig, v string) { c.BottomGrade = v }),
	length("diameter_stirrup", 1, 100, "stirrup diameter",
		func(c *model.BeamConfig, v float64) { c.StirrupDiameter = v }),
	name("steel_grade_stirrup", "stirrup steel grade",
		func(c *model.BeamConfig, v string) { c.StirrupGrade = v }),
	length("width_support_right", 50, 1000, "right support width",
		func(c *model.BeamConfig, v float64) { c.SupportRight = v }),
	length("width_support_left", 50, 1000, "left support width",
		func(c *model.BeamConfig, v float64) { c.SupportLeft = v }),
	spanRule(),
	length("beam_height", 100, 1500, "section height",
		func(c *model.BeamConfig, v float64) { c.Height = v }),
	optional(name("language", "label language (pl, eng, de)",
		func(c *model.BeamConfig, v string) { c.Language = v }), "eng"),
	length("secondary_stirrup_spacing", 0, 400, "target stirrup spacing between the first rows",
		func(c *model.BeamConfig, v float64) { c.SecondarySpacing = v }),
}

func spanRule() Rule {
	r := length("beam_span", 300, 15000, "clear span between supports",
		func(c *model.BeamConfig, v float64) { c.Span = v })
	r.MinExclusive = true
	return r
}

// Rules returns the parameter rules in checking order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Validate checks raw and builds a BeamConfig from it. Keys follow the
// snake_case names of the BeamConfig JSON tags. Numbers may be any Go
// numeric type or json.Number; numeric strings are rejected.
func Validate(raw map[string]any) (model.BeamConfig, error) {
	var cfg model.BeamConfig
	for _, r := range rules {
		v, ok := raw[r.Key]
		if !ok || v == nil {
			if !r.Optional {
				return model.BeamConfig{}, &RangeError{Field: r.Key, Value: nil, Reason: "is required"}
			}
			v = r.Default
		}

		if r.Kind == KindName {
			s, ok := v.(string)
			if !ok {
				return model.BeamConfig{}, &InvalidNameError{Field: r.Key, Value: toString(v), Reason: "is not a string"}
			}
			if err := checkName(r.Key, s); err != nil {
				return model.BeamConfig{}, err
			}
			r.set(&cfg, 0, s)
			continue
		}

		num, ok := toFloat(v)
		if !ok {
			return model.BeamConfig{}, &RangeError{Field: r.Key, Value: v, Reason: "is not a number"}
		}
		if r.Kind == KindCount && num != math.Trunc(num) {
			return model.BeamConfig{}, &RangeError{Field: r.Key, Value: v, Reason: "is not a whole number"}
		}
		if err := r.checkRange(num); err != nil {
			return model.BeamConfig{}, err
		}
		if r.Key == "beam_span" && num-cfg.FirstRowRangeLeft-cfg.FirstRowRangeRight < 0 {
			return model.BeamConfig{}, &InconsistentSpanError{
				Span:       num,
				RangeLeft:  cfg.FirstRowRangeLeft,
				RangeRight: cfg.FirstRowRangeRight,
			}
		}
		r.set(&cfg, num, "")
	}
	return cfg, nil
}

// Config re-checks an already typed configuration, e.g. one loaded from a
// preset file.
func Config(c model.BeamConfig) (model.BeamConfig, error) {
	return Validate(Params(c))
}

// Params flattens c into the raw parameter form accepted by Validate.
func Params(c model.BeamConfig) map[string]any {
	return map[string]any{
		"name":                            c.Name,
		"language":                        c.Language,
		"number_of_elements":              c.Elements,
		"beam_span":                       c.Span,
		"beam_height":                     c.Height,
		"beam_width":                      c.Width,
		"width_support_left":              c.SupportLeft,
		"width_support_right":             c.SupportRight,
		"diameter_main_top":               c.TopDiameter,
		"quantity_main_top":               c.TopQuantity,
		"steel_grade_main_top":            c.TopGrade,
		"diameter_main_bottom":            c.BottomDiameter,
		"quantity_main_bottom":            c.BottomQuantity,
		"steel_grade_main_bottom":         c.BottomGrade,
		"diameter_stirrup":                c.StirrupDiameter,
		"steel_grade_stirrup":             c.StirrupGrade,
		"cover_top":                       c.CoverTop,
		"cover_bottom":                    c.CoverBottom,
		"cover_left":                      c.CoverLeft,
		"cover_right":                     c.CoverRight,
		"cover_view_left":                 c.CoverViewLeft,
		"cover_view_right":                c.CoverViewRight,
		"first_row_stirrup_range_left":    c.FirstRowRangeLeft,
		"first_row_stirrup_range_right":   c.FirstRowRangeRight,
		"first_row_stirrup_spacing_left":  c.FirstRowSpacingLeft,
		"first_row_stirrup_spacing_right": c.FirstRowSpacingRight,
		"secondary_stirrup_spacing":       c.SecondarySpacing,
	}
}

func (r Rule) checkRange(v float64) error {
	low := v < r.Min
	if r.MinExclusive {
		low = v <= r.Min
	}
	if low || v > r.Max || math.IsNaN(v) {
		return &RangeError{Field: r.Key, Value: v, Min: r.Min, Max: r.Max, MinExclusive: r.MinExclusive}
	}
	if r.Floor > 0 && v > 0 && v < r.Floor {
		return &RangeError{Field: r.Key, Value: v, Min: r.Min, Max: r.Max,
			Reason: fmt.Sprintf("is below %g (use 0 to leave the row out)", r.Floor)}
	}
	return nil
}

func checkName(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return &InvalidNameError{Field: field, Value: s, Reason: "is empty"}
	}
	if len([]rune(s)) > MaxNameLength {
		return &InvalidNameError{Field: field, Value: s, Reason: "is longer than 20 characters"}
	}
	if i := strings.IndexAny(s, ForbiddenNameChars); i >= 0 {
		return &InvalidNameError{Field: field, Value: s, Reason: "contains " + string(s[i])}
	}
	for _, r := range s {
		if r < 0x20 {
			return &InvalidNameError{Field: field, Value: s, Reason: "contains a control character"}
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, _ := json.Marshal(v)
	return string(b)
}
