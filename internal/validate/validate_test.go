package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BeamDetail/internal/model"
)

func validParams() map[string]any {
	return Params(model.DefaultBeamConfig())
}

func TestValidateDefaultConfig(t *testing.T) {
	cfg, err := Validate(validParams())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultBeamConfig(), cfg)
}

func TestValidateOptionalDefaults(t *testing.T) {
	raw := validParams()
	delete(raw, "name")
	delete(raw, "language")
	delete(raw, "number_of_elements")
	delete(raw, "first_row_stirrup_range_left")
	delete(raw, "first_row_stirrup_spacing_left")

	cfg, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, "Beam", cfg.Name)
	assert.Equal(t, "eng", cfg.Language)
	assert.Equal(t, 1, cfg.Elements)
	assert.Zero(t, cfg.FirstRowRangeLeft)
	assert.Equal(t, model.RowsRight, cfg.ActiveRows())
}

func TestValidateRangeErrors(t *testing.T) {
	tests := []struct {
		field string
		value any
	}{
		{"beam_height", 99.0},
		{"beam_height", 1501},
		{"beam_span", 300},
		{"beam_span", 15001.0},
		{"beam_width", 1001},
		{"width_support_left", 49},
		{"cover_top", 4.9},
		{"cover_view_right", 101},
		{"diameter_stirrup", 0},
		{"quantity_main_top", 41},
		{"quantity_main_bottom", 0},
		{"number_of_elements", 1001},
		{"first_row_stirrup_spacing_left", 401},
		{"secondary_stirrup_spacing", -5},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			raw := validParams()
			raw[tt.field] = tt.value

			_, err := Validate(raw)
			var rangeErr *RangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tt.field, rangeErr.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidateFirstRowSpacingFloor(t *testing.T) {
	raw := validParams()
	raw["first_row_stirrup_spacing_left"] = 0.01

	_, err := Validate(raw)
	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "first_row_stirrup_spacing_left", rangeErr.Field)
	assert.Contains(t, err.Error(), "is below 50")

	raw["first_row_stirrup_spacing_left"] = MinFirstRowSpacing
	_, err = Validate(raw)
	assert.NoError(t, err)

	raw["first_row_stirrup_spacing_left"] = 0
	raw["first_row_stirrup_range_left"] = 0
	cfg, err := Validate(raw)
	require.NoError(t, err)
	assert.False(t, cfg.LeftRowActive())
}

func TestValidateBoundsAreInclusive(t *testing.T) {
	raw := validParams()
	raw["beam_height"] = 100
	raw["beam_width"] = 1000
	raw["cover_left"] = 5
	raw["cover_right"] = 100
	raw["quantity_main_top"] = 40
	raw["beam_span"] = 15000
	_, err := Validate(raw)
	assert.NoError(t, err)
}

func TestValidateSpanLowerBoundIsExclusive(t *testing.T) {
	raw := validParams()
	raw["first_row_stirrup_range_left"] = 0
	raw["first_row_stirrup_range_right"] = 0
	raw["beam_span"] = 300.0
	_, err := Validate(raw)
	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.True(t, rangeErr.MinExclusive)
	assert.Contains(t, err.Error(), "(300, 15000]")

	raw["beam_span"] = 300.5
	_, err = Validate(raw)
	assert.NoError(t, err)
}

func TestValidateInconsistentSpan(t *testing.T) {
	raw := validParams()
	raw["beam_span"] = 1000
	raw["first_row_stirrup_range_left"] = 600
	raw["first_row_stirrup_range_right"] = 500

	_, err := Validate(raw)
	var spanErr *InconsistentSpanError
	require.ErrorAs(t, err, &spanErr)
	assert.Equal(t, 1000.0, spanErr.Span)
	assert.Equal(t, 600.0, spanErr.RangeLeft)
	assert.Equal(t, 500.0, spanErr.RangeRight)

	// Exactly filled by the first rows is still consistent.
	raw["first_row_stirrup_range_right"] = 400
	_, err = Validate(raw)
	assert.NoError(t, err)
}

func TestValidateNames(t *testing.T) {
	tests := []struct {
		field, value string
	}{
		{"name", "a/b"},
		{"name", `back\slash`},
		{"name", "what?"},
		{"name", "123456789012345678901"},
		{"name", ""},
		{"steel_grade_stirrup", "B500*"},
		{"language", "en|de"},
	}
	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			raw := validParams()
			raw[tt.field] = tt.value
			_, err := Validate(raw)
			var nameErr *InvalidNameError
			require.ErrorAs(t, err, &nameErr)
			assert.Equal(t, tt.field, nameErr.Field)
		})
	}

	raw := validParams()
	raw["name"] = "12345678901234567890"
	_, err := Validate(raw)
	assert.NoError(t, err, "20 characters is the limit")
}

func TestValidateTypeChecks(t *testing.T) {
	raw := validParams()
	raw["beam_height"] = "400"
	_, err := Validate(raw)
	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "is not a number", rangeErr.Reason)

	raw = validParams()
	raw["quantity_main_top"] = 2.5
	_, err = Validate(raw)
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "is not a whole number", rangeErr.Reason)

	raw = validParams()
	raw["name"] = 42
	_, err = Validate(raw)
	var nameErr *InvalidNameError
	require.ErrorAs(t, err, &nameErr)

	raw = validParams()
	delete(raw, "beam_height")
	_, err = Validate(raw)
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "is required", rangeErr.Reason)
}

func TestValidateAcceptsJSONNumbers(t *testing.T) {
	b, err := json.Marshal(validParams())
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw map[string]any
	require.NoError(t, dec.Decode(&raw))

	cfg, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, 4000.0, cfg.Span)
	assert.Equal(t, 3, cfg.BottomQuantity)
}

func TestValidateFirstFailureWins(t *testing.T) {
	raw := validParams()
	raw["first_row_stirrup_spacing_right"] = 500
	raw["beam_height"] = 5

	_, err := Validate(raw)
	var rangeErr *RangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "first_row_stirrup_spacing_right", rangeErr.Field)
}

func TestValidateInvariantSpanCoversRanges(t *testing.T) {
	for _, span := range []float64{500, 1200, 4000, 9000} {
		for _, rl := range []float64{0, 300, 600} {
			for _, rr := range []float64{0, 250, 700} {
				raw := validParams()
				raw["beam_span"] = span
				raw["first_row_stirrup_range_left"] = rl
				raw["first_row_stirrup_range_right"] = rr
				cfg, err := Validate(raw)
				if err != nil {
					continue
				}
				assert.GreaterOrEqual(t, cfg.Span, cfg.FirstRowRangeLeft+cfg.FirstRowRangeRight)
			}
		}
	}
}

func TestConfigRoundTrip(t *testing.T) {
	c := model.DefaultBeamConfig()
	c.Name = "B-1"
	got, err := Config(c)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	c.Height = 2000
	_, err = Config(c)
	assert.Error(t, err)
}

func TestRulesCoverEveryParam(t *testing.T) {
	params := Params(model.DefaultBeamConfig())
	keys := map[string]bool{}
	for _, r := range Rules() {
		keys[r.Key] = true
		assert.NotEmpty(t, r.Help, r.Key)
	}
	assert.Len(t, keys, len(params))
	for k := range params {
		assert.True(t, keys[k], "missing rule for %s", k)
	}
}
