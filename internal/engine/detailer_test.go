package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BeamDetail/internal/draw"
	"github.com/piwi3910/BeamDetail/internal/model"
	"github.com/piwi3910/BeamDetail/internal/validate"
)

func newTestDetailer() *Detailer {
	return NewDetailer(draw.DefaultStyle(), DefaultOptions(), zerolog.Nop())
}

func TestDetailerRunDefaultBeam(t *testing.T) {
	rec := draw.NewRecorder()
	res, err := newTestDetailer().Run(model.DefaultBeamConfig(), rec)
	require.NoError(t, err)

	_, err = uuid.Parse(res.RequestID)
	assert.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 23, res.Layout.Count())

	require.Len(t, res.Records, 3)
	assert.Equal(t, model.BarTop, res.Records[0].Kind)
	assert.Equal(t, 5068.0, res.Records[0].Length)
	assert.Equal(t, 4450.0, res.Records[1].Length)
	assert.Equal(t, 1225.0, res.Records[2].Length)
	assert.Equal(t, 23, res.Records[2].Quantity)
	for i, r := range res.Records {
		assert.Equal(t, i+1, r.Number)
	}

	assert.Len(t, res.Schedule.Rows, 3)
	assert.Equal(t, "eng", res.Labels.Language)

	style := draw.DefaultStyle()
	assert.Len(t, rec.Polylines(style.Layers.Stirrups.Name), 23+2)
	assert.Len(t, rec.Polylines(style.Layers.Bars.Name), 4)
	assert.Len(t, rec.Dimensions(), 4+3+4+2+2)

	for _, name := range []string{SymbolMarker, SymbolSectionMarker, SymbolDescription} {
		assert.True(t, rec.HasSymbol(name), name)
	}
	inserts := rec.Count(func(p draw.Primitive) bool { _, ok := p.(draw.Insert); return ok })
	assert.Equal(t, 2+3+3, inserts)

	texts := rec.Texts()
	assert.Contains(t, texts, "A-A")
	assert.Contains(t, texts, "Bending schedule")
	assert.Contains(t, texts, "5068")
}

func TestDetailerBarsInSection(t *testing.T) {
	rec := draw.NewRecorder()
	cfg := model.DefaultBeamConfig()
	_, err := newTestDetailer().Run(cfg, rec)
	require.NoError(t, err)

	fills := rec.Count(func(p draw.Primitive) bool { _, ok := p.(draw.Fill); return ok })
	assert.Equal(t, cfg.TopQuantity+cfg.BottomQuantity, fills)
}

func TestDetailerSectionOverflowIsAWarning(t *testing.T) {
	cfg := model.DefaultBeamConfig()
	cfg.BottomQuantity = 12

	rec := draw.NewRecorder()
	res, err := newTestDetailer().Run(cfg, rec)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "do not fit")
	assert.Contains(t, rec.Texts(), res.Labels.SectionOverflow)

	fills := rec.Count(func(p draw.Primitive) bool { _, ok := p.(draw.Fill); return ok })
	assert.Equal(t, cfg.TopQuantity+4, fills)
}

func TestDetailerLanguage(t *testing.T) {
	cfg := model.DefaultBeamConfig()
	cfg.Language = "pl"
	rec := draw.NewRecorder()
	res, err := newTestDetailer().Run(cfg, rec)
	require.NoError(t, err)
	assert.Equal(t, "pl", res.Labels.Language)
	assert.Contains(t, rec.Texts(), "Zestawienie stali")
}

func TestDetailerFatalErrorsEmitNothing(t *testing.T) {
	cfg := model.DefaultBeamConfig()
	cfg.Height = 50

	rec := draw.NewRecorder()
	_, err := newTestDetailer().Run(cfg, rec)
	var re *validate.RangeError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "beam_height", re.Field)
	assert.Empty(t, rec.Items)
	assert.False(t, rec.HasSymbol(SymbolMarker))

	opts := DefaultOptions()
	opts.MinStirrupSpacing = 300
	d := NewDetailer(draw.DefaultStyle(), opts, zerolog.Nop())
	_, err = d.Run(model.DefaultBeamConfig(), rec)
	var se *SpacingSolverError
	require.True(t, errors.As(err, &se))
	assert.Empty(t, rec.Items)
}

func TestDetailerSymbolsDefinedOnce(t *testing.T) {
	rec := &countingSink{Recorder: draw.NewRecorder()}
	d := newTestDetailer()
	cfg := model.DefaultBeamConfig()
	_, err := d.Run(cfg, rec)
	require.NoError(t, err)
	cfg.Name = "B2"
	_, err = d.Run(cfg, rec)
	require.NoError(t, err)
	assert.Equal(t, 3, rec.defined)
}

type countingSink struct {
	*draw.Recorder
	defined int
}

func (c *countingSink) DefineSymbol(sym draw.Symbol) {
	c.defined++
	c.Recorder.DefineSymbol(sym)
}

func TestDetailerLogsSolverAtDebug(t *testing.T) {
	var buf bytes.Buffer
	d := NewDetailer(draw.DefaultStyle(), DefaultOptions(), zerolog.New(&buf).Level(zerolog.DebugLevel))

	cfg := withRows(model.DefaultBeamConfig(), false, false)
	cfg.Span = 3990
	res, err := d.Run(cfg, draw.NewRecorder())
	require.NoError(t, err)

	var solved map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["message"] == "stirrups solved" {
			solved = entry
		}
	}
	require.NotNil(t, solved, "no solver entry in %s", buf.String())
	assert.Equal(t, "debug", solved["level"])
	assert.Equal(t, res.RequestID, solved["request_id"])
	assert.Equal(t, 200.0, solved["initial_spacing"])
	assert.Equal(t, 190.0, solved["spacing"])
	assert.Equal(t, 2.0, solved["iterations"])
	assert.Equal(t, 0.0, solved["residual"])
}

func TestDetailerRunIsRepeatable(t *testing.T) {
	cfg := model.DefaultBeamConfig()
	cfg.Span = 5123
	cfg.Elements = 3

	a, err := newTestDetailer().Run(cfg, draw.NewRecorder())
	require.NoError(t, err)
	b, err := newTestDetailer().Run(cfg, draw.NewRecorder())
	require.NoError(t, err)

	assert.Equal(t, a.Records, b.Records)
	assert.Equal(t, a.Schedule, b.Schedule)
	assert.Equal(t, a.Schedule.TotalMass, b.Schedule.TotalMass)
	assert.Equal(t, a.Layout, b.Layout)
	assert.NotEqual(t, a.RequestID, b.RequestID)
}
