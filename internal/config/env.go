// Package config reads the process environment into typed settings.
package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/piwi3910/BeamDetail/internal/model"
)

// Prefix is prepended to every variable name, e.g. BEAMDETAIL_LOG_LEVEL.
const Prefix = "BEAMDETAIL"

// EnvConfig holds all environment-based configuration. Field names map to
// prefixed variables only; an unprefixed LANGUAGE or LOG_LEVEL is ignored.
// Settings that the app config also carries have no default here, so an
// unset variable leaves the saved value alone.
type EnvConfig struct {
	// OutputDir is where generated files are written.
	// Env: OUTPUT_DIR
	OutputDir string `split_words:"true"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: info)
	LogLevel string `split_words:"true" default:"info"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `split_words:"true" default:"pretty"`

	// Language selects the drawing labels (pl, eng, de).
	// Env: LANGUAGE
	Language string `split_words:"true"`

	// Formats is a comma-separated list of outputs, e.g. dxf,pdf,xlsx.
	// Env: FORMATS
	Formats []string `split_words:"true"`

	// AggregateSize is the largest aggregate grain in mm.
	// Env: AGGREGATE_SIZE
	AggregateSize float64 `split_words:"true"`

	// SteelDensity in kg/m³.
	// Env: STEEL_DENSITY
	SteelDensity float64 `split_words:"true"`

	// MinStirrupSpacing is the floor of the stirrup spacing search in mm.
	// Env: MIN_STIRRUP_SPACING (default: 50)
	MinStirrupSpacing float64 `split_words:"true" default:"50"`

	// StockLength is the purchasable bar length in mm.
	// Env: STOCK_LENGTH
	StockLength float64 `split_words:"true"`
}

// LoadEnv loads configuration from BEAMDETAIL_* environment variables.
func LoadEnv() (EnvConfig, error) {
	return LoadEnvWithPrefix(Prefix)
}

// LoadEnvWithPrefix loads configuration with a custom prefix.
func LoadEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg.Normalize(), nil
}

// Normalize lower-cases the enumerated settings and drops empty formats.
func (e EnvConfig) Normalize() EnvConfig {
	e.LogLevel = strings.ToLower(strings.TrimSpace(e.LogLevel))
	e.LogFormat = strings.ToLower(strings.TrimSpace(e.LogFormat))
	e.Language = strings.ToLower(strings.TrimSpace(e.Language))
	var formats []string
	for _, f := range e.Formats {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	e.Formats = formats
	return e
}

// Overlay returns app with every setting the environment provides
// replacing the saved one.
func (e EnvConfig) Overlay(app model.AppConfig) model.AppConfig {
	if e.OutputDir != "" {
		app.OutputDir = e.OutputDir
	}
	if e.Language != "" {
		app.DefaultLanguage = e.Language
	}
	if len(e.Formats) > 0 {
		app.Formats = e.Formats
	}
	if e.AggregateSize > 0 {
		app.DefaultAggregateSize = e.AggregateSize
	}
	if e.SteelDensity > 0 {
		app.DefaultSteelDensity = e.SteelDensity
	}
	if e.StockLength > 0 {
		app.DefaultStockLength = e.StockLength
	}
	return app
}
