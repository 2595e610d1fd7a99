package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamDetail/internal/draw"
	"github.com/piwi3910/BeamDetail/internal/engine"
	"github.com/piwi3910/BeamDetail/internal/importer"
	"github.com/piwi3910/BeamDetail/internal/model"
	"github.com/piwi3910/BeamDetail/internal/project"
	"github.com/piwi3910/BeamDetail/internal/validate"
)

// paramFlags binds one flag per beam parameter plus the --params and
// --preset sources to a command.
type paramFlags struct {
	lengths map[string]*float64
	counts  map[string]*int
	names   map[string]*string

	file   string
	preset string
}

// flagName turns a parameter key into its flag name, e.g. beam-span.
func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func addParamFlags(cmd *cobra.Command) *paramFlags {
	p := &paramFlags{
		lengths: map[string]*float64{},
		counts:  map[string]*int{},
		names:   map[string]*string{},
	}
	fs := cmd.Flags()
	for _, r := range validate.Rules() {
		usage := r.Help
		switch r.Kind {
		case validate.KindName:
			p.names[r.Key] = fs.String(flagName(r.Key), "", usage)
		case validate.KindCount:
			p.counts[r.Key] = fs.Int(flagName(r.Key), 0, usage)
		default:
			p.lengths[r.Key] = fs.Float64(flagName(r.Key), 0, usage+" (mm)")
		}
	}
	fs.StringVar(&p.file, "params", "", "parameter file (.yaml, .json, .csv, .xlsx)")
	fs.StringVar(&p.preset, "preset", "", "start from a saved preset (name or id)")
	return p
}

// changed returns the parameters set explicitly on the command line.
func (p *paramFlags) changed(cmd *cobra.Command) map[string]any {
	out := map[string]any{}
	fs := cmd.Flags()
	for k, v := range p.lengths {
		if fs.Changed(flagName(k)) {
			out[k] = *v
		}
	}
	for k, v := range p.counts {
		if fs.Changed(flagName(k)) {
			out[k] = *v
		}
	}
	for k, v := range p.names {
		if fs.Changed(flagName(k)) {
			out[k] = *v
		}
	}
	return out
}

// resolve builds the beam from, in increasing priority, the built-in and
// saved defaults, the preset, the parameter file and the flags.
func (p *paramFlags) resolve(cmd *cobra.Command) (model.BeamConfig, error) {
	base := baseConfig(state.app)
	if p.preset != "" {
		store, err := project.LoadPresets(state.presetPath)
		if err != nil {
			return model.BeamConfig{}, err
		}
		preset := store.Find(p.preset)
		if preset == nil {
			return model.BeamConfig{}, fmt.Errorf("preset %q not found", p.preset)
		}
		base = preset.ToConfig("")
	}

	var file map[string]any
	if p.file != "" {
		res := importer.ImportParams(p.file)
		for _, w := range res.Warnings {
			state.logger.Warn().Str("file", p.file).Msg(w)
		}
		if err := res.Err(); err != nil {
			return model.BeamConfig{}, fmt.Errorf("failed to import %s: %w", p.file, err)
		}
		file = res.Params
	}

	return validate.Validate(mergeParams(base, file, p.changed(cmd)))
}

// mergeParams flattens base and lays the overrides over it in order.
func mergeParams(base model.BeamConfig, overrides ...map[string]any) map[string]any {
	raw := validate.Params(base)
	for _, o := range overrides {
		for k, v := range o {
			raw[k] = v
		}
	}
	return raw
}

// baseConfig is the built-in beam with the saved language and covers.
func baseConfig(app model.AppConfig) model.BeamConfig {
	cfg := model.DefaultBeamConfig()
	cfg.Language = ""
	cfg.CoverTop, cfg.CoverBottom, cfg.CoverLeft, cfg.CoverRight = 0, 0, 0, 0
	cfg.CoverViewLeft, cfg.CoverViewRight = 0, 0
	app.ApplyToConfig(&cfg)
	model.DefaultAppConfig().ApplyToConfig(&cfg)
	return cfg
}

func detailerOptions() engine.Options {
	opts := engine.DefaultOptions()
	if state.app.DefaultAggregateSize > 0 {
		opts.AggregateSize = state.app.DefaultAggregateSize
	}
	if state.app.DefaultSteelDensity > 0 {
		opts.Density = state.app.DefaultSteelDensity
	}
	if state.env.MinStirrupSpacing > 0 {
		opts.MinStirrupSpacing = state.env.MinStirrupSpacing
	}
	return opts
}

// runDetailer details cfg into a fresh recorder.
func runDetailer(cfg model.BeamConfig) (*draw.Recorder, engine.Result, error) {
	rec := draw.NewRecorder()
	d := engine.NewDetailer(draw.DefaultStyle(), detailerOptions(), state.logger)
	res, err := d.Run(cfg, rec)
	if err != nil {
		return nil, engine.Result{}, err
	}
	return rec, res, nil
}
