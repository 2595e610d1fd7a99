package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamDetail/internal/config"
	"github.com/piwi3910/BeamDetail/internal/log"
	"github.com/piwi3910/BeamDetail/internal/model"
	"github.com/piwi3910/BeamDetail/internal/project"
	"github.com/piwi3910/BeamDetail/internal/version"
)

// appState is what every command sees after the root pre-run.
type appState struct {
	env        config.EnvConfig
	app        model.AppConfig
	logger     zerolog.Logger
	configPath string
	presetPath string
}

var state = appState{logger: zerolog.Nop()}

var (
	// Global flags
	envFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "beamdetail",
	Short: "Reinforced concrete beam detailing",
	Long: `beamdetail - reinforced concrete beam detailing

Computes the reinforcement of a simply supported rectangular beam and
writes the detail drawing, bending schedule and shop outputs:
  - DXF drawing and A3 PDF sheet
  - Excel bending schedule with a cutting plan
  - QR-coded bar tags and a section preview image

Settings are read from BEAMDETAIL_* environment variables (an optional
.env file is loaded first) and from ~/.beamdetail/config.json.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file loaded before BEAMDETAIL_* variables")
	rootCmd.PersistentFlags().StringVar(&state.configPath, "config", project.DefaultConfigPath(), "application config file")
	rootCmd.PersistentFlags().StringVar(&state.presetPath, "presets", project.DefaultPresetPath(), "preset library file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: pretty or json")
}

// setup loads the environment and the app config and builds the logger.
// Precedence: flag > environment > app config > built-in default.
func setup(cmd *cobra.Command, _ []string) error {
	env, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	state.env = env

	level, format := env.LogLevel, env.LogFormat
	if logLevel != "" {
		level = logLevel
	}
	if logFormat != "" {
		format = logFormat
	}
	state.logger = log.New(level, format, cmd.ErrOrStderr())

	app, err := project.LoadAppConfig(state.configPath)
	if err != nil {
		return err
	}
	state.app = env.Overlay(app)
	state.logger.Debug().
		Str("config", state.configPath).
		Str("output_dir", state.app.OutputDir).
		Strs("formats", state.app.Formats).
		Msg("configuration loaded")
	return nil
}
