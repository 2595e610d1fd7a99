package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamDetail/internal/model"
	"github.com/piwi3910/BeamDetail/internal/project"
)

var configReset bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or reset the application config",
	Long: `Print the effective application config, after BEAMDETAIL_* variables
are applied, as JSON. With --reset the saved config is replaced by the
defaults first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configReset {
			state.app = state.env.Overlay(model.DefaultAppConfig())
			if err := project.SaveAppConfig(state.configPath, model.DefaultAppConfig()); err != nil {
				return err
			}
		}
		data, err := json.MarshalIndent(state.app, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up or restore the config and the preset library",
}

var backupExportCmd = &cobra.Command{
	Use:   "export <file.json>",
	Short: "Write the config and all presets to one file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := project.LoadAppConfig(state.configPath)
		if err != nil {
			return err
		}
		store, err := project.LoadPresets(state.presetPath)
		if err != nil {
			return err
		}
		if err := project.ExportAllData(args[0], app, store); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backed up config and %d presets to %s\n", len(store.Presets), args[0])
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Restore the config and presets from a backup",
	Long:  "Restore the config from a backup and add its presets to the library.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backup, err := project.ImportAllData(args[0])
		if err != nil {
			return err
		}
		store, err := project.LoadPresets(state.presetPath)
		if err != nil {
			return err
		}
		for _, p := range backup.Presets.Presets {
			store.Add(p)
		}
		if err := project.SaveAppConfig(state.configPath, backup.Config); err != nil {
			return err
		}
		if err := project.SavePresets(state.presetPath, store); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored config and %d presets from backup of %s\n",
			len(backup.Presets.Presets), backup.CreatedAt)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd, backupCmd)
	backupCmd.AddCommand(backupExportCmd, backupImportCmd)

	configCmd.Flags().BoolVar(&configReset, "reset", false, "replace the saved config with the defaults")
}
