package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/BeamDetail/internal/model"
	"github.com/piwi3910/BeamDetail/internal/project"
)

var (
	presetSaveParams  *paramFlags
	presetDescription string
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage the library of saved beams",
	Long: `Save, list and share named beam configurations.

Subcommands:
  list    - List saved presets
  save    - Save the given parameters under a name
  show    - Print one preset as YAML
  delete  - Remove a preset
  export  - Write presets to a YAML file
  import  - Add presets from a YAML file`,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := project.LoadPresets(state.presetPath)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(store.Presets) == 0 {
			fmt.Fprintln(out, "No presets saved.")
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSPAN\tSECTION\tUPDATED\tDESCRIPTION")
		for _, p := range store.Presets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%sx%s\t%s\t%s\n", p.ID, p.Name,
				model.FormatNumber(p.Config.Span),
				model.FormatNumber(p.Config.Width), model.FormatNumber(p.Config.Height),
				p.UpdatedAt, p.Description)
		}
		return w.Flush()
	},
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the given parameters under a name",
	Long: `Validate the beam parameters and store them as a preset. A preset with
the same name is replaced.

Examples:
  beamdetail preset save "Lintel 300" --beam-width 300 --beam-span 1800
  beamdetail preset save B1 --params beam.yaml --description "first floor"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := presetSaveParams.resolve(cmd)
		if err != nil {
			return err
		}
		store, err := project.LoadPresets(state.presetPath)
		if err != nil {
			return err
		}
		preset := model.NewBeamPreset(args[0], presetDescription, cfg)
		if existing := store.FindByName(args[0]); existing != nil && !cmd.Flags().Changed("description") {
			preset.Description = existing.Description
		}
		store.Add(preset)
		if err := project.SavePresets(state.presetPath, store); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %q (%s)\n", args[0], store.FindByName(args[0]).ID)
		return nil
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show <name|id>",
	Short: "Print one preset as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := project.LoadPresets(state.presetPath)
		if err != nil {
			return err
		}
		p := store.Find(args[0])
		if p == nil {
			return fmt.Errorf("preset %q not found", args[0])
		}
		data, err := yaml.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal preset: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete <name|id>",
	Short: "Remove a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := project.LoadPresets(state.presetPath)
		if err != nil {
			return err
		}
		p := store.Find(args[0])
		if p == nil {
			return fmt.Errorf("preset %q not found", args[0])
		}
		name := p.Name
		store.Remove(p.ID)
		if err := project.SavePresets(state.presetPath, store); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted preset %q\n", name)
		return nil
	},
}

var presetExportCmd = &cobra.Command{
	Use:   "export <file.yaml> [name|id...]",
	Short: "Write presets to a YAML file",
	Long:  "Write the named presets, or all of them when none are named, to a YAML file.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := project.LoadPresets(state.presetPath)
		if err != nil {
			return err
		}
		presets := store.Presets
		if len(args) > 1 {
			presets = nil
			for _, key := range args[1:] {
				p := store.Find(key)
				if p == nil {
					return fmt.Errorf("preset %q not found", key)
				}
				presets = append(presets, *p)
			}
		}
		if err := project.ExportPresetsYAML(args[0], presets); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d presets to %s\n", len(presets), args[0])
		return nil
	},
}

var presetImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Add presets from a YAML file",
	Long:  "Add presets from a YAML file. Presets with an existing name replace the saved one.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imported, err := project.ImportPresetsYAML(args[0])
		if err != nil {
			return err
		}
		store, err := project.LoadPresets(state.presetPath)
		if err != nil {
			return err
		}
		now := time.Now().UTC().Format(time.RFC3339)
		for _, p := range imported {
			if p.ID == "" {
				p = model.NewBeamPreset(p.Name, p.Description, p.Config)
			}
			p.UpdatedAt = now
			store.Add(p)
		}
		if err := project.SavePresets(state.presetPath, store); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d presets\n", len(imported))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetListCmd, presetSaveCmd, presetShowCmd, presetDeleteCmd, presetExportCmd, presetImportCmd)

	presetSaveParams = addParamFlags(presetSaveCmd)
	presetSaveCmd.Flags().StringVarP(&presetDescription, "description", "d", "", "preset description")
}
