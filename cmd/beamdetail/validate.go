package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamDetail/internal/engine"
	"github.com/piwi3910/BeamDetail/internal/model"
	"github.com/piwi3910/BeamDetail/internal/validate"
)

var validateParams *paramFlags

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check beam parameters and show the stirrup layout",
	Long: `Check every beam parameter against its allowed range and solve the
stirrup layout. Nothing is written. The command fails on the first invalid
parameter.

Examples:
  beamdetail validate --params beam.csv
  beamdetail validate --beam-span 6000 --first-row-stirrup-range-left 0`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateParams = addParamFlags(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := validateParams.resolve(cmd)
	if err != nil {
		return err
	}
	layout, err := engine.NewStirrupSolver(detailerOptions().MinStirrupSpacing).Solve(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: parameters are valid\n", cfg.Name)
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	params := validate.Params(cfg)
	for _, r := range validate.Rules() {
		fmt.Fprintf(w, "  %s:\t%v\n", r.Key, formatParam(params[r.Key]))
	}
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "STIRRUPS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  First rows:\t%s\n", layout.Active)
	fmt.Fprintf(w, "  Count:\t%d\n", layout.Count())
	fmt.Fprintf(w, "  Secondary spacing:\t%s mm\n", model.FormatNumber(layout.SecondarySpacing))
	fmt.Fprintf(w, "  Edge offset:\t%s mm\n", model.FormatNumber(layout.EdgeOffset()))
	w.Flush()
	return nil
}

func formatParam(v any) string {
	if f, ok := v.(float64); ok {
		return model.FormatNumber(f)
	}
	return fmt.Sprint(v)
}
