package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamDetail/internal/engine"
	"github.com/piwi3910/BeamDetail/internal/model"
)

var (
	scheduleParams *paramFlags
	scheduleJSON   bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the bending schedule of a beam",
	Long: `Detail the beam without writing files and print its bending schedule.

Examples:
  beamdetail schedule --params beam.yaml
  beamdetail schedule --preset B1 --number-of-elements 6 --json`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleParams = addParamFlags(scheduleCmd)
	scheduleCmd.Flags().BoolVar(&scheduleJSON, "json", false, "print the schedule as JSON")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := scheduleParams.resolve(cmd)
	if err != nil {
		return err
	}
	_, res, err := runDetailer(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scheduleJSON {
		data, err := json.MarshalIndent(res.Schedule, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal schedule: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	printSchedule(cmd, res)
	return nil
}

func printSchedule(cmd *cobra.Command, res engine.Result) {
	t, lb := res.Schedule, res.Labels
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s: %s (%s %d %s)\n", strings.ToUpper(lb.BendingSchedule), t.Element, lb.Make, t.Elements, lb.Pcs)
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{lb.Mark, lb.Dia, lb.LengthBar + " [mm]", lb.NumberInElement, lb.TotalNumber}
	for _, c := range t.Columns {
		header = append(header, fmt.Sprintf("%s ⌀%s [m]", c.Grade, model.FormatNumber(c.Diameter)))
	}
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")

	for _, r := range t.Rows {
		cells := []string{
			fmt.Sprint(r.Record.Number),
			model.FormatNumber(r.Record.Diameter),
			model.FormatNumber(r.Record.Length),
			fmt.Sprint(r.Record.Quantity),
			fmt.Sprint(r.TotalQuantity),
		}
		for i := range t.Columns {
			if i == r.Column {
				cells = append(cells, fmt.Sprintf("%.2f", r.TotalLength))
			} else {
				cells = append(cells, "-")
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	}

	footer := func(label string, values []float64, format string) {
		cells := []string{label, "", "", "", ""}
		for _, v := range values {
			cells = append(cells, fmt.Sprintf(format, v))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	}
	footer(lb.LengthM, t.TotalLength, "%.2f")
	footer(lb.Mass1m, t.MassPerMeter, "%.3f")
	footer(lb.MassAccordingDia, t.Mass, "%.1f")
	w.Flush()

	fmt.Fprintf(out, "\n%s: %.1f kg\n", lb.MassTotal, t.TotalMass)
	for _, warning := range res.Warnings {
		fmt.Fprintf(out, "⚠ %s\n", warning)
	}
}
