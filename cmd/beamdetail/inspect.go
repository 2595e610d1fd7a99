package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamDetail/internal/importer"
	"github.com/piwi3910/BeamDetail/internal/model"
)

var inspectTexts bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.dxf>",
	Short: "Summarize the content of a DXF drawing",
	Long: `Read a DXF drawing and count its entities per type and per layer.
Useful to check a generated detail before it is sent out.

Examples:
  beamdetail inspect out/B1.dxf
  beamdetail inspect out/B1.dxf --texts`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := importer.SummarizeDXF(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d entities\n", args[0], s.Total())
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, kind := range []string{"LWPOLYLINE", "CIRCLE", "ARC", "LINE", "TEXT", "OTHER"} {
			if n := s.Entities[kind]; n > 0 {
				fmt.Fprintf(w, "  %s:\t%d\n", kind, n)
			}
		}
		fmt.Fprintf(w, "  Bent vertices:\t%d\n", s.Bulges)
		fmt.Fprintf(w, "  Extents:\t%s,%s .. %s,%s\n",
			model.FormatNumber(s.Min.X), model.FormatNumber(s.Min.Y),
			model.FormatNumber(s.Max.X), model.FormatNumber(s.Max.Y))
		w.Flush()
		fmt.Fprintln(out)

		fmt.Fprintln(out, "LAYERS:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, name := range s.LayerNames() {
			fmt.Fprintf(w, "  %s:\t%d\n", name, s.Layers[name])
		}
		w.Flush()

		if inspectTexts {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "TEXTS:")
			for _, t := range s.Texts {
				fmt.Fprintf(out, "  %s\n", t)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectTexts, "texts", false, "list every text entity")
}
