package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BeamDetail/internal/draw"
	"github.com/piwi3910/BeamDetail/internal/engine"
	"github.com/piwi3910/BeamDetail/internal/export"
	"github.com/piwi3910/BeamDetail/internal/model"
	"github.com/piwi3910/BeamDetail/internal/project"
)

// Output formats accepted by --formats.
var outputFormats = []string{"dxf", "pdf", "xlsx", "tags", "png"}

var (
	detailParams  *paramFlags
	detailFormats []string
	detailOut     string
	detailChart   bool
)

var detailCmd = &cobra.Command{
	Use:   "detail",
	Short: "Detail a beam and write the drawing and schedules",
	Long: `Validate the beam parameters, solve the stirrup layout, pack the section
and write the requested outputs into the output directory:

  dxf   <name>.dxf          detail drawing
  pdf   <name>.pdf          A3 sheet with the drawing and the schedule
  xlsx  <name>.xlsx         bending schedule and cutting plan
  tags  <name>_tags.pdf     QR-coded bar tags
  png   <name>_section.png  section A-A preview

Examples:
  beamdetail detail --name B1 --beam-span 5200 --quantity-main-bottom 4
  beamdetail detail --params beam.yaml --formats dxf,pdf --out drawings/
  beamdetail detail --preset "Lintel 300" --name L7 --chart`,
	RunE: runDetail,
}

func init() {
	rootCmd.AddCommand(detailCmd)

	detailParams = addParamFlags(detailCmd)
	detailCmd.Flags().StringSliceVar(&detailFormats, "formats", nil, "outputs to write: "+strings.Join(outputFormats, ", ")+" (default from config)")
	detailCmd.Flags().StringVarP(&detailOut, "out", "o", "", "output directory (default from config)")
	detailCmd.Flags().BoolVar(&detailChart, "chart", false, "print a chart of the stirrup spacing")
}

func runDetail(cmd *cobra.Command, args []string) error {
	cfg, err := detailParams.resolve(cmd)
	if err != nil {
		return err
	}

	formats := detailFormats
	if len(formats) == 0 {
		formats = state.app.Formats
	}
	if err := checkFormats(formats); err != nil {
		return err
	}

	rec, res, err := runDetailer(cfg)
	if err != nil {
		return err
	}

	dir := detailOut
	if dir == "" {
		dir = state.app.OutputDir
	}
	written, err := writeOutputs(dir, formats, rec, res)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d stirrups at %s mm, %d bar marks, %.1f kg\n",
		cfg.Name, res.Layout.Count(), model.FormatNumber(res.Layout.SecondarySpacing),
		len(res.Records), res.Schedule.TotalMass)
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "  ⚠ %s\n", w)
	}
	for _, path := range written {
		fmt.Fprintf(out, "  wrote %s\n", path)
	}
	if detailChart {
		fmt.Fprintln(out)
		fmt.Fprintln(out, stirrupChart(res.Layout))
	}

	if detailParams.preset != "" {
		state.app.AddRecentPreset(detailParams.preset, 10)
		if err := project.SaveAppConfig(state.configPath, state.app); err != nil {
			state.logger.Warn().Err(err).Msg("recent presets not saved")
		}
	}
	return nil
}

func checkFormats(formats []string) error {
	if len(formats) == 0 {
		return fmt.Errorf("no output formats selected")
	}
	for _, f := range formats {
		if !isOutputFormat(f) {
			return fmt.Errorf("unknown output format %q (use %s)", f, strings.Join(outputFormats, ", "))
		}
	}
	return nil
}

func isOutputFormat(f string) bool {
	for _, known := range outputFormats {
		if strings.EqualFold(f, known) {
			return true
		}
	}
	return false
}

// writeOutputs writes every format into dir and returns the written paths.
func writeOutputs(dir string, formats []string, rec *draw.Recorder, res engine.Result) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	style := draw.DefaultStyle()
	base := filepath.Join(dir, res.Config.Name)
	var written []string
	for _, f := range formats {
		var path string
		var err error
		switch strings.ToLower(f) {
		case "dxf":
			path = base + ".dxf"
			err = export.ExportDXF(path, rec, style)
		case "pdf":
			path = base + ".pdf"
			err = export.ExportPDF(path, rec, res, style)
		case "xlsx":
			path = base + ".xlsx"
			plan := engine.PlanCuts(res.Records, res.Config.Elements, state.app.DefaultStockLength, state.app.DefaultCutAllow)
			err = export.ExportScheduleXLSX(path, res, &plan)
		case "tags":
			path = base + "_tags.pdf"
			err = export.ExportBarTags(path, res)
		case "png":
			path = base + "_section.png"
			err = export.ExportSectionPreview(path, res)
		default:
			return written, fmt.Errorf("unknown output format %q", f)
		}
		if err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		state.logger.Debug().Str("request_id", res.RequestID).Str("path", path).Msg("output written")
		written = append(written, path)
	}
	return written, nil
}

// stirrupSpacings returns the gaps between consecutive stirrups.
func stirrupSpacings(positions []float64) []float64 {
	if len(positions) < 2 {
		return nil
	}
	out := make([]float64, len(positions)-1)
	for i := 1; i < len(positions); i++ {
		out[i-1] = positions[i] - positions[i-1]
	}
	return out
}

func stirrupChart(l model.StirrupLayout) string {
	spacings := stirrupSpacings(l.Positions)
	if len(spacings) == 0 {
		return "(fewer than two stirrups)"
	}
	return asciigraph.Plot(spacings,
		asciigraph.Height(8),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("stirrup spacing [mm] along the span, %d stirrups", l.Count())),
	)
}
