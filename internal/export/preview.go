package export

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/piwi3910/BeamDetail/internal/engine"
	"github.com/piwi3910/BeamDetail/internal/geom"
	"github.com/piwi3910/BeamDetail/internal/model"
)

var (
	barColor     = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	stirrupColor = color.RGBA{R: 190, G: 0, B: 190, A: 255}
)

// ExportSectionPreview renders section A-A of a detailed beam to an image.
// The format follows the file extension (.png, .svg or .pdf).
func ExportSectionPreview(path string, res engine.Result) error {
	cfg := res.Config
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: section A-A", cfg.Name)
	p.X.Label.Text = "Width (mm)"
	p.Y.Label.Text = "Height (mm)"

	outline, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0},
		{X: cfg.Width, Y: 0},
		{X: cfg.Width, Y: cfg.Height},
		{X: 0, Y: cfg.Height},
		{X: 0, Y: 0},
	})
	if err != nil {
		return fmt.Errorf("failed to plot outline: %w", err)
	}
	outline.LineStyle.Width = vg.Points(2)
	outline.LineStyle.Color = color.Black
	p.Add(outline)

	stirrup, err := plotter.NewLine(toXYs(engine.ClosedStirrupPath(cfg, geom.Point{}).Flatten(8)))
	if err != nil {
		return fmt.Errorf("failed to plot stirrup: %w", err)
	}
	stirrup.LineStyle.Width = vg.Points(1)
	stirrup.LineStyle.Color = stirrupColor
	p.Add(stirrup)

	var marks plotter.XYLabels
	for _, s := range []struct {
		pack     engine.SectionPacking
		diameter float64
		fromTop  bool
		mark     string
	}{
		{res.TopSection, cfg.TopDiameter, true, recordMark(res.Records, model.BarTop)},
		{res.BottomSection, cfg.BottomDiameter, false, recordMark(res.Records, model.BarBottom)},
	} {
		for _, b := range s.pack.Bars {
			y := b.Depth
			if s.fromTop {
				y = cfg.Height - b.Depth
			}
			disc, err := plotter.NewPolygon(circleXYs(b.X, y, s.diameter/2))
			if err != nil {
				return fmt.Errorf("failed to plot bar: %w", err)
			}
			disc.Color = barColor
			disc.LineStyle.Color = barColor
			p.Add(disc)
		}
		if len(s.pack.Bars) > 0 {
			last := s.pack.Bars[len(s.pack.Bars)-1]
			y := last.Depth
			if s.fromTop {
				y = cfg.Height - last.Depth
			}
			marks.XYs = append(marks.XYs, plotter.XY{X: cfg.Width + 20, Y: y})
			marks.Labels = append(marks.Labels, s.mark)
		}
	}
	if len(marks.XYs) > 0 {
		l, err := plotter.NewLabels(marks)
		if err != nil {
			return fmt.Errorf("failed to plot labels: %w", err)
		}
		p.Add(l)
	}

	// Keep the section in proportion
	pad := 0.2 * math.Max(cfg.Width, cfg.Height)
	p.X.Min, p.X.Max = -pad, cfg.Width+pad
	p.Y.Min, p.Y.Max = -pad, cfg.Height+pad

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	width := 4 * vg.Inch
	height := vg.Length(float64(width) * (cfg.Height + 2*pad) / (cfg.Width + 2*pad))
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}

func toXYs(pts []geom.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i] = plotter.XY{X: p.X, Y: p.Y}
	}
	return out
}

func circleXYs(cx, cy, r float64) plotter.XYs {
	const n = 24
	out := make(plotter.XYs, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / n
		out[i] = plotter.XY{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return out
}

// recordMark returns the callout of the record of the given kind.
func recordMark(records []model.BarRecord, kind model.BarKind) string {
	for _, r := range records {
		if r.Kind == kind {
			return fmt.Sprintf("%d: %s", r.Number, r.Label())
		}
	}
	return ""
}
