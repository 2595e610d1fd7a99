package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/BeamDetail/internal/draw"
	"github.com/piwi3910/BeamDetail/internal/geom"
	"github.com/piwi3910/BeamDetail/internal/model"
)

// Region names a stretch of the span in the stirrup dimension chain.
type Region int

const (
	RegionMargin Region = iota
	RegionFirstRowLeft
	RegionSecondary
	RegionFirstRowRight
)

func (r Region) String() string {
	switch r {
	case RegionFirstRowLeft:
		return "first-row-left"
	case RegionSecondary:
		return "secondary"
	case RegionFirstRowRight:
		return "first-row-right"
	default:
		return "margin"
	}
}

// SpanDimension is one labelled region of the stirrup dimension chain.
// From and To are measured from the left support face. An empty Text means
// the backend prints the measured length.
type SpanDimension struct {
	Region Region
	From   float64
	To     float64
	Count  int
	Pitch  float64
	Text   string
}

// Length returns the dimensioned distance.
func (d SpanDimension) Length() float64 {
	return d.To - d.From
}

// SpacingText formats a "count × spacing = <>" override.
func SpacingText(count int, spacing float64) string {
	return fmt.Sprintf("%d × %s = %s", count, model.FormatNumber(spacing), draw.MeasuredText)
}

// StirrupDimensions splits the span into the regions of the stirrup
// dimension chain: an end margin wherever a residual gap exists, the active
// first-row groups, and the secondary group between them. The regions are
// contiguous and cover the span exactly once. A gap between the rows that
// holds no secondary stirrups is dimensioned with its measured length.
func StirrupDimensions(cfg model.BeamConfig, l model.StirrupLayout) []SpanDimension {
	edge := l.Residual / 2
	start, end := SecondaryZone(l, cfg.Span)

	var dims []SpanDimension
	if edge > eps {
		dims = append(dims, SpanDimension{Region: RegionMargin, From: 0, To: edge})
	}

	switch l.Active {
	case model.RowsLeft:
		dims = append(dims, leftRow(cfg, edge, l.LastLeft))
		dims = appendSecondary(dims, l, start, end)
	case model.RowsRight:
		dims = appendSecondary(dims, l, start, end)
		dims = append(dims, rightRow(cfg, l.LastRight, cfg.Span-edge))
	case model.RowsBoth:
		dims = append(dims, leftRow(cfg, edge, l.LastLeft))
		dims = appendSecondary(dims, l, start, end)
		dims = append(dims, rightRow(cfg, l.LastRight, cfg.Span-edge))
	default:
		dims = appendSecondary(dims, l, start, end)
	}

	if edge > eps {
		dims = append(dims, SpanDimension{Region: RegionMargin, From: cfg.Span - edge, To: cfg.Span})
	}
	return dims
}

// rowSpacings counts the whole spacings between from and to.
func rowSpacings(from, to, pitch float64) int {
	if pitch <= 0 {
		return 0
	}
	return int(math.Round((to - from) / pitch))
}

func leftRow(cfg model.BeamConfig, from, to float64) SpanDimension {
	n := rowSpacings(from, to, cfg.FirstRowSpacingLeft)
	return SpanDimension{
		Region: RegionFirstRowLeft,
		From:   from,
		To:     to,
		Count:  n,
		Pitch:  cfg.FirstRowSpacingLeft,
		Text:   SpacingText(n, cfg.FirstRowSpacingLeft),
	}
}

func rightRow(cfg model.BeamConfig, from, to float64) SpanDimension {
	n := rowSpacings(from, to, cfg.FirstRowSpacingRight)
	return SpanDimension{
		Region: RegionFirstRowRight,
		From:   from,
		To:     to,
		Count:  n,
		Pitch:  cfg.FirstRowSpacingRight,
		Text:   SpacingText(n, cfg.FirstRowSpacingRight),
	}
}

func appendSecondary(dims []SpanDimension, l model.StirrupLayout, start, end float64) []SpanDimension {
	if end-start <= eps {
		return dims
	}
	if l.SecondaryCount == 0 {
		return append(dims, SpanDimension{Region: RegionSecondary, From: start, To: end})
	}
	return append(dims, SpanDimension{
		Region: RegionSecondary,
		From:   start,
		To:     end,
		Count:  l.SecondaryCount,
		Pitch:  l.SecondarySpacing,
		Text:   SpacingText(l.SecondaryCount, l.SecondarySpacing),
	})
}

// DimensionPrimitives converts span regions into linear dimensions along a
// line at baseY, with x measured from originX.
func DimensionPrimitives(dims []SpanDimension, layer string, originX, baseY float64) []draw.Dimension {
	out := make([]draw.Dimension, 0, len(dims))
	for _, d := range dims {
		out = append(out, draw.Dimension{
			Layer: layer,
			Kind:  draw.DimStandard,
			Base:  geom.Point{X: originX, Y: baseY},
			P1:    geom.Point{X: originX + d.From, Y: baseY},
			P2:    geom.Point{X: originX + d.To, Y: baseY},
			Text:  d.Text,
		})
	}
	return out
}
