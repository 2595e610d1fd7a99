package engine

import (
	"math"
	"strconv"

	"github.com/piwi3910/BeamDetail/internal/draw"
	"github.com/piwi3910/BeamDetail/internal/geom"
	"github.com/piwi3910/BeamDetail/internal/model"
	"github.com/piwi3910/BeamDetail/internal/schedule"
)

// emit draws the computed sheet. Nothing here can fail.
func (s *sheet) emit(sink draw.Sink) {
	defineSymbols(sink, s.st)
	s.emitElevation(sink)
	s.emitBars(sink)
	s.emitStirrups(sink)
	s.emitSection(sink)
	s.emitStirrupDetail(sink)
	for _, it := range schedule.Layout(s.table, s.labels, s.st, s.schedulePoint()) {
		it.Emit(sink)
	}
	s.emitCallouts(sink)
}

func (s *sheet) schedulePoint() geom.Point {
	return pt(s.origin.X+s.cfg.TotalLength()+scheduleGapX, s.origin.Y-scheduleDropY)
}

func (s *sheet) dim(kind draw.DimKind, base, p1, p2 geom.Point, angle float64) draw.Dimension {
	return draw.Dimension{Layer: s.st.Layers.Dimensions.Name, Kind: kind, Base: base, P1: p1, P2: p2, Angle: angle}
}

// emitElevation draws the beam outline, the supports with their hatch and
// ground line, the section cut markers and the overall dimensions.
func (s *sheet) emitElevation(sink draw.Sink) {
	cfg, st := s.cfg, s.st
	x, y := s.origin.X, s.origin.Y
	h := cfg.Height
	xl := x + cfg.SupportLeft
	xr := xl + cfg.Span
	xe := xr + cfg.SupportRight
	outline := st.Layers.Outline.Name

	sink.Polyline(draw.Polyline{
		Layer: outline,
		Path: geom.Path{
			{Point: pt(x, y)}, {Point: pt(xl, y)}, {Point: pt(xr, y)},
			{Point: pt(xe, y)}, {Point: pt(xe, y+h)}, {Point: pt(x, y+h)},
		},
		Closed: true,
	})

	for _, sup := range [][2]float64{{x, xl}, {xr, xe}} {
		a, b := sup[0], sup[1]
		depth := y - st.SupportDepth
		sink.Hatch(draw.Hatch{
			Layer:    st.Layers.Hatch.Name,
			Boundary: []geom.Point{pt(a, y), pt(a, depth), pt(b, depth), pt(b, y)},
			Pattern:  st.HatchPattern,
			Spacing:  st.HatchSpacing * st.Scale,
		})
		sink.Polyline(draw.Line(outline, pt(a, y), pt(a, depth)))
		sink.Polyline(draw.Line(outline, pt(b, y), pt(b, depth)))
		sink.Polyline(draw.Line(st.Layers.Hidden.Name, pt(a-hiddenOverhang, depth), pt(b+hiddenOverhang, depth)))
	}

	mid := xl + cfg.Span/2
	for _, my := range []float64{y + h + markerAbove, y - markerBelow} {
		sink.InsertSymbol(SymbolSectionMarker, pt(mid, my), st.Scale, map[string]string{"SECTION": "A"})
	}

	base := pt(x, y-mainDimOffset)
	for _, seg := range [][2]float64{{x, xl}, {xl, xr}, {xr, xe}} {
		sink.Dimension(s.dim(draw.DimStandard, base, pt(seg[0], base.Y), pt(seg[1], base.Y), 0))
	}
	sink.Dimension(s.dim(draw.DimStandard, pt(x-heightDimOffset, y), pt(x, y), pt(x, y+h), 90))
}

// emitBars draws the main bars inside the beam and their dimensioned
// copies below it.
func (s *sheet) emitBars(sink draw.Sink) {
	bars := s.st.Layers.Bars.Name
	for _, p := range []geom.Path{s.topPath, s.bottomPath, s.topCopy, s.bottomCopy} {
		sink.Polyline(draw.Polyline{Layer: bars, Path: p})
	}

	t := s.topCopy
	half := s.cfg.TopDiameter / 2
	sink.Dimension(s.dim(draw.DimBar, pt(t[0].X-25, t[0].Y), t[0].Point, pt(t[2].X, t[2].Y+half), 90))
	sink.Dimension(s.dim(draw.DimBar, pt(t[3].X, t[3].Y-leaderOffset), pt(t[1].X-half, t[1].Y), pt(t[4].X+half, t[4].Y), 0))
	sink.Dimension(s.dim(draw.DimBar, pt(t[5].X+leaderOffset, t[5].Y), pt(t[3].X, t[3].Y+half), t[5].Point, 90))

	b := s.bottomCopy
	sink.Dimension(s.dim(draw.DimBar, pt(b[0].X, b[0].Y-leaderOffset), b[0].Point, b[1].Point, 0))
}

// emitStirrups draws one tick per stirrup and the stirrup dimension chain.
func (s *sheet) emitStirrups(sink draw.Sink) {
	cfg := s.cfg
	x0 := s.origin.X + cfg.SupportLeft
	y0 := s.origin.Y + cfg.CoverBottom
	y1 := s.origin.Y + cfg.Height - cfg.CoverTop
	for _, p := range s.layout.Positions {
		sink.Polyline(draw.Line(s.st.Layers.Stirrups.Name, pt(x0+p, y0), pt(x0+p, y1)))
	}
	for _, d := range DimensionPrimitives(s.dims, s.st.Layers.Dimensions.Name, x0, s.origin.Y-stirrupDimOffset) {
		sink.Dimension(d)
	}
}

// emitSection draws section A-A: outline, closed stirrup, packed bars with
// their leaders and markers, and the section dimensions.
func (s *sheet) emitSection(sink draw.Sink) {
	cfg, st := s.cfg, s.st
	o := s.sectionOrigin
	w, h := cfg.Width, cfg.Height
	outline := st.Layers.Outline.Name

	sink.Text(draw.Text{
		Layer:    outline,
		Position: pt(o.X+w/2, o.Y+h+sectionTitleGap),
		Height:   st.ModelText(st.TitleHeight),
		Value:    "A-A",
		Align:    draw.AlignBottomCenter,
	})
	sink.Polyline(draw.Rect(outline, o.X, o.Y, w, h))
	sink.Polyline(draw.Polyline{Layer: st.Layers.Stirrups.Name, Path: s.closedStirrup})

	top := s.sectionPoints(s.topPack, true)
	bottom := s.sectionPoints(s.bottomPack, false)
	s.emitBarSections(sink, bottom, cfg.BottomDiameter)
	s.emitBarSections(sink, top, cfg.TopDiameter)

	markerX := o.X + w + leaderOffset
	topY := o.Y + h + leaderOffset
	bottomY := o.Y - leaderOffset
	slope := math.Tan(math.Pi / 6)
	s.emitLeaders(sink, top, topY, func(p geom.Point) float64 { return p.X + (topY-p.Y)*slope }, markerX)
	s.emitLeaders(sink, bottom, bottomY, func(p geom.Point) float64 { return p.X + (p.Y-bottomY)*slope }, markerX)
	sink.Polyline(draw.Line(outline, pt(o.X+w-cfg.CoverRight, o.Y+h/2), pt(markerX, o.Y+h/2)))

	for _, m := range []struct {
		y   float64
		rec model.BarRecord
	}{{topY, s.top}, {bottomY, s.bottom}, {o.Y + h/2, s.stirrup}} {
		sink.InsertSymbol(SymbolMarker, pt(markerX, m.y), st.Scale, map[string]string{"NUMBER": strconv.Itoa(m.rec.Number)})
	}

	if s.overflow {
		sink.Text(draw.Text{
			Layer:    outline,
			Position: pt(o.X+w/2, o.Y+2*h),
			Height:   st.WarningHeight,
			Value:    s.labels.SectionOverflow,
			Align:    draw.AlignMiddleCenter,
		})
	}

	sink.Dimension(s.dim(draw.DimStandard, pt(o.X, o.Y-sectionDimOffset), pt(o.X, o.Y), pt(o.X+w, o.Y), 0))
	sink.Dimension(s.dim(draw.DimStandard, pt(o.X-sectionHDimOffset, o.Y), pt(o.X, o.Y), pt(o.X, o.Y+h), 90))
}

// sectionPoints converts packed bars to sheet coordinates. Top bars are
// measured down from the top face.
func (s *sheet) sectionPoints(p SectionPacking, fromTop bool) []geom.Point {
	o := s.sectionOrigin
	out := make([]geom.Point, 0, len(p.Bars))
	for _, b := range p.Bars {
		y := o.Y + b.Depth
		if fromTop {
			y = o.Y + s.cfg.Height - b.Depth
		}
		out = append(out, pt(o.X+b.X, y))
	}
	return out
}

func (s *sheet) emitBarSections(sink draw.Sink, pts []geom.Point, diameter float64) {
	for _, p := range pts {
		sink.Circle(draw.Circle{Layer: s.st.Layers.Bars.Name, Center: p, Radius: diameter / 2})
		sink.Fill(draw.Fill{Layer: s.st.Layers.Hatch.Name, Center: p, Radius: diameter / 2})
	}
}

// emitLeaders draws a slanted leader from every bar to the level y and one
// horizontal line from the first leader to the marker.
func (s *sheet) emitLeaders(sink draw.Sink, pts []geom.Point, y float64, endX func(geom.Point) float64, markerX float64) {
	if len(pts) == 0 {
		return
	}
	layer := s.st.Layers.Outline.Name
	for _, p := range pts {
		sink.Polyline(draw.Line(layer, p, pt(endX(p), y)))
	}
	sink.Polyline(draw.Line(layer, pt(endX(pts[0]), y), pt(markerX, y)))
}

// emitStirrupDetail draws the opened stirrup with its width and height.
func (s *sheet) emitStirrupDetail(sink draw.Sink) {
	cfg := s.cfg
	o := s.detailOrigin
	sink.Polyline(draw.Polyline{Layer: s.st.Layers.Stirrups.Name, Path: s.openStirrup})

	low := pt(o.X+cfg.CoverLeft, o.Y+cfg.CoverBottom)
	sink.Dimension(s.dim(draw.DimBar, pt(o.X, o.Y-sectionHDimOffset), low, pt(o.X+cfg.Width-cfg.CoverRight, low.Y), 0))
	sink.Dimension(s.dim(draw.DimBar, pt(low.X-25, o.Y), low, pt(low.X, o.Y+cfg.Height-cfg.CoverTop), 90))
}

// emitCallouts places one description per bar record.
func (s *sheet) emitCallouts(sink draw.Sink) {
	for _, r := range s.records {
		sink.InsertSymbol(SymbolDescription, r.Anchor, s.st.Scale, map[string]string{
			"NUMBER":   strconv.Itoa(r.Number),
			"QUANTITY": strconv.Itoa(r.Quantity),
			"DIAMETER": model.FormatNumber(r.Diameter),
			"LENGTH":   model.FormatNumber(r.Length),
		})
	}
}
