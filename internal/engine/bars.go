package engine

import (
	"math"

	"github.com/piwi3910/BeamDetail/internal/geom"
	"github.com/piwi3910/BeamDetail/internal/model"
)

const (
	// StirrupAnchorage is the straight tail after each stirrup hook.
	StirrupAnchorage = 80.0
	// OpenStirrupAngle is the bearing of the swung-open leg in the stirrup
	// detail, degrees clockwise from vertical.
	OpenStirrupAngle = 60.0
)

// pathBuilder collects waypoints and marks the ones followed by a bend.
type pathBuilder struct {
	pts   []geom.Point
	bends map[int]bool
}

func newPath() *pathBuilder {
	return &pathBuilder{bends: map[int]bool{}}
}

func (b *pathBuilder) to(x, y float64) *pathBuilder {
	b.pts = append(b.pts, geom.Point{X: x, Y: y})
	return b
}

// bend adds a waypoint whose outgoing segment is an arc.
func (b *pathBuilder) bend(x, y float64) *pathBuilder {
	b.bends[len(b.pts)] = true
	return b.to(x, y)
}

// path resolves the bend markers into bulges. Each arc is tangent to the
// straight segment before it and the one after it.
func (b *pathBuilder) path() geom.Path {
	p := make(geom.Path, len(b.pts))
	for i, pt := range b.pts {
		p[i] = geom.Vertex{Point: pt}
		if !b.bends[i] {
			continue
		}
		if i == 0 || i+2 >= len(b.pts) {
			p[i].Bulge = -geom.BulgeForAngle(geom.StandardBendAngle)
			continue
		}
		in := pt.Sub(b.pts[i-1])
		out := b.pts[i+2].Sub(b.pts[i+1])
		p[i].Bulge = geom.TurnBulge(in, out)
	}
	return p
}

// BarLength returns the developed length of a bar path rounded to whole
// millimetres.
func BarLength(p geom.Path, diameter float64) float64 {
	return math.Round(p.Length(geom.BendRadius(diameter)))
}

// TopBarPath returns the top main bar in elevation, with hooks turned down
// at both ends to the bottom cover. origin is the lower left corner of the
// beam including supports.
func TopBarPath(cfg model.BeamConfig, origin geom.Point) geom.Path {
	d := cfg.TopDiameter
	r := geom.BendRadius(d)
	xl := origin.X + cfg.CoverViewLeft + d/2
	xr := origin.X + cfg.TotalLength() - cfg.CoverViewRight - d/2
	yt := origin.Y + cfg.Height - cfg.CoverTop - cfg.StirrupDiameter - d/2
	yb := origin.Y + cfg.CoverBottom

	return newPath().
		to(xl, yb).
		bend(xl, yt-r).
		to(xl+r, yt).
		bend(xr-r, yt).
		to(xr, yt-r).
		to(xr, yb).
		path()
}

// BottomBarPath returns the straight bottom main bar in elevation.
func BottomBarPath(cfg model.BeamConfig, origin geom.Point) geom.Path {
	d := cfg.BottomDiameter
	y := origin.Y + cfg.CoverBottom + cfg.StirrupDiameter + d/2
	return newPath().
		to(origin.X+cfg.CoverViewLeft, y).
		to(origin.X+cfg.TotalLength()-cfg.CoverViewRight, y).
		path()
}

// ClosedStirrupPath returns the closed stirrup as seen in the cross-section,
// starting and ending with an anchorage tail at the top left corner.
// origin is the lower left corner of the section.
func ClosedStirrupPath(cfg model.BeamConfig, origin geom.Point) geom.Path {
	d := cfg.StirrupDiameter
	r := geom.BendRadius(d)
	a := StirrupAnchorage
	xl := origin.X + cfg.CoverLeft + d/2
	xr := origin.X + cfg.Width - cfg.CoverRight - d/2
	yt := origin.Y + cfg.Height - cfg.CoverTop - d/2
	yb := origin.Y + cfg.CoverBottom + d/2

	return newPath().
		to(xl, yt-r-a).
		bend(xl, yt-r).
		to(xl+r, yt).
		bend(xr-r, yt).
		to(xr, yt-r).
		bend(xr, yb+r).
		to(xr-r, yb).
		bend(xl+r, yb).
		to(xl, yb+r).
		bend(xl, yt-r).
		to(xl+r, yt).
		to(xl+r+a, yt).
		path()
}

// OpenStirrupPath returns the stirrup detail drawn with its closing leg
// swung open, showing the hook and its anchorage. origin is the lower left
// corner of the detail.
func OpenStirrupPath(cfg model.BeamConfig, origin geom.Point) geom.Path {
	d := cfg.StirrupDiameter
	r := geom.BendRadius(d)
	a := StirrupAnchorage
	xl := origin.X + cfg.CoverLeft + d/2
	xr := origin.X + cfg.Width - cfg.CoverRight - d/2
	yt := origin.Y + cfg.Height - cfg.CoverTop - d/2
	yb := origin.Y + cfg.CoverBottom + d/2

	leg := geom.PointPosition(xl, yt, xr-xl, OpenStirrupAngle)
	hook := geom.PointPosition(leg.X, leg.Y, r+a, 90+OpenStirrupAngle)

	return newPath().
		to(xr-r-a, yt).
		to(xr, yt).
		to(xr, yb).
		to(xl, yb).
		to(xl, yt).
		to(leg.X, leg.Y).
		to(hook.X, hook.Y).
		path()
}
