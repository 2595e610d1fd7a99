package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/BeamDetail/internal/geom"
)

// DXFSummary describes the content of a DXF drawing.
type DXFSummary struct {
	Entities map[string]int // count per entity type
	Layers   map[string]int // count per layer
	Bulges   int            // polyline vertices followed by an arc
	Texts    []string
	Min, Max geom.Point
}

// LayerNames returns the layers in alphabetical order.
func (s DXFSummary) LayerNames() []string {
	names := make([]string, 0, len(s.Layers))
	for n := range s.Layers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Total returns the number of entities.
func (s DXFSummary) Total() int {
	n := 0
	for _, c := range s.Entities {
		n += c
	}
	return n
}

// SummarizeDXF opens a DXF file and counts its entities per type and per
// layer.
func SummarizeDXF(path string) (DXFSummary, error) {
	drawing, err := dxf.Open(path)
	if err != nil {
		return DXFSummary{}, fmt.Errorf("failed to open DXF file: %w", err)
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		return DXFSummary{}, fmt.Errorf("DXF file contains no entities")
	}

	s := DXFSummary{Entities: map[string]int{}, Layers: map[string]int{}}
	ext := &extents{}
	for _, ent := range entities {
		if l := ent.Layer(); l != nil {
			s.Layers[l.Name()]++
		}

		switch e := ent.(type) {
		case *entity.LwPolyline:
			s.Entities["LWPOLYLINE"]++
			for i, v := range e.Vertices {
				ext.add(v[0], v[1])
				if i < len(e.Bulges) && e.Bulges[i] != 0 {
					s.Bulges++
				}
			}
		case *entity.Circle:
			s.Entities["CIRCLE"]++
			ext.add(e.Center[0]-e.Radius, e.Center[1]-e.Radius)
			ext.add(e.Center[0]+e.Radius, e.Center[1]+e.Radius)
		case *entity.Arc:
			s.Entities["ARC"]++
			ext.add(e.Circle.Center[0], e.Circle.Center[1])
		case *entity.Line:
			s.Entities["LINE"]++
			ext.add(e.Start[0], e.Start[1])
			ext.add(e.End[0], e.End[1])
		case *entity.Text:
			s.Entities["TEXT"]++
			s.Texts = append(s.Texts, e.Value)
		default:
			s.Entities["OTHER"]++
		}
	}
	s.Min, s.Max = ext.min, ext.max
	return s, nil
}

// extents grows a bounding box point by point.
type extents struct {
	min, max geom.Point
	set      bool
}

func (e *extents) add(x, y float64) {
	if !e.set {
		e.min, e.max, e.set = geom.Point{X: x, Y: y}, geom.Point{X: x, Y: y}, true
		return
	}
	e.min.X = math.Min(e.min.X, x)
	e.min.Y = math.Min(e.min.Y, y)
	e.max.X = math.Max(e.max.X, x)
	e.max.Y = math.Max(e.max.Y, y)
}
