package engine

import (
	"github.com/piwi3910/BeamDetail/internal/draw"
	"github.com/piwi3910/BeamDetail/internal/geom"
)

// Names of the reusable symbols defined on every sink.
const (
	SymbolMarker        = "marker"
	SymbolSectionMarker = "marker_section"
	SymbolDescription   = "reinforcement_description"
)

func pt(x, y float64) geom.Point { return geom.Point{X: x, Y: y} }

// markerSymbol is a numbered circle used at the end of bar leaders.
func markerSymbol(st draw.Style) draw.Symbol {
	layer := st.Layers.Dimensions.Name
	return draw.Symbol{
		Name:    SymbolMarker,
		Circles: []draw.Circle{{Layer: layer, Center: pt(4, 0), Radius: 4}},
		Texts: []draw.SymbolText{
			{Text: draw.Text{Layer: layer, Position: pt(4, 0), Height: st.TextHeight, Align: draw.AlignMiddleCenter}, Attr: "NUMBER"},
		},
	}
}

// sectionMarkerSymbol is the cut line tick with the section letter.
func sectionMarkerSymbol(st draw.Style) draw.Symbol {
	layer := st.Layers.Outline.Name
	return draw.Symbol{
		Name:  SymbolSectionMarker,
		Lines: []draw.Polyline{draw.Line(layer, pt(0, -4), pt(0, 4))},
		Texts: []draw.SymbolText{
			{Text: draw.Text{Layer: layer, Position: pt(1, 0), Height: st.TitleHeight, Align: draw.AlignMiddleLeft}, Attr: "SECTION"},
		},
	}
}

// descriptionSymbol is the bar callout: mark, then "qty ⌀d L=length".
func descriptionSymbol(st draw.Style) draw.Symbol {
	layer := st.Layers.Dimensions.Name
	h := st.TextHeight
	text := func(x float64, align draw.Align, value, attr string) draw.SymbolText {
		return draw.SymbolText{Text: draw.Text{Layer: layer, Position: pt(x, 5), Height: h, Value: value, Align: align}, Attr: attr}
	}
	return draw.Symbol{
		Name:    SymbolDescription,
		Circles: []draw.Circle{{Layer: layer, Center: pt(-14, 5), Radius: 4}},
		Texts: []draw.SymbolText{
			text(-14, draw.AlignMiddleCenter, "", "NUMBER"),
			text(-4, draw.AlignMiddleRight, "", "QUANTITY"),
			text(-2.5, draw.AlignMiddleCenter, "⌀", ""),
			text(0, draw.AlignMiddleLeft, "", "DIAMETER"),
			text(5, draw.AlignMiddleLeft, "L=", ""),
			text(9, draw.AlignMiddleLeft, "", "LENGTH"),
		},
	}
}

// defineSymbols registers the symbols a sink does not know yet.
func defineSymbols(s draw.Sink, st draw.Style) {
	for _, sym := range []draw.Symbol{markerSymbol(st), sectionMarkerSymbol(st), descriptionSymbol(st)} {
		if !s.HasSymbol(sym.Name) {
			s.DefineSymbol(sym)
		}
	}
}
