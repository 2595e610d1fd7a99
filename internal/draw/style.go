// Package draw defines the primitives the detailing engine emits, the
// drawing style shared by everything that emits them, and the Sink
// interface that drawing backends implement.
package draw

// Standard AutoCAD colour indices used by the default style.
const (
	ColorRed     = 1
	ColorYellow  = 2
	ColorGreen   = 3
	ColorCyan    = 4
	ColorBlue    = 5
	ColorMagenta = 6
	ColorWhite   = 7
	ColorGray    = 8
)

// Line types understood by every backend.
const (
	LineContinuous = "CONTINUOUS"
	LineDashed     = "DASHED"
)

// Layer is a named drawing layer with its display colour and line type.
type Layer struct {
	Name     string `json:"name"`
	Color    int    `json:"color"`
	LineType string `json:"line_type"`
}

// Layers assigns a layer to each kind of geometry on the sheet.
type Layers struct {
	Outline    Layer `json:"outline"`
	Bars       Layer `json:"bars"`
	Stirrups   Layer `json:"stirrups"`
	Hatch      Layer `json:"hatch"`
	Dimensions Layer `json:"dimensions"`
	Hidden     Layer `json:"hidden"`
}

// All returns the layers in creation order.
func (l Layers) All() []Layer {
	return []Layer{l.Outline, l.Bars, l.Stirrups, l.Hatch, l.Dimensions, l.Hidden}
}

// Style is built once per drawing and passed to every component that emits
// primitives. Text heights are paper sizes in mm; multiply by Scale for
// model space.
type Style struct {
	Layers        Layers  `json:"layers"`
	Scale         float64 `json:"scale"`
	TextFont      string  `json:"text_font"`
	TextHeight    float64 `json:"text_height"`
	TitleHeight   float64 `json:"title_height"`
	ArrowSize     float64 `json:"arrow_size"`
	HatchPattern  string  `json:"hatch_pattern"`
	HatchSpacing  float64 `json:"hatch_spacing"`
	SupportDepth  float64 `json:"support_depth"`
	WarningHeight float64 `json:"warning_height"`
}

// DefaultStyle returns the 1:20 layer and text setup used for beam sheets.
func DefaultStyle() Style {
	return Style{
		Layers: Layers{
			Outline:    Layer{Name: "BD-Outline", Color: ColorGreen, LineType: LineContinuous},
			Bars:       Layer{Name: "BD-Bars", Color: ColorRed, LineType: LineContinuous},
			Stirrups:   Layer{Name: "BD-Stirrups", Color: ColorMagenta, LineType: LineContinuous},
			Hatch:      Layer{Name: "BD-Hatch", Color: ColorWhite, LineType: LineContinuous},
			Dimensions: Layer{Name: "BD-Dimensions", Color: ColorCyan, LineType: LineContinuous},
			Hidden:     Layer{Name: "BD-Hidden", Color: ColorGray, LineType: LineDashed},
		},
		Scale:         20,
		TextFont:      "Arial",
		TextHeight:    2.5,
		TitleHeight:   5,
		ArrowSize:     1.5,
		HatchPattern:  "ANSI32",
		HatchSpacing:  3,
		SupportDepth:  200,
		WarningHeight: 500,
	}
}

// ModelText converts a paper text height to model space.
func (s Style) ModelText(paper float64) float64 {
	return paper * s.Scale
}
