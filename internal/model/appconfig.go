package model

// Covers groups the six concrete cover distances of a beam.
type Covers struct {
	Top       float64 `json:"top"`
	Bottom    float64 `json:"bottom"`
	Left      float64 `json:"left"`
	Right     float64 `json:"right"`
	ViewLeft  float64 `json:"view_left"`
	ViewRight float64 `json:"view_right"`
}

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to beams that leave the field empty
	DefaultLanguage      string  `json:"default_language"`
	DefaultCovers        Covers  `json:"default_covers"`
	DefaultAggregateSize float64 `json:"default_aggregate_size"` // mm
	DefaultSteelDensity  float64 `json:"default_steel_density"`  // kg/m³

	// Purchasing
	DefaultStockLength float64 `json:"default_stock_length"` // mm
	DefaultCutAllow    float64 `json:"default_cut_allowance"`
	DefaultWastePct    float64 `json:"default_waste_percent"`
	DefaultPricePerKg  float64 `json:"default_price_per_kg"`

	// Application preferences
	OutputDir     string   `json:"output_dir"`
	Formats       []string `json:"formats"`
	RecentPresets []string `json:"recent_presets"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultBeamConfig.
func DefaultAppConfig() AppConfig {
	beam := DefaultBeamConfig()
	return AppConfig{
		DefaultLanguage: beam.Language,
		DefaultCovers: Covers{
			Top:       beam.CoverTop,
			Bottom:    beam.CoverBottom,
			Left:      beam.CoverLeft,
			Right:     beam.CoverRight,
			ViewLeft:  beam.CoverViewLeft,
			ViewRight: beam.CoverViewRight,
		},
		DefaultAggregateSize: 16,
		DefaultSteelDensity:  7850,
		DefaultStockLength:   12000,
		DefaultCutAllow:      0,
		DefaultWastePct:      5,
		DefaultPricePerKg:    0,
		OutputDir:            ".",
		Formats:              []string{"dxf", "pdf", "xlsx"},
		RecentPresets:        []string{},
	}
}

// ApplyToConfig fills the fields of c that were left at their zero value
// with the saved defaults. Values already set are kept.
func (a AppConfig) ApplyToConfig(c *BeamConfig) {
	if c.Language == "" {
		c.Language = a.DefaultLanguage
	}
	fill := func(dst *float64, v float64) {
		if *dst == 0 {
			*dst = v
		}
	}
	fill(&c.CoverTop, a.DefaultCovers.Top)
	fill(&c.CoverBottom, a.DefaultCovers.Bottom)
	fill(&c.CoverLeft, a.DefaultCovers.Left)
	fill(&c.CoverRight, a.DefaultCovers.Right)
	fill(&c.CoverViewLeft, a.DefaultCovers.ViewLeft)
	fill(&c.CoverViewRight, a.DefaultCovers.ViewRight)
}

// AddRecentPreset moves name to the front of the recent list, keeping at
// most limit entries.
func (a *AppConfig) AddRecentPreset(name string, limit int) {
	recent := []string{name}
	for _, n := range a.RecentPresets {
		if n != name {
			recent = append(recent, n)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	a.RecentPresets = recent
}
