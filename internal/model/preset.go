package model

import (
	"time"

	"github.com/google/uuid"
)

// BeamPreset is a named, reusable set of beam parameters.
type BeamPreset struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	CreatedAt   string     `json:"created_at" yaml:"created_at"`
	UpdatedAt   string     `json:"updated_at" yaml:"updated_at"`
	Config      BeamConfig `json:"config" yaml:"config"`
}

// NewBeamPreset creates a preset from the given beam parameters.
func NewBeamPreset(name, description string, cfg BeamConfig) BeamPreset {
	now := time.Now().UTC().Format(time.RFC3339)
	return BeamPreset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Config:      cfg,
	}
}

// ToConfig returns the preset's parameters with the element renamed. An
// empty name keeps the stored one.
func (p BeamPreset) ToConfig(elementName string) BeamConfig {
	cfg := p.Config
	if elementName != "" {
		cfg.Name = elementName
	}
	return cfg
}

// PresetStore holds a collection of beam presets.
type PresetStore struct {
	Presets []BeamPreset `json:"presets" yaml:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []BeamPreset{},
	}
}

// Add appends a preset, replacing an existing one with the same name.
func (ps *PresetStore) Add(p BeamPreset) {
	for i := range ps.Presets {
		if ps.Presets[i].Name == p.Name {
			p.ID = ps.Presets[i].ID
			p.CreatedAt = ps.Presets[i].CreatedAt
			ps.Presets[i] = p
			return
		}
	}
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *BeamPreset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *BeamPreset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Find looks a preset up by ID first, then by name.
func (ps *PresetStore) Find(key string) *BeamPreset {
	if p := ps.FindByID(key); p != nil {
		return p
	}
	return ps.FindByName(key)
}

// Names returns the preset names in stored order.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}
