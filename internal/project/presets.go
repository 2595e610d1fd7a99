package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/BeamDetail/internal/model"
)

// DefaultPresetPath returns the default path for the preset store.
func DefaultPresetPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets writes the preset store to a JSON file.
func SavePresets(path string, store model.PresetStore) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create preset directory: %w", err)
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write presets: %w", err)
	}
	return nil
}

// LoadPresets reads a preset store from a JSON file. A missing file yields
// an empty store.
func LoadPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewPresetStore(), nil
		}
		return model.PresetStore{}, fmt.Errorf("failed to read presets: %w", err)
	}
	var store model.PresetStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.PresetStore{}, fmt.Errorf("failed to parse presets: %w", err)
	}
	if store.Presets == nil {
		store.Presets = []model.BeamPreset{}
	}
	return store, nil
}

// LoadDefaultPresets loads the store from the default location.
func LoadDefaultPresets() (model.PresetStore, error) {
	return LoadPresets(DefaultPresetPath())
}

// SaveDefaultPresets saves the store to the default location.
func SaveDefaultPresets(store model.PresetStore) error {
	return SavePresets(DefaultPresetPath(), store)
}

// ExportPresetsYAML writes presets to a YAML file for sharing.
func ExportPresetsYAML(path string, presets []model.BeamPreset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	data, err := yaml.Marshal(model.PresetStore{Presets: presets})
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write presets: %w", err)
	}
	return nil
}

// ImportPresetsYAML reads presets written by ExportPresetsYAML. Presets
// without a name are rejected.
func ImportPresetsYAML(path string) ([]model.BeamPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}
	var store model.PresetStore
	if err := yaml.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	for i, p := range store.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d has no name", i+1)
		}
	}
	return store.Presets, nil
}
