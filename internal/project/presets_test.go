package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BeamDetail/internal/model"
)

func TestSaveAndLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")

	store := model.NewPresetStore()
	cfg := model.DefaultBeamConfig()
	cfg.Width = 300
	store.Add(model.NewBeamPreset("Lintel 300", "door lintel", cfg))

	if err := SavePresets(path, store); err != nil {
		t.Fatalf("SavePresets failed: %v", err)
	}
	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(loaded.Presets) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(loaded.Presets))
	}
	p := loaded.FindByName("Lintel 300")
	if p == nil {
		t.Fatal("preset not found by name")
	}
	if p.Config != cfg {
		t.Errorf("preset config changed on round trip: %+v", p.Config)
	}
}

func TestLoadPresetsMissingFile(t *testing.T) {
	store, err := LoadPresets(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.Presets == nil || len(store.Presets) != 0 {
		t.Errorf("expected an empty store, got %+v", store)
	}
}

func TestLoadPresetsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPresets(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestExportImportPresetsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared", "presets.yaml")

	cfg := model.DefaultBeamConfig()
	cfg.Language = "pl"
	presets := []model.BeamPreset{
		model.NewBeamPreset("B1", "", cfg),
		model.NewBeamPreset("B2", "wide", model.DefaultBeamConfig()),
	}

	if err := ExportPresetsYAML(path, presets); err != nil {
		t.Fatalf("ExportPresetsYAML failed: %v", err)
	}
	imported, err := ImportPresetsYAML(path)
	if err != nil {
		t.Fatalf("ImportPresetsYAML failed: %v", err)
	}
	if len(imported) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(imported))
	}
	if imported[0].ID != presets[0].ID || imported[0].Config != cfg {
		t.Errorf("unexpected first preset %+v", imported[0])
	}
	if imported[1].Description != "wide" {
		t.Errorf("unexpected description %q", imported[1].Description)
	}
}

func TestImportPresetsYAMLRejectsUnnamed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte("presets:\n  - id: abc\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportPresetsYAML(path); err == nil {
		t.Error("expected error for a preset without a name")
	}
}
