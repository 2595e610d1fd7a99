package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BeamDetail/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultLanguage = "pl"
	cfg.DefaultStockLength = 6000
	cfg.DefaultCovers.Top = 35
	cfg.RecentPresets = []string{"B1", "B2"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultLanguage != "pl" {
		t.Errorf("expected DefaultLanguage=pl, got %s", loaded.DefaultLanguage)
	}
	if loaded.DefaultStockLength != 6000 {
		t.Errorf("expected DefaultStockLength=6000, got %f", loaded.DefaultStockLength)
	}
	if loaded.DefaultCovers.Top != 35 {
		t.Errorf("expected top cover 35, got %f", loaded.DefaultCovers.Top)
	}
	if len(loaded.RecentPresets) != 2 {
		t.Errorf("expected 2 recent presets, got %d", len(loaded.RecentPresets))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	defaults := model.DefaultAppConfig()
	if cfg.DefaultStockLength != defaults.DefaultStockLength {
		t.Errorf("expected default stock length, got %f", cfg.DefaultStockLength)
	}
}

func TestLoadAppConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"default_language": "pl", "recent_presets": null}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.DefaultLanguage != "pl" {
		t.Errorf("expected pl, got %s", cfg.DefaultLanguage)
	}
	if cfg.DefaultSteelDensity != 7850 {
		t.Errorf("expected missing fields to keep defaults, got %f", cfg.DefaultSteelDensity)
	}
	if cfg.RecentPresets == nil {
		t.Error("RecentPresets should never be nil")
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSaveAppConfigCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "config.json")
	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}
