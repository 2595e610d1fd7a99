package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BeamDetail/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultPricePerKg = 4.2
	cfg.DefaultLanguage = "pl"
	store := model.NewPresetStore()
	store.Add(model.NewBeamPreset("B1", "", model.DefaultBeamConfig()))

	if err := ExportAllData(path, cfg, store); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultPricePerKg != 4.2 {
		t.Errorf("expected DefaultPricePerKg=4.2, got %f", backup.Config.DefaultPricePerKg)
	}
	if backup.Config.DefaultLanguage != "pl" {
		t.Errorf("expected DefaultLanguage=pl, got %s", backup.Config.DefaultLanguage)
	}
	if len(backup.Presets.Presets) != 1 || backup.Presets.Presets[0].Name != "B1" {
		t.Errorf("unexpected presets %+v", backup.Presets)
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{"config": {}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Error("expected error for missing version")
	}
}

func TestImportAllDataNilSlices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{"version": "1.0.0", "config": {}}`), 0644); err != nil {
		t.Fatal(err)
	}
	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentPresets == nil || backup.Presets.Presets == nil {
		t.Error("slices should never be nil")
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for a missing file")
	}
}
