package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultKerfWidth = 1.5
	cfg.DefaultKerfMode = model.KerfModeAuto
	cfg.LogLevel = "debug"
	cfg.RecentFiles = []string{"/tmp/bracket.dxf", "/tmp/plate.csv"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultKerfWidth != 1.5 {
		t.Errorf("expected DefaultKerfWidth=1.5, got %f", loaded.DefaultKerfWidth)
	}
	if loaded.DefaultKerfMode != model.KerfModeAuto {
		t.Errorf("expected DefaultKerfMode=auto, got %s", loaded.DefaultKerfMode)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %s", loaded.LogLevel)
	}
	if len(loaded.RecentFiles) != 2 {
		t.Errorf("expected 2 recent files, got %d", len(loaded.RecentFiles))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultTolerance != defaults.DefaultTolerance {
		t.Errorf("expected default tolerance %f, got %f", defaults.DefaultTolerance, cfg.DefaultTolerance)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", cfg.LogLevel)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"default_kerf_width": 0.8, "recent_files": null}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.DefaultKerfWidth != 0.8 {
		t.Errorf("expected DefaultKerfWidth=0.8, got %f", cfg.DefaultKerfWidth)
	}
	if cfg.DefaultPrecision != model.DefaultSettings().DecimalPrecision {
		t.Errorf("expected default precision to survive, got %d", cfg.DefaultPrecision)
	}
	if cfg.RecentFiles == nil {
		t.Error("RecentFiles should not be nil after load")
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected config.json, got %s", path)
	}
	if !strings.HasSuffix(filepath.Dir(path), ".metalhead") {
		t.Errorf("expected config under .metalhead, got %s", path)
	}
}
