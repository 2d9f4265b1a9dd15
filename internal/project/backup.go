package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
)

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Drawings  []model.Drawing `json:"drawings,omitempty"`
}

// ExportAllData exports the config and any given drawings to a single JSON
// file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, drawings ...model.Drawing) error {
	backup := BackupData{
		Version:   FileVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Drawings:  drawings,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentFiles == nil {
		backup.Config.RecentFiles = []string{}
	}
	return backup, nil
}
