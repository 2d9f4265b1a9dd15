package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/plan"
)

// FileVersion is written into every plan file and backup.
const FileVersion = "1.0.0"

// PlanFile is a computed plan together with the settings that produced it.
type PlanFile struct {
	Version   string         `json:"version"`
	CreatedAt string         `json:"created_at"`
	Settings  model.Settings `json:"settings"`
	Plan      *plan.Plan     `json:"plan"`
}

// SaveDrawing writes a drawing as JSON. Shapes are stored as tagged records.
func SaveDrawing(path string, d model.Drawing) error {
	if err := writeJSON(path, d); err != nil {
		return fmt.Errorf("save drawing: %w", err)
	}
	return nil
}

// LoadDrawing reads a drawing written by SaveDrawing.
func LoadDrawing(path string) (model.Drawing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Drawing{}, fmt.Errorf("read drawing: %w", err)
	}
	var d model.Drawing
	if err := json.Unmarshal(data, &d); err != nil {
		return model.Drawing{}, fmt.Errorf("parse drawing %s: %w", path, err)
	}
	if d.Layers == nil {
		d.Layers = []model.Layer{}
	}
	return d, nil
}

// SavePlan writes a plan and its settings as JSON.
func SavePlan(path string, p *plan.Plan, settings model.Settings) error {
	if p == nil {
		return errors.New("save plan: nil plan")
	}
	file := PlanFile{
		Version:   FileVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Settings:  settings,
		Plan:      p,
	}
	if err := writeJSON(path, file); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

// LoadPlan reads a plan file written by SavePlan.
func LoadPlan(path string) (PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PlanFile{}, fmt.Errorf("read plan: %w", err)
	}
	var file PlanFile
	if err := json.Unmarshal(data, &file); err != nil {
		return PlanFile{}, fmt.Errorf("parse plan %s: %w", path, err)
	}
	if file.Version == "" {
		return PlanFile{}, fmt.Errorf("invalid plan file: missing version field")
	}
	if file.Plan == nil {
		return PlanFile{}, fmt.Errorf("invalid plan file: missing plan")
	}
	return file, nil
}
