package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/geom"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
	"github.com/alangibson/MetalHeadCAM-sub000/internal/project"
)

const bracketCSV = `Layer,Type,P1,P2,P3,P4
outline,polyline,0,0,100,0,100,60,0,60,0,0
holes,circle,25,30,8
holes,circle,75,30,8
washer,circle,140,30,15
washer,circle,140,30,6
`

func writeInput(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "bracket.csv")
	require.NoError(t, os.WriteFile(input, []byte(bracketCSV), 0644))
	return dir, input
}

func TestRunWritesOutputs(t *testing.T) {
	dir, input := writeInput(t)
	out := filepath.Join(dir, "out")
	cfg := filepath.Join(dir, "config.json")

	var stderr bytes.Buffer
	err := run([]string{
		"-config", cfg, "-out", out,
		"-kerf", "0.4", "-kerf-mode", "auto", "-lead", "arc",
		"-labels", "-report", "-save-config",
		input,
	}, &stderr)
	require.NoError(t, err, stderr.String())

	for _, name := range []string{"bracket.plan.json", "bracket.pdf", "bracket-labels.pdf", "bracket.xlsx"} {
		info, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}

	file, err := project.LoadPlan(filepath.Join(out, "bracket.plan.json"))
	require.NoError(t, err)
	assert.Len(t, file.Plan.Parts, 2)
	assert.Len(t, file.Plan.Cuts(), 5)
	assert.Equal(t, 0.4, file.Settings.KerfWidth)
	assert.Equal(t, model.KerfModeAuto, file.Settings.KerfMode)
	assert.Equal(t, model.LeadArc, file.Settings.LeadType)

	saved, err := project.LoadAppConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0.4, saved.DefaultKerfWidth)
	assert.Equal(t, out, saved.OutputDir)
	require.Len(t, saved.RecentFiles, 1)
	assert.Equal(t, "bracket.csv", filepath.Base(saved.RecentFiles[0]))
}

func TestRunUsesSavedDefaults(t *testing.T) {
	dir, input := writeInput(t)
	cfg := filepath.Join(dir, "config.json")

	app := model.DefaultAppConfig()
	app.DefaultKerfWidth = 1
	app.DefaultKerfMode = model.KerfModeOutside
	require.NoError(t, project.SaveAppConfig(cfg, app))

	var stderr bytes.Buffer
	require.NoError(t, run([]string{"-config", cfg, "-pdf=false", "-origin", "10,5", input}, &stderr), stderr.String())

	file, err := project.LoadPlan(filepath.Join(dir, "bracket.plan.json"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, file.Settings.KerfWidth)
	assert.Equal(t, model.KerfModeOutside, file.Settings.KerfMode)
	assert.Equal(t, geom.Pt(10, 5), file.Plan.Origin)
	assert.Equal(t, geom.Pt(10, 5), file.Plan.Cuts()[0].RapidIn.Start)

	_, err = os.Stat(filepath.Join(dir, "bracket.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunErrors(t *testing.T) {
	dir, input := writeInput(t)
	cfg := filepath.Join(dir, "config.json")

	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"-config", cfg}},
		{"bad flag", []string{"-config", cfg, "-bogus", input}},
		{"bad kerf mode", []string{"-config", cfg, "-kerf-mode", "sideways", input}},
		{"bad lead", []string{"-config", cfg, "-lead", "spiral", input}},
		{"bad origin", []string{"-config", cfg, "-origin", "1", input}},
		{"missing input", []string{"-config", cfg, filepath.Join(dir, "missing.csv")}},
		{"invalid settings", []string{"-config", cfg, "-tolerance", "-1", input}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			assert.Error(t, run(tt.args, &stderr))
		})
	}
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 1.5, -2 ")
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(1.5, -2), p)

	_, err = parsePoint("a,b")
	assert.Error(t, err)
}
