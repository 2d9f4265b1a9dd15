package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alangibson/MetalHeadCAM-sub000/internal/model"
)

func TestLoadUnset(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	app := model.DefaultAppConfig()
	require.NoError(t, cfg.Apply(&app))
	assert.Equal(t, model.DefaultAppConfig(), app)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("METALHEAD_LOG_LEVEL", "debug")
	t.Setenv("METALHEAD_OUTPUT_DIR", "/srv/cam")
	t.Setenv("METALHEAD_TOLERANCE", "0.01")
	t.Setenv("METALHEAD_PRECISION", "4")
	t.Setenv("METALHEAD_KERF_WIDTH", "1.2")
	t.Setenv("METALHEAD_KERF_MODE", "auto")
	t.Setenv("METALHEAD_LEAD_TYPE", "arc")
	t.Setenv("METALHEAD_LEAD_LENGTH", "3")
	t.Setenv("METALHEAD_GENERATIONS", "250")
	t.Setenv("METALHEAD_SEED", "7")
	t.Setenv("METALHEAD_CONFIG", "/etc/metalhead.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/etc/metalhead.json", cfg.ConfigPath)

	app := model.DefaultAppConfig()
	require.NoError(t, cfg.Apply(&app))
	assert.Equal(t, "debug", app.LogLevel)
	assert.Equal(t, "/srv/cam", app.OutputDir)
	assert.Equal(t, 0.01, app.DefaultTolerance)
	assert.Equal(t, 4, app.DefaultPrecision)
	assert.Equal(t, 1.2, app.DefaultKerfWidth)
	assert.Equal(t, model.KerfModeAuto, app.DefaultKerfMode)
	assert.Equal(t, model.LeadArc, app.DefaultLeadType)
	assert.Equal(t, 3.0, app.DefaultLeadLength)

	tour := model.DefaultSettings().Tour
	cfg.ApplyTour(&tour)
	assert.Equal(t, 250, tour.Generations)
	assert.Equal(t, int64(7), tour.Seed)
}

func TestLoadInvalidNumber(t *testing.T) {
	t.Setenv("METALHEAD_KERF_WIDTH", "wide")

	_, err := Load()
	assert.Error(t, err)
}

func TestApplyInvalidModes(t *testing.T) {
	app := model.DefaultAppConfig()

	err := (&Config{KerfMode: "sideways"}).Apply(&app)
	assert.ErrorContains(t, err, "METALHEAD_KERF_MODE")

	err = (&Config{LeadType: "spiral"}).Apply(&app)
	assert.ErrorContains(t, err, "METALHEAD_LEAD_TYPE")
}
