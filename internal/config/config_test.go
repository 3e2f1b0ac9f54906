package config

import (
	"os"
	"path/filepath"
	"testing"

	"imagelab/internal/export"
	"imagelab/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "imagelab.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, float32(1400), cfg.Window.Width)
	assert.Equal(t, export.ProcessedImageName, cfg.Export.ImageName)
	assert.Equal(t, export.StatisticsName, cfg.Export.StatisticsName)
	assert.True(t, cfg.Defaults.IsNeutral())
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	path := writeConfig(t, `
[log]
level = "debug"
format = "json"

[window]
width = 1024
height = 768

[camera]
device = 2

[export]
image_name = "out.png"

[defaults]
grayscale = true
brightness = -15
contrast = 1.5
morphology = "closing"
kernel_size = 7
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, float32(1024), cfg.Window.Width)
	assert.Equal(t, float32(768), cfg.Window.Height)
	assert.Equal(t, 2, cfg.Camera.Device)
	assert.Equal(t, "out.png", cfg.Export.ImageName)
	assert.Equal(t, export.StatisticsName, cfg.Export.StatisticsName)

	assert.True(t, cfg.Defaults.Grayscale)
	assert.Equal(t, -15, cfg.Defaults.Brightness)
	assert.Equal(t, 1.5, cfg.Defaults.Contrast)
	assert.Equal(t, models.MorphologyClosing, cfg.Defaults.Morphology)
	assert.Equal(t, 7, cfg.Defaults.KernelSize)
	assert.Equal(t, models.DefaultCannyLow, cfg.Defaults.CannyLow)

	log, err := cfg.Logger()
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestEnvOverridesLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")

	path := writeConfig(t, "[log]\nlevel = \"debug\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	tests := map[string]string{
		"syntax":      "[log\nlevel = ",
		"log level":   "[log]\nlevel = \"chatty\"\n",
		"log format":  "[log]\nformat = \"xml\"\n",
		"window":      "[window]\nwidth = 0\n",
		"camera":      "[camera]\ndevice = -1\n",
		"export":      "[export]\nstatistics_name = \"\"\n",
		"brightness":  "[defaults]\nbrightness = 300\n",
		"kernel size": "[defaults]\nmorphology = \"erosion\"\nkernel_size = 4\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestEnvLevelIsValidated(t *testing.T) {
	t.Setenv(EnvLogLevel, "loud")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoggerLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "error"

	_, err := cfg.Logger()
	require.NoError(t, err)

	cfg.Log.Level = "bogus"
	_, err = cfg.Logger()
	assert.Error(t, err)
}
