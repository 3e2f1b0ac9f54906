package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"imagelab/internal/export"
	"imagelab/internal/logger"
	"imagelab/internal/models"

	"github.com/BurntSushi/toml"
)

// EnvLogLevel overrides the configured log level when set.
const EnvLogLevel = "IMAGELAB_LOG_LEVEL"

type Config struct {
	Log      LogConfig         `toml:"log"`
	Window   WindowConfig      `toml:"window"`
	Camera   CameraConfig      `toml:"camera"`
	Export   ExportConfig      `toml:"export"`
	Defaults models.Parameters `toml:"defaults"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type WindowConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type CameraConfig struct {
	Device int `toml:"device"`
}

// ExportConfig names the files offered by the download actions.
type ExportConfig struct {
	ImageName      string `toml:"image_name"`
	StatisticsName string `toml:"statistics_name"`
}

func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: string(logger.FormatConsole),
		},
		Window: WindowConfig{
			Width:  1400,
			Height: 900,
		},
		Camera: CameraConfig{Device: 0},
		Export: ExportConfig{
			ImageName:      export.ProcessedImageName,
			StatisticsName: export.StatisticsName,
		},
		Defaults: models.DefaultParameters(),
	}
}

// Load reads a TOML file on top of the defaults. An empty path or a missing file yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cfg.Defaults = cfg.Defaults.Normalize()
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := logger.ParseFormat(c.Log.Format); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %.0fx%.0f", c.Window.Width, c.Window.Height)
	}
	if c.Export.ImageName == "" || c.Export.StatisticsName == "" {
		return fmt.Errorf("export file names must not be empty")
	}
	if c.Camera.Device < 0 {
		return fmt.Errorf("invalid camera device %d", c.Camera.Device)
	}
	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("default parameters: %w", err)
	}
	return nil
}

// Logger builds the application logger described by c.
func (c Config) Logger() (*logger.ZerologAdapter, error) {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	format, err := logger.ParseFormat(c.Log.Format)
	if err != nil {
		return nil, err
	}
	return logger.New(format, level), nil
}
