// Package config loads application settings from an optional YAML file,
// falling back to built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up in the user config directory.
const FileName = "stockdbms.yaml"

// Config holds all configuration for the application.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Export   ExportConfig   `mapstructure:"export" yaml:"export"`
	Chart    ChartConfig    `mapstructure:"chart" yaml:"chart"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

type DatabaseConfig struct {
	Dir       string `mapstructure:"dir" yaml:"dir"`
	Extension string `mapstructure:"extension" yaml:"extension"`
	Default   string `mapstructure:"default" yaml:"default"`
}

type ExportConfig struct {
	Dir      string `mapstructure:"dir" yaml:"dir"`
	Filename string `mapstructure:"filename" yaml:"filename"`
}

type ChartConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // console or json
	File   string `mapstructure:"file" yaml:"file"`     // empty: stderr only
}

// ExportPath returns the full path of the workbook written by Export to Excel.
func (c *Config) ExportPath() string {
	return filepath.Join(c.Export.Dir, c.Export.Filename)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.dir", ".")
	v.SetDefault("database.extension", ".db")
	v.SetDefault("database.default", "default")

	v.SetDefault("export.dir", ".")
	v.SetDefault("export.filename", "stock_data.xlsx")

	v.SetDefault("chart.width", 800)
	v.SetDefault("chart.height", 360)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
}

// DefaultPath returns the settings file location in the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "stockdbms", FileName), nil
}

// Load reads settings from path on top of the defaults. A missing file is
// not an error; an unreadable or malformed one is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Default == "" {
		return fmt.Errorf("database.default cannot be empty")
	}
	if c.Export.Filename == "" {
		return fmt.Errorf("export.filename cannot be empty")
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	return nil
}

// Default returns the built-in settings.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// Built-in defaults always validate.
		panic(err)
	}
	return cfg
}

// WriteDefault writes the built-in settings to path as YAML, creating the
// parent directory. An existing file is left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
