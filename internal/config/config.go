// Package config loads vibary settings from the environment and an optional
// YAML file. Values found in the file win over the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	yaml "gopkg.in/yaml.v3"

	"vibary/internal/application/lifecycle"
)

const (
	EnvPrefix = "VIBARY_"

	ProviderClaude = "claude"
	ProviderGemini = "gemini"
)

type TimingConfig struct {
	Settle          time.Duration `yaml:"settle" env:"SETTLE" envDefault:"1s"`
	ErrorDisplay    time.Duration `yaml:"error_display" env:"ERROR_DISPLAY" envDefault:"4s"`
	AnalyzeDeadline time.Duration `yaml:"analyze_deadline" env:"ANALYZE_DEADLINE" envDefault:"120s"`
	CheckDeadline   time.Duration `yaml:"check_deadline" env:"CHECK_DEADLINE" envDefault:"60s"`
	RefineDeadline  time.Duration `yaml:"refine_deadline" env:"REFINE_DEADLINE" envDefault:"60s"`
}

type SourceConfig struct {
	MaxPages int `yaml:"max_pages" env:"MAX_PAGES" envDefault:"50"`
	MaxChars int `yaml:"max_chars" env:"MAX_CHARS" envDefault:"250000"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"LEVEL" envDefault:"normal"`
	// File receives the log of the interactive journey, which owns the terminal
	File string `yaml:"file,omitempty" env:"FILE"`
}

type Config struct {
	Provider  string        `yaml:"provider" env:"PROVIDER" envDefault:"claude"`
	Model     string        `yaml:"model,omitempty" env:"MODEL"`
	APIKey    string        `yaml:"api_key,omitempty" env:"API_KEY"`
	Language  string        `yaml:"language" env:"LANGUAGE" envDefault:"English"`
	ExportDir string        `yaml:"export_dir,omitempty" env:"EXPORT_DIR"`
	DataDir   string        `yaml:"data_dir" env:"DATA_DIR" envDefault:"~/.local/share/vibary"`
	HTTPAddr  string        `yaml:"http_addr" env:"HTTP_ADDR" envDefault:"127.0.0.1:8080"`
	Timings   TimingConfig  `yaml:"timings" envPrefix:"TIMING_"`
	Source    SourceConfig  `yaml:"source" envPrefix:"SOURCE_"`
	Logging   LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
}

// Load reads the environment and then, when path is not empty, the YAML file at path
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
		if err := unmarshalConfig(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func unmarshalConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return nil
}

// Validate checks enumerations and ranges
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderClaude, ProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", c.Provider, ProviderClaude, ProviderGemini)
	}
	switch c.Logging.Level {
	case "none", "normal", "debug":
	default:
		return fmt.Errorf("unknown log level %q (want none, normal or debug)", c.Logging.Level)
	}
	if c.Source.MaxPages <= 0 || c.Source.MaxChars <= 0 {
		return errors.New("source limits must be positive")
	}
	t := c.Timings
	for _, d := range []time.Duration{t.Settle, t.ErrorDisplay, t.AnalyzeDeadline, t.CheckDeadline, t.RefineDeadline} {
		if d <= 0 {
			return errors.New("timings must be positive")
		}
	}
	return nil
}

// Lifecycle returns the state machine timings
func (c *Config) Lifecycle() lifecycle.Timings {
	return lifecycle.Timings{
		Settle:          c.Timings.Settle,
		ErrorDisplay:    c.Timings.ErrorDisplay,
		AnalyzeDeadline: c.Timings.AnalyzeDeadline,
		CheckDeadline:   c.Timings.CheckDeadline,
		RefineDeadline:  c.Timings.RefineDeadline,
	}
}

// DataPath returns the data directory with a leading ~ expanded
func (c *Config) DataPath() string {
	return ExpandHome(c.DataDir)
}

// RecentsPath is the location of the recent titles database
func (c *Config) RecentsPath() string {
	return filepath.Join(c.DataPath(), "recents.db")
}

// ExportPath returns the export directory, the working directory when unset
func (c *Config) ExportPath() (string, error) {
	if c.ExportDir != "" {
		return ExpandHome(c.ExportDir), nil
	}
	return os.Getwd()
}

// LogPath returns the log file of the interactive journey
func (c *Config) LogPath() string {
	if c.Logging.File != "" {
		return ExpandHome(c.Logging.File)
	}
	return filepath.Join(c.DataPath(), "vibary.log")
}

// Dump renders the effective configuration as YAML with the API key masked
func Dump(cfg *Config) ([]byte, error) {
	shown := *cfg
	if shown.APIKey != "" {
		shown.APIKey = "***"
	}
	data, err := yaml.Marshal(shown)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
