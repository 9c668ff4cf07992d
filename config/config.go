// Package config loads the optional fern.yaml settings file for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is what Discover looks for in the working directory
const ConfigFileName = "fern.yaml"

// Config represents the complete Fern CLI configuration
type Config struct {
	BaseDir string       `yaml:"-"` // Directory containing config file, for resolving relative paths
	Output  OutputConfig `yaml:"output"`
	Errors  ErrorsConfig `yaml:"errors"`
	Watch   WatchConfig  `yaml:"watch"`
}

// OutputConfig holds token-dump output settings
type OutputConfig struct {
	Format string `yaml:"format"` // "text" or "json"
	Values bool   `yaml:"values"` // include numeric values and decoded string text
}

// ErrorsConfig holds diagnostic display settings
type ErrorsConfig struct {
	Pretty bool `yaml:"pretty"` // multi-line error display
	Limit  int  `yaml:"limit"`  // stop printing after this many errors (0 = no limit)
}

// WatchConfig holds watch-mode settings
type WatchConfig struct {
	Debounce   Duration `yaml:"debounce"`   // minimum quiet period between re-checks
	Extensions []string `yaml:"extensions"` // file extensions that trigger a re-check
}

// Duration supports YAML fields written as Go duration strings ("250ms")
// or integer nanoseconds
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler to handle both forms
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var text string
	if err := unmarshal(&text); err == nil {
		parsed, perr := time.ParseDuration(text)
		if perr != nil {
			return perr
		}
		*d = Duration(parsed)
		return nil
	}

	var nanos int64
	if err := unmarshal(&nanos); err != nil {
		return err
	}
	*d = Duration(nanos)
	return nil
}

// Std returns the duration as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Defaults returns a Config with sensible defaults
func Defaults() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "text",
			Values: true,
		},
		Errors: ErrorsConfig{
			Pretty: true,
			Limit:  0,
		},
		Watch: WatchConfig{
			Debounce:   Duration(100 * time.Millisecond),
			Extensions: []string{".fn"},
		},
	}
}

// Load reads configuration from the given path, applying defaults for
// anything the file leaves unset.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.BaseDir = filepath.Dir(absPath)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover returns the config from fern.yaml in dir when present, or
// defaults when it is not.
func Discover(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, err
	}
	return Load(path)
}

func (c *Config) validate() error {
	if c.Output.Format != "text" && c.Output.Format != "json" {
		return fmt.Errorf("output.format must be \"text\" or \"json\", got %q", c.Output.Format)
	}
	if c.Errors.Limit < 0 {
		return fmt.Errorf("errors.limit must not be negative, got %d", c.Errors.Limit)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}
