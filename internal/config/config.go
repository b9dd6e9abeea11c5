// ABOUTME: Plugin settings with defaults, an optional YAML file and env overrides
// ABOUTME: Precedence is defaults < file < env; CLI flags are applied by the caller

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/nu-plugin-inc-go/internal/log"
	"github.com/mauromedda/nu-plugin-inc-go/internal/protocol"
)

// Settings holds the merged configuration.
type Settings struct {
	LogLevel      string `yaml:"log_level,omitempty" env:"LOG_LEVEL"`
	MaxLineBytes  int    `yaml:"max_line_bytes,omitempty" env:"MAX_LINE_BYTES"`
	MaxReadErrors int    `yaml:"max_read_errors,omitempty" env:"MAX_READ_ERRORS"`
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		LogLevel:     "warn",
		MaxLineBytes: protocol.DefaultMaxLineBytes,
	}
}

// Load builds settings from defaults, the config file and the environment.
// An empty path falls back to $NU_PLUGIN_INC_CONFIG and then to
// DefaultConfigFile; only an explicitly requested file must exist.
func Load(path string) (*Settings, error) {
	explicit := path != ""
	if !explicit {
		if p := os.Getenv(EnvConfigFile); p != "" {
			path, explicit = p, true
		} else {
			path = DefaultConfigFile()
		}
	}

	s := Defaults()
	file, err := loadFile(path)
	switch {
	case err == nil:
		s = merge(s, file)
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := ApplyEnv(s); err != nil {
		return nil, err
	}
	ResolveEnvVars(s)
	return s, nil
}

// loadFile reads Settings from a YAML file.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays the non-zero fields of override onto base.
func merge(base, override *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if override == nil {
		return base
	}

	result := *base
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.MaxLineBytes != 0 {
		result.MaxLineBytes = override.MaxLineBytes
	}
	if override.MaxReadErrors != 0 {
		result.MaxReadErrors = override.MaxReadErrors
	}
	return &result
}

// Validate checks that every field holds a usable value.
func (s *Settings) Validate() error {
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if s.MaxLineBytes < 0 {
		return fmt.Errorf("invalid max_line_bytes %d: must not be negative", s.MaxLineBytes)
	}
	if s.MaxReadErrors < 0 {
		return fmt.Errorf("invalid max_read_errors %d: must not be negative", s.MaxReadErrors)
	}
	return nil
}
