// ABOUTME: Environment layer: NU_PLUGIN_INC_* overrides parsed with caarlos0/env
// ABOUTME: Also expands ${VAR} patterns in string fields; unset vars become empty

package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read into Settings.
const EnvPrefix = "NU_PLUGIN_INC_"

// EnvConfigFile names the config file when no path is given explicitly.
const EnvConfigFile = EnvPrefix + "CONFIG"

// ApplyEnv overrides fields whose NU_PLUGIN_INC_* variable is set.
func ApplyEnv(s *Settings) error {
	if err := env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ResolveEnvVars expands ${VAR} patterns in string fields of Settings.
func ResolveEnvVars(s *Settings) {
	s.LogLevel = expandEnv(s.LogLevel)
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
