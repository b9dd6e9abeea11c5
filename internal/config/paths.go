// ABOUTME: Standard filesystem paths for plugin configuration
// ABOUTME: Resolves the per-user config file under the OS config directory

package config

import (
	"os"
	"path/filepath"
)

const (
	configDirName  = "nu_plugin_inc"
	configFileName = "config.yaml"
)

// ConfigDir returns the per-user config directory.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", configDirName)
	}
	return filepath.Join(dir, configDirName)
}

// DefaultConfigFile returns the config file read when none is requested.
func DefaultConfigFile() string {
	return filepath.Join(ConfigDir(), configFileName)
}
