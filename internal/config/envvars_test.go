// ABOUTME: Tests for environment variable overrides and ${VAR} expansion
// ABOUTME: Validates prefix handling plus set, unset and mixed patterns

package config

import (
	"testing"
)

func TestApplyEnv_OnlySetVarsOverride(t *testing.T) {
	t.Setenv(EnvPrefix+"MAX_LINE_BYTES", "512")

	s := &Settings{LogLevel: "info", MaxLineBytes: 1, MaxReadErrors: 4}
	if err := ApplyEnv(s); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if s.MaxLineBytes != 512 {
		t.Errorf("MaxLineBytes = %d; want 512", s.MaxLineBytes)
	}
	if s.LogLevel != "info" || s.MaxReadErrors != 4 {
		t.Errorf("unset vars changed fields: %+v", s)
	}
}

func TestExpandEnv_Set(t *testing.T) {
	t.Setenv("TEST_LEVEL", "debug")
	result := expandEnv("${TEST_LEVEL}")
	if result != "debug" {
		t.Errorf("expandEnv = %q; want %q", result, "debug")
	}
}

func TestExpandEnv_Unset(t *testing.T) {
	result := expandEnv("${DEFINITELY_NOT_SET_12345}")
	if result != "" {
		t.Errorf("expandEnv = %q; want empty for unset var", result)
	}
}

func TestExpandEnv_Mixed(t *testing.T) {
	t.Setenv("MY_SUFFIX", "bug")
	result := expandEnv("de${MY_SUFFIX}")
	if result != "debug" {
		t.Errorf("expandEnv = %q; want %q", result, "debug")
	}
}

func TestExpandEnv_NoPattern(t *testing.T) {
	result := expandEnv("plain string")
	if result != "plain string" {
		t.Errorf("expandEnv = %q; want %q", result, "plain string")
	}
}

func TestResolveEnvVars_LogLevel(t *testing.T) {
	t.Setenv("PLUGIN_LEVEL", "error")
	s := &Settings{LogLevel: "${PLUGIN_LEVEL}"}
	ResolveEnvVars(s)
	if s.LogLevel != "error" {
		t.Errorf("LogLevel = %q; want error", s.LogLevel)
	}
}
