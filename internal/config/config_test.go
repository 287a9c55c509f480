package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging:   LoggingConfig{Level: "info", Format: "json"},
		Scripting: ScriptingConfig{Dir: "content/scripts", InstructionLimit: 1000},
		Sheets:    SheetsConfig{Dir: "content/sheets"},
	}
}

func TestValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func defaultConfig(t *testing.T) Config {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	require.NoError(t, err)
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := defaultConfig(t)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Empty(t, cfg.Scripting.Dir)
	assert.Equal(t, "content/sheets", cfg.Sheets.Dir)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
scripting:
  dir: /srv/konosuba/scripts
  instruction_limit: 5000
`), 0644))

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/srv/konosuba/scripts", cfg.Scripting.Dir)
	assert.Equal(t, 5000, cfg.Scripting.InstructionLimit)
	assert.Equal(t, "content/sheets", cfg.Sheets.Dir, "unset keys keep defaults")
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0644))
	t.Setenv("KONOSUBA_LOGGING_LEVEL", "warn")

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	_, err := Load(path, false)
	assert.Error(t, err)

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(t), cfg)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: trace
  format: xml
scripting:
  instruction_limit: -1
`), 0644))

	_, err := Load(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "scripting.instruction_limit")
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	v.Set("logging.level", "error")
	v.Set("logging.format", "console")
	cfg, err := LoadFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)

	v.Set("logging.format", "yaml")
	_, err = LoadFromViper(v)
	assert.Error(t, err)
}

func TestValidateLogging_InvalidLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

// Property: any negative instruction limit is rejected, any non-negative one accepted.
func TestValidateScripting_InstructionLimitProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		limit := rapid.IntRange(-1_000_000, 1_000_000).Draw(rt, "limit")
		cfg := validConfig()
		cfg.Scripting.InstructionLimit = limit
		err := cfg.Validate()
		if limit < 0 && err == nil {
			rt.Fatalf("expected error for limit %d", limit)
		}
		if limit >= 0 && err != nil {
			rt.Fatalf("unexpected error for limit %d: %v", limit, err)
		}
	})
}
