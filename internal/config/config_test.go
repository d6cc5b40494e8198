package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.LookupTimeout)
	assert.False(t, cfg.UsesPostgres())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projimport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
workers: 8
mapping: mapping.yaml
target_db: postgres://localhost/jira
log:
  level: debug
  format: json
`), 0o600))

	t.Setenv("PROJIMPORT_WORKERS", "16")
	t.Setenv("PROJIMPORT_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Workers, "environment overrides the file")
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "mapping.yaml", cfg.Mapping)
	assert.True(t, cfg.UsesPostgres())
}

func TestLoad_ZeroLookupTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projimport.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lookup_timeout: 0s\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lookup_timeout must be positive")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestValidate(t *testing.T) {
	valid := Config{Workers: 4, LookupTimeout: time.Second, Log: LogConfig{Level: "info", Format: "text"}}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		edit func(*Config)
		want string
	}{
		{"no workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"too many workers", func(c *Config) { c.Workers = 65 }, "workers"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"negative timeout", func(c *Config) { c.LookupTimeout = -time.Second }, "lookup_timeout"},
		{"zero timeout", func(c *Config) { c.LookupTimeout = 0 }, "lookup_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.edit(&c)

			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	log, err := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.Info("hidden")
	log.WithField("kind", "issue").Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"kind":"issue"`)

	_, err = LogConfig{Level: "nope"}.NewLogger(&buf)
	require.Error(t, err)
}
