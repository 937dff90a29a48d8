package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acolombo/taskdeck/pkg/store"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, store.DatabaseTypeSQLite, cfg.Database.Type)
	assert.NotEmpty(t, cfg.Database.SQLite.Path)

	require.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, EnvDevelopment, cfg.Environment)
	})

	t.Run("values from file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := `
environment: production
shutdown_timeout: 45s
logging:
  level: DEBUG
  format: json
database:
  type: sqlite
  sqlite:
    path: ` + filepath.Join(dir, "taskdeck.db") + `
api:
  port: 9999
  jwt:
    secret: config-file-secret-at-least-32-characters
    token_duration: 12h
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, EnvProduction, cfg.Environment)
		assert.False(t, cfg.IsDevelopment())
		assert.Equal(t, 45*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, "DEBUG", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, 9999, cfg.API.Port)
		assert.Equal(t, 12*time.Hour, cfg.API.JWT.TokenDuration)
		assert.Equal(t, "config-file-secret-at-least-32-characters", cfg.API.GetJWTSecret())
	})

	t.Run("invalid environment rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("environment: staging\n"), 0600))

		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("malformed yaml rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("environment: [unclosed\n"), 0600))

		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := GetDefaultConfig()
	require.NoError(t, SaveConfig(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Environment, loaded.Environment)
}
