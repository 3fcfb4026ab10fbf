package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiredFieldMissing(t *testing.T) {
	t.Setenv("HONDANA_DATABASE_FILE_PATH", "")
	t.Setenv("HONDANA_JWT_SECRET", "")
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")

	cfg, err := New()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required config")
	assert.Contains(t, err.Error(), "HONDANA_DATABASE_FILE_PATH")
	assert.Contains(t, err.Error(), "database_file_path")
}

func TestNew_WithEnvVar(t *testing.T) {
	t.Setenv("HONDANA_DATABASE_FILE_PATH", "/tmp/test.db")
	t.Setenv("HONDANA_JWT_SECRET", "test-secret-key")
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.DatabaseFilePath)
	assert.Equal(t, "test-secret-key", cfg.JWTSecret)
}

func TestNew_WithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
database_file_path: /data/hondana.db
server_port: 8080
database_debug: true
jwt_secret: test-secret-from-file
catalog_app_id: test-app-id
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	t.Setenv("CONFIG_FILE", configPath)

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/data/hondana.db", cfg.DatabaseFilePath)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.True(t, cfg.DatabaseDebug)
	assert.Equal(t, "test-app-id", cfg.CatalogAppID)
}

func TestNew_EnvVarOverridesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
database_file_path: /data/hondana.db
jwt_secret: file-secret
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	t.Setenv("CONFIG_FILE", configPath)
	t.Setenv("HONDANA_DATABASE_FILE_PATH", "/override/hondana.db")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/override/hondana.db", cfg.DatabaseFilePath)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv("HONDANA_DATABASE_FILE_PATH", "/tmp/test.db")
	t.Setenv("HONDANA_JWT_SECRET", "test-secret-key")
	t.Setenv("CONFIG_FILE", "/nonexistent/config.yaml")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 6075, cfg.ServerPort)
	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.Equal(t, "https://app.rakuten.co.jp/services/api", cfg.CatalogBaseURL)
	assert.Equal(t, 5, cfg.DatabaseMaxRetries)
}
