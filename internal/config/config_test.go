package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gopherpress", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "/login", cfg.Auth.LoginPath)
	assert.Equal(t, "post.activity", cfg.RabbitMQ.ActivityQueue)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[app]
port = 9090

[mysql]
user = "bloguser"
db = "blogdb"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_PORT", "9999")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load()
	require.NoError(t, err)
	// Env wins over file, file wins over defaults.
	assert.Equal(t, 9999, cfg.App.Port)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "bloguser", cfg.MySQL.User)
	assert.Equal(t, "blogdb", cfg.MySQL.DB)
	assert.Equal(t, "127.0.0.1", cfg.MySQL.Host)
}

func TestMySQLDSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.MySQL.User = "root"
	cfg.MySQL.Password = "pw"
	cfg.MySQL.Host = "db.local"
	cfg.MySQL.Port = 3307
	cfg.MySQL.DB = "blog"
	cfg.MySQL.Params = "parseTime=true"

	assert.Equal(t, "root:pw@tcp(db.local:3307)/blog?parseTime=true", cfg.MySQLDSN())
}

func TestGetEnvAsInt_BadValueFallsBack(t *testing.T) {
	t.Setenv("APP_PORT", "not-a-number")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
}
