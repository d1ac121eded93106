package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "studiosync", cfg.App.Name)
	require.Equal(t, 3000, cfg.App.Port)
	require.Equal(t, 168, cfg.Auth.JWTExpireHour)
	require.Equal(t, "sync.audit", cfg.RabbitMQ.SyncAuditQueue)
	require.True(t, cfg.Sync.Enabled)
	require.Equal(t, 30, cfg.Sync.AutoIntervalMinutes)
	require.Equal(t, "0.0.0.0:3000", cfg.HTTPAddr())
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[app]
port = 4000

[auth]
jwt_secret = "file-secret"

[mysql]
db = "file_db"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SYNC_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	// File overrides defaults, env overrides file.
	require.Equal(t, 4000, cfg.App.Port)
	require.Equal(t, "file_db", cfg.MySQL.DB)
	require.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	require.False(t, cfg.Sync.Enabled)
}

func TestMySQLDSN(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("MYSQL_USER", "app")
	t.Setenv("MYSQL_PASSWORD", "secret")
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("MYSQL_DATABASE", "sync")
	t.Setenv("MYSQL_PARAMS", "parseTime=true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "app:secret@tcp(db.internal:3307)/sync?parseTime=true", cfg.MySQLDSN())
}

func TestGetEnvAsIntBadValueFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	require.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
}
