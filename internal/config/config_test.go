package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// limpia las vars que el loader lee, para que el entorno del CI no interfiera
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "LOG_LEVEL", "PORT", "SERVER_ROLE", "STORE_DRIVER",
		"MONGO_URI", "MONGO_DATABASE", "DATABASE_DSN", "JWT_SECRET", "REDIS_ADDR",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_DefaultsWithSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, "all", cfg.Server.Role)
	assert.Equal(t, "mongo", cfg.Storage.Driver)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, time.Hour, cfg.AccessTTLDuration())

	// Cuotas por clase
	assert.Equal(t, 300, cfg.Rate.Public.Limit)
	assert.Equal(t, 10*time.Minute, cfg.Rate.Public.WindowDuration())
	assert.Equal(t, 100, cfg.Rate.Protected.Limit)
	assert.Equal(t, 30*time.Minute, cfg.Rate.Protected.WindowDuration())
	assert.Equal(t, 10, cfg.Rate.Auth.Limit)
	assert.Equal(t, 10*time.Minute, cfg.Rate.Auth.WindowDuration())
}

func TestLoad_RequiresSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
app:
  env: prod
server:
  addr: ":8080"
  role: product
storage:
  driver: pg
  postgres:
    dsn: postgres://file-dsn
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9999")
	t.Setenv("SERVER_ROLE", "auth")

	cfg, err := Load(path)
	require.NoError(t, err)

	// El entorno gana sobre el archivo
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "auth", cfg.Server.Role)
	// Lo no pisado por el entorno viene del archivo
	assert.Equal(t, "prod", cfg.App.Env)
	assert.Equal(t, "pg", cfg.Storage.Driver)
	assert.Equal(t, "postgres://file-dsn", cfg.Storage.Postgres.DSN)
}

func TestLoad_PortNormalization(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "5000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Addr)

	t.Setenv("PORT", "0.0.0.0:7000")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:7000", cfg.Server.Addr)
}

func TestValidate_Role(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SERVER_ROLE", "banana")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role")
}

func TestValidate_RedisBackendNeedsAddr(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rate:\n  backend: redis\n"), 0o600))

	t.Setenv("JWT_SECRET", "s3cret")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")

	// Con addr por entorno pasa
	t.Setenv("REDIS_ADDR", "localhost:6379")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.Rate.Redis.Addr)
}

func TestAccessTTL(t *testing.T) {
	var c Config

	c.JWT.AccessTTL = "30m"
	assert.Equal(t, 30*time.Minute, c.AccessTTLDuration())

	// "0" explícito: tokens sin expiración
	c.JWT.AccessTTL = "0"
	assert.Equal(t, time.Duration(0), c.AccessTTLDuration())

	// inválido cae al default
	c.JWT.AccessTTL = "whatever"
	assert.Equal(t, time.Hour, c.AccessTTLDuration())
}
