package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	// viper ignora las variables vacías: se usa el valor por defecto
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("RECONCILE_MAX_RETRIES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 8000, cfg.HTTP.Port)
	assert.Equal(t, 3, cfg.Reconcile.MaxRetries)
	assert.Equal(t, time.Second, cfg.Scanner.KeyTimeout)
	assert.True(t, cfg.Scanner.Grab)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SCANNER_KEY_TIMEOUT", "250ms")
	t.Setenv("SCANNER_SEARCH_TIMEOUT", "2")
	t.Setenv("API_HOST", "http://api:8000/")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SCANNER_GRAB", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, 250*time.Millisecond, cfg.Scanner.KeyTimeout)
	assert.Equal(t, 2*time.Second, cfg.Scanner.SearchTimeout)
	assert.Equal(t, "http://api:8000", cfg.Scanner.APIHost)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.False(t, cfg.Scanner.Grab)
	assert.Equal(t, 3, cfg.Reconcile.MaxRetries)
	assert.False(t, cfg.JWT.Enabled())
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/inv?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
