package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddress)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.Equal(t, "fila:resultados", cfg.FilaResultadosKey)
	assert.Equal(t, 3*time.Second, cfg.CPFTimeout())
	assert.Equal(t, 15*time.Second, cfg.WorkerInterval())
	assert.True(t, cfg.AutoMigrate)
}

func TestLoadSobrescreveComAmbiente(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9999")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("CPF_API_TIMEOUT", "7")
	t.Setenv("ANTIFRAUDE_RATE_LIMIT_ENABLED", "false")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddress)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 7*time.Second, cfg.CPFTimeout())
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadRedisDBInvalido(t *testing.T) {
	t.Setenv("REDIS_DB", "nao-numero")

	_, err := Load()
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{
		PostgresHost:     "db",
		PostgresPort:     "5432",
		PostgresUser:     "votacao",
		PostgresPassword: "segredo",
		PostgresDB:       "votacao",
		PostgresSSLMode:  "disable",
	}

	assert.Equal(t, "postgres://votacao:segredo@db:5432/votacao?sslmode=disable", cfg.PostgresDSN())
}

func TestLocation(t *testing.T) {
	cfg := Config{Timezone: "America/Sao_Paulo"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())

	cfg.Timezone = "Marte/Cratera"
	_, err = cfg.Location()
	assert.Error(t, err)
}
