// Pacote config centraliza o carregamento das variáveis de ambiente usadas pelos binários.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config agrega todos os parâmetros necessários para API e worker.
type Config struct {
	HTTPAddress string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	FilaResultadosKey  string
	ResultadoKeyPrefix string

	// Fuso civil usado para interpretar e serializar as datas das sessões.
	Timezone string

	CPFAPIURL         string
	CPFTimeoutSeconds int

	RateLimitEnabled       bool
	RateLimitMaxTentativas int
	RateLimitWindowSeconds int
	RateLimitKeyPrefix     string

	AutoMigrate bool

	WorkerIntervalSeconds int
	WorkerMetricsAddress  string
}

func Load() (Config, error) {
	// Defaults priorizam execução local; variáveis permitem sobrescrever em Docker/K8s.
	cfg := Config{
		HTTPAddress:            getEnv("HTTP_ADDRESS", ":8080"),
		PostgresHost:           getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:           getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:           getEnv("POSTGRES_USER", "votacao"),
		PostgresPassword:       getEnv("POSTGRES_PASSWORD", "votacao"),
		PostgresDB:             getEnv("POSTGRES_DB", "votacao"),
		PostgresSSLMode:        getEnv("POSTGRES_SSLMODE", "disable"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		FilaResultadosKey:      getEnv("REDIS_FILA_RESULTADOS", "fila:resultados"),
		ResultadoKeyPrefix:     getEnv("REDIS_RESULTADO_PREFIX", "resultado"),
		Timezone:               getEnv("TIMEZONE", "America/Sao_Paulo"),
		CPFAPIURL:              getEnv("CPF_API_URL", "https://user-info.herokuapp.com/users"),
		CPFTimeoutSeconds:      getEnvAsInt("CPF_API_TIMEOUT", 3),
		RateLimitEnabled:       getEnvAsBool("ANTIFRAUDE_RATE_LIMIT_ENABLED", true),
		RateLimitMaxTentativas: getEnvAsInt("ANTIFRAUDE_RATE_LIMIT_MAX", 10),
		RateLimitWindowSeconds: getEnvAsInt("ANTIFRAUDE_RATE_LIMIT_WINDOW", 60),
		RateLimitKeyPrefix:     getEnv("ANTIFRAUDE_RATE_LIMIT_PREFIX", "ratelimit"),
		AutoMigrate:            getEnvAsBool("DB_AUTO_MIGRATE", true),
		WorkerIntervalSeconds:  getEnvAsInt("WORKER_INTERVAL", 15),
		WorkerMetricsAddress:   getEnv("WORKER_METRICS_ADDRESS", ":9090"),
	}

	dbStr := getEnv("REDIS_DB", "0")
	dbInt, err := strconv.Atoi(dbStr)
	if err != nil {
		return Config{}, fmt.Errorf("config: REDIS_DB invalido: %w", err)
	}
	cfg.RedisDB = dbInt

	return cfg, nil
}

func (c Config) PostgresDSN() string {
	// Mantemos o formato DSN compatível com GORM e ferramentas de migração.
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
		c.PostgresSSLMode,
	)
}

func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: TIMEZONE invalido %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) CPFTimeout() time.Duration {
	return time.Duration(c.CPFTimeoutSeconds) * time.Second
}

func (c Config) WorkerInterval() time.Duration {
	return time.Duration(c.WorkerIntervalSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func getEnvAsBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	switch value {
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return true
	}
}
