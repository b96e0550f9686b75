package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewAppliesDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_NAME", "APP_ENV", "TOKEN_SECRET", "TOKEN_DURATION",
		"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"HTTP_HOST", "HTTP_PORT", "ALLOWED_ORIGINS", "STATIC_DIR",
		"REDIS_ADDRESS", "REDIS_PASSWORD",
	} {
		t.Setenv(key, "")
	}

	cfg, err := New()
	require.NoError(t, err)

	require.Equal(t, "motor-rental-service", cfg.App.Name)
	require.Equal(t, "24h", cfg.Token.Duration)
	require.Equal(t, "localhost", cfg.DB.Host)
	require.Equal(t, "5432", cfg.DB.Port)
	require.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	require.Equal(t, "8000", cfg.HTTP.Port)
	require.Equal(t, "*", cfg.HTTP.AllowedOrigins)
	require.Equal(t, "./static", cfg.HTTP.StaticDir)
	require.Equal(t, "localhost:6379", cfg.Redis.Address)
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("TOKEN_SECRET", "super-secret")
	t.Setenv("TOKEN_DURATION", "12h")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://sewamoto.example.com")

	cfg, err := New()
	require.NoError(t, err)

	require.Equal(t, "production", cfg.App.Env)
	require.Equal(t, "production", cfg.HTTP.Env)
	require.Equal(t, "super-secret", cfg.Token.Secret)
	require.Equal(t, "9090", cfg.HTTP.Port)
	require.Equal(t, "https://sewamoto.example.com", cfg.HTTP.AllowedOrigins)
	require.Equal(t, 12*time.Hour, cfg.Token.DurationParsed())
}

func TestDSN(t *testing.T) {
	db := &DB{
		Host:     "db.internal",
		Port:     "5433",
		User:     "sewamoto",
		Password: "pw",
		Name:     "rental",
	}
	require.Equal(t,
		"host=db.internal port=5433 user=sewamoto password=pw dbname=rental sslmode=disable",
		db.DSN())

	db.URL = "postgres://sewamoto:pw@db.internal:5433/rental"
	require.Equal(t, db.URL, db.DSN())
}

func TestDurationParsedFallsBack(t *testing.T) {
	token := &Token{Duration: "not-a-duration"}
	require.Equal(t, 24*time.Hour, token.DurationParsed())

	token.Duration = "30m"
	require.Equal(t, 30*time.Minute, token.DurationParsed())
}
