package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type (
	Container struct {
		App   *App
		Token *Token
		DB    *DB
		HTTP  *HTTP
		Redis *Redis
	}

	App struct {
		Name string
		Env  string
	}

	Token struct {
		Secret   string
		Duration string
	}

	DB struct {
		URL      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	HTTP struct {
		Env            string
		Host           string
		Port           string
		AllowedOrigins string
		StaticDir      string
	}

	Redis struct {
		Address  string
		Password string
	}
)

func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		// Missing .env is fine; real env vars still apply.
		_ = godotenv.Load()
	}

	app := &App{
		Name: getEnv("APP_NAME", "motor-rental-service"),
		Env:  os.Getenv("APP_ENV"),
	}

	token := &Token{
		Secret:   os.Getenv("TOKEN_SECRET"),
		Duration: getEnv("TOKEN_DURATION", "24h"),
	}

	db := &DB{
		URL:      os.Getenv("DATABASE_URL"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
	}

	http := &HTTP{
		Env:            os.Getenv("APP_ENV"),
		Host:           getEnv("HTTP_HOST", "0.0.0.0"),
		Port:           getEnv("HTTP_PORT", "8000"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		StaticDir:      getEnv("STATIC_DIR", "./static"),
	}

	redis := &Redis{
		Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	return &Container{
		App:   app,
		Token: token,
		DB:    db,
		HTTP:  http,
		Redis: redis,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// DSN prefers DATABASE_URL and otherwise assembles a connection string from
// the discrete DB_* variables.
func (d *DB) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// DurationParsed returns the configured token lifetime, defaulting to 24h on
// a bad value.
func (t *Token) DurationParsed() time.Duration {
	duration, err := time.ParseDuration(t.Duration)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}
