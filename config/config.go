package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	Telegram TelegramConfig
	API      APIConfig
	Server   ServerConfig
	Screen   ScreenConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type TelegramConfig struct {
	Token string
}

// APIConfig points the screen at the food backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ServerConfig is used by the reference backend (`serve`).
type ServerConfig struct {
	Port string
}

type ScreenConfig struct {
	Lang             string        // "pt" or "en"
	OrderConcurrency int           // 0 = unlimited in-flight order requests
	SessionStore     string        // "memory" or "postgres"
	SessionTTL       time.Duration // screens idle longer than this are dropped; 0 keeps them
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	timeoutSec, _ := strconv.Atoi(getEnv("API_TIMEOUT_SECONDS", "10"))
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	ttlMin, _ := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "720"))
	if ttlMin < 0 {
		ttlMin = 0
	}
	concurrency, _ := strconv.Atoi(getEnv("ORDER_CONCURRENCY", "0"))
	if concurrency < 0 {
		concurrency = 0
	}

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "foods"),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TOKEN", ""),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3333"), "/"),
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "3333"),
		},
		Screen: ScreenConfig{
			Lang:             getEnv("LANG_CODE", "pt"),
			OrderConcurrency: concurrency,
			SessionStore:     getEnv("SESSION_STORE", "memory"),
			SessionTTL:       time.Duration(ttlMin) * time.Minute,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
