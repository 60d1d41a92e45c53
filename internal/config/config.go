package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	RefData  RefDataConfig
	NATS     NATSConfig
	JWT      JWTConfig
	Dispatch DispatchConfig
}

type ServerConfig struct {
	Port string
}

type StoreConfig struct {
	Path string
}

type RefDataConfig struct {
	Driver string
	DSN    string
}

type NATSConfig struct {
	URL     string
	Subject string
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

type DispatchConfig struct {
	QueueSize int
}

func Load() *Config {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Store: StoreConfig{
			Path: getEnv("STORE_PATH", "data/social"),
		},
		RefData: RefDataConfig{
			Driver: getEnv("REFDATA_DRIVER", "sqlite"),
			DSN:    getEnv("REFDATA_DSN", "data/refdata.db"),
		},
		NATS: NATSConfig{
			URL:     getEnv("NATS_URL", ""),
			Subject: getEnv("NATS_SUBJECT", "notify.user"),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "change-me-in-production"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Dispatch: DispatchConfig{
			QueueSize: getEnvAsInt("DISPATCH_QUEUE_SIZE", 1000),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
