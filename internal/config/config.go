package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DB     DBConfig
	Server ServerConfig
	Admin  AdminConfig
	Orders OrdersConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type ServerConfig struct {
	Port string
}

type AdminConfig struct {
	Password string // shared staff secret; empty disables the whole admin surface
}

type OrdersConfig struct {
	StrictStatusFlow bool // forward-only fulfillment transitions
	SeedMenu         bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "smokehouse"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Admin: AdminConfig{
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Orders: OrdersConfig{
			StrictStatusFlow: getEnv("STRICT_STATUS_FLOW", "false") == "true",
			SeedMenu:         getEnv("SEED_MENU", "false") == "true",
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
