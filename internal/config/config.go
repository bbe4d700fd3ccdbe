package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	DatabasePath    string // local sqlite file (operator accounts + offline shift cache)
	JWTSecret       string
	CORSOrigins     string
	HeadOfficeURL   string // base URL of the head-office API
	HeadOfficeToken string // bearer token for the head-office API
	StationID       string // this station's id at the head office
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabasePath:    getEnv("DATABASE_PATH", "./fuelpos.db"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		HeadOfficeURL:   getEnv("HEAD_OFFICE_URL", ""),
		HeadOfficeToken: getEnv("HEAD_OFFICE_TOKEN", ""),
		StationID:       getEnv("STATION_ID", ""),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment variable is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.HeadOfficeURL == "" {
		log.Fatal("[FATAL] HEAD_OFFICE_URL environment variable is not set")
	}
	if cfg.StationID == "" {
		log.Fatal("[FATAL] STATION_ID environment variable is not set")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS is using the default value, set your own domain for production")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
