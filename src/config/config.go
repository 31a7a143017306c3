package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port              string
	DatabasePath      string
	LogLevel          string
	JWTSecret         string
	AccessTokenExpiry time.Duration
	DBPingInterval    time.Duration
}

var Cfg *AppConfig

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found. Relying on OS environment variables and defaults.")
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	jwtSecret := getEnv("JWT_SECRET", "your-very-secure-and-long-jwt-secret-key-for-hs256-minimum-32-bytes")
	if jwtSecret == "your-very-secure-and-long-jwt-secret-key-for-hs256-minimum-32-bytes" {
		log.Println("WARNING: Using default insecure JWT_SECRET. Set JWT_SECRET environment variable for production.")
	}

	Cfg = &AppConfig{
		Port:              getEnv("PORT", "5000"),
		DatabasePath:      getEnv("DATABASE_PATH", "./wealthfolio.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		JWTSecret:         jwtSecret,
		AccessTokenExpiry: getEnvAsDuration("ACCESS_TOKEN_EXPIRY", 24*time.Hour),
		DBPingInterval:    getEnvAsDuration("DB_PING_INTERVAL", 15*time.Second),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
