package confs

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type MongoConfig struct {
	URI                  string
	Database             string
	PropertiesCollection string
	UsersCollection      string
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type Config struct {
	Port         string
	GinMode      string
	Store        string
	Database     DatabaseConfig
	Mongo        MongoConfig
	// SeedUsers is a JSON file of accounts loaded into the memory store.
	SeedUsers    string
	JWTSecret    string
	AMQP         AMQPConfig
	LogLevel     slog.Level
	LogJSON      bool
	AllowOrigins []string
}

// LoadConfig loads environment variables from a .env file if present
// and reads the service settings from the environment.
func LoadConfig() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env", "error", err)
	}

	cfg := &Config{
		Port:    getEnv("PORT", "3536"),
		GinMode: os.Getenv("GIN_MODE"),
		Store:   strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		Database: DatabaseConfig{
			URL:      os.Getenv("DB_URL"),
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		Mongo: MongoConfig{
			URI:                  getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:             getEnv("MONGO_DATABASE", "rentals"),
			PropertiesCollection: getEnv("MONGO_COLLECTION_PROPERTIES", "properties"),
			UsersCollection:      getEnv("MONGO_COLLECTION_USERS", "users"),
		},
		SeedUsers: os.Getenv("MEMORY_SEED_USERS"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		AMQP: AMQPConfig{
			URL:      os.Getenv("AMQP_URL"),
			Exchange: getEnv("AMQP_EXCHANGE", "listings"),
		},
		LogLevel:     parseLogLevel(os.Getenv("LOG_LEVEL")),
		LogJSON:      strings.EqualFold(os.Getenv("LOG_FORMAT"), "json"),
		AllowOrigins: splitList(os.Getenv("CORS_ALLOW_ORIGINS")),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	switch cfg.Store {
	case StoreMongo, StorePostgres, StoreMemory:
	default:
		return nil, errors.New("STORE_DRIVER must be mongo, postgres or memory")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
