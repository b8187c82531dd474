package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the recruiting API
type Config struct {
	AppName    string
	Port       int
	LogLevel   string
	PrettyLogs bool

	HTTPWriteTimeout time.Duration
	HTTPReadTimeout  time.Duration
	HTTPIdleTimeout  time.Duration

	AllowOrigins []string
	AllowMethods []string

	StaticDir string

	// PostgreSQL
	DatabaseHost                string
	DatabasePort                string
	DatabaseUserName            string
	DatabasePassword            string
	DatabaseName                string
	DatabaseSSLMode             string
	DatabaseReconnectRetryCount int
	DatabaseMaxOpenConns        int
	DatabaseMaxIdleConns        int
	DatabaseConnMaxLifetime     time.Duration
	DatabaseMigrationFolderPath string
	DatabaseMigrationVersion    int

	// Startup seeding
	SeedClients bool

	// Tracing
	TracingEnabled  bool
	TracingEndpoint string
	TracingInsecure bool
	ServiceName     string
}

// Load reads configuration from the environment, with a best-effort .env
// file for local development.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppName:    getEnv("APP_NAME", "srm-api"),
		Port:       getEnvInt("PORT", 8000),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		PrettyLogs: getEnvBool("PRETTY_LOGS", false),

		HTTPWriteTimeout: getEnvDuration("HTTP_SERVER_WRITE_TIMEOUT", 10*time.Second),
		HTTPReadTimeout:  getEnvDuration("HTTP_SERVER_READ_TIMEOUT", 10*time.Second),
		HTTPIdleTimeout:  getEnvDuration("HTTP_SERVER_IDLE_TIMEOUT", 10*time.Second),

		AllowOrigins: getEnvList("HTTP_SERVER_ALLOW_ORIGINS", []string{"*"}),
		AllowMethods: getEnvList("HTTP_SERVER_ALLOW_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE"}),

		StaticDir: getEnv("STATIC_DIR", ""),

		DatabaseHost:                getEnv("DB_HOST", "localhost"),
		DatabasePort:                getEnv("DB_PORT", "5432"),
		DatabaseUserName:            getEnv("DB_USER_NAME", "postgres"),
		DatabasePassword:            getEnv("DB_PASSWORD", ""),
		DatabaseName:                getEnv("DB_NAME", "srm"),
		DatabaseSSLMode:             getEnv("DB_SSL_MODE", "disable"),
		DatabaseReconnectRetryCount: getEnvInt("DB_RECONNECT_RETRY_COUNT", 3),
		DatabaseMaxOpenConns:        getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DatabaseMaxIdleConns:        getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DatabaseConnMaxLifetime:     getEnvDuration("DB_CONN_MAX_LIFETIME", 10*time.Second),
		DatabaseMigrationFolderPath: getEnv("DB_MIGRATION_FOLDER_PATH", "db/pg"),
		DatabaseMigrationVersion:    getEnvInt("DB_MIGRATION_VERSION", 0),

		SeedClients: getEnvBool("SEED_CLIENTS", true),

		TracingEnabled:  getEnvBool("TRACING_ENABLED", false),
		TracingEndpoint: getEnv("TRACING_OTLP_ENDPOINT", "localhost:4317"),
		TracingInsecure: getEnvBool("TRACING_INSECURE", true),
		ServiceName:     getEnv("SERVICE_NAME", "srm-api"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return fallback
}
