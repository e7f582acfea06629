package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	AutoMigrate bool
	SeedData    bool
	GinMode     string
	LogLevel    string

	MigrationsDir string

	JWTSecret string
	JWTIssuer string

	// RedisAddr empty means rate limit counters live in process memory.
	RedisAddr     string
	RedisPassword string

	SimulationRateLimit  int
	SimulationRateWindow time.Duration

	// TrustedProxies are CIDRs or IPs allowed to set X-Forwarded-For.
	TrustedProxies []string
}

// Load reads the environment, preloading a .env file when one is present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBUser:               getEnv("DB_USER", "authlend"),
		DBPassword:           getEnv("DB_PASSWORD", "authlend_secret"),
		DBName:               getEnv("DB_NAME", "authlend"),
		DBSSLMode:            getEnv("DB_SSLMODE", "disable"),
		AutoMigrate:          getEnvAsBool("AUTO_MIGRATE", false),
		SeedData:             getEnvAsBool("SEED_DATA", false),
		GinMode:              getEnv("GIN_MODE", "debug"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		MigrationsDir:        getEnv("MIGRATIONS_DIR", "file://migrations"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		JWTIssuer:            getEnv("JWT_ISSUER", "authlend"),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		SimulationRateLimit:  getEnvAsInt("SIMULATION_RATE_LIMIT", 7),
		SimulationRateWindow: getEnvAsDuration("SIMULATION_RATE_WINDOW", time.Minute),
		TrustedProxies:       getEnvAsList("TRUSTED_PROXIES"),
	}
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvAsList splits a comma separated value, dropping blanks.
func getEnvAsList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
