package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"TRUSTED_PROXIES", "AUTO_MIGRATE", "REDIS_ADDR", "SIMULATION_RATE_LIMIT", "SIMULATION_RATE_WINDOW"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.False(t, cfg.AutoMigrate)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 7, cfg.SimulationRateLimit)
	assert.Equal(t, time.Minute, cfg.SimulationRateWindow)
	assert.Equal(t, "authlend", cfg.JWTIssuer)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("SEED_DATA", "1")
	t.Setenv("SIMULATION_RATE_LIMIT", "20")
	t.Setenv("SIMULATION_RATE_WINDOW", "30s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, ,192.168.1.1")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.AutoMigrate)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, 20, cfg.SimulationRateLimit)
	assert.Equal(t, 30*time.Second, cfg.SimulationRateWindow)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.TrustedProxies)
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SIMULATION_RATE_LIMIT", "lots")
	t.Setenv("SIMULATION_RATE_WINDOW", "soon")
	t.Setenv("AUTO_MIGRATE", "maybe")

	cfg := Load()

	assert.Equal(t, 7, cfg.SimulationRateLimit)
	assert.Equal(t, time.Minute, cfg.SimulationRateWindow)
	assert.False(t, cfg.AutoMigrate)
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "authlend", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/authlend?sslmode=disable", cfg.DatabaseURL())
}
