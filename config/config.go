package config

import (
	"os"
	"strconv"
	"time"
)

// Config collects every runtime toggle in one injected struct so that nothing
// billing-related hides behind a module-level constant.
type Config struct {
	Port           string
	BodyLimitBytes int
	AllowedOrigins string

	RateLimitMax    int
	RateLimitWindow time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// StockEnforcement rejects sales/reservations that would drive a product's
	// main pool negative. Off means stock still moves but is never blocking.
	StockEnforcement bool

	// SweepInterval is how often the background sweep wakes up; SweepDayOfMonth
	// is the day on which last month's bills are auto-generated.
	SweepInterval   time.Duration
	SweepDayOfMonth int
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Load reads the configuration from the environment (after godotenv has run).
func Load() Config {
	bodyLimit := envInt("BODY_LIMIT_BYTES", 0)
	if bodyLimit <= 0 {
		bodyLimit = envInt("BODY_LIMIT_MB", 4) * 1024 * 1024
	}

	return Config{
		Port:             envStr("PORT", "8080"),
		BodyLimitBytes:   bodyLimit,
		AllowedOrigins:   envStr("ALLOWED_ORIGINS", "*"),
		RateLimitMax:     envInt("RATE_LIMIT_MAX", 60),
		RateLimitWindow:  time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		DBHost:           envStr("DB_HOST", "db"),
		DBPort:           envStr("DB_PORT", "5432"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		StockEnforcement: envBool("STOCK_ENFORCEMENT", true),
		SweepInterval:    time.Duration(envInt("SWEEP_INTERVAL_MINUTES", 60)) * time.Minute,
		SweepDayOfMonth:  envInt("SWEEP_DAY_OF_MONTH", 1),
	}
}
