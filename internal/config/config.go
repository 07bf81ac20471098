// Package config loads marketframed's configuration from the environment
// (and an optional .env file), the way the teacher's internal/config
// package does.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds marketframed's runtime configuration.
type Config struct {
	Port int
	// CORSOrigins lists allowed origins for internal/httpapi's cors
	// middleware; "*" allows any origin.
	CORSOrigins []string

	// Exchanges lists the exchange names (from pkg/exchanges) that
	// internal/jobs.RefreshScheduleJob keeps warm in the schedule cache.
	Exchanges []string

	// RefreshCron is the cron schedule (robfig/cron, seconds field
	// included) on which the schedule cache is recomputed.
	RefreshCron string

	// ScheduleLookbackDays/ScheduleLookaheadDays bound the rolling window
	// RefreshScheduleJob recomputes on each tick.
	ScheduleLookbackDays  int
	ScheduleLookaheadDays int

	LogLevel string
}

// Load reads configuration from the environment, loading a .env file
// first if one is present in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnvAsInt("MARKETFRAME_PORT", 8090),
		CORSOrigins:           getEnvAsList("MARKETFRAME_CORS_ORIGINS", []string{"*"}),
		Exchanges:             getEnvAsList("MARKETFRAME_EXCHANGES", []string{"NYSE", "CME_Bond_Agricultural", "CME_Globex_Crypto", "CBOE"}),
		RefreshCron:           getEnv("MARKETFRAME_REFRESH_CRON", "0 */15 * * * *"),
		ScheduleLookbackDays:  getEnvAsInt("MARKETFRAME_SCHEDULE_LOOKBACK_DAYS", 5),
		ScheduleLookaheadDays: getEnvAsInt("MARKETFRAME_SCHEDULE_LOOKAHEAD_DAYS", 30),
		LogLevel:              getEnv("MARKETFRAME_LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	start := 0
	for i := 0; i <= len(value); i++ {
		if i == len(value) || value[i] == ',' {
			if i > start {
				out = append(out, value[start:i])
			}
			start = i + 1
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
