package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	JWTSecret string

	PushEndpoint string

	// Cron expressions for the scheduled jobs.
	AutoExcuseSchedule  string
	StreakResetSchedule string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "12345"),

		PushEndpoint: getEnv("PUSH_ENDPOINT", "https://exp.host/--/api/v2/push/send"),

		// Auto-excuses run once a day, early morning server time.
		AutoExcuseSchedule: getEnv("AUTO_EXCUSE_SCHEDULE", "0 6 * * *"),
		// Streak reset sweeps every 30 minutes so each timezone hits its
		// local-midnight window.
		StreakResetSchedule: getEnv("STREAK_RESET_SCHEDULE", "*/30 * * * *"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
