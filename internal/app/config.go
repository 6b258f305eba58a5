package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string // Required: HS256 signing secret
	Issuer    string // Issuer claim for tokens (default: summitlog)

	AccessTokenTTL       time.Duration // Session token lifetime (default: 30m)
	OTPTTL               time.Duration // One-time code lifetime (default: 10m)
	DatabaseFile         string        // Path to SQLite database file (default: ./summitlog.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired-record sweep interval (default: 1h)

	SendGridAPIKey string // Optional: blank means mail goes to the log
	MailFromEmail  string
	MailFromName   string

	GoogleClientID     string // Optional: blank disables Google sign-in
	GoogleClientSecret string
	GoogleRedirectURL  string
}

func LoadConfig() Config {
	return Config{
		JWTSecret:            os.Getenv("JWT_SECRET"),
		Issuer:               getEnvOrDefault("TOKEN_ISSUER", "summitlog"),
		AccessTokenTTL:       getEnvDurationOrDefault("ACCESS_TOKEN_TTL", 30*time.Minute),
		OTPTTL:               getEnvDurationOrDefault("OTP_TTL", 10*time.Minute),
		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "summitlog.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFromEmail:  getEnvOrDefault("MAIL_FROM_EMAIL", "noreply@summitlog.dev"),
		MailFromName:   getEnvOrDefault("MAIL_FROM_NAME", "SummitLog"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}
	return defaultValue
}
