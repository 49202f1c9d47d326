package config

import (
	"os"
	"strconv"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	LogLevel string
	LogJSON  bool

	// SMTP delivery collaborator
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	// Redis (cache + rate limiting); empty addr disables both, fail-open
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Periodic notification runner; 0 disables it
	NotifyInterval time.Duration

	// Notifier message contract: false keeps the legacy cumulative digest
	// bodies, true switches to per-task isolated messages
	IsolatedNotifications bool
}

// Load reads the environment (optionally from .env). DATABASE_URL and
// JWT_SECRET are required, everything else has a default.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	smtpPort := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			smtpPort = n
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			redisDB = n
		}
	}

	cacheTTL := 30 * time.Second
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cacheTTL = time.Duration(n) * time.Second
		}
	}

	// daily by default, matching the original reminder job
	notifyInterval := 24 * time.Hour
	if v := os.Getenv("NOTIFY_INTERVAL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			notifyInterval = time.Duration(n) * time.Minute
		}
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,

		LogLevel: getDefault("LOG_LEVEL", "info"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",

		SMTPHost:     getDefault("SMTP_HOST", "smtp.mailosaur.net"),
		SMTPPort:     smtpPort,
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SenderEmail:  os.Getenv("SENDER_MAIL"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		CacheTTL:      cacheTTL,

		NotifyInterval: notifyInterval,

		IsolatedNotifications: os.Getenv("NOTIFY_ISOLATED_MESSAGES") == "true",
	}
}

func getDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
