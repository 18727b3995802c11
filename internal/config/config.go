package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Session (fingerprint-bound, no passwords)
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	// Link prober
	HealthTimeout         time.Duration
	BatchHealthTimeout    time.Duration
	BatchProbeConcurrency int
	PreviewURLTemplate    string

	// Rate limits (requests per minute per IP)
	APIRateLimit    int
	AccessRateLimit int

	// Server
	Port        string
	CORSOrigins string
	AppEnv      string
	SentryDSN   string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to read .env file", "error", err)
	}

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "apphub"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "apphub.db"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    parseDuration(getEnv("SESSION_TTL", "720h"), 720*time.Hour),
		CookieSecure:  parseBool(getEnv("COOKIE_SECURE", "false")),

		HealthTimeout:         parseDuration(getEnv("HEALTH_TIMEOUT", "10s"), 10*time.Second),
		BatchHealthTimeout:    parseDuration(getEnv("BATCH_HEALTH_TIMEOUT", "5s"), 5*time.Second),
		BatchProbeConcurrency: parseInt(getEnv("BATCH_PROBE_CONCURRENCY", "8"), 8),
		PreviewURLTemplate:    getEnv("PREVIEW_URL_TEMPLATE", "https://image.thum.io/get/width/1200/crop/800/{url}"),

		APIRateLimit:    parseInt(getEnv("API_RATE_LIMIT", "120"), 120),
		AccessRateLimit: parseInt(getEnv("ACCESS_RATE_LIMIT", "30"), 30),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		AppEnv:      getEnv("APP_ENV", "development"),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}
