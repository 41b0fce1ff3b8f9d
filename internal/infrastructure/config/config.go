package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Media     MediaConfig
	RateLimit RateLimitConfig

	// NotifyWorkers sizes the background notify worker pool.
	NotifyWorkers int `env:"NOTIFY_WORKERS, default=4"`

	// CORSOrigins lists the allowed origins for browser clients.
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`
}

type AuthConfig struct {
	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET, required"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET, required"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTokenTTL    time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`

	// ResetURL is the frontend page reset links point at; the raw token is
	// appended as a query parameter.
	ResetURL string `env:"PASSWORD_RESET_URL, default=http://localhost:3000/reset-password"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=agency"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=localhost"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=no-reply@studiozeta.dev"`
}

type MediaConfig struct {
	BaseURL string `env:"MEDIA_BASE_URL"`
	APIKey  string `env:"MEDIA_API_KEY"`
	Folder  string `env:"MEDIA_FOLDER, default=agency"`
}

type RateLimitConfig struct {
	// Requests per window allowed on the public intake routes.
	Requests int           `env:"RATE_LIMIT_REQUESTS, default=10"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW,   default=1m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
