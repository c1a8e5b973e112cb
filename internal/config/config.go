package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig
	Auth      AuthConfig
	Meta      MetaConfig
	Services  ServicesConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Reconcile ReconcileConfig
	RateLimit RateLimitConfig
	Server    ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string

	// AutoMigrate applies embedded schema migrations on startup
	AutoMigrate bool
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	JWTSecret string
}

// MetaConfig holds the Meta app credentials and Graph API settings
type MetaConfig struct {
	AppID              string
	AppSecret          string
	RedirectURI        string
	GraphVersion       string
	GraphBaseURL       string
	RequestTimeout     time.Duration
	WebhookVerifyToken string
}

// ServicesConfig holds external service API keys and configuration
type ServicesConfig struct {
	ResendAPIKey       string
	DefaultEmailSender string
	WebAppURI          string
}

// RedisConfig holds Redis connection settings. Redis backs the per-ad publish lock
// and the asynq job queue.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port for the Redis server
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// KafkaConfig holds Kafka/event streaming configuration
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether any broker is configured
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// ReconcileConfig controls the background status reconciliation job
type ReconcileConfig struct {
	Interval  string
	BatchSize int

	// Delay before the first status check of a freshly submitted ad
	InitialDelay time.Duration
}

// Every returns the sweep interval when Interval uses the "@every <duration>"
// form, and five minutes otherwise.
func (r ReconcileConfig) Every() time.Duration {
	expr := strings.TrimSpace(r.Interval)
	if !strings.HasPrefix(expr, "@every ") {
		return 5 * time.Minute
	}
	d, err := time.ParseDuration(strings.TrimSpace(strings.TrimPrefix(expr, "@every ")))
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// RateLimitConfig caps per-user requests to endpoints that call Meta
type RateLimitConfig struct {
	PerMinute int
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current process environment
func FromEnv() (*Config, error) {
	cfg := &Config{}

	// Database configuration
	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate, err = strconv.ParseBool(getEnvWithDefault("DB_AUTO_MIGRATE", "true")); err != nil {
		return nil, fmt.Errorf("failed to parse DB_AUTO_MIGRATE: %w", err)
	}

	// Auth configuration
	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}

	// Meta configuration
	if cfg.Meta.AppID, err = requireEnv("META_APP_ID"); err != nil {
		return nil, err
	}
	if cfg.Meta.AppSecret, err = requireEnv("META_APP_SECRET"); err != nil {
		return nil, err
	}
	if cfg.Meta.RedirectURI, err = requireEnv("META_REDIRECT_URI"); err != nil {
		return nil, err
	}
	cfg.Meta.GraphVersion = getEnvWithDefault("META_GRAPH_VERSION", "v21.0")
	cfg.Meta.GraphBaseURL = getEnvWithDefault("META_GRAPH_BASE_URL", "https://graph.facebook.com")
	cfg.Meta.WebhookVerifyToken = os.Getenv("META_WEBHOOK_VERIFY_TOKEN")

	timeoutSeconds, err := strconv.Atoi(getEnvWithDefault("META_REQUEST_TIMEOUT_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse META_REQUEST_TIMEOUT_SECONDS: %w", err)
	}
	cfg.Meta.RequestTimeout = time.Duration(timeoutSeconds) * time.Second

	// Services configuration
	cfg.Services.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Services.DefaultEmailSender = getEnvWithDefault("DEFAULT_EMAIL_SENDER_ADDRESS", "noreply@adcraft.app")
	if cfg.Services.WebAppURI, err = requireEnv("WEBAPP_URI"); err != nil {
		return nil, err
	}

	// Redis configuration
	cfg.Redis.Enabled = getEnvWithDefault("REDIS_ENABLED", "true") == "true"
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.Port, err = strconv.Atoi(getEnvWithDefault("REDIS_PORT", "6379")); err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_PORT: %w", err)
	}
	if cfg.Redis.DB, err = strconv.Atoi(getEnvWithDefault("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_DB: %w", err)
	}

	// Kafka configuration
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
	}
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "ad-lifecycle-events")

	// Reconciliation configuration
	cfg.Reconcile.Interval = getEnvWithDefault("RECONCILE_INTERVAL", "@every 5m")
	if cfg.Reconcile.BatchSize, err = strconv.Atoi(getEnvWithDefault("RECONCILE_BATCH_SIZE", "50")); err != nil {
		return nil, fmt.Errorf("failed to parse RECONCILE_BATCH_SIZE: %w", err)
	}
	if cfg.Reconcile.InitialDelay, err = time.ParseDuration(getEnvWithDefault("RECONCILE_INITIAL_DELAY", "2m")); err != nil {
		return nil, fmt.Errorf("failed to parse RECONCILE_INITIAL_DELAY: %w", err)
	}

	if cfg.RateLimit.PerMinute, err = strconv.Atoi(getEnvWithDefault("RATE_LIMIT_PER_MINUTE", "30")); err != nil {
		return nil, fmt.Errorf("failed to parse RATE_LIMIT_PER_MINUTE: %w", err)
	}

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
