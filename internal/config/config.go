package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Gateway backends
const (
	BackendREST = "rest"
	BackendSQL  = "sql"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Gateway     GatewayConfig
	Auth        AuthConfig
	Redis       RedisConfig
	Logging     LoggingConfig
	Entitlement EntitlementConfig
	Insights    InsightsConfig
	AI          AIConfig
	Worker      WorkerConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	CORSOrigins     []string
	Environment     string
	RateLimitRPS    float64
	RateLimitBurst  int
}

// IsProduction reports whether the server runs in production.
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig contains database configuration for the sql gateway backend
type DatabaseConfig struct {
	Driver          string // sqlite, postgres or pgx
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// GatewayConfig selects and configures the remote data gateway
type GatewayConfig struct {
	Backend        string
	URL            string
	AnonKey        string
	RequestTimeout time.Duration
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	// JWTSecret verifies access tokens when the sql backend is used.
	JWTSecret     string
	TokenCacheTTL time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// EntitlementConfig contains trial settings
type EntitlementConfig struct {
	TrialLength time.Duration
}

// InsightsConfig contains insight engine settings
type InsightsConfig struct {
	CurrencySymbol string
	Timeout        time.Duration
	// IANA zone that decides "today" and weekdays
	Timezone string
}

// Location loads Timezone, defaulting to UTC
func (c InsightsConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// AIConfig contains the optional OpenAI integration
type AIConfig struct {
	OpenAIAPIKey string
	Model        string
}

// WorkerConfig contains background job configuration
type WorkerConfig struct {
	Enabled          bool
	OverdueSweepSpec string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	frontendURL := getEnv("FRONTEND_URL", "http://localhost:5173")

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     frontendURL,
			CORSOrigins:     getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{frontendURL}),
			Environment:     getEnv("ENVIRONMENT", "development"),
			RateLimitRPS:    getEnvAsFloat("RATE_LIMIT_RPS", 50),
			RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 100),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "freelancehub"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./freelancehub.db"),
		},
		Gateway: GatewayConfig{
			Backend:        getEnv("GATEWAY_BACKEND", BackendSQL),
			URL:            getEnv("GATEWAY_URL", ""),
			AnonKey:        getEnv("GATEWAY_ANON_KEY", ""),
			RequestTimeout: getEnvAsDuration("GATEWAY_TIMEOUT", 15*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			TokenCacheTTL: getEnvAsDuration("AUTH_TOKEN_CACHE_TTL", time.Minute),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Entitlement: EntitlementConfig{
			TrialLength: getEnvAsDuration("TRIAL_LENGTH", 14*24*time.Hour),
		},
		Insights: InsightsConfig{
			CurrencySymbol: getEnv("INSIGHTS_CURRENCY_SYMBOL", "$"),
			Timeout:        getEnvAsDuration("INSIGHTS_TIMEOUT", 10*time.Second),
			Timezone:       getEnv("INSIGHTS_TIMEZONE", "UTC"),
		},
		AI: AIConfig{
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			Model:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Worker: WorkerConfig{
			Enabled:          getEnvAsBool("WORKER_ENABLED", true),
			OverdueSweepSpec: getEnv("WORKER_OVERDUE_SWEEP", "@hourly"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Gateway.Backend {
	case BackendREST:
		if c.Gateway.URL == "" || c.Gateway.AnonKey == "" {
			return fmt.Errorf("GATEWAY_URL and GATEWAY_ANON_KEY must be set for the rest backend")
		}
	case BackendSQL:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET must be set for the sql backend")
		}
		switch c.Database.Driver {
		case "sqlite", "postgres", "pgx":
		default:
			return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported gateway backend: %s", c.Gateway.Backend)
	}

	if c.Entitlement.TrialLength <= 0 {
		return fmt.Errorf("TRIAL_LENGTH must be positive")
	}

	if _, err := c.Insights.Location(); err != nil {
		return fmt.Errorf("invalid INSIGHTS_TIMEZONE %q: %w", c.Insights.Timezone, err)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice splits a comma separated value, dropping empty items
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
