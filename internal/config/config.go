// AngelaMos | 2026
// config.go

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	Billing   BillingConfig   `koanf:"billing"`
	SMTP      SMTPConfig      `koanf:"smtp"`
	AI        AIConfig        `koanf:"ai"`
	Storage   StorageConfig   `koanf:"storage"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	BaseURL     string `koanf:"base_url"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

// JWTConfig carries one secret per auth realm. The two secrets are
// configured independently and never derived from each other.
type JWTConfig struct {
	StaffSecret  string        `koanf:"staff_secret"`
	PortalSecret string        `koanf:"portal_secret"`
	Expire       time.Duration `koanf:"expire"`
	Issuer       string        `koanf:"issuer"`
}

type BillingConfig struct {
	RoundingIncrement int     `koanf:"rounding_increment"`
	DefaultTaxRate    float64 `koanf:"default_tax_rate"`
	PaymentTermsDays  int     `koanf:"payment_terms_days"`
	DefaultHourlyRate float64 `koanf:"default_hourly_rate"`
}

type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
	FromName string `koanf:"from_name"`
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

type AIConfig struct {
	APIKey       string        `koanf:"api_key"`
	BaseURL      string        `koanf:"base_url"`
	Model        string        `koanf:"model"`
	SystemPrompt string        `koanf:"system_prompt"`
	Timeout      time.Duration `koanf:"timeout"`
}

func (a AIConfig) Enabled() bool {
	return a.APIKey != ""
}

type StorageConfig struct {
	Endpoint      string        `koanf:"endpoint"`
	AccessKey     string        `koanf:"access_key"`
	SecretKey     string        `koanf:"secret_key"`
	Bucket        string        `koanf:"bucket"`
	UseSSL        bool          `koanf:"use_ssl"`
	PresignExpiry time.Duration `koanf:"presign_expiry"`
	PrivatePrefix string        `koanf:"private_prefix"`
}

func (s StorageConfig) Enabled() bool {
	return s.Endpoint != "" && s.Bucket != ""
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Burst    int           `koanf:"burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace"`
}

// Load builds the configuration from defaults, an optional YAML file, an
// optional .env file and the process environment, in that order of
// precedence.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "LawCRM",
		"app.version":     "1.0.0",
		"app.environment": "development",
		"app.base_url":    "http://localhost:5000",

		"server.host":             "0.0.0.0",
		"server.port":             5000,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "60s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",
		"database.auto_migrate":       true,

		"redis.pool_size":      10,
		"redis.min_idle_conns": 2,

		"jwt.expire": "168h",
		"jwt.issuer": "lawcrm",

		"billing.rounding_increment":  6,
		"billing.default_tax_rate":    0.0,
		"billing.payment_terms_days":  30,
		"billing.default_hourly_rate": 250.0,

		"smtp.port":      587,
		"smtp.from_name": "LawCRM",

		"ai.base_url": "https://api.openai.com/v1",
		"ai.model":    "gpt-4o-mini",
		"ai.timeout":  "60s",
		"ai.system_prompt": "You are a legal practice assistant for a law firm. " +
			"Answer questions about case management, billing, deadlines and " +
			"legal procedure concisely. You are not a substitute for attorney judgment.",

		"storage.use_ssl":        true,
		"storage.presign_expiry": "15m",
		"storage.private_prefix": "uploads",

		"rate_limit.requests": 300,
		"rate_limit.window":   "1m",
		"rate_limit.burst":    50,

		"cors.allowed_origins": []string{"http://localhost:5173"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "lawcrm-api",

		"metrics.enabled":   true,
		"metrics.namespace": "lawcrm",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":                "database.url",
	"DATABASE_AUTO_MIGRATE":       "database.auto_migrate",
	"REDIS_URL":                   "redis.url",
	"NODE_ENV":                    "app.environment",
	"ENVIRONMENT":                 "app.environment",
	"APP_BASE_URL":                "app.base_url",
	"HOST":                        "server.host",
	"PORT":                        "server.port",
	"LOG_LEVEL":                   "log.level",
	"LOG_FORMAT":                  "log.format",
	"JWT_SECRET":                  "jwt.staff_secret",
	"PORTAL_JWT_SECRET":           "jwt.portal_secret",
	"JWT_EXPIRE":                  "jwt.expire",
	"JWT_ISSUER":                  "jwt.issuer",
	"BILLING_ROUNDING_INCREMENT":  "billing.rounding_increment",
	"BILLING_DEFAULT_TAX_RATE":    "billing.default_tax_rate",
	"BILLING_PAYMENT_TERMS_DAYS":  "billing.payment_terms_days",
	"BILLING_DEFAULT_HOURLY_RATE": "billing.default_hourly_rate",
	"SMTP_HOST":                   "smtp.host",
	"SMTP_PORT":                   "smtp.port",
	"SMTP_USER":                   "smtp.username",
	"SMTP_PASS":                   "smtp.password",
	"SMTP_FROM":                   "smtp.from",
	"SMTP_FROM_NAME":              "smtp.from_name",
	"AI_API_KEY":                  "ai.api_key",
	"OPENAI_API_KEY":              "ai.api_key",
	"AI_BASE_URL":                 "ai.base_url",
	"AI_MODEL":                    "ai.model",
	"STORAGE_ENDPOINT":            "storage.endpoint",
	"STORAGE_ACCESS_KEY":          "storage.access_key",
	"STORAGE_SECRET_KEY":          "storage.secret_key",
	"STORAGE_BUCKET":              "storage.bucket",
	"STORAGE_USE_SSL":             "storage.use_ssl",
	"RATE_LIMIT_REQUESTS":         "rate_limit.requests",
	"RATE_LIMIT_WINDOW":           "rate_limit.window",
	"RATE_LIMIT_BURST":            "rate_limit.burst",
	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",
	"METRICS_ENABLED":             "metrics.enabled",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.App.Environment == "production" {
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	if c.JWT.Expire <= 0 {
		return fmt.Errorf("jwt.expire must be positive")
	}

	if c.Billing.RoundingIncrement <= 0 {
		return fmt.Errorf("billing.rounding_increment must be positive")
	}

	return nil
}

// Warnings lists optional settings that are missing. Each one disables or
// weakens a feature rather than preventing startup.
func (c *Config) Warnings() []string {
	var warnings []string

	if c.JWT.StaffSecret == "" {
		warnings = append(warnings, "JWT_SECRET not set: staff sessions use an ephemeral key and will not survive restarts")
	}
	if c.JWT.PortalSecret == "" {
		warnings = append(warnings, "PORTAL_JWT_SECRET not set: portal sessions use an ephemeral key and will not survive restarts")
	}
	if !c.SMTP.Enabled() {
		warnings = append(warnings, "SMTP not configured: invitation and email messages will not be delivered")
	}
	if !c.AI.Enabled() {
		warnings = append(warnings, "AI_API_KEY not set: AI assistant disabled")
	}
	if !c.Storage.Enabled() {
		warnings = append(warnings, "object storage not configured: uploads disabled")
	}
	if !c.Redis.Enabled() {
		warnings = append(warnings, "REDIS_URL not set: rate limiting is per-process")
	}

	return warnings
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
