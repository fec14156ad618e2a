// Package config loads the application configuration once at startup.
// Values come from built-in defaults, an optional YAML file, a .env file and
// the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Security SecurityConfig `yaml:"security"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	CORS     CORSConfig     `yaml:"cors"`
	Uploads  UploadsConfig  `yaml:"uploads"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Sentry   SentryConfig   `yaml:"sentry"`
	Admin    AdminConfig    `yaml:"admin"`
}

type AppConfig struct {
	Name            string        `yaml:"name" env:"PROJECT_NAME"`
	Version         string        `yaml:"version" env:"VERSION"`
	Debug           bool          `yaml:"debug" env:"DEBUG"`
	Port            string        `yaml:"port" env:"PORT"`
	APIPrefix       string        `yaml:"api_v1_str" env:"API_V1_STR"`
	BasePath        string        `yaml:"base_path" env:"BASE_PATH"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

type SecurityConfig struct {
	SecretKey                string `yaml:"secret_key" env:"SECRET_KEY"`
	Algorithm                string `yaml:"algorithm" env:"ALGORITHM"`
	AccessTokenExpireMinutes int    `yaml:"access_token_expire_minutes" env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	SignedPayload            string `yaml:"signed_payload" env:"API_SIGNED_PAYLOAD"`
}

type DatabaseConfig struct {
	DSN         string `yaml:"dsn" env:"DATABASE_URL"`
	Host        string `yaml:"host" env:"DB_HOST"`
	Port        int    `yaml:"port" env:"DB_PORT"`
	User        string `yaml:"user" env:"DB_USER"`
	Password    string `yaml:"password" env:"DB_PASSWORD"`
	Name        string `yaml:"name" env:"DB_NAME"`
	SSLMode     string `yaml:"sslmode" env:"DB_SSLMODE"`
	PoolSize    int    `yaml:"pool_size" env:"DB_POOL_SIZE"`
	MaxOverflow int    `yaml:"max_overflow" env:"DB_MAX_OVERFLOW"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins" env:"CORS_ORIGINS" envSeparator:","`
	Methods []string `yaml:"methods" env:"CORS_METHODS" envSeparator:","`
	Headers []string `yaml:"headers" env:"CORS_HEADERS" envSeparator:","`
}

type UploadsConfig struct {
	Dir          string `yaml:"dir" env:"UPLOAD_DIR"`
	MaxSizeBytes int64  `yaml:"max_size_bytes" env:"UPLOAD_MAX_SIZE_BYTES"`
}

type RabbitMQConfig struct {
	URL           string `yaml:"url" env:"RABBITMQ_URL"`
	FeedbackQueue string `yaml:"feedback_queue" env:"RABBITMQ_FEEDBACK_QUEUE"`
}

type SentryConfig struct {
	DSN         string `yaml:"dsn" env:"SENTRY_DSN"`
	Environment string `yaml:"environment" env:"SENTRY_ENVIRONMENT"`
}

// AdminConfig describes the superuser created at startup when both fields are set.
type AdminConfig struct {
	Email    string `yaml:"email" env:"ADMIN_EMAIL"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD"`
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:            "Muhajir Foundation API",
			Version:         "1.0.0",
			Port:            "8080",
			APIPrefix:       "/api/v1",
			BasePath:        "/",
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			Algorithm:                "HS256",
			AccessTokenExpireMinutes: 30,
			SignedPayload:            "all",
		},
		Database: DatabaseConfig{
			Port:        5432,
			SSLMode:     "disable",
			PoolSize:    5,
			MaxOverflow: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
			Methods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			Headers: []string{"Origin", "Content-Type", "Accept", "Authorization", "x-api-key", "x-api-signature"},
		},
		Uploads: UploadsConfig{
			Dir:          "./uploads",
			MaxSizeBytes: 50 << 20,
		},
		RabbitMQ: RabbitMQConfig{
			FeedbackQueue: "feedback_notifications",
		},
	}
}

// Load builds the configuration. yamlPath may point to a missing file, in
// which case only defaults and the environment are used.
func Load(yamlPath string) (*Config, error) {
	cfg := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", yamlPath, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", yamlPath, err)
		}
	}

	// .env is optional; variables already set in the process win
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Database.DSN == "" && (c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "") {
		return errors.New("missing database settings: set DATABASE_URL or DB_HOST, DB_USER and DB_NAME")
	}
	if c.Security.SecretKey == "" && !c.App.Debug {
		return errors.New("SECRET_KEY must be set outside debug mode")
	}
	if c.Security.Algorithm != "HS256" {
		return fmt.Errorf("unsupported token algorithm %q", c.Security.Algorithm)
	}
	if c.Security.SignedPayload == "" {
		return errors.New("API_SIGNED_PAYLOAD must not be empty")
	}
	return nil
}

// DatabaseURL returns the explicit DSN when set, otherwise one built from parts.
func (c *Config) DatabaseURL() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Name, c.Database.SSLMode)
}

// AccessTokenTTL returns the lifetime of issued bearer tokens.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.Security.AccessTokenExpireMinutes) * time.Minute
}
