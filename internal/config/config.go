package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Session   SessionConfig   `mapstructure:"session"`
	Payment   PaymentConfig   `mapstructure:"payment"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port      int    `mapstructure:"port" envconfig:"SERVER_PORT" default:"8080"`
	BaseURL   string `mapstructure:"base_url" envconfig:"BASE_URL" default:"http://localhost:8080"`
	UploadDir string `mapstructure:"upload_dir" envconfig:"UPLOAD_DIR" default:"uploads"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" envconfig:"DB_HOST" default:"localhost"`
	Port     int    `mapstructure:"port" envconfig:"DB_PORT" default:"5432"`
	User     string `mapstructure:"user" envconfig:"DB_USER" default:"postgres"`
	Password string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name     string `mapstructure:"name" envconfig:"DB_NAME" default:"vaxtrack"`
	SSLMode  string `mapstructure:"sslmode" envconfig:"DB_SSLMODE" default:"disable"`
}

type SessionConfig struct {
	Secret   string `mapstructure:"secret" envconfig:"SESSION_SECRET"`
	TTLHours int    `mapstructure:"ttl_hours" envconfig:"SESSION_TTL_HOURS" default:"24"`
	RedisURL string `mapstructure:"redis_url" envconfig:"SESSION_REDIS_URL"`
}

type PaymentConfig struct {
	StripeSecretKey string `mapstructure:"stripe_secret_key" envconfig:"STRIPE_SECRET_KEY"`
	Currency        string `mapstructure:"currency" envconfig:"PAYMENT_CURRENCY" default:"inr"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"SMTP_PORT" default:"587"`
	User     string `mapstructure:"user" envconfig:"SMTP_USER"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from" envconfig:"SMTP_FROM"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" envconfig:"RATE_LIMIT_RPS" default:"50"`
	Burst int     `mapstructure:"burst" envconfig:"RATE_LIMIT_BURST" default:"100"`
}

// LoadConfig reads config.yaml via viper. When no config file is present
// the configuration is taken from the environment alone.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return loadFromEnv()
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func loadFromEnv() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	if c.Payment.StripeSecretKey == "" {
		return fmt.Errorf("stripe secret key is required")
	}
	return nil
}
