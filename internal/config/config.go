package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type ServerConfig struct {
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type AuthConfig struct {
	// JWTSecret is resolved from AUTH_JWT_SECRET; the yaml key exists for
	// local development only and must never hold a production value.
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type StripeConfig struct {
	// APIKey and WebhookSecret come from STRIPE_API_KEY and
	// STRIPE_WEBHOOK_SECRET. Committing live secrets is what this layout
	// exists to prevent.
	APIKey             string        `yaml:"-"`
	WebhookSecret      string        `yaml:"-"`
	MinChargeAmount    int64         `yaml:"min_charge_amount"`   // minor units
	SignatureTolerance time.Duration `yaml:"signature_tolerance"` // webhook clock-skew window
	RequestTimeout     time.Duration `yaml:"request_timeout"`
}

type PaymentConfig struct {
	Stripe StripeConfig `yaml:"stripe"`
}

type Config struct {
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Payment  PaymentConfig  `yaml:"payment"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the yaml file at path, overlays environment-supplied
// secrets, and fills defaults. Flag parsing stays in main.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Secrets always come from the environment when present.
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("AUTH_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	cfg.Payment.Stripe.APIKey = os.Getenv("STRIPE_API_KEY")
	cfg.Payment.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")

	applyDefaults(&cfg)

	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required (or DATABASE_URL)")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth jwt secret is required (AUTH_JWT_SECRET)")
	}
	if !dev {
		if cfg.Payment.Stripe.APIKey == "" {
			return nil, errors.New("STRIPE_API_KEY is required")
		}
		if cfg.Payment.Stripe.WebhookSecret == "" {
			return nil, errors.New("STRIPE_WEBHOOK_SECRET is required")
		}
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = 24 * time.Hour
	}
	if cfg.Auth.TokenTTL <= 0 {
		cfg.Auth.TokenTTL = 30 * time.Minute
	}
	if cfg.Payment.Stripe.MinChargeAmount <= 0 {
		cfg.Payment.Stripe.MinChargeAmount = 100
	}
	if cfg.Payment.Stripe.SignatureTolerance <= 0 {
		cfg.Payment.Stripe.SignatureTolerance = 5 * time.Minute
	}
	if cfg.Payment.Stripe.RequestTimeout <= 0 {
		cfg.Payment.Stripe.RequestTimeout = 10 * time.Second
	}
}
