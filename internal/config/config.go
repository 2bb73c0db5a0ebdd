package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string   `mapstructure:"PORT"`
	Env          string   `mapstructure:"ENV"`
	CORSOrigins  []string `mapstructure:"CORS_ORIGINS"`
	SMTPHost     string   `mapstructure:"SMTP_HOST"`
	SMTPPort     int      `mapstructure:"SMTP_PORT"`
	EmailUser    string   `mapstructure:"EMAIL_USER"`
	EmailPass    string   `mapstructure:"EMAIL_PASS"`
	EmailFrom    string   `mapstructure:"EMAIL_FROM"`
	EmailEnabled bool     `mapstructure:"EMAIL_ENABLED"`
	SeedDemo     bool     `mapstructure:"SEED_DEMO"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("EMAIL_ENABLED", false)
	v.SetDefault("SEED_DEMO", false)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("SMTP_HOST")
	v.BindEnv("SMTP_PORT")
	v.BindEnv("EMAIL_USER")
	v.BindEnv("EMAIL_PASS")
	v.BindEnv("EMAIL_FROM")
	v.BindEnv("EMAIL_ENABLED")
	v.BindEnv("SEED_DEMO")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Sender returns the From address for outgoing mail, falling back to the
// SMTP account when EMAIL_FROM is unset.
func (c *Config) Sender() string {
	if c.EmailFrom != "" {
		return c.EmailFrom
	}
	return c.EmailUser
}

// Validate checks that the configuration is safe to run. SMTP credentials
// are only required when outgoing email is enabled; with EMAIL_ENABLED
// false the server records confirmations without sending anything.
func (c *Config) Validate() error {
	if c.EmailEnabled {
		if c.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required when EMAIL_ENABLED is true")
		}
		if c.SMTPPort <= 0 {
			return fmt.Errorf("SMTP_PORT must be positive, got %d", c.SMTPPort)
		}
		if c.EmailUser == "" {
			return fmt.Errorf("EMAIL_USER is required when EMAIL_ENABLED is true")
		}
		if c.EmailPass == "" {
			return fmt.Errorf("EMAIL_PASS is required when EMAIL_ENABLED is true")
		}
	}
	return nil
}
