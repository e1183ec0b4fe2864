// Package config loads the booth service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Signup providers selectable with SIGNUP_PROVIDER.
const (
	ProviderMailchimp = "mailchimp"
	ProviderListmonk  = "listmonk"
	ProviderSimulate  = "simulate"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	AllowedFrameAncestors string `env:"ALLOWED_FRAME_ANCESTORS"`

	SignupProvider    string        `env:"SIGNUP_PROVIDER" envDefault:"simulate"`
	MailchimpURL      string        `env:"MAILCHIMP_URL"`
	ListmonkURL       string        `env:"LISTMONK_URL"`
	ListmonkListUUIDs []string      `env:"LISTMONK_LIST_UUIDS" envSeparator:","`
	SimulateDelay     time.Duration `env:"SIMULATE_DELAY" envDefault:"1s"`
	BreakerTimeout    time.Duration `env:"BREAKER_TIMEOUT" envDefault:"30s"`

	SignupRate  float64 `env:"SIGNUP_RATE" envDefault:"0.5"`
	SignupBurst int     `env:"SIGNUP_BURST" envDefault:"5"`

	MediaDir    string `env:"MEDIA_DIR" envDefault:"./public"`
	MediaFile   string `env:"MEDIA_FILE" envDefault:"ETHCannes.mp4"`
	LogoFile    string `env:"LOGO_FILE" envDefault:"logo.png"`
	FFprobePath string `env:"FFPROBE_PATH" envDefault:"ffprobe"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"false"`
	APIDocsEnabled bool `env:"API_DOCS_ENABLED" envDefault:"false"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.SignupProvider = strings.ToLower(strings.TrimSpace(cfg.SignupProvider))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the chosen provider has what it needs.
func (c Config) Validate() error {
	switch c.SignupProvider {
	case ProviderMailchimp:
		if c.MailchimpURL == "" {
			return errors.New("MAILCHIMP_URL is required when SIGNUP_PROVIDER=mailchimp")
		}
		if !strings.Contains(c.MailchimpURL, "/subscribe/post-json") {
			return fmt.Errorf("MAILCHIMP_URL must point at a /subscribe/post-json endpoint, got %q", c.MailchimpURL)
		}
	case ProviderListmonk:
		if c.ListmonkURL == "" {
			return errors.New("LISTMONK_URL is required when SIGNUP_PROVIDER=listmonk")
		}
		if len(c.ListmonkListUUIDs) == 0 {
			return errors.New("LISTMONK_LIST_UUIDS is required when SIGNUP_PROVIDER=listmonk")
		}
	case ProviderSimulate:
	default:
		return fmt.Errorf("unknown SIGNUP_PROVIDER %q", c.SignupProvider)
	}
	if c.SignupRate <= 0 || c.SignupBurst <= 0 {
		return errors.New("SIGNUP_RATE and SIGNUP_BURST must be positive")
	}
	return nil
}
