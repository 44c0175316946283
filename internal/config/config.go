package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/noorcentre/donations-api/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Sanity     SanityConfig     `validate:"required"`
	Stripe     StripeConfig     `validate:"required"`
	Donation   DonationConfig   `validate:"required"`
	Sentry     SentryConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// SanityConfig points at the hosted content store holding campaign
// documents. Public datasets read without a token.
type SanityConfig struct {
	ProjectID      string `mapstructure:"project_id"`
	Dataset        string `validate:"required"`
	APIVersion     string `mapstructure:"api_version"`
	Token          string
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// BaseURL overrides the project-derived API origin; used by tests and
	// proxied deployments.
	BaseURL string `mapstructure:"base_url"`
}

// QueryURL returns the GROQ query endpoint for the configured dataset.
func (c SanityConfig) QueryURL() string {
	version := c.APIVersion
	if version == "" {
		version = "v2023-08-01"
	}
	origin := c.BaseURL
	if origin == "" {
		origin = fmt.Sprintf("https://%s.api.sanity.io", c.ProjectID)
	}
	return fmt.Sprintf("%s/%s/data/query/%s", strings.TrimRight(origin, "/"), version, c.Dataset)
}

func (c SanityConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StripeConfig holds the processor key and the redirect URL templates.
// The URL templates may contain a {slug} placeholder that is replaced with
// the campaign slug per request.
type StripeConfig struct {
	SecretKey      string `mapstructure:"secret_key" validate:"required"`
	Currency       string `validate:"required"`
	SuccessURL     string `mapstructure:"success_url" validate:"required"`
	CancelURL      string `mapstructure:"cancel_url" validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (c StripeConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DonationConfig holds the organisation-level billing defaults. Timezone is
// the fixed civil timezone every "today" calculation uses, regardless of
// where the service runs.
type DonationConfig struct {
	Timezone string `validate:"required"`
}

func (c DonationConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64 `mapstructure:"sample_rate"`
}

func NewConfig() (*Configuration, error) {
	// Local development keeps secrets in a .env file; missing is fine.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/donations")

	v.SetEnvPrefix("DONATIONS")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeAPI))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("sanity.api_version", "v2023-08-01")
	v.SetDefault("sanity.dataset", "production")
	v.SetDefault("stripe.currency", "aud")
	v.SetDefault("donation.timezone", "Australia/Sydney")
	v.SetDefault("sentry.sample_rate", 0.1)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := c.Donation.Location(); err != nil {
		return fmt.Errorf("invalid donation timezone %q: %w", c.Donation.Timezone, err)
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// and tests.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelInfo},
		Sanity: SanityConfig{
			ProjectID: "test-project",
			Dataset:   "production",
		},
		Stripe: StripeConfig{
			SecretKey:  "sk_test_dummy",
			Currency:   "aud",
			SuccessURL: "https://donate.example.org/campaigns/{slug}/thank-you",
			CancelURL:  "https://donate.example.org/campaigns/{slug}",
		},
		Donation: DonationConfig{Timezone: "Australia/Sydney"},
	}
}
