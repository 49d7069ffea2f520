package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	SubscribeErrorStyleStandard = "standard"
	SubscribeErrorStyleLegacy   = "legacy"

	AssetSourceLocal = "local"
	AssetSourceR2    = "r2"
)

type MailchimpConfig struct {
	APIKey string
	ListID string
}

type StripeConfig struct {
	SecretKey string
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	AssetKey        string
}

type AssetConfig struct {
	Source       string
	Dir          string
	File         string
	DownloadName string
	R2           R2Config
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	FromName     string
}

// Config is built once at startup and handed to constructors by value.
type Config struct {
	Port                string
	Env                 string
	AllowedOrigins      []string
	SubscribeErrorStyle string
	UpstreamTimeout     time.Duration
	Mailchimp           MailchimpConfig
	Stripe              StripeConfig
	Asset               AssetConfig
	Email               EmailConfig
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                getEnv("PORT", "5002"),
		Env:                 getEnv("APP_ENV", "production"),
		AllowedOrigins:      splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		SubscribeErrorStyle: strings.ToLower(getEnv("SUBSCRIBE_ERROR_STYLE", SubscribeErrorStyleStandard)),
	}

	timeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_TIMEOUT: %w", err)
	}
	cfg.UpstreamTimeout = timeout

	// Mailchimp
	cfg.Mailchimp.APIKey = os.Getenv("MAILCHIMP_API_KEY")
	cfg.Mailchimp.ListID = os.Getenv("MAILCHIMP_LIST_ID")

	// Stripe
	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")

	// Downloadable asset
	cfg.Asset.Source = strings.ToLower(getEnv("ASSET_SOURCE", AssetSourceLocal))
	cfg.Asset.Dir = getEnv("ASSET_DIR", "private")
	cfg.Asset.File = getEnv("ASSET_FILE", "top-funders-2025.pdf")
	cfg.Asset.DownloadName = getEnv("ASSET_DOWNLOAD_NAME", "Top-Funders-of-2025.pdf")
	cfg.Asset.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.Asset.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.Asset.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.Asset.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.Asset.R2.AssetKey = getEnv("R2_ASSET_KEY", cfg.Asset.File)

	// Welcome email (optional)
	cfg.Email.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "Top Funders")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem at once so a misconfigured deploy fails with
// the full list.
func (c Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, errors.New("UPSTREAM_TIMEOUT must be positive"))
	}
	if len(c.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must list at least one origin"))
	}
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS cannot contain * while credentials are allowed"))
		}
	}

	switch c.SubscribeErrorStyle {
	case SubscribeErrorStyleStandard, SubscribeErrorStyleLegacy:
	default:
		errs = append(errs, fmt.Errorf("unknown SUBSCRIBE_ERROR_STYLE %q", c.SubscribeErrorStyle))
	}

	if c.Mailchimp.APIKey == "" {
		errs = append(errs, errors.New("MAILCHIMP_API_KEY is required"))
	} else if !strings.Contains(c.Mailchimp.APIKey, "-") {
		errs = append(errs, errors.New("MAILCHIMP_API_KEY must end with a data center suffix, e.g. -us21"))
	}
	if c.Mailchimp.ListID == "" {
		errs = append(errs, errors.New("MAILCHIMP_LIST_ID is required"))
	}
	if c.Stripe.SecretKey == "" {
		errs = append(errs, errors.New("STRIPE_SECRET_KEY is required"))
	}

	switch c.Asset.Source {
	case AssetSourceLocal:
		if c.Asset.Dir == "" || c.Asset.File == "" {
			errs = append(errs, errors.New("ASSET_DIR and ASSET_FILE are required for local assets"))
		}
	case AssetSourceR2:
		r2 := c.Asset.R2
		if r2.AccountID == "" || r2.AccessKeyID == "" || r2.SecretAccessKey == "" || r2.Bucket == "" || r2.AssetKey == "" {
			errs = append(errs, errors.New("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET and R2_ASSET_KEY are required for r2 assets"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown ASSET_SOURCE %q", c.Asset.Source))
	}
	if c.Asset.DownloadName == "" {
		errs = append(errs, errors.New("ASSET_DOWNLOAD_NAME must not be empty"))
	}

	if c.Email.ResendAPIKey != "" && c.Email.FromAddress == "" {
		errs = append(errs, errors.New("EMAIL_FROM_ADDRESS is required when RESEND_API_KEY is set"))
	}

	return errors.Join(errs...)
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// WelcomeEmailEnabled reports whether subscriptions should trigger a welcome email.
func (c Config) WelcomeEmailEnabled() bool {
	return c.Email.ResendAPIKey != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
