package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Email         EmailConfig
	Enquiry       EnquiryConfig
	Monitoring    MonitoringConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

// EmailConfig configures the transactional email provider (Resend).
type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string // verified sender address
	DryRun       bool   // log the enquiry email instead of sending it
}

// EnquiryConfig holds the fixed parts of the enquiry notification email.
type EnquiryConfig struct {
	SenderName   string
	Recipient    string
	Subject      string
	MaxBodyBytes int64
}

// MonitoringConfig configures error reporting (Sentry).
type MonitoringConfig struct {
	DSN      string
	Revision string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8081")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "http://localhost:8081")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://magicace.co.uk,https://www.magicace.co.uk")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("EMAIL_DRY_RUN", false)
	v.SetDefault("ENQUIRY_SENDER_NAME", "Magic Ace")
	v.SetDefault("ENQUIRY_RECIPIENT", "keeghan@magicace.co.uk")
	v.SetDefault("ENQUIRY_SUBJECT", "New Enquiry")
	v.SetDefault("ENQUIRY_MAX_BODY_BYTES", 100*1024)
	v.SetDefault("REVISION", "unknown")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "") // OTLP over HTTP, empty disables tracing
	v.SetDefault("O11Y_BE_SERVICE_NAME", "enquiry-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "magicace-web")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "enquiry-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        strings.TrimRight(v.GetString("BASE_URL"), "/"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		Email: EmailConfig{
			ResendAPIKey: v.GetString("RESEND_API_KEY"),
			FromAddress:  v.GetString("RESEND_FROM_EMAIL"),
			DryRun:       v.GetBool("EMAIL_DRY_RUN"),
		},
		Enquiry: EnquiryConfig{
			SenderName:   v.GetString("ENQUIRY_SENDER_NAME"),
			Recipient:    v.GetString("ENQUIRY_RECIPIENT"),
			Subject:      v.GetString("ENQUIRY_SUBJECT"),
			MaxBodyBytes: v.GetInt64("ENQUIRY_MAX_BODY_BYTES"),
		},
		Monitoring: MonitoringConfig{
			DSN:      v.GetString("SENTRY_DSN"),
			Revision: v.GetString("REVISION"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList parses a comma-separated value, dropping empty entries
func splitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	// Email provider
	if !c.Email.DryRun && c.Email.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required unless EMAIL_DRY_RUN is set")
	}
	if c.Email.FromAddress == "" {
		return fmt.Errorf("RESEND_FROM_EMAIL is required")
	}

	// Enquiry email
	if c.Enquiry.Recipient == "" {
		return fmt.Errorf("ENQUIRY_RECIPIENT is required")
	}
	if c.Enquiry.Subject == "" {
		return fmt.Errorf("ENQUIRY_SUBJECT is required")
	}
	if c.Enquiry.MaxBodyBytes <= 0 {
		return fmt.Errorf("ENQUIRY_MAX_BODY_BYTES must be positive")
	}

	// Server configuration
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// EnquiryEndpointURL is the absolute URL the enquiry form posts to
func (c *Config) EnquiryEndpointURL() string {
	return c.Server.BaseURL + "/api/enquiry"
}

// SenderAddress formats the From header of the enquiry email
func (c *Config) SenderAddress() string {
	if c.Enquiry.SenderName == "" {
		return c.Email.FromAddress
	}
	return fmt.Sprintf("%s <%s>", c.Enquiry.SenderName, c.Email.FromAddress)
}
