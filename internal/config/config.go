package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/osa911/formrelay/internal/contactform"
	"github.com/osa911/formrelay/internal/locale"
	"github.com/osa911/formrelay/internal/logging"
	"github.com/osa911/formrelay/internal/relay"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"API_PORT" envDefault:"8080"`

	// Logging Configuration
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE"`
	LogMaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAge     int    `env:"LOG_MAX_AGE" envDefault:"7"`
	LogRequests   bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// HTTP Configuration
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	RateLimitRPS   int      `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"20"`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" envDefault:"65536"`

	// Relay Configuration
	RelayBaseURL    string        `env:"RELAY_BASE_URL" envDefault:"https://formsubmit.co/ajax"`
	RelayOwnerEmail string        `env:"RELAY_OWNER_EMAIL"`
	RelayTimeout    time.Duration `env:"RELAY_TIMEOUT" envDefault:"30s"`

	// Contact Form Configuration
	ContactSubject     string        `env:"CONTACT_SUBJECT" envDefault:"New Contact Form Submission"`
	ContactNameMode    string        `env:"CONTACT_NAME_MODE" envDefault:"single"`
	ContactStatusClear time.Duration `env:"CONTACT_STATUS_CLEAR" envDefault:"10s"`
	ContactStripHTML   bool          `env:"CONTACT_STRIP_HTML" envDefault:"false"`
	LocalesDir         string        `env:"LOCALES_DIR"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"formrelay"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// godotenv.Load never overrides variables already set, so the most
	// specific file goes first.
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}
	for _, loc := range envLocations {
		if _, err := os.Stat(loc); err == nil {
			if err := godotenv.Load(loc); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", loc, err)
			}
		}
	}

	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.RelayOwnerEmail) == "" {
		errs = append(errs, errors.New("RELAY_OWNER_EMAIL is required"))
	} else if contactform.CheckEmail(c.RelayOwnerEmail) != contactform.EmailOK {
		errs = append(errs, fmt.Errorf("RELAY_OWNER_EMAIL %q is not an email address", c.RelayOwnerEmail))
	}
	if _, err := contactform.ParseNameMode(c.ContactNameMode); err != nil {
		errs = append(errs, fmt.Errorf("CONTACT_NAME_MODE: %w", err))
	}
	if c.RelayTimeout < 0 {
		errs = append(errs, errors.New("RELAY_TIMEOUT must not be negative"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	if c.LocalesDir != "" && !locale.Exists(c.LocalesDir) {
		errs = append(errs, fmt.Errorf("LOCALES_DIR %q is not a directory", c.LocalesDir))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// NameMode returns the parsed contact name mode, defaulting to single.
func (c *Config) NameMode() contactform.NameMode {
	mode, err := contactform.ParseNameMode(c.ContactNameMode)
	if err != nil {
		return contactform.NameSingle
	}
	return mode
}

// LogConfig maps the logging settings onto the logger's configuration.
func (c *Config) LogConfig() *logging.LogConfig {
	return &logging.LogConfig{
		Level:       strings.ToLower(c.LogLevel),
		File:        c.LogFile,
		MaxSize:     c.LogMaxSize,
		MaxBackups:  c.LogMaxBackups,
		MaxAge:      c.LogMaxAge,
		LogRequests: c.LogRequests,
	}
}

// RelayClient builds the FormSubmit client from the relay settings.
func (c *Config) RelayClient() *relay.Client {
	return relay.NewClient(c.RelayOwnerEmail,
		relay.WithBaseURL(c.RelayBaseURL),
		relay.WithTimeout(c.RelayTimeout),
	)
}
