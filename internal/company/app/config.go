package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env       string `env:"UPKEEP_ENV"  envDefault:"dev"`  // dev, staging, prod
	LogLevel  string `env:"LOG_LEVEL"   envDefault:"info"` // debug, info, warn, error
	LogFormat string `env:"LOG_FORMAT"  envDefault:"json"` // json, text
	Port      int    `env:"PORT"        envDefault:"8080"`

	DBDriver     string `env:"UPKEEP_DB_DRIVER"     envDefault:"sqlite"` // sqlite, postgres
	DatabaseFile string `env:"UPKEEP_DATABASE_FILE" envDefault:"upkeep.db"`
	DatabaseURL  string `env:"UPKEEP_DATABASE_URL"`

	// Token verification. Keys come from a local file (JWKS or PEM), a
	// remote JWKS endpoint, or both.
	JWTPublicKeyFile string        `env:"UPKEEP_JWT_PUBLIC_KEY_FILE"`
	JWTKeyID         string        `env:"UPKEEP_JWT_KEY_ID"          envDefault:"default"`
	JWKSURL          string        `env:"UPKEEP_JWKS_URL"`
	JWKSRefresh      time.Duration `env:"UPKEEP_JWKS_REFRESH"        envDefault:"10m"`
	JWTIssuer        string        `env:"UPKEEP_JWT_ISSUER"`
	JWTAudience      []string      `env:"UPKEEP_JWT_AUDIENCE"        envSeparator:","`

	Notifier     string `env:"UPKEEP_NOTIFIER"   envDefault:"log"` // log, smtp
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"         envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`
	PublicURL    string `env:"UPKEEP_PUBLIC_URL" envDefault:"http://localhost:8080"`

	// SweepInterval enables the invitation sweeper when positive.
	SweepInterval       time.Duration `env:"UPKEEP_SWEEP_INTERVAL" envDefault:"0s"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that depend on each other.
func (c Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case "sqlite":
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("UPKEEP_DATABASE_FILE is required for sqlite"))
		}
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("UPKEEP_DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("UPKEEP_DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver))
	}

	if c.JWTPublicKeyFile == "" && c.JWKSURL == "" {
		errs = append(errs, errors.New("one of UPKEEP_JWT_PUBLIC_KEY_FILE or UPKEEP_JWKS_URL is required"))
	}

	switch c.Notifier {
	case "log":
	case "smtp":
		if c.SMTPHost == "" {
			errs = append(errs, errors.New("SMTP_HOST is required for the smtp notifier"))
		}
	default:
		errs = append(errs, fmt.Errorf("UPKEEP_NOTIFIER must be log or smtp, got %q", c.Notifier))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.SweepInterval < 0 {
		errs = append(errs, errors.New("UPKEEP_SWEEP_INTERVAL must not be negative"))
	}

	return errors.Join(errs...)
}
