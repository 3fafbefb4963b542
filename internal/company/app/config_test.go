package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("UPKEEP_JWT_PUBLIC_KEY_FILE", "/etc/upkeep/jwks.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, "upkeep.db", cfg.DatabaseFile)
	require.Equal(t, "log", cfg.Notifier)
	require.Equal(t, "default", cfg.JWTKeyID)
	require.Equal(t, 10*time.Minute, cfg.JWKSRefresh)
	require.Equal(t, time.Duration(0), cfg.SweepInterval)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("UPKEEP_DB_DRIVER", "postgres")
	t.Setenv("UPKEEP_DATABASE_URL", "postgres://upkeep@localhost/upkeep")
	t.Setenv("UPKEEP_JWKS_URL", "https://id.upkeep.dev/.well-known/jwks.json")
	t.Setenv("UPKEEP_JWT_AUDIENCE", "upkeep,upkeep-web")
	t.Setenv("UPKEEP_NOTIFIER", "smtp")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("UPKEEP_SWEEP_INTERVAL", "15m")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "postgres", cfg.DBDriver)
	require.Equal(t, []string{"upkeep", "upkeep-web"}, cfg.JWTAudience)
	require.Equal(t, 587, cfg.SMTPPort)
	require.Equal(t, 15*time.Minute, cfg.SweepInterval)
}

func TestLoadConfigRejectsMalformed(t *testing.T) {
	t.Setenv("UPKEEP_JWT_PUBLIC_KEY_FILE", "/etc/upkeep/jwks.json")
	t.Setenv("PORT", "eighty")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		DBDriver:         "sqlite",
		DatabaseFile:     "upkeep.db",
		JWTPublicKeyFile: "keys.pem",
		Notifier:         "log",
		Port:             8080,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, "UPKEEP_DB_DRIVER"},
		{"postgres without url", func(c *Config) { c.DBDriver = "postgres" }, "UPKEEP_DATABASE_URL"},
		{"no keys", func(c *Config) { c.JWTPublicKeyFile = "" }, "UPKEEP_JWKS_URL"},
		{"smtp without host", func(c *Config) { c.Notifier = "smtp" }, "SMTP_HOST"},
		{"unknown notifier", func(c *Config) { c.Notifier = "pigeon" }, "UPKEEP_NOTIFIER"},
		{"bad port", func(c *Config) { c.Port = 0 }, "PORT"},
		{"negative sweep", func(c *Config) { c.SweepInterval = -time.Second }, "UPKEEP_SWEEP_INTERVAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}
