package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWithEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://muhajir@localhost/muhajir")
	t.Setenv("SECRET_KEY", "s3cret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/api/v1", cfg.App.APIPrefix)
	assert.Equal(t, "all", cfg.Security.SignedPayload)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL())
	assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, "postgres://muhajir@localhost/muhajir", cfg.DatabaseURL())
	assert.Equal(t, []string{"*"}, cfg.CORS.Origins)
}

func TestLoad_EnvironmentOverridesYAML(t *testing.T) {
	path := writeYAML(t, `
app:
  port: "9000"
  debug: true
  shutdown_timeout: 30s
security:
  access_token_expire_minutes: 60
database:
  host: db
  user: muhajir
  name: foundation
cors:
  origins: ["https://muhajir.org"]
`)
	t.Setenv("PORT", "9100")
	t.Setenv("CORS_ORIGINS", "https://a.org,https://b.org")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.App.Port)
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, 30*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL())
	assert.Equal(t, []string{"https://a.org", "https://b.org"}, cfg.CORS.Origins)
	assert.Equal(t, "host=db port=5432 user=muhajir password= dbname=foundation sslmode=disable", cfg.DatabaseURL())
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeYAML(t, "app: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Database.DSN = "postgres://localhost/muhajir"
		cfg.Security.SecretKey = "s3cret"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no database", func(c *Config) { c.Database.DSN = "" }},
		{"no secret outside debug", func(c *Config) { c.Security.SecretKey = "" }},
		{"unsupported algorithm", func(c *Config) { c.Security.Algorithm = "RS256" }},
		{"empty signed payload", func(c *Config) { c.Security.SignedPayload = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("debug allows empty secret", func(t *testing.T) {
		cfg := valid()
		cfg.Security.SecretKey = ""
		cfg.App.Debug = true
		assert.NoError(t, cfg.Validate())
	})
}
