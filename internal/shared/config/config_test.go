package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowOrigin)
	assert.Equal(t, "local", cfg.ObjectStoreType)
	assert.Equal(t, "none", cfg.LLMProvider)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.True(t, cfg.AllowGuests)
	assert.Equal(t, 20*time.Second, cfg.SummaryTimeout)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "", cfg.SMTPAddr())
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "prod")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("ADMIN_EMAILS", "Ops@Example.com,qa@example.com")
	t.Setenv("LLM_PROVIDER", "Claude")
	t.Setenv("LLM_API_KEY", "key")
	t.Setenv("SUMMARY_TIMEOUT", "5s")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowOrigin)
	assert.Equal(t, []string{"ops@example.com", "qa@example.com"}, cfg.AdminEmails)
	assert.Equal(t, "anthropic", cfg.LLMProvider)
	assert.Equal(t, 5*time.Second, cfg.SummaryTimeout)
	assert.Equal(t, "smtp.example.com:2525", cfg.SMTPAddr())
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 1e-9)
}

func TestLoadRejectsInvalidCombinations(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"production without jwt secret", map[string]string{"ENV": "production"}},
		{"s3 without bucket", map[string]string{"OBJECT_STORE": "s3"}},
		{"provider without key", map[string]string{"LLM_PROVIDER": "openai"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestStringListAcceptsYAMLList(t *testing.T) {
	v := viper.New()
	v.Set("admin_emails", []any{"a@example.com", " b@example.com "})
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, stringList(v, "admin_emails"))

	v.Set("admin_emails", "c@example.com,,d@example.com")
	assert.Equal(t, []string{"c@example.com", "d@example.com"}, stringList(v, "admin_emails"))
}
