package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "aluworks-api", cfg.App.Name)
	assert.Equal(t, "Africa/Freetown", cfg.Database.Timezone)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Empty(t, cfg.CORS.AllowedMethods)
	assert.Equal(t, "SLE", cfg.Workshop.Currency)
	assert.False(t, cfg.Email.Enabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://aluworks.sl, https://admin.aluworks.sl ,")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("MAIL_FROM_EMAIL", "office@aluworks.sl")
	t.Setenv("RATE_LIMIT_REQUESTS", "3")

	cfg := Load()

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, []string{"https://aluworks.sl", "https://admin.aluworks.sl"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Email.Enabled())
	assert.Equal(t, "office@aluworks.sl", cfg.Email.OperatorEmail)
	assert.Equal(t, 3, cfg.RateLimit.Requests)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
