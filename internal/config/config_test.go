package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuu")
	t.Setenv("STORE_DRIVER", "memory")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, "12h", cfg.JWT.AccessExpiration)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Store.RefreshInterval)
}

func TestLoad_RefreshInterval(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("RECORD_REFRESH_INTERVAL", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.Store.RefreshInterval)

	t.Setenv("RECORD_REFRESH_INTERVAL", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "RECORD_REFRESH_INTERVAL")
}

func TestLoad_CORSOrigins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com, https://book.example.com,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://admin.example.com", "https://book.example.com"}, cfg.App.CORSOrigins)
}

func TestLoad_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_PORT", "eighty")

	_, err := Load()
	assert.ErrorContains(t, err, "APP_PORT")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Store: StoreConfig{Driver: StoreMongo},
			Mongo: MongoConfig{URI: "mongodb://localhost:27017"},
			JWT:   JWTConfig{Secret: "s", AccessExpiration: "1h"},
			Admin: AdminConfig{Email: "a@example.com", PasswordHash: "hash"},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, "JWT_SECRET_KEY"},
		{"bad expiration", func(c *Config) { c.JWT.AccessExpiration = "soon" }, "JWT_ACCESS_EXPIRATION_TIME"},
		{"missing admin", func(c *Config) { c.Admin.Email = "" }, "ADMIN_EMAIL"},
		{"missing hash", func(c *Config) { c.Admin.PasswordHash = "" }, "ADMIN_PASSWORD_HASH"},
		{"missing mongo uri", func(c *Config) { c.Mongo.URI = "" }, "MONGO_URI"},
		{"postgres without password", func(c *Config) { c.Store.Driver = StorePostgres }, "DB_PASSWORD"},
		{"unknown driver", func(c *Config) { c.Store.Driver = "redis" }, "STORE_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}
