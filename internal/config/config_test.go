package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:              "8480",
		Env:               "development",
		JWTSecret:         "secret",
		JWTExpireHours:    24,
		CookieExpireHours: 24,
		MaxUploadSizeMB:   10,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Valid", func(c *Config) {}, ""},
		{"Missing Port", func(c *Config) { c.Port = "" }, "PORT is required"},
		{"Missing JWT Secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{
			"Default Secret In Production",
			func(c *Config) { c.Env = "production"; c.JWTSecret = "change-me-in-production" },
			"JWT_SECRET must be set explicitly in production",
		},
		{"Zero Expiry", func(c *Config) { c.JWTExpireHours = 0 }, "JWT_EXPIRE_HOURS must be positive"},
		{"Zero Upload Size", func(c *Config) { c.MaxUploadSizeMB = 0 }, "MAX_UPLOAD_SIZE_MB must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotEmpty(t, cfg.Port)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Positive(t, cfg.JWTExpireHours)
	assert.Positive(t, cfg.MaxUploadSizeMB)
	assert.NotEmpty(t, cfg.UploadDir)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_SECRET", "overridden-secret")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "overridden-secret", cfg.JWTSecret)
}
