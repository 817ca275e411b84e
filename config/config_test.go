package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name: "development environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "development"},
			},
			expected: true,
		},
		{
			name: "debug gin mode",
			config: &Config{
				Server: ServerConfig{GinMode: "debug"},
			},
			expected: true,
		},
		{
			name: "production environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "production"},
			},
			expected: false,
		},
		{
			name: "release mode",
			config: &Config{
				Server: ServerConfig{GinMode: "release", AppEnv: "production"},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.IsDevelopment()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name: "production environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "production"},
			},
			expected: true,
		},
		{
			name: "development environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "development"},
			},
			expected: false,
		},
		{
			name: "staging environment",
			config: &Config{
				Server: ServerConfig{AppEnv: "staging"},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.IsProduction()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8081",
			BaseURL:        "https://hearthsideremodeling.com",
			AllowedOrigins: []string{"https://hearthsideremodeling.com"},
		},
		Database: DatabaseConfig{URL: "postgres://localhost:5432/hearthside"},
		SMTP:     SMTPConfig{Host: "smtp.example.com"},
		Notification: NotificationConfig{
			BusinessEmail:    "office@hearthsideremodeling.com",
			InternalAPIToken: "test-token",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "missing database URL",
			mutate:      func(c *Config) { c.Database.URL = "" },
			expectError: true,
			errorMsg:    "DATABASE_URL is required",
		},
		{
			name:        "missing port",
			mutate:      func(c *Config) { c.Server.Port = "" },
			expectError: true,
			errorMsg:    "PORT is required",
		},
		{
			name:        "missing base URL",
			mutate:      func(c *Config) { c.Server.BaseURL = "" },
			expectError: true,
			errorMsg:    "BASE_URL is required",
		},
		{
			name:        "empty CORS allow list",
			mutate:      func(c *Config) { c.Server.AllowedOrigins = nil },
			expectError: true,
			errorMsg:    "ALLOWED_CORS_ORIGINS is required",
		},
		{
			name:        "missing SMTP host",
			mutate:      func(c *Config) { c.SMTP.Host = "" },
			expectError: true,
			errorMsg:    "SMTP_HOST is required",
		},
		{
			name:        "missing business email",
			mutate:      func(c *Config) { c.Notification.BusinessEmail = "" },
			expectError: true,
			errorMsg:    "BUSINESS_NOTIFICATION_EMAIL is required",
		},
		{
			name:        "missing internal API token",
			mutate:      func(c *Config) { c.Notification.InternalAPIToken = "" },
			expectError: true,
			errorMsg:    "INTERNAL_API_TOKEN is required",
		},
		{
			name:        "profiling enabled without endpoint",
			mutate:      func(c *Config) { c.Profiling.Enabled = true },
			expectError: true,
			errorMsg:    "O11Y_PROFILING_ENDPOINT is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	// Run from a temp directory so no .env file is picked up
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)
	os.Chdir(t.TempDir())

	// Clean environment, set only required fields without defaults
	os.Clearenv()
	os.Setenv("DATABASE_URL", "postgres://localhost:5432/hearthside")
	os.Setenv("SMTP_HOST", "smtp.example.com")
	os.Setenv("INTERNAL_API_TOKEN", "test-token")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	// Check defaults
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "production", cfg.Server.AppEnv)
	assert.Equal(t, "https://hearthsideremodeling.com", cfg.Server.BaseURL)
	assert.Equal(t, []string{
		"https://hearthsideremodeling.com",
		"https://www.hearthsideremodeling.com",
	}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "/app/logs", cfg.Logging.Dir)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "no-reply@hearthsideremodeling.com", cfg.SMTP.From)
	assert.Equal(t, "office@hearthsideremodeling.com", cfg.Notification.BusinessEmail)
	assert.Equal(t, 64, cfg.Notification.QueueSize)
	assert.Equal(t, 3, cfg.Notification.MaxAttempts)
	assert.Equal(t, 60, cfg.Storage.PresignTTLMinutes)
	assert.False(t, cfg.Profiling.Enabled)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)
	os.Chdir(t.TempDir())

	os.Clearenv()
	os.Setenv("PORT", "9000")
	os.Setenv("GIN_MODE", "debug")
	os.Setenv("APP_ENV", "development")
	os.Setenv("BASE_URL", "http://localhost:3000")
	os.Setenv("ALLOWED_CORS_ORIGINS", "http://localhost:3000, https://staging.hearthsideremodeling.com")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("DATABASE_URL", "postgres://localhost:5432/hearthside")
	os.Setenv("SMTP_HOST", "smtp.example.com")
	os.Setenv("SMTP_PORT", "2525")
	os.Setenv("SMTP_USERNAME", "mailer")
	os.Setenv("SMTP_PASSWORD", "secret")
	os.Setenv("BUSINESS_NOTIFICATION_EMAIL", "leads@hearthsideremodeling.com")
	os.Setenv("INTERNAL_API_TOKEN", "internal-token-789")
	os.Setenv("STORAGE_BUCKET_NAME", "hearthside-quotes")
	os.Setenv("STORAGE_ENDPOINT", "https://s3.us-west-2.amazonaws.com")
	os.Setenv("STORAGE_REGION", "us-west-2")
	os.Setenv("STORAGE_PRESIGN_TTL_MINUTES", "30")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	// Verify values from environment
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Equal(t, "development", cfg.Server.AppEnv)
	assert.Equal(t, "http://localhost:3000", cfg.Server.BaseURL)
	assert.Equal(t, []string{
		"http://localhost:3000",
		"https://staging.hearthsideremodeling.com",
	}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, "mailer", cfg.SMTP.Username)
	assert.Equal(t, "secret", cfg.SMTP.Password)
	assert.Equal(t, "leads@hearthsideremodeling.com", cfg.Notification.BusinessEmail)
	assert.Equal(t, "internal-token-789", cfg.Notification.InternalAPIToken)
	assert.Equal(t, "hearthside-quotes", cfg.Storage.BucketName)
	assert.Equal(t, "us-west-2", cfg.Storage.Region)
	assert.Equal(t, 30, cfg.Storage.PresignTTLMinutes)
}

func TestLoad_ValidationFailure(t *testing.T) {
	// Save current directory and change to a temp directory without .env file
	originalDir, _ := os.Getwd()
	defer os.Chdir(originalDir)

	tempDir := t.TempDir()
	os.Chdir(tempDir)

	// Clean environment - missing DATABASE_URL, SMTP_HOST and INTERNAL_API_TOKEN
	os.Clearenv()

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
