package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, []LevelConfig{
		{Role: "Gerente", Ceiling: 1000},
		{Role: "Diretor", Ceiling: 5000},
		{Role: "Vice-presidente", Ceiling: 20000},
	}, cfg.Approval.Levels)
	assert.Equal(t, "Presidente", cfg.Approval.CatchAll)
	assert.Equal(t, []string{"name", "email"}, cfg.Validation.RequiredFields)
	assert.Equal(t, 8, cfg.Validation.PasswordMinLength)
	assert.True(t, cfg.Validation.CheckEmailFormat)
	assert.Equal(t, []string{"logging", "authentication", "cache", "compression"}, cfg.Middleware.Order)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "chains.yaml", `
logger:
  level: debug
  format: json
approval:
  levels:
    - role: Lead
      ceiling: 250.5
  catch_all: ""
validation:
  required_fields: [username]
  password_min_length: 12
  check_email_format: false
middleware:
  order: [authentication, logging]
  auth_token: secret
metrics:
  enabled: true
  namespace: expenses
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "stdout", cfg.Logger.OutputPath, "unset keys keep their defaults")
	assert.Equal(t, []LevelConfig{{Role: "Lead", Ceiling: 250.5}}, cfg.Approval.Levels)
	assert.Empty(t, cfg.Approval.CatchAll)
	assert.Equal(t, []string{"username"}, cfg.Validation.RequiredFields)
	assert.Equal(t, 12, cfg.Validation.PasswordMinLength)
	assert.False(t, cfg.Validation.CheckEmailFormat)
	assert.Equal(t, []string{"authentication", "logging"}, cfg.Middleware.Order)
	assert.Equal(t, "secret", cfg.Middleware.AuthToken)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "expenses", cfg.Metrics.Namespace)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CHAIN_AUTH_TOKEN", "from-env")
	t.Setenv("CHAIN_LOG_LEVEL", "warn")
	t.Setenv("CHAIN_METRICS_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Middleware.AuthToken)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Approval:   ApprovalConfig{Levels: []LevelConfig{{Role: "A", Ceiling: 1}}},
			Validation: ValidationConfig{RequiredFields: []string{"name"}},
			Middleware: MiddlewareConfig{Order: []string{"logging"}},
		}
	}

	tests := []struct {
		name          string
		mutate        func(c *Config)
		errorContains string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:          "unknown log format",
			mutate:        func(c *Config) { c.Logger.Format = "xml" },
			errorContains: "logger.format must be console or json",
		},
		{
			name:          "no approvers",
			mutate:        func(c *Config) { c.Approval.Levels = nil },
			errorContains: "approval needs at least one level",
		},
		{
			name:          "level without role",
			mutate:        func(c *Config) { c.Approval.Levels[0].Role = "" },
			errorContains: "approval.levels[0].role is required",
		},
		{
			name:          "negative ceiling",
			mutate:        func(c *Config) { c.Approval.Levels[0].Ceiling = -5 },
			errorContains: "ceiling must not be negative",
		},
		{
			name:          "no validation rules",
			mutate:        func(c *Config) { c.Validation = ValidationConfig{} },
			errorContains: "validation needs at least one rule",
		},
		{
			name:          "negative password length",
			mutate:        func(c *Config) { c.Validation.PasswordMinLength = -1 },
			errorContains: "password_min_length",
		},
		{
			name:          "empty middleware order",
			mutate:        func(c *Config) { c.Middleware.Order = nil },
			errorContains: "middleware.order is required",
		},
		{
			name:          "metrics without namespace",
			mutate:        func(c *Config) { c.Metrics = MetricsConfig{Enabled: true} },
			errorContains: "metrics.namespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.errorContains == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("sets unset variables", func(t *testing.T) {
		t.Setenv("CHAIN_AUTH_TOKEN", "")
		os.Unsetenv("CHAIN_AUTH_TOKEN")
		path := writeFile(t, ".env", "CHAIN_AUTH_TOKEN=dotenv-token\n")

		require.NoError(t, LoadDotEnv(path))

		assert.Equal(t, "dotenv-token", os.Getenv("CHAIN_AUTH_TOKEN"))
	})

	t.Run("keeps variables already set", func(t *testing.T) {
		t.Setenv("CHAIN_LOG_LEVEL", "error")
		path := writeFile(t, ".env", "CHAIN_LOG_LEVEL=debug\n")

		require.NoError(t, LoadDotEnv(path))

		assert.Equal(t, "error", os.Getenv("CHAIN_LOG_LEVEL"))
	})
}
