package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all application configuration
type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger"`
	Approval   ApprovalConfig   `mapstructure:"approval"`
	Validation ValidationConfig `mapstructure:"validation"`
	Middleware MiddlewareConfig `mapstructure:"middleware"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// LevelConfig is one approver and its authority ceiling
type LevelConfig struct {
	Role    string  `mapstructure:"role"`
	Ceiling float64 `mapstructure:"ceiling"`
}

// ApprovalConfig holds the approval chain definition
type ApprovalConfig struct {
	Levels   []LevelConfig `mapstructure:"levels"`
	CatchAll string        `mapstructure:"catch_all"` // empty means no top-level approver
}

// ValidationConfig holds the validation chain definition
type ValidationConfig struct {
	RequiredFields    []string `mapstructure:"required_fields"`
	PasswordMinLength int      `mapstructure:"password_min_length"`
	CheckEmailFormat  bool     `mapstructure:"check_email_format"`
}

// MiddlewareConfig holds the middleware chain definition
type MiddlewareConfig struct {
	Order     []string `mapstructure:"order"`
	AuthToken string   `mapstructure:"auth_token"`
}

// MetricsConfig holds dispatch metrics configuration
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Load loads configuration from an optional YAML file and environment variables.
// With an empty configPath only defaults and the environment apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("CHAIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables already set are kept. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "console")

	// Approval defaults
	v.SetDefault("approval.levels", []map[string]interface{}{
		{"role": "Gerente", "ceiling": 1000},
		{"role": "Diretor", "ceiling": 5000},
		{"role": "Vice-presidente", "ceiling": 20000},
	})
	v.SetDefault("approval.catch_all", "Presidente")

	// Validation defaults
	v.SetDefault("validation.required_fields", []string{"name", "email"})
	v.SetDefault("validation.password_min_length", 8)
	v.SetDefault("validation.check_email_format", true)

	// Middleware defaults
	v.SetDefault("middleware.order", []string{"logging", "authentication", "cache", "compression"})
	v.SetDefault("middleware.auth_token", "")

	// Metrics defaults
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", "chain")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("middleware.auth_token", "CHAIN_AUTH_TOKEN")
	v.BindEnv("logger.level", "CHAIN_LOG_LEVEL")
	v.BindEnv("metrics.enabled", "CHAIN_METRICS_ENABLED")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}

	if len(c.Approval.Levels) == 0 && c.Approval.CatchAll == "" {
		return fmt.Errorf("approval needs at least one level or a catch_all")
	}
	for i, level := range c.Approval.Levels {
		if level.Role == "" {
			return fmt.Errorf("approval.levels[%d].role is required", i)
		}
		if level.Ceiling < 0 {
			return fmt.Errorf("approval.levels[%d].ceiling must not be negative", i)
		}
	}

	if c.Validation.PasswordMinLength < 0 {
		return fmt.Errorf("validation.password_min_length must not be negative")
	}
	if len(c.Validation.RequiredFields) == 0 && c.Validation.PasswordMinLength == 0 && !c.Validation.CheckEmailFormat {
		return fmt.Errorf("validation needs at least one rule")
	}

	if len(c.Middleware.Order) == 0 {
		return fmt.Errorf("middleware.order is required")
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("metrics.namespace is required when metrics are enabled")
	}

	return nil
}
