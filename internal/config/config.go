// Package config loads server configuration from defaults, an optional YAML
// file, a .env file and APT_-prefixed environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmynk/apartmanager/internal/records"
)

// EnvPrefix prefixes every environment override, e.g. APT_SERVER_PORT.
const EnvPrefix = "APT"

// Config holds all configuration for the server.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Seed    SeedConfig    `mapstructure:"seed"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Advisor AdvisorConfig `mapstructure:"advisor"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port       int    `mapstructure:"port" validate:"min=1,max=65535"`
	StaticPath string `mapstructure:"static_path"`
}

// StorageConfig selects and configures the record backend.
type StorageConfig struct {
	Driver           string `mapstructure:"driver" validate:"oneof=sqlite memory redis postgres"`
	Path             string `mapstructure:"path" validate:"required_if=Driver sqlite"`
	RedisAddr        string `mapstructure:"redis_addr" validate:"required_if=Driver redis"`
	RedisPassword    string `mapstructure:"redis_password"`
	RedisDB          int    `mapstructure:"redis_db" validate:"min=0"`
	RedisPrefix      string `mapstructure:"redis_prefix"`
	PostgresDSN      string `mapstructure:"postgres_dsn" validate:"required_if=Driver postgres"`
	RecoverMalformed bool   `mapstructure:"recover_malformed"`
}

// SeedConfig controls the schema-version gate.
type SeedConfig struct {
	Version string `mapstructure:"version" validate:"required"`
}

// AdminCredential is one entry of the fixed admin credential list.
type AdminCredential struct {
	ID       string `mapstructure:"id"`
	Email    string `mapstructure:"email" validate:"required,email"`
	Password string `mapstructure:"password" validate:"required"`
	Name     string `mapstructure:"name"`
}

// AuthConfig holds token and credential settings.
type AuthConfig struct {
	JWTSecret     string            `mapstructure:"jwt_secret" validate:"required"`
	TokenDuration time.Duration     `mapstructure:"token_duration" validate:"gt=0"`
	Admins        []AdminCredential `mapstructure:"admins" validate:"dive"`
}

// AdvisorConfig configures the external text generator. An empty APIKey
// disables it and every advisory call returns its fallback text.
type AdvisorConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.static_path", "./static")

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "./data/apartmanager.db")
	v.SetDefault("storage.redis_addr", "")
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.redis_prefix", "")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.recover_malformed", false)

	v.SetDefault("seed.version", records.DefaultVersion)

	v.SetDefault("auth.jwt_secret", "dev-secret-change-me")
	v.SetDefault("auth.token_duration", 24*time.Hour)
	v.SetDefault("auth.admins", []map[string]any{{
		"id":       "admin",
		"email":    "admin@apart.vn",
		"password": "123456",
		"name":     "Ban Quản Lý",
	}})

	v.SetDefault("advisor.endpoint", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("advisor.model", "gemini-3-flash-preview")
	v.SetDefault("advisor.api_key", "")
	v.SetDefault("advisor.timeout", 20*time.Second)

	v.SetDefault("log.level", "info")
}

// Load reads configuration. path may be empty, in which case only defaults
// and the environment are used.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// LOG_LEVEL keeps working without the prefix.
	if err := v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind log level: %w", err)
	}
	// The Gemini tooling convention.
	if err := v.BindEnv("advisor.api_key", EnvPrefix+"_ADVISOR_API_KEY", "API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind advisor key: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
				slog.Warn("Config file not found, using defaults", "path", path)
			} else {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Storage.Driver = strings.ToLower(cfg.Storage.Driver)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// AdvisorEnabled reports whether an API key is configured.
func (c *Config) AdvisorEnabled() bool {
	return c.Advisor.APIKey != ""
}
