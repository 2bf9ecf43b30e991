// Package config loads process settings from the environment, an optional
// .env file and an optional storefront.yaml.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
)

type Config struct {
	Port string

	StoreBackend  string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	SQLitePath    string

	AdminCode    string
	ViewSecret   string
	CookieSecure bool

	MetricsEnabled bool
	MetricsToken   string

	RedirectLimitPerMin int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("storefront")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/timbee")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:                v.GetString("port"),
		StoreBackend:        strings.ToLower(strings.TrimSpace(v.GetString("store_backend"))),
		DatabaseURL:         strings.TrimSpace(v.GetString("database_url")),
		RedisAddr:           strings.TrimSpace(v.GetString("redis_addr")),
		RedisPassword:       v.GetString("redis_password"),
		RedisDB:             v.GetInt("redis_db"),
		RedisPrefix:         v.GetString("redis_prefix"),
		SQLitePath:          v.GetString("sqlite_path"),
		AdminCode:           strings.TrimSpace(v.GetString("admin_code")),
		ViewSecret:          v.GetString("view_secret"),
		CookieSecure:        v.GetBool("cookie_secure"),
		MetricsEnabled:      v.GetBool("metrics_enabled"),
		MetricsToken:        strings.TrimSpace(v.GetString("metrics_token")),
		RedirectLimitPerMin: v.GetInt("redirect_limit_per_min"),
	}

	if cfg.ViewSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, err
		}
		cfg.ViewSecret = secret
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("store_backend", BackendMemory)
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", "timbee:")
	v.SetDefault("sqlite_path", "timbee.db")
	v.SetDefault("admin_code", "timbee2025")
	v.SetDefault("view_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("metrics_token", "")
	v.SetDefault("redirect_limit_per_min", 120)
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis backend")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.AdminCode == "" {
		return errors.New("ADMIN_CODE must not be empty")
	}
	if c.RedirectLimitPerMin < 0 {
		return errors.New("REDIRECT_LIMIT_PER_MIN must not be negative")
	}
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate view secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
