// Package config loads runtime startup configuration from YAML.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/agenda-br/core/internal/pkg/mail"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 3000
	defaultEnv        = "development"
	defaultDSN        = "root:password@tcp(127.0.0.1:3306)/agenda?charset=utf8mb4&parseTime=True&loc=Local"
	defaultRedisURL   = "redis://localhost:6379/0"
	defaultTokenTTL   = 24 * time.Hour
)

// AppConfig holds runtime startup configuration.
type AppConfig struct {
	Port           int         `yaml:"port"`
	DSN            string      `yaml:"dsn"` // MySQL DSN
	RedisURL       string      `yaml:"redis_url"`
	Env            string      `yaml:"env"` // "development" | "production"
	JWTSecret      string      `yaml:"jwt_secret"`
	TokenTTLRaw    string      `yaml:"token_ttl"` // Go duration string, e.g. "24h"
	AllowedOrigins []string    `yaml:"allowed_origins"`
	Mail           mail.Config `yaml:"mail"`
	GoogleMapsKey  string      `yaml:"google_maps_api_key"`

	TokenTTL time.Duration `yaml:"-"`
}

// Load reads the YAML file at path. A missing file yields defaults so the
// service can boot from environment-style DSNs in development.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{
		Port:     defaultPort,
		DSN:      defaultDSN,
		RedisURL: defaultRedisURL,
		Env:      defaultEnv,
		TokenTTL: defaultTokenTTL,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}
	if s := strings.TrimSpace(cfg.TokenTTLRaw); s != "" {
		ttl, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid token_ttl %q: %w", s, err)
		}
		cfg.TokenTTL = ttl
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = defaultEnv
	}
	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}
