// Package config loads application settings from an optional YAML file
// overridden by environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	defaultPort       = "5050"
	defaultSessionTTL = time.Hour
	defaultLoginRPS   = 5
	defaultLoginBurst = 10
)

type Config struct {
	Port           string
	DatabaseURL    string
	SessionTTL     time.Duration
	AllowedOrigins []string
	LoginRPS       float64
	LoginBurst     int
}

// fileConfig mirrors Config for YAML decoding; durations are strings so
// the file can say "1h" instead of nanoseconds.
type fileConfig struct {
	Port           string   `yaml:"port"`
	DatabaseURL    string   `yaml:"database_url"`
	SessionTTL     string   `yaml:"session_ttl"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	LoginRPS       float64  `yaml:"login_rps"`
	LoginBurst     int      `yaml:"login_burst"`
}

// Load reads the YAML file named by CONFIG_FILE (default config.yaml, a
// missing file is fine), then applies environment overrides:
// PORT, DATABASE_URL, SESSION_TTL, ALLOWED_ORIGINS (comma-separated),
// LOGIN_RPS, LOGIN_BURST.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       defaultPort,
		SessionTTL: defaultSessionTTL,
		LoginRPS:   defaultLoginRPS,
		LoginBurst: defaultLoginBurst,
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := cfg.apply(fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// env-only configuration
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) apply(fc fileConfig) error {
	if fc.Port != "" {
		c.Port = fc.Port
	}
	if fc.DatabaseURL != "" {
		c.DatabaseURL = fc.DatabaseURL
	}
	if fc.SessionTTL != "" {
		ttl, err := time.ParseDuration(fc.SessionTTL)
		if err != nil {
			return fmt.Errorf("session_ttl: %w", err)
		}
		c.SessionTTL = ttl
	}
	if len(fc.AllowedOrigins) > 0 {
		c.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.LoginRPS > 0 {
		c.LoginRPS = fc.LoginRPS
	}
	if fc.LoginBurst > 0 {
		c.LoginBurst = fc.LoginBurst
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SESSION_TTL: %w", err)
		}
		c.SessionTTL = ttl
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, origin)
			}
		}
	}
	if v := os.Getenv("LOGIN_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("LOGIN_RPS: %w", err)
		}
		c.LoginRPS = rps
	}
	if v := os.Getenv("LOGIN_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LOGIN_BURST: %w", err)
		}
		c.LoginBurst = burst
	}
	return nil
}

// Validate collects what is missing so the process can fail fast with one
// message instead of one restart per field.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.SessionTTL <= 0 {
		missing = append(missing, "SESSION_TTL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
