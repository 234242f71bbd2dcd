package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds all service configuration. Values are layered: built-in
// defaults, then an optional YAML file, then environment variables.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Log       LogConfig       `koanf:"log"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Redis     RedisConfig     `koanf:"redis"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
}

// DatabaseConfig selects the store. An empty URL runs against memory.
type DatabaseConfig struct {
	URL      string `koanf:"url"`
	MaxConns int32  `koanf:"max_conns"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// RateLimitConfig caps requests per client IP. Requests == 0 disables it.
type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
}

// RedisConfig enables the shared rate limit counter when Addr is set.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
}

const configPathEnv = "CONFIG_PATH"

var defaultConfigFile = "config.yaml"

func defaults() Config {
	return Config{
		Server:    ServerConfig{Port: "3000"},
		Database:  DatabaseConfig{MaxConns: 10},
		Log:       LogConfig{Level: "info", Format: "json"},
		CORS:      CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: RateLimitConfig{Requests: 100, Window: time.Minute},
	}
}

// envKeys maps environment variables to config paths. Anything else in the
// environment is ignored, as are empty values.
var envKeys = map[string]string{
	"PORT":                 "server.port",
	"DATABASE_URL":         "database.url",
	"DATABASE_MAX_CONNS":   "database.max_conns",
	"LOG_LEVEL":            "log.level",
	"LOG_FORMAT":           "log.format",
	"CORS_ALLOWED_ORIGINS": "cors.allowed_origins",
	"RATE_LIMIT_REQUESTS":  "rate_limit.requests",
	"RATE_LIMIT_WINDOW":    "rate_limit.window",
	"REDIS_ADDR":           "redis.addr",
	"REDIS_PASSWORD":       "redis.password",
}

func envKey(name, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	return envKeys[name], value
}

// Load reads configuration and validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	d := defaults()
	if err := k.Load(structs.Provider(&d, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := configFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if v, ok := k.Get("cors.allowed_origins").(string); ok {
		if err := k.Set("cors.allowed_origins", splitList(v)); err != nil {
			return nil, fmt.Errorf("set cors origins: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFile() string {
	if p := os.Getenv(configPathEnv); p != "" {
		return p
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Server.Port))
	}
	if c.Database.URL != "" &&
		!strings.HasPrefix(c.Database.URL, "postgres://") &&
		!strings.HasPrefix(c.Database.URL, "postgresql://") {
		errs = append(errs, errors.New("database url must start with postgres:// or postgresql://"))
	}
	if c.Database.MaxConns < 0 {
		errs = append(errs, fmt.Errorf("invalid database max conns %d", c.Database.MaxConns))
	}
	if c.RateLimit.Requests < 0 {
		errs = append(errs, fmt.Errorf("invalid rate limit %d", c.RateLimit.Requests))
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate limit window must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// UseMemoryStore reports whether no database is configured.
func (c *Config) UseMemoryStore() bool {
	return c.Database.URL == ""
}
