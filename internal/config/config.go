// Package config loads the registry configuration using Viper.
//
// Configuration is layered: built-in defaults < YAML config file < environment
// variables. Environment variables use the REGISTRY_ prefix, e.g.
// REGISTRY_DATABASE_HOST overrides database.host.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Session  SessionConfig  `mapstructure:"session"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Registry RegistryConfig `mapstructure:"registry"`
	Chain    ChainConfig    `mapstructure:"chain"`
}

type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
	LogLevel string `mapstructure:"log_level"`
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	PoolSize int    `mapstructure:"pool_size"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	MaxAge time.Duration `mapstructure:"max_age"`
}

type LoggingConfig struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

// RegistryConfig holds organization creation policy.
type RegistryConfig struct {
	// DefaultShares is granted to the creator when no shareholders are given.
	DefaultShares uint64 `mapstructure:"default_shares"`
	// MaxNameLength rejects longer names when positive. Zero disables the check.
	MaxNameLength int `mapstructure:"max_name_length"`
	// CacheSize bounds the organization read cache. Zero disables it.
	CacheSize int `mapstructure:"cache_size"`
}

type ChainConfig struct {
	GenesisTime string        `mapstructure:"genesis_time"`
	BlockTime   time.Duration `mapstructure:"block_time"`
}

// Genesis parses GenesisTime as RFC 3339.
func (c ChainConfig) Genesis() (time.Time, error) {
	return time.Parse(time.RFC3339, c.GenesisTime)
}

// Load reads configuration from configPath (or ./config.yaml when empty) and
// the environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("REGISTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.gin_mode", "debug")

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "registry")
	v.SetDefault("database.password", "registrypassword")
	v.SetDefault("database.name", "organization_registry")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("session.secret", "default-secret-key-change-me")
	v.SetDefault("session.max_age", "168h")

	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.level", "info")

	v.SetDefault("registry.default_shares", 10000)
	v.SetDefault("registry.max_name_length", 0)
	v.SetDefault("registry.cache_size", 1024)

	v.SetDefault("chain.genesis_time", "2020-06-01T00:00:00Z")
	v.SetDefault("chain.block_time", "6s")
}

// Validate checks values that would otherwise fail at first use.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("database.driver must be mysql or postgres, got %q", c.Database.Driver)
	}
	if c.Chain.BlockTime <= 0 {
		return fmt.Errorf("chain.block_time must be positive")
	}
	if _, err := c.Chain.Genesis(); err != nil {
		return fmt.Errorf("chain.genesis_time: %w", err)
	}
	if c.Registry.MaxNameLength < 0 {
		return fmt.Errorf("registry.max_name_length must not be negative")
	}
	if c.Registry.CacheSize < 0 {
		return fmt.Errorf("registry.cache_size must not be negative")
	}
	return nil
}
