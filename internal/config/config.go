// Package config loads cubesolver settings from a YAML file, CUBESOLVER_
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. CUBESOLVER_SERVER_ADDRESS.
const EnvPrefix = "CUBESOLVER"

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig   `mapstructure:"server"`
	Solver  SolverConfig   `mapstructure:"solver"`
	Storage StorageConfig  `mapstructure:"storage"`
	Cache   CacheConfig    `mapstructure:"cache"`
	Logging logging.Config `mapstructure:"logging"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type SolverConfig struct {
	MaxRotations int `mapstructure:"max_rotations"`
}

// StorageConfig selects where solve history goes. Driver is "sqlite",
// "postgres" or "none".
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

// CacheConfig enables the redis solution cache when URL is set.
type CacheConfig struct {
	URL string        `mapstructure:"url"`
	TTL time.Duration `mapstructure:"ttl"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("solver.max_rotations", cubesolver.DefaultMaxRotations)
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("cache.url", "")
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// New returns a viper instance with defaults and environment binding set
// up. path may be empty, in which case ./cubesolver.yaml and
// ~/.cubesolver/cubesolver.yaml are tried.
func New(path string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("cubesolver")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.cubesolver")
	}
	return v
}

// Read loads the config file into v. A missing file is only an error when
// one was asked for explicitly.
func Read(v *viper.Viper, explicit bool) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !explicit && errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("failed to read config: %w", err)
}

// Decode unmarshals v and checks the result.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads path (optional) plus the environment and returns the config.
func Load(path string) (*Config, error) {
	v := New(path)
	if err := Read(v, path != ""); err != nil {
		return nil, err
	}
	return Decode(v)
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite", "none":
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Solver.MaxRotations <= 0 {
		return fmt.Errorf("solver.max_rotations must be positive, got %d", c.Solver.MaxRotations)
	}
	return nil
}
