// Package config holds runtime configuration. Values come from built-in
// defaults, an optional .ls-orrery.toml file, LSORRERY_* environment
// variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file name without extension.
	FileName = ".ls-orrery"

	// EnvPrefix prefixes environment overrides, e.g. LSORRERY_SERVER_ADDR.
	EnvPrefix = "LSORRERY"

	// DataDirName is created under the user's home for persisted state.
	DataDirName = ".ls-orrery"
)

// CatalogConfig controls where the planet catalog comes from.
type CatalogConfig struct {
	Source  string        `mapstructure:"source" toml:"source" comment:"URL or file path; empty uses the NASA Exoplanet Archive"`
	Timeout time.Duration `mapstructure:"timeout" toml:"timeout"`
	Watch   bool          `mapstructure:"watch" toml:"watch" comment:"reload a local catalog file when it changes"`
}

// FavoritesConfig selects the favorites backend.
type FavoritesConfig struct {
	Backend string `mapstructure:"backend" toml:"backend" comment:"file or sqlite"`
	Path    string `mapstructure:"path" toml:"path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr      string  `mapstructure:"addr" toml:"addr"`
	RateLimit float64 `mapstructure:"rate_limit" toml:"rate_limit" comment:"requests per second per client"`
	Burst     int     `mapstructure:"burst" toml:"burst"`
	StreamFPS int     `mapstructure:"stream_fps" toml:"stream_fps"`
}

// SimConfig sets the initial simulation parameters.
type SimConfig struct {
	Speed         float64 `mapstructure:"speed" toml:"speed"`
	RealDistances bool    `mapstructure:"real_distances" toml:"real_distances"`
	Seed          string  `mapstructure:"seed" toml:"seed" comment:"non-empty makes synthesized moons and rings reproducible"`
	FPS           int     `mapstructure:"fps" toml:"fps"`
}

// Config holds all runtime configuration.
type Config struct {
	LogLevel  string          `mapstructure:"log_level" toml:"log_level"`
	Catalog   CatalogConfig   `mapstructure:"catalog" toml:"catalog"`
	Favorites FavoritesConfig `mapstructure:"favorites" toml:"favorites"`
	Server    ServerConfig    `mapstructure:"server" toml:"server"`
	Sim       SimConfig       `mapstructure:"sim" toml:"sim"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "warn",
		Catalog: CatalogConfig{
			Timeout: 60 * time.Second,
		},
		Favorites: FavoritesConfig{
			Backend: "file",
			Path:    filepath.Join(DataDir(), "favorites.json"),
		},
		Server: ServerConfig{
			Addr:      "127.0.0.1:8420",
			RateLimit: 10,
			Burst:     20,
			StreamFPS: 30,
		},
		Sim: SimConfig{
			Speed: 1,
			FPS:   30,
		},
	}
}

// DataDir returns the directory for persisted state, falling back to the
// working directory when the home directory is unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DataDirName
	}
	return filepath.Join(home, DataDirName)
}

// Setup points v at the config file and environment. An empty cfgFile
// searches the working directory and then the home directory.
func Setup(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// ReadFile reads the configured file. A missing file is not an error.
func ReadFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("read config: %w", err)
}

// Load applies defaults to v and decodes it into a Config.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.GetViper()
	}

	d := DefaultConfig()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("catalog.source", d.Catalog.Source)
	v.SetDefault("catalog.timeout", d.Catalog.Timeout)
	v.SetDefault("catalog.watch", d.Catalog.Watch)
	v.SetDefault("favorites.backend", d.Favorites.Backend)
	v.SetDefault("favorites.path", d.Favorites.Path)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.rate_limit", d.Server.RateLimit)
	v.SetDefault("server.burst", d.Server.Burst)
	v.SetDefault("server.stream_fps", d.Server.StreamFPS)
	v.SetDefault("sim.speed", d.Sim.Speed)
	v.SetDefault("sim.real_distances", d.Sim.RealDistances)
	v.SetDefault("sim.seed", d.Sim.Seed)
	v.SetDefault("sim.fps", d.Sim.FPS)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the application cannot run with.
func (c Config) Validate() error {
	switch c.Favorites.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("invalid favorites backend %q (want file or sqlite)", c.Favorites.Backend)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("invalid server rate limit %v", c.Server.RateLimit)
	}
	if math.IsNaN(c.Sim.Speed) || math.IsInf(c.Sim.Speed, 0) || c.Sim.Speed <= 0 {
		return fmt.Errorf("invalid sim speed %v", c.Sim.Speed)
	}
	if c.Sim.FPS < 0 || c.Server.StreamFPS < 0 {
		return fmt.Errorf("invalid frame rate")
	}
	return nil
}

// Marshal encodes c as TOML.
func Marshal(c Config) ([]byte, error) {
	return toml.Marshal(c)
}

// WriteDefault writes the default config to path. An existing file is
// only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	data, err := Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
