package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk configuration, read from a TOML file. Every field
// is optional; command flags override anything set here.
//
// Example:
//
//	[render]
//	formats = ["svg", "png"]
//	scale = 2.0
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds default render settings.
type RenderConfig struct {
	Formats      []string `toml:"formats"`
	Scale        float64  `toml:"scale"`
	Padding      *float64 `toml:"padding"`
	CloneMarkers *bool    `toml:"clone_markers"`
	Font         string   `toml:"font"`
}

// CacheConfig selects and configures the cache backend.
// Backend is one of "file" (default), "redis", "mongo", or "none".
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisURL      string `toml:"redis_url"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file yields a zero config; only an explicitly
// given path must exist.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return Config{}, nil
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfigPath returns the config file location using XDG standard
// (~/.config/sbgnviz/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
