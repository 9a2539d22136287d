package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in the config file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the on-disk CLI configuration, loaded from
// ~/.config/tankview/config.toml. Every field has a usable default, so a
// missing file is not an error.
type Config struct {
	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the result cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none". Default: "file".
	Backend string `toml:"backend"`
	// Dir overrides the file backend's directory.
	Dir string `toml:"dir"`
	// TTLHours overrides the cache entry lifetime. Zero keeps the
	// built-in default.
	TTLHours int `toml:"ttl_hours"`
	// RedisAddr is the redis server address for the redis backend.
	RedisAddr string `toml:"redis_addr"`
	// RedisPassword is optional.
	RedisPassword string `toml:"redis_password"`
	// RedisDB selects the redis database number.
	RedisDB int `toml:"redis_db"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
		},
	}
}

// LoadConfig reads the config file, applying defaults for missing fields.
// A missing file yields the defaults; a malformed file or unknown backend
// is an error so typos don't silently disable caching.
func LoadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	switch cfg.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return DefaultConfig(), fmt.Errorf("%s: unknown cache backend %q", path, cfg.Cache.Backend)
	}
	return cfg, nil
}

// configPath returns the config file path using the XDG convention.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
