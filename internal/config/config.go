// Package config loads gradletree settings from a TOML file, a .env file and
// GRADLETREE_* environment variables, in increasing order of precedence.
// Command-line flags override all of them and are applied by the CLI.
//
// Example config.toml:
//
//	format = "json"
//	lenient = true
//	gradle = "~/tools/gradle-8.5/bin/gradle"
//
//	[cache]
//	backend = "layered"   # none, file, memory, redis, layered
//	dir = "~/.cache/gradletree"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	max_body = "32 MiB"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"

	"github.com/matzehuels/gradletree/pkg/errors"
	"github.com/matzehuels/gradletree/pkg/pipeline"
)

// AppName names the config and cache directories.
const AppName = "gradletree"

// Cache backends.
const (
	BackendNone    = "none"
	BackendFile    = "file"
	BackendMemory  = "memory"
	BackendRedis   = "redis"
	BackendLayered = "layered" // memory in front of redis
)

// Environment variables that override the file.
const (
	EnvFormat   = "GRADLETREE_FORMAT"
	EnvCache    = "GRADLETREE_CACHE"
	EnvRedisURL = "GRADLETREE_REDIS_URL"
	EnvAddr     = "GRADLETREE_ADDR"
	EnvGradle   = "GRADLETREE_GRADLE"
	EnvLenient  = "GRADLETREE_LENIENT"
)

// Config is the merged configuration.
type Config struct {
	Format  string       `toml:"format"`
	Lenient bool         `toml:"lenient"`
	Gradle  string       `toml:"gradle"` // executable used when no ./gradlew exists
	Cache   CacheConfig  `toml:"cache"`
	Server  ServerConfig `toml:"server"`

	// Path is the file the config was read from, empty when none existed.
	Path string `toml:"-"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisURL      string `toml:"redis_url"`
	MemoryEntries int    `toml:"memory_entries"`
	KeyPrefix     string `toml:"key_prefix"`
}

// ServerConfig configures `gradletree serve`.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	MaxBody string `toml:"max_body"`

	// MaxBodyBytes is MaxBody parsed by [Load].
	MaxBodyBytes int64 `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format: pipeline.DefaultFormat,
		Gradle: "gradle",
		Cache: CacheConfig{
			Backend:       BackendFile,
			MemoryEntries: 1024,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBody:      "32 MiB",
			MaxBodyBytes: 32 << 20,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gradletree/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/gradletree, falling back to
// ~/.cache.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads the configuration.
//
// path names the TOML file; when empty, [DefaultPath] is used and a missing
// file is not an error. A .env file in the working directory is loaded
// first without overriding variables that are already set.
func Load(path string) (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load .env")
		}
	}

	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "expand %s", path)
		}
		switch _, err := toml.DecodeFile(expanded, &cfg); {
		case err == nil:
			cfg.Path = expanded
		case os.IsNotExist(err) && !explicit:
		case os.IsNotExist(err):
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", expanded)
		default:
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", expanded)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.finish(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Format, EnvFormat)
	setString(&c.Cache.Backend, EnvCache)
	setString(&c.Cache.RedisURL, EnvRedisURL)
	setString(&c.Server.Addr, EnvAddr)
	setString(&c.Gradle, EnvGradle)
	if v := strings.TrimSpace(os.Getenv(EnvLenient)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvLenient)
		}
		c.Lenient = b
	}
	return nil
}

func setString(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}

// finish validates the merged values and fills derived fields.
func (c *Config) finish() error {
	if err := pipeline.ValidateFormat(c.Format); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "format")
	}

	switch c.Cache.Backend {
	case BackendNone, BackendFile, BackendMemory:
	case BackendRedis, BackendLayered:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend %q needs cache.redis_url or %s", c.Cache.Backend, EnvRedisURL)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}

	if c.Cache.Dir == "" {
		dir, err := DefaultCacheDir()
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache dir")
		}
		c.Cache.Dir = dir
	}
	dir, err := homedir.Expand(c.Cache.Dir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "expand %s", c.Cache.Dir)
	}
	c.Cache.Dir = dir

	gradle, err := homedir.Expand(c.Gradle)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "expand %s", c.Gradle)
	}
	c.Gradle = gradle

	size, err := humanize.ParseBytes(c.Server.MaxBody)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "server.max_body")
	}
	if size == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body must be positive")
	}
	c.Server.MaxBodyBytes = int64(size)
	return nil
}

// String renders the effective configuration as TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
