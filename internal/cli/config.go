package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/nugraph/nugraph/pkg/errors"
	"github.com/nugraph/nugraph/pkg/pipeline"
)

// configName is the config file name under the nugraph config directory.
const configName = "config.toml"

// Cache backend names accepted in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// config holds the optional file-based configuration. Command-line flags
// take precedence over these values, which in turn override the built-in
// defaults.
//
// Example ~/.config/nugraph/config.toml:
//
//	endpoint = "https://feed.example.com/v3-flatcontainer"
//	mode = "online"
//	scale = 2.0
//
//	[cache]
//	backend = "redis"
//	ttl = "12h"
//	redis_addr = "localhost:6379"
type config struct {
	Endpoint string      `toml:"endpoint"`
	Mode     string      `toml:"mode"`
	Scale    float64     `toml:"scale"`
	Cache    cacheConfig `toml:"cache"`
}

// cacheConfig selects and tunes the registry document cache backend.
type cacheConfig struct {
	Backend       string   `toml:"backend"`
	TTL           duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
}

// ttl returns the configured document TTL. Zero means the pipeline default.
func (c cacheConfig) ttl() time.Duration {
	return time.Duration(c.TTL)
}

// duration parses TOML strings like "12h" or "30m" via time.ParseDuration.
type duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// defaultConfig returns the built-in defaults applied when the config file
// is absent or leaves fields unset.
func defaultConfig() *config {
	return &config{
		Cache: cacheConfig{
			Backend:   backendFile,
			RedisAddr: "localhost:6379",
		},
	}
}

// configPath returns the config file location using the XDG standard
// (~/.config/nugraph/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, configName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, configName), nil
}

// loadConfig reads the config file, layering it over the defaults. A missing
// file is not an error; a malformed one is.
func loadConfig() (*config, error) {
	path, err := configPath()
	if err != nil {
		return defaultConfig(), nil
	}

	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "loading config file %s", path)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects config values that no command could act on.
func (c *config) validate() error {
	switch c.Cache.Backend {
	case "", backendFile, backendRedis, backendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Mode != "" {
		if _, err := pipeline.ParseMode(c.Mode); err != nil {
			return err
		}
	}
	if c.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative")
	}
	return nil
}

// =============================================================================
// Commands
// =============================================================================

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect nugraph configuration",
	}

	cmd.AddCommand(c.configPathCommand())

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return fmt.Errorf("locate config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
