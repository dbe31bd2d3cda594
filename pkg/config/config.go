// Package config loads provgraph settings from TOML files.
//
// Settings layer in three steps: built-in defaults, then the user file,
// then command-line flags (applied by the caller). The user file lives
// at $XDG_CONFIG_HOME/provgraph/config.toml and is optional:
//
//	[defaults]
//	direction = "TB"
//	show_attributes = true
//	formats = ["dot", "svg"]
//
//	[cache]
//	enabled = true
//	ttl = "48h"
//
//	[server]
//	addr = ":9090"
//	redis_addr = "localhost:6379"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/provgraph/provgraph/pkg/errors"
	"github.com/provgraph/provgraph/pkg/pipeline"
)

// appName is the directory name under the XDG config home.
const appName = "provgraph"

// Duration is a time.Duration that unmarshals from TOML strings such
// as "24h" or "90m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// Config holds every user-tunable setting.
type Config struct {
	Defaults Defaults `toml:"defaults"`
	Cache    Cache    `toml:"cache"`
	Server   Server   `toml:"server"`
}

// Defaults seeds the visualization flag defaults.
type Defaults struct {
	Direction      string   `toml:"direction"`
	Font           string   `toml:"font"`
	ShowAttributes bool     `toml:"show_attributes"`
	ShowLabels     bool     `toml:"show_labels"`
	Formats        []string `toml:"formats"`
}

// Cache configures the CLI file cache.
type Cache struct {
	Enabled bool     `toml:"enabled"`
	Dir     string   `toml:"dir"` // empty means $XDG_CACHE_HOME/provgraph
	TTL     Duration `toml:"ttl"`
}

// Server configures provgraph serve.
type Server struct {
	Addr      string   `toml:"addr"`
	RedisAddr string   `toml:"redis_addr"`
	MongoURI  string   `toml:"mongo_uri"`
	CacheTTL  Duration `toml:"cache_ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Defaults: Defaults{
			Direction:  pipeline.DefaultDirection,
			Font:       pipeline.DefaultFont,
			ShowLabels: true,
		},
		Cache:  Cache{Enabled: true},
		Server: Server{Addr: ":8080"},
	}
}

// Path returns the user configuration file path using the XDG standard
// ($XDG_CONFIG_HOME/provgraph/config.toml, falling back to
// ~/.config/provgraph/config.toml). The file need not exist.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads a configuration file over the built-in defaults. Settings
// absent from the file keep their default values.
//
// An empty path means the user file from [Path]; when that file is
// missing the defaults are returned without error. An explicit path
// that is missing is an error, since the caller asked for it.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = Path()
		if err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
