// Package config loads slack-archive configuration from a YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration.
type Config struct {
	ChannelRoot string   `koanf:"channel_root"` // root of channel export folders
	DMRoot      string   `koanf:"dm_root"`      // folder of per-DM export files
	MappingDir  string   `koanf:"mapping_dir"`  // where the name mapping files live
	ExportDir   string   `koanf:"export_dir"`   // destination for text exports
	Timezone    string   `koanf:"timezone"`     // IANA name, or "Local"
	Include     []string `koanf:"include"`      // channel name glob patterns
	Exclude     []string `koanf:"exclude"`
}

const envPrefix = "SLACK_ARCHIVE_"

// Load reads configuration with the precedence env > file > defaults.
// configPath names the YAML file to read; when empty the default
// ~/.config/slack-archive/config.yaml is used. A missing file is fine,
// a malformed one is not. Environment overrides use the
// SLACK_ARCHIVE_ prefix: SLACK_ARCHIVE_CHANNEL_ROOT sets channel_root.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		configPath = filepath.Join(home, ".config", "slack-archive", "config.yaml")
	}

	content, err := os.ReadFile(configPath)
	if err == nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.ChannelRoot == "" {
		cfg.ChannelRoot = "./data/channels"
	}
	if cfg.DMRoot == "" {
		cfg.DMRoot = "./data/dms"
	}
	if cfg.MappingDir == "" {
		cfg.MappingDir = "./data"
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "./exports"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}
}

// UserMappingFile is the path of the user id -> name mapping file.
func (c *Config) UserMappingFile() string {
	return filepath.Join(c.MappingDir, "user_mapping.json")
}

// DMMappingFile is the path of the group DM id -> name mapping file.
func (c *Config) DMMappingFile() string {
	return filepath.Join(c.MappingDir, "dm_mapping.json")
}
