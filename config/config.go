// Package config loads daemon configuration: baked-in defaults, then an
// optional TOML file, then TERMPIX_* environment overrides. Malformed
// configuration fails loading outright; nothing constructs half-configured.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/lowrezlab/termpix/render"
)

// Config holds all daemon configuration.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
}

// GridConfig fixes the renderer geometry for the process lifetime.
// envconfig prefixes nested fields with the parent field name, so these
// bare tags resolve to TERMPIX_GRID_WIDTH and friends.
type GridConfig struct {
	Width  int    `toml:"width" envconfig:"WIDTH"`
	Height int    `toml:"height" envconfig:"HEIGHT"`
	Mode   string `toml:"mode" envconfig:"MODE"` // "sextant" or "quadrant"
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `toml:"host" envconfig:"HOST"`
	Port string `toml:"port" envconfig:"PORT"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level       string `toml:"level" envconfig:"LEVEL"`
	Development bool   `toml:"development" envconfig:"DEV"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Grid:    GridConfig{Width: 80, Height: 24, Mode: "sextant"},
		Server:  ServerConfig{Host: "0.0.0.0", Port: "3000"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the effective configuration. path may be empty (no file).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	if err := envconfig.Process("TERMPIX", cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects geometry the renderer would refuse anyway, with a message
// a user can act on at startup instead of a construction error later.
func (c *Config) Validate() error {
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return fmt.Errorf("config: grid dimensions must be positive, got %dx%d", c.Grid.Width, c.Grid.Height)
	}
	if _, err := render.ParseMode(c.Grid.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("config: server port must not be empty")
	}
	return nil
}

// RenderConfig converts the validated grid settings to a renderer config.
func (c *Config) RenderConfig() render.Config {
	mode, _ := render.ParseMode(c.Grid.Mode)
	return render.Config{Width: c.Grid.Width, Height: c.Grid.Height, Mode: mode}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
