// Package config loads deckgen settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config path is given.
const DefaultPath = "deckgen.yaml"

// Config holds all deckgen configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Logging   LoggingConfig   `yaml:"logging"`
	Generator GeneratorConfig `yaml:"generator"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// DataConfig locates the card catalog CSVs.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

type GeneratorConfig struct {
	// MaxAttempts bounds the random draws for each class or neutral part
	// of a set.
	MaxAttempts int `yaml:"max_attempts"`
}

func Default() Config {
	return Config{
		Server:    ServerConfig{Port: "8080"},
		Data:      DataConfig{Dir: "data"},
		Logging:   LoggingConfig{Level: "info"},
		Generator: GeneratorConfig{MaxAttempts: 30},
	}
}

// Load reads path over the defaults, then applies environment overrides. A
// missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("DECKGEN_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("DECKGEN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DECKGEN_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DECKGEN_MAX_ATTEMPTS: %w", err)
		}
		c.Generator.MaxAttempts = n
	}
	return nil
}

func (c Config) Validate() error {
	if c.Generator.MaxAttempts <= 0 {
		return fmt.Errorf("generator.max_attempts must be positive, got %d", c.Generator.MaxAttempts)
	}
	if c.Server.Port == "" {
		return errors.New("server.port must be set")
	}
	return nil
}
