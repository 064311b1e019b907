package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file inside a data directory.
const FileName = "spendwise.yaml"

// Config represents the top-level spendwise.yaml configuration.
type Config struct {
	Categories []string     `yaml:"categories"`
	Server     ServerConfig `yaml:"server"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads a spendwise.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the stock category set.
func Default() *Config {
	return &Config{
		Categories: []string{"Food", "Travel", "Rent", "Shopping", "Health", "Entertainment"},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// ApplyEnv loads a .env file when present and overlays SPENDWISE_*
// variables onto the config.
func ApplyEnv(cfg *Config) {
	_ = godotenv.Load()

	if addr := os.Getenv("SPENDWISE_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
}

// HasCategory reports whether a category is in the configured set.
func (c *Config) HasCategory(name string) bool {
	for _, cat := range c.Categories {
		if cat == name {
			return true
		}
	}
	return false
}
