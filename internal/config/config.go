package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

// LimitsConfig bounds what one ranking service instance will take on.
// MaxNodes caps dataset size so worst-case latency stays bounded;
// datasets beyond it are rejected at ingestion.
type LimitsConfig struct {
	MaxNodes    int `toml:"max_nodes"`
	DefaultTopK int `toml:"default_top_k"`
	MaxTopK     int `toml:"max_top_k"`
}

type Config struct {
	Server ServerConfig `toml:"server"`
	Limits LimitsConfig `toml:"limits"`
}

// Default is the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Limits: LimitsConfig{MaxNodes: 10000, DefaultTopK: 3, MaxTopK: 100},
	}
}

// Load reads a TOML config file. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}
