// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"stacksafe/internal/errors"
	"stacksafe/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// KnowledgeBase contains knowledge base configuration
	KnowledgeBase KnowledgeBaseConfig `json:"knowledge_base" yaml:"knowledge_base"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server" yaml:"server"`

	// History contains analysis history configuration
	History HistoryConfig `json:"history" yaml:"history"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// KnowledgeBaseConfig contains knowledge base settings
type KnowledgeBaseConfig struct {
	// OverlayDir is a directory of .hcl files layered over the builtin tables
	OverlayDir string `json:"overlay_dir,omitempty" yaml:"overlay_dir,omitempty"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" yaml:"addr"`
}

// HistoryConfig contains analysis history settings
type HistoryConfig struct {
	// Enabled turns on history recording
	Enabled bool `json:"enabled" yaml:"enabled"`

	// DatabasePath is the path to the history database
	DatabasePath string `json:"database_path" yaml:"database_path"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".stacksafe", "history.db")

	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Addr: ":8080",
		},
		History: HistoryConfig{
			Enabled:      false,
			DatabasePath: dbPath,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file.
// JSON and YAML files are supported; a missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config file", err)
	}

	config := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, errors.Config("failed to parse YAML config", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, errors.Config("failed to parse JSON config", err)
		}
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Config("failed to create config directory", err)
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return errors.Config("failed to encode config", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
