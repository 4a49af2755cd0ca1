// Package config provides configuration management for ghops
package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFileName is the name of the config file (without extension)
	DefaultConfigFileName = ".ghops"
	// DefaultConfigFileType is the config file extension
	DefaultConfigFileType = "yaml"
)

// Config holds all application configuration. Access tokens are deliberately
// not part of it: the token lives only in process memory and is never
// written to disk.
type Config struct {
	// Global flags
	Verbose bool   `yaml:"verbose"`
	User    string `yaml:"user"`

	// API settings
	Endpoint string `yaml:"endpoint"`
	Timeout  int    `yaml:"timeout"`
	PerPage  int    `yaml:"per-page"`

	// Defaults for repository operations
	DefaultBranch     string `yaml:"default-branch"`
	DefaultVisibility string `yaml:"default-visibility"`
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	return &Config{
		Verbose:           false,
		User:              "",
		Endpoint:          "",
		Timeout:           30,
		PerPage:           100,
		DefaultBranch:     "main",
		DefaultVisibility: "all",
	}
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultConfigFileName+"."+DefaultConfigFileType), nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	path, err := GetConfigFilePath()
	if err != nil {
		return err
	}

	// Check if config file already exists
	if _, err := os.Stat(path); err == nil {
		return nil // File exists
	} else if !os.IsNotExist(err) {
		return err // Some other error
	}

	// Create default config
	cfg := DefaultConfig()
	return cfg.SaveTo(path)
}

// LoadFrom loads configuration from a file
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveTo saves configuration to a file with secure permissions
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Write with secure permissions (0600 = owner read/write only)
	return os.WriteFile(path, data, 0600)
}

// Load loads configuration from the default config file
func Load() (*Config, error) {
	path, err := GetConfigFilePath()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// Clone returns a copy of the config
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
