package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/picstock/picstock/internal/inventory"
	"github.com/picstock/picstock/internal/platform"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// DataDir is the root under which inventories and comparison
	// results are stored. Empty means <data home>/picstock.
	DataDir string `yaml:"data_dir"`

	// BaseDir is the fixed base relative scan roots resolve against.
	// Empty means the user's home directory.
	BaseDir string `yaml:"base_dir"`

	// Categories maps a category name to the file extensions it
	// claims. Extensions are case-insensitive and must be disjoint
	// across categories.
	Categories map[string][]string `yaml:"categories"`

	// Workers bounds the stat-collection pool. Zero means NumCPU.
	Workers int `yaml:"workers"`

	Verbose bool `yaml:"verbose"`

	// LogFile redirects logging from stderr to a file when set.
	LogFile string `yaml:"log_file"`
}

// Load loads configuration from a file
func Load(configPath string) (*Config, error) {
	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.fillDefaults(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// fillDefaults resolves every zero-valued field so a sparse config
// file behaves like the default one.
func (c *Config) fillDefaults() error {
	if c.DataDir == "" || c.BaseDir == "" {
		info, err := platform.GetInfo()
		if err != nil {
			return fmt.Errorf("failed to resolve user paths: %w", err)
		}
		if c.DataDir == "" {
			c.DataDir = filepath.Join(info.DataHome, "picstock")
		}
		if c.BaseDir == "" {
			c.BaseDir = info.HomeDir
		}
	}

	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}

	if len(c.Categories) == 0 {
		c.Categories = defaultCategories()
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !filepath.IsAbs(c.DataDir) {
		return fmt.Errorf("data_dir must be absolute: %s", c.DataDir)
	}
	if !filepath.IsAbs(c.BaseDir) {
		return fmt.Errorf("base_dir must be absolute: %s", c.BaseDir)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1")
	}

	if len(c.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	for name, extensions := range c.Categories {
		if name == "" {
			return fmt.Errorf("category name must not be empty")
		}
		// Category names become file names (<name>.csv).
		if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			return fmt.Errorf("category name must be a plain file name: %q", name)
		}
		if len(extensions) == 0 {
			return fmt.Errorf("category %q has no extensions", name)
		}
	}

	// The classifier enforces the dot prefix and disjoint sets.
	if _, err := inventory.NewClassifier(c.CategorySets()); err != nil {
		return err
	}

	return nil
}

// CategorySets converts the configured categories into classifier input.
func (c *Config) CategorySets() map[inventory.Category][]string {
	sets := make(map[inventory.Category][]string, len(c.Categories))
	for name, extensions := range c.Categories {
		sets[inventory.Category(name)] = extensions
	}
	return sets
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	info, err := platform.GetInfo()
	if err != nil {
		return "", err
	}
	return filepath.Join(info.ConfigHome, "picstock", "config.yaml"), nil
}

// EnsureConfigExists creates a default config file if it doesn't exist
func EnsureConfigExists() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		defaultConfig, err := GetDefault()
		if err != nil {
			return "", err
		}
		if err := Save(defaultConfig, configPath); err != nil {
			return "", err
		}
	}

	return configPath, nil
}
