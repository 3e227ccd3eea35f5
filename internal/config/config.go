package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete rdflabel configuration
type Config struct {
	// Namespaces maps a prefix to a namespace IRI. They act as the local
	// bindings for IRIs given on the command line.
	Namespaces map[string]string `yaml:"namespaces"`
	Registry   RegistryConfig    `yaml:"registry"`
	Labels     LabelsConfig      `yaml:"labels"`
	Log        LogConfig         `yaml:"log"`

	// Runtime flags (not in YAML)
	GraphFile string
	Refresh   bool
}

// RegistryConfig holds vocabulary registry settings
type RegistryConfig struct {
	URL        string        `yaml:"url"`
	CacheFile  string        `yaml:"cache_file"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries uint64        `yaml:"max_retries"`
	Offline    bool          `yaml:"offline"`
}

// LabelsConfig holds label derivation settings
type LabelsConfig struct {
	WithTypes        bool `yaml:"with_types"`
	MostSpecificType bool `yaml:"most_specific_type"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level      string `yaml:"level"`
	JSON       bool   `yaml:"json"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns a config with sensible defaults
func Default() Config {
	return Config{
		Namespaces: map[string]string{},
		Registry: RegistryConfig{
			URL:        "https://lov.linkeddata.es/dataset/lov/api/v2/vocabulary/list",
			CacheFile:  defaultCacheFile(),
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			Offline:    false,
		},
		Labels: LabelsConfig{
			WithTypes:        true,
			MostSpecificType: false,
		},
		Log: LogConfig{
			Level:      "info",
			JSON:       false,
			MaxSize:    10,
			MaxBackups: 1,
		},
	}
}

func defaultCacheFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "rdflabel-vocabularies.yml"
	}
	return filepath.Join(dir, "rdflabel", "vocabularies.yml")
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (Config, error) {
	cfg := Default()

	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Namespaces == nil {
		cfg.Namespaces = map[string]string{}
	}

	return cfg, nil
}

// ApplyEnvironmentOverrides applies environment variable overrides to the config
func (c *Config) ApplyEnvironmentOverrides() {
	if val := os.Getenv("RDFLABEL_REGISTRY_URL"); val != "" {
		c.Registry.URL = val
	}

	if val := os.Getenv("RDFLABEL_CACHE_FILE"); val != "" {
		c.Registry.CacheFile = val
	}

	if val := os.Getenv("RDFLABEL_TIMEOUT"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			c.Registry.Timeout = duration
		}
	}

	if val := os.Getenv("RDFLABEL_MAX_RETRIES"); val != "" {
		if retries, err := strconv.ParseUint(val, 10, 64); err == nil {
			c.Registry.MaxRetries = retries
		}
	}

	if val := os.Getenv("RDFLABEL_OFFLINE"); val != "" {
		if offline, err := strconv.ParseBool(val); err == nil {
			c.Registry.Offline = offline
		}
	}

	if val := os.Getenv("RDFLABEL_WITH_TYPES"); val != "" {
		if withTypes, err := strconv.ParseBool(val); err == nil {
			c.Labels.WithTypes = withTypes
		}
	}

	if val := os.Getenv("RDFLABEL_MOST_SPECIFIC_TYPE"); val != "" {
		if mostSpecific, err := strconv.ParseBool(val); err == nil {
			c.Labels.MostSpecificType = mostSpecific
		}
	}

	if val := os.Getenv("RDFLABEL_LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}

	if val := os.Getenv("RDFLABEL_LOG_JSON"); val != "" {
		if jsonLog, err := strconv.ParseBool(val); err == nil {
			c.Log.JSON = jsonLog
		}
	}

	if val := os.Getenv("RDFLABEL_LOG_FILE"); val != "" {
		c.Log.File = val
	}

	if val := os.Getenv("RDFLABEL_LOG_MAX_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			c.Log.MaxSize = size
		}
	}

	if val := os.Getenv("RDFLABEL_LOG_MAX_BACKUPS"); val != "" {
		if backups, err := strconv.Atoi(val); err == nil {
			c.Log.MaxBackups = backups
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !c.Registry.Offline {
		if c.Registry.URL == "" {
			return fmt.Errorf("registry.url cannot be empty unless registry.offline is set")
		}
		u, err := url.Parse(c.Registry.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("registry.url must be an http(s) URL: %q", c.Registry.URL)
		}
		if c.Registry.Timeout <= 0 {
			return fmt.Errorf("registry.timeout must be positive")
		}
	}

	if c.Refresh {
		if c.Registry.Offline {
			return fmt.Errorf("cannot refresh the registry in offline mode")
		}
		if c.Registry.CacheFile == "" {
			return fmt.Errorf("registry.cache_file is required to refresh the registry")
		}
	}

	for prefix, ns := range c.Namespaces {
		if ns == "" {
			return fmt.Errorf("namespace for prefix %q cannot be empty", prefix)
		}
	}

	if c.Log.MaxSize < 0 {
		return fmt.Errorf("log.max_size cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}

	return nil
}
