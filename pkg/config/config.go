package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"clipctl/pkg/errors"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHistoryMaxEntries = 500
	DefaultLineBreak         = "native"
	DefaultLogLevel          = "warn"
	DefaultOutputFormat      = "table"
)

// Config holds the complete configuration
type Config struct {
	LineBreak    string        `json:"lineBreak" yaml:"line_break"`
	LogLevel     string        `json:"logLevel" yaml:"log_level"`
	OutputFormat string        `json:"outputFormat" yaml:"output_format"`
	History      HistoryConfig `json:"history" yaml:"history"`
	Image        ImageConfig   `json:"image" yaml:"image"`
}

type HistoryConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	MaxEntries int    `json:"maxEntries" yaml:"max_entries"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
}

// ImageConfig bounds images written by get. Zero means unbounded.
type ImageConfig struct {
	MaxWidth  int `json:"maxWidth" yaml:"max_width"`
	MaxHeight int `json:"maxHeight" yaml:"max_height"`
}

var (
	validLineBreaks    = []string{"crlf", "lf", "native"}
	validLogLevels     = []string{"debug", "info", "warn", "warning", "error", "disabled"}
	validOutputFormats = []string{"table", "json", "yaml"}
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LineBreak:    DefaultLineBreak,
		LogLevel:     DefaultLogLevel,
		OutputFormat: DefaultOutputFormat,
		// history is opt-in
		History: HistoryConfig{
			Enabled:    false,
			MaxEntries: DefaultHistoryMaxEntries,
		},
	}
}

// Load loads the configuration from CLIPCTL_CONFIG or the default path.
func Load() (*Config, error) {
	configPath, err := ResolvePath("")
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration file at path, applies environment
// overrides and validates the result. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadConfigFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "clipctl", "config.yaml"), nil
}

// ResolvePath picks the config file: an explicit path, then CLIPCTL_CONFIG,
// then the default location.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv("CLIPCTL_CONFIG"); env != "" {
		return env, nil
	}
	return GetConfigPath()
}

// HistoryPath returns the history database location.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "clipctl", "history.db"), nil
}

// Save saves the configuration to path
func Save(cfg *Config, path string) error {
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to marshal config", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to write config file", err)
	}

	return nil
}

// Init writes the default configuration to path. An existing file is kept
// unless force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.NewWithSuggestion(errors.ExitCodeConfig,
			fmt.Sprintf("config file already exists: %s", path),
			"Use --force to overwrite it.")
	}
	return Save(Default(), path)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// loadConfigFile reads and parses the config file from the given path
func loadConfigFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		// File doesn't exist, that's okay - defaults and env vars apply
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to parse config file", err)
	}

	return nil
}

// applyEnvironmentOverrides applies environment variable overrides to the config
func applyEnvironmentOverrides(cfg *Config) error {
	cfg.LineBreak = getEnv("CLIPCTL_LINE_BREAK", cfg.LineBreak)
	cfg.LogLevel = getEnv("CLIPCTL_LOG_LEVEL", cfg.LogLevel)

	if value := os.Getenv("CLIPCTL_HISTORY"); value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return errors.ConfigError(fmt.Sprintf("invalid CLIPCTL_HISTORY value %q, expected true or false", value))
		}
		cfg.History.Enabled = enabled
	}

	if value := os.Getenv("CLIPCTL_HISTORY_MAX"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return errors.ConfigError(fmt.Sprintf("invalid CLIPCTL_HISTORY_MAX value %q, expected a number", value))
		}
		cfg.History.MaxEntries = parsed
	}

	return nil
}

// validateConfig ensures every field holds a supported value
func validateConfig(cfg *Config) error {
	cfg.LineBreak = strings.ToLower(cfg.LineBreak)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)

	if !oneOf(cfg.LineBreak, validLineBreaks) {
		return errors.ConfigError(fmt.Sprintf("invalid line_break %q, valid values: %s", cfg.LineBreak, strings.Join(validLineBreaks, ", ")))
	}
	if !oneOf(cfg.LogLevel, validLogLevels) {
		return errors.ConfigError(fmt.Sprintf("invalid log_level %q, valid values: %s", cfg.LogLevel, strings.Join(validLogLevels, ", ")))
	}
	if !oneOf(cfg.OutputFormat, validOutputFormats) {
		return errors.ConfigError(fmt.Sprintf("invalid output_format %q, valid values: %s", cfg.OutputFormat, strings.Join(validOutputFormats, ", ")))
	}
	if cfg.History.MaxEntries < 1 {
		return errors.ConfigError(fmt.Sprintf("history max_entries must be at least 1, got %d", cfg.History.MaxEntries))
	}
	if cfg.Image.MaxWidth < 0 || cfg.Image.MaxHeight < 0 {
		return errors.ConfigError("image max_width and max_height must not be negative")
	}
	return nil
}

func oneOf(value string, valid []string) bool {
	for _, v := range valid {
		if value == v {
			return true
		}
	}
	return false
}
