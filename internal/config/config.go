package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
)

const (
	DefaultContentDir = "content"
	DefaultAddr       = ":8080"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "pretty"
	DefaultAPIRate    = 10.0
	DefaultAPIBurst   = 20
)

// Config holds the unified application configuration
type Config struct {
	ContentDir string  `json:"content_dir"`
	PublicDir  string  `json:"public_dir"`
	Addr       string  `json:"addr"`
	LogLevel   string  `json:"log_level"`
	LogFormat  string  `json:"log_format"`
	Strict     bool    `json:"strict"`
	Watch      bool    `json:"watch"`
	APIRate    float64 `json:"api_rate"`
	APIBurst   int     `json:"api_burst"`
}

// Settings represents the config file structure
type Settings struct {
	ContentDir string   `json:"content_dir,omitempty"`
	PublicDir  string   `json:"public_dir,omitempty"`
	Addr       string   `json:"addr,omitempty"`
	LogLevel   string   `json:"log_level,omitempty"`
	LogFormat  string   `json:"log_format,omitempty"`
	Strict     *bool    `json:"strict,omitempty"`
	Watch      *bool    `json:"watch,omitempty"`
	APIRate    *float64 `json:"api_rate,omitempty"`
	APIBurst   *int     `json:"api_burst,omitempty"`
}

// CLIFlags holds parsed CLI flags. Empty strings and nil pointers mean the
// flag was not given.
type CLIFlags struct {
	ContentDir string
	PublicDir  string
	Addr       string
	LogLevel   string
	LogFormat  string
	Strict     *bool
	Watch      *bool
}

var globalConfig *Config

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		ContentDir: DefaultContentDir,
		Addr:       DefaultAddr,
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
		APIRate:    DefaultAPIRate,
		APIBurst:   DefaultAPIBurst,
	}

	// Try loading config file first for base values
	configPath, err := getConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			applySettings(cfg, fileConfig)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
		}
	}

	// Priority 2: Environment variables override config file
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	// Priority 1: CLI flags override everything
	setString(&cfg.ContentDir, flags.ContentDir)
	setString(&cfg.PublicDir, flags.PublicDir)
	setString(&cfg.Addr, flags.Addr)
	setString(&cfg.LogLevel, flags.LogLevel)
	setString(&cfg.LogFormat, flags.LogFormat)
	if flags.Strict != nil {
		cfg.Strict = *flags.Strict
	}
	if flags.Watch != nil {
		cfg.Watch = *flags.Watch
	}

	cfg.ContentDir = expandPath(cfg.ContentDir)
	cfg.PublicDir = expandPath(cfg.PublicDir)

	globalConfig = cfg
	return cfg, nil
}

// Get returns the loaded config
func Get() *Config {
	return globalConfig
}

// ConfigDir returns ~/.config/templatehub
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "templatehub"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

func applySettings(cfg *Config, s *Settings) {
	setString(&cfg.ContentDir, s.ContentDir)
	setString(&cfg.PublicDir, s.PublicDir)
	setString(&cfg.Addr, s.Addr)
	setString(&cfg.LogLevel, s.LogLevel)
	setString(&cfg.LogFormat, s.LogFormat)
	if s.Strict != nil {
		cfg.Strict = *s.Strict
	}
	if s.Watch != nil {
		cfg.Watch = *s.Watch
	}
	if s.APIRate != nil && *s.APIRate > 0 {
		cfg.APIRate = *s.APIRate
	}
	if s.APIBurst != nil && *s.APIBurst > 0 {
		cfg.APIBurst = *s.APIBurst
	}
}

func applyEnv(cfg *Config) error {
	setString(&cfg.ContentDir, os.Getenv("TEMPLATEHUB_CONTENT_DIR"))
	setString(&cfg.PublicDir, os.Getenv("TEMPLATEHUB_PUBLIC_DIR"))
	setString(&cfg.Addr, os.Getenv("TEMPLATEHUB_ADDR"))
	setString(&cfg.LogLevel, os.Getenv("TEMPLATEHUB_LOG_LEVEL"))
	setString(&cfg.LogFormat, os.Getenv("TEMPLATEHUB_LOG_FORMAT"))

	for name, dst := range map[string]*bool{
		"TEMPLATEHUB_STRICT": &cfg.Strict,
		"TEMPLATEHUB_WATCH":  &cfg.Watch,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", name, v, err)
		}
		*dst = b
	}
	return nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	strict, watch := false, false
	rate, burst := DefaultAPIRate, DefaultAPIBurst
	settings := Settings{
		ContentDir: DefaultContentDir,
		Addr:       DefaultAddr,
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
		Strict:     &strict,
		Watch:      &watch,
		APIRate:    &rate,
		APIBurst:   &burst,
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return atomic.WriteFile(configPath, strings.NewReader(string(data)+"\n"))
}

// ParseCommaSeparated splits a comma-separated string into a slice
func ParseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
