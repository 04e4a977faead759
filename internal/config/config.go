// Package config loads the CLI configuration file.
package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the brainz CLI configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig holds web service client settings.
type APIConfig struct {
	BaseURL  string    `yaml:"base_url"`
	App      AppConfig `yaml:"app"`
	MaxQueue int       `yaml:"max_queue"` // 0 = unbounded
}

// AppConfig identifies the application to the web service; it becomes the
// User-Agent header.
type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Contact string `yaml:"contact"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: "https://musicbrainz.org/ws/2/",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the config file at path, applying defaults for anything
// unset. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if _, err := url.Parse(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url is not a valid URL: %w", err)
	}
	if c.API.MaxQueue < 0 {
		return fmt.Errorf("api.max_queue must not be negative, got %d", c.API.MaxQueue)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// UserAgent builds the User-Agent string from the app triple, empty when
// no app name is configured.
func (a AppConfig) UserAgent() string {
	if a.Name == "" {
		return ""
	}
	ua := a.Name
	if a.Version != "" {
		ua += "/" + a.Version
	}
	if a.Contact != "" {
		ua += " ( " + a.Contact + " )"
	}
	return ua
}
