package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is where the tracker looks for its configuration. A missing
	// file or directory is not an error; built-in defaults apply.
	DefaultPath = "data/config.yaml"

	DefaultSourceURL = "https://coronavirus-tracker-api.herokuapp.com/v2/locations/153"
	defaultUserAgent = "casetracker/1.0"
)

// Config represents the complete tracker configuration
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Logging LoggingConfig `yaml:"logging"`

	// LoadedFrom is the file or directory the values came from; empty for defaults.
	LoadedFrom string `yaml:"-"`
}

// SourceConfig describes the remote case-statistics document
type SourceConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
	MaxBodyMB      int    `yaml:"max_body_mb"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Dir           string `yaml:"dir"`
	RetentionDays int    `yaml:"retention_days"`
}

// Timeout returns the fetch timeout as a duration.
func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// MaxBodyBytes returns the response body cap in bytes.
func (s SourceConfig) MaxBodyBytes() int64 {
	return int64(s.MaxBodyMB) * 1024 * 1024
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			URL:            DefaultSourceURL,
			TimeoutSeconds: 30,
			UserAgent:      defaultUserAgent,
			MaxBodyMB:      16,
		},
		Logging: LoggingConfig{
			Enabled:       true,
			Dir:           "data/logs",
			RetentionDays: 7,
		},
	}
}

// Load reads configuration from a YAML file, or from every *.yaml/*.yml file in
// a directory merged in lexical order. Keys absent from the input keep their
// defaults.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	files := []string{path}
	if info.IsDir() {
		files, err = yamlFiles(path)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no YAML files in config directory %s", path)
		}
	}

	cfg := Default()
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", file, err)
		}
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.LoadedFrom = path
	return cfg, nil
}

// LoadDefault loads DefaultPath, falling back to Default when it does not exist.
func LoadDefault() (*Config, error) {
	cfg, err := Load(DefaultPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (c *Config) normalize() {
	c.Source.URL = strings.TrimSpace(c.Source.URL)
	c.Source.UserAgent = strings.TrimSpace(c.Source.UserAgent)
	c.Logging.Dir = strings.TrimSpace(c.Logging.Dir)
	if c.Source.UserAgent == "" {
		c.Source.UserAgent = defaultUserAgent
	}
}

// Validate rejects values the tracker cannot run with.
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return errors.New("source.url is empty")
	}
	u, err := url.Parse(c.Source.URL)
	if err != nil {
		return fmt.Errorf("source.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("source.url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("source.url: missing host")
	}
	if c.Source.TimeoutSeconds < 0 {
		return fmt.Errorf("source.timeout_seconds must be >= 0, got %d", c.Source.TimeoutSeconds)
	}
	if c.Source.MaxBodyMB < 0 {
		return fmt.Errorf("source.max_body_mb must be >= 0, got %d", c.Source.MaxBodyMB)
	}
	if c.Logging.Enabled && c.Logging.Dir == "" {
		return errors.New("logging.dir is empty while logging is enabled")
	}
	if c.Logging.RetentionDays < 0 {
		return fmt.Errorf("logging.retention_days must be >= 0, got %d", c.Logging.RetentionDays)
	}
	return nil
}

// Print displays the configuration
func (c *Config) Print(w io.Writer) {
	source := c.LoadedFrom
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintf(w, "Config: %s\n", source)
	fmt.Fprintf(w, "Source: %s (timeout %s)\n", c.Source.URL, c.Source.Timeout())
	if c.Logging.Enabled {
		fmt.Fprintf(w, "Logging: %s (retention %d days)\n", c.Logging.Dir, c.Logging.RetentionDays)
	} else {
		fmt.Fprintln(w, "Logging: disabled")
	}
}
