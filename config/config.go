// Package config loads gtrans settings.
//
// Settings come from a YAML file and from GTRANS_* environment variables.
// The file is looked up in this order:
//
//	./.gtrans.yaml
//	$XDG_CONFIG_HOME/gtrans/config.yaml  (default: ~/.config/gtrans/config.yaml)
//
// Environment variables override the file, and defaults fill whatever is
// still unset.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/minios-linux/gtrans/translate"
)

const (
	// FileName is the per-directory config file name.
	FileName = ".gtrans.yaml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "GTRANS"

	configDirName  = "gtrans"
	userConfigName = "config.yaml"

	defaultTimeout       = 10 * time.Second
	defaultMaxConcurrent = 2
)

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

// Config is the merged configuration.
type Config struct {
	// ServiceURLs are the translate hosts. GTRANS_SERVICE_URLS is comma separated.
	ServiceURLs []string `yaml:"service_urls,omitempty" envconfig:"SERVICE_URLS"`
	// UserAgent overrides the browser user agent sent with requests.
	UserAgent string `yaml:"user_agent,omitempty" envconfig:"USER_AGENT"`
	// Proxy is an HTTP/HTTPS proxy URL.
	Proxy string `yaml:"proxy,omitempty" envconfig:"PROXY"`
	// Timeout is the per-request timeout, e.g. "15s".
	Timeout time.Duration `yaml:"timeout,omitempty" envconfig:"TIMEOUT"`
	// MaxConcurrent bounds batch requests.
	MaxConcurrent int `yaml:"max_concurrent,omitempty" envconfig:"MAX_CONCURRENT"`
	// RaiseException turns non-200 responses into errors.
	RaiseException bool `yaml:"raise_exception,omitempty" envconfig:"RAISE_EXCEPTION"`
	// CacheSize enables the translation cache.
	CacheSize int `yaml:"cache_size,omitempty" envconfig:"CACHE_SIZE"`

	// Path is the file the config was read from, empty when none was found.
	Path string `yaml:"-" ignored:"true"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the config file found from dir, then applies the environment
// and the defaults. A missing file is not an error.
func Load(dir string) (*Config, error) {
	for _, path := range searchPaths(dir) {
		cfg, err := readFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		return finish(cfg)
	}
	return finish(&Config{})
}

// LoadFile is Load with an explicit file, which must exist.
func LoadFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("reading %s_* environment: %w", EnvPrefix, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		if cfg.Path != "" {
			return nil, fmt.Errorf("%s: %w", cfg.Path, err)
		}
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Path = path
	return &cfg, nil
}

// searchPaths lists the candidate files, most specific first.
func searchPaths(dir string) []string {
	paths := []string{filepath.Join(dir, FileName)}
	if userDir, err := userConfigDir(); err == nil {
		paths = append(paths, filepath.Join(userDir, userConfigName))
	}
	return paths
}

// userConfigDir respects $XDG_CONFIG_HOME and falls back to ~/.config.
func userConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, configDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", configDirName), nil
}

// UserConfigPath returns the per-user config file path for display purposes.
func UserConfigPath() string {
	dir, err := userConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, userConfigName)
}

// ---------------------------------------------------------------------------
// Defaults and validation
// ---------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if len(c.ServiceURLs) == 0 {
		c.ServiceURLs = []string{translate.DefaultServiceURL}
	}
	if c.UserAgent == "" {
		c.UserAgent = translate.DefaultUserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = defaultMaxConcurrent
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxConcurrent < 0 {
		return fmt.Errorf("max_concurrent must not be negative, got %d", c.MaxConcurrent)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	for i, u := range c.ServiceURLs {
		if u == "" {
			return fmt.Errorf("service_urls[%d] is empty", i)
		}
	}
	return nil
}

// TranslateOptions maps the config onto translator options.
func (c *Config) TranslateOptions() translate.Options {
	return translate.Options{
		ServiceURLs:    append([]string(nil), c.ServiceURLs...),
		UserAgent:      c.UserAgent,
		Proxy:          c.Proxy,
		Timeout:        c.Timeout,
		RaiseException: c.RaiseException,
		MaxConcurrent:  c.MaxConcurrent,
		CacheSize:      c.CacheSize,
	}
}
