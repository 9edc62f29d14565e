package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the file, the environment nor a flag sets a value.
const (
	DefaultBaseURL  = "https://api.clockify.me/api/v1"
	DefaultLogLevel = "info"
	DefaultTimeout  = 30 * time.Second
	DefaultHTTPAddr = "127.0.0.1:8080"
)

// EnvPrefix is prepended to every environment variable (CLOCKIFY_API_KEY, ...).
const EnvPrefix = "CLOCKIFY"

// Config holds the adapter settings.
type Config struct {
	APIKey      string        `mapstructure:"api_key"      yaml:"api_key,omitempty"`
	BaseURL     string        `mapstructure:"base_url"     yaml:"base_url,omitempty"`
	WorkspaceID string        `mapstructure:"workspace_id" yaml:"workspace_id,omitempty"`
	LogLevel    string        `mapstructure:"log_level"    yaml:"log_level,omitempty"`
	LogFormat   string        `mapstructure:"log_format"   yaml:"log_format,omitempty"`
	Timeout     time.Duration `mapstructure:"timeout"      yaml:"timeout,omitempty"`
	HTTPAddr    string        `mapstructure:"http_addr"    yaml:"http_addr,omitempty"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"api-key":   "api_key",
	"base-url":  "base_url",
	"workspace": "workspace_id",
	"log-level": "log_level",
	"timeout":   "timeout",
	"http":      "http_addr",
}

// Keys lists the settable config keys in a stable order.
func Keys() []string {
	return []string{"api_key", "base_url", "workspace_id", "log_level", "log_format", "timeout", "http_addr"}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("workspace_id", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", "console")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("http_addr", DefaultHTTPAddr)
}

// Load reads the config file at path (Path() when empty), then overlays
// CLOCKIFY_* environment variables and any flags that were explicitly set.
// A missing config file is not an error.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	if path == "" {
		path = Path()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	return cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}

// Validate checks the values that would otherwise fail on first use.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an absolute http(s) URL", c.BaseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: unsupported scheme %q", c.BaseURL, parsed.Scheme)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s: must not be negative", c.Timeout)
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log_format %q: use console or json", c.LogFormat)
	}
	return nil
}

// Redacted returns a copy safe to print: the API key keeps only its last four characters.
func (c *Config) Redacted() *Config {
	clone := *c
	clone.APIKey = RedactKey(c.APIKey)
	return &clone
}

// RedactKey masks all but the last four characters of key.
func RedactKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// ReadFile loads only the values stored in the file at path, without
// defaults or environment overlays. A missing file yields an empty Config.
func ReadFile(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML with owner-only permissions.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Set assigns value to the named key. An empty value clears the key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "api_key":
		c.APIKey = value
	case "base_url":
		c.BaseURL = value
	case "workspace_id":
		c.WorkspaceID = value
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	case "http_addr":
		c.HTTPAddr = value
	case "timeout":
		if value == "" {
			c.Timeout = 0
			return nil
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", value, err)
		}
		c.Timeout = d
	default:
		keys := Keys()
		sort.Strings(keys)
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(keys, ", "))
	}
	return nil
}
