package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	pkgerrors "github.com/zhubert/scholar/internal/errors"
)

// Assistant modes.
const (
	AssistantPlaceholder = "placeholder"
	AssistantCatalog     = "catalog"
)

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "scholar-blue"

// EnvPrefix is prepended to environment overrides, e.g. SCHOLAR_THEME.
const EnvPrefix = "SCHOLAR"

// ReferenceConfig configures the reference attached to placeholder replies.
type ReferenceConfig struct {
	Title  string `mapstructure:"title" yaml:"title"`
	Author string `mapstructure:"author" yaml:"author"`
	Year   int    `mapstructure:"year" yaml:"year"`
	URL    string `mapstructure:"url" yaml:"url"`
}

// AssistantConfig configures how replies are generated.
type AssistantConfig struct {
	Mode      string          `mapstructure:"mode" yaml:"mode"`           // "placeholder" or "catalog"
	Reply     string          `mapstructure:"reply" yaml:"reply"`         // Reply text
	Reference ReferenceConfig `mapstructure:"reference" yaml:"reference"` // Fallback reference
}

// Config holds the application configuration
type Config struct {
	Theme                string          `mapstructure:"theme" yaml:"theme"`
	SidebarCollapsed     bool            `mapstructure:"sidebar_collapsed" yaml:"sidebar_collapsed"`
	NotificationsEnabled bool            `mapstructure:"notifications_enabled" yaml:"notifications_enabled"` // Desktop notification when a reply arrives
	SeedFile             string          `mapstructure:"seed_file" yaml:"seed_file,omitempty"`               // YAML conversation library; built-in mock data when empty
	Assistant            AssistantConfig `mapstructure:"assistant" yaml:"assistant"`

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".scholar"), nil
}

// DefaultPath returns ~/.scholar/config.yaml.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// NewViper returns a viper instance with scholar's defaults and environment
// binding. path is the config file to read; empty means DefaultPath.
// Callers may bind command-line flags to it before calling Load.
func NewViper(path string) *viper.Viper {
	v := viper.New()
	if path == "" {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		v.SetConfigFile(path)
	}
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("theme", DefaultTheme)
	v.SetDefault("sidebar_collapsed", false)
	v.SetDefault("notifications_enabled", false)
	v.SetDefault("seed_file", "")
	v.SetDefault("assistant.mode", AssistantPlaceholder)
	v.SetDefault("assistant.reply", "Here is a concise answer with references.")
	v.SetDefault("assistant.reference.title", "Example Paper on Topic")
	v.SetDefault("assistant.reference.author", "Doe et al.")
	v.SetDefault("assistant.reference.year", 2023)
	v.SetDefault("assistant.reference.url", "https://example.com")
	return v
}

// Load reads the config file behind v, if it exists, and applies defaults,
// environment overrides and any bound flags. A missing file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	path := v.ConfigFileUsed()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, pkgerrors.ConfigLoadFailed(path, err)
		}
	}

	cfg := &Config{filePath: path}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, pkgerrors.ConfigLoadFailed(path, err)
	}
	cfg.Assistant.Mode = strings.ToLower(strings.TrimSpace(cfg.Assistant.Mode))
	return cfg, nil
}

// Validate checks the config against the known theme names.
func (c *Config) Validate(themes []string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Theme != "" && len(themes) > 0 && !slices.Contains(themes, c.Theme) {
		return pkgerrors.ConfigInvalid(fmt.Sprintf("unknown theme %q (available: %s)", c.Theme, strings.Join(themes, ", ")))
	}
	switch c.Assistant.Mode {
	case AssistantPlaceholder, AssistantCatalog, "":
	default:
		return pkgerrors.ConfigInvalid(fmt.Sprintf("unknown assistant mode %q", c.Assistant.Mode))
	}
	if c.Assistant.Reference.Year < 0 {
		return pkgerrors.ConfigInvalid("assistant reference year must not be negative")
	}
	return nil
}

// Path returns the config file this config was loaded from.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// Save writes the config to its file as YAML, creating the directory if needed.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return pkgerrors.ConfigSaveFailed("", errors.New("no config file path"))
	}
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return pkgerrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return pkgerrors.ConfigSaveFailed(c.filePath, err)
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return pkgerrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetSidebarCollapsed returns whether the sidebar starts collapsed
func (c *Config) GetSidebarCollapsed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SidebarCollapsed
}

// SetSidebarCollapsed sets whether the sidebar starts collapsed
func (c *Config) SetSidebarCollapsed(collapsed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SidebarCollapsed = collapsed
}

// GetAssistantMode returns the configured reply mode.
func (c *Config) GetAssistantMode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Assistant.Mode
}

// SetAssistantMode sets the reply mode used from the next start.
func (c *Config) SetAssistantMode(mode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Assistant.Mode = mode
}
