package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/Rorical/RoriMail/internal/errors"
)

const (
	DefaultProfile  = "default"
	DefaultBaseURL  = "http://localhost:8000"
	DefaultLogLevel = "info"

	homeEnv = "RORIMAIL_HOME"
)

type Profile struct {
	BaseURL string `json:"base_url" mapstructure:"base_url"`
}

type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
	File  string `json:"file,omitempty" mapstructure:"file"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles" mapstructure:"profiles"`
	ActiveProfile  string             `json:"active_profile" mapstructure:"active_profile"`
	Logging        LoggingConfig      `json:"logging" mapstructure:"logging"`
	path           string
	currentProfile *Profile
}

// LoadConfig reads ~/.rorimail/config.json, creating it with a default
// profile when missing.
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Config, "failed to get config path", err)
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads the config at an explicit path.
func LoadConfigFrom(configPath string) (*Config, error) {
	if err := ensureConfigDir(configPath); err != nil {
		return nil, apperrors.Wrap(apperrors.Config, "failed to create config directory", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := saveConfig(defaultConfig(), configPath); err != nil {
			return nil, apperrors.Wrap(apperrors.Config, "failed to write default config", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, apperrors.Wrap(apperrors.Config, "failed to read config file", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, apperrors.Wrap(apperrors.Config, "failed to unmarshal config", err)
	}
	config.path = configPath

	if err := config.validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.Config, "invalid configuration", err)
	}

	if err := config.setCurrentProfile(); err != nil {
		return nil, apperrors.Wrap(apperrors.Config, "failed to set current profile", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("active_profile", DefaultProfile)
	v.SetDefault("logging.level", DefaultLogLevel)
}

func defaultConfig() *Config {
	return &Config{
		Profiles: map[string]Profile{
			DefaultProfile: {BaseURL: DefaultBaseURL},
		},
		ActiveProfile: DefaultProfile,
		Logging:       LoggingConfig{Level: DefaultLogLevel},
	}
}

// GetBaseURL returns the backend base URL of the active profile.
func (c *Config) GetBaseURL() string {
	if c.currentProfile == nil || c.currentProfile.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.currentProfile.BaseURL
}

// Dir returns the directory holding the config file.
func (c *Config) Dir() string {
	return filepath.Dir(c.path)
}

// ProfileNames returns the profile names in sorted order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UseProfile makes name the active profile without saving.
func (c *Config) UseProfile(name string) error {
	name = NormalizeProfileName(name)
	profile, exists := c.Profiles[name]
	if !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	c.currentProfile = &profile
	return nil
}

// NormalizeProfileName lowercases names; viper treats keys case-insensitively.
func NormalizeProfileName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateBaseURL checks that raw is an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("base url %q has no host", raw)
	}
	return nil
}

func (c *Config) validate() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}
	for name, p := range c.Profiles {
		if p.BaseURL == "" {
			continue
		}
		if err := ValidateBaseURL(p.BaseURL); err != nil {
			return fmt.Errorf("profile '%s': %w", name, err)
		}
	}
	return nil
}

// GetConfigPath resolves the config file, honoring RORIMAIL_HOME.
func GetConfigPath() (string, error) {
	var configDir string

	if home := os.Getenv(homeEnv); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".rorimail", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	if c.path == "" {
		configPath, err := GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		c.path = configPath
	}

	return saveConfig(c, c.path)
}

func (c *Config) setCurrentProfile() error {
	c.ActiveProfile = NormalizeProfileName(c.ActiveProfile)
	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to the first profile in name order
		names := c.ProfileNames()
		if len(names) == 0 {
			return fmt.Errorf("no valid profiles found")
		}
		c.ActiveProfile = names[0]
		profile = c.Profiles[names[0]]
	}

	c.currentProfile = &profile
	return nil
}
