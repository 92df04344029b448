package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultStatusSeconds = 3.5
	DefaultRenderEngine  = "CYCLES"
	DefaultPageSize      = 15
	DefaultLogLevel      = "info"
	DefaultTopicPrefix   = "lightman"
	DefaultClientID      = "lightman"
)

// MQTT configures the optional remote attribute bridge. An empty broker
// disables it.
type MQTT struct {
	Broker      string `yaml:"broker,omitempty"`
	ClientID    string `yaml:"client_id,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"`
	QoS         byte   `yaml:"qos,omitempty"`
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
}

// Config holds CLI configuration stored at ~/.lightman/config.
type Config struct {
	ScenePath     string  `yaml:"scene_path"`
	Theme         string  `yaml:"theme,omitempty"`
	VimKeys       bool    `yaml:"vim_keys"`
	StatusSeconds float64 `yaml:"status_seconds"`
	RenderEngine  string  `yaml:"render_engine"`
	PageSize      int     `yaml:"page_size"`
	LogLevel      string  `yaml:"log_level"`
	LogFile       string  `yaml:"log_file,omitempty"`
	MetricsAddr   string  `yaml:"metrics_addr,omitempty"`
	MQTT          MQTT    `yaml:"mqtt,omitempty"`
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(homeDir(), ".lightman", "config")
}

// DefaultScenePath returns where the scene file lives unless configured.
func DefaultScenePath() string {
	return filepath.Join(homeDir(), ".lightman", "scene.yaml")
}

func homeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		ScenePath:     DefaultScenePath(),
		StatusSeconds: DefaultStatusSeconds,
		RenderEngine:  DefaultRenderEngine,
		PageSize:      DefaultPageSize,
		LogLevel:      DefaultLogLevel,
		MQTT: MQTT{
			ClientID:    DefaultClientID,
			TopicPrefix: DefaultTopicPrefix,
		},
	}
}

// Load reads the config at Path.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads and parses the config file at path. A missing file yields the
// defaults; a file readable by others is rejected.
func LoadFrom(path string) (*Config, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.fill()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fill restores defaults for fields a file set to zero.
func (c *Config) fill() {
	d := Default()
	if c.ScenePath == "" {
		c.ScenePath = d.ScenePath
	}
	if c.StatusSeconds == 0 {
		c.StatusSeconds = d.StatusSeconds
	}
	if c.RenderEngine == "" {
		c.RenderEngine = d.RenderEngine
	}
	if c.PageSize == 0 {
		c.PageSize = d.PageSize
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = d.MQTT.ClientID
	}
	if c.MQTT.TopicPrefix == "" {
		c.MQTT.TopicPrefix = d.MQTT.TopicPrefix
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.StatusSeconds < 0 {
		return fmt.Errorf("config status_seconds must be positive, got %v", c.StatusSeconds)
	}
	if c.PageSize < 0 {
		return fmt.Errorf("config page_size must be positive, got %d", c.PageSize)
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("config mqtt.qos must be 0, 1 or 2, got %d", c.MQTT.QoS)
	}
	return nil
}

// StatusDuration returns how long status messages stay up.
func (c *Config) StatusDuration() time.Duration {
	return time.Duration(c.StatusSeconds * float64(time.Second))
}

// Save writes the config to Path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the config to path with secure permissions.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
