// Package config loads the assembly configuration: source globs for every
// content set, context key names, output options and the error policy.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Source globs. Doublestar patterns (`**`) are supported.
	Layouts   []string `yaml:"layouts"`
	Includes  []string `yaml:"includes"` // layout includes, registered before materials
	Views     []string `yaml:"views"`
	Materials []string `yaml:"materials"`
	Data      []string `yaml:"data"`
	Docs      []string `yaml:"docs"`

	Output        string `yaml:"output"`
	DefaultLayout string `yaml:"default_layout"`
	Extension     string `yaml:"extension"` // page extension, also the bundler default

	Keys   KeysConfig   `yaml:"keys"`
	Wrap   WrapConfig   `yaml:"wrap"`
	Errors ErrorsConfig `yaml:"errors"`

	// OnError is an API-level callback invoked by the top-level error
	// handler. Not configurable via YAML.
	OnError func(error) `yaml:"-"`
}

// KeysConfig names the render-context buckets exposing the three metadata
// trees.
type KeysConfig struct {
	Materials string `yaml:"materials"`
	Views     string `yaml:"views"`
	Docs      string `yaml:"docs"`
}

// WrapConfig controls optional decoration of registered fragments.
type WrapConfig struct {
	// Reset wraps each fragment in a fixed hard-reset container.
	Reset bool `yaml:"reset"`
	// Comments encloses each fragment in descriptive start/end markers.
	Comments bool `yaml:"comments"`
}

// ErrorsConfig is the error reporting policy.
type ErrorsConfig struct {
	// Log controls whether assembly failures are logged. Defaults to true.
	Log *bool `yaml:"log"`
}

// LogEnabled returns the effective log flag.
func (e ErrorsConfig) LogEnabled() bool {
	return e.Log == nil || *e.Log
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Pick up .env before expanding the config; absence is not an error.
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if len(c.Layouts) == 0 {
		c.Layouts = []string{"src/layouts/*.html"}
	}
	if len(c.Includes) == 0 {
		c.Includes = []string{"src/layouts/includes/**/*.html"}
	}
	if len(c.Views) == 0 {
		c.Views = []string{"src/views/**/*.html"}
	}
	if len(c.Materials) == 0 {
		c.Materials = []string{"src/materials/**/*.html"}
	}
	if len(c.Data) == 0 {
		c.Data = []string{"src/data/**/*.{yml,yaml,json}"}
	}
	if len(c.Docs) == 0 {
		c.Docs = []string{"src/docs/**/*.md"}
	}
	if c.Output == "" {
		c.Output = "dist"
	}
	if c.DefaultLayout == "" {
		c.DefaultLayout = "default"
	}
	if c.Extension == "" {
		c.Extension = ".html"
	}
	if c.Keys.Materials == "" {
		c.Keys.Materials = "materials"
	}
	if c.Keys.Views == "" {
		c.Keys.Views = "views"
	}
	if c.Keys.Docs == "" {
		c.Keys.Docs = "docs"
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
