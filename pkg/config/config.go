package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/b64pack/pkg/manifest"
)

// DefaultPath is the config file looked up in the working directory
const DefaultPath = "b64pack.yaml"

type Config struct {
	InputDir      string `yaml:"input_dir"`
	OutputPath    string `yaml:"output_path"`
	OutputName    string `yaml:"output_name"`
	Extension     string `yaml:"extension"`
	IncludeHeader bool   `yaml:"include_header"`
	HeaderTool    string `yaml:"header_tool"`
	KeyPrefix     string `yaml:"key_prefix"`

	// Extension -> MIME type, merged over the built-in table
	MimeTypes map[string]string `yaml:"mime_types"`

	// Watch Settings
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		InputDir:        "data/",
		OutputPath:      "",
		OutputName:      "_DATA_",
		Extension:       ".js",
		IncludeHeader:   false,
		HeaderTool:      "b64pack",
		KeyPrefix:       "",
		MimeTypes:       make(map[string]string),
		WatchDebounceMS: 300,
		ColorTheme:      "auto",
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure map is initialized if nil
	if cfg.MimeTypes == nil {
		cfg.MimeTypes = make(map[string]string)
	}

	// Apply defaults for essential values if missing
	if cfg.InputDir == "" {
		cfg.InputDir = "data/"
	}
	if cfg.OutputName == "" {
		cfg.OutputName = "_DATA_"
	}
	if cfg.Extension == "" {
		cfg.Extension = ".js"
	}
	if cfg.HeaderTool == "" {
		cfg.HeaderTool = "b64pack"
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 300
	}
	if cfg.ColorTheme == "" {
		cfg.ColorTheme = "auto"
	}

	return cfg, nil
}

// Validate checks values that would otherwise produce a broken manifest
func (c *Config) Validate() error {
	if !manifest.ValidIdentifier(c.OutputName) {
		return fmt.Errorf("output_name %q is not a valid JavaScript identifier", c.OutputName)
	}
	if c.Extension != "" && !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	if strings.ContainsAny(c.Extension, `/\`) {
		return fmt.Errorf("extension %q must not contain path separators", c.Extension)
	}
	for ext, mimeType := range c.MimeTypes {
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("mime_types contains an empty extension")
		}
		if strings.ContainsAny(mimeType, "\";,\n") {
			return fmt.Errorf("mime_types[%s] = %q is not a usable MIME type", ext, mimeType)
		}
	}
	return nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
