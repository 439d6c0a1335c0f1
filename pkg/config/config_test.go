package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.InputDir != "data/" {
		t.Errorf("expected default InputDir='data/', got %q", cfg.InputDir)
	}

	if cfg.OutputPath != "" {
		t.Errorf("expected default OutputPath='', got %q", cfg.OutputPath)
	}

	if cfg.OutputName != "_DATA_" {
		t.Errorf("expected default OutputName='_DATA_', got %q", cfg.OutputName)
	}

	if cfg.IncludeHeader {
		t.Error("expected header to be off by default")
	}

	if cfg.MimeTypes == nil {
		t.Error("expected MimeTypes map to be initialized")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	// Loading a non-existent file should return default config
	cfg, err := Load("/nonexistent/path/b64pack.yaml")

	if err != nil {
		t.Fatalf("unexpected error loading non-existent file: %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.OutputName != "_DATA_" {
		t.Errorf("expected default OutputName='_DATA_', got %q", cfg.OutputName)
	}
}

func TestSave_And_Load(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "b64pack.yaml")

	cfg := &Config{
		InputDir:        "assets/",
		OutputPath:      "www/js",
		OutputName:      "Data",
		Extension:       ".mjs",
		IncludeHeader:   true,
		HeaderTool:      "b64.py",
		KeyPrefix:       "data/",
		MimeTypes:       map[string]string{".frag": "text/x-glsl"},
		WatchDebounceMS: 750,
	}

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.InputDir != cfg.InputDir {
		t.Errorf("InputDir: expected %q, got %q", cfg.InputDir, loaded.InputDir)
	}
	if loaded.OutputPath != cfg.OutputPath {
		t.Errorf("OutputPath: expected %q, got %q", cfg.OutputPath, loaded.OutputPath)
	}
	if loaded.OutputName != cfg.OutputName {
		t.Errorf("OutputName: expected %q, got %q", cfg.OutputName, loaded.OutputName)
	}
	if loaded.Extension != cfg.Extension {
		t.Errorf("Extension: expected %q, got %q", cfg.Extension, loaded.Extension)
	}
	if !loaded.IncludeHeader {
		t.Error("IncludeHeader: expected true")
	}
	if loaded.HeaderTool != cfg.HeaderTool {
		t.Errorf("HeaderTool: expected %q, got %q", cfg.HeaderTool, loaded.HeaderTool)
	}
	if loaded.KeyPrefix != cfg.KeyPrefix {
		t.Errorf("KeyPrefix: expected %q, got %q", cfg.KeyPrefix, loaded.KeyPrefix)
	}
	if loaded.MimeTypes[".frag"] != "text/x-glsl" {
		t.Errorf("MimeTypes: expected .frag override, got %v", loaded.MimeTypes)
	}
	if loaded.WatchDebounceMS != 750 {
		t.Errorf("WatchDebounceMS: expected 750, got %d", loaded.WatchDebounceMS)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "b64pack.yaml")

	yamlContent := `output_name: Data
include_header: true
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Should apply defaults for missing values
	if cfg.InputDir != "data/" {
		t.Errorf("expected default InputDir='data/', got %q", cfg.InputDir)
	}
	if cfg.Extension != ".js" {
		t.Errorf("expected default Extension='.js', got %q", cfg.Extension)
	}
	if cfg.HeaderTool != "b64pack" {
		t.Errorf("expected default HeaderTool='b64pack', got %q", cfg.HeaderTool)
	}

	// Should preserve specified values
	if cfg.OutputName != "Data" {
		t.Errorf("expected OutputName='Data', got %q", cfg.OutputName)
	}
	if !cfg.IncludeHeader {
		t.Error("expected IncludeHeader=true")
	}
}

func TestLoad_EmptyValues(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "b64pack.yaml")

	yamlContent := `input_dir: ""
output_name: ""
watch_debounce_ms: -5
mime_types:
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.InputDir != "data/" {
		t.Errorf("expected default InputDir for empty value, got %q", cfg.InputDir)
	}
	if cfg.OutputName != "_DATA_" {
		t.Errorf("expected default OutputName for empty value, got %q", cfg.OutputName)
	}
	if cfg.WatchDebounceMS != 300 {
		t.Errorf("expected default WatchDebounceMS for negative value, got %d", cfg.WatchDebounceMS)
	}
	if cfg.MimeTypes == nil {
		t.Error("expected MimeTypes map to be initialized")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "b64pack.yaml")

	yamlContent := `input_dir: data/
output_name: [invalid yaml structure
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("expected error loading invalid YAML, got nil")
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "dir", "b64pack.yaml")

	cfg := DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created in nested directory")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"game1 variant", func(c *Config) { c.OutputName = "Data"; c.IncludeHeader = true }, false},
		{"hyphenated name", func(c *Config) { c.OutputName = "my-data" }, true},
		{"reserved name", func(c *Config) { c.OutputName = "var" }, true},
		{"extension without dot", func(c *Config) { c.Extension = "js" }, true},
		{"extension with slash", func(c *Config) { c.Extension = ".js/x" }, true},
		{"empty mime extension", func(c *Config) { c.MimeTypes[" "] = "text/plain" }, true},
		{"mime with semicolon", func(c *Config) { c.MimeTypes[".x"] = "text/plain;charset=utf-8" }, true},
		{"valid mime override", func(c *Config) { c.MimeTypes["frag"] = "text/x-glsl" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
