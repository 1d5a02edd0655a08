package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.WavelengthMin != 380 || cfg.WavelengthMax != 950 {
		t.Errorf("expected default wavelength range 380-950, got %v-%v", cfg.WavelengthMin, cfg.WavelengthMax)
	}

	if cfg.ReflectanceMin != 0 || cfg.ReflectanceMax != 0.5 {
		t.Errorf("expected default reflectance range 0-0.5, got %v-%v", cfg.ReflectanceMin, cfg.ReflectanceMax)
	}

	if cfg.AnnotationStart != 400 || cfg.AnnotationStep != 25 {
		t.Errorf("expected annotations at 400 + 25*i, got %v + %v*i", cfg.AnnotationStart, cfg.AnnotationStep)
	}

	if !cfg.OpenChart {
		t.Error("expected OpenChart to default to true")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	// Loading a non-existent file should return default config
	cfg, err := Load("/nonexistent/path/config.yaml")

	if err != nil {
		t.Fatalf("unexpected error loading non-existent file: %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.WavelengthMax != 950 {
		t.Errorf("expected default WavelengthMax=950, got %v", cfg.WavelengthMax)
	}
}

func TestSave_And_Load(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "specplot", "config.yaml")

	cfg := DefaultConfig()
	cfg.WavelengthMin = 250
	cfg.WavelengthMax = 2500
	cfg.Viewer = "firefox"
	cfg.OpenChart = false

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

	if loaded.WavelengthMin != 250 || loaded.WavelengthMax != 2500 {
		t.Errorf("expected range 250-2500, got %v-%v", loaded.WavelengthMin, loaded.WavelengthMax)
	}
	if loaded.Viewer != "firefox" {
		t.Errorf("expected Viewer='firefox', got %q", loaded.Viewer)
	}
	if loaded.OpenChart {
		t.Error("expected OpenChart=false")
	}
}

func TestLoad_PartialFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "wavelength_max: 1100\nchart_title: \"\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.WavelengthMax != 1100 {
		t.Errorf("expected WavelengthMax=1100, got %v", cfg.WavelengthMax)
	}
	if cfg.WavelengthMin != 380 {
		t.Errorf("expected WavelengthMin to keep its default, got %v", cfg.WavelengthMin)
	}
	if cfg.ChartTitle != "Grey card reflectance" {
		t.Errorf("expected blank title to fall back to default, got %q", cfg.ChartTitle)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("wavelength_min: [oops"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SPECPLOT_VIEWER", "chromium")
	t.Setenv("SPECPLOT_WAVELENGTH_MAX", "1200")
	t.Setenv("SPECPLOT_OPEN_CHART", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Viewer != "chromium" {
		t.Errorf("expected Viewer='chromium', got %q", cfg.Viewer)
	}
	if cfg.WavelengthMax != 1200 {
		t.Errorf("expected WavelengthMax=1200, got %v", cfg.WavelengthMax)
	}
	if cfg.OpenChart {
		t.Error("expected OpenChart=false from environment")
	}
}

func TestLoad_EnvironmentParseError(t *testing.T) {
	t.Setenv("SPECPLOT_WAVELENGTH_MIN", "three hundred")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for non-numeric override")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "inverted wavelength range",
			mutate:  func(c *Config) { c.WavelengthMin, c.WavelengthMax = 950, 380 },
			wantErr: "wavelength_max must be greater than wavelength_min",
		},
		{
			name:    "empty reflectance range",
			mutate:  func(c *Config) { c.ReflectanceMax = c.ReflectanceMin },
			wantErr: "reflectance_max must be greater than reflectance_min",
		},
		{
			name:    "negative annotation step",
			mutate:  func(c *Config) { c.AnnotationStep = -25 },
			wantErr: "annotation_step must be >= 0",
		},
		{
			name:    "unknown theme",
			mutate:  func(c *Config) { c.ColorTheme = "solarized" },
			wantErr: "color_theme must be one of [auto dark light]",
		},
		{
			name:    "missing chart size",
			mutate:  func(c *Config) { c.ChartWidth = "" },
			wantErr: "chart_width is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
