package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides (e.g. SPECPLOT_VIEWER)
const EnvPrefix = "SPECPLOT"

type Config struct {
	// Plot Settings
	ChartTitle      string  `yaml:"chart_title" envconfig:"CHART_TITLE" validate:"required"`
	WavelengthMin   float64 `yaml:"wavelength_min" envconfig:"WAVELENGTH_MIN" validate:"gte=0"`
	WavelengthMax   float64 `yaml:"wavelength_max" envconfig:"WAVELENGTH_MAX" validate:"gtfield=WavelengthMin"`
	ReflectanceMin  float64 `yaml:"reflectance_min" envconfig:"REFLECTANCE_MIN"`
	ReflectanceMax  float64 `yaml:"reflectance_max" envconfig:"REFLECTANCE_MAX" validate:"gtfield=ReflectanceMin"`
	AnnotationStart float64 `yaml:"annotation_start" envconfig:"ANNOTATION_START" validate:"gte=0"`
	AnnotationStep  float64 `yaml:"annotation_step" envconfig:"ANNOTATION_STEP" validate:"gte=0"`

	// Output
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	OpenChart bool   `yaml:"open_chart" envconfig:"OPEN_CHART"`
	Viewer    string `yaml:"viewer" envconfig:"VIEWER"`

	// UI Settings
	ColorTheme        string `yaml:"color_theme" envconfig:"COLOR_THEME" validate:"oneof=auto dark light"`
	DisplayDateFormat string `yaml:"display_date_format" envconfig:"DISPLAY_DATE_FORMAT" validate:"required"`
	ChartWidth        string `yaml:"chart_width" envconfig:"CHART_WIDTH" validate:"required"`
	ChartHeight       string `yaml:"chart_height" envconfig:"CHART_HEIGHT" validate:"required"`
	ChartTheme        string `yaml:"chart_theme" envconfig:"CHART_THEME" validate:"required"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		ChartTitle:        "Grey card reflectance",
		WavelengthMin:     380,
		WavelengthMax:     950,
		ReflectanceMin:    0,
		ReflectanceMax:    0.5,
		AnnotationStart:   400,
		AnnotationStep:    25,
		OutputDir:         "",
		OpenChart:         true,
		Viewer:            "",
		ColorTheme:        "auto",
		DisplayDateFormat: "2006-01-02 15:04:05",
		ChartWidth:        "1200px",
		ChartHeight:       "700px",
		ChartTheme:        "white",
	}
}

// Load reads configuration from the specified file path, then applies
// environment overrides and validates the result
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// If file doesn't exist, use defaults (not an error)
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Apply defaults for essential values if missing
	applyDefaults(cfg)

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
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

var validate = validator.New()

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// formatFieldError turns a validator error into a config-file oriented message
func formatFieldError(fe validator.FieldError) string {
	field := yamlName(fe.StructField())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, yamlName(fe.Param()))
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// yamlName maps a struct field name to its yaml key
func yamlName(structField string) string {
	if f, ok := configFields[structField]; ok {
		return f
	}
	return structField
}

var configFields = func() map[string]string {
	m := make(map[string]string)
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if tag := strings.Split(f.Tag.Get("yaml"), ",")[0]; tag != "" {
			m[f.Name] = tag
		}
	}
	return m
}()

// applyDefaults fills blank essential values
func applyDefaults(cfg *Config) {
	d := DefaultConfig()
	if cfg.ChartTitle == "" {
		cfg.ChartTitle = d.ChartTitle
	}
	if cfg.ColorTheme == "" {
		cfg.ColorTheme = d.ColorTheme
	}
	if cfg.DisplayDateFormat == "" {
		cfg.DisplayDateFormat = d.DisplayDateFormat
	}
	if cfg.ChartWidth == "" {
		cfg.ChartWidth = d.ChartWidth
	}
	if cfg.ChartHeight == "" {
		cfg.ChartHeight = d.ChartHeight
	}
	if cfg.ChartTheme == "" {
		cfg.ChartTheme = d.ChartTheme
	}
}
