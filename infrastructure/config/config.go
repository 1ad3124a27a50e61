package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	domainconfig "github.com/SemperAdmin/naval-letter-formatter-sub000/domain/config"
	"github.com/SemperAdmin/naval-letter-formatter-sub000/pkg/utils"
)

// Config holds all application configuration
type Config struct {
	Environment string `yaml:"environment" env:"ENVIRONMENT" validate:"required,oneof=development test production"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" validate:"required,oneof=debug info warn error"`

	// Formatting
	Regime           string `yaml:"regime" env:"LETTER_REGIME" validate:"required,oneof=proportional fixed_width"`
	MaxLevel         int    `yaml:"max_level" env:"LETTER_MAX_LEVEL" validate:"min=1,max=8"`
	SubjectLineWidth int    `yaml:"subject_line_width" env:"LETTER_SUBJECT_WIDTH" validate:"min=20,max=200"`

	// Metrics and caching
	MetricsNamespace string `yaml:"metrics_namespace" env:"METRICS_NAMESPACE" validate:"required,excludesall=-."`
	RenderCacheSize  int    `yaml:"render_cache_size" env:"RENDER_CACHE_SIZE" validate:"min=1,max=65536"`

	// Tracing
	TraceSampleRate float64 `yaml:"trace_sample_rate" env:"TRACE_SAMPLE_RATE" validate:"min=0,max=1"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	format := domainconfig.DefaultFormatConfig()
	return &Config{
		Environment:      "development",
		LogLevel:         "info",
		Regime:           string(format.Regime),
		MaxLevel:         format.MaxLevel,
		SubjectLineWidth: format.SubjectLineWidth,
		MetricsNamespace: "letters",
		RenderCacheSize:  256,
		TraceSampleRate:  1,
	}
}

// Load builds the configuration from defaults, then the YAML document in
// data (if any), then environment variables. The result is validated.
func Load(data []byte) (*Config, error) {
	cfg := Default()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads configuration from environment variables only
func LoadConfig() (*Config, error) {
	return Load(nil)
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ToFormatConfig derives the layout rules for the configured regime
func (c *Config) ToFormatConfig() (*domainconfig.FormatConfig, error) {
	format := domainconfig.LoadFormatConfig(c.Regime)
	format.MaxLevel = c.MaxLevel
	format.SubjectLineWidth = c.SubjectLineWidth
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("invalid format config: %w", err)
	}
	return format, nil
}

// ZapLevel returns the configured log level
func (c *Config) ZapLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
