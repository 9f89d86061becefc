// Package config provides unified configuration loading for the summary engine.
// Supports YAML files, environment variables, and programmatic overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the summary engine.
type Config struct {
	Input         InputConfig         `yaml:"input"`
	Output        OutputConfig        `yaml:"output"`
	Generation    GenerationConfig    `yaml:"generation"`
	Summary       SummaryConfig       `yaml:"summary"`
	Chunking      ChunkingConfig      `yaml:"chunking"`
	Batch         BatchConfig         `yaml:"batch"`
	Prompts       PromptsConfig       `yaml:"prompts"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// InputConfig holds source folder settings.
type InputConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig holds result store settings.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	LogFile string `yaml:"log_file"`
}

// GenerationConfig holds generation backend settings.
type GenerationConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Model       string        `yaml:"model"`
	Timeout     time.Duration `yaml:"timeout"`
	Temperature float64       `yaml:"temperature"`
	TopP        float64       `yaml:"top_p"`
}

// SummaryConfig holds summary length targets, in characters.
// MaxLength is a soft cap: overruns are logged, never rejected.
type SummaryConfig struct {
	MaxLength      int `yaml:"max_length"`
	ChunkMaxLength int `yaml:"chunk_max_length"`
}

// ChunkingConfig holds hierarchical summarization settings.
type ChunkingConfig struct {
	Enabled       bool `yaml:"enabled"`
	SizeThreshold int  `yaml:"size_threshold"` // characters above which a document is chunked
	MaxUnits      int  `yaml:"max_units"`      // per-chunk unit budget (1 unit ~ 4 characters)
}

// BatchConfig holds batch execution settings.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// PromptsConfig optionally overrides the built-in prompt templates. Each
// template is a plain string carrying the {{document}} placeholder exactly
// once; an empty value keeps the built-in template.
type PromptsConfig struct {
	Document string `yaml:"document"`
	Chunk    string `yaml:"chunk"`
	Final    string `yaml:"final"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults for development.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Dir: "./documents",
		},
		Output: OutputConfig{
			Dir:     "./summaries",
			LogFile: "./summaries/processing.log",
		},
		Generation: GenerationConfig{
			BaseURL:     "http://localhost:11434",
			Model:       "llama3.2",
			Timeout:     120 * time.Second,
			Temperature: 0.7,
			TopP:        0.9,
		},
		Summary: SummaryConfig{
			MaxLength:      3000,
			ChunkMaxLength: 1000,
		},
		Chunking: ChunkingConfig{
			Enabled:       true,
			SizeThreshold: 400000,
			MaxUnits:      100000,
		},
		Batch: BatchConfig{
			Concurrency: 1,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "console",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Input.Dir == "" {
		return fmt.Errorf("input dir must be set")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output dir must be set")
	}

	if c.Output.LogFile == "" {
		return fmt.Errorf("output log_file must be set")
	}

	if c.Generation.BaseURL == "" {
		return fmt.Errorf("generation base_url must be set")
	}

	if c.Generation.Model == "" {
		return fmt.Errorf("generation model must be set")
	}

	if c.Generation.Timeout <= 0 {
		return fmt.Errorf("generation timeout must be positive")
	}

	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		return fmt.Errorf("generation temperature must be between 0 and 2")
	}

	if c.Generation.TopP <= 0 || c.Generation.TopP > 1 {
		return fmt.Errorf("generation top_p must be between 0 and 1")
	}

	if c.Summary.MaxLength < 1 {
		return fmt.Errorf("summary max_length must be positive")
	}

	if c.Summary.ChunkMaxLength < 1 {
		return fmt.Errorf("summary chunk_max_length must be positive")
	}

	if c.Chunking.Enabled {
		if c.Chunking.SizeThreshold < 1 {
			return fmt.Errorf("chunking size_threshold must be positive")
		}
		if c.Chunking.MaxUnits < 1 {
			return fmt.Errorf("chunking max_units must be positive")
		}
	}

	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("batch concurrency must be at least 1")
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INPUT_DIR"); v != "" {
		cfg.Input.Dir = v
	}

	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}

	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.Generation.BaseURL = v
	}

	if v := os.Getenv("GENERATION_MODEL"); v != "" {
		cfg.Generation.Model = v
	}

	if v := os.Getenv("GENERATION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Generation.Timeout = d
		}
	}

	if v := os.Getenv("BATCH_CONCURRENCY"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.Batch.Concurrency = n
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}
