package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:11434", cfg.Generation.BaseURL)
	assert.Equal(t, "llama3.2", cfg.Generation.Model)
	assert.Equal(t, 1, cfg.Batch.Concurrency)
	assert.True(t, cfg.Chunking.Enabled)
	assert.Equal(t, 400000, cfg.Chunking.SizeThreshold)
	assert.Equal(t, 100000, cfg.Chunking.MaxUnits)
}

func TestLoad_FromFile(t *testing.T) {
	content := `
input:
  dir: /data/in
output:
  dir: /data/out
  log_file: /data/out/run.log
generation:
  model: mistral
summary:
  max_length: 1500
chunking:
  enabled: false
batch:
  concurrency: 4
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/in", cfg.Input.Dir)
	assert.Equal(t, "/data/out", cfg.Output.Dir)
	assert.Equal(t, "/data/out/run.log", cfg.Output.LogFile)
	assert.Equal(t, "mistral", cfg.Generation.Model)
	assert.Equal(t, 1500, cfg.Summary.MaxLength)
	assert.False(t, cfg.Chunking.Enabled)
	assert.Equal(t, 4, cfg.Batch.Concurrency)

	// Unset fields keep their defaults.
	assert.Equal(t, "http://localhost:11434", cfg.Generation.BaseURL)
	assert.Equal(t, 120*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, 1000, cfg.Summary.ChunkMaxLength)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INPUT_DIR", "/env/in")
	t.Setenv("OUTPUT_DIR", "/env/out")
	t.Setenv("OLLAMA_HOST", "http://ollama:11434")
	t.Setenv("GENERATION_MODEL", "qwen2.5")
	t.Setenv("GENERATION_TIMEOUT", "45s")
	t.Setenv("BATCH_CONCURRENCY", "3")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/env/in", cfg.Input.Dir)
	assert.Equal(t, "/env/out", cfg.Output.Dir)
	assert.Equal(t, "http://ollama:11434", cfg.Generation.BaseURL)
	assert.Equal(t, "qwen2.5", cfg.Generation.Model)
	assert.Equal(t, 45*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, 3, cfg.Batch.Concurrency)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
	assert.Equal(t, "json", cfg.Observability.LogFormat)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty input dir",
			mutate:  func(c *Config) { c.Input.Dir = "" },
			wantErr: "input dir",
		},
		{
			name:    "empty output dir",
			mutate:  func(c *Config) { c.Output.Dir = "" },
			wantErr: "output dir",
		},
		{
			name:    "empty model",
			mutate:  func(c *Config) { c.Generation.Model = "" },
			wantErr: "model",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Generation.Timeout = 0 },
			wantErr: "timeout",
		},
		{
			name:    "temperature out of range",
			mutate:  func(c *Config) { c.Generation.Temperature = 3.5 },
			wantErr: "temperature",
		},
		{
			name:    "top_p out of range",
			mutate:  func(c *Config) { c.Generation.TopP = 1.5 },
			wantErr: "top_p",
		},
		{
			name:    "zero max length",
			mutate:  func(c *Config) { c.Summary.MaxLength = 0 },
			wantErr: "max_length",
		},
		{
			name:    "zero threshold with chunking enabled",
			mutate:  func(c *Config) { c.Chunking.SizeThreshold = 0 },
			wantErr: "size_threshold",
		},
		{
			name:    "zero unit budget with chunking enabled",
			mutate:  func(c *Config) { c.Chunking.MaxUnits = 0 },
			wantErr: "max_units",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Batch.Concurrency = 0 },
			wantErr: "concurrency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ChunkingDisabledSkipsThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Chunking.Enabled = false
	cfg.Chunking.SizeThreshold = 0
	cfg.Chunking.MaxUnits = 0

	assert.NoError(t, cfg.Validate())
}

func TestLoad_PromptOverrides(t *testing.T) {
	content := `
prompts:
  chunk: |
    Condense this section: {{document}}
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Contains(t, cfg.Prompts.Chunk, "Condense this section")
	assert.Empty(t, cfg.Prompts.Document, "unset templates fall back to the built-ins")
	assert.Empty(t, cfg.Prompts.Final)
}
