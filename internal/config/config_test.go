package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wgomg/sumrank/internal/summary"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sumrank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, Development, cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "raw", cfg.Summary.Mode)
	assert.Equal(t, 0.85, cfg.Summary.Damping)
	assert.Equal(t, 200, cfg.Summary.MaxIterations)
	assert.Equal(t, 0.001, cfg.Summary.MinDiff)
	assert.Equal(t, 1.5, cfg.Summary.K1)
	assert.Equal(t, 0.75, cfg.Summary.B)
	assert.Equal(t, 10.0, cfg.Summary.RedundancyThreshold)
	assert.Equal(t, 5, cfg.Summary.OutputSize)
	assert.Positive(t, cfg.Summary.Workers)
	assert.True(t, cfg.Parser.Lowercase)
	assert.Equal(t, " ", cfg.Parser.Separator)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SUMMARY_MODE", "normalized")
	t.Setenv("SUMMARY_OUTPUT_SIZE", "3")
	t.Setenv("SUMMARY_REDUNDANCY_THRESHOLD", "2.5")
	t.Setenv("PARSER_LOWERCASE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Production, cfg.App.Env)
	assert.Equal(t, "error", cfg.App.LogLevel)
	assert.Equal(t, "normalized", cfg.Summary.Mode)
	assert.Equal(t, 3, cfg.Summary.OutputSize)
	assert.Equal(t, 2.5, cfg.Summary.RedundancyThreshold)
	assert.False(t, cfg.Parser.Lowercase)
}

func TestLoad_InvalidEnvValueKeepsDefault(t *testing.T) {
	t.Setenv("SUMMARY_MAX_ITERATIONS", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Summary.MaxIterations)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("TEST_STOPWORDS", "/etc/sumrank/stop.txt")
	path := writeConfig(t, `
app:
  log_level: debug
summary:
  mode: normalized
  damping: 0.9
  output_size: 2
parser:
  delimiters: "。！？"
  stopwords_path: ${TEST_STOPWORDS}
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "normalized", cfg.Summary.Mode)
	assert.Equal(t, 0.9, cfg.Summary.Damping)
	assert.Equal(t, 2, cfg.Summary.OutputSize)
	assert.Equal(t, 200, cfg.Summary.MaxIterations, "unset keys keep defaults")
	assert.Equal(t, "。！？", cfg.Parser.Delimiters)
	assert.Equal(t, "/etc/sumrank/stop.txt", cfg.Parser.StopwordsPath)
}

func TestLoadFile_EnvWinsOverFile(t *testing.T) {
	t.Setenv("SUMMARY_OUTPUT_SIZE", "7")
	path := writeConfig(t, "summary:\n  output_size: 2\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Summary.OutputSize)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read")

	_, err = LoadFile(writeConfig(t, "summary: [not, a, map"))
	assert.ErrorContains(t, err, "failed to parse")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown mode", func(c *Config) { c.Summary.Mode = "cosine" }, "unknown scoring mode"},
		{"damping", func(c *Config) { c.Summary.Damping = 1.2 }, "damping"},
		{"iterations", func(c *Config) { c.Summary.MaxIterations = 0 }, "max iterations"},
		{"output size", func(c *Config) { c.Summary.OutputSize = -1 }, "output size"},
		{"b", func(c *Config) { c.Summary.B = -0.1 }, "b must be"},
		{"workers", func(c *Config) { c.Summary.Workers = -2 }, "workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSummaryOptions(t *testing.T) {
	cfg := defaults()
	cfg.Summary.Mode = "normalized"
	cfg.Summary.OutputSize = 4
	cfg.Summary.Workers = 2

	opts, err := cfg.SummaryOptions()
	require.NoError(t, err)

	assert.Equal(t, summary.ModeNormalized, opts.Mode)
	assert.Equal(t, 4, opts.OutputSize)
	assert.Equal(t, 2, opts.Workers)
	assert.Equal(t, summary.DefaultDamping, opts.Damping)
	assert.NoError(t, opts.Validate())
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SUMRANK_TEST_VAR", "value")

	assert.Equal(t, "a value b", expandEnvVars("a ${SUMRANK_TEST_VAR} b"))
	assert.Equal(t, "${SUMRANK_UNSET_VAR}", expandEnvVars("${SUMRANK_UNSET_VAR}"))
}
