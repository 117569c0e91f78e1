package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/wgomg/sumrank/internal/parser"
	"github.com/wgomg/sumrank/internal/summary"
)

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

type AppConfig struct {
	Env      Environment `yaml:"env"`
	LogLevel string      `yaml:"log_level"`
}

type SummaryConfig struct {
	Mode                string  `yaml:"mode"`
	Damping             float64 `yaml:"damping"`
	MaxIterations       int     `yaml:"max_iterations"`
	MinDiff             float64 `yaml:"min_diff"`
	K1                  float64 `yaml:"k1"`
	B                   float64 `yaml:"b"`
	RedundancyThreshold float64 `yaml:"redundancy_threshold"`
	OutputSize          int     `yaml:"output_size"`
	Workers             int     `yaml:"workers"`
}

type ParserConfig struct {
	Delimiters    string `yaml:"delimiters"`
	StopwordsPath string `yaml:"stopwords_path"`
	Lowercase     bool   `yaml:"lowercase"`
	Separator     string `yaml:"separator"`
}

type Config struct {
	App     AppConfig     `yaml:"app"`
	Summary SummaryConfig `yaml:"summary"`
	Parser  ParserConfig  `yaml:"parser"`
}

// Load reads configuration from the environment (and a .env file when
// present) on top of the built-in defaults.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile layers defaults, then the YAML file at path (if any, with ${VAR}
// expansion), then environment variables.
func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Env:      Development,
			LogLevel: "",
		},
		Summary: SummaryConfig{
			Mode:                summary.ModeRaw.String(),
			Damping:             summary.DefaultDamping,
			MaxIterations:       summary.DefaultMaxIterations,
			MinDiff:             summary.DefaultMinDiff,
			K1:                  summary.DefaultK1,
			B:                   summary.DefaultB,
			RedundancyThreshold: summary.DefaultRedundancyThreshold,
			OutputSize:          summary.DefaultOutputSize,
			Workers:             calculateDefaultWorkerCount(),
		},
		Parser: ParserConfig{
			Delimiters: parser.DefaultDelimiters,
			Lowercase:  true,
			Separator:  " ",
		},
	}
}

func applyEnv(cfg *Config) {
	cfg.App.Env = parseEnvironment(getEnv("APP_ENV", string(cfg.App.Env)))
	cfg.App.LogLevel = getLogLevel(cfg.App.Env, cfg.App.LogLevel)

	s := &cfg.Summary
	s.Mode = getEnv("SUMMARY_MODE", s.Mode)
	s.Damping = getEnvFloat("SUMMARY_DAMPING", s.Damping)
	s.MaxIterations = getEnvInt("SUMMARY_MAX_ITERATIONS", s.MaxIterations)
	s.MinDiff = getEnvFloat("SUMMARY_MIN_DIFF", s.MinDiff)
	s.K1 = getEnvFloat("SUMMARY_K1", s.K1)
	s.B = getEnvFloat("SUMMARY_B", s.B)
	s.RedundancyThreshold = getEnvFloat("SUMMARY_REDUNDANCY_THRESHOLD", s.RedundancyThreshold)
	s.OutputSize = getEnvInt("SUMMARY_OUTPUT_SIZE", s.OutputSize)
	s.Workers = getEnvInt("SUMMARY_WORKERS", s.Workers)

	p := &cfg.Parser
	p.Delimiters = getEnv("PARSER_DELIMITERS", p.Delimiters)
	p.StopwordsPath = getEnv("PARSER_STOPWORDS_PATH", p.StopwordsPath)
	p.Lowercase = getEnvBool("PARSER_LOWERCASE", p.Lowercase)
	p.Separator = getEnv("PARSER_SEPARATOR", p.Separator)
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := summary.ParseMode(c.Summary.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Summary.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Summary.Workers))
	}
	if opts, err := c.SummaryOptions(); err == nil {
		if err := opts.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// SummaryOptions converts the summary section into pipeline options.
func (c *Config) SummaryOptions() (summary.Options, error) {
	mode, err := summary.ParseMode(c.Summary.Mode)
	if err != nil {
		return summary.Options{}, fmt.Errorf("config: %w", err)
	}
	return summary.Options{
		Mode:                mode,
		Damping:             c.Summary.Damping,
		MaxIterations:       c.Summary.MaxIterations,
		MinDiff:             c.Summary.MinDiff,
		K1:                  c.Summary.K1,
		B:                   c.Summary.B,
		RedundancyThreshold: c.Summary.RedundancyThreshold,
		OutputSize:          c.Summary.OutputSize,
		Workers:             c.Summary.Workers,
	}, nil
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} with the variable's value, leaving
// unset variables untouched.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func parseEnvironment(envStr string) Environment {
	env := Environment(strings.ToLower(envStr))

	switch env {
	case Development, Production:
		return env
	default:
		return Development
	}
}

// calculateDefaultWorkerCount bounds graph construction parallelism; each
// worker scores one sentence row at a time.
func calculateDefaultWorkerCount() int {
	return min(max(runtime.NumCPU(), 1), 8)
}

func getLogLevel(env Environment, current string) string {
	if current != "" {
		return getEnv("APP_LOG_LEVEL", current)
	}
	if env == Production {
		return getEnv("APP_LOG_LEVEL", "error")
	}
	return getEnv("APP_LOG_LEVEL", "info")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
