package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Port              int    `yaml:"port"`
	OutputDir         string `yaml:"output_dir"`
	Renderer          string `yaml:"renderer"` // "graphviz" or "quickchart"
	GraphvizBin       string `yaml:"graphviz_bin"`
	QuickChartURL     string `yaml:"quickchart_url"`
	APIKey            string `yaml:"api_key"`
	RateLimit         int    `yaml:"rate_limit"`
	RateWindowSeconds int    `yaml:"rate_window_seconds"`
	MinInputChars     int    `yaml:"min_input_chars"`
	CleanupMaxAgeHrs  int    `yaml:"cleanup_max_age_hours"`
}

func defaults() Config {
	return Config{
		Port:              8090,
		OutputDir:         "output",
		Renderer:          "graphviz",
		GraphvizBin:       "dot",
		QuickChartURL:     "https://quickchart.io",
		RateLimit:         10,
		RateWindowSeconds: 60,
		MinInputChars:     50,
		CleanupMaxAgeHrs:  24,
	}
}

// RateWindow returns the rate limiter window as a duration.
func (c Config) RateWindow() time.Duration {
	return time.Duration(c.RateWindowSeconds) * time.Second
}

// CleanupMaxAge returns the output janitor's maximum file age.
func (c Config) CleanupMaxAge() time.Duration {
	return time.Duration(c.CleanupMaxAgeHrs) * time.Hour
}

// Load reads configuration from a YAML file (if path is non-empty),
// then applies environment variable overrides. An empty path returns
// defaults + env overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if v := os.Getenv("LEXIGRAPH_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid LEXIGRAPH_PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("LEXIGRAPH_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("LEXIGRAPH_RENDERER"); v != "" {
		cfg.Renderer = v
	}
	if v := os.Getenv("LEXIGRAPH_GRAPHVIZ_BIN"); v != "" {
		cfg.GraphvizBin = v
	}
	if v := os.Getenv("LEXIGRAPH_QUICKCHART_URL"); v != "" {
		cfg.QuickChartURL = v
	}
	if v := os.Getenv("LEXIGRAPH_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("LEXIGRAPH_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid LEXIGRAPH_RATE_LIMIT %q: %w", v, err)
		}
		cfg.RateLimit = n
	}
	if v := os.Getenv("LEXIGRAPH_RATE_WINDOW_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid LEXIGRAPH_RATE_WINDOW_SECONDS %q: %w", v, err)
		}
		cfg.RateWindowSeconds = n
	}
	if v := os.Getenv("LEXIGRAPH_CLEANUP_MAX_AGE_HOURS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid LEXIGRAPH_CLEANUP_MAX_AGE_HOURS %q: %w", v, err)
		}
		cfg.CleanupMaxAgeHrs = n
	}
	if v := os.Getenv("LEXIGRAPH_MIN_INPUT_CHARS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid LEXIGRAPH_MIN_INPUT_CHARS %q: %w", v, err)
		}
		cfg.MinInputChars = n
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Renderer {
	case "graphviz", "quickchart":
	default:
		return fmt.Errorf("config: unknown renderer %q (want graphviz or quickchart)", c.Renderer)
	}
	if c.MinInputChars < 1 {
		return fmt.Errorf("config: min_input_chars must be positive, got %d", c.MinInputChars)
	}
	return nil
}
