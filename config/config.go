// Package config loads inspector settings from a YAML file, .env files and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jayozer/SeoTagInspector/scoring"
)

// Environment variables that override the file
const (
	EnvAnalyzerEndpoint = "ANALYZER_ENDPOINT"
	EnvAnalyzerTimeout  = "ANALYZER_TIMEOUT"
	EnvScoringMode      = "SCORING_MODE"
	EnvPort             = "PORT"
	EnvGinMode          = "GIN_MODE"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFile          = "LOG_FILE"
	EnvStatsDir         = "STATS_DIR"
	EnvDevMode          = "DEV_MODE"
)

type Config struct {
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Stats    StatsConfig    `yaml:"stats"`
	DevMode  bool           `yaml:"dev_mode"`
}

// AnalyzerConfig points at the analysis service
type AnalyzerConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

type ScoringConfig struct {
	Mode string `yaml:"mode"`
}

// ServerConfig configures the web frontend. Rate is requests per second per client.
type ServerConfig struct {
	Port    string  `yaml:"port"`
	GinMode string  `yaml:"gin_mode"`
	Rate    float64 `yaml:"rate"`
	Burst   int     `yaml:"burst"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type StatsConfig struct {
	DataDir string `yaml:"data_dir"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Analyzer: AnalyzerConfig{
			Endpoint: "http://localhost:5000/analyze",
			Timeout:  30 * time.Second,
		},
		Scoring: ScoringConfig{Mode: string(scoring.DefaultMode)},
		Server: ServerConfig{
			Port:    "8082",
			GinMode: gin.ReleaseMode,
			Rate:    2,
			Burst:   5,
		},
		Log:   LogConfig{Level: "info"},
		Stats: StatsConfig{DataDir: "data"},
	}
}

// LoadEnv loads .env.development, falling back to .env. Missing files are not an error.
func LoadEnv() {
	if err := godotenv.Load(".env.development"); err != nil {
		_ = godotenv.Load()
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path or a missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("could not read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Analyzer.Endpoint, EnvAnalyzerEndpoint)
	setString(&c.Scoring.Mode, EnvScoringMode)
	setString(&c.Server.Port, EnvPort)
	setString(&c.Server.GinMode, EnvGinMode)
	setString(&c.Log.Level, EnvLogLevel)
	setString(&c.Log.File, EnvLogFile)
	setString(&c.Stats.DataDir, EnvStatsDir)

	if v := os.Getenv(EnvAnalyzerTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAnalyzerTimeout, v, err)
		}
		c.Analyzer.Timeout = d
	}
	if v := os.Getenv(EnvDevMode); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvDevMode, v, err)
		}
		c.DevMode = dev
	}
	return nil
}

func setString(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.Analyzer.Endpoint == "" {
		return errors.New("analyzer endpoint is required")
	}
	if c.Analyzer.Timeout <= 0 {
		return fmt.Errorf("analyzer timeout must be positive, got %s", c.Analyzer.Timeout)
	}
	if _, err := scoring.ParseMode(c.Scoring.Mode); err != nil {
		return err
	}
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	switch c.Server.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("unknown gin mode %q", c.Server.GinMode)
	}
	if c.Server.Rate <= 0 || c.Server.Burst <= 0 {
		return fmt.Errorf("rate limit must be positive, got rate %v burst %d", c.Server.Rate, c.Server.Burst)
	}
	return nil
}

// ScoringMode returns the parsed scoring mode; Validate has already checked it
func (c *Config) ScoringMode() scoring.Mode {
	mode, err := scoring.ParseMode(c.Scoring.Mode)
	if err != nil {
		return scoring.DefaultMode
	}
	return mode
}
