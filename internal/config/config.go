// Package config loads kerfcut runtime settings from a YAML file, an
// optional .env file and KERFCUT_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/piwi3910/kerfcut/internal/model"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultServerAddress is used by `kerfcut serve` when nothing else is set.
const DefaultServerAddress = ":8080"

// Config holds every tunable setting of the CLI and HTTP server.
type Config struct {
	LogLevel        string        `mapstructure:"log_level" yaml:"log_level" env:"KERFCUT_LOG_LEVEL"`
	Algorithm       string        `mapstructure:"algorithm" yaml:"algorithm" env:"KERFCUT_ALGORITHM"`
	Kerf            float64       `mapstructure:"kerf" yaml:"kerf" env:"KERFCUT_KERF"`
	SearchTimeLimit time.Duration `mapstructure:"search_time_limit" yaml:"search_time_limit" env:"KERFCUT_SEARCH_TIME_LIMIT"`
	DataDir         string        `mapstructure:"data_dir" yaml:"data_dir" env:"KERFCUT_DATA_DIR"`
	Server          ServerConfig  `mapstructure:"server" yaml:"server"`
}

// ServerConfig defines runtime parameters for the HTTP server.
type ServerConfig struct {
	Address string `mapstructure:"address" yaml:"address" env:"KERFCUT_SERVER_ADDRESS"`
}

// DefaultDataDir returns ~/.kerfcut, or ./.kerfcut when no home is known.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".kerfcut")
}

// DefaultConfigPath returns the config file inside DefaultDataDir.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	settings := model.DefaultSettings()
	return &Config{
		LogLevel:  "info",
		Algorithm: string(settings.Algorithm),
		Kerf:      settings.Kerf,
		DataDir:   DefaultDataDir(),
		Server:    ServerConfig{Address: DefaultServerAddress},
	}
}

// Load builds a Config from defaults, then the YAML file at path, then the
// .env file at envFile, then the process environment. Missing files are
// skipped; an empty path skips that layer.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := readYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	vars, err := environment(envFile)
	if err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("unable to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readYAML(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}
	return nil
}

// environment merges the .env file with the process environment; the
// process wins.
func environment(envFile string) (map[string]string, error) {
	vars := make(map[string]string)
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			for k, v := range fileVars {
				vars[k] = v
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("error reading env file: %w", err)
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars, nil
}

// Validate checks the algorithm name, kerf and time limit.
func (c *Config) Validate() error {
	if !knownAlgorithm(c.Algorithm) {
		return fmt.Errorf("unknown algorithm %q", c.Algorithm)
	}
	if err := model.ValidateKerf(c.Kerf); err != nil {
		return err
	}
	if c.SearchTimeLimit < 0 {
		return fmt.Errorf("search time limit must not be negative, got %s", c.SearchTimeLimit)
	}
	return nil
}

func knownAlgorithm(name string) bool {
	if name == "" {
		return true
	}
	for _, a := range model.Algorithms {
		if string(a) == name {
			return true
		}
	}
	return false
}

// CutSettings converts the optimizer-related fields.
func (c *Config) CutSettings() model.CutSettings {
	algo := model.Algorithm(c.Algorithm)
	if algo == "" {
		algo = model.AlgorithmBest
	}
	return model.CutSettings{
		Algorithm:       algo,
		Kerf:            c.Kerf,
		SearchTimeLimit: c.SearchTimeLimit,
	}
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
