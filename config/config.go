// Package config loads application configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// DictDir is the collections root: one subdirectory per dictionary.
	DictDir   string          `yaml:"dictDir"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Logging   LoggingConfig   `yaml:"logging"`
	// DumpDir, when set, receives pretty-JSON dumps of each query's
	// results. Empty disables dumping.
	DumpDir string       `yaml:"dumpDir"`
	Server  ServerConfig `yaml:"server"`
}

// TokenizerConfig selects the kagome dictionary backing lemma fallback.
type TokenizerConfig struct {
	Dict string `yaml:"dict"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig holds HTTP settings for the server command.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DictDir:   "dicts",
		Tokenizer: TokenizerConfig{Dict: "ipa"},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Server:    ServerConfig{Addr: ":8080"},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides (JITEN_DICT_DIR, JITEN_TOKENIZER_DICT,
// JITEN_LOG_LEVEL, JITEN_LOG_FORMAT, JITEN_DUMP_DIR, JITEN_SERVER_ADDR).
// An empty path skips the file and uses defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("JITEN_DICT_DIR"); v != "" {
		cfg.DictDir = v
	}
	if v := os.Getenv("JITEN_TOKENIZER_DICT"); v != "" {
		cfg.Tokenizer.Dict = v
	}
	if v := os.Getenv("JITEN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("JITEN_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("JITEN_DUMP_DIR"); v != "" {
		cfg.DumpDir = v
	}
	if v := os.Getenv("JITEN_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

func (c Config) validate() error {
	if c.DictDir == "" {
		return errors.New("dictDir must not be empty")
	}
	switch c.Tokenizer.Dict {
	case "", "ipa", "uni":
	default:
		return fmt.Errorf("tokenizer.dict must be ipa or uni, got %q", c.Tokenizer.Dict)
	}
	if c.Server.Addr != "" {
		if _, err := strconv.Atoi(c.Server.Addr); err == nil {
			return fmt.Errorf("server.addr %q looks like a bare port; use %q", c.Server.Addr, ":"+c.Server.Addr)
		}
	}
	return nil
}
