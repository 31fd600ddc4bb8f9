package config

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds everything the process needs at startup. Values merge in
// order: defaults, then the config file, then flags.
type Config struct {
	Port  int    `yaml:"port"`
	Token string `yaml:"token"`

	// Shell overrides the platform default shell for new terminal
	// sessions. May carry arguments ("/usr/bin/fish -l").
	Shell string `yaml:"shell"`

	SearchBatchSize  int `yaml:"search_batch_size"`
	SearchMaxResults int `yaml:"search_max_results"`

	ConfigPath string `yaml:"-"`
	PrintToken bool   `yaml:"-"`
}

// Load builds the effective configuration. A missing config file is fine;
// an empty token is generated and written back so restarts keep it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             8766,
		SearchBatchSize:  20,
		SearchMaxResults: 100,
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("config: home directory: %w", err)
	}
	cfg.ConfigPath = filepath.Join(homeDir, ".config", "fileterm", "config.yaml")

	if err := cfg.loadFromFile(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: load %s: %w", cfg.ConfigPath, err)
	}

	flag.IntVar(&cfg.Port, "port", cfg.Port, "server port (1-65535)")
	flag.StringVar(&cfg.Token, "token", cfg.Token, "authentication token (auto-generated if empty)")
	flag.StringVar(&cfg.Shell, "shell", cfg.Shell, "shell command for new sessions (default: platform shell)")
	flag.BoolVar(&cfg.PrintToken, "print-token", false, "print token to stdout (for local debugging)")
	flag.Parse()

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("config: invalid port %d: must be between 1 and 65535", cfg.Port)
	}
	if cfg.SearchBatchSize < 1 || cfg.SearchMaxResults < 1 {
		return nil, fmt.Errorf("config: search caps must be positive")
	}

	if cfg.Token == "" {
		token, err := generateToken()
		if err != nil {
			return nil, fmt.Errorf("config: generate token: %w", err)
		}
		cfg.Token = token
		if err := cfg.saveToFile(); err != nil {
			return nil, fmt.Errorf("config: save %s: %w", cfg.ConfigPath, err)
		}
	}

	return cfg, nil
}

func (c *Config) loadFromFile() error {
	data, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) saveToFile() error {
	if err := os.MkdirAll(filepath.Dir(c.ConfigPath), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.ConfigPath, data, 0o600)
}

func generateToken() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
