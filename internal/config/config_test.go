package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFileParsesYAML(t *testing.T) {
	cfg := &Config{Port: 8766, SearchBatchSize: 20, SearchMaxResults: 100}
	cfg.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")

	content := "port: 9999\ntoken: test-token\nshell: /bin/zsh -l\nsearch_max_results: 250\n"
	if err := os.WriteFile(cfg.ConfigPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	if err := cfg.loadFromFile(); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}

	if cfg.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Port)
	}
	if cfg.Token != "test-token" {
		t.Errorf("Token = %q, want test-token", cfg.Token)
	}
	if cfg.Shell != "/bin/zsh -l" {
		t.Errorf("Shell = %q, want /bin/zsh -l", cfg.Shell)
	}
	if cfg.SearchMaxResults != 250 {
		t.Errorf("SearchMaxResults = %d, want 250", cfg.SearchMaxResults)
	}
	// Untouched keys keep their defaults.
	if cfg.SearchBatchSize != 20 {
		t.Errorf("SearchBatchSize = %d, want default 20", cfg.SearchBatchSize)
	}
}

func TestSaveToFileRoundTrip(t *testing.T) {
	cfg := &Config{
		Port:             8800,
		Token:            "abc123",
		Shell:            "/bin/bash",
		SearchBatchSize:  10,
		SearchMaxResults: 50,
		ConfigPath:       filepath.Join(t.TempDir(), "nested", "config.yaml"),
	}

	if err := cfg.saveToFile(); err != nil {
		t.Fatalf("saveToFile() error = %v", err)
	}

	info, err := os.Stat(cfg.ConfigPath)
	if err != nil {
		t.Fatalf("stat config file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file mode = %o, want 600 (contains the token)", perm)
	}

	reloaded := &Config{ConfigPath: cfg.ConfigPath}
	if err := reloaded.loadFromFile(); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if reloaded.Port != cfg.Port || reloaded.Token != cfg.Token || reloaded.Shell != cfg.Shell {
		t.Errorf("reloaded = %+v, want %+v", reloaded, cfg)
	}
}

func TestLoadFromFileMissingIsNotExist(t *testing.T) {
	cfg := &Config{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")}
	if err := cfg.loadFromFile(); !os.IsNotExist(err) {
		t.Errorf("loadFromFile() error = %v, want IsNotExist", err)
	}
}
