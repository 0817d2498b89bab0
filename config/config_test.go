package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DictDir != "dicts" {
		t.Errorf("DictDir = %q, want dicts", cfg.DictDir)
	}
	if cfg.Tokenizer.Dict != "ipa" || cfg.Logging.Level != "info" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
dictDir: /data/dicts
tokenizer:
  dict: uni
logging:
  level: debug
  format: json
server:
  addr: ":9090"
  allowedOrigins: ["http://localhost:5173"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DictDir != "/data/dicts" || cfg.Tokenizer.Dict != "uni" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Server.Addr != ":9090" || len(cfg.Server.AllowedOrigins) != 1 {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JITEN_DICT_DIR", "/env/dicts")
	t.Setenv("JITEN_TOKENIZER_DICT", "uni")
	t.Setenv("JITEN_LOG_LEVEL", "warn")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DictDir != "/env/dicts" || cfg.Tokenizer.Dict != "uni" || cfg.Logging.Level != "warn" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestValidateRejectsUnknownTokenizerDict(t *testing.T) {
	t.Setenv("JITEN_TOKENIZER_DICT", "edict")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown tokenizer dict")
	}
}

func TestValidateRejectsBarePort(t *testing.T) {
	t.Setenv("JITEN_SERVER_ADDR", "8080")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for bare port in server addr")
	}
}
