package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port    int           `env:"DOCSTATS_TEST_PORT" envDefault:"123"`
	Timeout time.Duration `env:"DOCSTATS_TEST_TIMEOUT" envDefault:"2s"`
}

type prefixedTestConfig struct {
	Addr  string `env:"ADDR" envDefault:"localhost:1"`
	Debug bool   `env:"DEBUG"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if cfg.Timeout != 2*time.Second {
		t.Fatalf("expected default timeout 2s, got %s", cfg.Timeout)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("DOCSTATS_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvWithPrefixReadsPrefixedNames(t *testing.T) {
	t.Setenv("DOCSTATS_PREFIX_TEST_ADDR", "127.0.0.1:9")
	t.Setenv("DOCSTATS_PREFIX_TEST_DEBUG", "true")

	var cfg prefixedTestConfig
	if err := ParseEnvWithPrefix(&cfg, "DOCSTATS_PREFIX_TEST_"); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, "127.0.0.1:9")
	}
	if !cfg.Debug {
		t.Fatal("expected Debug to be true")
	}
}

func TestParseEnvWithPrefixErrorNamesPrefix(t *testing.T) {
	t.Setenv("DOCSTATS_PREFIX_BAD_DEBUG", "maybe")

	var cfg prefixedTestConfig
	err := ParseEnvWithPrefix(&cfg, "DOCSTATS_PREFIX_BAD_")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "DOCSTATS_PREFIX_BAD_") {
		t.Fatalf("expected prefix in error, got %v", err)
	}
}
