package ari

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, hist, err := LoadConfig(filepath.Join(t.TempDir(), "ari.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	def := DefaultConfig()
	if cfg.ParallelThreshold != def.ParallelThreshold || cfg.Workers != def.Workers {
		t.Fatalf("want defaults, got %+v", cfg)
	}
	if hist != "" {
		t.Fatalf("want empty history path, got %q", hist)
	}
}

func TestLoadConfigReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ari.yaml")
	content := "parallel_threshold: 128\nworkers: 3\nhistory_file: /tmp/hist\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, hist, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ParallelThreshold != 128 || cfg.Workers != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if hist != "/tmp/hist" {
		t.Fatalf("history path: got %q", hist)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ari.yaml")
	if err := os.WriteFile(path, []byte("workers: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Workers != 2 {
		t.Fatalf("workers: got %d", cfg.Workers)
	}
	if cfg.ParallelThreshold != DefaultConfig().ParallelThreshold {
		t.Fatalf("threshold should default, got %d", cfg.ParallelThreshold)
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ari.yaml")
	if err := os.WriteFile(path, []byte("workers: [not a number\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfigNormalization(t *testing.T) {
	cfg := Config{ParallelThreshold: -5, Workers: 0}
	cfg.normalize()
	if cfg.ParallelThreshold < 1 || cfg.Workers < 1 || cfg.Stdout == nil {
		t.Fatalf("normalize left bad values: %+v", cfg)
	}
}
