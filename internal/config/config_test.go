package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.RegionID != "" || cfg.DNSProvider != "" {
		t.Errorf("expected zero-value config, got %+v", cfg)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	want := &Config{RegionID: "cn-shanghai", DNSProvider: "alidns"}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if got.RegionID != want.RegionID || got.DNSProvider != want.DNSProvider {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestSave_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")

	cfg := &Config{RegionID: "cn-hangzhou"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to exist: %v", err)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for invalid JSON, got nil")
	}
}

func TestRegion_Default(t *testing.T) {
	cfg := &Config{}
	if got := cfg.Region(); got != DefaultRegion {
		t.Errorf("Region() = %q, want %q", got, DefaultRegion)
	}

	cfg.RegionID = "cn-beijing"
	if got := cfg.Region(); got != "cn-beijing" {
		t.Errorf("Region() = %q, want %q", got, "cn-beijing")
	}
}
