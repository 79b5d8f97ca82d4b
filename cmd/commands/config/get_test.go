package config

import (
	"strings"
	"testing"

	"github.com/QsSama-W/aliddns/internal/config"
)

func TestGet_SingleKey(t *testing.T) {
	setupTestConfig(t)

	cfg := &config.Config{RegionID: "cn-shenzhen"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	stdout, _ := execConfig(t, "get", "region")

	if strings.TrimSpace(stdout) != "cn-shenzhen" {
		t.Errorf("stdout = %q, want cn-shenzhen", stdout)
	}
}

func TestGet_UnsetKey(t *testing.T) {
	setupTestConfig(t)

	stdout, _ := execConfig(t, "get", "region")

	if !strings.Contains(stdout, "not set") {
		t.Errorf("stdout = %q, want 'not set'", stdout)
	}
}

func TestGet_ListsAllKeys(t *testing.T) {
	setupTestConfig(t)

	cfg := &config.Config{RegionID: "cn-hangzhou", DNSProvider: "alidns"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	stdout, _ := execConfig(t, "get")

	for _, want := range []string{"region: cn-hangzhou", "dns-provider: alidns"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestGet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "get", "bogus")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("stderr = %q", stderr)
	}
}
