package config

import (
	"os"
	"path/filepath"
	"testing"

	"rewardpoints/crypto"
)

func TestLoadCreatesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.RPCAddress == "" || cfg.DataDir == "" {
		t.Fatalf("expected defaults to be populated, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
	if _, err := os.Stat(cfg.OwnerKeystorePath); err != nil {
		t.Fatalf("expected keystore to be written: %v", err)
	}
	if _, err := crypto.DecodeAddress(cfg.OwnerAddress); err != nil {
		t.Fatalf("expected valid owner address, got %q: %v", cfg.OwnerAddress, err)
	}
}

func TestLoadExistingKeepsOwner(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	first, err := Load(path)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first.OwnerAddress != second.OwnerAddress {
		t.Fatalf("owner changed across loads: %q vs %q", first.OwnerAddress, second.OwnerAddress)
	}

	owner, err := second.Owner()
	if err != nil {
		t.Fatalf("owner bytes: %v", err)
	}
	if owner == [20]byte{} {
		t.Fatalf("owner must not be the zero identity")
	}
}
