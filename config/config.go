package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rewardpoints/crypto"

	"github.com/BurntSushi/toml"
)

type Config struct {
	RPCAddress        string `toml:"RPCAddress"`
	DataDir           string `toml:"DataDir"`
	NetworkName       string `toml:"NetworkName"`
	OwnerAddress      string `toml:"OwnerAddress"`
	OwnerKeystorePath string `toml:"OwnerKeystorePath"`
}

// Load loads the configuration from the given path, creating a default
// configuration and owner keystore on first run. A blank OwnerAddress is
// derived from the keystore so the daemon always boots with a concrete owner
// identity.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	if err := ensureKeystore(path, cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.OwnerAddress) == "" {
		key, err := crypto.LoadFromKeystore(cfg.OwnerKeystorePath, "")
		if err != nil {
			return nil, fmt.Errorf("derive owner address: %w", err)
		}
		cfg.OwnerAddress = key.PubKey().Address().String()
		if err := persist(path, cfg); err != nil {
			return nil, err
		}
	}
	if _, err := crypto.DecodeAddress(cfg.OwnerAddress); err != nil {
		return nil, fmt.Errorf("config %s: invalid OwnerAddress: %w", path, err)
	}

	if strings.TrimSpace(cfg.NetworkName) == "" {
		cfg.NetworkName = "rewardpoints-local"
	}
	if strings.TrimSpace(cfg.RPCAddress) == "" {
		cfg.RPCAddress = ":8080"
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "./rewardpoints-data"
	}

	return cfg, nil
}

// Owner returns the configured owner identity as raw bytes.
func (c *Config) Owner() ([20]byte, error) {
	addr, err := crypto.DecodeAddress(c.OwnerAddress)
	if err != nil {
		return [20]byte{}, err
	}
	return addr.Bytes(), nil
}

func ensureKeystore(configPath string, cfg *Config) error {
	keystorePath := cfg.OwnerKeystorePath
	if keystorePath == "" {
		keystorePath = defaultKeystorePath(configPath)
	}

	if _, err := os.Stat(keystorePath); os.IsNotExist(err) {
		key, genErr := crypto.GeneratePrivateKey()
		if genErr != nil {
			return genErr
		}
		if err := crypto.SaveToKeystore(keystorePath, key, ""); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if cfg.OwnerKeystorePath != keystorePath {
		cfg.OwnerKeystorePath = keystorePath
		return persist(configPath, cfg)
	}

	return nil
}

// createDefault creates and saves a default configuration file.
func createDefault(path string) (*Config, error) {
	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}

	keystorePath := defaultKeystorePath(path)
	if err := crypto.SaveToKeystore(keystorePath, key, ""); err != nil {
		return nil, err
	}

	cfg := &Config{
		RPCAddress:        ":8080",
		DataDir:           "./rewardpoints-data",
		NetworkName:       "rewardpoints-local",
		OwnerAddress:      key.PubKey().Address().String(),
		OwnerKeystorePath: keystorePath,
	}

	if err := persist(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func persist(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func defaultKeystorePath(configPath string) string {
	dir := filepath.Dir(configPath)
	if dir == "." || dir == "" {
		dir = ""
	}
	return filepath.Join(dir, "owner.keystore")
}
