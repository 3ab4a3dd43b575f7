// Package config loads the network definitions used to resolve endpoint
// aliases into websocket and faucet URLs.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Network describes one ledger network access point.
type Network struct {
	URL         string `yaml:"url"`
	FaucetURL   string `yaml:"faucet_url"`
	Description string `yaml:"description"`
}

// Config models the networks configuration file.
type Config struct {
	DefaultNetwork string             `yaml:"default_network"`
	Networks       map[string]Network `yaml:"networks"`
}

// Default returns the built-in network catalog, used when no file is
// provided.
func Default() *Config {
	return &Config{
		DefaultNetwork: "testnet",
		Networks: map[string]Network{
			"testnet": {
				URL:         "wss://s.altnet.rippletest.net:51233",
				FaucetURL:   "https://faucet.altnet.rippletest.net/accounts",
				Description: "XRP Ledger Testnet",
			},
			"devnet": {
				URL:         "wss://s.devnet.rippletest.net:51233",
				FaucetURL:   "https://faucet.devnet.rippletest.net/accounts",
				Description: "XRP Ledger Devnet",
			},
			"mainnet": {
				URL:         "wss://xrplcluster.com",
				Description: "XRP Ledger Mainnet (no faucet)",
			},
		},
	}
}

// Load parses the YAML networks file. An empty path yields the built-in
// defaults; networks defined in the file are merged over them.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read networks config: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(content, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse networks config: %w", err)
	}

	for name, network := range loaded.Networks {
		cfg.Networks[name] = network
	}
	if loaded.DefaultNetwork != "" {
		cfg.DefaultNetwork = loaded.DefaultNetwork
	}
	if _, ok := cfg.Networks[cfg.DefaultNetwork]; !ok {
		return nil, fmt.Errorf("default network %q is not defined", cfg.DefaultNetwork)
	}
	return cfg, nil
}

// Resolve maps an endpoint identifier to a network definition. Known
// aliases resolve from the catalog; anything that looks like a websocket
// URL passes through as a literal endpoint without a faucet.
func (c *Config) Resolve(name string) (Network, error) {
	if name == "" {
		name = c.DefaultNetwork
	}
	if network, ok := c.Networks[name]; ok {
		return network, nil
	}
	if strings.HasPrefix(name, "ws://") || strings.HasPrefix(name, "wss://") {
		return Network{URL: name}, nil
	}
	return Network{}, fmt.Errorf("unknown network %q", name)
}
