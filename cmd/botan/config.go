package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds defaults for commands. Command line flags take precedence.
type Config struct {
	// Hash is the default digest algorithm for hash and kdf commands
	Hash string `yaml:"hash"`

	// Key holds key generation defaults
	Key KeyConfig `yaml:"key"`

	// Padding maps key algorithm to signature padding scheme, e.g.
	// ECDSA: "EMSA1(SHA-384)"
	Padding map[string]string `yaml:"padding"`

	// PBKDFIterations is the iteration count for password based operations
	PBKDFIterations int `yaml:"pbkdf_iterations"`
}

// KeyConfig holds key generation defaults.
type KeyConfig struct {
	Algorithm string `yaml:"algorithm"`
	Params    string `yaml:"params"`
}

// DefaultConfig returns configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Hash: "SHA-256",
		Key: KeyConfig{
			Algorithm: "ECDSA",
			Params:    "secp256r1",
		},
		Padding:         map[string]string{},
		PBKDFIterations: 100000,
	}
}

// LoadConfig reads YAML configuration from path. Fields missing in the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Hash == "" {
		return fmt.Errorf("hash must not be empty")
	}
	if c.Key.Algorithm == "" {
		return fmt.Errorf("key algorithm must not be empty")
	}
	if c.PBKDFIterations <= 0 {
		return fmt.Errorf("pbkdf_iterations must be positive, got %d", c.PBKDFIterations)
	}
	return nil
}
