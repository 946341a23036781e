// Package config loads the operator identity the CLI acts under. Every
// mutating command carries the configured party; the engine never infers
// identity from ambient state.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config represents the flat tradeflow configuration
type Config struct {
	Version  string `json:"version"`
	PartyDID string `json:"party_did"`          // acting party, did:web:...
	Role     string `json:"role"`               // "EXPORTER" or "IMPORTER"
	DataDir  string `json:"data_dir,omitempty"` // overrides ~/.tradeflow
}

// LoadConfig reads .tradeflow/config.json from the specified directory and
// applies TRADEFLOW_* environment overrides. A .env file in the directory
// is loaded first so local setups can avoid editing the config file.
func LoadConfig(dir string) (*Config, error) {
	// Missing .env is fine; explicit env always wins over it
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	path := filepath.Join(dir, ".tradeflow", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, ".tradeflow")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create .tradeflow dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config) {
	if did := os.Getenv("TRADEFLOW_PARTY_DID"); did != "" {
		cfg.PartyDID = did
	}
	if role := os.Getenv("TRADEFLOW_ROLE"); role != "" {
		cfg.Role = role
	}
	if dataDir := os.Getenv("TRADEFLOW_DATA_DIR"); dataDir != "" {
		cfg.DataDir = dataDir
	}
}

// Validate checks that the config names a usable identity.
func (c *Config) Validate() error {
	if c.PartyDID == "" {
		return fmt.Errorf("party_did is required; run 'tradeflow init' or set TRADEFLOW_PARTY_DID")
	}
	if c.Role != "EXPORTER" && c.Role != "IMPORTER" {
		return fmt.Errorf("role must be EXPORTER or IMPORTER, got %q", c.Role)
	}
	return nil
}
