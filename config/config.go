package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/simledger/ledger"
)

// Config represents the complete simulated-ledger configuration
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Engine  EngineConfig  `json:"engine" yaml:"engine"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// AccountConfig contains account initialization parameters
type AccountConfig struct {
	ID              string  `json:"id" yaml:"id" envconfig:"SIMLEDGER_ACCOUNT_ID"`
	CashSymbol      string  `json:"cash_symbol" yaml:"cash_symbol" envconfig:"SIMLEDGER_CASH_SYMBOL"`
	StartingBalance float64 `json:"starting_balance" yaml:"starting_balance" envconfig:"SIMLEDGER_STARTING_BALANCE"`
}

// EngineConfig contains ledger policy parameters
type EngineConfig struct {
	DustEpsilon    float64 `json:"dust_epsilon" yaml:"dust_epsilon" envconfig:"SIMLEDGER_DUST_EPSILON"`
	OversellPolicy string  `json:"oversell_policy" yaml:"oversell_policy" envconfig:"SIMLEDGER_OVERSELL_POLICY"` // "cap" or "reject"
	ProceedsPolicy string  `json:"proceeds_policy" yaml:"proceeds_policy" envconfig:"SIMLEDGER_PROCEEDS_POLICY"` // "caller" or "derived"
}

// JournalConfig contains persistence parameters
type JournalConfig struct {
	Type          string `json:"type" yaml:"type" envconfig:"SIMLEDGER_JOURNAL_TYPE"` // "none", "csv" or "sqlite"
	TradesFile    string `json:"trades_file,omitempty" yaml:"trades_file,omitempty" envconfig:"SIMLEDGER_TRADES_FILE"`
	SnapshotsFile string `json:"snapshots_file,omitempty" yaml:"snapshots_file,omitempty" envconfig:"SIMLEDGER_SNAPSHOTS_FILE"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty" envconfig:"SIMLEDGER_DB_PATH"`
	Buffer        int    `json:"buffer,omitempty" yaml:"buffer,omitempty" envconfig:"SIMLEDGER_JOURNAL_BUFFER"`
}

// LoadFromFile loads configuration from a file (YAML or JSON based on
// content; YAML is tried first, like the rest of our tooling).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.CashSymbol == "" {
		return fmt.Errorf("account.cash_symbol is required")
	}
	if c.Account.StartingBalance <= 0 {
		return fmt.Errorf("account.starting_balance must be positive")
	}
	if c.Engine.DustEpsilon <= 0 || c.Engine.DustEpsilon >= 1 {
		return fmt.Errorf("engine.dust_epsilon must be in (0, 1)")
	}
	switch ledger.OversellPolicy(c.Engine.OversellPolicy) {
	case ledger.OversellCap, ledger.OversellReject:
	default:
		return fmt.Errorf("engine.oversell_policy must be 'cap' or 'reject'")
	}
	switch ledger.ProceedsPolicy(c.Engine.ProceedsPolicy) {
	case ledger.ProceedsCaller, ledger.ProceedsDerived:
	default:
		return fmt.Errorf("engine.proceeds_policy must be 'caller' or 'derived'")
	}
	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.SnapshotsFile == "" {
			return fmt.Errorf("journal trades_file and snapshots_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.Journal.Buffer < 0 {
		return fmt.Errorf("journal.buffer must not be negative")
	}
	return nil
}

// Settings converts the engine section into ledger settings.
func (c *Config) Settings() ledger.Settings {
	return ledger.Settings{
		StartingBalance: c.Account.StartingBalance,
		DustEpsilon:     c.Engine.DustEpsilon,
		Oversell:        ledger.OversellPolicy(c.Engine.OversellPolicy),
		Proceeds:        ledger.ProceedsPolicy(c.Engine.ProceedsPolicy),
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:              "PAPER-001",
			CashSymbol:      "USDC",
			StartingBalance: ledger.DefaultStartingBalance,
		},
		Engine: EngineConfig{
			DustEpsilon:    ledger.DefaultDustEpsilon,
			OversellPolicy: string(ledger.OversellCap),
			ProceedsPolicy: string(ledger.ProceedsCaller),
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./simledger.sqlite",
		},
	}
}
