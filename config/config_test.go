package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/simledger/ledger"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, ledger.DefaultStartingBalance, int(cfg.Account.StartingBalance))
}

func TestLoadFromFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	data := `
account:
  id: TEST-1
  cash_symbol: USDC
  starting_balance: 5000
engine:
  dust_epsilon: 0.000001
  oversell_policy: reject
  proceeds_policy: derived
journal:
  type: sqlite
  db_path: ./test.sqlite
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "TEST-1", cfg.Account.ID)
	assert.InDelta(t, 5000, cfg.Account.StartingBalance, 1e-9)
	assert.Equal(t, "reject", cfg.Engine.OversellPolicy)
	assert.Equal(t, "derived", cfg.Engine.ProceedsPolicy)

	s := cfg.Settings()
	assert.Equal(t, ledger.OversellReject, s.Oversell)
	assert.Equal(t, ledger.ProceedsDerived, s.Proceeds)
}

func TestLoadFromFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.Account.ID = "JSON-1"
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "JSON-1", got.Account.ID)
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name   string
		mut    func(*Config)
		errStr string
	}{
		{"missing cash symbol", func(c *Config) { c.Account.CashSymbol = "" }, "cash_symbol"},
		{"negative balance", func(c *Config) { c.Account.StartingBalance = -1 }, "starting_balance"},
		{"bad epsilon", func(c *Config) { c.Engine.DustEpsilon = 2 }, "dust_epsilon"},
		{"bad oversell", func(c *Config) { c.Engine.OversellPolicy = "panic" }, "oversell_policy"},
		{"bad proceeds", func(c *Config) { c.Engine.ProceedsPolicy = "guess" }, "proceeds_policy"},
		{"bad journal type", func(c *Config) { c.Journal.Type = "postgres" }, "journal.type"},
		{"csv missing files", func(c *Config) { c.Journal.Type = "csv" }, "trades_file"},
		{"sqlite missing path", func(c *Config) { c.Journal.DBPath = "" }, "db_path"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mut(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errStr)
		})
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SIMLEDGER_STARTING_BALANCE", "2500")
	t.Setenv("SIMLEDGER_OVERSELL_POLICY", "reject")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.InDelta(t, 2500, cfg.Account.StartingBalance, 1e-9)
	assert.Equal(t, "reject", cfg.Engine.OversellPolicy)
	// Unset values keep their defaults.
	assert.Equal(t, "USDC", cfg.Account.CashSymbol)
}

func TestApplyEnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Default()
	cfg.Account.StartingBalance = 5000
	require.NoError(t, cfg.SaveToFile(path))

	t.Setenv("SIMLEDGER_STARTING_BALANCE", "7777")

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NoError(t, ApplyEnv(loaded))

	assert.InDelta(t, 7777, loaded.Account.StartingBalance, 1e-9)
}
