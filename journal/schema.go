// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	side TEXT NOT NULL,
	from_token TEXT NOT NULL,
	to_token TEXT NOT NULL,
	from_amount REAL NOT NULL,
	to_amount REAL NOT NULL,
	execution_price REAL NOT NULL,
	fee_amount REAL NOT NULL,
	slippage_bps INTEGER NOT NULL,
	status TEXT NOT NULL,
	realized_pl REAL NOT NULL,
	realized_pl_pct REAL NOT NULL,
	cash_delta REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	time DATETIME NOT NULL,
	cash_balance REAL NOT NULL,
	equity REAL NOT NULL,
	unrealized_pl REAL NOT NULL,
	open_positions INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_time ON trades(time);
CREATE INDEX IF NOT EXISTS idx_snapshots_time ON snapshots(time);
`
