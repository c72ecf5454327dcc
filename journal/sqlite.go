package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t Trade) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, time, side, from_token, to_token, from_amount, to_amount,
		 execution_price, fee_amount, slippage_bps, status, realized_pl, realized_pl_pct, cash_delta)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Time, t.Side, t.FromToken, t.ToToken, t.FromAmount, t.ToAmount,
		t.ExecutionPrice, t.FeeAmount, t.SlippageBps, t.Status, t.RealizedPL,
		t.RealizedPLPercent, t.CashDelta,
	)
	return err
}

func (j *SQLite) RecordSnapshot(s Snapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO snapshots
		(time, cash_balance, equity, unrealized_pl, open_positions)
		VALUES (?, ?, ?, ?, ?)`,
		s.Time, s.CashBalance, s.Equity, s.UnrealizedPL, s.OpenPositions,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
