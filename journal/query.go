package journal

import (
	"database/sql"
	"fmt"
	"time"
)

const tradeColumns = `trade_id, time, side, from_token, to_token, from_amount, to_amount,
	execution_price, fee_amount, slippage_bps, status, realized_pl, realized_pl_pct, cash_delta`

func scanTrade(row interface{ Scan(...any) error }) (Trade, error) {
	var t Trade
	err := row.Scan(
		&t.ID,
		&t.Time,
		&t.Side,
		&t.FromToken,
		&t.ToToken,
		&t.FromAmount,
		&t.ToAmount,
		&t.ExecutionPrice,
		&t.FeeAmount,
		&t.SlippageBps,
		&t.Status,
		&t.RealizedPL,
		&t.RealizedPLPercent,
		&t.CashDelta,
	)
	return t, err
}

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (Trade, error) {
	row := j.db.QueryRow(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_id = ?`, tradeID)

	t, err := scanTrade(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Trade{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return Trade{}, err
	}
	return t, nil
}

// ListTradesBetween returns trades whose time is within [start, end),
// oldest first.
func (j *SQLite) ListTradesBetween(start, end time.Time) ([]Trade, error) {
	rows, err := j.db.Query(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTrades(rows)
}

// LoadTrades returns the entire stored log in chronological order. The ID
// is the tiebreaker for trades recorded in the same instant; IDs are ULIDs,
// so lexical order is generation order.
func (j *SQLite) LoadTrades() ([]Trade, error) {
	rows, err := j.db.Query(`
		SELECT ` + tradeColumns + `
		FROM trades
		ORDER BY time ASC, trade_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTrades(rows)
}

func collectTrades(rows *sql.Rows) ([]Trade, error) {
	var out []Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSnapshotsBetween returns account snapshots within [start, end),
// oldest first.
func (j *SQLite) ListSnapshotsBetween(start, end time.Time) ([]Snapshot, error) {
	rows, err := j.db.Query(`
		SELECT time, cash_balance, equity, unrealized_pl, open_positions
		FROM snapshots
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(
			&s.Time,
			&s.CashBalance,
			&s.Equity,
			&s.UnrealizedPL,
			&s.OpenPositions,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
