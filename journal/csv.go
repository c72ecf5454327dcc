// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSV struct {
	trades *csv.Writer
	snaps  *csv.Writer
	tf, sf *os.File
}

func NewCSV(tradesPath, snapshotsPath string) (*CSV, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(snapshotsPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	sw := csv.NewWriter(sf)

	if err := tw.Write([]string{
		"trade_id", "time", "side", "from_token", "to_token", "from_amount",
		"to_amount", "execution_price", "fee_amount", "slippage_bps", "status",
		"realized_pl", "realized_pl_pct", "cash_delta",
	}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{
		"time", "cash_balance", "equity", "unrealized_pl", "open_positions",
	}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSV{tw, sw, tf, sf}, nil
}

func (j *CSV) RecordTrade(t Trade) error {
	err := j.trades.Write([]string{
		t.ID,
		t.Time.Format(time.RFC3339),
		t.Side,
		t.FromToken,
		t.ToToken,
		f(t.FromAmount),
		f(t.ToAmount),
		f(t.ExecutionPrice),
		f(t.FeeAmount),
		strconv.Itoa(t.SlippageBps),
		t.Status,
		f(t.RealizedPL),
		f(t.RealizedPLPercent),
		f(t.CashDelta),
	})
	if err != nil {
		return err
	}

	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSV) RecordSnapshot(s Snapshot) error {
	err := j.snaps.Write([]string{
		s.Time.Format(time.RFC3339),
		f(s.CashBalance),
		f(s.Equity),
		f(s.UnrealizedPL),
		strconv.Itoa(s.OpenPositions),
	})
	if err != nil {
		return err
	}

	j.snaps.Flush()
	return j.snaps.Error()
}

func (j *CSV) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.snaps.Flush()
	if err := j.snaps.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.sf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
