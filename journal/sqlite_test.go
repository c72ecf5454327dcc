package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func sampleTrade(id string, ts time.Time) Trade {
	return Trade{
		ID:                id,
		Time:              ts,
		Side:              "sell",
		FromToken:         "SOL",
		ToToken:           "USDC",
		FromAmount:        4,
		ToAmount:          600,
		ExecutionPrice:    150,
		FeeAmount:         0.5,
		SlippageBps:       25,
		Status:            "filled",
		RealizedPL:        200,
		RealizedPLPercent: 50,
		CashDelta:         599.5,
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('trades','snapshots')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["trades"])
	assert.True(t, found["snapshots"])
}

func TestSQLiteTradeRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := sampleTrade("01TRADE", ts)

	require.NoError(t, j.RecordTrade(rec))

	got, err := j.GetTrade("01TRADE")
	require.NoError(t, err)

	assert.Equal(t, rec.ID, got.ID)
	assert.True(t, got.Time.Equal(rec.Time))
	assert.Equal(t, rec.Side, got.Side)
	assert.Equal(t, rec.FromToken, got.FromToken)
	assert.Equal(t, rec.ToToken, got.ToToken)
	assert.InDelta(t, rec.FromAmount, got.FromAmount, 1e-9)
	assert.InDelta(t, rec.ToAmount, got.ToAmount, 1e-9)
	assert.InDelta(t, rec.ExecutionPrice, got.ExecutionPrice, 1e-9)
	assert.InDelta(t, rec.FeeAmount, got.FeeAmount, 1e-9)
	assert.Equal(t, rec.SlippageBps, got.SlippageBps)
	assert.Equal(t, rec.Status, got.Status)
	assert.InDelta(t, rec.RealizedPL, got.RealizedPL, 1e-9)
	assert.InDelta(t, rec.RealizedPLPercent, got.RealizedPLPercent, 1e-9)
	assert.InDelta(t, rec.CashDelta, got.CashDelta, 1e-9)
}

func TestSQLiteGetTradeMissing(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	_, err := j.GetTrade("nope")
	assert.ErrorContains(t, err, "not found")
}

func TestSQLiteListTradesBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	base := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(sampleTrade("01A", base)))
	require.NoError(t, j.RecordTrade(sampleTrade("01B", base.Add(time.Hour))))
	require.NoError(t, j.RecordTrade(sampleTrade("01C", base.Add(48*time.Hour))))

	got, err := j.ListTradesBetween(base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "01A", got[0].ID)
	assert.Equal(t, "01B", got[1].ID)
}

func TestSQLiteLoadTradesChronological(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	base := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	// Inserted newest first; LoadTrades must return oldest first.
	require.NoError(t, j.RecordTrade(sampleTrade("01C", base.Add(2*time.Hour))))
	require.NoError(t, j.RecordTrade(sampleTrade("01A", base)))
	require.NoError(t, j.RecordTrade(sampleTrade("01B", base.Add(time.Hour))))

	got, err := j.LoadTrades()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "01A", got[0].ID)
	assert.Equal(t, "01B", got[1].ID)
	assert.Equal(t, "01C", got[2].ID)
}

func TestSQLiteSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	ts := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	rec := Snapshot{
		Time:          ts,
		CashBalance:   9000.5,
		Equity:        10_200.25,
		UnrealizedPL:  199.75,
		OpenPositions: 2,
	}

	require.NoError(t, j.RecordSnapshot(rec))

	got, err := j.ListSnapshotsBetween(ts.Add(-time.Minute), ts.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.True(t, got[0].Time.Equal(rec.Time))
	assert.InDelta(t, rec.CashBalance, got[0].CashBalance, 1e-6)
	assert.InDelta(t, rec.Equity, got[0].Equity, 1e-6)
	assert.InDelta(t, rec.UnrealizedPL, got[0].UnrealizedPL, 1e-6)
	assert.Equal(t, rec.OpenPositions, got[0].OpenPositions)
}
