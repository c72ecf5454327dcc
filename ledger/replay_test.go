package ledger

import (
	"testing"
)

// replay into a fresh ledger must reproduce cash, positions and log exactly.
func TestReplayReproducesState(t *testing.T) {
	src, rec := newTestLedger(t, Settings{StartingBalance: 10_000})

	buy(t, src, "SOL", 10, 100, 1)
	buy(t, src, "SOL", 10, 200, 1)
	buy(t, src, "JUP", 500, 1.2, 0.5)
	sell(t, src, "SOL", 8, 250, 1)
	sell(t, src, "JUP", 600, 1.1, 0.5) // oversold, capped and fully closed
	sell(t, src, "BONK", 10, 2, 0)     // untracked

	dst, _ := newTestLedger(t, Settings{StartingBalance: 10_000})
	if err := dst.Replay(rec.trades); err != nil {
		t.Fatalf("replay: %v", err)
	}

	if !approxEqual(dst.Account().CashBalance, src.Account().CashBalance, 1e-9) {
		t.Fatalf("cash mismatch after replay: got %.6f want %.6f",
			dst.Account().CashBalance, src.Account().CashBalance)
	}

	srcPos := src.Positions()
	dstPos := dst.Positions()
	if len(srcPos) != len(dstPos) {
		t.Fatalf("position count mismatch: got %d want %d", len(dstPos), len(srcPos))
	}
	for i := range srcPos {
		if srcPos[i].Token != dstPos[i].Token ||
			!approxEqual(srcPos[i].Amount, dstPos[i].Amount, 1e-9) ||
			!approxEqual(srcPos[i].AverageCost, dstPos[i].AverageCost, 1e-9) {
			t.Fatalf("position %s mismatch after replay", srcPos[i].Token)
		}
	}

	srcTrades := src.Trades()
	dstTrades := dst.Trades()
	if len(srcTrades) != len(dstTrades) {
		t.Fatalf("trade count mismatch")
	}
	for i := range srcTrades {
		if srcTrades[i].ID != dstTrades[i].ID {
			t.Fatalf("trade order differs after replay")
		}
		if !approxEqual(srcTrades[i].RealizedPL, dstTrades[i].RealizedPL, 1e-9) {
			t.Fatalf("realized P&L differs after replay")
		}
	}

	if err := dst.Reconcile(); err != nil {
		t.Fatalf("replayed ledger does not reconcile: %v", err)
	}
}

func TestReplayReplacesExistingState(t *testing.T) {
	src, rec := newTestLedger(t, Settings{StartingBalance: 10_000})
	buy(t, src, "SOL", 5, 100, 0)

	dst, _ := newTestLedger(t, Settings{StartingBalance: 10_000})
	buy(t, dst, "JUP", 100, 1, 0)

	if err := dst.Replay(rec.trades); err != nil {
		t.Fatalf("replay: %v", err)
	}

	if _, ok := dst.Position("JUP"); ok {
		t.Fatalf("replay must replace prior state")
	}
	if _, ok := dst.Position("SOL"); !ok {
		t.Fatalf("replayed position missing")
	}
}

func TestReplayRejectsUnknownSide(t *testing.T) {
	src, rec := newTestLedger(t, Settings{StartingBalance: 10_000})
	buy(t, src, "SOL", 5, 100, 0)

	rows := rec.trades
	rows[0].Side = "hold"

	dst, _ := newTestLedger(t, Settings{StartingBalance: 10_000})
	if err := dst.Replay(rows); err == nil {
		t.Fatalf("expected error for unknown side")
	}
}

func TestReplayNothingJournaled(t *testing.T) {
	src, srcRec := newTestLedger(t, Settings{StartingBalance: 10_000})
	buy(t, src, "SOL", 5, 100, 0)

	dst, dstRec := newTestLedger(t, Settings{StartingBalance: 10_000})
	if err := dst.Replay(srcRec.trades); err != nil {
		t.Fatalf("replay: %v", err)
	}

	if len(dstRec.trades) != 0 || len(dstRec.snaps) != 0 {
		t.Fatalf("replay must not write to the journal")
	}
}
