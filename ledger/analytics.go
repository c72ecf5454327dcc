package ledger

import "time"

// Analytics are pure reads over the account, positions and trade log. They
// take the read lock, never mutate, and may run concurrently with each
// other.

// TotalPnL combines realized effects already folded into the cash balance
// with the unrealized exposure of every open position.
func (l *Ledger) TotalPnL() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalPnLLocked()
}

func (l *Ledger) totalPnLLocked() float64 {
	total := l.acct.CashBalance - l.acct.StartingBalance
	for _, p := range l.positions {
		total += p.UnrealizedPL
	}
	return total
}

func (l *Ledger) TotalPnLPercent() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalPnLPercentLocked()
}

func (l *Ledger) totalPnLPercentLocked() float64 {
	if l.acct.StartingBalance == 0 {
		return 0
	}
	return l.totalPnLLocked() / l.acct.StartingBalance * 100
}

// BestTrade returns the trade with the highest positive realized P&L, or nil
// if no trade has realized a profit.
func (l *Ledger) BestTrade() *TradeRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.bestTradeLocked()
}

func (l *Ledger) bestTradeLocked() *TradeRecord {
	var best *TradeRecord
	for i := range l.trades {
		t := &l.trades[i]
		if t.RealizedPL > 0 && (best == nil || t.RealizedPL > best.RealizedPL) {
			best = t
		}
	}
	if best == nil {
		return nil
	}
	cp := *best
	return &cp
}

// WorstTrade returns the trade with the lowest negative realized P&L, or nil
// if no trade has realized a loss.
func (l *Ledger) WorstTrade() *TradeRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.worstTradeLocked()
}

func (l *Ledger) worstTradeLocked() *TradeRecord {
	var worst *TradeRecord
	for i := range l.trades {
		t := &l.trades[i]
		if t.RealizedPL < 0 && (worst == nil || t.RealizedPL < worst.RealizedPL) {
			worst = t
		}
	}
	if worst == nil {
		return nil
	}
	cp := *worst
	return &cp
}

// WinRate is the percentage of recorded trades with positive realized P&L.
// Every trade in the log carries a realized P&L (zero for buys), so the
// denominator is the full log; an empty log reports 0.
func (l *Ledger) WinRate() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.winRateLocked()
}

func (l *Ledger) winRateLocked() float64 {
	if len(l.trades) == 0 {
		return 0
	}

	wins := 0
	for i := range l.trades {
		if l.trades[i].RealizedPL > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(l.trades)) * 100
}

// BalanceHistory replays the trade log chronologically from the starting
// balance, producing one point per trade plus a seed point just before the
// earliest trade (or at the current time if the log is empty). It folds
// recorded cash deltas only and never reads the tracked cash balance, so it
// stays correct even if that balance were corrupted.
func (l *Ledger) BalanceHistory() []BalancePoint {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.trades) == 0 {
		return []BalancePoint{{Time: l.now(), Balance: l.acct.StartingBalance}}
	}

	// The log is most-recent-first; walk it backwards.
	earliest := l.trades[len(l.trades)-1].Timestamp

	points := make([]BalancePoint, 0, len(l.trades)+1)
	points = append(points, BalancePoint{
		Time:    earliest.Add(-time.Second),
		Balance: l.acct.StartingBalance,
	})

	balance := l.acct.StartingBalance
	for i := len(l.trades) - 1; i >= 0; i-- {
		t := &l.trades[i]
		balance += t.CashDelta
		points = append(points, BalancePoint{Time: t.Timestamp, Balance: balance})
	}
	return points
}

// Performance bundles the headline statistics for dashboards.
type Performance struct {
	TotalPnL        float64
	TotalPnLPercent float64
	WinRate         float64
	TradeCount      int
	BestTrade       *TradeRecord
	WorstTrade      *TradeRecord
}

// Performance computes all summary statistics under a single read lock, so
// the numbers are from one consistent view of the ledger.
func (l *Ledger) Performance() Performance {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Performance{
		TotalPnL:        l.totalPnLLocked(),
		TotalPnLPercent: l.totalPnLPercentLocked(),
		WinRate:         l.winRateLocked(),
		TradeCount:      len(l.trades),
		BestTrade:       l.bestTradeLocked(),
		WorstTrade:      l.worstTradeLocked(),
	}
}
