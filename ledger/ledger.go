// Package ledger implements a simulated-trading ledger: a virtual cash
// account, a set of open positions with weighted-average cost basis, and an
// append-only trade log from which performance statistics are derived.
//
// The ledger consumes fills that have already been executed elsewhere; it
// does not route orders or model slippage beyond what it is told. All
// mutation is serialized behind one mutex so a trade is always applied
// whole: cash and positions never disagree with the log.
package ledger

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rustyeddy/simledger/journal"
	"github.com/rustyeddy/simledger/pkg/id"
)

// OversellPolicy decides what happens when a sell asks for more than is held.
type OversellPolicy string

const (
	// OversellCap silently caps the sale at the held amount. Reference
	// behavior of the original engine.
	OversellCap OversellPolicy = "cap"
	// OversellReject fails the trade with ErrInsufficientPosition.
	OversellReject OversellPolicy = "reject"
)

// ProceedsPolicy decides which cash amount a sell credits.
type ProceedsPolicy string

const (
	// ProceedsCaller credits the caller-supplied ToAmount. Reference
	// behavior; trusts the caller to pass amounts consistent with the
	// execution price.
	ProceedsCaller ProceedsPolicy = "caller"
	// ProceedsDerived credits amountSold * executionPrice and rewrites the
	// record's ToAmount to match, so realized P&L, cash and the log always
	// agree even when the caller's quote is inconsistent.
	ProceedsDerived ProceedsPolicy = "derived"
)

const (
	DefaultStartingBalance = 10_000

	// DefaultDustEpsilon is the residual below which a position counts as
	// fully closed, so float residue never leaves phantom holdings behind.
	DefaultDustEpsilon = 1e-6

	reconcileTolerance = 1e-6
)

// Settings configure a new Ledger. Zero values fall back to defaults.
type Settings struct {
	StartingBalance float64
	DustEpsilon     float64
	Oversell        OversellPolicy
	Proceeds        ProceedsPolicy
}

// Ledger owns the account, the open-position set and the trade log. The
// trade log is kept most-recent-first. An injected journal.Recorder receives
// every applied trade and a balance snapshot after each mutation; recording
// is best effort and never affects ledger state.
type Ledger struct {
	mu        sync.RWMutex
	acct      Account
	positions map[string]*Position
	trades    []TradeRecord
	epsilon   float64
	oversell  OversellPolicy
	proceeds  ProceedsPolicy
	rec       journal.Recorder

	now func() time.Time // overridable in tests
}

func New(s Settings, rec journal.Recorder) *Ledger {
	if s.StartingBalance == 0 {
		s.StartingBalance = DefaultStartingBalance
	}
	if s.DustEpsilon == 0 {
		s.DustEpsilon = DefaultDustEpsilon
	}
	if s.Oversell == "" {
		s.Oversell = OversellCap
	}
	if s.Proceeds == "" {
		s.Proceeds = ProceedsCaller
	}
	if rec == nil {
		rec = journal.Nop{}
	}

	return &Ledger{
		acct: Account{
			Mode:            ModeLive,
			StartingBalance: s.StartingBalance,
			CashBalance:     s.StartingBalance,
		},
		positions: make(map[string]*Position),
		epsilon:   s.DustEpsilon,
		oversell:  s.Oversell,
		proceeds:  s.Proceeds,
		rec:       rec,
		now:       time.Now,
	}
}

// SetSimulationMode toggles between live and simulated mode. Enabling on a
// fresh account (no trades, no positions) resets cash to the starting
// balance so repeated enables are an idempotent fresh start; enabling with
// history present leaves the ledger untouched.
func (l *Ledger) SetSimulationMode(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !enabled {
		l.acct.Mode = ModeLive
		return
	}

	l.acct.Mode = ModeSimulated
	if len(l.trades) == 0 && len(l.positions) == 0 {
		l.acct.CashBalance = l.acct.StartingBalance
	}
}

// ExecuteTrade applies a fill to the ledger: updates cash and positions,
// computes realized P&L at apply time, and appends an immutable record to
// the log. The record is journaled after the lock is released.
func (l *Ledger) ExecuteTrade(in TradeInput) (TradeRecord, error) {
	if err := in.validate(); err != nil {
		return TradeRecord{}, err
	}

	l.mu.Lock()

	rec := TradeRecord{
		ID:             id.New(),
		Timestamp:      l.now(),
		Side:           in.Side,
		FromToken:      in.FromToken,
		ToToken:        in.ToToken,
		FromAmount:     in.FromAmount,
		ToAmount:       in.ToAmount,
		ExecutionPrice: in.ExecutionPrice,
		FeeAmount:      in.FeeAmount,
		SlippageBps:    in.SlippageBps,
		Status:         StatusFilled,
	}

	var err error
	switch in.Side {
	case Buy:
		l.applyBuyLocked(&rec)
	case Sell:
		err = l.applySellLocked(&rec)
	}
	if err != nil {
		l.mu.Unlock()
		return TradeRecord{}, err
	}

	l.acct.CashBalance += rec.CashDelta
	l.trades = append([]TradeRecord{rec}, l.trades...)

	snap := l.snapshotLocked(rec.Timestamp)
	l.mu.Unlock()

	// Best effort: the ledger is the source of truth, the journal resyncs
	// independently.
	_ = l.rec.RecordTrade(toJournal(rec))
	_ = l.rec.RecordSnapshot(snap)

	return rec, nil
}

// applyBuyLocked merges the acquired quantity into the target position's
// weighted-average cost basis and re-marks it to the fill price, so the
// position's unrealized P&L is consistent with the fill immediately.
func (l *Ledger) applyBuyLocked(rec *TradeRecord) {
	target, qty, price := rec.ToToken, rec.ToAmount, rec.ExecutionPrice

	p, ok := l.positions[target]
	if !ok {
		l.positions[target] = newPosition(target, qty, price)
	} else {
		p.merge(qty, price)
		p.markTo(price)
	}

	rec.CashDelta = -(rec.FromAmount + rec.FeeAmount)
}

// applySellLocked reduces (or closes) the source position and realizes P&L
// against its average cost. A sell of an untracked token is still recorded,
// with zero P&L: nothing was held to have gained or lost value.
func (l *Ledger) applySellLocked(rec *TradeRecord) error {
	source, qty, price := rec.FromToken, rec.FromAmount, rec.ExecutionPrice

	p, ok := l.positions[source]
	if !ok {
		switch l.proceeds {
		case ProceedsDerived:
			// No holding, no proceeds to derive; the fee is still paid.
			rec.ToAmount = 0
			rec.CashDelta = -rec.FeeAmount
		default:
			rec.CashDelta = rec.ToAmount - rec.FeeAmount
		}
		return nil
	}

	if qty > p.Amount && l.oversell == OversellReject {
		return fmt.Errorf("sell %s: requested %g, held %g: %w",
			source, qty, p.Amount, ErrInsufficientPosition)
	}

	sold := math.Min(qty, p.Amount)
	costBasis := p.AverageCost * sold
	proceeds := price * sold

	rec.RealizedPL = proceeds - costBasis
	if costBasis != 0 {
		rec.RealizedPLPercent = rec.RealizedPL / costBasis * 100
	}

	remaining := p.Amount - sold
	if remaining <= l.epsilon {
		delete(l.positions, source)
	} else {
		p.Amount = remaining
		p.markTo(price)
	}

	switch l.proceeds {
	case ProceedsDerived:
		rec.ToAmount = proceeds
		rec.CashDelta = proceeds - rec.FeeAmount
	default:
		rec.CashDelta = rec.ToAmount - rec.FeeAmount
	}
	return nil
}

// MarkPosition revalues the named position at currentPrice. A token with no
// open position is a no-op.
func (l *Ledger) MarkPosition(token string, currentPrice float64) {
	l.mu.Lock()

	p, ok := l.positions[token]
	if !ok {
		l.mu.Unlock()
		return
	}
	p.markTo(currentPrice)

	snap := l.snapshotLocked(l.now())
	l.mu.Unlock()

	_ = l.rec.RecordSnapshot(snap)
}

// MarkPrices revalues every position named in prices, one snapshot for the
// whole tick. Tokens without open positions are ignored.
func (l *Ledger) MarkPrices(prices map[string]float64) {
	l.mu.Lock()

	marked := false
	for token, price := range prices {
		if p, ok := l.positions[token]; ok {
			p.markTo(price)
			marked = true
		}
	}
	if !marked {
		l.mu.Unlock()
		return
	}

	snap := l.snapshotLocked(l.now())
	l.mu.Unlock()

	_ = l.rec.RecordSnapshot(snap)
}

// Reset clears the trade log and all positions and restores the cash balance
// to the starting balance. Irreversible; confirmation belongs to the caller.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resetLocked()
}

func (l *Ledger) resetLocked() {
	l.positions = make(map[string]*Position)
	l.trades = nil
	l.acct.CashBalance = l.acct.StartingBalance
}

// Account returns a copy of the current account state.
func (l *Ledger) Account() Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.acct
}

// Position returns a copy of the open position for token, if any.
func (l *Ledger) Position(token string) (Position, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.positions[token]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// Positions returns copies of all open positions, sorted by token.
func (l *Ledger) Positions() []Position {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Position, 0, len(l.positions))
	for _, p := range l.positions {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

// Trades returns a copy of the trade log, most recent first.
func (l *Ledger) Trades() []TradeRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]TradeRecord, len(l.trades))
	copy(out, l.trades)
	return out
}

// Reconcile recomputes the cash balance from the trade log and fails if it
// disagrees with the tracked balance. Cheap enough to run after every
// sequence of trades in tests; callers can use it as a corruption check.
func (l *Ledger) Reconcile() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	sum := l.acct.StartingBalance
	for _, t := range l.trades {
		sum += t.CashDelta
	}

	if math.Abs(sum-l.acct.CashBalance) > reconcileTolerance {
		return fmt.Errorf("cash balance %.9f does not reconcile with trade log (%.9f)",
			l.acct.CashBalance, sum)
	}
	return nil
}

// Replay rebuilds ledger state from a persisted log, oldest first, replacing
// whatever the ledger currently holds. Cash is restored from each record's
// stored CashDelta so the replayed balance reconciles with the log exactly;
// positions are rebuilt by re-applying each record's position effect.
// Nothing is journaled during a replay.
func (l *Ledger) Replay(rows []journal.Trade) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.resetLocked()

	for _, r := range rows {
		rec := fromJournal(r)

		switch rec.Side {
		case Buy:
			target, qty, price := rec.ToToken, rec.ToAmount, rec.ExecutionPrice
			if p, ok := l.positions[target]; ok {
				p.merge(qty, price)
				p.markTo(price)
			} else {
				l.positions[target] = newPosition(target, qty, price)
			}
		case Sell:
			source, qty, price := rec.FromToken, rec.FromAmount, rec.ExecutionPrice
			if p, ok := l.positions[source]; ok {
				sold := math.Min(qty, p.Amount)
				remaining := p.Amount - sold
				if remaining <= l.epsilon {
					delete(l.positions, source)
				} else {
					p.Amount = remaining
					p.markTo(price)
				}
			}
		default:
			return fmt.Errorf("replay trade %s: unknown side %q", rec.ID, rec.Side)
		}

		l.acct.CashBalance += rec.CashDelta
		l.trades = append([]TradeRecord{rec}, l.trades...)
	}

	return nil
}

func (l *Ledger) snapshotLocked(ts time.Time) journal.Snapshot {
	var unrealized, held float64
	for _, p := range l.positions {
		unrealized += p.UnrealizedPL
		held += p.Amount * p.MarkPrice
	}

	return journal.Snapshot{
		Time:          ts,
		CashBalance:   l.acct.CashBalance,
		Equity:        l.acct.CashBalance + held,
		UnrealizedPL:  unrealized,
		OpenPositions: len(l.positions),
	}
}

func toJournal(t TradeRecord) journal.Trade {
	return journal.Trade{
		ID:                t.ID,
		Time:              t.Timestamp,
		Side:              string(t.Side),
		FromToken:         t.FromToken,
		ToToken:           t.ToToken,
		FromAmount:        t.FromAmount,
		ToAmount:          t.ToAmount,
		ExecutionPrice:    t.ExecutionPrice,
		FeeAmount:         t.FeeAmount,
		SlippageBps:       t.SlippageBps,
		Status:            string(t.Status),
		RealizedPL:        t.RealizedPL,
		RealizedPLPercent: t.RealizedPLPercent,
		CashDelta:         t.CashDelta,
	}
}

func fromJournal(t journal.Trade) TradeRecord {
	return TradeRecord{
		ID:                t.ID,
		Timestamp:         t.Time,
		Side:              Side(t.Side),
		FromToken:         t.FromToken,
		ToToken:           t.ToToken,
		FromAmount:        t.FromAmount,
		ToAmount:          t.ToAmount,
		ExecutionPrice:    t.ExecutionPrice,
		FeeAmount:         t.FeeAmount,
		SlippageBps:       t.SlippageBps,
		Status:            Status(t.Status),
		RealizedPL:        t.RealizedPL,
		RealizedPLPercent: t.RealizedPLPercent,
		CashDelta:         t.CashDelta,
	}
}
