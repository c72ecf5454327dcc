// journal/journal.go
package journal

import "time"

// Trade is the persisted form of a ledger trade record. CashDelta is the net
// cash effect the ledger actually applied, so a stored log can be folded back
// into a balance without re-deriving buy/sell semantics.
type Trade struct {
	ID                string
	Time              time.Time
	Side              string
	FromToken         string
	ToToken           string
	FromAmount        float64
	ToAmount          float64
	ExecutionPrice    float64
	FeeAmount         float64
	SlippageBps       int
	Status            string
	RealizedPL        float64
	RealizedPLPercent float64
	CashDelta         float64
}

// Snapshot captures the account after a mutation: cash, equity (cash plus
// open positions valued at mark), and the open-position count.
type Snapshot struct {
	Time          time.Time
	CashBalance   float64
	Equity        float64
	UnrealizedPL  float64
	OpenPositions int
}

type Recorder interface {
	RecordTrade(Trade) error
	RecordSnapshot(Snapshot) error
	Close() error
}

// Nop discards everything. Useful for tests and pure in-memory sessions.
type Nop struct{}

func (Nop) RecordTrade(Trade) error       { return nil }
func (Nop) RecordSnapshot(Snapshot) error { return nil }
func (Nop) Close() error                  { return nil }
