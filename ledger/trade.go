package ledger

import (
	"math"
	"time"
)

type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Status of a trade record. This ledger only ever produces Filled: it
// consumes fills that an order engine has already executed. The wider
// taxonomy is declared so records can round-trip through stores shared with
// that engine.
type Status string

const (
	StatusFilled    Status = "filled"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

// TradeInput is a fill as reported by the caller. For a buy, FromToken is
// normally the cash asset and ToToken the acquired one; for a sell the
// reverse. ExecutionPrice is the per-unit fill price of the non-cash asset.
type TradeInput struct {
	Side           Side
	FromToken      string
	ToToken        string
	FromAmount     float64
	ToAmount       float64
	ExecutionPrice float64
	FeeAmount      float64
	SlippageBps    int
}

func (in TradeInput) validate() error {
	if in.Side != Buy && in.Side != Sell {
		return &ValidationError{Field: "side", Reason: "must be buy or sell"}
	}
	if in.FromToken == "" {
		return &ValidationError{Field: "fromToken", Reason: "required"}
	}
	if in.ToToken == "" {
		return &ValidationError{Field: "toToken", Reason: "required"}
	}

	for _, f := range []struct {
		name string
		val  float64
	}{
		{"fromAmount", in.FromAmount},
		{"toAmount", in.ToAmount},
		{"executionPrice", in.ExecutionPrice},
		{"feeAmount", in.FeeAmount},
	} {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return &ValidationError{Field: f.name, Reason: "not a finite number"}
		}
		if f.val < 0 {
			return &ValidationError{Field: f.name, Reason: "negative"}
		}
	}
	return nil
}

// TradeRecord is an immutable entry in the trade log, created at apply time.
// Realized P&L is computed once, when the trade mutates the ledger, and never
// revised afterwards. CashDelta is the net cash effect that was applied, so
// the log alone reconstructs the balance.
type TradeRecord struct {
	ID                string
	Timestamp         time.Time
	Side              Side
	FromToken         string
	ToToken           string
	FromAmount        float64
	ToAmount          float64
	ExecutionPrice    float64
	FeeAmount         float64
	SlippageBps       int
	Status            Status
	RealizedPL        float64
	RealizedPLPercent float64
	CashDelta         float64
}

// BalancePoint is one step of the reconstructed balance-over-time series.
// Derived on demand from the trade log; never stored.
type BalancePoint struct {
	Time    time.Time
	Balance float64
}
