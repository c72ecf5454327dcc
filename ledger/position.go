package ledger

// Position is one open holding, keyed by token symbol. AverageCost is a
// weighted-average cost basis: every buy blends into it, sells never change
// it. The unrealized fields are derived from Amount, AverageCost and
// MarkPrice and are recomputed on every change to any of the three.
type Position struct {
	Token               string
	Amount              float64
	AverageCost         float64
	MarkPrice           float64
	UnrealizedPL        float64
	UnrealizedPLPercent float64
}

func newPosition(token string, amount, price float64) *Position {
	p := &Position{
		Token:       token,
		Amount:      amount,
		AverageCost: price,
	}
	p.markTo(price)
	return p
}

// merge folds an acquisition into the weighted-average cost basis.
func (p *Position) merge(amount, price float64) {
	newAmount := p.Amount + amount
	if newAmount > 0 {
		p.AverageCost = (p.Amount*p.AverageCost + amount*price) / newAmount
	}
	p.Amount = newAmount
}

// markTo revalues the position at price and recomputes unrealized P&L.
// Guarded so a zero cost basis yields 0%, not NaN.
func (p *Position) markTo(price float64) {
	p.MarkPrice = price
	p.UnrealizedPL = (price - p.AverageCost) * p.Amount
	if p.AverageCost == 0 {
		p.UnrealizedPLPercent = 0
		return
	}
	p.UnrealizedPLPercent = (price - p.AverageCost) / p.AverageCost * 100
}
