package ledger

import (
	"errors"
	"fmt"
)

// ErrInsufficientPosition is returned by ExecuteTrade when the oversell
// policy is OversellReject and a sell asks for more than is held.
var ErrInsufficientPosition = errors.New("sell exceeds held amount")

// ValidationError reports a trade input the ledger refuses to apply.
// Numeric garbage (negative amounts, NaN) is rejected here rather than
// silently corrupting cost basis or cash.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid trade input: %s: %s", e.Field, e.Reason)
}
