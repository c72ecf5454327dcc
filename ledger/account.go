package ledger

// Mode selects between live tracking and paper-trading simulation. The
// ledger itself behaves identically in both; the mode is surfaced so callers
// can gate order routing on it.
type Mode string

const (
	ModeLive      Mode = "live"
	ModeSimulated Mode = "simulated"
)

// Account is the single virtual cash account owned by a Ledger.
//
// CashBalance always equals StartingBalance plus the sum of every recorded
// trade's cash delta; Reconcile verifies that from the log.
type Account struct {
	Mode            Mode
	StartingBalance float64
	CashBalance     float64
}
