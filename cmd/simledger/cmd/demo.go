package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/simledger/config"
	"github.com/rustyeddy/simledger/journal"
	"github.com/rustyeddy/simledger/ledger"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted paper-trading session",
	Long: `Run a scripted paper-trading session against an in-memory ledger.

Shows the basic workflow of:
  1. Enabling simulation mode on a fresh account
  2. Buying into a position and averaging the cost basis up
  3. Marking the position to a new price
  4. Partially and then fully closing the position
  5. Reading back performance statistics and balance history

Trades and snapshots are written to CSV journals in the current directory.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Paper Trading Demo ===")
	fmt.Println()

	cfg := config.Default()

	j, err := journal.NewCSV("./demo-trades.csv", "./demo-snapshots.csv")
	if err != nil {
		return err
	}
	defer j.Close()

	led := ledger.New(cfg.Settings(), j)
	led.SetSimulationMode(true)

	fmt.Printf("Starting balance: %.2f %s\n\n", led.Account().CashBalance, cfg.Account.CashSymbol)

	fills := []ledger.TradeInput{
		{Side: ledger.Buy, FromToken: "USDC", ToToken: "SOL", FromAmount: 1000, ToAmount: 10, ExecutionPrice: 100, FeeAmount: 1},
		{Side: ledger.Buy, FromToken: "USDC", ToToken: "SOL", FromAmount: 1200, ToAmount: 10, ExecutionPrice: 120, FeeAmount: 1.2},
		{Side: ledger.Sell, FromToken: "SOL", ToToken: "USDC", FromAmount: 8, ToAmount: 1040, ExecutionPrice: 130, FeeAmount: 1},
		{Side: ledger.Sell, FromToken: "SOL", ToToken: "USDC", FromAmount: 12, ToAmount: 1500, ExecutionPrice: 125, FeeAmount: 1.5},
	}

	for _, in := range fills {
		rec, err := led.ExecuteTrade(in)
		if err != nil {
			return err
		}
		fmt.Printf("%-4s %-4s -> %-4s  qty %.4f @ %.2f  cash %+.2f  realized %+.2f\n",
			rec.Side, rec.FromToken, rec.ToToken, rec.FromAmount, rec.ExecutionPrice,
			rec.CashDelta, rec.RealizedPL)
	}
	fmt.Println()

	led.MarkPrices(map[string]float64{"SOL": 128})

	printPositions(led.Positions())
	fmt.Println()
	printPerformance(led.Performance())

	fmt.Println()
	fmt.Println("Balance history:")
	for _, pt := range led.BalanceHistory() {
		fmt.Printf("  %s  %.2f\n", pt.Time.Format("15:04:05"), pt.Balance)
	}

	if err := led.Reconcile(); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Cash balance reconciles with the trade log.")
	fmt.Println("Journals written to ./demo-trades.csv and ./demo-snapshots.csv")
	return nil
}
