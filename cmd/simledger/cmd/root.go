package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "simledger",
	Short: "A paper-trading ledger with cost-basis accounting and P&L analytics",
	Long: `Simledger is a simulated-trading ledger engine written in Go.

It lets you execute synthetic buy/sell trades against a virtual cash balance,
tracks holdings with weighted-average cost basis, and derives performance
statistics without touching any real asset.

It provides tools for:
  - Executing paper trades from the command line against a persistent journal
  - Replaying a journaled session and reporting realized/unrealized P&L
  - Querying trade history from the SQLite journal
  - Win rate, best/worst trade and balance-over-time reporting

Complete documentation is available at https://github.com/rustyeddy/simledger`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
