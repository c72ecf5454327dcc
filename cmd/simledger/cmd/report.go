package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/simledger/journal"
	"github.com/rustyeddy/simledger/ledger"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Replay the journal and report account performance",
	Long: `Rebuild the ledger from the persistent journal and print the account,
open positions, performance statistics and the reconstructed balance history.

Example:
  simledger report --db ./simledger.sqlite`,
	RunE: runReport,
}

var (
	reportConfigPath string
	reportDBPath     string
	reportHistory    bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	reportCmd.Flags().StringVarP(&reportDBPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	reportCmd.Flags().BoolVar(&reportHistory, "history", false, "print the full balance history")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(reportConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath := cfg.Journal.DBPath
	if reportDBPath != "" {
		dbPath = reportDBPath
	}
	if dbPath == "" {
		return fmt.Errorf("no journal DB configured; set --db or journal.db_path")
	}

	j, err := journal.NewSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	rows, err := j.LoadTrades()
	if err != nil {
		return fmt.Errorf("load journal: %w", err)
	}

	led := ledger.New(cfg.Settings(), journal.Nop{})
	led.SetSimulationMode(true)
	if err := led.Replay(rows); err != nil {
		return fmt.Errorf("replay journal: %w", err)
	}

	printAccount(cfg, led.Account())
	fmt.Println()
	printPositions(led.Positions())
	fmt.Println()
	printPerformance(led.Performance())

	if reportHistory {
		fmt.Println()
		fmt.Println("Balance history:")
		for _, pt := range led.BalanceHistory() {
			fmt.Printf("  %s  %.2f\n", pt.Time.Format("2006-01-02 15:04:05"), pt.Balance)
		}
	}

	if err := led.Reconcile(); err != nil {
		return fmt.Errorf("ledger failed reconciliation: %w", err)
	}
	fmt.Println()
	fmt.Println("Ledger reconciles with the trade log.")
	return nil
}
