package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/simledger/journal"
	"github.com/rustyeddy/simledger/ledger"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Execute a paper trade against the journaled ledger",
	Long: `Execute a synthetic buy or sell against the persistent paper-trading ledger.

The existing journal is replayed to rebuild ledger state, the new fill is
applied with full cost-basis accounting, and the resulting record is appended
to the journal.

Examples:
  simledger trade buy --from USDC --to SOL --from-amount 500 --to-amount 2.5 --price 200
  simledger trade sell --from SOL --to USDC --from-amount 1 --to-amount 210 --price 210 --fee 0.25`,
}

var (
	tradeConfigPath string
	tradeDBPath     string
	tradeFrom       string
	tradeTo         string
	tradeFromAmount float64
	tradeToAmount   float64
	tradePrice      float64
	tradeFee        float64
	tradeSlippage   int
)

var tradeBuyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Acquire a token by spending the cash asset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrade(ledger.Buy)
	},
}

var tradeSellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Dispose of a held token for the cash asset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrade(ledger.Sell)
	},
}

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeBuyCmd)
	tradeCmd.AddCommand(tradeSellCmd)

	pf := tradeCmd.PersistentFlags()
	pf.StringVarP(&tradeConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	pf.StringVarP(&tradeDBPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	pf.StringVar(&tradeFrom, "from", "", "token spent")
	pf.StringVar(&tradeTo, "to", "", "token received")
	pf.Float64Var(&tradeFromAmount, "from-amount", 0, "amount of the from token")
	pf.Float64Var(&tradeToAmount, "to-amount", 0, "amount of the to token")
	pf.Float64Var(&tradePrice, "price", 0, "execution price per unit of the non-cash token")
	pf.Float64Var(&tradeFee, "fee", 0, "fee charged in the cash asset")
	pf.IntVar(&tradeSlippage, "slippage-bps", 0, "slippage applied by the order engine, basis points")
}

func runTrade(side ledger.Side) error {
	cfg, err := loadConfig(tradeConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath := cfg.Journal.DBPath
	if tradeDBPath != "" {
		dbPath = tradeDBPath
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

	led := ledger.New(cfg.Settings(), j)
	led.SetSimulationMode(true)
	if err := led.Replay(rows); err != nil {
		return fmt.Errorf("replay journal: %w", err)
	}

	rec, err := led.ExecuteTrade(ledger.TradeInput{
		Side:           side,
		FromToken:      tradeFrom,
		ToToken:        tradeTo,
		FromAmount:     tradeFromAmount,
		ToAmount:       tradeToAmount,
		ExecutionPrice: tradePrice,
		FeeAmount:      tradeFee,
		SlippageBps:    tradeSlippage,
	})
	if err != nil {
		return fmt.Errorf("execute trade: %w", err)
	}

	fmt.Printf("Executed %s %s -> %s\n", rec.Side, rec.FromToken, rec.ToToken)
	fmt.Printf("  Trade ID: %s\n", rec.ID)
	fmt.Printf("  Cash delta: %+.6f\n", rec.CashDelta)
	if rec.Side == ledger.Sell {
		fmt.Printf("  Realized P&L: %+.6f (%+.2f%%)\n", rec.RealizedPL, rec.RealizedPLPercent)
	}
	fmt.Println()

	printAccount(cfg, led.Account())
	printPositions(led.Positions())

	if err := led.Reconcile(); err != nil {
		return fmt.Errorf("ledger failed reconciliation: %w", err)
	}
	return nil
}
