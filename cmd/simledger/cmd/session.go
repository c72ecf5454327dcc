package cmd

import (
	"fmt"

	"github.com/rustyeddy/simledger/config"
	"github.com/rustyeddy/simledger/ledger"
)

// loadConfig resolves the effective configuration: file if given, otherwise
// defaults, with environment overrides applied on top in both cases.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.FromEnv()
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printAccount(cfg *config.Config, acct ledger.Account) {
	fmt.Printf("Account %s [%s]\n", cfg.Account.ID, acct.Mode)
	fmt.Printf("  Starting Balance: %.2f %s\n", acct.StartingBalance, cfg.Account.CashSymbol)
	fmt.Printf("  Cash Balance:     %.2f %s\n", acct.CashBalance, cfg.Account.CashSymbol)
}

func printPositions(positions []ledger.Position) {
	if len(positions) == 0 {
		fmt.Println("No open positions")
		return
	}

	fmt.Println("Open positions:")
	for _, p := range positions {
		fmt.Printf("  %-8s amount %.6f  avg cost %.6f  mark %.6f  unrealized %+.2f (%+.2f%%)\n",
			p.Token, p.Amount, p.AverageCost, p.MarkPrice, p.UnrealizedPL, p.UnrealizedPLPercent)
	}
}

func printPerformance(perf ledger.Performance) {
	fmt.Printf("Performance over %d trades:\n", perf.TradeCount)
	fmt.Printf("  Total P&L: %+.2f (%+.2f%%)\n", perf.TotalPnL, perf.TotalPnLPercent)
	fmt.Printf("  Win rate:  %.1f%%\n", perf.WinRate)
	if perf.BestTrade != nil {
		fmt.Printf("  Best:  %s %s->%s %+.2f\n",
			perf.BestTrade.ID, perf.BestTrade.FromToken, perf.BestTrade.ToToken, perf.BestTrade.RealizedPL)
	}
	if perf.WorstTrade != nil {
		fmt.Printf("  Worst: %s %s->%s %+.2f\n",
			perf.WorstTrade.ID, perf.WorstTrade.FromToken, perf.WorstTrade.ToToken, perf.WorstTrade.RealizedPL)
	}
}
