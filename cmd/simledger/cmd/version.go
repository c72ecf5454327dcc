package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the simledger CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("simledger version %s\n", version)
		fmt.Println("A paper-trading ledger with cost-basis accounting and P&L analytics")
		fmt.Println("https://github.com/rustyeddy/simledger")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
