package main

import (
	"os"

	"github.com/rustyeddy/simledger/cmd/simledger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
