package main

import (
	"os"

	"github.com/paw-chain/pawswap/cmd/routesim/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
