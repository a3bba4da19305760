package main

import (
	"os"

	"github.com/ishankgp/MF-return-tracker/cmd/fundrank/commands"
)

// main is the entry point for the fundrank CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
