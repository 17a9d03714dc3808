package main

import (
	"os"

	"github.com/YuminosukeSato/tenantscore/cmd/tenantscore/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
