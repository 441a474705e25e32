package main

import (
	"os"

	"github.com/almhdy24/simydb/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
