package main

import (
	"os"

	"github.com/brademus/ada-lab/cmd/ada/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
