package main

import (
	"os"

	"github.com/budgetagent-dev/budgetagent/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
