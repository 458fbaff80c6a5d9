package main

import (
	"os"

	"github.com/maplebudget/statement-ingest/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
