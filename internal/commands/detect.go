package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maplebudget/statement-ingest/internal/bank"
)

func newDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <statement.pdf|statement.csv>",
		Short: "Identify a statement's institution and file kind without ingesting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			src, err := bank.DefaultRegistry().Detect(data, filepath.Base(args[0]))
			if err != nil {
				return err
			}
			fmt.Printf("institution: %s\nkind: %s\n", src.Institution, src.Kind)
			if src.MatchedOn != "" {
				fmt.Printf("matched on: %s\n", src.MatchedOn)
			}
			return nil
		},
	}
}
