package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/maplebudget/statement-ingest/internal/store"
	"github.com/maplebudget/statement-ingest/internal/writer"
)

func newExportCommand() *cobra.Command {
	var accountID uint
	var dsn string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an account's transactions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), accountID, dsn, output)
		},
	}

	cmd.Flags().UintVar(&accountID, "account", 0, "account id to export (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&dsn, "database-url", os.Getenv("DATABASE_URL"), "postgres connection string")
	cmd.Flags().StringVar(&output, "output", "", "output file path (defaults to stdout)")

	return cmd
}

func runExport(ctx context.Context, accountID uint, dsn string, output string) error {
	if dsn == "" {
		return fmt.Errorf("no database configured: set DATABASE_URL or pass --database-url")
	}
	pg, err := store.OpenPostgres(dsn)
	if err != nil {
		return err
	}
	defer pg.Close()

	from := time.Time{}
	to := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	txs, err := pg.FindTransactions(ctx, accountID, from, to)
	if err != nil {
		return err
	}

	w := &writer.CSVWriter{IncludeProvenance: true}
	if output != "" {
		if err := w.WriteToFile(output, txs); err != nil {
			return err
		}
	} else if err := w.Write(os.Stdout, txs); err != nil {
		return err
	}

	out, in := writer.Summarize(txs)
	fmt.Fprintf(os.Stderr, "%d transactions, %s out / %s in\n", len(txs), out, in)
	return nil
}
