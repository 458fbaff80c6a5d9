package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maplebudget/statement-ingest/internal/bank"
	"github.com/maplebudget/statement-ingest/internal/ingest"
	"github.com/maplebudget/statement-ingest/internal/logger"
	"github.com/maplebudget/statement-ingest/internal/store"
)

func newIngestCommand() *cobra.Command {
	var accountID uint
	var dsn string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "ingest <statement.pdf|statement.csv> ...",
		Short: "Ingest statement files into the transaction store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), args, accountID, dsn, dryRun)
		},
	}

	cmd.Flags().UintVar(&accountID, "account", 0, "account id the statements belong to (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&dsn, "database-url", os.Getenv("DATABASE_URL"), "postgres connection string")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and report without persisting anything")

	return cmd
}

func runIngest(ctx context.Context, paths []string, accountID uint, dsn string, dryRun bool) error {
	st, closeStore, err := openStore(dsn, dryRun)
	if err != nil {
		return err
	}
	defer closeStore()

	log := logger.NewWithWriter(os.Stderr)
	pipeline := ingest.NewPipeline(bank.DefaultRegistry(), st, log)

	failures := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("%s: read failed: %v\n", path, err)
			failures++
			continue
		}
		report, err := pipeline.Ingest(ctx, data, filepath.Base(path), accountID)
		if err != nil {
			fmt.Printf("%s: rejected: %s\n", path, report.FailureReason)
			failures++
			continue
		}
		fmt.Printf("%s: bank=%s kind=%s found=%d added=%d duplicates=%d row_errors=%d\n",
			path, report.BankDetected, report.FileKind,
			report.TotalFound, report.NewlyAdded, report.DuplicatesSkipped, len(report.RowErrors))
		for _, re := range report.RowErrors {
			fmt.Printf("  skipped %s\n", re.Error())
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d files rejected", failures, len(paths))
	}
	return nil
}

// openStore picks the persistence backend: Postgres normally, the in-memory
// store for dry runs.
func openStore(dsn string, dryRun bool) (ingest.Store, func(), error) {
	if dryRun {
		return store.NewMemory(), func() {}, nil
	}
	if dsn == "" {
		return nil, nil, fmt.Errorf("no database configured: set DATABASE_URL or pass --database-url (or use --dry-run)")
	}
	pg, err := store.OpenPostgres(dsn)
	if err != nil {
		return nil, nil, err
	}
	return pg, func() { pg.Close() }, nil
}
