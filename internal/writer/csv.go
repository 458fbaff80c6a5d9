// Package writer renders stored transactions back out as CSV for download
// and for the export CLI.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/maplebudget/statement-ingest/internal/models"
)

// CSVWriter writes canonical transactions to CSV.
type CSVWriter struct {
	// IncludeProvenance adds the bank and source file reference columns.
	IncludeProvenance bool
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, txs []models.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, txs)
}

// Write writes transactions in CSV format to the given writer. Amounts keep
// the stored sign convention: money out negative, money in positive.
func (w *CSVWriter) Write(out io.Writer, txs []models.Transaction) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	header := []string{"Date", "Description", "Merchant", "Amount"}
	if w.IncludeProvenance {
		header = append(header, "Bank", "Source File")
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range txs {
		row := []string{
			txn.Date.Format("2006-01-02"),
			txn.Description,
			txn.Merchant,
			txn.Amount.StringFixed(2),
		}
		if w.IncludeProvenance {
			row = append(row, string(txn.BankName), txn.SourceFileRef)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}
	return nil
}

// Summarize totals the money in and money out of a transaction list. It is
// used by the CLI summary line.
func Summarize(txs []models.Transaction) (out, in string) {
	var totalOut, totalIn float64
	for _, txn := range txs {
		v, _ := txn.Amount.Float64()
		if v < 0 {
			totalOut += -v
		} else {
			totalIn += v
		}
	}
	return strconv.FormatFloat(totalOut, 'f', 2, 64), strconv.FormatFloat(totalIn, 'f', 2, 64)
}
