package parser

import (
	"github.com/maplebudget/statement-ingest/internal/models"
)

// csvSpec names the CSV columns one institution's export uses. Column names
// are matched against lowercased headers, substring-tolerant, so "date"
// matches "Posting Date".
type csvSpec struct {
	dateCols   []string
	descCols   []string
	debitCols  []string // money out
	creditCols []string // money in
	amountCols []string // single signed column, exclusive with debit/credit
}

// extractCSV applies a column spec to a header-keyed row. It enforces the
// debit/credit exclusivity rule: with separate columns exactly one must be
// non-empty, otherwise the row is an error, never a guess.
func extractCSV(line models.RawLine, spec csvSpec) (*models.CandidateTransaction, *models.RowError) {
	cand := &models.CandidateTransaction{Page: line.Page, Row: line.Row}

	cand.RawDate = firstField(line, spec.dateCols)
	if cand.RawDate == "" {
		return nil, models.NewRowError(line, models.RowErrMissingRequiredField, "no date value in columns %v", spec.dateCols)
	}
	cand.Description = firstField(line, spec.descCols)

	if len(spec.amountCols) > 0 {
		cand.Amount = firstField(line, spec.amountCols)
		if cand.Amount == "" {
			return nil, models.NewRowError(line, models.RowErrMissingRequiredField, "no amount value in columns %v", spec.amountCols)
		}
		return cand, nil
	}

	cand.Debit = firstField(line, spec.debitCols)
	cand.Credit = firstField(line, spec.creditCols)
	switch {
	case cand.Debit == "" && cand.Credit == "":
		return nil, models.NewRowError(line, models.RowErrMissingRequiredField, "both debit and credit columns are empty")
	case cand.Debit != "" && cand.Credit != "":
		return nil, models.NewRowError(line, models.RowErrAmbiguousDebitCredit, "both debit (%s) and credit (%s) are set", cand.Debit, cand.Credit)
	}
	return cand, nil
}

func firstField(line models.RawLine, cols []string) string {
	for _, col := range cols {
		if v, ok := line.Field(col); ok && v != "" {
			return v
		}
	}
	return ""
}
