package parser

import (
	"github.com/maplebudget/statement-ingest/internal/models"
)

// GenericExtractor is the fallback for statements whose institution could
// not be identified. It matches CSV columns fuzzily against the names banks
// commonly use and reads PDF lines with the shared date-description-amount
// heuristic. Rows it cannot read surface as row errors in the upload report
// rather than silently vanishing.
type GenericExtractor struct{}

var (
	genericDateCols   = []string{"date posted", "posting date", "transaction date", "date"}
	genericDescCols   = []string{"description", "transaction details", "details", "narrative", "memo", "name", "payee", "transaction"}
	genericDebitCols  = []string{"debit", "withdrawals", "withdrawal", "funds out", "money out", "paid out"}
	genericCreditCols = []string{"credit", "deposits", "deposit", "funds in", "money in", "paid in"}
	genericAmountCols = []string{"transaction amount", "amount"}
)

func (e *GenericExtractor) Institution() models.Institution { return models.InstitutionUnknown }

func (e *GenericExtractor) Extract(line models.RawLine) (*models.CandidateTransaction, *models.RowError) {
	if line.IsCSV() {
		return e.extractRow(line)
	}
	return extractPDFLine(line, nil)
}

func (e *GenericExtractor) extractRow(line models.RawLine) (*models.CandidateTransaction, *models.RowError) {
	cand := &models.CandidateTransaction{Page: line.Page, Row: line.Row}

	cand.RawDate = firstField(line, genericDateCols)
	if cand.RawDate == "" {
		return nil, models.NewRowError(line, models.RowErrMissingRequiredField, "no recognizable date column")
	}
	cand.Description = firstField(line, genericDescCols)

	// prefer a single signed amount column, fall back to debit/credit pairs
	if v := firstField(line, genericAmountCols); v != "" {
		cand.Amount = v
		return cand, nil
	}
	cand.Debit = firstField(line, genericDebitCols)
	cand.Credit = firstField(line, genericCreditCols)
	switch {
	case cand.Debit == "" && cand.Credit == "":
		return nil, models.NewRowError(line, models.RowErrMissingRequiredField, "no amount, debit or credit value")
	case cand.Debit != "" && cand.Credit != "":
		return nil, models.NewRowError(line, models.RowErrAmbiguousDebitCredit, "both debit (%s) and credit (%s) are set", cand.Debit, cand.Credit)
	}
	return cand, nil
}
