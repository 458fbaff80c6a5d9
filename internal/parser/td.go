package parser

import (
	"regexp"

	"github.com/maplebudget/statement-ingest/internal/models"
)

// TDExtractor reads TD Canada Trust statements. PDF lines open with a
// day-first numeric date ("15/01/2025"); the CSV export carries Debit and
// Credit columns plus a running Balance.
type TDExtractor struct{}

var tdDateRe = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`)

var tdCSV = csvSpec{
	dateCols:   []string{"date"},
	descCols:   []string{"description"},
	debitCols:  []string{"debit"},
	creditCols: []string{"credit"},
}

func (e *TDExtractor) Institution() models.Institution { return models.InstitutionTD }

func (e *TDExtractor) Extract(line models.RawLine) (*models.CandidateTransaction, *models.RowError) {
	if line.IsCSV() {
		return extractCSV(line, tdCSV)
	}
	return extractPDFLine(line, tdDateRe)
}
