package parser

import (
	"regexp"

	"github.com/maplebudget/statement-ingest/internal/models"
)

// RBCExtractor reads RBC statements. PDF lines open with a year-first
// numeric date ("2025/01/15"); the CSV export carries Withdrawals and
// Deposits as separate columns.
type RBCExtractor struct{}

var rbcDateRe = regexp.MustCompile(`^\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`)

var rbcCSV = csvSpec{
	dateCols:   []string{"date"},
	descCols:   []string{"description"},
	debitCols:  []string{"withdrawals", "withdrawal"},
	creditCols: []string{"deposits", "deposit"},
}

func (e *RBCExtractor) Institution() models.Institution { return models.InstitutionRBC }

func (e *RBCExtractor) Extract(line models.RawLine) (*models.CandidateTransaction, *models.RowError) {
	if line.IsCSV() {
		return extractCSV(line, rbcCSV)
	}
	return extractPDFLine(line, rbcDateRe)
}
