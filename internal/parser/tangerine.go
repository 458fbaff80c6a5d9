package parser

import (
	"github.com/maplebudget/statement-ingest/internal/models"
)

// TangerineExtractor reads Tangerine exports. The CSV amount column is
// signed with money out negative, matching the stored convention, so it
// passes through unchanged. The Name column holds the counterparty and the
// Memo column extra detail; Name is preferred as the description.
type TangerineExtractor struct{}

var tangerineCSV = csvSpec{
	dateCols:   []string{"date"},
	descCols:   []string{"name", "memo", "transaction"},
	amountCols: []string{"amount"},
}

func (e *TangerineExtractor) Institution() models.Institution { return models.InstitutionTangerine }

func (e *TangerineExtractor) Extract(line models.RawLine) (*models.CandidateTransaction, *models.RowError) {
	if line.IsCSV() {
		return extractCSV(line, tangerineCSV)
	}
	return extractPDFLine(line, nil)
}
