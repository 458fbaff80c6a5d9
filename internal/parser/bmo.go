package parser

import (
	"github.com/maplebudget/statement-ingest/internal/models"
)

// BMOExtractor reads BMO debit exports. The CSV carries a single signed
// Transaction Amount column with money out already negative; BMO PDFs have
// no dedicated line pattern and go through the generic heuristic.
type BMOExtractor struct{}

var bmoCSV = csvSpec{
	dateCols:   []string{"date posted", "date"},
	descCols:   []string{"description"},
	amountCols: []string{"transaction amount", "amount"},
}

func (e *BMOExtractor) Institution() models.Institution { return models.InstitutionBMO }

func (e *BMOExtractor) Extract(line models.RawLine) (*models.CandidateTransaction, *models.RowError) {
	if line.IsCSV() {
		return extractCSV(line, bmoCSV)
	}
	return extractPDFLine(line, nil)
}
