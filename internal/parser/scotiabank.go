package parser

import (
	"github.com/maplebudget/statement-ingest/internal/models"
)

// ScotiabankExtractor reads Scotiabank exports. The CSV labels its direction
// columns Funds Out and Funds In; Scotiabank PDFs go through the generic
// heuristic.
type ScotiabankExtractor struct{}

var scotiaCSV = csvSpec{
	dateCols:   []string{"date"},
	descCols:   []string{"description"},
	debitCols:  []string{"funds out", "withdrawal"},
	creditCols: []string{"funds in", "deposit"},
}

func (e *ScotiabankExtractor) Institution() models.Institution { return models.InstitutionScotiabank }

func (e *ScotiabankExtractor) Extract(line models.RawLine) (*models.CandidateTransaction, *models.RowError) {
	if line.IsCSV() {
		return extractCSV(line, scotiaCSV)
	}
	return extractPDFLine(line, nil)
}
