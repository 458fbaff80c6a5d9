package parser

import (
	"regexp"

	"github.com/maplebudget/statement-ingest/internal/models"
)

// CIBCExtractor reads CIBC chequing and credit card statements. PDF lines
// open with a month-name date without a year ("Jan 15"); the CSV export uses
// Posting Date / Transaction Details with separate debit and credit columns.
type CIBCExtractor struct{}

var cibcDateRe = regexp.MustCompile(`(?i)^(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2}\b`)

var cibcCSV = csvSpec{
	dateCols:   []string{"posting date", "date"},
	descCols:   []string{"transaction details", "description", "details"},
	amountCols: []string{"cad$", "amount"},
}

func (e *CIBCExtractor) Institution() models.Institution { return models.InstitutionCIBC }

func (e *CIBCExtractor) Extract(line models.RawLine) (*models.CandidateTransaction, *models.RowError) {
	if line.IsCSV() {
		cand, rerr := extractCSV(line, cibcCSV)
		if cand != nil {
			// CIBC card exports share the card convention: charges positive
			applyCardConvention(cand)
		}
		return cand, rerr
	}
	return extractPDFLine(line, cibcDateRe)
}
