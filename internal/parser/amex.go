package parser

import (
	"regexp"

	"github.com/maplebudget/statement-ingest/internal/models"
)

// AmexExtractor reads American Express card statements. Amex exports follow
// the card convention where charges are positive and payments negative, so
// the single amount column is split into the debit and credit buckets here
// rather than passed through signed.
type AmexExtractor struct{}

var amexDateRe = regexp.MustCompile(`(?i)^(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2}\b`)

var amexCSV = csvSpec{
	dateCols:   []string{"date"},
	descCols:   []string{"description"},
	amountCols: []string{"amount"},
}

func (e *AmexExtractor) Institution() models.Institution { return models.InstitutionAmex }

func (e *AmexExtractor) Extract(line models.RawLine) (*models.CandidateTransaction, *models.RowError) {
	if line.IsCSV() {
		cand, rerr := extractCSV(line, amexCSV)
		if cand != nil {
			applyCardConvention(cand)
		}
		return cand, rerr
	}
	return extractPDFLine(line, amexDateRe)
}

// applyCardConvention rebuckets a signed card amount: positive is a charge
// (money out), negative is a payment or refund (money in).
func applyCardConvention(cand *models.CandidateTransaction) {
	if cand.Amount == "" {
		return
	}
	if v, neg := stripNegative(cand.Amount); neg {
		cand.Credit = v
	} else {
		cand.Debit = v
	}
	cand.Amount = ""
}
