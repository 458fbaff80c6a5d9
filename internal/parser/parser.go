// Package parser holds the per-institution line extractors that turn
// RawLines into CandidateTransactions.
package parser

import (
	"github.com/maplebudget/statement-ingest/internal/models"
)

// Extractor converts one RawLine into a CandidateTransaction. A nil, nil
// return means the line is not a transaction (boilerplate, table header,
// balance summary) and is skipped silently; a RowError is returned for lines
// that should have been transactions but could not be read. An Extractor
// never aborts the file it is working through.
type Extractor interface {
	Institution() models.Institution
	Extract(line models.RawLine) (*models.CandidateTransaction, *models.RowError)
}

// ForSource returns the extraction strategy for a detection result. The
// institution set is closed; anything unrecognized gets the generic
// heuristic extractor.
func ForSource(src models.DetectedSource) Extractor {
	switch src.Institution {
	case models.InstitutionCIBC:
		return &CIBCExtractor{}
	case models.InstitutionRBC:
		return &RBCExtractor{}
	case models.InstitutionTD:
		return &TDExtractor{}
	case models.InstitutionAmex:
		return &AmexExtractor{}
	case models.InstitutionBMO:
		return &BMOExtractor{}
	case models.InstitutionScotiabank:
		return &ScotiabankExtractor{}
	case models.InstitutionTangerine:
		return &TangerineExtractor{}
	default:
		return &GenericExtractor{}
	}
}
