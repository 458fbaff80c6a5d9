package parser

import (
	"regexp"
	"strings"

	"github.com/maplebudget/statement-ingest/internal/models"
)

// extractPDFLine reads one extracted text line shaped like
//
//	<date> <description...> <amount> [<balance>]
//
// dateRe anchors the institution's date format at the start of the line; a
// nil dateRe accepts any recognizable date. Lines without a leading date or
// a trailing amount are not transactions and yield nil, nil.
func extractPDFLine(line models.RawLine, dateRe *regexp.Regexp) (*models.CandidateTransaction, *models.RowError) {
	text := strings.TrimSpace(line.Text)
	if text == "" || isSummaryLine(text) {
		return nil, nil
	}

	var rawDate, rest string
	if dateRe != nil {
		m := dateRe.FindString(text)
		if m == "" {
			return nil, nil
		}
		rawDate, rest = m, strings.TrimSpace(text[len(m):])
	} else {
		rawDate, rest = leadingDate(text)
		if rawDate == "" {
			return nil, nil
		}
	}

	descTokens, amounts := trailingAmounts(strings.Fields(rest))
	if len(amounts) == 0 {
		// date followed by prose only, e.g. a wrapped description or a
		// column header echo
		return nil, nil
	}

	cand := &models.CandidateTransaction{
		RawDate:     rawDate,
		Description: strings.Join(descTokens, " "),
		Page:        line.Page,
		Row:         line.Row,
	}
	if cand.Description == "" {
		return nil, models.NewRowError(line, models.RowErrMissingRequiredField, "transaction line has no description")
	}

	// with two or more trailing monetary tokens the last one is the running
	// balance
	amount := amounts[0]
	if len(amounts) >= 2 {
		amount = amounts[len(amounts)-2]
	}

	if strings.ContainsAny(amount, "()-") {
		// the token carries its own sign
		cand.Amount = amount
		return cand, nil
	}
	if classifyDirection(cand.Description) > 0 {
		cand.Credit = amount
	} else {
		cand.Debit = amount
	}
	return cand, nil
}
