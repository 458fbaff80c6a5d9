package models

import "strings"

// RawLine is an institution-agnostic row pulled out of a source file before
// any per-bank interpretation. PDF adapters fill Tokens (whitespace-split
// text) and CSV adapters fill Fields (header name -> cell value, headers
// lowercased). Page and Row are 1-based and exist only for diagnostics.
type RawLine struct {
	Page   int
	Row    int
	Text   string
	Tokens []string
	Fields map[string]string
}

// Field returns the cell value for a CSV column, matching the header name
// case-insensitively and by substring so "Posting Date" satisfies "date".
func (l RawLine) Field(name string) (string, bool) {
	if l.Fields == nil {
		return "", false
	}
	name = strings.ToLower(name)
	if v, ok := l.Fields[name]; ok {
		return v, true
	}
	for k, v := range l.Fields {
		if strings.Contains(k, name) {
			return v, true
		}
	}
	return "", false
}

// IsCSV reports whether the line came from a header-keyed CSV row.
func (l RawLine) IsCSV() bool { return l.Fields != nil }

// CandidateTransaction is the output of an institution-specific extractor
// before normalization. Exactly one of two shapes is valid: separate
// Debit/Credit columns (at most one non-empty), or a single signed Amount.
// RawDate and Description are unparsed source strings.
type CandidateTransaction struct {
	RawDate     string
	Description string

	// Debit holds the money-out column, Credit the money-in column.
	Debit  string
	Credit string

	// Amount holds a single signed amount column when the source has no
	// separate debit/credit columns.
	Amount string

	// Page and Row carry over from the RawLine for error reporting.
	Page int
	Row  int
}
