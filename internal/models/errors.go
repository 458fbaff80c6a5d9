package models

import (
	"errors"
	"fmt"
)

// File-level failures: these abort ingestion of the whole file.
var (
	// ErrFileUnreadable means the file bytes could not be decoded at all
	// (corrupt PDF, binary garbage, image-only scan).
	ErrFileUnreadable = errors.New("file unreadable")

	// ErrHeaderNotFound means a CSV had no recognizable header row.
	ErrHeaderNotFound = errors.New("csv header not found")
)

// Row-level failures: these are collected into the upload report, never fatal.
var (
	ErrUnparseableDate   = errors.New("unparseable date")
	ErrUnparseableAmount = errors.New("unparseable amount")
	ErrAmbiguousDate     = errors.New("ambiguous date")
)

// RowErrorKind classifies a row-level extraction or normalization failure.
type RowErrorKind string

const (
	RowErrUnparseableDate      RowErrorKind = "unparseable_date"
	RowErrUnparseableAmount    RowErrorKind = "unparseable_amount"
	RowErrAmbiguousDebitCredit RowErrorKind = "ambiguous_debit_credit"
	RowErrMissingRequiredField RowErrorKind = "missing_required_field"
	RowErrAmbiguousDate        RowErrorKind = "ambiguous_date"
)

// RowError records why one row of a statement was skipped. Page is zero for
// CSV sources. A RowError never aborts the file it came from.
type RowError struct {
	Page    int          `json:"page,omitempty"`
	Row     int          `json:"row"`
	Kind    RowErrorKind `json:"kind"`
	Message string       `json:"message"`
}

func (e RowError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("page %d row %d: %s", e.Page, e.Row, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError builds a RowError positioned at the given line.
func NewRowError(line RawLine, kind RowErrorKind, format string, args ...interface{}) *RowError {
	return &RowError{
		Page:    line.Page,
		Row:     line.Row,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
