package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the canonical, persisted transaction record. The sign
// convention holds system-wide regardless of how the source institution
// labels its columns: money out is negative, money in is positive.
type Transaction struct {
	ID            uint            `json:"id"`
	AccountID     uint            `json:"accountId"`
	Date          time.Time       `json:"date"` // calendar date, UTC midnight
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Merchant      string          `json:"merchant,omitempty"`
	BankName      Institution     `json:"bankName"`
	CategoryID    *uint           `json:"categoryId,omitempty"` // set later by categorization
	SourceFileRef string          `json:"sourceFileRef,omitempty"`
}

// UploadReport summarizes one ingestion run. It is returned to the caller and
// never persisted.
type UploadReport struct {
	BankDetected      Institution `json:"bank_type"`
	FileKind          FileKind    `json:"file_kind"`
	TotalFound        int         `json:"total_transactions_found"`
	NewlyAdded        int         `json:"new_transactions_added"`
	DuplicatesSkipped int         `json:"duplicates_skipped"`
	RowErrors         []RowError  `json:"errors,omitempty"`

	// FailureReason is set only when the whole file failed (unreadable file,
	// missing CSV header); row-level problems go to RowErrors instead.
	FailureReason string `json:"error_message,omitempty"`
}
