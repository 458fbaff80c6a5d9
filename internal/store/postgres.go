// Package store provides the persistence implementations behind the
// ingestion pipeline: Postgres for the service and an in-memory store for
// tests and dry runs.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/maplebudget/statement-ingest/internal/ingest"
	"github.com/maplebudget/statement-ingest/internal/models"
	"github.com/maplebudget/statement-ingest/internal/normalize"
)

// uniqueViolation is the Postgres error code for a unique index collision.
const uniqueViolation = "23505"

// transactionRow is the persisted shape of a transaction. The composite
// unique index mirrors the pipeline's duplicate identity and backstops it
// against concurrent uploads.
type transactionRow struct {
	ID              uint            `gorm:"primary_key"`
	AccountID       uint            `gorm:"not null;unique_index:idx_txn_identity"`
	Date            time.Time       `gorm:"not null;unique_index:idx_txn_identity"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null;unique_index:idx_txn_identity"`
	Description     string          `gorm:"not null"`
	NormDescription string          `gorm:"not null;unique_index:idx_txn_identity"`
	Merchant        string
	BankName        string
	CategoryID      *uint
	SourceFileRef   string
	CreatedAt       time.Time
}

func (transactionRow) TableName() string { return "transactions" }

// Postgres is the production Store.
type Postgres struct {
	db *gorm.DB
}

// OpenPostgres connects and migrates the schema.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := gorm.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := db.AutoMigrate(&transactionRow{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (s *Postgres) Close() error { return s.db.Close() }

func (s *Postgres) FindTransactions(_ context.Context, accountID uint, from, to time.Time) ([]models.Transaction, error) {
	var rows []transactionRow
	err := s.db.
		Where("account_id = ? AND date >= ? AND date <= ?", accountID, from, to).
		Order("date, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	out := make([]models.Transaction, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

func (s *Postgres) InsertTransaction(_ context.Context, tx *models.Transaction) error {
	row := fromModel(*tx)
	if err := s.db.Create(&row).Error; err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return ingest.ErrDuplicateTransaction
		}
		return fmt.Errorf("inserting transaction: %w", err)
	}
	tx.ID = row.ID
	return nil
}

func (r transactionRow) toModel() models.Transaction {
	return models.Transaction{
		ID:            r.ID,
		AccountID:     r.AccountID,
		Date:          r.Date.UTC(),
		Amount:        r.Amount,
		Description:   r.Description,
		Merchant:      r.Merchant,
		BankName:      models.Institution(r.BankName),
		CategoryID:    r.CategoryID,
		SourceFileRef: r.SourceFileRef,
	}
}

func fromModel(tx models.Transaction) transactionRow {
	return transactionRow{
		AccountID:       tx.AccountID,
		Date:            tx.Date,
		Amount:          tx.Amount,
		Description:     tx.Description,
		NormDescription: normalize.CanonicalDescription(tx.Description),
		Merchant:        tx.Merchant,
		BankName:        string(tx.BankName),
		CategoryID:      tx.CategoryID,
		SourceFileRef:   tx.SourceFileRef,
	}
}
