package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maplebudget/statement-ingest/internal/ingest"
	"github.com/maplebudget/statement-ingest/internal/models"
)

func tx(account uint, day int, amount, desc string) models.Transaction {
	return models.Transaction{
		AccountID:   account,
		Date:        time.Date(2025, 8, day, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString(amount),
		Description: desc,
		BankName:    models.InstitutionTD,
	}
}

func TestMemoryInsertAndFind(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	first := tx(1, 1, "-4.50", "Coffee Shop")
	require.NoError(t, m.InsertTransaction(ctx, &first))
	assert.NotZero(t, first.ID, "insert should assign an id")

	second := tx(1, 2, "2000.00", "Payroll")
	require.NoError(t, m.InsertTransaction(ctx, &second))

	other := tx(2, 1, "-4.50", "Coffee Shop")
	require.NoError(t, m.InsertTransaction(ctx, &other))

	got, err := m.FindTransactions(ctx, 1, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, got, 2, "account 2's rows must not leak into account 1")

	got, err = m.FindTransactions(ctx, 1, time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC), time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Payroll", got[0].Description)
}

func TestMemoryRejectsDuplicates(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	first := tx(1, 1, "-4.50", "Coffee Shop")
	require.NoError(t, m.InsertTransaction(ctx, &first))

	// same identity with different casing and spacing
	dup := tx(1, 1, "-4.50", "  COFFEE   SHOP ")
	err := m.InsertTransaction(ctx, &dup)
	assert.ErrorIs(t, err, ingest.ErrDuplicateTransaction)
	assert.Len(t, m.All(), 1)
}
