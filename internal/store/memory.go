package store

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/maplebudget/statement-ingest/internal/ingest"
	"github.com/maplebudget/statement-ingest/internal/models"
	"github.com/maplebudget/statement-ingest/internal/normalize"
)

// Memory is an in-process Store used by tests and the CLI's dry-run mode. It
// enforces the same uniqueness rule as the Postgres unique index.
type Memory struct {
	mu     sync.Mutex
	nextID uint
	txs    []models.Transaction
	keys   map[string]bool
}

func NewMemory() *Memory {
	return &Memory{nextID: 1, keys: make(map[string]bool)}
}

func (m *Memory) FindTransactions(_ context.Context, accountID uint, from, to time.Time) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Transaction
	for _, tx := range m.txs {
		if tx.AccountID != accountID {
			continue
		}
		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (m *Memory) InsertTransaction(_ context.Context, tx *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memKey(*tx)
	if m.keys[key] {
		return ingest.ErrDuplicateTransaction
	}
	tx.ID = m.nextID
	m.nextID++
	m.txs = append(m.txs, *tx)
	m.keys[key] = true
	return nil
}

// All returns every stored transaction in insertion order.
func (m *Memory) All() []models.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Transaction, len(m.txs))
	copy(out, m.txs)
	return out
}

func memKey(tx models.Transaction) string {
	return strings.Join([]string{
		strconv.FormatUint(uint64(tx.AccountID), 10),
		tx.Date.Format("2006-01-02"),
		tx.Amount.StringFixed(2),
		normalize.CanonicalDescription(tx.Description),
	}, "|")
}
