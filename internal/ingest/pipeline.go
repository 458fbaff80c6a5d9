// Package ingest wires detection, extraction and normalization into the
// statement upload pipeline and guards the store against duplicate rows.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/maplebudget/statement-ingest/internal/bank"
	"github.com/maplebudget/statement-ingest/internal/extractor"
	"github.com/maplebudget/statement-ingest/internal/models"
	"github.com/maplebudget/statement-ingest/internal/normalize"
	"github.com/maplebudget/statement-ingest/internal/parser"
)

// Pipeline ingests uploaded statement files for an account. It is safe for
// concurrent use; all per-upload state is local to Ingest.
type Pipeline struct {
	registry *bank.Registry
	store    Store
	log      zerolog.Logger

	// now is swappable for tests that pin the year hint.
	now func() time.Time
}

func NewPipeline(registry *bank.Registry, store Store, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		registry: registry,
		store:    store,
		log:      log,
		now:      time.Now,
	}
}

// Ingest runs one uploaded file through detection, extraction, normalization
// and the duplicate guard, returning a report of what happened. A non-nil
// error means the whole file was rejected; the returned report then carries
// the failure reason. Row-level problems never produce an error, they are
// collected in the report.
func (p *Pipeline) Ingest(ctx context.Context, data []byte, fileName string, accountID uint) (*models.UploadReport, error) {
	fileRef := uuid.New().String()
	log := p.log.With().
		Str("file", fileName).
		Str("file_ref", fileRef).
		Uint("account_id", accountID).
		Logger()

	src, rows, err := p.read(data, fileName)
	if err != nil {
		log.Warn().Err(err).Msg("statement rejected")
		return &models.UploadReport{FailureReason: err.Error()}, err
	}
	log.Info().
		Str("institution", string(src.Institution)).
		Str("kind", string(src.Kind)).
		Str("matched_on", src.MatchedOn).
		Int("rows", len(rows)).
		Msg("statement detected")

	report := &models.UploadReport{
		BankDetected: src.Institution,
		FileKind:     src.Kind,
	}

	ex := parser.ForSource(src)
	conv := p.registry.Convention(src.Institution)
	yearHint := p.now().Year()

	var txs []models.Transaction
	for _, row := range rows {
		cand, rerr := ex.Extract(row)
		if rerr != nil {
			report.RowErrors = append(report.RowErrors, *rerr)
			continue
		}
		if cand == nil {
			continue
		}
		tx, rerr := p.buildTransaction(cand, conv, yearHint)
		if rerr != nil {
			report.RowErrors = append(report.RowErrors, *rerr)
			continue
		}
		tx.AccountID = accountID
		tx.BankName = src.Institution
		tx.SourceFileRef = fileRef
		txs = append(txs, *tx)
	}
	report.TotalFound = len(txs)

	if err := p.persist(ctx, accountID, txs, report); err != nil {
		log.Error().Err(err).Msg("persisting transactions")
		report.FailureReason = err.Error()
		return report, err
	}

	log.Info().
		Int("found", report.TotalFound).
		Int("added", report.NewlyAdded).
		Int("duplicates", report.DuplicatesSkipped).
		Int("row_errors", len(report.RowErrors)).
		Msg("statement ingested")
	return report, nil
}

// buildTransaction normalizes one extracted candidate into the canonical
// record: parsed date, signed decimal amount (money out negative), cleaned
// description and derived merchant.
func (p *Pipeline) buildTransaction(cand *models.CandidateTransaction, conv normalize.DateConvention, yearHint int) (*models.Transaction, *models.RowError) {
	line := models.RawLine{Page: cand.Page, Row: cand.Row}

	date, err := normalize.ParseDate(cand.RawDate, conv, yearHint)
	if err != nil {
		kind := models.RowErrUnparseableDate
		if errors.Is(err, models.ErrAmbiguousDate) {
			kind = models.RowErrAmbiguousDate
		}
		return nil, models.NewRowError(line, kind, "date %q: %v", cand.RawDate, err)
	}

	amount, rerr := signedAmount(cand, line)
	if rerr != nil {
		return nil, rerr
	}

	desc := normalize.Description(cand.Description)
	return &models.Transaction{
		Date:        date,
		Amount:      amount,
		Description: desc,
		Merchant:    normalize.Merchant(desc),
	}, nil
}

// signedAmount resolves the candidate's amount buckets to one signed value.
// Debit means money out and comes back negative whatever sign decoration the
// source column carried; Credit comes back positive; a single Amount column
// keeps its own sign.
func signedAmount(cand *models.CandidateTransaction, line models.RawLine) (decimal.Decimal, *models.RowError) {
	switch {
	case cand.Amount != "":
		v, err := normalize.ParseAmount(cand.Amount)
		if err != nil {
			return decimal.Zero, models.NewRowError(line, models.RowErrUnparseableAmount, "amount %q: %v", cand.Amount, err)
		}
		return v, nil
	case cand.Debit != "":
		v, err := normalize.ParseAmount(cand.Debit)
		if err != nil {
			return decimal.Zero, models.NewRowError(line, models.RowErrUnparseableAmount, "debit %q: %v", cand.Debit, err)
		}
		return v.Abs().Neg(), nil
	case cand.Credit != "":
		v, err := normalize.ParseAmount(cand.Credit)
		if err != nil {
			return decimal.Zero, models.NewRowError(line, models.RowErrUnparseableAmount, "credit %q: %v", cand.Credit, err)
		}
		return v.Abs(), nil
	}
	return decimal.Zero, models.NewRowError(line, models.RowErrMissingRequiredField, "candidate has no amount")
}

// read sniffs the file kind, extracts raw lines and identifies the
// institution. Double extraction is avoided: the PDF text and CSV header are
// pulled once and shared between detection and row iteration.
func (p *Pipeline) read(data []byte, fileName string) (models.DetectedSource, []models.RawLine, error) {
	kind, err := bank.SniffKind(data, fileName)
	if err != nil {
		return models.DetectedSource{}, nil, err
	}

	if kind == models.KindCSV {
		header, err := extractor.CSVHeader(data)
		if err != nil {
			return models.DetectedSource{}, nil, err
		}
		rows, err := extractor.ParseCSVRows(data)
		if err != nil {
			return models.DetectedSource{}, nil, err
		}
		return p.registry.DetectCSVHeader(header), rows, nil
	}

	pages, err := extractor.ExtractPages(data)
	if err != nil {
		return models.DetectedSource{}, nil, fmt.Errorf("%w: %v", models.ErrFileUnreadable, err)
	}
	return p.registry.DetectPDF(pages), extractor.RowsFromPages(pages), nil
}

// persist runs the duplicate guard and inserts what survives it. Duplicates
// are detected against the store within the upload's date range and within
// the upload itself, with the store's unique index as the backstop.
func (p *Pipeline) persist(ctx context.Context, accountID uint, txs []models.Transaction, report *models.UploadReport) error {
	if len(txs) == 0 {
		return nil
	}

	from, to := dateRange(txs)
	existing, err := p.store.FindTransactions(ctx, accountID, from, to)
	if err != nil {
		return fmt.Errorf("loading existing transactions: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, tx := range existing {
		seen[dupKey(tx)] = true
	}

	for i := range txs {
		key := dupKey(txs[i])
		if seen[key] {
			report.DuplicatesSkipped++
			continue
		}
		if err := p.store.InsertTransaction(ctx, &txs[i]); err != nil {
			if errors.Is(err, ErrDuplicateTransaction) {
				report.DuplicatesSkipped++
				seen[key] = true
				continue
			}
			return fmt.Errorf("inserting transaction: %w", err)
		}
		seen[key] = true
		report.NewlyAdded++
	}
	return nil
}

// dupKey is the duplicate identity: calendar date, exact amount and the
// canonical description (case folded, whitespace collapsed). Two legitimate
// same-day purchases differing in any of the three are kept apart.
func dupKey(tx models.Transaction) string {
	return strings.Join([]string{
		tx.Date.Format("2006-01-02"),
		tx.Amount.StringFixed(2),
		normalize.CanonicalDescription(tx.Description),
	}, "|")
}

func dateRange(txs []models.Transaction) (from, to time.Time) {
	from, to = txs[0].Date, txs[0].Date
	for _, tx := range txs[1:] {
		if tx.Date.Before(from) {
			from = tx.Date
		}
		if tx.Date.After(to) {
			to = tx.Date
		}
	}
	return from, to
}
