// Package api exposes the ingestion pipeline over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/maplebudget/statement-ingest/internal/ingest"
	"github.com/maplebudget/statement-ingest/internal/models"
	"github.com/maplebudget/statement-ingest/internal/writer"
)

// maxUploadBytes caps statement uploads. Real statements are well under a
// megabyte; anything near the cap is not a statement.
const maxUploadBytes = 10 << 20

var allowedExtensions = map[string]bool{
	".pdf": true,
	".csv": true,
	".txt": true,
}

// Ingestor is the pipeline surface the upload handler needs.
type Ingestor interface {
	Ingest(ctx context.Context, data []byte, fileName string, accountID uint) (*models.UploadReport, error)
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	ingestor Ingestor
	store    ingest.Store
	log      zerolog.Logger
}

func NewHandler(ingestor Ingestor, store ingest.Store, log zerolog.Logger) *Handler {
	return &Handler{ingestor: ingestor, store: store, log: log}
}

// Register sets up the HTTP routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/statements", h.HandleUpload)
	app.Get("/api/accounts/:id/transactions", h.HandleListTransactions)
	app.Get("/api/accounts/:id/transactions.csv", h.HandleExportCSV)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

// HandleUpload ingests one statement file posted as multipart form field
// "file" with the owning account in "account_id". Row-level problems come
// back inside the report with status 200; only whole-file rejections map to
// error statuses.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	accountID, err := parseAccountID(c.FormValue("account_id"))
	if err != nil {
		return badRequest(c, "invalid account_id: must be a positive integer")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "no file uploaded, use form field 'file'")
	}
	if fileHeader.Size > maxUploadBytes {
		return errorJSON(c, fiber.StatusRequestEntityTooLarge, "file exceeds the 10MB upload limit")
	}

	name := sanitizeFileName(fileHeader.Filename)
	if ext := strings.ToLower(filepath.Ext(name)); !allowedExtensions[ext] {
		return badRequest(c, fmt.Sprintf("unsupported file type %q, expected .pdf or .csv", ext))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "failed to open uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "failed to read uploaded file")
	}
	if len(data) > maxUploadBytes {
		return errorJSON(c, fiber.StatusRequestEntityTooLarge, "file exceeds the 10MB upload limit")
	}

	report, err := h.ingestor.Ingest(c.Context(), data, name, accountID)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, models.ErrFileUnreadable) || errors.Is(err, models.ErrHeaderNotFound) {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(report)
	}
	return c.JSON(report)
}

func (h *Handler) HandleListTransactions(c *fiber.Ctx) error {
	accountID, err := parseAccountID(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}
	txs, err := h.accountTransactions(c, accountID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "failed to load transactions")
	}
	return c.JSON(fiber.Map{
		"transactions": txs,
		"count":        len(txs),
	})
}

// HandleExportCSV streams the account's transactions as a CSV download.
func (h *Handler) HandleExportCSV(c *fiber.Ctx) error {
	accountID, err := parseAccountID(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}
	txs, err := h.accountTransactions(c, accountID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "failed to load transactions")
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
	w := &writer.CSVWriter{IncludeProvenance: true}
	return w.Write(c.Response().BodyWriter(), txs)
}

func (h *Handler) accountTransactions(c *fiber.Ctx, accountID uint) ([]models.Transaction, error) {
	from, to := exportWindow()
	txs, err := h.store.FindTransactions(c.Context(), accountID, from, to)
	if err != nil {
		h.log.Error().Err(err).Uint("account_id", accountID).Msg("loading transactions")
		return nil, err
	}
	return txs, nil
}

// exportWindow is the unbounded query range used when listing everything an
// account has.
func exportWindow() (time.Time, time.Time) {
	return time.Time{}, time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
}

func parseAccountID(s string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid account id %q", s)
	}
	return uint(v), nil
}

// sanitizeFileName strips any path components a client smuggled into the
// multipart file name.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return filepath.Base(name)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return errorJSON(c, fiber.StatusBadRequest, msg)
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
