package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/maplebudget/statement-ingest/internal/bank"
	"github.com/maplebudget/statement-ingest/internal/ingest"
	"github.com/maplebudget/statement-ingest/internal/models"
	"github.com/maplebudget/statement-ingest/internal/store"
)

func setupTestApp() *fiber.App {
	mem := store.NewMemory()
	pipeline := ingest.NewPipeline(bank.DefaultRegistry(), mem, zerolog.Nop())
	h := NewHandler(pipeline, mem, zerolog.Nop())

	app := fiber.New()
	h.Register(app)
	return app
}

func multipartUpload(t *testing.T, fileName, accountID string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if accountID != "" {
		if err := mw.WriteField("account_id", accountID); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/api/statements", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

var tdCSV = []byte("Date,Description,Debit,Credit,Balance\n" +
	"01/08/2025,Coffee Shop,4.50,,995.50\n" +
	"02/08/2025,Payroll,,2000.00,2995.50\n")

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %q", result["status"])
	}
}

func TestUploadEndpointRequiresFile(t *testing.T) {
	app := setupTestApp()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("account_id", "1")
	mw.Close()

	req := httptest.NewRequest("POST", "/api/statements", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for missing file, got %d", resp.StatusCode)
	}
}

func TestUploadEndpointRequiresAccount(t *testing.T) {
	app := setupTestApp()

	resp, err := app.Test(multipartUpload(t, "td.csv", "", tdCSV))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for missing account_id, got %d", resp.StatusCode)
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	app := setupTestApp()

	resp, err := app.Test(multipartUpload(t, "statement.exe", "1", tdCSV))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400 for .exe upload, got %d", resp.StatusCode)
	}
}

func TestUploadStatement(t *testing.T) {
	app := setupTestApp()

	resp, err := app.Test(multipartUpload(t, "td.csv", "1", tdCSV))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var report models.UploadReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.BankDetected != models.InstitutionTD {
		t.Errorf("bank = %q, want td", report.BankDetected)
	}
	if report.TotalFound != 2 || report.NewlyAdded != 2 {
		t.Errorf("counts = %d/%d, want 2/2", report.TotalFound, report.NewlyAdded)
	}
}

func TestUploadUnreadablePDF(t *testing.T) {
	app := setupTestApp()

	resp, err := app.Test(multipartUpload(t, "garbage.pdf", "1", []byte("this is not a pdf")))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("expected 422 for unreadable pdf, got %d", resp.StatusCode)
	}

	var report models.UploadReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.FailureReason == "" {
		t.Errorf("expected error_message in report")
	}
}

func TestListTransactions(t *testing.T) {
	app := setupTestApp()

	if _, err := app.Test(multipartUpload(t, "td.csv", "3", tdCSV)); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/accounts/3/transactions", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Count        int                  `json:"count"`
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Count != 2 || len(result.Transactions) != 2 {
		t.Errorf("count = %d with %d transactions, want 2", result.Count, len(result.Transactions))
	}

	// another account must see nothing
	resp, err = app.Test(httptest.NewRequest("GET", "/api/accounts/4/transactions", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Count != 0 {
		t.Errorf("account 4 count = %d, want 0", result.Count)
	}
}

func TestExportCSV(t *testing.T) {
	app := setupTestApp()

	if _, err := app.Test(multipartUpload(t, "td.csv", "5", tdCSV)); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/accounts/5/transactions.csv", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), body)
	}
	if !strings.Contains(lines[1], "-4.50") {
		t.Errorf("row 1 = %q, want the -4.50 debit", lines[1])
	}
}

func TestInvalidAccountID(t *testing.T) {
	app := setupTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/accounts/zero/transactions", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}
