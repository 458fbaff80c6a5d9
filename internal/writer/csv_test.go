package writer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maplebudget/statement-ingest/internal/models"
)

func sample() []models.Transaction {
	return []models.Transaction{
		{
			Date:        time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.RequireFromString("-4.50"),
			Description: "Coffee Shop",
			Merchant:    "COFFEE SHOP",
			BankName:    models.InstitutionTD,
		},
		{
			Date:        time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.RequireFromString("2000.00"),
			Description: "Payroll, August",
			BankName:    models.InstitutionTD,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, sample()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Date,Description,Merchant,Amount" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2025-08-01,Coffee Shop,COFFEE SHOP,-4.50" {
		t.Errorf("row 1 = %q", lines[1])
	}
	// the comma in the description must be quoted
	if !strings.Contains(lines[2], `"Payroll, August"`) {
		t.Errorf("row 2 = %q, want quoted description", lines[2])
	}
}

func TestWriteCSVWithProvenance(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeProvenance: true}
	if err := w.Write(&buf, sample()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "Date,Description,Merchant,Amount,Bank,Source File" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], ",td,") {
		t.Errorf("row 1 = %q, want bank column", lines[1])
	}
}

func TestSummarize(t *testing.T) {
	out, in := Summarize(sample())
	if out != "4.50" {
		t.Errorf("out = %s, want 4.50", out)
	}
	if in != "2000.00" {
		t.Errorf("in = %s, want 2000.00", in)
	}
}
