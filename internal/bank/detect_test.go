package bank

import (
	"errors"
	"testing"

	"github.com/maplebudget/statement-ingest/internal/models"
	"github.com/maplebudget/statement-ingest/internal/normalize"
)

func TestSniffKind(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		fileName string
		want     models.FileKind
		wantErr  bool
	}{
		{"pdf magic", []byte("%PDF-1.7\nbinary..."), "statement.pdf", models.KindPDF, false},
		{"pdf magic wrong extension", []byte("%PDF-1.4\n"), "statement.csv", models.KindPDF, false},
		{"plain csv", []byte("Date,Description,Debit,Credit,Balance\n"), "export.csv", models.KindCSV, false},
		{"csv without extension", []byte("Date,Description,Amount\n1/1/2025,x,1.00\n"), "export", models.KindCSV, false},
		{"declared pdf without marker", []byte("not a pdf at all"), "statement.pdf", "", true},
		{"empty file", nil, "empty.csv", "", true},
		{"binary garbage", []byte{0x00, 0x01, 0x02, 0xff, 0x00}, "blob.bin", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SniffKind(tt.data, tt.fileName)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SniffKind(%q) = %q, want error", tt.fileName, got)
				}
				if !errors.Is(err, models.ErrFileUnreadable) {
					t.Errorf("error %v is not ErrFileUnreadable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SniffKind(%q) unexpected error: %v", tt.fileName, err)
			}
			if got != tt.want {
				t.Errorf("SniffKind(%q) = %q, want %q", tt.fileName, got, tt.want)
			}
		})
	}
}

func TestDetectCSVHeader(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		name   string
		header []string
		want   models.Institution
	}{
		{"rbc", []string{"Date", "Description", "Withdrawals", "Deposits", "Balance"}, models.InstitutionRBC},
		{"td", []string{"Date", "Description", "Debit", "Credit", "Balance"}, models.InstitutionTD},
		{"cibc card", []string{"Posting Date", "Transaction Details", "CAD$"}, models.InstitutionCIBC},
		{"amex", []string{"Date", "Description", "Cardmember", "Amount"}, models.InstitutionAmex},
		{"bmo", []string{"Date Posted", "Transaction Amount", "Description"}, models.InstitutionBMO},
		{"scotiabank", []string{"Date", "Description", "Funds Out", "Funds In"}, models.InstitutionScotiabank},
		{"tangerine", []string{"Date", "Transaction", "Name", "Memo", "Amount"}, models.InstitutionTangerine},
		{"case insensitive", []string{"DATE", "DESCRIPTION", "WITHDRAWALS", "DEPOSITS"}, models.InstitutionRBC},
		{"unknown header", []string{"When", "What", "How Much"}, models.InstitutionUnknown},
		{"generic amount export", []string{"Date", "Description", "Amount"}, models.InstitutionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reg.DetectCSVHeader(tt.header)
			if got.Institution != tt.want {
				t.Errorf("DetectCSVHeader(%v) = %q, want %q", tt.header, got.Institution, tt.want)
			}
			if got.Kind != models.KindCSV {
				t.Errorf("Kind = %q, want csv", got.Kind)
			}
		})
	}
}

func TestDetectCSVHeaderPrefersMoreColumns(t *testing.T) {
	reg := DefaultRegistry()
	// satisfies both TD (5 required columns) and RBC-shaped substrings; the
	// more specific signature must win
	header := []string{"Date", "Description", "Debit", "Credit", "Balance", "Withdrawals", "Deposits"}
	got := reg.DetectCSVHeader(header)
	if got.Institution != models.InstitutionTD {
		t.Errorf("DetectCSVHeader = %q, want td", got.Institution)
	}
}

func TestDetectPDF(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		name  string
		page  string
		want  models.Institution
	}{
		{"cibc letterhead", "CIBC Account Statement\nJanuary 2025\n", models.InstitutionCIBC},
		{"rbc full name", "Royal Bank of Canada\nYour statement\n", models.InstitutionRBC},
		{"td", "TD Canada Trust\nEveryday Chequing Account\n", models.InstitutionTD},
		{"amex lowercase", "american express statement of account\n", models.InstitutionAmex},
		{"no match", "Some Credit Union\nStatement of Account\n", models.InstitutionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reg.DetectPDF([]string{tt.page})
			if got.Institution != tt.want {
				t.Errorf("DetectPDF = %q, want %q", got.Institution, tt.want)
			}
			if got.Kind != models.KindPDF {
				t.Errorf("Kind = %q, want pdf", got.Kind)
			}
		})
	}
}

func TestDetectPDFIgnoresDeepMentions(t *testing.T) {
	reg := DefaultRegistry()
	var page string
	for i := 0; i < detectLineLimit; i++ {
		page += "transaction line without bank names\n"
	}
	page += "payment to RBC credit card\n"
	got := reg.DetectPDF([]string{page})
	if got.Institution != models.InstitutionUnknown {
		t.Errorf("deep mention matched: %q", got.Institution)
	}
}

func TestDetectEndToEndCSV(t *testing.T) {
	reg := DefaultRegistry()
	data := []byte("Date,Description,Withdrawals,Deposits\n2025/01/15,Hydro Bill,85.20,\n")
	got, err := reg.Detect(data, "rbc.csv")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if got.Institution != models.InstitutionRBC || got.Kind != models.KindCSV {
		t.Errorf("Detect = %+v", got)
	}
}

func TestConvention(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		inst models.Institution
		want normalize.DateConvention
	}{
		{models.InstitutionCIBC, normalize.MonthFirst},
		{models.InstitutionRBC, normalize.YearFirst},
		{models.InstitutionTD, normalize.DayFirst},
		{models.InstitutionBMO, normalize.YearFirst},
		{models.InstitutionUnknown, normalize.ConventionUnknown},
	}
	for _, tt := range tests {
		if got := reg.Convention(tt.inst); got != tt.want {
			t.Errorf("Convention(%q) = %v, want %v", tt.inst, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	reg := DefaultRegistry()
	if got := reg.DisplayName(models.InstitutionScotiabank); got != "Scotiabank" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := reg.DisplayName(models.Institution("nope")); got != "Unknown" {
		t.Errorf("DisplayName for unregistered = %q", got)
	}
}
