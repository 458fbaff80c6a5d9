// Package bank holds the closed registry of supported institutions and the
// format detector that classifies uploaded statements against it.
package bank

import (
	"github.com/maplebudget/statement-ingest/internal/models"
	"github.com/maplebudget/statement-ingest/internal/normalize"
)

// Signature describes how to recognize one institution's exports and how to
// read its all-numeric dates. CSVHeaders are required column names matched
// exactly or as a case-insensitive substring of a header cell; PDFPhrases are
// boilerplate strings looked for in page-1 text.
type Signature struct {
	Institution models.Institution
	DisplayName string
	CSVHeaders  []string
	PDFPhrases  []string
	DateOrder   normalize.DateConvention
}

// Registry is the versioned list of supported institutions. It is plain
// configuration data consumed by the detector and the extractors, loaded once
// at process start; there is no dynamic plugin mechanism.
type Registry struct {
	sigs []Signature
}

// DefaultRegistry returns the built-in institution set.
func DefaultRegistry() *Registry {
	return &Registry{sigs: []Signature{
		{
			Institution: models.InstitutionCIBC,
			DisplayName: "CIBC",
			CSVHeaders:  []string{"posting date", "transaction details", "cad$"},
			PDFPhrases:  []string{"CIBC", "Canadian Imperial Bank"},
			DateOrder:   normalize.MonthFirst,
		},
		{
			Institution: models.InstitutionRBC,
			DisplayName: "Royal Bank of Canada (RBC)",
			CSVHeaders:  []string{"date", "description", "withdrawals", "deposits"},
			PDFPhrases:  []string{"Royal Bank of Canada", "RBC"},
			DateOrder:   normalize.YearFirst,
		},
		{
			Institution: models.InstitutionTD,
			DisplayName: "TD Canada Trust",
			CSVHeaders:  []string{"date", "description", "debit", "credit", "balance"},
			PDFPhrases:  []string{"TD Canada Trust", "TD Bank"},
			DateOrder:   normalize.DayFirst,
		},
		{
			Institution: models.InstitutionAmex,
			DisplayName: "American Express",
			CSVHeaders:  []string{"date", "description", "cardmember", "amount"},
			PDFPhrases:  []string{"American Express", "AMEX"},
			DateOrder:   normalize.MonthFirst,
		},
		{
			Institution: models.InstitutionBMO,
			DisplayName: "Bank of Montreal (BMO)",
			CSVHeaders:  []string{"date posted", "transaction amount", "description"},
			PDFPhrases:  []string{"Bank of Montreal", "BMO"},
			DateOrder:   normalize.YearFirst,
		},
		{
			Institution: models.InstitutionScotiabank,
			DisplayName: "Scotiabank",
			CSVHeaders:  []string{"date", "description", "funds out", "funds in"},
			PDFPhrases:  []string{"Scotiabank", "Bank of Nova Scotia"},
			DateOrder:   normalize.MonthFirst,
		},
		{
			Institution: models.InstitutionTangerine,
			DisplayName: "Tangerine",
			CSVHeaders:  []string{"date", "transaction", "name", "memo", "amount"},
			PDFPhrases:  []string{"Tangerine"},
			DateOrder:   normalize.MonthFirst,
		},
	}}
}

// Signatures returns the registry entries in priority order.
func (r *Registry) Signatures() []Signature { return r.sigs }

// Convention returns the documented numeric date ordering for an institution,
// or ConventionUnknown for institutions outside the registry.
func (r *Registry) Convention(inst models.Institution) normalize.DateConvention {
	for _, s := range r.sigs {
		if s.Institution == inst {
			return s.DateOrder
		}
	}
	return normalize.ConventionUnknown
}

// DisplayName returns the human-readable institution name.
func (r *Registry) DisplayName(inst models.Institution) string {
	for _, s := range r.sigs {
		if s.Institution == inst {
			return s.DisplayName
		}
	}
	return "Unknown"
}
