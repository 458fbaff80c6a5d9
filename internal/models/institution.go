package models

// Institution identifies a financial institution whose statement exports the
// system recognizes. The set is closed; detection that matches nothing yields
// InstitutionUnknown and the generic extraction path.
type Institution string

const (
	InstitutionCIBC       Institution = "cibc"
	InstitutionRBC        Institution = "rbc"
	InstitutionTD         Institution = "td"
	InstitutionAmex       Institution = "amex"
	InstitutionBMO        Institution = "bmo"
	InstitutionScotiabank Institution = "scotiabank"
	InstitutionTangerine  Institution = "tangerine"
	InstitutionUnknown    Institution = "unknown"
)

// FileKind is the physical format of an uploaded statement.
type FileKind string

const (
	KindPDF FileKind = "pdf"
	KindCSV FileKind = "csv"
)

// DetectedSource is the immutable result of format detection: which
// institution produced the file, what kind of file it is, and which heuristic
// matched (for diagnostics).
type DetectedSource struct {
	Institution Institution
	Kind        FileKind
	MatchedOn   string
}
