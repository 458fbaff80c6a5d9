package bank

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/maplebudget/statement-ingest/internal/extractor"
	"github.com/maplebudget/statement-ingest/internal/models"
)

// detectLineLimit bounds how much of page 1 the PDF detector inspects.
// Institution boilerplate sits in the letterhead, not the transaction table.
const detectLineLimit = 40

var pdfMagic = []byte("%PDF-")

// SniffKind determines the physical file kind from content and the declared
// file name. It fails only when the bytes cannot plausibly be either format.
func SniffKind(data []byte, name string) (models.FileKind, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", models.ErrFileUnreadable)
	}

	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	if bytes.Contains(head, pdfMagic) {
		return models.KindPDF, nil
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".pdf" {
		// Declared PDF without the magic marker is corrupt, not a CSV.
		return "", fmt.Errorf("%w: %q has no PDF marker", models.ErrFileUnreadable, name)
	}

	if looksLikeText(head) {
		return models.KindCSV, nil
	}
	return "", fmt.Errorf("%w: %q is neither PDF nor delimited text", models.ErrFileUnreadable, name)
}

func looksLikeText(b []byte) bool {
	printable := 0
	for _, c := range b {
		if c == 0 {
			return false
		}
		if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c < 0x7f) || c >= 0x80 {
			printable++
		}
	}
	return printable*10 >= len(b)*9
}

// Detect classifies an uploaded statement: file kind plus producing
// institution. Unrecognized but readable input yields InstitutionUnknown so
// the generic extractor can still run; only genuinely unreadable files fail.
func (r *Registry) Detect(data []byte, name string) (models.DetectedSource, error) {
	kind, err := SniffKind(data, name)
	if err != nil {
		return models.DetectedSource{}, err
	}

	switch kind {
	case models.KindCSV:
		header, err := extractor.CSVHeader(data)
		if err != nil {
			// Detection never fails for an unrecognized header; the adapter
			// rejects headerless files later with the proper error.
			return models.DetectedSource{Institution: models.InstitutionUnknown, Kind: kind}, nil
		}
		return r.DetectCSVHeader(header), nil

	default:
		pages, err := extractor.ExtractPages(data)
		if err != nil {
			return models.DetectedSource{}, fmt.Errorf("%w: %v", models.ErrFileUnreadable, err)
		}
		return r.DetectPDF(pages), nil
	}
}

// DetectCSVHeader matches a CSV header row against the registry signatures.
// A signature is a candidate only when every one of its required columns is
// present; among candidates the one with the most required columns wins,
// registry order breaking exact ties.
func (r *Registry) DetectCSVHeader(header []string) models.DetectedSource {
	lowered := make([]string, len(header))
	for i, h := range header {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	best := models.DetectedSource{Institution: models.InstitutionUnknown, Kind: models.KindCSV}
	bestCols := 0
	for _, sig := range r.sigs {
		if len(sig.CSVHeaders) == 0 || !headerMatches(lowered, sig.CSVHeaders) {
			continue
		}
		if len(sig.CSVHeaders) > bestCols {
			bestCols = len(sig.CSVHeaders)
			best = models.DetectedSource{
				Institution: sig.Institution,
				Kind:        models.KindCSV,
				MatchedOn:   "csv header: " + strings.Join(sig.CSVHeaders, ", "),
			}
		}
	}
	return best
}

func headerMatches(lowered []string, required []string) bool {
	for _, want := range required {
		found := false
		for _, have := range lowered {
			if have == want || strings.Contains(have, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// DetectPDF matches institution boilerplate against the opening lines of the
// first extracted page.
func (r *Registry) DetectPDF(pages []string) models.DetectedSource {
	src := models.DetectedSource{Institution: models.InstitutionUnknown, Kind: models.KindPDF}
	if len(pages) == 0 {
		return src
	}

	lines := strings.Split(pages[0], "\n")
	if len(lines) > detectLineLimit {
		lines = lines[:detectLineLimit]
	}
	haystack := strings.ToUpper(strings.Join(lines, "\n"))

	for _, sig := range r.sigs {
		for _, phrase := range sig.PDFPhrases {
			if strings.Contains(haystack, strings.ToUpper(phrase)) {
				src.Institution = sig.Institution
				src.MatchedOn = "pdf phrase: " + phrase
				return src
			}
		}
	}
	return src
}
