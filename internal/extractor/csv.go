package extractor

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/maplebudget/statement-ingest/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// cell patterns used to tell a header row from a data row: headers name
// columns, they do not contain dates or money.
var (
	dateCellRe  = regexp.MustCompile(`^\d{1,4}[/-]\d{1,2}[/-]\d{1,4}$`)
	moneyCellRe = regexp.MustCompile(`^\(?-?[$£€]?\s?[\d.,]+\)?$`)
	letterRe    = regexp.MustCompile(`[A-Za-z]`)
)

// CSVHeader reads just the header row of a delimited file, lowercased and
// trimmed. Returns ErrHeaderNotFound when the first row looks like data
// rather than column names.
func CSVHeader(data []byte) ([]string, error) {
	r := newDelimitedReader(data)
	record, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrHeaderNotFound, err)
	}
	header, err := validateHeader(record)
	if err != nil {
		return nil, err
	}
	return header, nil
}

// ParseCSVRows parses a delimited file into header-keyed RawLines. It
// tolerates a UTF-8 byte-order mark, comma or semicolon delimiters (sniffed
// from the header line) and quoted fields containing the delimiter. A header
// row is mandatory.
func ParseCSVRows(data []byte) ([]models.RawLine, error) {
	r := newDelimitedReader(data)

	first, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrHeaderNotFound, err)
	}
	header, err := validateHeader(first)
	if err != nil {
		return nil, err
	}

	var rows []models.RawLine
	rowNum := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A single mangled line must not lose the rest of the file.
			continue
		}

		empty := true
		fields := make(map[string]string, len(header))
		for i, cell := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				empty = false
			}
			fields[header[i]] = cell
		}
		if empty {
			continue
		}

		rowNum++
		rows = append(rows, models.RawLine{
			Row:    rowNum,
			Text:   strings.Join(record, ","),
			Fields: fields,
		})
	}
	return rows, nil
}

func newDelimitedReader(data []byte) *csv.Reader {
	data = bytes.TrimPrefix(data, utf8BOM)
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r
}

// sniffDelimiter picks comma or semicolon based on which occurs more often
// outside quotes in the header line.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	commas, semis := 0, 0
	inQuotes := false
	for _, c := range line {
		switch c {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				commas++
			}
		case ';':
			if !inQuotes {
				semis++
			}
		}
	}
	if semis > commas {
		return ';'
	}
	return ','
}

// validateHeader lowercases and trims the first record and checks it is
// plausibly a header: at least two named columns, none of which parse as a
// date or a monetary amount.
func validateHeader(record []string) ([]string, error) {
	named := 0
	header := make([]string, len(record))
	for i, cell := range record {
		cell = strings.TrimSpace(strings.TrimPrefix(cell, string(utf8BOM)))
		if cell == "" {
			header[i] = ""
			continue
		}
		if dateCellRe.MatchString(cell) || (moneyCellRe.MatchString(cell) && !letterRe.MatchString(cell)) {
			return nil, fmt.Errorf("%w: first row contains data values", models.ErrHeaderNotFound)
		}
		header[i] = strings.ToLower(cell)
		if letterRe.MatchString(cell) {
			named++
		}
	}
	if named < 2 {
		return nil, fmt.Errorf("%w: no recognizable column names", models.ErrHeaderNotFound)
	}
	return header, nil
}
