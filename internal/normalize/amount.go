// Package normalize converts locale-specific amount and date strings from
// bank statement exports into canonical decimal and calendar-date values.
package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/maplebudget/statement-ingest/internal/models"
)

// currencyReplacer strips currency symbols and whitespace (including Unicode
// variants) before numeric interpretation.
var currencyReplacer = strings.NewReplacer(
	"$", "",
	"£", "",
	"€", "",
	" ", "", // non-breaking space
	" ", "",
	"\t", "",
)

// currencyCodes are literal suffixes some exports append after the number,
// e.g. "1,234.56 CAD".
var currencyCodes = []string{"CAD", "CDN", "USD"}

// ParseAmount converts a raw amount string like "$1,234.56 CAD", "(45.00)" or
// "1234,56" into a decimal. Parenthesized amounts and trailing minus signs
// denote negative values.
//
// Separator ambiguity is resolved by a deterministic rule, not by guessing
// from the detected bank: a comma is a thousands separator when followed by
// exactly three digits before a decimal point or end-of-string, otherwise it
// is the decimal separator.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", models.ErrUnparseableAmount)
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = currencyReplacer.Replace(s)
	for _, code := range currencyCodes {
		if n := len(s) - len(code); n > 0 && strings.EqualFold(s[n:], code) {
			s = s[:n]
			break
		}
	}

	// Trailing minus ("45.00-") appears in some ledger-style exports.
	if strings.HasSuffix(s, "-") {
		neg = true
		s = strings.TrimSuffix(s, "-")
	}
	if strings.HasPrefix(s, "-") {
		neg = !neg
		s = strings.TrimPrefix(s, "-")
	}
	s = strings.TrimPrefix(s, "+")

	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: %q has no digits", models.ErrUnparseableAmount, raw)
	}

	s, err := resolveSeparators(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", models.ErrUnparseableAmount, raw)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", models.ErrUnparseableAmount, raw)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// resolveSeparators rewrites s so that '.' is the only decimal separator and
// no grouping separators remain.
func resolveSeparators(s string) (string, error) {
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ",") < strings.LastIndex(s, ".") {
			// 1,234.56: commas group thousands
			return strings.ReplaceAll(s, ",", ""), nil
		}
		// 1.234,56: dots group thousands, comma is the decimal point
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1), nil

	case hasComma:
		if commasAreGrouping(s) {
			return strings.ReplaceAll(s, ",", ""), nil
		}
		if strings.Count(s, ",") == 1 {
			// 1234,56: decimal comma
			return strings.Replace(s, ",", ".", 1), nil
		}
		return "", fmt.Errorf("inconsistent comma placement in %q", s)

	default:
		return s, nil
	}
}

// commasAreGrouping reports whether every comma in s is followed by exactly
// three digits before the next comma or end-of-string.
func commasAreGrouping(s string) bool {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
