package parser

import (
	"regexp"
	"strings"
)

// Date patterns found at the start of statement transaction lines.
var (
	// 15/01/2025, 2025/01/15, 15-01-2025
	dateNumericRe = regexp.MustCompile(`^\d{1,4}[/-]\d{1,2}[/-]\d{1,4}\b`)
	// Jan 15, JAN 15 2025, 15 Jan 2025
	dateMonthNameRe = regexp.MustCompile(`(?i)^(?:\d{1,2}\s+)?(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2}(?:,?\s+\d{2,4})?\b`)
)

// moneyRe matches a monetary cell: optional currency symbol, grouped digits,
// two decimals.
var moneyRe = regexp.MustCompile(`[$£€]?\d{1,3}(?:,\d{3})*\.\d{2}`)

// moneyCellRe anchors moneyRe to a whole token.
var moneyCellRe = regexp.MustCompile(`^-?\(?[$£€]?\d{1,3}(?:,\d{3})*\.\d{2}\)?-?$`)

// startsWithDate reports whether a text line opens with a recognizable date.
func startsWithDate(line string) bool {
	line = strings.TrimSpace(line)
	return dateNumericRe.MatchString(line) || dateMonthNameRe.MatchString(line)
}

// leadingDate returns the date prefix of a line and the remainder after it.
func leadingDate(line string) (string, string) {
	line = strings.TrimSpace(line)
	if m := dateNumericRe.FindString(line); m != "" {
		return m, strings.TrimSpace(line[len(m):])
	}
	if m := dateMonthNameRe.FindString(line); m != "" {
		return m, strings.TrimSpace(line[len(m):])
	}
	return "", line
}

// trailingAmounts splits trailing monetary tokens off a token list, returning
// the non-monetary prefix and the monetary tail.
func trailingAmounts(tokens []string) (rest []string, amounts []string) {
	i := len(tokens)
	for i > 0 && moneyCellRe.MatchString(tokens[i-1]) {
		i--
	}
	return tokens[:i], tokens[i:]
}

// stripNegative removes a textual negative marker (leading/trailing minus or
// enclosing parentheses) and reports whether one was present. It does not
// parse the number.
func stripNegative(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		return strings.TrimSpace(s[1 : len(s)-1]), true
	}
	if strings.HasPrefix(s, "-") {
		return strings.TrimSpace(s[1:]), true
	}
	if strings.HasSuffix(s, "-") {
		return strings.TrimSpace(s[:len(s)-1]), true
	}
	return s, false
}

// summaryKeywords mark balance-summary and footer lines that must not be
// mistaken for transactions.
var summaryKeywords = []string{
	"opening balance", "closing balance", "balance forward",
	"balance brought forward", "total paid in", "total paid out",
	"total withdrawals", "total deposits", "statement period",
	"continued on", "page ",
}

func isSummaryLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range summaryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// debitKeywords classify a description as money-out when the source line has
// a single amount column and no explicit direction indicator.
var debitKeywords = []string{
	"purchase", "fee", "withdrawal", "card payment", "direct debit",
	"service charge", "atm ", "pos ", "bill payment", "standing order",
}

// creditKeywords classify a description as money-in.
var creditKeywords = []string{
	"deposit", "payroll", "salary", "refund", "rebate",
	"e-transfer received", "transfer received", "payment received",
	"interest paid", "bank credit",
}

// classifyDirection guesses debit/credit from description keywords. Returns
// -1 for money out, +1 for money in, 0 when no keyword matches.
func classifyDirection(description string) int {
	lower := strings.ToLower(description)
	for _, kw := range creditKeywords {
		if strings.Contains(lower, kw) {
			return 1
		}
	}
	for _, kw := range debitKeywords {
		if strings.Contains(lower, kw) {
			return -1
		}
	}
	return 0
}
