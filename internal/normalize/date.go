package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/maplebudget/statement-ingest/internal/models"
)

// DateConvention is an institution's documented ordering for all-numeric
// dates like 03/04/2025. ConventionUnknown forces the deterministic
// disambiguation rule in ParseDate.
type DateConvention int

const (
	ConventionUnknown DateConvention = iota
	DayFirst                         // 03/04/2025 = April 3rd
	MonthFirst                       // 03/04/2025 = March 4th
	YearFirst                        // 2025/04/03
)

func (c DateConvention) String() string {
	switch c {
	case DayFirst:
		return "day-first"
	case MonthFirst:
		return "month-first"
	case YearFirst:
		return "year-first"
	default:
		return "unknown"
	}
}

// isoLayouts are tried first; they are unambiguous.
var isoLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"20060102",
}

// monthNameLayouts cover the month-name variants seen across statements.
// Layouts without a year get the hint year appended before parsing.
var monthNameLayouts = []string{
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"02-Jan-2006",
}

var (
	numericDateRe = regexp.MustCompile(`^(\d{1,4})[/-](\d{1,2})[/-](\d{1,4})$`)
	monthTokenRe  = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\b`)
	spacesRe      = regexp.MustCompile(`\s+`)
)

// ParseDate converts a raw date string into a UTC calendar date (midnight, no
// time component). conv is the detected institution's documented convention
// for all-numeric dates; pass ConventionUnknown on the generic path.
// yearHint supplies the year for formats that omit it ("Jan 15"); pass 0 to
// use the current year.
//
// Ambiguous NN/NN/YYYY input with no known convention is accepted only when
// one component exceeds 12 (or both components are equal); anything else is
// flagged with ErrAmbiguousDate rather than guessed.
func ParseDate(raw string, conv DateConvention, yearHint int) (time.Time, error) {
	s := spacesRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", models.ErrUnparseableDate)
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnight(t), nil
		}
	}

	if t, ok := parseMonthName(s, yearHint); ok {
		return t, nil
	}

	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		return parseNumeric(m[1], m[2], m[3], conv, raw)
	}

	return time.Time{}, fmt.Errorf("%w: %q", models.ErrUnparseableDate, raw)
}

// parseMonthName handles "Jan 15", "JAN 15 2025", "15 Jan 2025" and friends.
// Month tokens are case-normalized first because time.Parse is strict.
func parseMonthName(s string, yearHint int) (time.Time, bool) {
	if !monthTokenRe.MatchString(s) {
		return time.Time{}, false
	}
	s = monthTokenRe.ReplaceAllStringFunc(s, func(tok string) string {
		return strings.ToUpper(tok[:1]) + strings.ToLower(tok[1:])
	})

	for _, layout := range monthNameLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnight(t), true
		}
	}

	// No year on the line ("Jan 15", "15 Jan") is common on CIBC and Amex
	// statements; the statement period supplies the year upstream.
	year := yearHint
	if year == 0 {
		year = time.Now().Year()
	}
	withYear := s + " " + strconv.Itoa(year)
	for _, layout := range []string{"Jan 2 2006", "2 Jan 2006"} {
		if t, err := time.Parse(layout, withYear); err == nil {
			return midnight(t), true
		}
	}
	return time.Time{}, false
}

func parseNumeric(a, b, c string, conv DateConvention, raw string) (time.Time, error) {
	first, _ := strconv.Atoi(a)
	second, _ := strconv.Atoi(b)
	third, _ := strconv.Atoi(c)

	// 2025/04/03: a four-digit leading year is unambiguous.
	if len(a) == 4 {
		return makeDate(first, second, third, raw)
	}

	year := third
	if year < 100 {
		year += 2000
	}

	day, month := first, second
	switch {
	case first > 12 && second <= 12:
		day, month = first, second
	case second > 12 && first <= 12:
		day, month = second, first
	case first == second:
		// Same value either way round; nothing to disambiguate.
	case conv == DayFirst:
		day, month = first, second
	case conv == MonthFirst:
		day, month = second, first
	case conv == YearFirst:
		// Documented year-first institutions still emit day/month in that
		// order after the year; with only two-digit leads we cannot tell.
		return time.Time{}, fmt.Errorf("%w: %q", models.ErrAmbiguousDate, raw)
	default:
		return time.Time{}, fmt.Errorf("%w: %q", models.ErrAmbiguousDate, raw)
	}

	return makeDate(year, month, day, raw)
}

func makeDate(year, month, day int, raw string) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%w: %q", models.ErrUnparseableDate, raw)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject that.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("%w: %q", models.ErrUnparseableDate, raw)
	}
	return t, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
