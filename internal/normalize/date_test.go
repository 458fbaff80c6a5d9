package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/maplebudget/statement-ingest/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		conv     DateConvention
		expected time.Time
		wantErr  error
	}{
		{name: "ISO", input: "2025-08-01", expected: date(2025, time.August, 1)},
		{name: "ISO slashes", input: "2025/01/15", expected: date(2025, time.January, 15)},
		{name: "compact", input: "20250115", expected: date(2025, time.January, 15)},
		{name: "day first convention", input: "03/04/2025", conv: DayFirst, expected: date(2025, time.April, 3)},
		{name: "month first convention", input: "03/04/2025", conv: MonthFirst, expected: date(2025, time.March, 4)},
		{name: "unambiguous day over 12", input: "15/01/2025", expected: date(2025, time.January, 15)},
		{name: "unambiguous month position", input: "01/15/2025", expected: date(2025, time.January, 15)},
		{name: "equal components", input: "04/04/2025", expected: date(2025, time.April, 4)},
		{name: "two digit year", input: "15/01/25", expected: date(2025, time.January, 15)},
		{name: "dashes day first", input: "15-01-2025", expected: date(2025, time.January, 15)},
		{name: "month name", input: "Jan 15 2025", expected: date(2025, time.January, 15)},
		{name: "month name comma", input: "January 15, 2025", expected: date(2025, time.January, 15)},
		{name: "day before month", input: "15 Jan 2025", expected: date(2025, time.January, 15)},
		{name: "uppercase month", input: "JAN 15 2025", expected: date(2025, time.January, 15)},
		{name: "dash month name", input: "15-Jan-2025", expected: date(2025, time.January, 15)},
		{name: "ambiguous without convention", input: "03/04/2025", conv: ConventionUnknown, wantErr: models.ErrAmbiguousDate},
		{name: "invalid day", input: "2025-02-30", wantErr: models.ErrUnparseableDate},
		{name: "garbage", input: "not a date", wantErr: models.ErrUnparseableDate},
		{name: "empty", input: "", wantErr: models.ErrUnparseableDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, tt.conv, 0)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got err %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestParseDateYearHint(t *testing.T) {
	got, err := ParseDate("Jan 15", ConventionUnknown, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(date(2024, time.January, 15)) {
		t.Errorf("got %s, want 2024-01-15", got)
	}
}

// The same input with the same convention must always produce the same
// result; ambiguity is flagged, never guessed.
func TestParseDateDeterminism(t *testing.T) {
	first, err1 := ParseDate("05/06/2025", DayFirst, 0)
	for i := 0; i < 10; i++ {
		got, err := ParseDate("05/06/2025", DayFirst, 0)
		if (err == nil) != (err1 == nil) || !got.Equal(first) {
			t.Fatalf("non-deterministic parse: %s vs %s", got, first)
		}
	}
}
