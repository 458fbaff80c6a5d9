package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"25.99", "25.99", false},
		{"1,234.56", "1234.56", false},
		{"$1,234.56 CAD", "1234.56", false},
		{"£25.99", "25.99", false},
		{"€1.234,56", "1234.56", false},
		{"1234,56", "1234.56", false},
		{"1,234", "1234", false},
		{"1,23", "1.23", false},
		{"(45.00)", "-45", false},
		{"-25.99", "-25.99", false},
		{"45.00-", "-45", false},
		{"+2,000.00", "2000", false},
		{"1,234,567.89", "1234567.89", false},
		{"0.00", "0", false},
		{" 25.99 ", "25.99", false},
		{"$ 1 234.56", "1234.56", false},
		{"", "", true},
		{"—", "", true},
		{"abc", "", true},
		{"1,23,45", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want, _ := decimal.NewFromString(tt.expected)
			if !got.Equal(want) {
				t.Errorf("got %s, want %s", got, want)
			}
		})
	}
}

// Amounts must survive a format/parse round trip across the supported locale
// formats.
func TestParseAmountRoundTrip(t *testing.T) {
	values := []string{"4.50", "-4.50", "1234.56", "-1234.56", "2000", "0.01"}
	for _, v := range values {
		d, _ := decimal.NewFromString(v)
		got, err := ParseAmount(d.StringFixed(2))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", v, err)
		}
		if !got.Equal(d) {
			t.Errorf("round trip of %s: got %s", v, got)
		}
	}
}
