package normalize

import (
	"regexp"
	"strings"
)

// merchantBrands canonicalizes merchants whose raw descriptions vary too much
// for the generic rules. Checked in order; first matching prefix wins, so the
// more specific entries come first.
var merchantBrands = []struct {
	prefix    string
	canonical string
}{
	{"COSTCO GASOLINE", "COSTCO GAS"},
	{"COSTCO FUEL", "COSTCO GAS"},
	{"COSTCO GAS", "COSTCO GAS"},
	{"COSTCO", "COSTCO"},
	{"IMPARK", "IMPARK"},
	{"PRESTO AUTO", "PRESTO AUTO"},
}

var (
	phoneRe      = regexp.MustCompile(`\b\d{3}[-.]\d{3}[-.]\d{4}\b`)
	refSuffixRe  = regexp.MustCompile(`\s+REF:?\s*\S+\s*$`)
	orderRe      = regexp.MustCompile(`\s+ORDER\s+\S+\s*$`)
	trailNumRe   = regexp.MustCompile(`\s+\d{5,}\s*$`)
	streetAddrRe = regexp.MustCompile(`\s+\d+\s+\w+\s+(ST|AVE|RD|BLVD|DR|CRES|WAY)\b.*$`)
	provinceRe   = regexp.MustCompile(`\s+([A-Z]+\s+)?(ON|QC|BC|AB|MB|SK|NS|NB|NL|PE|YT|NT|NU)\s*$`)
)

// Merchant derives a cleaned merchant name from a transaction description:
// store numbers, reference numbers, phone numbers and location tails are
// stripped so "TIM HORTONS #5678" and "TIM HORTONS #0912" both resolve to
// "TIM HORTONS". Returns "" when nothing usable remains.
func Merchant(description string) string {
	s := strings.ToUpper(Description(description))
	if s == "" {
		return ""
	}

	for _, b := range merchantBrands {
		if strings.HasPrefix(s, b.prefix) {
			return b.canonical
		}
	}

	// Store numbers glue location text on ("WALMART SUPERCENTER#1007KITCHENER");
	// everything from '#' on is noise.
	if i := strings.Index(s, "#"); i >= 0 {
		s = s[:i]
	}
	// Card processors append trip/order identifiers after '*'.
	if i := strings.Index(s, "*"); i >= 0 {
		s = s[:i]
	}

	s = phoneRe.ReplaceAllString(s, "")
	s = refSuffixRe.ReplaceAllString(s, "")
	s = orderRe.ReplaceAllString(s, "")
	s = streetAddrRe.ReplaceAllString(s, "")
	s = provinceRe.ReplaceAllString(s, "")
	s = trailNumRe.ReplaceAllString(s, "")

	s = strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
	if len(s) < 2 {
		return ""
	}
	return s
}
