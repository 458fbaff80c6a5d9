package normalize

import "strings"

// maxDescriptionLen caps stored descriptions, matching the column width of
// the persistence schema.
const maxDescriptionLen = 200

// Description cleans a raw description string for storage: whitespace
// collapsed, trimmed, length-capped.
func Description(raw string) string {
	s := spacesRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	if len(s) > maxDescriptionLen {
		s = strings.TrimSpace(s[:maxDescriptionLen])
	}
	return s
}

// CanonicalDescription folds a description for duplicate comparison:
// whitespace collapsed and case-insensitive. Two transactions whose canonical
// descriptions are equal (with the same account, date and amount) are
// considered duplicates.
func CanonicalDescription(raw string) string {
	return strings.ToLower(Description(raw))
}
