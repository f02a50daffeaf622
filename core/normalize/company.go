package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Each delimiter cuts the result of the previous one.
var companyDelimiters = []string{",", " - ", " (", " | ", " / "}

// Only the first matching suffix in this order is removed.
var corporateSuffixes = []string{
	"Co.", "Co", "Inc.", "Inc", "SpA", "LLC", "LLP", "LP", "Corp.", "Corp",
	"INC", "Ltd.", "Ltd", "PLC", "AG", "BV", "GmbH",
}

var trailingNonLetters = regexp.MustCompile(`[^\p{L}]+$`)

// CompanyName reduces a free text company field to the organization name.
// "Signify (Philips Lighting)" becomes "Signify", "Acme Corp." becomes "Acme".
// Degenerate input like punctuation only gives an empty string.
func CompanyName(raw string) string {
	s := strings.TrimSpace(raw)

	for _, delimiter := range companyDelimiters {
		if i := strings.Index(s, delimiter); i >= 0 {
			s = s[:i]
		}
	}

	s = stripCorporateSuffix(strings.TrimSpace(s))
	s = trailingNonLetters.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}

// stripCorporateSuffix removes the first suffix of corporateSuffixes that ends s
// as a separate word, compared case-insensitively.
func stripCorporateSuffix(s string) string {
	for _, suffix := range corporateSuffixes {
		n := len(s) - len(suffix)
		if n <= 0 || !strings.EqualFold(s[n:], suffix) {
			continue
		}
		r, _ := utf8.DecodeLastRuneInString(s[:n])
		if !unicode.IsSpace(r) {
			continue
		}
		return strings.TrimSpace(s[:n])
	}
	return s
}
