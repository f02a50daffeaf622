package normalize

import (
	"regexp"
	"strings"

	"github.com/siherrmann/linker/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Dr. / Mr. / Mrs. / Ms. / Miss / Prof. at the start, followed by whitespace or nothing
	honorificPattern = regexp.MustCompile(`(?i)^\s*(?:dr|mrs|mr|ms|miss|prof)\.?(?:\s+|$)`)
	// "Jobet" or “Jobet” anywhere in the field
	quotedAliasPattern = regexp.MustCompile(`["“”]([^"“”]*)["“”]`)
	// Catherine (Cathy)
	parenAliasPattern = regexp.MustCompile(`^([^(]*)\(([^)]*)\)`)
	// "- B.Com" and everything after it
	credentialPattern = regexp.MustCompile(`(?i)\s*-\s*b\.?com\b.*$`)
	// B.Sc., M.Sc., Ph.D., B.Com with or without periods
	degreePattern = regexp.MustCompile(`(?i)\b(?:b\.?sc|m\.?sc|ph\.?d|b\.?com)\b\.?`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// Name normalizes the raw first and last name fields of a row.
// The first name runs through StripHonorific, ExtractAlias, StripCredential
// and StripDegrees in that order, the last name through LastName.
// Both are title cased afterwards and the full name is only set
// when both parts are non-empty.
func Name(rawFirst, rawLast string) model.Identity {
	first := StripHonorific(rawFirst)
	main, alias := ExtractAlias(first)
	main = StripCredential(main)
	main = StripDegrees(main)

	identity := model.Identity{
		FirstName: TitleCase(main),
		LastName:  TitleCase(LastName(rawLast)),
		Alias:     TitleCase(alias),
	}
	if identity.FirstName != "" && identity.LastName != "" {
		identity.FullName = identity.FirstName + " " + identity.LastName
	}

	return identity
}

// StripHonorific removes a leading honorific, case-insensitive.
// A field holding only an honorific becomes empty.
func StripHonorific(s string) string {
	return strings.TrimSpace(honorificPattern.ReplaceAllString(s, ""))
}

// ExtractAlias splits s into the main name and an alias.
// A quoted part is checked first and removed from the main name.
// Without quotes a parenthesized part is the alias and the text before
// the parenthesis the main name. Otherwise s is the main name.
func ExtractAlias(s string) (string, string) {
	if loc := quotedAliasPattern.FindStringSubmatchIndex(s); loc != nil {
		alias := strings.TrimSpace(s[loc[2]:loc[3]])
		main := collapseSpaces(s[:loc[0]] + " " + s[loc[1]:])
		return main, alias
	}

	if match := parenAliasPattern.FindStringSubmatch(s); match != nil {
		return collapseSpaces(match[1]), strings.TrimSpace(match[2])
	}

	return collapseSpaces(s), ""
}

// StripCredential cuts a trailing "- B.Com" marker and everything after it
func StripCredential(s string) string {
	return strings.TrimSpace(credentialPattern.ReplaceAllString(s, ""))
}

// StripDegrees removes academic degree tokens anywhere in s
func StripDegrees(s string) string {
	s = degreePattern.ReplaceAllString(s, " ")
	return strings.Trim(collapseSpaces(s), " ,")
}

// LastName truncates s at the first comma and then at " PMP".
// Inner whitespace is kept so "De Lima" stays "De Lima".
func LastName(s string) string {
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, " PMP"); i >= 0 {
		s = s[:i]
	}
	return collapseSpaces(s)
}

// TitleCase upper cases the first letter of every word and lower cases the rest
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	return cases.Title(language.Und).String(s)
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}
