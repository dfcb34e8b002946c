package extract

import (
	"strings"
	"unicode"
)

// ValidName reports whether s looks like a person name as printed on a
// certificate: 2-5 words, letters/diacritics only, consistently capitalized.
// Words are normally 2-20 letters; a single-letter final word is allowed since
// Vietnamese given names such as "A" or "Y" do occur.
func ValidName(s string) bool {
	words := strings.Fields(strings.TrimSpace(s))
	if len(words) < 2 || len(words) > 5 {
		return false
	}
	long := 0
	for i, w := range words {
		runes := []rune(w)
		if len(runes) > 20 {
			return false
		}
		if len(runes) < 2 && i != len(words)-1 {
			return false
		}
		for _, r := range runes {
			if !unicode.IsLetter(r) {
				return false
			}
		}
		if !unicode.IsUpper(runes[0]) {
			return false
		}
		if len(runes) >= 2 {
			long++
		}
	}
	return long >= 2
}

// ValidCertificateNumber reports whether s is plausible as a certificate
// number: 6-20 characters, uppercase letters, digits, '/' or '-', containing
// at least one digit. Pure digit runs shorter than 6 are rejected upstream by
// the length bound.
func ValidCertificateNumber(s string) bool {
	if len(s) < 6 || len(s) > 20 {
		return false
	}
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r >= 'A' && r <= 'Z':
		case r == '/' || r == '-':
		default:
			return false
		}
	}
	return digits > 0
}

// ValidDate reports whether s is, in its entirety, one of the date shapes the
// extractor recognizes (DD/MM/YYYY, DD-MON-YYYY, YYYY-MM-DD).
func ValidDate(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, pat := range datePatterns {
		if loc := pat.FindStringIndex(s); loc != nil && loc[0] == 0 && loc[1] == len(s) {
			return true
		}
	}
	return false
}

// normalizeSpaces collapses whitespace runs so label patterns survive ragged
// OCR line breaks.
func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
