package extract

import (
	"regexp"
	"strings"
)

// genericNumberRe is the fallback when no labeled pattern hits: an
// alphanumeric token with both letters and digits.
var genericNumberRe = regexp.MustCompile(`\b[A-Z0-9/-]{6,20}\b`)

// extractNumber finds the certificate number, trying the type's labeled
// patterns first and falling back to a generic mixed alphanumeric token.
func extractNumber(text string, desc *Descriptor, f *Fields) {
	if desc != nil {
		for _, pat := range desc.NumberPats {
			if m := pat.FindStringSubmatch(text); m != nil {
				cand := strings.TrimSpace(m[1])
				if ValidCertificateNumber(cand) {
					f.CertificateNumber = cand
					return
				}
			}
		}
	}
	for _, cand := range genericNumberRe.FindAllString(text, -1) {
		if !hasLetterAndDigit(cand) {
			continue
		}
		if ValidCertificateNumber(cand) {
			f.CertificateNumber = cand
			return
		}
	}
}

func hasLetterAndDigit(s string) bool {
	letters, digits := false, false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			letters = true
		case r >= '0' && r <= '9':
			digits = true
		}
	}
	return letters && digits
}
