package extract

import (
	"regexp"
	"strings"
)

var (
	// Two-part family/first layout common on IELTS report forms.
	familyNameRe = regexp.MustCompile(`(?i)family\s+name\s*[:.]?\s*([\p{L} ]{2,40})`)
	firstNameRe  = regexp.MustCompile(`(?i)first\s+name(?:\(s\))?\s*[:.]?\s*([\p{L} ]{2,40})`)

	// Explicit label, e.g. "Candidate Name: NGUYEN VAN A".
	labeledNameRe = regexp.MustCompile(`(?i)(?:candidate\s+|full\s+|họ\s+và\s+)?(?:name|tên)\s*[:：]\s*([\p{L} ]{2,60})`)

	// Loose fallback: a run of 2-4 capitalized words on its own.
	looseNameRe = regexp.MustCompile(`\b(\p{Lu}[\p{Lu}\p{Ll}]+(?:\s+\p{Lu}[\p{Lu}\p{Ll}]*){1,3})\b`)
)

// nameAnchors mark lines worth scanning with the loose pattern. Certificate
// layouts put the holder's name near these labels even when the label itself
// was garbled by OCR.
var nameAnchors = []string{"date", "candidate", "form", "certificate"}

// extractName tries the ordered name strategies and stores the first candidate
// that passes ValidName.
func extractName(text string, f *Fields) {
	if name := twoPartName(text); name != "" {
		f.FullName = name
		return
	}
	if m := labeledNameRe.FindStringSubmatch(text); m != nil {
		if name := strings.TrimSpace(m[1]); ValidName(name) {
			f.FullName = name
			return
		}
	}
	if name := looseName(text); name != "" {
		f.FullName = name
	}
}

func twoPartName(text string) string {
	fam := familyNameRe.FindStringSubmatch(text)
	first := firstNameRe.FindStringSubmatch(text)
	if fam == nil || first == nil {
		return ""
	}
	name := strings.TrimSpace(first[1]) + " " + strings.TrimSpace(fam[1])
	name = normalizeSpaces(name)
	if !ValidName(name) {
		return ""
	}
	return name
}

func looseName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		anchored := false
		for _, a := range nameAnchors {
			if strings.Contains(lower, a) {
				anchored = true
				break
			}
		}
		if !anchored {
			continue
		}
		for _, m := range looseNameRe.FindAllString(line, -1) {
			cand := normalizeSpaces(m)
			if isUpperWords(cand) && ValidName(cand) {
				return cand
			}
		}
	}
	return ""
}

// isUpperWords keeps the loose pattern from swallowing ordinary prose: only
// fully uppercased candidates are trusted without an explicit label.
func isUpperWords(s string) bool {
	return s == strings.ToUpper(s)
}
