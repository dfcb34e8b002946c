package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// dateRole labels what a date-shaped substring refers to.
type dateRole int

const (
	roleExam dateRole = iota
	roleBirth
	roleIssue
)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[0-3]?\d/[01]?\d/(?:19|20)\d{2}\b`),
	regexp.MustCompile(`(?i)\b[0-3]?\d[-\s](?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)[A-Z]*[-\s](?:19|20)\d{2}\b`),
	regexp.MustCompile(`\b(?:19|20)\d{2}-[01]?\d-[0-3]?\d\b`),
}

var (
	birthKeywords = []string{"date of birth", "birth", "dob", "ngày sinh", "sinh ngày"}
	issueKeywords = []string{"date of issue", "issue", "issued", "ngày cấp", "cấp ngày"}
)

// roleWindow is the number of runes inspected around a date match when
// assigning its role.
const roleWindow = 50

// extractDates scans text for date-shaped substrings and assigns each one a
// role from the keywords found in a fixed window around the match. The first
// date found for a role wins; dates with no role keyword nearby default to the
// exam date. The assignment is heuristic: a certificate carrying many dates or
// lacking a role label near a date can be misread.
func extractDates(text string, f *Fields) {
	lower := strings.ToLower(text)
	for _, pat := range datePatterns {
		for _, loc := range pat.FindAllStringIndex(text, -1) {
			date := text[loc[0]:loc[1]]
			window := contextWindow(lower, loc[0], loc[1])
			switch classifyDate(window) {
			case roleBirth:
				if f.DateOfBirth == "" {
					f.DateOfBirth = date
				}
			case roleIssue:
				if f.IssueDate == "" {
					f.IssueDate = date
				}
			default:
				if f.ExamDate == "" {
					f.ExamDate = date
				}
			}
		}
	}
}

// contextWindow expands [start,end) by roleWindow runes on each side. Counting
// runes keeps the window stable for Vietnamese labels, whose diacritics would
// shrink a byte-counted window.
func contextWindow(lower string, start, end int) string {
	lo := start
	for i := 0; i < roleWindow && lo > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(lower[:lo])
		lo -= size
	}
	hi := end
	for i := 0; i < roleWindow && hi < len(lower); i++ {
		_, size := utf8.DecodeRuneInString(lower[hi:])
		hi += size
	}
	return lower[lo:hi]
}

func classifyDate(window string) dateRole {
	for _, kw := range birthKeywords {
		if strings.Contains(window, kw) {
			return roleBirth
		}
	}
	for _, kw := range issueKeywords {
		if strings.Contains(window, kw) {
			return roleIssue
		}
	}
	return roleExam
}
