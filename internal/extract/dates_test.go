package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func extractDatesFrom(text string) *Fields {
	f := NewFields()
	extractDates(text, f)
	return f
}

func TestExtractDatesRoles(t *testing.T) {
	f := extractDatesFrom("Date of Birth: 12/05/1998\nSome padding line to separate the windows\nTest Date: 10/09/2023")
	assert.Equal(t, "12/05/1998", f.DateOfBirth)
	assert.Equal(t, "10/09/2023", f.ExamDate)
	assert.Empty(t, f.IssueDate)
}

func TestExtractDatesVietnameseLabels(t *testing.T) {
	f := extractDatesFrom("Ngày sinh: 20/01/2000\nSome padding line to separate the windows\nNgày cấp: 15/09/2023")
	assert.Equal(t, "20/01/2000", f.DateOfBirth)
	assert.Equal(t, "15/09/2023", f.IssueDate)
}

func TestExtractDatesUnlabeledDefaultsToExam(t *testing.T) {
	f := extractDatesFrom("examination held on 22/10/2023 at the center")
	assert.Equal(t, "22/10/2023", f.ExamDate)
	assert.Empty(t, f.DateOfBirth)
	assert.Empty(t, f.IssueDate)
}

func TestExtractDatesFirstMatchPerRoleWins(t *testing.T) {
	f := extractDatesFrom("taken on 01/06/2023 and then retaken later on 02/07/2023")
	assert.Equal(t, "01/06/2023", f.ExamDate)
}

func TestExtractDatesFormats(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"slash", "on 05/06/2021 exactly", "05/06/2021"},
		{"month abbreviation", "on 05-JUN-2021 exactly", "05-JUN-2021"},
		{"iso", "on 2021-06-05 exactly", "2021-06-05"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := extractDatesFrom(c.text)
			assert.Equal(t, c.want, f.ExamDate)
		})
	}
}

func TestExtractDatesWindowCountsRunes(t *testing.T) {
	// The label sits 41 runes before the date but over 100 bytes back, so a
	// byte-counted window would miss it and misread the date as the exam date.
	f := extractDatesFrom("ngày sinh " + strings.Repeat("ề", 30) + " 12/05/1998")
	assert.Equal(t, "12/05/1998", f.DateOfBirth)
	assert.Empty(t, f.ExamDate)
}

func TestExtractDatesIgnoresNonDates(t *testing.T) {
	f := extractDatesFrom("certificate number 99/99/9999 and score 12345")
	assert.Empty(t, f.ExamDate)
	assert.Empty(t, f.DateOfBirth)
}
