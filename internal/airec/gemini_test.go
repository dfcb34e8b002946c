package airec

import (
	"context"
	"errors"
	"testing"

	"github.com/langcert/certex/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiToFieldsValidatesEverything(t *testing.T) {
	r := NewGeminiRecognizer("key", "gemini-1.5-flash")
	f := r.toFields(geminiResult{
		CertificateType:     "ielts",
		FullName:            "NGUYEN VAN MINH",
		DateOfBirth:         "12/05/1998",
		CertificateNumber:   "23VN012345NGUA001",
		IssuingOrganization: "British Council",
		Scores: map[string]float64{
			"listening": 7.5,
			"reading":   7.3, // off the half-band grid, must be dropped
			"overall":   7.0,
		},
	})

	assert.Equal(t, extract.TypeIELTS, f.CertificateType)
	assert.Equal(t, "NGUYEN VAN MINH", f.FullName)
	assert.Equal(t, "12/05/1998", f.DateOfBirth)
	assert.Equal(t, "23VN012345NGUA001", f.CertificateNumber)
	assert.Equal(t, extract.MethodAIAPI, f.Method)

	assert.Equal(t, 7.5, f.Scores["listening"])
	assert.Equal(t, 7.0, f.Scores["overall"])
	_, ok := f.Scores["reading"]
	assert.False(t, ok)

	// Confidence is recomputed from the validated fields.
	assert.Positive(t, f.Confidence)
}

func TestGeminiToFieldsDropsInvalidValues(t *testing.T) {
	r := NewGeminiRecognizer("key", "gemini-1.5-flash")
	f := r.toFields(geminiResult{
		CertificateType:   "DRIVING-LICENSE",
		FullName:          "x",
		CertificateNumber: "!!",
		Scores:            map[string]float64{"listening": 7.5},
	})

	assert.Equal(t, extract.TypeUnknown, f.CertificateType)
	assert.Empty(t, f.FullName)
	assert.Empty(t, f.CertificateNumber)
	// No descriptor for an unknown type, so no score range to validate against.
	assert.Empty(t, f.Scores)
	assert.Equal(t, 0, f.Confidence)
}

func TestGeminiToFieldsDropsMalformedDates(t *testing.T) {
	r := NewGeminiRecognizer("key", "gemini-1.5-flash")
	f := r.toFields(geminiResult{
		CertificateType: "IELTS",
		DateOfBirth:     "born sometime in 1998",
		ExamDate:        "12/05/98", // two-digit year, not a printed date shape
		IssueDate:       "10/09/2023",
	})

	assert.Empty(t, f.DateOfBirth)
	assert.Empty(t, f.ExamDate)
	assert.Equal(t, "10/09/2023", f.IssueDate)
}

func TestGeminiRecognizeRequiresKey(t *testing.T) {
	r := NewGeminiRecognizer("  ", "gemini-1.5-flash")
	_, err := r.Recognize(context.Background(), []byte{1}, "image/png")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no lang", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"padded", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, stripCodeFences(c.in))
		})
	}
}
