// Package fusion merges independently produced extraction results into one.
package fusion

import (
	"github.com/langcert/certex/internal/confidence"
	"github.com/langcert/certex/internal/extract"
)

// Merge combines an AI-derived result with an OCR-derived result
// field-by-field, preferring the AI value when present and non-empty. Scores
// merge as a key union with AI values winning per key. Either input may be
// nil; the other is returned rescored.
//
// Confidence on the merged result is recomputed from the merged
// field-population state, not taken as the max of the inputs: a high OCR
// confidence must not survive on fields the AI disagreed with or left empty.
func Merge(ai, ocr *extract.Fields) *extract.Fields {
	switch {
	case ai == nil && ocr == nil:
		f := extract.NewFields()
		confidence.Rescore(f)
		return f
	case ai == nil:
		out := ocr.Clone()
		confidence.Rescore(out)
		return out
	case ocr == nil:
		out := ai.Clone()
		out.Method = extract.MethodAIAPI
		confidence.Rescore(out)
		return out
	}

	out := ocr.Clone()
	out.Method = extract.MethodHybrid

	if ai.CertificateType != extract.TypeUnknown {
		out.CertificateType = ai.CertificateType
	}
	out.FullName = prefer(ai.FullName, ocr.FullName)
	out.DateOfBirth = prefer(ai.DateOfBirth, ocr.DateOfBirth)
	out.ExamDate = prefer(ai.ExamDate, ocr.ExamDate)
	out.IssueDate = prefer(ai.IssueDate, ocr.IssueDate)
	out.CertificateNumber = prefer(ai.CertificateNumber, ocr.CertificateNumber)
	out.IssuingOrganization = prefer(ai.IssuingOrganization, ocr.IssuingOrganization)

	for k, v := range ai.Scores {
		out.Scores[k] = v
	}

	confidence.Rescore(out)
	return out
}

func prefer(ai, ocr string) string {
	if ai != "" {
		return ai
	}
	return ocr
}
