package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Extractor turns raw OCR text into typed certificate fields. It holds no
// per-request state and is safe for concurrent use.
type Extractor struct{}

// New returns a field extractor.
func New() *Extractor { return &Extractor{} }

var issuedByRe = regexp.MustCompile(`(?i)issued\s+by\s*[:.]?\s*([\p{L}\p{N} .,&-]{3,60})`)

// Extract parses raw OCR text into structured fields. The confidence field is
// left at zero; scoring happens after extraction so it always reflects the
// final field-population state.
//
// The text is NFC-normalized first: Tesseract can emit Vietnamese diacritics
// as combining marks, which the letter-class validators reject.
func (e *Extractor) Extract(rawText string) *Fields {
	rawText = norm.NFC.String(rawText)
	f := NewFields()
	f.RawText = rawText
	if strings.TrimSpace(rawText) == "" {
		return f
	}

	f.CertificateType = DetectType(rawText)
	desc := DescriptorFor(f.CertificateType)

	extractName(rawText, f)
	extractDates(rawText, f)
	extractNumber(rawText, desc, f)
	extractIssuer(rawText, desc, f)
	extractScores(rawText, desc, f)

	slog.Debug("field extraction complete",
		"type", f.CertificateType,
		"name", f.FullName != "",
		"number", f.CertificateNumber != "",
		"scores", len(f.Scores))
	return f
}

// DetectType scores each known certificate family by weighted keyword hits
// and returns the best match. Ties keep the earlier type in declaration order
// (IELTS > TOEFL > TOEIC > VSTEP > HSK > JLPT). No hits at all → UNKNOWN.
func DetectType(text string) CertificateType {
	lower := strings.ToLower(text)
	best := TypeUnknown
	bestScore := 0
	for _, t := range typeOrder {
		desc := descriptors[t]
		score := 0
		for _, kw := range desc.Keywords {
			if strings.Contains(lower, kw.Phrase) {
				score += kw.Weight
			}
		}
		if score > bestScore {
			best = t
			bestScore = score
		}
	}
	return best
}

// extractIssuer sets the issuing organization from the per-type issuer table
// when the text actually names that issuer, else from an explicit
// "Issued by:" label.
func extractIssuer(text string, desc *Descriptor, f *Fields) {
	if desc != nil {
		lower := strings.ToLower(text)
		for _, issuer := range desc.Issuers {
			if strings.Contains(lower, strings.ToLower(issuer)) {
				f.IssuingOrganization = issuer
				return
			}
		}
	}
	if m := issuedByRe.FindStringSubmatch(text); m != nil {
		org := strings.TrimSpace(m[1])
		if len(org) >= 3 {
			f.IssuingOrganization = org
		}
	}
}
