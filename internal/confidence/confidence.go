// Package confidence computes the 0-100 extraction confidence score.
//
// The score is a deterministic weighted sum over which fields were populated
// and validated, not a statistical probability. Operators can read the rubric
// below and reconstruct why a given extraction scored the way it did.
package confidence

import "github.com/langcert/certex/internal/extract"

// Field weights. They sum to 100 when every field is populated.
const (
	WeightType        = 20
	WeightName        = 25
	WeightNumber      = 15
	WeightExamDate    = 10
	WeightBirthDate   = 10
	WeightIssuer      = 10
	WeightScores      = 10 // full weight at FullScoreSkills validated skills
	FullScoreSkills   = 4
	perSkill          = 2
	// EscalationThreshold is the score below which the orchestrator retries
	// on the enhanced path.
	EscalationThreshold = 40
)

// Score computes the confidence for a set of extracted fields. It depends
// only on which fields are populated; every populated field has already been
// validated by the extractor.
func Score(f *extract.Fields) int {
	if f == nil {
		return 0
	}
	s := 0
	if f.CertificateType != extract.TypeUnknown {
		s += WeightType
	}
	if f.FullName != "" {
		s += WeightName
	}
	if f.CertificateNumber != "" {
		s += WeightNumber
	}
	if f.ExamDate != "" {
		s += WeightExamDate
	}
	if f.DateOfBirth != "" {
		s += WeightBirthDate
	}
	if f.IssuingOrganization != "" {
		s += WeightIssuer
	}
	if n := f.PopulatedScoreCount(); n >= FullScoreSkills {
		s += WeightScores
	} else {
		s += n * perSkill
	}
	if s > 100 {
		s = 100
	}
	return s
}

// Rescore recomputes and stores the confidence on f, returning it.
func Rescore(f *extract.Fields) int {
	f.Confidence = Score(f)
	return f.Confidence
}
