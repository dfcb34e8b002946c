package confidence

import (
	"testing"

	"github.com/langcert/certex/internal/extract"
	"github.com/stretchr/testify/assert"
)

func fullFields() *extract.Fields {
	f := extract.NewFields()
	f.CertificateType = extract.TypeIELTS
	f.FullName = "NGUYEN VAN MINH"
	f.CertificateNumber = "23VN012345NGUA001"
	f.ExamDate = "10/09/2023"
	f.DateOfBirth = "12/05/1998"
	f.IssuingOrganization = "British Council"
	f.Scores = map[string]float64{
		"listening": 7.5,
		"reading":   7.0,
		"writing":   6.5,
		"speaking":  7.0,
		"overall":   7.0,
	}
	return f
}

func TestScoreFullResult(t *testing.T) {
	assert.Equal(t, 100, Score(fullFields()))
}

func TestScoreEmptyResult(t *testing.T) {
	assert.Equal(t, 0, Score(extract.NewFields()))
	assert.Equal(t, 0, Score(nil))
}

func TestScorePerFieldWeights(t *testing.T) {
	cases := []struct {
		name  string
		unset func(*extract.Fields)
		want  int
	}{
		{"without name", func(f *extract.Fields) { f.FullName = "" }, 100 - WeightName},
		{"without type", func(f *extract.Fields) { f.CertificateType = extract.TypeUnknown }, 100 - WeightType},
		{"without number", func(f *extract.Fields) { f.CertificateNumber = "" }, 100 - WeightNumber},
		{"without exam date", func(f *extract.Fields) { f.ExamDate = "" }, 100 - WeightExamDate},
		{"without birth date", func(f *extract.Fields) { f.DateOfBirth = "" }, 100 - WeightBirthDate},
		{"without issuer", func(f *extract.Fields) { f.IssuingOrganization = "" }, 100 - WeightIssuer},
		{"without scores", func(f *extract.Fields) { f.Scores = map[string]float64{} }, 100 - WeightScores},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := fullFields()
			c.unset(f)
			assert.Equal(t, c.want, Score(f))
		})
	}
}

func TestScorePartialSkills(t *testing.T) {
	// Below four validated skills the score weight accrues per skill; the
	// overall entry never counts as a skill.
	f := fullFields()
	f.Scores = map[string]float64{"listening": 7.5, "reading": 7.0, "overall": 7.0}
	assert.Equal(t, 94, Score(f))

	f.Scores = map[string]float64{"overall": 7.0}
	assert.Equal(t, 90, Score(f))
}

func TestScoreMonotonicInPopulation(t *testing.T) {
	// Populating one more field never lowers the score.
	f := extract.NewFields()
	prev := Score(f)

	f.CertificateType = extract.TypeTOEIC
	s := Score(f)
	assert.GreaterOrEqual(t, s, prev)
	prev = s

	f.FullName = "TRAN THI MAI"
	s = Score(f)
	assert.GreaterOrEqual(t, s, prev)
	prev = s

	for _, skill := range []string{"listening", "reading", "writing", "speaking"} {
		f.Scores[skill] = 400
		s = Score(f)
		assert.GreaterOrEqual(t, s, prev)
		prev = s
	}
}

func TestRescoreStoresConfidence(t *testing.T) {
	f := fullFields()
	f.Confidence = 7 // stale
	got := Rescore(f)
	assert.Equal(t, 100, got)
	assert.Equal(t, 100, f.Confidence)
}

func TestEscalationThresholdValue(t *testing.T) {
	// The orchestrator escalates strictly below this value.
	assert.Equal(t, 40, EscalationThreshold)
}
