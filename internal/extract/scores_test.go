package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func extractScoresFor(t CertificateType, text string) map[string]float64 {
	f := NewFields()
	extractScores(text, DescriptorFor(t), f)
	return f.Scores
}

func TestExtractScoresDroppedDecimalPoint(t *testing.T) {
	// Photographed IELTS forms often lose the decimal point: "75" means 7.5.
	scores := extractScoresFor(TypeIELTS, "Listening 75 Reading 70")
	assert.Equal(t, 7.5, scores["listening"])
	assert.Equal(t, 7.0, scores["reading"])
}

func TestExtractScoresLargeScaleNotRescaled(t *testing.T) {
	// TOEIC's scale max is far above 10; a 450 must stay 450.
	scores := extractScoresFor(TypeTOEIC, "Listening 450 Reading 420 Total 870")
	assert.Equal(t, 450.0, scores["listening"])
	assert.Equal(t, 420.0, scores["reading"])
	assert.Equal(t, 870.0, scores["total"])
}

func TestExtractScoresOutOfRangeDropped(t *testing.T) {
	scores := extractScoresFor(TypeTOEIC, "Listening 999 Reading 420")
	_, ok := scores["listening"]
	assert.False(t, ok, "999 exceeds the 5-495 listening range")
	assert.Equal(t, 420.0, scores["reading"])
}

func TestExtractScoresOffStepGridDropped(t *testing.T) {
	// IELTS band scores move in half-band steps; 7.3 is OCR noise.
	scores := extractScoresFor(TypeIELTS, "Listening 7.3 Reading 7.5")
	_, ok := scores["listening"]
	assert.False(t, ok)
	assert.Equal(t, 7.5, scores["reading"])
}

func TestExtractScoresCommaDecimal(t *testing.T) {
	scores := extractScoresFor(TypeVSTEP, "Nghe 7,5")
	assert.Equal(t, 7.5, scores["listening"])
}

func TestExtractScoresSurvivesLineBreaks(t *testing.T) {
	scores := extractScoresFor(TypeIELTS, "Overall\nBand Score\n6.5")
	assert.Equal(t, 6.5, scores["overall"])
}

func TestExtractScoresNilDescriptor(t *testing.T) {
	f := NewFields()
	extractScores("Listening 7.5", nil, f)
	assert.Empty(t, f.Scores)
}

func TestRangeContains(t *testing.T) {
	band := Range{Min: 0, Max: 9, Step: 0.5}
	assert.True(t, band.Contains(6.5))
	assert.True(t, band.Contains(0))
	assert.True(t, band.Contains(9))
	assert.False(t, band.Contains(9.5))
	assert.False(t, band.Contains(-0.5))
	assert.False(t, band.Contains(6.3))

	free := Range{Min: 5, Max: 495}
	assert.True(t, free.Contains(442))
	assert.False(t, free.Contains(4))
}
