package pipeline

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf, "extract: ")

	r.OnStage("running ocr passes", 0.5)
	assert.Contains(t, buf.String(), "extract: ")
	assert.Contains(t, buf.String(), "running ocr passes")
	assert.Contains(t, buf.String(), "50.0%")
	assert.NotContains(t, buf.String(), "\n")

	r.OnStage("extraction complete", 1)
	assert.True(t, strings.HasSuffix(buf.String(), "\n"), "terminal update ends the line")
}

func TestMultiReporter(t *testing.T) {
	var a, b []float64
	m := NewMultiReporter(
		ReporterFunc(func(_ string, f float64) { a = append(a, f) }),
		ReporterFunc(func(_ string, f float64) { b = append(b, f) }),
	)
	m.OnStage("x", 0.3)
	m.OnStage("y", 0.6)
	assert.Equal(t, []float64{0.3, 0.6}, a)
	assert.Equal(t, []float64{0.3, 0.6}, b)
}

func TestThrottledReporterDropsRapidUpdates(t *testing.T) {
	var got []float64
	r := NewThrottledReporter(ReporterFunc(func(_ string, f float64) {
		got = append(got, f)
	}), time.Hour)

	r.OnStage("a", 0.1)
	r.OnStage("b", 0.2)
	r.OnStage("c", 0.3)
	assert.Equal(t, []float64{0.1}, got, "updates inside the interval are dropped")

	// Terminal updates always pass regardless of the interval.
	r.OnStage("done", 1)
	assert.Equal(t, []float64{0.1, 1}, got)
}

func TestNoOpReporter(t *testing.T) {
	// Must not panic and must accept any input.
	NoOpReporter{}.OnStage("anything", -1)
	NoOpReporter{}.OnStage("", 2)
}
