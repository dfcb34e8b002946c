package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Reporter receives progress events during one extraction run. The fraction
// is in [0,1]. Reporters are injected explicitly; the engine never logs
// progress through ambient singletons.
type Reporter interface {
	OnStage(status string, fraction float64)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(status string, fraction float64)

func (f ReporterFunc) OnStage(status string, fraction float64) { f(status, fraction) }

// NoOpReporter implements Reporter but does nothing. Useful as a default when
// no progress reporting is needed.
type NoOpReporter struct{}

func (NoOpReporter) OnStage(string, float64) {}

// ConsoleReporter writes a single status line with a percentage to a writer,
// typically stderr.
type ConsoleReporter struct {
	writer io.Writer
	prefix string
	mutex  sync.Mutex
}

// NewConsoleReporter creates a console progress reporter.
func NewConsoleReporter(w io.Writer, prefix string) *ConsoleReporter {
	return &ConsoleReporter{writer: w, prefix: prefix}
}

func (c *ConsoleReporter) OnStage(status string, fraction float64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	_, _ = fmt.Fprintf(c.writer, "\r%s%-60s %5.1f%%", c.prefix, status, fraction*100)
	if fraction >= 1 {
		_, _ = fmt.Fprintln(c.writer)
	}
}

// LogReporter logs progress updates through slog.
type LogReporter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogReporter creates a log-based progress reporter.
func NewLogReporter(logger *slog.Logger, level slog.Level) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger, level: level}
}

func (l *LogReporter) OnStage(status string, fraction float64) {
	l.logger.Log(context.Background(), l.level, "extraction progress",
		"status", status,
		"fraction", fmt.Sprintf("%.2f", fraction))
}

// MultiReporter fans progress out to several reporters.
type MultiReporter struct {
	reporters []Reporter
}

// NewMultiReporter creates a reporter that forwards to all the given reporters.
func NewMultiReporter(reporters ...Reporter) *MultiReporter {
	return &MultiReporter{reporters: reporters}
}

func (m *MultiReporter) OnStage(status string, fraction float64) {
	for _, r := range m.reporters {
		r.OnStage(status, fraction)
	}
}

// ThrottledReporter wraps another reporter and drops updates arriving faster
// than the minimum interval. Terminal updates (fraction >= 1) always pass.
type ThrottledReporter struct {
	wrapped     Reporter
	minInterval time.Duration
	lastUpdate  time.Time
	mutex       sync.Mutex
}

// NewThrottledReporter creates a throttled wrapper around another reporter.
func NewThrottledReporter(wrapped Reporter, minInterval time.Duration) *ThrottledReporter {
	return &ThrottledReporter{wrapped: wrapped, minInterval: minInterval}
}

func (t *ThrottledReporter) OnStage(status string, fraction float64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	now := time.Now()
	if fraction < 1 && !t.lastUpdate.IsZero() && now.Sub(t.lastUpdate) < t.minInterval {
		return
	}
	t.lastUpdate = now
	t.wrapped.OnStage(status, fraction)
}
