// Package pipeline wires the extraction stages into the top-level
// orchestrator: quality check, conditional enhancement, multi-pass OCR, field
// extraction, confidence scoring, optional AI fusion and bounded escalation.
package pipeline

import (
	"errors"
	"time"

	"github.com/langcert/certex/internal/airec"
	"github.com/langcert/certex/internal/confidence"
	"github.com/langcert/certex/internal/enhance"
	"github.com/langcert/certex/internal/extract"
	"github.com/langcert/certex/internal/ocr"
)

// Config holds the engine configuration. It is passed in explicitly at
// construction time; the engine reads no ambient global state.
type Config struct {
	Languages           []string
	Profiles            []ocr.PassConfig
	MultiPass           ocr.MultiPassConfig
	Enhancement         enhance.Config
	Escalation          enhance.Config
	EscalationThreshold int
	AITimeout           time.Duration
}

// DefaultConfig returns a default engine config with component defaults.
func DefaultConfig() Config {
	langs := []string{"eng", "vie"}
	return Config{
		Languages:           langs,
		Profiles:            ocr.DefaultProfiles(langs),
		MultiPass:           ocr.DefaultMultiPassConfig(),
		Enhancement:         enhance.DefaultConfig(),
		Escalation:          enhance.AggressiveConfig(),
		EscalationThreshold: confidence.EscalationThreshold,
		AITimeout:           20 * time.Second,
	}
}

// Builder constructs an Engine with fluent configuration.
type Builder struct {
	cfg        Config
	engine     ocr.Engine
	recognizer airec.Recognizer
	reporter   Reporter
}

// NewBuilder creates a new engine builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithLanguages sets the OCR language set and rebuilds the default profiles.
func (b *Builder) WithLanguages(langs ...string) *Builder {
	if len(langs) > 0 {
		b.cfg.Languages = langs
		b.cfg.Profiles = ocr.DefaultProfiles(langs)
	}
	return b
}

// WithProfiles overrides the OCR pass profiles directly.
func (b *Builder) WithProfiles(profiles []ocr.PassConfig) *Builder {
	if len(profiles) > 0 {
		b.cfg.Profiles = profiles
	}
	return b
}

// WithMaxWorkers bounds concurrent OCR passes.
func (b *Builder) WithMaxWorkers(n int) *Builder {
	if n > 0 {
		b.cfg.MultiPass.MaxWorkers = n
	}
	return b
}

// WithEnhancement sets the standard-path enhancement settings.
func (b *Builder) WithEnhancement(cfg enhance.Config) *Builder {
	b.cfg.Enhancement = cfg
	return b
}

// WithEscalationThreshold sets the confidence below which the engine retries
// on the enhanced path.
func (b *Builder) WithEscalationThreshold(t int) *Builder {
	if t > 0 && t <= 100 {
		b.cfg.EscalationThreshold = t
	}
	return b
}

// WithOCREngine injects the OCR engine boundary; tests substitute a mock here.
func (b *Builder) WithOCREngine(e ocr.Engine) *Builder {
	b.engine = e
	return b
}

// WithAIRecognizer enables the optional cloud recognition path.
func (b *Builder) WithAIRecognizer(r airec.Recognizer) *Builder {
	b.recognizer = r
	return b
}

// WithAITimeout bounds the AI call. It must stay shorter than the OCR path:
// an unbounded hang on the optional path must never starve the fallback.
func (b *Builder) WithAITimeout(d time.Duration) *Builder {
	if d > 0 {
		b.cfg.AITimeout = d
	}
	return b
}

// WithReporter sets the progress reporter.
func (b *Builder) WithReporter(r Reporter) *Builder {
	b.reporter = r
	return b
}

// Config returns a copy of the current config.
func (b *Builder) Config() Config { return b.cfg }

// Validate checks that the configuration is usable.
func (b *Builder) Validate() error {
	if len(b.cfg.Profiles) == 0 {
		return errors.New("no ocr pass profiles configured")
	}
	if b.cfg.EscalationThreshold <= 0 || b.cfg.EscalationThreshold > 100 {
		return errors.New("escalation threshold out of range")
	}
	return nil
}

// Engine runs the extraction state machine. It holds no per-request state and
// is safe for concurrent use.
type Engine struct {
	cfg        Config
	multipass  *ocr.MultiPass
	extractor  *extract.Extractor
	recognizer airec.Recognizer
	reporter   Reporter
}

// Build initializes the extraction engine.
func (b *Builder) Build() (*Engine, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	engine := b.engine
	if engine == nil {
		engine = ocr.NewTesseractEngine()
	}
	reporter := b.reporter
	if reporter == nil {
		reporter = NoOpReporter{}
	}
	return &Engine{
		cfg:        b.cfg,
		multipass:  ocr.NewMultiPass(engine, b.cfg.MultiPass),
		extractor:  extract.New(),
		recognizer: b.recognizer,
		reporter:   reporter,
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }
