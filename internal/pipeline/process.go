package pipeline

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/langcert/certex/internal/airec"
	"github.com/langcert/certex/internal/confidence"
	"github.com/langcert/certex/internal/enhance"
	"github.com/langcert/certex/internal/extract"
	"github.com/langcert/certex/internal/fusion"
	"github.com/langcert/certex/internal/ocr"
	"github.com/langcert/certex/internal/quality"
	"github.com/langcert/certex/internal/utils"
)

// State names one node of the extraction state machine. The run trace is an
// enumerable path through these, so retry/fallback behavior is testable
// rather than implicit exception-driven branching.
type State string

const (
	StateInit             State = "init"
	StateQualityCheck     State = "quality-check"
	StateEnhance          State = "enhance"
	StateOCRAttempt       State = "ocr-attempt"
	StateFieldExtraction  State = "field-extraction"
	StateConfidenceCheck  State = "confidence-check"
	StateAccept           State = "accept"
	StateEscalateEnhanced State = "escalate-enhanced"
	StateEscalateAI       State = "escalate-ai"
	StateFused            State = "fused"
	StateDone             State = "done"
)

// ErrInputDecode marks a fatal input error: undecodable image, unsupported
// MIME type or zero-byte payload.
var ErrInputDecode = errors.New("pipeline: cannot decode input image")

// Outcome is the full result of one extraction run, including the state trace
// and enhancement record for audit and tests.
type Outcome struct {
	Fields      *extract.Fields    `json:"fields"`
	Quality     quality.Assessment `json:"quality"`
	Enhancement enhance.Record     `json:"enhancement,omitempty"`
	States      []State            `json:"states"`
}

type run struct {
	engine   *Engine
	reporter Reporter
	outcome  *Outcome
}

func (r *run) enter(s State, status string, fraction float64) {
	r.outcome.States = append(r.outcome.States, s)
	r.reporter.OnStage(status, fraction)
}

// Extract runs the full pipeline and returns the structured fields. This is
// the single operation the subsystem exposes to its caller.
func (e *Engine) Extract(ctx context.Context, data []byte, mimeType string) (*extract.Fields, error) {
	out, err := e.Run(ctx, data, mimeType)
	if err != nil {
		return nil, err
	}
	return out.Fields, nil
}

// Run is Extract with the state trace and enhancement record exposed.
//
// The terminal state always carries a populated field set, possibly with all
// fields empty and confidence zero; the pipeline returns "low-confidence
// result", never "no result". The only errors are a fatal input error and
// context cancellation, and a cancelled run never yields a partial result.
func (e *Engine) Run(ctx context.Context, data []byte, mimeType string) (*Outcome, error) {
	r := &run{engine: e, reporter: e.reporter, outcome: &Outcome{}}
	r.enter(StateInit, "starting extraction", 0)

	img, meta, err := utils.DecodeImage(data, mimeType)
	if err != nil {
		return nil, errors.Join(ErrInputDecode, err)
	}

	r.enter(StateQualityCheck, "assessing image quality", 0.05)
	r.outcome.Quality = quality.Analyze(meta.Width, meta.Height)
	slog.Debug("quality assessed",
		"tier", r.outcome.Quality.Tier,
		"pixel_density", r.outcome.Quality.PixelDensity)

	// The AI call runs concurrently with the OCR path under its own, shorter
	// timeout. Its failure never blocks reaching Done through OCR alone.
	aiCh := e.startAI(ctx, data, mimeType)

	fields, err := r.ocrPath(ctx, img)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Total OCR failure: escalate to an AI-only result when available,
		// else a zero-confidence result so the caller has a uniform shape.
		fields = nil
	}

	var aiFields *extract.Fields
	if aiCh != nil {
		if fields == nil || fields.Confidence < e.cfg.EscalationThreshold {
			r.enter(StateEscalateAI, "escalating to ai recognizer", 0.9)
		} else {
			r.reporter.OnStage("waiting for ai recognizer", 0.9)
		}
		select {
		case aiFields = <-aiCh:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	final := r.finalize(fields, aiFields)
	r.enter(StateDone, "extraction complete", 1)
	r.outcome.Fields = final
	return r.outcome, nil
}

// startAI launches the recognizer in the background, delivering nil on any
// unavailability. Returns nil when no recognizer is configured.
func (e *Engine) startAI(ctx context.Context, data []byte, mimeType string) <-chan *extract.Fields {
	if e.recognizer == nil {
		return nil
	}
	ch := make(chan *extract.Fields, 1)
	go func() {
		aiCtx, cancel := context.WithTimeout(ctx, e.cfg.AITimeout)
		defer cancel()
		fields, err := e.recognizer.Recognize(aiCtx, data, mimeType)
		if err != nil {
			if errors.Is(err, airec.ErrUnavailable) {
				slog.Info("ai recognizer unavailable", "error", err)
			} else {
				slog.Warn("ai recognizer error", "error", err)
			}
			ch <- nil
			return
		}
		ch <- fields
	}()
	return ch
}

// ocrPath runs enhancement (when recommended), multi-pass OCR and field
// extraction, escalating through the aggressive enhancement path at most once
// when confidence lands below the threshold.
func (r *run) ocrPath(ctx context.Context, img image.Image) (*extract.Fields, error) {
	e := r.engine

	variants := []ocr.Variant{{Name: "original", Image: img}}
	method := extract.MethodOCRStandard
	if r.outcome.Quality.RecommendEnhancement {
		r.enter(StateEnhance, "enhancing image", 0.1)
		enhanced, record := enhance.Enhance(img, e.cfg.Enhancement)
		if len(record) > 0 {
			r.outcome.Enhancement = record
			variants = append([]ocr.Variant{{Name: "enhanced", Image: enhanced}}, variants...)
			method = extract.MethodOCREnhanced
		}
	}

	fields, err := r.attempt(ctx, variants, method, 0.15, 0.6)
	if err != nil {
		return nil, err
	}

	r.enter(StateConfidenceCheck, "checking confidence", 0.65)
	if fields.Confidence >= e.cfg.EscalationThreshold {
		r.enter(StateAccept, "result accepted", 0.7)
		return fields, nil
	}

	// One escalation only: re-enhance aggressively and retry, keeping the
	// better of the two results. This also covers high-resolution images the
	// quality heuristic mis-predicted, which skipped enhancement entirely.
	r.enter(StateEscalateEnhanced, "escalating to enhanced path", 0.7)
	enhanced, record := enhance.Enhance(img, e.cfg.Escalation)
	escVariants := []ocr.Variant{
		{Name: "enhanced-aggressive", Image: enhanced},
		{Name: "original", Image: img},
	}
	retry, err := r.attempt(ctx, escVariants, extract.MethodOCREnhanced, 0.7, 0.85)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return fields, nil
	}
	if retry.Confidence > fields.Confidence {
		if len(record) > 0 {
			r.outcome.Enhancement = record
		}
		return retry, nil
	}
	return fields, nil
}

// attempt runs one multi-pass OCR round plus field extraction and scoring.
func (r *run) attempt(ctx context.Context, variants []ocr.Variant, method extract.Method, fromFrac, toFrac float64) (*extract.Fields, error) {
	e := r.engine

	r.enter(StateOCRAttempt, "running ocr passes", fromFrac)
	span := toFrac - fromFrac
	candidates, err := e.multipass.Run(ctx, variants, e.cfg.Profiles, func(status string, f float64) {
		r.reporter.OnStage(status, fromFrac+span*f)
	})
	if err != nil {
		return nil, err
	}

	r.enter(StateFieldExtraction, "extracting fields", toFrac)
	best := ocr.BestCandidate(candidates)
	fields := e.extractor.Extract(best.RawText)
	fields.Method = method
	confidence.Rescore(fields)

	// Second opinion: a sweep over everything the passes produced can rescue
	// fields scattered across segmentation modes.
	if fields.Confidence < e.cfg.EscalationThreshold && len(candidates) > 1 {
		sweep := e.extractor.Extract(ocr.JoinCandidates(candidates))
		sweep.Method = method
		if confidence.Rescore(sweep) > fields.Confidence {
			fields = sweep
		}
	}
	return fields, nil
}

// finalize merges the OCR and AI results into the terminal field set.
func (r *run) finalize(ocrFields, aiFields *extract.Fields) *extract.Fields {
	switch {
	case ocrFields == nil && aiFields == nil:
		f := extract.NewFields()
		f.Method = extract.MethodOCRStandard
		confidence.Rescore(f)
		return f
	case ocrFields == nil:
		out := aiFields.Clone()
		out.Method = extract.MethodAIAPI
		confidence.Rescore(out)
		return out
	case aiFields == nil:
		return ocrFields
	}
	r.enter(StateFused, "fusing ai and ocr results", 0.95)
	return fusion.Merge(aiFields, ocrFields)
}

// ExtractTimeout is a convenience wrapper bounding a whole run.
func (e *Engine) ExtractTimeout(parent context.Context, data []byte, mimeType string, d time.Duration) (*extract.Fields, error) {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return e.Extract(ctx, data, mimeType)
}
