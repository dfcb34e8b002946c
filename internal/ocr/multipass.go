package ocr

import (
	"context"
	"image"
	"log/slog"
	"strings"
	"sync"
)

// ProgressFunc receives incremental status during a multi-pass run. The
// fraction is in [0,1]. OCR passes take tens of seconds, so this is the one
// place the pipeline streams progress mid-operation.
type ProgressFunc func(status string, fraction float64)

// Variant is one image rendition fed to OCR (original, enhanced, ...).
type Variant struct {
	Name  string
	Image image.Image
}

// MultiPassConfig controls the multi-pass executor.
type MultiPassConfig struct {
	MaxWorkers int // concurrent passes; passes are CPU- and memory-heavy
}

// DefaultMultiPassConfig returns the standard executor settings.
func DefaultMultiPassConfig() MultiPassConfig {
	return MultiPassConfig{MaxWorkers: 4}
}

// MultiPass fans the configured segmentation profiles out over the image
// variants and collects every raw-text candidate.
type MultiPass struct {
	engine Engine
	cfg    MultiPassConfig
}

// NewMultiPass creates a multi-pass executor over the given engine.
func NewMultiPass(engine Engine, cfg MultiPassConfig) *MultiPass {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = DefaultMultiPassConfig().MaxWorkers
	}
	return &MultiPass{engine: engine, cfg: cfg}
}

type passJob struct {
	index   int
	variant Variant
	profile PassConfig
}

type passResult struct {
	index     int
	candidate Candidate
	err       error
}

// Run executes one OCR pass per (variant, profile) pair, bounded by the
// worker limit. Empty texts are kept; a pass that errors is dropped and
// logged. Only when every pass fails does Run return ErrAllPassesFailed.
// Results come back in job order.
func (m *MultiPass) Run(ctx context.Context, variants []Variant, profiles []PassConfig, progress ProgressFunc) ([]Candidate, error) {
	if progress == nil {
		progress = func(string, float64) {}
	}

	jobs := make([]passJob, 0, len(variants)*len(profiles))
	for _, v := range variants {
		for _, p := range profiles {
			jobs = append(jobs, passJob{index: len(jobs), variant: v, profile: p})
		}
	}
	if len(jobs) == 0 {
		return nil, ErrAllPassesFailed
	}

	workers := m.cfg.MaxWorkers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	jobCh := make(chan passJob, len(jobs))
	resultCh := make(chan passResult, len(jobs))
	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				if err := ctx.Err(); err != nil {
					resultCh <- passResult{index: job.index, err: err}
					continue
				}
				name := job.variant.Name + "/" + job.profile.Name
				text, err := m.engine.Recognize(ctx, job.variant.Image, job.profile)
				resultCh <- passResult{
					index:     job.index,
					candidate: Candidate{PassConfig: name, RawText: text},
					err:       err,
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	ordered := make([]passResult, len(jobs))
	done := 0
	progress(statusFor(jobs[0]), 0)
	for res := range resultCh {
		ordered[res.index] = res
		done++
		progress("ocr pass "+jobs[res.index].variant.Name+"/"+jobs[res.index].profile.Name+" finished",
			float64(done)/float64(len(jobs)))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(jobs))
	failures := 0
	for _, res := range ordered {
		if res.err != nil {
			failures++
			slog.Warn("ocr pass failed", "pass", jobs[res.index].variant.Name+"/"+jobs[res.index].profile.Name, "error", res.err)
			continue
		}
		candidates = append(candidates, res.candidate)
	}
	if len(candidates) == 0 {
		return nil, ErrAllPassesFailed
	}
	return candidates, nil
}

func statusFor(j passJob) string {
	return "ocr pass " + j.variant.Name + "/" + j.profile.Name + " started"
}

// BestCandidate picks the highest-signal candidate: the one with the longest
// trimmed text. Ties keep the earlier pass.
func BestCandidate(candidates []Candidate) Candidate {
	best := Candidate{}
	bestLen := -1
	for _, c := range candidates {
		if l := len(strings.TrimSpace(c.RawText)); l > bestLen {
			best = c
			bestLen = l
		}
	}
	return best
}

// JoinCandidates concatenates all candidate texts for a second-opinion sweep
// over everything the passes produced.
func JoinCandidates(candidates []Candidate) string {
	out := ""
	for i, c := range candidates {
		if i > 0 {
			out += "\n"
		}
		out += c.RawText
	}
	return out
}
