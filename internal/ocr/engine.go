// Package ocr wraps the external OCR engine behind a small boundary interface
// and runs the multi-pass recognition strategy over it.
package ocr

import (
	"context"
	"errors"
	"image"
)

// SegMode selects the page-segmentation strategy for one OCR pass.
type SegMode int

const (
	SegAuto SegMode = iota
	SegSingleBlock
	SegSingleLine
	SegSparseText
)

func (m SegMode) String() string {
	switch m {
	case SegSingleBlock:
		return "single-block"
	case SegSingleLine:
		return "single-line"
	case SegSparseText:
		return "sparse-text"
	default:
		return "auto"
	}
}

// PassConfig describes one OCR invocation profile.
type PassConfig struct {
	Name      string
	Mode      SegMode
	Languages []string // tesseract language codes, e.g. "eng", "vie"
}

// DefaultProfiles returns the standard set of segmentation profiles the
// executor runs per image variant.
func DefaultProfiles(langs []string) []PassConfig {
	if len(langs) == 0 {
		langs = []string{"eng"}
	}
	return []PassConfig{
		{Name: "auto", Mode: SegAuto, Languages: langs},
		{Name: "single-block", Mode: SegSingleBlock, Languages: langs},
		{Name: "single-line", Mode: SegSingleLine, Languages: langs},
		{Name: "sparse-text", Mode: SegSparseText, Languages: langs},
	}
}

// Candidate is the raw text produced by one OCR pass. Transient; consumed by
// the field extractor and never persisted individually.
type Candidate struct {
	PassConfig string `json:"pass_config"`
	RawText    string `json:"raw_text"`
}

// Engine is the boundary to the underlying OCR implementation. Implementations
// must be safe for concurrent Recognize calls.
type Engine interface {
	Recognize(ctx context.Context, img image.Image, cfg PassConfig) (string, error)
}

// ErrAllPassesFailed is returned when every configured OCR pass errored.
var ErrAllPassesFailed = errors.New("ocr: all recognition passes failed")
