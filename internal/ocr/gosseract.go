package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine runs OCR through a local Tesseract installation via
// gosseract. Each Recognize call uses its own client: gosseract clients are
// not safe for concurrent use, and the passes run in parallel.
type TesseractEngine struct{}

// NewTesseractEngine returns an Engine backed by Tesseract.
func NewTesseractEngine() *TesseractEngine { return &TesseractEngine{} }

func (e *TesseractEngine) segMode(m SegMode) gosseract.PageSegMode {
	switch m {
	case SegSingleBlock:
		return gosseract.PSM_SINGLE_BLOCK
	case SegSingleLine:
		return gosseract.PSM_SINGLE_LINE
	case SegSparseText:
		return gosseract.PSM_SPARSE_TEXT
	default:
		return gosseract.PSM_AUTO
	}
}

// Recognize runs one OCR pass. The image is written to a temporary PNG since
// Tesseract consumes files; the file is removed before returning.
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image, cfg PassConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "certex-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("ocr temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := png.Encode(tmp, img); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("ocr encode image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("ocr close temp file: %w", err)
	}

	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	langs := cfg.Languages
	if len(langs) == 0 {
		langs = []string{"eng"}
	}
	if err := client.SetLanguage(langs...); err != nil {
		return "", fmt.Errorf("ocr set language %q: %w", strings.Join(langs, "+"), err)
	}
	if err := client.SetPageSegMode(e.segMode(cfg.Mode)); err != nil {
		return "", fmt.Errorf("ocr set segmentation mode %s: %w", cfg.Mode, err)
	}
	if err := client.SetVariable("preserve_interword_spaces", "1"); err != nil {
		return "", fmt.Errorf("ocr set variable: %w", err)
	}
	if err := client.SetImage(tmp.Name()); err != nil {
		return "", fmt.Errorf("ocr set image: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr pass %s: %w", cfg.Name, err)
	}
	return text, nil
}
