// Package enhance implements the adaptive image enhancement pipeline that
// prepares photographed certificates for OCR.
package enhance

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
)

// Intensity selects how aggressively the pipeline transforms the image.
type Intensity int

const (
	IntensityStandard Intensity = iota
	IntensityAggressive
)

// Record is the ordered list of filter names applied to an image, attached to
// the final result for traceability. Append-only during enhancement.
type Record []string

// Config controls the enhancement pipeline.
type Config struct {
	Intensity      Intensity
	UpscaleMinSide int     // upscale when the short side is below this
	UpscaleFactor  int     // 2-3x; larger glyphs improve OCR segmentation
	Contrast       float64 // percentage passed to the linear contrast remap
	Brightness     float64 // brightness offset percentage
	ThresholdBias  int     // added to the luminance midpoint when binarizing
}

// DefaultConfig returns the standard enhancement settings.
func DefaultConfig() Config {
	return Config{
		Intensity:      IntensityStandard,
		UpscaleMinSide: 900,
		UpscaleFactor:  2,
		Contrast:       20,
		Brightness:     5,
		ThresholdBias:  0,
	}
}

// AggressiveConfig returns the settings used on the escalation path.
func AggressiveConfig() Config {
	return Config{
		Intensity:      IntensityAggressive,
		UpscaleMinSide: 1300,
		UpscaleFactor:  3,
		Contrast:       35,
		Brightness:     10,
		ThresholdBias:  10,
	}
}

// Enhance applies the filter chain in order: upscale, grayscale,
// contrast/brightness stretch, binarization, median denoise, sharpen.
// Order matters: sharpening before thresholding destroys its benefit, and
// denoising has to run before sharpening.
//
// Enhancement is best-effort: if any step cannot execute the original image is
// returned unmodified with an empty record.
func Enhance(img image.Image, cfg Config) (image.Image, Record) {
	if img == nil {
		return img, nil
	}
	var rec Record

	working := imaging.Clone(img)
	if working == nil {
		slog.Warn("enhancement aborted: pixel buffer unavailable")
		return img, nil
	}

	// 1. Upscale small sources.
	b := working.Bounds()
	minSide := b.Dx()
	if b.Dy() < minSide {
		minSide = b.Dy()
	}
	if minSide < cfg.UpscaleMinSide && cfg.UpscaleFactor > 1 {
		working = imaging.Resize(working, b.Dx()*cfg.UpscaleFactor, 0, imaging.CatmullRom)
		rec = append(rec, fmt.Sprintf("upscale-%dx", cfg.UpscaleFactor))
	}

	// 2. Luminance-weighted grayscale.
	working = imaging.Grayscale(working)
	rec = append(rec, "grayscale")

	// 3. Linear contrast/brightness stretch, then binarization around the
	// luminance midpoint.
	working = imaging.AdjustContrast(working, cfg.Contrast)
	rec = append(rec, fmt.Sprintf("contrast%+d", int(cfg.Contrast)))
	if cfg.Brightness != 0 {
		working = imaging.AdjustBrightness(working, cfg.Brightness)
		rec = append(rec, fmt.Sprintf("brightness%+d", int(cfg.Brightness)))
	}
	working = binarize(working, cfg.ThresholdBias)
	rec = append(rec, "adaptive-threshold")

	// 4. Median denoise removes speckle introduced by upscaling/compression.
	working = medianFilter(working)
	rec = append(rec, "median-3x3")

	// 5. Laplacian sharpening restores character-edge crispness.
	working = laplacianSharpen(working)
	rec = append(rec, "sharpen")

	slog.Debug("enhancement applied", "filters", []string(rec))
	return working, rec
}
