package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ImageSize represents common image dimensions.
type ImageSize struct {
	Width  int
	Height int
}

var (
	// LowResSize falls below the low-quality density and side thresholds.
	LowResSize = ImageSize{400, 300}
	// MediumResSize sits between the quality tier boundaries.
	MediumResSize = ImageSize{1000, 700}
	// HighResSize exceeds the high-quality density and side thresholds.
	HighResSize = ImageSize{2200, 1600}
)

// CertImageConfig holds configuration for rendering synthetic certificate images.
type CertImageConfig struct {
	Lines      []string
	Size       ImageSize
	Background color.Color
	Foreground color.Color
	FontFace   font.Face
}

// DefaultCertImageConfig returns a default configuration for certificate images.
func DefaultCertImageConfig(lines []string) CertImageConfig {
	return CertImageConfig{
		Lines:      lines,
		Size:       MediumResSize,
		Background: color.White,
		Foreground: color.Black,
		FontFace:   basicfont.Face7x13,
	}
}

// RenderCertificate draws the given text lines on a plain background, one
// line per row, left-aligned. The result is legible to Tesseract at
// medium resolution and intentionally noisy-free.
func RenderCertificate(config CertImageConfig) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, config.Size.Width, config.Size.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{config.Background}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{config.Foreground},
		Face: config.FontFace,
	}

	lineHeight := config.FontFace.Metrics().Height.Ceil() + 6
	startY := lineHeight * 2
	for i, line := range config.Lines {
		drawer.Dot = fixed.P(20, startY+i*lineHeight)
		drawer.DrawString(line)
	}
	return img
}

// CertificatePNG renders the lines and encodes the result as PNG bytes.
func CertificatePNG(t *testing.T, lines []string, size ImageSize) []byte {
	t.Helper()

	config := DefaultCertImageConfig(lines)
	config.Size = size
	img := RenderCertificate(config)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img), "Failed to encode certificate PNG")
	return buf.Bytes()
}

// BlankPNG returns an all-white PNG of the given size, useful for
// exercising the no-text and total-OCR-failure paths.
func BlankPNG(t *testing.T, size ImageSize) []byte {
	t.Helper()
	return CertificatePNG(t, nil, size)
}
