package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
)

// ImageProcessingError represents errors that can occur during image handling.
type ImageProcessingError struct {
	Operation string
	Err       error
}

func (e *ImageProcessingError) Error() string {
	return fmt.Sprintf("image processing error in %s: %v", e.Operation, e.Err)
}

func (e *ImageProcessingError) Unwrap() error { return e.Err }

// SupportedMIMETypes lists the MIME types accepted for decoding.
var SupportedMIMETypes = []string{"image/jpeg", "image/png", "image/bmp"}

// IsSupportedMIME reports whether the declared MIME type is accepted.
func IsSupportedMIME(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(mime))
	for _, s := range SupportedMIMETypes {
		if mime == s {
			return true
		}
	}
	return false
}

// MIMEFromPath guesses the MIME type from the file extension.
// Returns "" for extensions outside the supported set.
func MIMEFromPath(path string) string {
	dot := strings.LastIndex(path, ".")
	if dot < 0 {
		return ""
	}
	switch strings.ToLower(path[dot:]) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".bmp":
		return "image/bmp"
	default:
		return ""
	}
}

// ImageMetadata captures lightweight pixel information about a decoded image.
type ImageMetadata struct {
	Format      string
	SizeBytes   int
	Width       int
	Height      int
	AspectRatio float64
}

// DecodeImage decodes raw image bytes, returning the image and metadata.
// A zero-byte input or undecodable payload is an input error for the caller.
func DecodeImage(data []byte, mimeType string) (image.Image, ImageMetadata, error) {
	if len(data) == 0 {
		return nil, ImageMetadata{}, &ImageProcessingError{Operation: "decode", Err: errors.New("empty input")}
	}
	if mimeType != "" && !IsSupportedMIME(mimeType) {
		return nil, ImageMetadata{}, &ImageProcessingError{
			Operation: "decode",
			Err:       fmt.Errorf("unsupported MIME type: %s", mimeType),
		}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ImageMetadata{}, &ImageProcessingError{Operation: "decode", Err: err}
	}

	b := img.Bounds()
	meta := ImageMetadata{
		Format:      format,
		SizeBytes:   len(data),
		Width:       b.Dx(),
		Height:      b.Dy(),
		AspectRatio: float64(b.Dx()) / float64(b.Dy()),
	}
	return img, meta, nil
}
