// Package airec calls an external cloud recognizer for a second, independent
// structured read of a certificate image.
//
// The AI path is strictly optional: every network failure, timeout or
// malformed response collapses into ErrUnavailable so the OCR fallback path
// is never blocked. Retry policy, if any, belongs to the orchestrator.
package airec

import (
	"context"
	"errors"

	"github.com/langcert/certex/internal/extract"
)

// ErrUnavailable signals that no AI contribution is available for this
// request. Callers treat it as absence of evidence, not as a failure.
var ErrUnavailable = errors.New("airec: recognizer unavailable")

// Recognizer is the boundary to a cloud recognition service. Implementations
// return a partial, validated field set with its own confidence, or
// ErrUnavailable.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, mimeType string) (*extract.Fields, error)
}

// unavailable wraps any backend error into ErrUnavailable, keeping the cause
// for logs.
func unavailable(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrUnavailable, err)
}
