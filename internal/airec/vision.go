package airec

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"github.com/langcert/certex/internal/confidence"
	"github.com/langcert/certex/internal/extract"
)

// VisionRecognizer reads certificate text through Google Cloud Vision
// document text detection and runs the field extractor over the (typically
// much cleaner) recognized text.
type VisionRecognizer struct {
	client    *vision.ImageAnnotatorClient
	extractor *extract.Extractor
}

// NewVisionRecognizer creates a recognizer with credentials from the
// environment: inline GOOGLE_CREDENTIALS JSON, a GOOGLE_APPLICATION_CREDENTIALS
// file path, or application default credentials.
func NewVisionRecognizer(ctx context.Context) (*VisionRecognizer, error) {
	var client *vision.ImageAnnotatorClient
	var err error

	switch {
	case os.Getenv("GOOGLE_CREDENTIALS") != "":
		client, err = vision.NewImageAnnotatorClient(ctx,
			option.WithCredentialsJSON([]byte(os.Getenv("GOOGLE_CREDENTIALS"))))
	case os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "":
		client, err = vision.NewImageAnnotatorClient(ctx,
			option.WithCredentialsFile(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")))
	default:
		client, err = vision.NewImageAnnotatorClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return &VisionRecognizer{client: client, extractor: extract.New()}, nil
}

// Recognize sends the image for document text detection and extracts typed
// fields from the returned full text.
func (r *VisionRecognizer) Recognize(ctx context.Context, image []byte, mimeType string) (*extract.Fields, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image: &visionpb.Image{Content: image},
			Features: []*visionpb.Feature{{
				Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION,
			}},
		}},
	}

	resp, err := r.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		slog.Warn("vision recognize failed", "error", err)
		return nil, unavailable(err)
	}
	if len(resp.Responses) == 0 {
		return nil, unavailable(fmt.Errorf("empty vision response"))
	}
	annotated := resp.Responses[0]
	if annotated.Error != nil {
		return nil, unavailable(fmt.Errorf("vision: %s", annotated.Error.Message))
	}
	if annotated.FullTextAnnotation == nil || strings.TrimSpace(annotated.FullTextAnnotation.Text) == "" {
		return nil, unavailable(fmt.Errorf("vision: no text detected"))
	}

	fields := r.extractor.Extract(annotated.FullTextAnnotation.Text)
	fields.Method = extract.MethodAIAPI
	confidence.Rescore(fields)
	return fields, nil
}

// Close releases the underlying Vision client.
func (r *VisionRecognizer) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
