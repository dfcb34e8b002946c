package airec

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/langcert/certex/internal/confidence"
	"github.com/langcert/certex/internal/extract"
)

// GeminiRecognizer asks a Gemini model for a strict-JSON structured read of
// the certificate image.
type GeminiRecognizer struct {
	apiKey string
	model  string
}

// NewGeminiRecognizer creates a Gemini-backed recognizer. The model name is
// configurable (e.g. "gemini-1.5-flash").
func NewGeminiRecognizer(apiKey, model string) *GeminiRecognizer {
	return &GeminiRecognizer{
		apiKey: strings.TrimSpace(apiKey),
		model:  strings.TrimSpace(model),
	}
}

const geminiSystemPrompt = `You read photographed or scanned language-proficiency
certificates (IELTS, TOEFL, TOEIC, VSTEP, HSK, JLPT). Return ONLY a JSON object
with these keys, omitting any you cannot read with certainty:
  certificate_type: one of IELTS, TOEFL, TOEIC, VSTEP, HSK, JLPT
  full_name: the holder's name exactly as printed
  date_of_birth, exam_date, issue_date: as printed, e.g. 15/03/1995
  certificate_number: as printed
  issuing_organization: as printed
  scores: object mapping listening/reading/writing/speaking/overall/total to numbers
Never guess. Any text outside the JSON object is an error.`

// geminiResult is the wire shape Gemini is asked to produce.
type geminiResult struct {
	CertificateType     string             `json:"certificate_type"`
	FullName            string             `json:"full_name"`
	DateOfBirth         string             `json:"date_of_birth"`
	ExamDate            string             `json:"exam_date"`
	IssueDate           string             `json:"issue_date"`
	CertificateNumber   string             `json:"certificate_number"`
	IssuingOrganization string             `json:"issuing_organization"`
	Scores              map[string]float64 `json:"scores"`
}

// Recognize sends the image and parses the strict-JSON reply. Every field the
// model returns passes through the same validators as OCR-derived fields
// before it is stored; the model's output is untrusted input.
func (r *GeminiRecognizer) Recognize(ctx context.Context, image []byte, mimeType string) (*extract.Fields, error) {
	if r.apiKey == "" {
		return nil, unavailable(fmt.Errorf("gemini: api key is empty"))
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(r.apiKey))
	if err != nil {
		return nil, unavailable(err)
	}
	defer func() { _ = client.Close() }()

	model := client.GenerativeModel(r.model)
	temp := float32(0)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(geminiSystemPrompt)},
	}

	resp, err := model.GenerateContent(ctx,
		genai.Text("Extract the certificate fields. JSON only."),
		&genai.Blob{MIMEType: mimeType, Data: image},
	)
	if err != nil {
		slog.Warn("gemini recognize failed", "error", err)
		return nil, unavailable(err)
	}

	text := firstText(resp)
	if text == "" {
		return nil, unavailable(fmt.Errorf("gemini: empty response"))
	}

	var wire geminiResult
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &wire); err != nil {
		return nil, unavailable(fmt.Errorf("gemini: bad JSON: %w", err))
	}
	return r.toFields(wire), nil
}

// toFields converts the wire result into validated fields. Values failing
// their validators are dropped, same as an OCR match would be.
func (r *GeminiRecognizer) toFields(wire geminiResult) *extract.Fields {
	f := extract.NewFields()
	f.Method = extract.MethodAIAPI

	switch t := extract.CertificateType(strings.ToUpper(strings.TrimSpace(wire.CertificateType))); t {
	case extract.TypeIELTS, extract.TypeTOEFL, extract.TypeTOEIC, extract.TypeVSTEP, extract.TypeHSK, extract.TypeJLPT:
		f.CertificateType = t
	}
	if name := strings.TrimSpace(wire.FullName); extract.ValidName(name) {
		f.FullName = name
	}
	if d := strings.TrimSpace(wire.DateOfBirth); extract.ValidDate(d) {
		f.DateOfBirth = d
	}
	if d := strings.TrimSpace(wire.ExamDate); extract.ValidDate(d) {
		f.ExamDate = d
	}
	if d := strings.TrimSpace(wire.IssueDate); extract.ValidDate(d) {
		f.IssueDate = d
	}
	if num := strings.TrimSpace(wire.CertificateNumber); extract.ValidCertificateNumber(num) {
		f.CertificateNumber = num
	}
	f.IssuingOrganization = strings.TrimSpace(wire.IssuingOrganization)

	if desc := extract.DescriptorFor(f.CertificateType); desc != nil {
		for key, v := range wire.Scores {
			rng := desc.SkillRange
			if key == "overall" || key == "total" {
				rng = desc.TotalRange
			}
			if rng.Contains(v) {
				f.Scores[key] = v
			}
		}
	}

	confidence.Rescore(f)
	return f
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok && strings.TrimSpace(string(t)) != "" {
				return strings.TrimSpace(string(t))
			}
		}
	}
	return ""
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
