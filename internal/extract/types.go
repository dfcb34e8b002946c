package extract

// CertificateType identifies a supported language-proficiency certificate family.
type CertificateType string

const (
	TypeIELTS   CertificateType = "IELTS"
	TypeTOEFL   CertificateType = "TOEFL"
	TypeTOEIC   CertificateType = "TOEIC"
	TypeVSTEP   CertificateType = "VSTEP"
	TypeHSK     CertificateType = "HSK"
	TypeJLPT    CertificateType = "JLPT"
	TypeUnknown CertificateType = "UNKNOWN"
)

// Method records which path produced a result.
type Method string

const (
	MethodOCRStandard Method = "ocr-standard"
	MethodOCREnhanced Method = "ocr-enhanced"
	MethodAIAPI       Method = "ai-api"
	MethodHybrid      Method = "hybrid"
)

// Fields is the structured output of one extraction run.
//
// Every populated field has passed its validator before being written; a match
// that fails validation is discarded rather than stored. Date fields keep the
// matched substring as-is (DD/MM/YYYY and friends), they are not normalized to
// a calendar type. Confidence is always recomputed from the populated fields,
// never set independently.
type Fields struct {
	CertificateType     CertificateType    `json:"certificate_type"`
	FullName            string             `json:"full_name,omitempty"`
	DateOfBirth         string             `json:"date_of_birth,omitempty"`
	ExamDate            string             `json:"exam_date,omitempty"`
	IssueDate           string             `json:"issue_date,omitempty"`
	CertificateNumber   string             `json:"certificate_number,omitempty"`
	IssuingOrganization string             `json:"issuing_organization,omitempty"`
	Scores              map[string]float64 `json:"scores,omitempty"`
	RawText             string             `json:"raw_text,omitempty"`
	Confidence          int                `json:"confidence"`
	Method              Method             `json:"extraction_method"`
}

// NewFields returns an empty result with the scores map initialized.
func NewFields() *Fields {
	return &Fields{
		CertificateType: TypeUnknown,
		Scores:          make(map[string]float64),
	}
}

// Clone returns a deep copy; the scores map is not shared.
func (f *Fields) Clone() *Fields {
	if f == nil {
		return nil
	}
	out := *f
	out.Scores = make(map[string]float64, len(f.Scores))
	for k, v := range f.Scores {
		out.Scores[k] = v
	}
	return &out
}

// PopulatedScoreCount reports how many per-skill scores are set, excluding the
// overall/total entry.
func (f *Fields) PopulatedScoreCount() int {
	n := 0
	for k := range f.Scores {
		if k != "overall" && k != "total" {
			n++
		}
	}
	return n
}
