package extract

import "regexp"

// Range bounds a numeric score for one certificate family.
type Range struct {
	Min  float64
	Max  float64
	Step float64 // 0 means any value inside the range is valid
}

// Contains reports whether v lies within the range and on the step grid.
func (r Range) Contains(v float64) bool {
	if v < r.Min || v > r.Max {
		return false
	}
	if r.Step > 0 {
		steps := v / r.Step
		rounded := float64(int(steps + 0.5))
		if diff := steps - rounded; diff > 1e-6 || diff < -1e-6 {
			return false
		}
	}
	return true
}

// keyword is a weighted phrase used for certificate-type scoring. Full
// official names carry more weight than bare abbreviations.
type keyword struct {
	Phrase string
	Weight int
}

// skillPattern maps one skill key to its ordered label patterns
// (English first, then localized labels).
type skillPattern struct {
	Key    string
	Labels []*regexp.Regexp
}

// Descriptor bundles everything type-specific about one certificate family:
// detection keywords, score label tables, valid ranges, known issuers and
// certificate-number shapes. Extraction sites look the descriptor up once
// instead of re-branching on the type tag.
type Descriptor struct {
	Type       CertificateType
	Keywords   []keyword
	Skills     []skillPattern
	SkillRange Range
	TotalKey   string // map key for the overall/total score
	TotalRange Range
	Total      []*regexp.Regexp // label patterns for the overall/total score
	Issuers    []string
	NumberPats []*regexp.Regexp // labeled certificate-number patterns, in priority order
}

func scoreRe(label string) *regexp.Regexp {
	// A label followed by optional separators and a numeric value. The value
	// group tolerates OCR that drops the decimal point ("75" for "7.5").
	return regexp.MustCompile(`(?i)` + label + `[\s:.=]*([0-9]{1,3}(?:[.,][0-9])?)`)
}

func numberRe(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + label + `[\s:.#]*([A-Z0-9][A-Z0-9/-]{4,23})`)
}

// typeOrder fixes tie-breaking for certificate-type detection.
var typeOrder = []CertificateType{TypeIELTS, TypeTOEFL, TypeTOEIC, TypeVSTEP, TypeHSK, TypeJLPT}

var descriptors = map[CertificateType]*Descriptor{
	TypeIELTS: {
		Type: TypeIELTS,
		Keywords: []keyword{
			{"international english language testing system", 5},
			{"ielts", 3},
			{"test report form", 2},
			{"overall band score", 2},
			{"band score", 1},
		},
		Skills: []skillPattern{
			{"listening", []*regexp.Regexp{scoreRe(`listening`), scoreRe(`nghe`)}},
			{"reading", []*regexp.Regexp{scoreRe(`reading`), scoreRe(`[dđ]ọc`)}},
			{"writing", []*regexp.Regexp{scoreRe(`writing`), scoreRe(`viết`)}},
			{"speaking", []*regexp.Regexp{scoreRe(`speaking`), scoreRe(`nói`)}},
		},
		SkillRange: Range{0, 9, 0.5},
		TotalKey:   "overall",
		TotalRange: Range{0, 9, 0.5},
		Total: []*regexp.Regexp{
			scoreRe(`overall\s+band\s+score`),
			scoreRe(`overall\s+band`),
			scoreRe(`overall`),
		},
		Issuers: []string{"British Council", "IDP", "Cambridge Assessment English"},
		NumberPats: []*regexp.Regexp{
			numberRe(`test\s+report\s+form\s+number`),
			numberRe(`form\s+number`),
			numberRe(`candidate\s+number`),
			numberRe(`certificate\s+(?:no|number)`),
		},
	},
	TypeTOEFL: {
		Type: TypeTOEFL,
		Keywords: []keyword{
			{"test of english as a foreign language", 5},
			{"toefl ibt", 4},
			{"toefl", 3},
			{"educational testing service", 2},
			{"ets", 1},
		},
		Skills: []skillPattern{
			{"reading", []*regexp.Regexp{scoreRe(`reading`)}},
			{"listening", []*regexp.Regexp{scoreRe(`listening`)}},
			{"speaking", []*regexp.Regexp{scoreRe(`speaking`)}},
			{"writing", []*regexp.Regexp{scoreRe(`writing`)}},
		},
		SkillRange: Range{0, 30, 0},
		TotalKey:   "total",
		TotalRange: Range{0, 120, 0},
		Total: []*regexp.Regexp{
			scoreRe(`total\s+score`),
			scoreRe(`total`),
		},
		Issuers: []string{"ETS", "Educational Testing Service"},
		NumberPats: []*regexp.Regexp{
			numberRe(`registration\s+number`),
			numberRe(`appointment\s+number`),
			numberRe(`certificate\s+(?:no|number)`),
		},
	},
	TypeTOEIC: {
		Type: TypeTOEIC,
		Keywords: []keyword{
			{"test of english for international communication", 5},
			{"toeic", 3},
			{"listening and reading", 2},
		},
		Skills: []skillPattern{
			{"listening", []*regexp.Regexp{scoreRe(`listening`)}},
			{"reading", []*regexp.Regexp{scoreRe(`reading`)}},
		},
		SkillRange: Range{5, 495, 0},
		TotalKey:   "total",
		TotalRange: Range{10, 990, 0},
		Total: []*regexp.Regexp{
			scoreRe(`total\s+score`),
			scoreRe(`total`),
		},
		Issuers: []string{"ETS", "IIG Vietnam"},
		NumberPats: []*regexp.Regexp{
			numberRe(`certificate\s+(?:no|number)`),
			numberRe(`số\s+hiệu`),
		},
	},
	TypeVSTEP: {
		Type: TypeVSTEP,
		Keywords: []keyword{
			{"vietnamese standardized test of english proficiency", 5},
			{"vstep", 3},
			{"khung năng lực ngoại ngữ", 3},
			{"chứng chỉ tiếng anh", 2},
		},
		Skills: []skillPattern{
			{"listening", []*regexp.Regexp{scoreRe(`listening`), scoreRe(`nghe`)}},
			{"reading", []*regexp.Regexp{scoreRe(`reading`), scoreRe(`[dđ]ọc`)}},
			{"writing", []*regexp.Regexp{scoreRe(`writing`), scoreRe(`viết`)}},
			{"speaking", []*regexp.Regexp{scoreRe(`speaking`), scoreRe(`nói`)}},
		},
		SkillRange: Range{0, 10, 0},
		TotalKey:   "overall",
		TotalRange: Range{0, 10, 0},
		Total: []*regexp.Regexp{
			scoreRe(`[dđ]iểm\s+trung\s+bình`),
			scoreRe(`overall`),
			scoreRe(`average`),
		},
		Issuers: []string{"ĐHQG Hà Nội", "Đại học Ngoại ngữ", "ULIS"},
		NumberPats: []*regexp.Regexp{
			numberRe(`số\s+hiệu`),
			numberRe(`số\s+vào\s+sổ`),
			numberRe(`certificate\s+(?:no|number)`),
		},
	},
	TypeHSK: {
		Type: TypeHSK,
		Keywords: []keyword{
			{"chinese proficiency test", 5},
			{"hanyu shuiping kaoshi", 4},
			{"汉语水平考试", 4},
			{"hsk", 3},
		},
		Skills: []skillPattern{
			{"listening", []*regexp.Regexp{scoreRe(`listening`), scoreRe(`听力`)}},
			{"reading", []*regexp.Regexp{scoreRe(`reading`), scoreRe(`阅读`)}},
			{"writing", []*regexp.Regexp{scoreRe(`writing`), scoreRe(`书写`)}},
		},
		SkillRange: Range{0, 100, 0},
		TotalKey:   "total",
		TotalRange: Range{0, 300, 0},
		Total: []*regexp.Regexp{
			scoreRe(`total\s+score`),
			scoreRe(`总分`),
			scoreRe(`total`),
		},
		Issuers: []string{"Hanban", "Center for Language Education and Cooperation", "Confucius Institute"},
		NumberPats: []*regexp.Regexp{
			numberRe(`certificate\s+(?:no|number)`),
			numberRe(`准考证号`),
		},
	},
	TypeJLPT: {
		Type: TypeJLPT,
		Keywords: []keyword{
			{"japanese-language proficiency test", 5},
			{"japanese language proficiency test", 5},
			{"日本語能力試験", 4},
			{"jlpt", 3},
		},
		Skills: []skillPattern{
			{"language knowledge", []*regexp.Regexp{scoreRe(`language\s+knowledge`), scoreRe(`言語知識`)}},
			{"reading", []*regexp.Regexp{scoreRe(`reading`), scoreRe(`読解`)}},
			{"listening", []*regexp.Regexp{scoreRe(`listening`), scoreRe(`聴解`)}},
		},
		SkillRange: Range{0, 60, 0},
		TotalKey:   "total",
		TotalRange: Range{0, 180, 0},
		Total: []*regexp.Regexp{
			scoreRe(`total\s+score`),
			scoreRe(`総合得点`),
			scoreRe(`total`),
		},
		Issuers: []string{"Japan Foundation", "JEES"},
		NumberPats: []*regexp.Regexp{
			numberRe(`certificate\s+(?:no|number)`),
			numberRe(`受験番号`),
		},
	},
}

// DescriptorFor returns the descriptor for a known certificate type,
// or nil for TypeUnknown.
func DescriptorFor(t CertificateType) *Descriptor {
	return descriptors[t]
}
