// Package quality classifies input images into coarse legibility tiers.
//
// Resolution alone is a cheap, reliable proxy for OCR legibility: low and
// medium resolution images need enhancement to reach usable contrast, while
// genuinely high-resolution images are tried with standard OCR first and
// enhancement is reserved for the fallback path.
package quality

// Tier is the coarse image-quality classification.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Classification thresholds.
const (
	lowPixelDensity  = 500_000
	lowMinSide       = 600
	highPixelDensity = 3_000_000
	highMinSide      = 1500
)

// Assessment is the quality classification of one image. Derived once per
// image and never mutated.
type Assessment struct {
	Tier                 Tier `json:"tier"`
	PixelDensity         int  `json:"pixel_density"`
	RecommendEnhancement bool `json:"recommend_enhancement"`
}

// Analyze classifies an image from its decoded pixel dimensions.
func Analyze(width, height int) Assessment {
	density := width * height
	minSide := width
	if height < minSide {
		minSide = height
	}

	a := Assessment{PixelDensity: density}
	switch {
	case density < lowPixelDensity || minSide < lowMinSide:
		a.Tier = TierLow
		a.RecommendEnhancement = true
	case density > highPixelDensity && minSide > highMinSide:
		a.Tier = TierHigh
		a.RecommendEnhancement = false
	default:
		a.Tier = TierMedium
		a.RecommendEnhancement = true
	}
	return a
}
