package extract

import (
	"strconv"
	"strings"
)

// extractScores pulls per-skill and overall scores using the type's label
// tables. A matched value is kept only when it falls inside the type's valid
// range; out-of-range matches are noise and are dropped.
func extractScores(text string, desc *Descriptor, f *Fields) {
	if desc == nil {
		return
	}
	flat := normalizeSpaces(text)

	for _, skill := range desc.Skills {
		for _, label := range skill.Labels {
			m := label.FindStringSubmatch(flat)
			if m == nil {
				continue
			}
			if v, ok := acceptScore(m[1], desc.SkillRange); ok {
				f.Scores[skill.Key] = v
				break
			}
		}
	}

	for _, label := range desc.Total {
		m := label.FindStringSubmatch(flat)
		if m == nil {
			continue
		}
		if v, ok := acceptScore(m[1], desc.TotalRange); ok {
			f.Scores[desc.TotalKey] = v
			break
		}
	}
}

// acceptScore parses a matched numeric token and validates it against the
// range. For small-scale certificates (max <= 10) a value read in (10,100] is
// divided by 10 first: photographed forms often lose the decimal point, so
// "75" is really "7.5". The heuristic can misfire when the certificate type
// itself was misdetected; it is kept deliberately narrow.
func acceptScore(token string, r Range) (float64, bool) {
	token = strings.ReplaceAll(token, ",", ".")
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	if r.Max <= 10 && v > 10 && v <= 100 {
		v /= 10
	}
	if !r.Contains(v) {
		return 0, false
	}
	return v, true
}
