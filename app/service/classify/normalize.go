package classify

import (
	"regexp"
	"strings"
)

var (
	endingThinkingRe = regexp.MustCompile(`로 생각하고 있어요\.?$`)
	endingIeyoRe     = regexp.MustCompile(`이에요\.?$`)
	endingEyoRe      = regexp.MustCompile(`에요\.?$`)
	endingDaRe       = regexp.MustCompile(`다\.?$`)
	particlePreferRe = regexp.MustCompile(`(을|를)\s*선호$`)
	particleWishRe   = regexp.MustCompile(`(을|를)\s*고려하고$`)
	particleNeedRe   = regexp.MustCompile(`(이|가)\s*필요$`)
	particleListenRe = regexp.MustCompile(`(에서)\s*들을$`)
)

// Normalize canonicalizes a single preference statement so restatements
// of the same criterion collapse to the same form. Pure and idempotent.
func Normalize(raw string) string {
	t := strings.TrimSpace(raw)
	t = strings.ReplaceAll(t, "노이즈 캔슬링", "노이즈캔슬링")

	isPriority := strings.Contains(t, PriorityMarker)
	t = strings.TrimSpace(strings.ReplaceAll(t, PriorityMarker, ""))

	t = endingThinkingRe.ReplaceAllString(t, "")
	t = endingIeyoRe.ReplaceAllString(t, "")
	t = endingEyoRe.ReplaceAllString(t, "")
	t = endingDaRe.ReplaceAllString(t, "")

	t = strings.ReplaceAll(t, "비싼것까진 필요없", "비싼 것 필요 없음")
	t = strings.ReplaceAll(t, "필요없", "필요 없음")

	t = particlePreferRe.ReplaceAllString(t, " 선호")
	t = particleWishRe.ReplaceAllString(t, " 고려")
	t = particleNeedRe.ReplaceAllString(t, " 필요")
	t = particleListenRe.ReplaceAllString(t, "")

	t = strings.TrimSpace(t)
	if isPriority {
		t = PriorityMarker + " " + t
	}

	return t
}

// HasPriority reports whether the statement carries the priority marker.
func HasPriority(text string) bool {
	return strings.Contains(text, PriorityMarker)
}

// StripPriority removes the priority marker and surrounding whitespace.
func StripPriority(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, PriorityMarker, ""))
}
