package classify

import "strings"

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}

	return false
}

// IsNegativeResponse reports whether the text dismisses the current
// question: no preference, low importance, or inability to pick between
// two offered options.
func IsNegativeResponse(text string) bool {
	if text == "" {
		return false
	}

	return containsAny(text, negativeKeywords)
}

// IsAffirmativeResponse matches prefix-or-exact against the affirmative
// keyword set.
func IsAffirmativeResponse(text string) bool {
	for _, k := range yesKeywords {
		if text == k || strings.HasPrefix(text, k) {
			return true
		}
	}

	return false
}

// IsBudgetStatement reports whether a normalized statement is the
// exclusive budget criterion.
func IsBudgetStatement(text string) bool {
	return strings.Contains(StripPriority(text), "예산은 약")
}

// MentionsBudget is the looser check used to gate the recommendation
// phases on a confirmed budget.
func MentionsBudget(text string) bool {
	return strings.Contains(text, "예산")
}

// IsColorStatement reports whether a statement is the exclusive color
// criterion.
func IsColorStatement(text string) bool {
	t := StripPriority(text)
	if strings.Contains(t, "색상") && strings.Contains(t, "선호") {
		return true
	}

	return containsAny(t, colorKeywords)
}

// IsDriftStatement detects the user steering toward another device
// category.
func IsDriftStatement(text string) bool {
	return containsAny(text, driftKeywords)
}

// IsRecommendRequest detects an explicit "recommend now" cue.
func IsRecommendRequest(text string) bool {
	return containsAny(text, recommendKeywords)
}

// IsSummaryConfirm detects the continue cue that moves summary to
// comparison.
func IsSummaryConfirm(text string) bool {
	return containsAny(text, summaryConfirmKeywords)
}

// MentionsSound reports whether a generated reply talks about sound
// quality, including pitch-range variations.
func MentionsSound(text string) bool {
	return containsAny(text, soundKeywords)
}

// MentionsDesign reports whether the text touches design or style,
// color included.
func MentionsDesign(text string) bool {
	return containsAny(text, DesignKeywords) || strings.Contains(text, "색상")
}

// InferTopic classifies which criterion a generated reply just asked
// about, in fixed precedence order.
func InferTopic(reply string) Topic {
	switch {
	case strings.Contains(reply, "디자인") || strings.Contains(reply, "스타일"):
		return TopicDesign
	case strings.Contains(reply, "색상") && strings.Contains(reply, "선호"):
		return TopicColor
	case containsAny(reply, soundKeywords):
		return TopicSound
	case strings.Contains(reply, "착용감"):
		return TopicComfort
	case strings.Contains(reply, "배터리"):
		return TopicBattery
	case strings.Contains(reply, "예산") || strings.Contains(reply, "가격대"):
		return TopicBudget
	default:
		return TopicNone
	}
}
