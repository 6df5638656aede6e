package memory

import (
	"regexp"
	"strconv"
	"strings"

	"shoppingagent/app/service/classify"
)

var (
	budgetManwonRe = regexp.MustCompile(`(\d+)\s*만\s*원`)
	budgetWonRe    = regexp.MustCompile(`(\d{2,7})\s*원`)
)

// ExtractBudget scans items in order and returns the first extractable
// budget in won. A "N만 원" match wins over a bare "N원" amount; later
// budget mentions are ignored.
func ExtractBudget(items []Item) (int, bool) {
	for _, it := range items {
		if m := budgetManwonRe.FindStringSubmatch(it.Text); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n * 10000, true
			}
		}

		plain := strings.ReplaceAll(it.Text, ",", "")
		if m := budgetWonRe.FindStringSubmatch(plain); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n, true
			}
		}
	}

	return 0, false
}

// HasBudget reports whether any stored criterion mentions a budget.
func HasBudget(items []Item) bool {
	for _, it := range items {
		if classify.MentionsBudget(it.Text) {
			return true
		}
	}

	return false
}

type priorityCategory struct {
	label    string
	keywords []string
}

var priorityCategories = []priorityCategory{
	{"디자인/스타일", []string{"디자인", "스타일", "깔끔", "미니멀", "레트로", "트렌디", "design", "style"}},
	{"음질", []string{"음질", "sound", "audio"}},
	{"착용감", []string{"착용감", "편안", "comfortable", "가벼운"}},
	{"노이즈캔슬링", []string{"노이즈", "캔슬링"}},
	{"배터리", []string{"배터리", "battery", "오래 쓰"}},
	{"가격/예산", []string{"가격", "예산", "가성비", "price", "저렴", "싼", "싸게"}},
	{"브랜드", []string{"브랜드", "인지도", "유명"}},
}

// DetectPriority maps the single priority-marked item to a category
// label, falling back to the raw statement when no keyword matches.
func DetectPriority(items []Item) (string, bool) {
	for _, it := range items {
		if !it.Priority {
			continue
		}

		low := strings.ToLower(it.Text)
		for _, cat := range priorityCategories {
			for _, k := range cat.keywords {
				if strings.Contains(low, k) {
					return cat.label, true
				}
			}
		}

		return it.Text, true
	}

	return "", false
}

// PriorityText returns the priority-marked statement itself, used by the
// recommendation scorer.
func PriorityText(items []Item) (string, bool) {
	for _, it := range items {
		if it.Priority {
			return it.Text, true
		}
	}

	return "", false
}
