package recommend

import (
	"sort"
	"strings"

	"shoppingagent/app/catalog"
	"shoppingagent/app/service/memory"
)

const topN = 3

const (
	priorityBonus    = 50
	tagBonus         = 20
	colorBonus       = 10
	withinBudget     = 30
	overBudget       = -80
	farOverBudget    = -200
	farOverThreshold = 100000
)

// Score rates one catalog entry against the current memory. Additive and
// deterministic: the priority bonus dominates tag matches, budget
// violation dominates everything.
func Score(p catalog.Product, items []memory.Item) int {
	score := 0

	if prio, ok := memory.PriorityText(items); ok {
		if (strings.Contains(prio, "디자인") || strings.Contains(prio, "스타일")) && p.HasTag("디자인") {
			score += priorityBonus
		}
		if strings.Contains(prio, "음질") && p.HasTag("음질") {
			score += priorityBonus
		}
		if strings.Contains(prio, "착용감") && p.HasTag("착용감") {
			score += priorityBonus
		}
	}

	for _, it := range items {
		if strings.Contains(it.Text, "노이즈") && p.HasTag("노이즈캔슬링") {
			score += tagBonus
		}
		if strings.Contains(it.Text, "가성비") && p.HasTag("가성비") {
			score += tagBonus
		}
		if strings.Contains(it.Text, "색상") {
			for _, col := range p.Colors {
				if strings.Contains(it.Text, col) {
					score += colorBonus
					break
				}
			}
		}
	}

	score -= p.Rank

	if budget, ok := memory.ExtractBudget(items); ok {
		switch {
		case p.Price > budget && p.Price-budget > farOverThreshold:
			score += farOverBudget
		case p.Price > budget:
			score += overBudget
		default:
			score += withinBudget
		}
	}

	return score
}

// TopN returns the best three catalog entries for the current memory,
// ties broken by catalog order.
func TopN(items []memory.Item) []catalog.Product {
	products := catalog.Products()

	sort.SliceStable(products, func(i, j int) bool {
		return Score(products[i], items) > Score(products[j], items)
	})

	if len(products) > topN {
		products = products[:topN]
	}

	return products
}
