package recommend

import (
	"fmt"
	"math/rand"
	"strings"

	"shoppingagent/app/catalog"
	"shoppingagent/app/service/memory"
)

var comfortTags = []string{"편안함", "경량", "가벼움", "착용감"}

// Reason builds the short card text connecting a candidate to the
// user's stored criteria. The closing line is picked at random; the
// ranking itself stays deterministic.
func Reason(p catalog.Product, items []memory.Item, name string) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.Text)
	}
	memStr := strings.Join(parts, " ")

	var reasons []string

	if strings.Contains(memStr, "음질") && p.HasTag("음질") {
		reasons = append(reasons, "음질 중심 사용자에게 잘 맞아요.")
	}

	if strings.Contains(memStr, "착용감") {
		for _, t := range comfortTags {
			if p.HasTag(t) {
				reasons = append(reasons, "외부에서 쓰거나 장시간 착용 용도로 적합해요.")
				break
			}
		}
	}

	if strings.Contains(memStr, "노이즈캔슬링") && p.HasTag("노이즈캔슬링") {
		reasons = append(reasons, "노이즈캔슬링 성능이 뛰어나요.")
	}

	if p.HasTag("배터리") {
		reasons = append(reasons, "배터리가 오래가는 편이에요.")
	}
	if p.HasTag("가성비") {
		reasons = append(reasons, "가성비가 뛰어난 선택이에요.")
	}
	if p.HasTag("통화품질") {
		reasons = append(reasons, "통화 품질도 준수해서 업무용으로 좋아요.")
	}
	if p.HasTag("음질") && !strings.Contains(memStr, "음질") {
		reasons = append(reasons, "음질 평가도 좋아요.")
	}

	closings := []string{
		fmt.Sprintf("%s님의 상황과 잘 맞는 조합이에요!", name),
		fmt.Sprintf("%s님이 선호하시는 기준과 잘 어울리는 제품이에요.", name),
		fmt.Sprintf("여러 기준을 고려하면 %s님께 특히 잘 맞을 것 같아요.", name),
		fmt.Sprintf("%s님의 사용 스타일과 궁합이 좋아 보여요!", name),
		fmt.Sprintf("후기가 좋아서 %s님에게도 좋은 평가를 받을 것 같아요:)", name),
		fmt.Sprintf("%s님이 말씀하신 조건들과 자연스럽게 맞닿아 있어요.", name),
	}

	if p.HasTag("음질") {
		closings = append(closings, fmt.Sprintf("특히 음질을 중시하는 %s님께 잘 맞는 타입이에요.", name))
	}
	if p.HasTag("배터리") {
		closings = append(closings, fmt.Sprintf("오래 쓰는 사용 패턴을 가진 %s님께도 잘 맞아요.", name))
	}
	if p.HasTag("가성비") {
		closings = append(closings, fmt.Sprintf("실속 있는 선택을 찾는 %s님께 잘 어울려요.", name))
	}

	reasons = append(reasons, closings[rand.Intn(len(closings))])

	var unique []string
	for _, r := range reasons {
		seen := false
		for _, u := range unique {
			if u == r {
				seen = true
				break
			}
		}
		if !seen {
			unique = append(unique, r)
		}
	}

	if len(unique) > 3 {
		unique = unique[:3]
	}

	return strings.Join(unique, "\n")
}
