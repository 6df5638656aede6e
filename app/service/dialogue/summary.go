package dialogue

import (
	"fmt"
	"strings"

	"shoppingagent/app/service/memory"
)

// CriteriaSummary renders the confirmation text shown when the dialogue
// enters the summary phase. Rebuilt after every memory edit so the user
// always confirms the current criteria.
func CriteriaSummary(name string, items []memory.Item) string {
	if len(items) == 0 {
		return fmt.Sprintf("%s님, 아직 쇼핑 기준이 충분히 모이지 않았어요.\n"+
			"조금만 더 알려주시면 더 정확한 추천을 도와드릴게요!", name)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[@%s님의 쇼핑 기준 요약]\n\n", name))
	sb.WriteString("지금까지의 대화를 바탕으로 정리된 기준은 아래와 같습니다:\n\n")

	for _, it := range items {
		sb.WriteString("- " + it.Text + "\n")
	}

	sb.WriteString("\n")

	if priority, ok := memory.PriorityText(items); ok {
		sb.WriteString(fmt.Sprintf(
			"이 중에서 특히 **'%s'** 기준을 가장 중요하게 보고 계신 것으로 이해했어요.\n\n", priority))
	}

	sb.WriteString("현재 말씀해주신 기준만으로도 충분히 추천을 드릴 수 있는 상태예요! 😊\n" +
		"'쇼핑 메모리'에서 기준을 직접 수정하거나 삭제하실 수도 있고,\n" +
		"저에게 편하게 말씀해주셔도 바로 반영해드릴게요.\n\n" +
		"준비되셨다면 **'이 기준으로 추천 받기'**를 눌러주세요.")

	return sb.String()
}
