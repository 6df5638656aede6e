package agent

import (
	"strings"

	"shoppingagent/app/service/classify"
)

const (
	budgetFirstReply = "가성비를 가장 중요하게 보신다고 하셔서, 먼저 예산 범위를 여쭤보고 싶어요.\n" +
		"대략 어느 정도 가격대를 생각하고 계신가요? (예: 10만 원대, 20만 원 이하 등)"

	designFirstReply = "디자인과 스타일을 가장 중요하게 보신다고 하셔서, 먼저 외형 쪽을 조금 더 여쭤보고 싶어요.\n" +
		"선호하시는 색상이나 분위기(깔끔한 느낌, 포인트 컬러, 레트로 느낌 등)가 있으신가요?"
)

// CorrectReply is the post-hoc filter over generated replies. The model
// cannot be trusted to follow the hard stage constraints, so an explore
// reply that asks about sound when budget or design must come first is
// replaced with a canned compliant question. Outside explore the reply
// passes through untouched.
func CorrectReply(reply string, in ReplyInput) string {
	if !in.Explore {
		return reply
	}

	if in.PriceFirst && !in.HasBudget &&
		classify.MentionsSound(reply) && !mentionsBudgetQuestion(reply) {
		return budgetFirstReply
	}

	if in.DesignPriority &&
		classify.MentionsSound(reply) && !classify.MentionsDesign(reply) {
		return designFirstReply
	}

	return reply
}

func mentionsBudgetQuestion(reply string) bool {
	for _, k := range []string{"예산", "가격", "얼마", "가격대"} {
		if strings.Contains(reply, k) {
			return true
		}
	}

	return false
}
