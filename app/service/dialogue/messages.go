package dialogue

import "shoppingagent/app/service/classify"

const (
	msgNextCriterion = "네! 그럼 다음 기준으로 넘어가볼게요. 추가로 고려할 기준 있으신가요? (예: 색상·디자인·착용감·예산 등)"
	msgAcknowledge   = "네! 반영해둘게요 😊 다른 기준도 있으신가요?"
	msgDrift         = "앗! 지금은 헤드셋 추천 단계예요 😊 헤드셋 기준으로 도와드릴게요!"

	msgAskBudget       = "추천을 위해 예산을 알려주세요!"
	msgAskBudgetEnough = "기준이 충분히 모였어요! 예산은 어떻게 보고 계세요?"

	msgSummaryIntro  = "좋아요! 지금까지의 기준을 정리해드릴게요 😊"
	msgSummaryEdit   = "수정하고 싶은 기준이 있으면 좌측 '쇼핑 메모리'에서 편하게 변경해주세요 😊"
	msgComparisonGo  = "좋아요! 지금까지의 기준을 기반으로 추천을 드릴게요."
	msgNoSelection   = "선택된 제품 정보가 없어서 추천 목록으로 다시 돌아갈게요!"
	msgAlreadyClosed = "이미 구매 결정을 마치셨어요. 설문 페이지로 돌아가주세요 😊"
)

const (
	noticePriority = "🌟 최우선 기준으로 설정되었어요."
	noticeAdded    = "🧩 메모리에 새로운 내용을 추가했어요."
	noticeUpdated  = "🔄 메모리가 수정되었어요."
	noticeDeleted  = "🗑️ 메모리에서 삭제했어요."
)

// topicSeeds maps a pending question topic to the memory statement that
// an affirmative answer confirms.
var topicSeeds = map[classify.Topic]string{
	classify.TopicComfort: "착용감이 편한 제품을 선호하고 있어요.",
	classify.TopicSound:   "음질을 중요하게 생각하고 있어요.",
	classify.TopicDesign:  "디자인/스타일을 중요하게 보고 있어요.",
	classify.TopicColor:   "선호하는 색상이 있어요.",
	classify.TopicBattery: "배터리 지속시간을 중요하게 생각하고 있어요.",
	classify.TopicBudget:  "예산은 약 00만 원 이내로 생각하고 있어요.",
}
