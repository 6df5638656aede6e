package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trims whitespace", "  음질 선호  ", "음질 선호"},
		{"collapses noise cancelling spacing", "노이즈 캔슬링이 필요해요", "노이즈캔슬링이 필요해요"},
		{"strips thinking ending", "예산은 약 15만 원 이내로 생각하고 있어요.", "예산은 약 15만 원 이내"},
		{"strips declarative ending", "가성비가 중요하다.", "가성비가 중요하"},
		{"rewrites negated need", "비싼것까진 필요없어요", "비싼 것 필요 없음어요"},
		{"prefer particle", "블랙을 선호", "블랙 선호"},
		{"marker moves to front", "음질을 중요하게 생각하고 있어요 (가장 중요)", "(가장 중요) 음질을 중요하게 생각하고 있어요"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"(가장 중요) 디자인/스타일을 최우선으로 고려하고 있어요.",
		"예산은 약 20만 원 이내로 생각하고 있어요.",
		"노이즈 캔슬링을 선호",
		"착용감이 편한 제품을 선호하고 있어요.",
	}

	for _, in := range inputs {
		once := Normalize(in)
		require.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestPriorityMarkerHelpers(t *testing.T) {
	text := "(가장 중요) 음질을 중요하게 생각하고 있어요"

	require.True(t, HasPriority(text))
	require.Equal(t, "음질을 중요하게 생각하고 있어요", StripPriority(text))
	require.False(t, HasPriority(StripPriority(text)))
}

func TestResponsePolarity(t *testing.T) {
	assert.True(t, IsNegativeResponse("딱히 없어요"))
	assert.True(t, IsNegativeResponse("둘 다 중요해요"))
	assert.True(t, IsNegativeResponse("굳이 필요없을 것 같아요"))
	assert.False(t, IsNegativeResponse(""))
	assert.False(t, IsNegativeResponse("음질이 제일 중요해요"))

	assert.True(t, IsAffirmativeResponse("네"))
	assert.True(t, IsAffirmativeResponse("좋아요!"))
	assert.True(t, IsAffirmativeResponse("맞아요 그게 중요해요"))
	assert.False(t, IsAffirmativeResponse("아니요"))
	// Affirmative keywords are matched only at the start.
	assert.False(t, IsAffirmativeResponse("그건 좀 아닌데 네란 말은 못하겠어요"))
}

func TestStatementCategories(t *testing.T) {
	assert.True(t, IsBudgetStatement("예산은 약 15만 원 이내"))
	assert.True(t, IsBudgetStatement("(가장 중요) 예산은 약 10만 원"))
	assert.False(t, IsBudgetStatement("가격대가 궁금해요"))

	assert.True(t, IsColorStatement("색상은 블랙 계열을 선호해요"))
	assert.True(t, IsColorStatement("화이트가 좋아요"))
	assert.False(t, IsColorStatement("음질이 중요해요"))

	assert.True(t, IsDriftStatement("아이폰이랑 잘 어울리는 걸로요"))
	assert.False(t, IsDriftStatement("헤드셋 추천해주세요"))

	assert.True(t, IsRecommendRequest("이제 추천해줘"))
	assert.False(t, IsRecommendRequest("음질은 어때요?"))
}

func TestInferTopic(t *testing.T) {
	cases := []struct {
		reply string
		want  Topic
	}{
		{"어떤 디자인을 좋아하세요?", TopicDesign},
		{"선호하는 색상이 있으신가요?", TopicColor},
		{"음질은 어느 정도 중요하신가요?", TopicSound},
		{"고음이 잘 들리는 게 좋으세요?", TopicSound},
		{"착용감은 어떠세요?", TopicComfort},
		{"배터리는 오래 가야 하나요?", TopicBattery},
		{"생각하시는 가격대가 있나요?", TopicBudget},
		{"주로 어디서 사용하실 예정인가요?", TopicNone},
		// Design wins over sound when both appear.
		{"디자인과 음질 중 무엇이 더 중요하세요?", TopicDesign},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, InferTopic(tc.reply), "reply %q", tc.reply)
	}
}
