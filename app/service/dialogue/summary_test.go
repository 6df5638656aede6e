package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppingagent/app/service/memory"
)

func TestCriteriaSummaryEmpty(t *testing.T) {
	got := CriteriaSummary("철수", nil)

	require.Contains(t, got, "철수")
	require.Contains(t, got, "아직 쇼핑 기준이 충분히 모이지 않았어요")
}

func TestCriteriaSummaryListsItems(t *testing.T) {
	items := []memory.Item{
		{Text: "가성비, 가격을 중요하게 생각하는 편"},
		{Text: "노이즈캔슬링이 필요해요."},
	}

	got := CriteriaSummary("철수", items)

	assert.Contains(t, got, "[@철수님의 쇼핑 기준 요약]")
	assert.Contains(t, got, "- 가성비, 가격을 중요하게 생각하는 편")
	assert.Contains(t, got, "- 노이즈캔슬링이 필요해요.")
	assert.NotContains(t, got, "가장 중요하게 보고 계신")
}

func TestCriteriaSummaryHighlightsPriority(t *testing.T) {
	items := []memory.Item{
		{Text: "음질을 중요하게 생각하고 있어요.", Priority: true},
		{Text: "예산은 약 15만 원 이내"},
	}

	got := CriteriaSummary("철수", items)

	require.Contains(t, got, "**'음질을 중요하게 생각하고 있어요.'**")
}

func TestFormatPrice(t *testing.T) {
	cases := map[int]string{
		0:      "0",
		999:    "999",
		1000:   "1,000",
		99000:  "99,000",
		199000: "199,000",
		679000: "679,000",
	}

	for in, want := range cases {
		assert.Equal(t, want, formatPrice(in), "price %d", in)
	}
}
