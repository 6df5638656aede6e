package classify

// Topic is the criterion a question is about. The dialogue layer tracks
// at most one outstanding topic per session.
type Topic string

const (
	TopicNone    Topic = ""
	TopicDesign  Topic = "design"
	TopicColor   Topic = "color"
	TopicSound   Topic = "sound"
	TopicComfort Topic = "comfort"
	TopicBattery Topic = "battery"
	TopicBudget  Topic = "budget"
)

// PriorityMarker flags the single most important criterion in memory.
const PriorityMarker = "(가장 중요)"

var yesKeywords = []string{
	"응", "응응", "ㅇㅇ", "네", "넹", "맞아", "필요해", "맞아요",
	"그래", "좋아", "좋아요", "중요하지", "좋지", "그치", "맞지",
}

var negativeKeywords = []string{
	// 기준이 없거나 애매함
	"없어", "없다고", "몰라", "모르겠", "잘 모르",
	"글쎄", "애매", "딱히",

	// 관심/중요도 낮음
	"별로", "아닌데", "굳이", "괜찮",
	"그만", "필요없", "필요 없", "상관없", "관심없", "안중요",

	// 우선순위를 못 정하는 답변
	"둘다 중요", "둘 다 중요", "둘 다 다 중요", "둘 다 괜찮",
	"둘다 괜찮", "다 중요해", "둘 다 비슷", "거의 비슷",
}

var colorKeywords = []string{"화이트", "블랙", "네이비", "퍼플", "실버", "그레이", "핑크", "보라", "골드"}

var driftKeywords = []string{"스마트폰", "휴대폰", "핸드폰", "아이폰", "갤럭시"}

var recommendKeywords = []string{"추천", "골라줘", "추천해줘", "추천 받을게"}

var summaryConfirmKeywords = []string{"좋아요", "네", "맞아요", "추천"}

var DesignKeywords = []string{"디자인", "스타일", "예쁜", "깔끔", "세련", "미니멀", "레트로", "감성", "스타일리시"}

var UsageKeywords = []string{"용도", "출퇴근", "운동", "게임", "여행", "공부", "음악 감상"}

var soundKeywords = []string{"음질", "소리", "사운드", "고음", "중음", "저음"}
