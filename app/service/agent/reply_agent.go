package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	_ "embed"

	"github.com/sashabaranov/go-openai"

	"shoppingagent/app/config"
)

//go:embed system_prompt.txt
var systemPrompt string

//go:embed reply_prompt_template.txt
var replyPromptTemplate string

//go:embed detail_prompt_template.txt
var detailPromptTemplate string

const (
	maxReplyDuration  = 30 * time.Second
	replyTemperature  = 0.45
	detailTemperature = 0.35
)

// ReplyAgent generates the conversational turns: exploratory questions
// during explore/summary/comparison, and grounded answers about one
// product during product_detail.
type ReplyAgent struct {
	client *openai.Client
	model  string
}

func NewReplyAgent(cfg config.ModelConfig) *ReplyAgent {
	return &ReplyAgent{
		client: createClient(cfg),
		model:  cfg.Model,
	}
}

func buildStageHint(in ReplyInput) string {
	var hint strings.Builder

	hint.WriteString(
		"[중요 규칙] 이 대화는 항상 '블루투스 헤드셋' 기준입니다. " +
			"스마트폰·노트북 등 다른 기기 추천이나 질문은 하지 마세요.\n\n")

	if in.Explore && in.DesignPriority {
		hint.WriteString(`
[디자인/스타일 최우선 규칙 – 이번 턴 필수]
- 이번 턴에는 반드시 '디자인' 또는 '색상' 관련 질문 단 1개만 하세요.
- 음질/착용감/배터리/노이즈캔슬링 등 기능 질문은 이번 턴에서 금지합니다.
- 이미 색상 정보를 알고 있다면 디자인 스타일(깔끔/레트로/포인트 컬러 등)만 물어보세요.
`)
	}

	if in.Explore && in.PriceFirst && !in.HasBudget {
		hint.WriteString(`
[가격/가성비 최우선 규칙 – 이번 턴 필수]
- 이번 턴에는 반드시 예산/가격대에 대해 한 가지만 물어보세요.
- 음질/노이즈캔슬링/착용감 등 기능 질문은 이번 턴에는 하지 마세요.
`)
	}

	if in.UsageKnown {
		hint.WriteString(
			"[용도 파악됨] 이미 사용 용도는 기억하고 있습니다. " +
				"다시 묻지 말고 다음 기준(디자인/예산/음질/착용감 등)으로 넘어가세요.\n")
	}

	return hint.String()
}

func (a *ReplyAgent) Reply(ctx context.Context, in ReplyInput) (string, error) {
	memoryText := in.MemoryText
	if memoryText == "" {
		memoryText = "(아직 없음)"
	}

	prompt := renderTemplate(replyPromptTemplate, map[string]any{
		"stage_hint": buildStageHint(in),
		"memory":     memoryText,
		"user_input": in.UserText,
	})

	ctx, cancel := context.WithTimeout(ctx, maxReplyDuration)
	defer cancel()

	aiResponse, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: a.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: replyTemperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return "", fmt.Errorf("no chat completion found")
	}

	return strings.TrimSpace(aiResponse.Choices[0].Message.Content), nil
}

func (a *ReplyAgent) ProductDetail(ctx context.Context, in DetailInput) (string, error) {
	budgetLine := ""
	budgetRule := ""

	if in.HasBudget && in.FirstTurn && in.Product.Price > in.Budget {
		budgetLine = fmt.Sprintf("- 사용자가 설정한 예산: 약 %d원", in.Budget)
		budgetRule = fmt.Sprintf(
			"4. (첫 답변에서만 적용)\n"+
				"   가격이 예산을 초과한 경우, 답변 첫 문장에 다음 문구 포함:\n"+
				"   - \"예산(약 %d원)을 약간 초과하지만…\"\n", in.Budget)
	}

	prompt := renderTemplate(detailPromptTemplate, map[string]any{
		"user_input":  in.UserText,
		"name":        in.Product.Name,
		"brand":       in.Product.Brand,
		"price":       in.Product.Price,
		"colors":      strings.Join(in.Product.Colors, ", "),
		"rating":      fmt.Sprintf("%.1f", in.Product.Rating),
		"tags":        strings.Join(in.Product.Tags, ", "),
		"review_one":  in.Product.ReviewOne,
		"budget_line": budgetLine,
		"budget_rule": budgetRule,
	})

	ctx, cancel := context.WithTimeout(ctx, maxReplyDuration)
	defer cancel()

	aiResponse, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: a.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: detailTemperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return "", fmt.Errorf("no chat completion found")
	}

	return strings.TrimSpace(aiResponse.Choices[0].Message.Content), nil
}
