package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/sashabaranov/go-openai"

	"shoppingagent/app/config"
)

//go:embed extract_prompt_template.txt
var extractPromptTemplate string

const maxExtractDuration = 30 * time.Second

// ExtractAgent asks the model to pull storable shopping criteria out of
// one user utterance. Output is constrained to a strict JSON object;
// anything malformed is treated as "nothing to store".
type ExtractAgent struct {
	client *openai.Client
	model  string
}

func NewExtractAgent(cfg config.ModelConfig) *ExtractAgent {
	return &ExtractAgent{
		client: createClient(cfg),
		model:  cfg.Model,
	}
}

func (a *ExtractAgent) Extract(ctx context.Context, userText, memoryText string) ([]string, error) {
	if memoryText == "" {
		memoryText = "(없음)"
	}

	prompt := renderTemplate(extractPromptTemplate, map[string]any{
		"user_input": userText,
		"memory":     memoryText,
	})

	ctx, cancel := context.WithTimeout(ctx, maxExtractDuration)
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
			Temperature: 0,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return nil, fmt.Errorf("no chat completion found")
	}

	result := trimModelJSON(aiResponse.Choices[0].Message.Content)

	var response extractResponse
	if err = json.Unmarshal([]byte(result), &response); err != nil {
		// Fail open: a malformed extraction means no memories, never a
		// failed turn.
		slog.Debug("Extraction output was not valid JSON", "output", result, "error", err)
		return nil, nil
	}

	return response.Memories, nil
}
