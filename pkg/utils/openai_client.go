package utils

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAISuggestionClient asks a chat model for a JSON suggestion set.
type OpenAISuggestionClient struct {
	client *openai.Client
	model  string
}

func NewOpenAISuggestionClient(apiKey, model string) *OpenAISuggestionClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAISuggestionClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAISuggestionClient) Name() string { return "openai" }

func (c *OpenAISuggestionClient) Suggest(ctx context.Context, req SuggestionRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a travel planner. Answer with JSON only."},
			{Role: openai.ChatMessageRoleUser, Content: BuildSuggestionPrompt(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned by OpenAI", ErrUnexpectedBehaviorOfAI)
	}
	return resp.Choices[0].Message.Content, nil
}
