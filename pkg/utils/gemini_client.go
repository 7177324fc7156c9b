package utils

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiSuggestionClient asks a Gemini model for a JSON suggestion set.
type GeminiSuggestionClient struct {
	client *genai.Client
	model  string
}

func NewGeminiSuggestionClient(ctx context.Context, apiKey, model string) (*GeminiSuggestionClient, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSuggestionClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiSuggestionClient) Name() string { return "gemini" }

func (c *GeminiSuggestionClient) Suggest(ctx context.Context, req SuggestionRequest) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.4)
	m.SetTopP(0.8)
	m.SetMaxOutputTokens(4096)

	resp, err := m.GenerateContent(ctx, genai.Text(BuildSuggestionPrompt(req)))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no content generated by Gemini", ErrUnexpectedBehaviorOfAI)
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
	}
	return string(text), nil
}

func (c *GeminiSuggestionClient) Close() error {
	return c.client.Close()
}
