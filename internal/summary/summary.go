package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/guizot/tech-news-digest/internal/model"
)

const (
	maxStories  = 5
	maxBullets  = 3
	temperature = 0.3
	maxTokens   = 900

	defaultSystemPrompt = "You are a professional tech news editor. " +
		"You write crisp daily digests for busy readers."
)

type OpenAISummarizer struct {
	client *openai.Client
	model  string
	prompt string
}

func NewOpenAISummarizer(apiKey, baseURL, modelName, prompt string) *OpenAISummarizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if prompt == "" {
		prompt = defaultSystemPrompt
	}

	return &OpenAISummarizer{
		client: openai.NewClientWithConfig(cfg),
		model:  modelName,
		prompt: prompt,
	}
}

// Summarize asks the model to condense the collected items into 3-5 headline
// stories. Any API failure or malformed reply is fatal to the run.
func (s *OpenAISummarizer) Summarize(ctx context.Context, items []model.Item) ([]model.Story, error) {
	if len(items) == 0 {
		return nil, errors.New("summarize: no items to summarize")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: s.prompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(items),
			},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("summarize: model returned no choices")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	if raw == "" {
		return nil, errors.New("summarize: model returned empty content")
	}

	stories, err := parseStories(raw)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	return stories, nil
}
