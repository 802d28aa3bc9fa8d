package llm

import (
	"context"
	"fmt"
	"net/http"
)

const (
	openAIDefaultURL   = "https://api.openai.com/v1/chat/completions"
	openAIDefaultModel = "gpt-4o-mini"
)

// OpenAIClient completes prompts via the OpenAI chat completions API.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewOpenAIClient constructs an OpenAIClient with the given API key.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{apiKey: apiKey, baseURL: openAIDefaultURL, model: openAIDefaultModel, client: newHTTPClient()}
}

// NewOpenAIClientWithURL constructs an OpenAIClient pointing at a custom URL (for tests).
func NewOpenAIClientWithURL(baseURL, apiKey string) *OpenAIClient {
	return &OpenAIClient{apiKey: apiKey, baseURL: baseURL, model: openAIDefaultModel, client: newHTTPClient()}
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a chat completion request and returns the first choice's text.
func (c *OpenAIClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	messages := make([]openAIMessage, 0, 2)
	if system != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: system})
	}
	messages = append(messages, openAIMessage{Role: "user", Content: prompt})

	var raw openAIResponse
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	if err := doPost(ctx, c.client, c.baseURL, headers, openAIRequest{Model: c.model, Messages: messages}, &raw); err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}

	if len(raw.Choices) == 0 {
		return "", fmt.Errorf("openai completion: response has no choices")
	}

	return raw.Choices[0].Message.Content, nil
}
