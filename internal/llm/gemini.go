package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const (
	geminiDefaultURL   = "https://generativelanguage.googleapis.com/v1beta"
	geminiDefaultModel = "gemini-2.5-flash"
)

// GeminiClient completes prompts via the Gemini generateContent API.
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGeminiClient constructs a GeminiClient with the given API key.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{apiKey: apiKey, baseURL: geminiDefaultURL, model: geminiDefaultModel, client: newHTTPClient()}
}

// NewGeminiClientWithURL constructs a GeminiClient pointing at a custom base URL (for tests).
func NewGeminiClientWithURL(baseURL, apiKey string) *GeminiClient {
	return &GeminiClient{apiKey: apiKey, baseURL: baseURL, model: geminiDefaultModel, client: newHTTPClient()}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Complete sends a generateContent request and returns the first candidate's text.
func (c *GeminiClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))

	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	if system != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}

	var raw geminiResponse
	if err := doPost(ctx, c.client, endpoint, nil, body, &raw); err != nil {
		return "", fmt.Errorf("gemini completion: %w", err)
	}

	if len(raw.Candidates) == 0 || len(raw.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini completion: response has no candidates")
	}

	return raw.Candidates[0].Content.Parts[0].Text, nil
}
