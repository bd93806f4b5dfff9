package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const systemPrompt = `You extract structured facts from non-conformance incident reports.
Answer only from the given text. Return ONLY valid JSON with the requested keys, no markdown or explanation.`

// ChatExtractor calls an OpenAI-compatible chat/completions endpoint.
type ChatExtractor struct {
	name   string
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

func NewChatExtractor(name, apiURL, apiKey, model string, timeout time.Duration) *ChatExtractor {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChatExtractor{
		name:   name,
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (e *ChatExtractor) Name() string { return e.name }

func (e *ChatExtractor) Extract(ctx context.Context, text string) (*Draft, error) {
	if e.apiKey == "" {
		return nil, errors.New("API key not configured")
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(text)},
		},
		Temperature:    0.2,
		MaxTokens:      1024,
		ResponseFormat: map[string]any{"type": "json_object"},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, err
	}
	if len(chatResp.Choices) == 0 {
		return nil, errors.New("empty response from API")
	}

	return ParseDraft(chatResp.Choices[0].Message.Content)
}
