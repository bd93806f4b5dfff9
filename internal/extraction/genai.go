package extraction

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GenAIExtractor asks a Gemini model for a schema-constrained JSON draft.
type GenAIExtractor struct {
	client *genai.Client
	model  string
}

// NewGenAIExtractor creates a Gemini-backed extractor. baseURL overrides the API
// endpoint and is empty in production.
func NewGenAIExtractor(ctx context.Context, apiKey, model, baseURL string) (*GenAIExtractor, error) {
	if apiKey == "" {
		return nil, errors.New("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIExtractor{client: client, model: model}, nil
}

func (e *GenAIExtractor) Name() string { return "genai:" + e.model }

func (e *GenAIExtractor) Extract(ctx context.Context, text string) (*Draft, error) {
	result, err := e.client.Models.GenerateContent(ctx,
		e.model,
		genai.Text(BuildPrompt(text)),
		&genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](0.2),
			ResponseMIMEType: "application/json",
			ResponseSchema:   draftSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("GenAI generate failed: %w", err)
	}
	return ParseDraft(result.Text())
}

var draftSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"what_happened": {Type: genai.TypeString},
		"when_happened": {Type: genai.TypeString},
		"who_involved":  {Type: genai.TypeString},
		"outcome":       {Type: genai.TypeString},
		"next_steps":    {Type: genai.TypeString},
	},
	Required: []string{"what_happened", "when_happened", "who_involved", "outcome", "next_steps"},
}
