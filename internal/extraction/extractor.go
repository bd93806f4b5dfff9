package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	ErrIncompleteDraft = errors.New("extraction returned an incomplete draft")
	ErrNoProviders     = errors.New("no extraction provider configured")
	ErrEmptyText       = errors.New("text is required")
)

// Draft is the structured result of an extraction, awaiting user review.
type Draft struct {
	WhatHappened string `json:"what_happened"`
	WhenHappened string `json:"when_happened"`
	WhoInvolved  string `json:"who_involved"`
	Outcome      string `json:"outcome"`
	NextSteps    string `json:"next_steps"`
}

func (d *Draft) complete() bool {
	return d.WhatHappened != "" &&
		d.WhenHappened != "" &&
		d.WhoInvolved != "" &&
		d.Outcome != "" &&
		d.NextSteps != ""
}

// Extractor turns free incident text into a Draft.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, text string) (*Draft, error)
}

const promptTemplate = `
Extract the answers to the following questions from the text below:

1. What happened?
2. When did it happen?
3. Who was involved?
4. What was the outcome?
5. What are the next steps?

Provide the answers in the following JSON format:

{
  "what_happened": "...",
  "when_happened": "...",
  "who_involved": "...",
  "outcome": "...",
  "next_steps": "..."
}

Text:
"""%s"""
`

// BuildPrompt renders the extraction prompt for text.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}

// ParseDraft decodes a model reply, tolerating a surrounding markdown fence.
func ParseDraft(content string) (*Draft, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var d Draft
	if err := json.Unmarshal([]byte(content), &d); err != nil {
		return nil, fmt.Errorf("failed to parse extraction reply: %w", err)
	}
	if !d.complete() {
		return nil, ErrIncompleteDraft
	}
	return &d, nil
}

// Chain tries each extractor in order and returns the first complete draft.
type Chain struct {
	extractors []Extractor
}

func NewChain(extractors ...Extractor) *Chain {
	return &Chain{extractors: extractors}
}

func (c *Chain) Name() string {
	names := make([]string, len(c.extractors))
	for i, e := range c.extractors {
		names[i] = e.Name()
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

func (c *Chain) Len() int {
	return len(c.extractors)
}

func (c *Chain) Extract(ctx context.Context, text string) (*Draft, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if len(c.extractors) == 0 {
		return nil, ErrNoProviders
	}

	var errs []error
	for _, e := range c.extractors {
		draft, err := e.Extract(ctx, text)
		if err == nil {
			return draft, nil
		}
		slog.Warn("extraction provider failed", "provider", e.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("all extraction providers failed: %w", errors.Join(errs...))
}
