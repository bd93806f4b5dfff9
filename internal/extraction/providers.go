package extraction

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/config"
)

// FromConfig builds the provider chain in cfg.ExtractorOrder, skipping providers
// without credentials.
func FromConfig(ctx context.Context, cfg *config.Config) *Chain {
	var extractors []Extractor
	for _, name := range cfg.ExtractorOrder {
		switch name {
		case "glm":
			if cfg.GLMAPIKey != "" {
				extractors = append(extractors, NewChatExtractor("glm", cfg.GLMAPIURL, cfg.GLMAPIKey, cfg.GLMModel, cfg.AITimeout))
			}
		case "deepseek":
			if cfg.DeepSeekAPIKey != "" {
				extractors = append(extractors, NewChatExtractor("deepseek", cfg.DeepSeekAPIURL, cfg.DeepSeekAPIKey, cfg.DeepSeekModel, cfg.AITimeout))
			}
		case "openai":
			if cfg.OpenAIAPIKey != "" {
				extractors = append(extractors, NewChatExtractor("openai", cfg.OpenAIAPIURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AITimeout))
			}
		case "gemini":
			if cfg.GeminiAPIKey == "" {
				continue
			}
			g, err := NewGenAIExtractor(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, "")
			if err != nil {
				slog.Error("gemini extractor unavailable", "error", err)
				continue
			}
			extractors = append(extractors, g)
		default:
			slog.Warn("unknown extractor in EXTRACTOR_ORDER", "name", name)
		}
	}
	return NewChain(extractors...)
}
