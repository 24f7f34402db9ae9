package providers

import (
	"fmt"
	"strings"

	"github.com/brandlens/visibility-workflows/internal/config"
	"github.com/brandlens/visibility-workflows/internal/providers/anthropic"
	"github.com/brandlens/visibility-workflows/internal/providers/common"
	"github.com/brandlens/visibility-workflows/internal/providers/gemini"
	"github.com/brandlens/visibility-workflows/internal/providers/openai"
)

// NewProvider creates the appropriate AI provider based on the model name
func NewProvider(modelName string, cfg *config.Config, costEstimator common.CostEstimator) (AIProvider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	modelLower := strings.ToLower(modelName)

	// OpenAI provider (gpt-4o, gpt-4.1, etc.)
	if strings.Contains(modelLower, "gpt") {
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is empty in config")
		}
		fmt.Printf("[ProviderFactory] Selected OpenAI provider for model: %s\n", modelName)
		return openai.NewProvider(cfg, modelName, costEstimator), nil
	}

	// Anthropic provider
	if strings.Contains(modelLower, "claude") || strings.Contains(modelLower, "sonnet") ||
		strings.Contains(modelLower, "opus") || strings.Contains(modelLower, "haiku") {
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key is empty in config")
		}
		fmt.Printf("[ProviderFactory] Selected Anthropic provider for model: %s\n", modelName)
		return anthropic.NewProvider(cfg, modelName, costEstimator), nil
	}

	// Gemini provider
	if strings.Contains(modelLower, "gemini") {
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("Gemini API key is empty in config")
		}
		fmt.Printf("[ProviderFactory] Selected Gemini provider for model: %s\n", modelName)
		return gemini.NewProvider(cfg, modelName, costEstimator), nil
	}

	return nil, fmt.Errorf("unsupported model: %s", modelName)
}
