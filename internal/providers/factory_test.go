package providers_test

import (
	"testing"

	"github.com/brandlens/visibility-workflows/internal/config"
	"github.com/brandlens/visibility-workflows/internal/providers"
	"github.com/brandlens/visibility-workflows/internal/providers/testutil"
)

func TestFactoryCreatesCorrectProvider(t *testing.T) {
	tests := []struct {
		modelName        string
		expectedProvider string
		shouldError      bool
	}{
		{"gpt-4o", "openai", false},
		{"gpt-4o-mini", "openai", false},
		{"GPT-4.1", "openai", false},
		{"claude-sonnet-4-20250514", "anthropic", false},
		{"claude-3-haiku-20240307", "anthropic", false},
		{"CLAUDE-OPUS", "anthropic", false},
		{"gemini-2.0-flash", "gemini", false},
		{"Gemini-1.5-Pro", "gemini", false},
		{"unsupported-model", "", true},
		{"", "", true},
	}

	cfg := testutil.SampleConfig()
	costEstimator := testutil.NewMockCostEstimator()

	for _, tt := range tests {
		t.Run(tt.modelName, func(t *testing.T) {
			provider, err := providers.NewProvider(tt.modelName, cfg, costEstimator)

			if tt.shouldError {
				if err == nil {
					t.Errorf("Expected error for model %s, but got none", tt.modelName)
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error for model %s: %v", tt.modelName, err)
				return
			}

			if provider == nil {
				t.Errorf("Provider is nil for model %s", tt.modelName)
				return
			}

			if provider.GetProviderName() != tt.expectedProvider {
				t.Errorf("Expected provider %s, got %s", tt.expectedProvider, provider.GetProviderName())
			}
		})
	}
}

func TestFactoryRequiresAPIKeys(t *testing.T) {
	tests := []struct {
		name      string
		modelName string
		cfg       *config.Config
	}{
		{"openai without key", "gpt-4o", &config.Config{AnthropicAPIKey: "x", GeminiAPIKey: "x"}},
		{"anthropic without key", "claude-3-haiku-20240307", &config.Config{OpenAIAPIKey: "x", GeminiAPIKey: "x"}},
		{"gemini without key", "gemini-2.0-flash", &config.Config{OpenAIAPIKey: "x", AnthropicAPIKey: "x"}},
	}

	costEstimator := testutil.NewMockCostEstimator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := providers.NewProvider(tt.modelName, tt.cfg, costEstimator); err == nil {
				t.Errorf("Expected error for %s with missing key, got none", tt.modelName)
			}
		})
	}
}

func TestFactoryWithNilConfig(t *testing.T) {
	costEstimator := testutil.NewMockCostEstimator()

	// Must not panic
	if _, err := providers.NewProvider("gpt-4o", nil, costEstimator); err == nil {
		t.Error("Expected error for nil config, got none")
	}
}
