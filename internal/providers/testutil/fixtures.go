package testutil

import (
	"github.com/brandlens/visibility-workflows/internal/config"
)

// SampleConfig returns a config populated with test credentials
func SampleConfig() *config.Config {
	return &config.Config{
		Port:                "8000",
		Environment:         "test",
		OpenAIAPIKey:        "test-openai-key",
		AnthropicAPIKey:     "test-anthropic-key",
		GeminiAPIKey:        "test-gemini-key",
		DefaultModels:       []string{"gpt-4o", "claude-3-haiku-20240307", "gemini-2.0-flash"},
		ProbeTimeoutSeconds: 5,
	}
}

// SampleResponses are canned provider outputs keyed by scenario
var SampleResponses = map[string]string{
	"brand_first": "Acme Widgets is the top choice for most teams. Globex and Initech are solid alternatives worth a look.",
	"brand_last":  "Globex leads the market, with Initech close behind. Acme Widgets rounds out the list.",
	"no_brand":    "Globex and Initech dominate this space. Most buyers pick between the two.",
	"negative":    "Acme Widgets has received complaints about poor support and is considered expensive by many users.",
}
