// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
)

// EmailConfig holds the delivery endpoint for outbound report emails
type EmailConfig struct {
	DeliveryURL string
	FromAddress string
}

type Config struct {
	Port              string
	Environment       string
	InngestEventKey   string
	InngestSigningKey string
	OpenAIAPIKey      string
	AnthropicAPIKey   string
	GeminiAPIKey      string

	// Models tested per prompt, in fixed report order
	DefaultModels []string

	// Per-probe timeout in seconds; expiry counts as a non-mention
	ProbeTimeoutSeconds int

	Email EmailConfig
}

func Load() *Config {
	config := &Config{
		Port:                getEnv("PORT", "8000"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		InngestEventKey:     os.Getenv("INNGEST_EVENT_KEY"),
		InngestSigningKey:   os.Getenv("INNGEST_SIGNING_KEY"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:     os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		DefaultModels:       getEnvList("DEFAULT_MODELS", defaultModels),
		ProbeTimeoutSeconds: getEnvInt("PROBE_TIMEOUT_SECONDS", 30),
	}

	config.Email = EmailConfig{
		DeliveryURL: os.Getenv("EMAIL_DELIVERY_URL"),
		FromAddress: getEnv("EMAIL_FROM_ADDRESS", "reports@brandlens.ai"),
	}

	return config
}

// defaultModels is the fixed model list used when DEFAULT_MODELS is unset.
// Order matters: report rendering follows this order.
var defaultModels = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"claude-sonnet-4-20250514",
	"claude-3-haiku-20240307",
	"gemini-2.0-flash",
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var models []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			models = append(models, trimmed)
		}
	}
	if len(models) == 0 {
		return defaultValue
	}
	return models
}
