package providers

import (
	"context"

	"github.com/brandlens/visibility-workflows/internal/providers/common"
)

// AIProvider interface for different AI models
type AIProvider interface {
	RunPrompt(ctx context.Context, prompt string) (*common.AIResponse, error)
	GetProviderName() string
}
