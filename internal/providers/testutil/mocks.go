package testutil

import (
	"context"

	"github.com/brandlens/visibility-workflows/internal/providers/common"
)

// MockCostEstimator is a mock implementation of common.CostEstimator for testing
type MockCostEstimator struct {
	CalculateCostFunc func(provider, model string, inputTokens, outputTokens int) float64
}

func (m *MockCostEstimator) CalculateCost(provider, model string, inputTokens, outputTokens int) float64 {
	if m.CalculateCostFunc != nil {
		return m.CalculateCostFunc(provider, model, inputTokens, outputTokens)
	}
	return 0.0015 // Default mock cost
}

// NewMockCostEstimator creates a new mock cost estimator
func NewMockCostEstimator() *MockCostEstimator {
	return &MockCostEstimator{}
}

// MockProvider is a configurable AIProvider for testing
type MockProvider struct {
	Name          string
	RunPromptFunc func(ctx context.Context, prompt string) (*common.AIResponse, error)
}

func (m *MockProvider) GetProviderName() string {
	if m.Name != "" {
		return m.Name
	}
	return "mock"
}

func (m *MockProvider) RunPrompt(ctx context.Context, prompt string) (*common.AIResponse, error) {
	if m.RunPromptFunc != nil {
		return m.RunPromptFunc(ctx, prompt)
	}
	return &common.AIResponse{Response: "mock response"}, nil
}
