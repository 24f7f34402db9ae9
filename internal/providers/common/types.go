package common

// AIResponse contains the response from an AI provider
// Defined here to avoid import cycles
type AIResponse struct {
	Response     string
	InputTokens  int
	OutputTokens int
	Cost         float64
}

// CostEstimator prices a single provider call. Implemented by
// services.CostService; defined here so providers do not import services.
type CostEstimator interface {
	CalculateCost(provider, model string, inputTokens, outputTokens int) float64
}
