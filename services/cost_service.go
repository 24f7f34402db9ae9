// services/cost_service.go
package services

type costService struct{}

func NewCostService() CostService {
	return &costService{}
}

// Cost per 1M tokens
var costPerToken = map[string]struct{ input, output float64 }{
	"gpt-4o":                   {input: 2.50, output: 10.00},
	"gpt-4o-mini":              {input: 0.15, output: 0.60},
	"gpt-4.1":                  {input: 3.00, output: 12.00},
	"gpt-4.1-mini":             {input: 0.80, output: 3.20},
	"claude-sonnet-4-20250514": {input: 3.00, output: 15.00},
	"claude-3-haiku-20240307":  {input: 0.25, output: 1.25},
	"gemini-1.5-pro":           {input: 1.25, output: 5.00},
	"gemini-2.0-flash":         {input: 0.10, output: 0.40},
}

func (s *costService) CalculateCost(provider string, model string, inputTokens int, outputTokens int) float64 {
	modelCosts, exists := costPerToken[model]
	if !exists {
		// Default to GPT-4o costs if model not found
		modelCosts = costPerToken["gpt-4o"]
	}

	inputCost := (float64(inputTokens) / 1_000_000.0) * modelCosts.input
	outputCost := (float64(outputTokens) / 1_000_000.0) * modelCosts.output

	return inputCost + outputCost
}
