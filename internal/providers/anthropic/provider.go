package anthropic

import (
	"context"
	"fmt"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/brandlens/visibility-workflows/internal/config"
	"github.com/brandlens/visibility-workflows/internal/providers/common"
)

const systemPrompt = "You are a helpful assistant providing recommendations and information. Be specific and mention relevant brands, products, or companies when appropriate."

type provider struct {
	client        *anthropicsdk.Client
	model         string
	costEstimator common.CostEstimator
}

// NewProvider creates an Anthropic-backed provider for the given model
func NewProvider(cfg *config.Config, model string, costEstimator common.CostEstimator) *provider {
	client := anthropicsdk.NewClient(
		option.WithAPIKey(cfg.AnthropicAPIKey),
	)

	return &provider{
		client:        &client,
		model:         model,
		costEstimator: costEstimator,
	}
}

func (p *provider) GetProviderName() string {
	return "anthropic"
}

func (p *provider) RunPrompt(ctx context.Context, prompt string) (*common.AIResponse, error) {
	messages := []anthropicsdk.MessageParam{{
		Content: []anthropicsdk.ContentBlockParamUnion{{
			OfText: &anthropicsdk.TextBlockParam{Text: prompt},
		}},
		Role: anthropicsdk.MessageParamRoleUser,
	}}

	response, err := p.client.Messages.New(ctx, anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(p.model),
		MaxTokens: 1000,
		System: []anthropicsdk.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages:    messages,
		Temperature: anthropicsdk.Float(0.7),
	})
	if err != nil {
		return nil, fmt.Errorf("message request failed: %w", err)
	}

	fullResponse := extractResponseText(*response)
	if fullResponse == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	inputTokens := int(response.Usage.InputTokens)
	outputTokens := int(response.Usage.OutputTokens)

	return &common.AIResponse{
		Response:     fullResponse,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Cost:         p.costEstimator.CalculateCost(p.GetProviderName(), p.model, inputTokens, outputTokens),
	}, nil
}

func extractResponseText(response anthropicsdk.Message) string {
	var textParts []string

	for _, block := range response.Content {
		switch variant := block.AsAny().(type) {
		case anthropicsdk.TextBlock:
			textParts = append(textParts, variant.Text)
		}
	}

	return strings.Join(textParts, "")
}
