package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/brandlens/visibility-workflows/internal/config"
	"github.com/brandlens/visibility-workflows/internal/providers/common"
)

const systemPrompt = "You are a helpful assistant providing recommendations and information. Be specific and mention relevant brands, products, or companies when appropriate."

type provider struct {
	apiKey        string
	model         string
	costEstimator common.CostEstimator

	mu     sync.Mutex
	client *genai.Client
}

// NewProvider creates a Gemini-backed provider for the given model.
// The genai client needs a context, so it is created lazily on first use.
func NewProvider(cfg *config.Config, model string, costEstimator common.CostEstimator) *provider {
	return &provider{
		apiKey:        cfg.GeminiAPIKey,
		model:         model,
		costEstimator: costEstimator,
	}
}

func (p *provider) GetProviderName() string {
	return "gemini"
}

func (p *provider) getClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	p.client = client
	return client, nil
}

func (p *provider) RunPrompt(ctx context.Context, prompt string) (*common.AIResponse, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}

	temperature := float32(0.7)
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 1000,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, p.model, []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}, genConfig)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	text := extractResponseText(resp)
	if text == "" {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	inputTokens, outputTokens := 0, 0
	if resp.UsageMetadata != nil {
		inputTokens = int(resp.UsageMetadata.PromptTokenCount)
		outputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return &common.AIResponse{
		Response:     text,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Cost:         p.costEstimator.CalculateCost(p.GetProviderName(), p.model, inputTokens, outputTokens),
	}, nil
}

func extractResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	return strings.Join(texts, "")
}
