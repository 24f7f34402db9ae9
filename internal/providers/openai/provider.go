package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/brandlens/visibility-workflows/internal/config"
	"github.com/brandlens/visibility-workflows/internal/providers/common"
)

const systemPrompt = "You are a helpful assistant providing recommendations and information. Be specific and mention relevant brands, products, or companies when appropriate."

type provider struct {
	client        *openaisdk.Client
	model         string
	costEstimator common.CostEstimator
}

// NewProvider creates an OpenAI-backed provider for the given model
func NewProvider(cfg *config.Config, model string, costEstimator common.CostEstimator) *provider {
	client := openaisdk.NewClient(
		option.WithAPIKey(cfg.OpenAIAPIKey),
	)

	return &provider{
		client:        &client,
		model:         model,
		costEstimator: costEstimator,
	}
}

func (p *provider) GetProviderName() string {
	return "openai"
}

// promptResponse is the structured output shape requested from the model
type promptResponse struct {
	Answer    string   `json:"answer" jsonschema_description:"The comprehensive answer to the question"`
	KeyPoints []string `json:"key_points" jsonschema_description:"3-5 key points from the answer"`
}

// Generate the JSON schema at initialization time
var promptResponseSchema = generateSchema[promptResponse]()

func generateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

func (p *provider) RunPrompt(ctx context.Context, prompt string) (*common.AIResponse, error) {
	schemaParam := openaisdk.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "prompt_response",
		Description: openaisdk.String("Structured response to the question"),
		Schema:      promptResponseSchema,
		Strict:      openaisdk.Bool(true),
	}

	response, err := p.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(systemPrompt),
			openaisdk.UserMessage(prompt),
		},
		Model: openaisdk.ChatModel(p.model),
		ResponseFormat: openaisdk.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openaisdk.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Temperature: openaisdk.Float(0.7),
		MaxTokens:   openaisdk.Int(1000),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned")
	}

	// Flatten the structured response back to plain text for classification
	responseContent := response.Choices[0].Message.Content
	var structuredResp promptResponse
	if err := json.Unmarshal([]byte(responseContent), &structuredResp); err == nil {
		responseContent = structuredResp.Answer
		if len(structuredResp.KeyPoints) > 0 {
			responseContent += "\n\nKey Points:\n"
			for _, point := range structuredResp.KeyPoints {
				responseContent += fmt.Sprintf("- %s\n", point)
			}
		}
	}

	inputTokens := int(response.Usage.PromptTokens)
	outputTokens := int(response.Usage.CompletionTokens)

	return &common.AIResponse{
		Response:     responseContent,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Cost:         p.costEstimator.CalculateCost(p.GetProviderName(), p.model, inputTokens, outputTokens),
	}, nil
}
