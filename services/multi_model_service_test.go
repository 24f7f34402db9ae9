package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/brandlens/visibility-workflows/internal/config"
	"github.com/brandlens/visibility-workflows/internal/models"
	"github.com/brandlens/visibility-workflows/internal/providers"
	"github.com/brandlens/visibility-workflows/internal/providers/common"
	"github.com/brandlens/visibility-workflows/internal/providers/testutil"
	"github.com/brandlens/visibility-workflows/services"
)

const mockProbeCost = 0.002

// mockFactory builds a ProviderFactory whose providers reply from a canned
// response table keyed by model name. Missing models fail at probe time.
func mockFactory(responses map[string]string, failures map[string]error) services.ProviderFactory {
	return func(modelName string, cfg *config.Config, costEstimator common.CostEstimator) (providers.AIProvider, error) {
		return &testutil.MockProvider{
			Name: modelName,
			RunPromptFunc: func(ctx context.Context, prompt string) (*common.AIResponse, error) {
				if err, ok := failures[modelName]; ok {
					return nil, err
				}
				return &common.AIResponse{Response: responses[modelName], Cost: mockProbeCost}, nil
			},
		}, nil
	}
}

func newTestMultiModel(factory services.ProviderFactory) services.MultiModelService {
	cfg := testutil.SampleConfig()
	return services.NewMultiModelServiceWithFactory(
		cfg,
		services.NewClassifierService(),
		services.NewCostService(),
		factory,
	)
}

func testModelConfigs() []*models.ModelConfig {
	return services.ResolveModels([]string{"gpt-4o", "claude-3-haiku-20240307", "gemini-2.0-flash"})
}

func TestRunPromptAggregation(t *testing.T) {
	tests := []struct {
		name             string
		responses        map[string]string
		failures         map[string]error
		expectTested     int
		expectMentioning int
		expectRate       float64
	}{
		{
			name: "all models mention the brand",
			responses: map[string]string{
				"gpt-4o":                   testutil.SampleResponses["brand_first"],
				"claude-3-haiku-20240307":  testutil.SampleResponses["brand_last"],
				"gemini-2.0-flash":         testutil.SampleResponses["brand_first"],
			},
			expectTested:     3,
			expectMentioning: 3,
			expectRate:       100,
		},
		{
			name: "one model omits the brand",
			responses: map[string]string{
				"gpt-4o":                   testutil.SampleResponses["brand_first"],
				"claude-3-haiku-20240307":  testutil.SampleResponses["no_brand"],
				"gemini-2.0-flash":         testutil.SampleResponses["brand_last"],
			},
			expectTested:     3,
			expectMentioning: 2,
			expectRate:       100 * 2.0 / 3.0,
		},
		{
			name: "failed probe still counts as tested",
			responses: map[string]string{
				"gpt-4o":           testutil.SampleResponses["brand_first"],
				"gemini-2.0-flash": testutil.SampleResponses["brand_first"],
			},
			failures: map[string]error{
				"claude-3-haiku-20240307": fmt.Errorf("rate limited"),
			},
			expectTested:     3,
			expectMentioning: 2,
			expectRate:       100 * 2.0 / 3.0,
		},
		{
			name: "all probes fail",
			failures: map[string]error{
				"gpt-4o":                  fmt.Errorf("rate limited"),
				"claude-3-haiku-20240307": fmt.Errorf("rate limited"),
				"gemini-2.0-flash":        fmt.Errorf("rate limited"),
			},
			expectTested:     3,
			expectMentioning: 0,
			expectRate:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestMultiModel(mockFactory(tt.responses, tt.failures))

			response, err := svc.RunPrompt(context.Background(), "What widgets do you recommend?", "Acme Widgets", []string{"Globex", "Initech"}, testModelConfigs())
			if err != nil {
				t.Fatalf("RunPrompt() unexpected error: %v", err)
			}

			if response.ModelsTested != tt.expectTested {
				t.Errorf("ModelsTested = %d, want %d", response.ModelsTested, tt.expectTested)
			}
			if response.ModelsMentioning != tt.expectMentioning {
				t.Errorf("ModelsMentioning = %d, want %d", response.ModelsMentioning, tt.expectMentioning)
			}
			if diff := response.MentionRate - tt.expectRate; diff > 0.001 || diff < -0.001 {
				t.Errorf("MentionRate = %f, want %f", response.MentionRate, tt.expectRate)
			}
			if response.ModelsMentioning > response.ModelsTested {
				t.Errorf("ModelsMentioning %d exceeds ModelsTested %d", response.ModelsMentioning, response.ModelsTested)
			}
		})
	}
}

func TestRunPromptPreservesModelOrder(t *testing.T) {
	responses := map[string]string{
		"gpt-4o":                  testutil.SampleResponses["brand_first"],
		"claude-3-haiku-20240307": testutil.SampleResponses["brand_last"],
		"gemini-2.0-flash":        testutil.SampleResponses["no_brand"],
	}
	svc := newTestMultiModel(mockFactory(responses, nil))

	response, err := svc.RunPrompt(context.Background(), "prompt", "Acme Widgets", nil, testModelConfigs())
	if err != nil {
		t.Fatalf("RunPrompt() unexpected error: %v", err)
	}

	gotIDs := make([]string, 0, len(response.Results))
	for _, result := range response.Results {
		gotIDs = append(gotIDs, result.ModelID)
	}
	want := []string{"gpt-4o", "claude-haiku", "gemini-flash"}
	if strings.Join(gotIDs, ",") != strings.Join(want, ",") {
		t.Errorf("result order = %v, want %v", gotIDs, want)
	}
}

func TestRunPromptFailureResult(t *testing.T) {
	failures := map[string]error{
		"gpt-4o":                  fmt.Errorf("connection reset"),
		"claude-3-haiku-20240307": fmt.Errorf("connection reset"),
		"gemini-2.0-flash":        fmt.Errorf("connection reset"),
	}
	svc := newTestMultiModel(mockFactory(nil, failures))

	response, err := svc.RunPrompt(context.Background(), "prompt", "Acme Widgets", nil, testModelConfigs())
	if err != nil {
		t.Fatalf("RunPrompt() unexpected error: %v", err)
	}

	for _, result := range response.Results {
		if result.BrandMentioned {
			t.Errorf("failed probe for %s marked as mention", result.ModelID)
		}
		if result.Sentiment != models.SentimentNeutral {
			t.Errorf("failed probe for %s sentiment = %s, want neutral", result.ModelID, result.Sentiment)
		}
		if !strings.HasPrefix(result.ResponsePreview, "[Error:") {
			t.Errorf("failed probe for %s preview = %q, want error marker", result.ModelID, result.ResponsePreview)
		}
	}
}

func TestRunPromptSummaryByProvider(t *testing.T) {
	responses := map[string]string{
		"gpt-4o":                  testutil.SampleResponses["brand_first"],
		"claude-3-haiku-20240307": testutil.SampleResponses["no_brand"],
		"gemini-2.0-flash":        testutil.SampleResponses["brand_last"],
	}
	svc := newTestMultiModel(mockFactory(responses, nil))

	response, err := svc.RunPrompt(context.Background(), "prompt", "Acme Widgets", nil, testModelConfigs())
	if err != nil {
		t.Fatalf("RunPrompt() unexpected error: %v", err)
	}

	want := map[string]models.ProviderStats{
		"openai":    {Tested: 1, Mentioned: 1},
		"anthropic": {Tested: 1, Mentioned: 0},
		"gemini":    {Tested: 1, Mentioned: 1},
	}
	for provider, stats := range want {
		got := response.Summary[provider]
		if got != stats {
			t.Errorf("Summary[%s] = %+v, want %+v", provider, got, stats)
		}
	}
}

func TestRunPromptCostAccounting(t *testing.T) {
	responses := map[string]string{
		"gpt-4o":           testutil.SampleResponses["brand_first"],
		"gemini-2.0-flash": testutil.SampleResponses["no_brand"],
	}
	failures := map[string]error{
		"claude-3-haiku-20240307": fmt.Errorf("rate limited"),
	}
	svc := newTestMultiModel(mockFactory(responses, failures))

	response, err := svc.RunPrompt(context.Background(), "prompt", "Acme Widgets", nil, testModelConfigs())
	if err != nil {
		t.Fatalf("RunPrompt() unexpected error: %v", err)
	}

	// Only the two successful probes incur cost
	wantTotal := 2 * mockProbeCost
	if diff := response.TotalCost - wantTotal; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("TotalCost = %f, want %f", response.TotalCost, wantTotal)
	}
	for _, result := range response.Results {
		if result.ModelID == "claude-haiku" {
			if result.Cost != 0 {
				t.Errorf("failed probe cost = %f, want 0", result.Cost)
			}
			continue
		}
		if result.Cost != mockProbeCost {
			t.Errorf("%s cost = %f, want %f", result.ModelID, result.Cost, mockProbeCost)
		}
	}
}

func TestRunPromptTimeoutCountsAsTested(t *testing.T) {
	factory := func(modelName string, cfg *config.Config, costEstimator common.CostEstimator) (providers.AIProvider, error) {
		return &testutil.MockProvider{
			Name: modelName,
			RunPromptFunc: func(ctx context.Context, prompt string) (*common.AIResponse, error) {
				// Block until the per-probe deadline fires
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}, nil
	}

	cfg := testutil.SampleConfig()
	cfg.ProbeTimeoutSeconds = 1
	svc := services.NewMultiModelServiceWithFactory(cfg, services.NewClassifierService(), services.NewCostService(), factory)

	response, err := svc.RunPrompt(context.Background(), "prompt", "Acme Widgets", nil, testModelConfigs())
	if err != nil {
		t.Fatalf("RunPrompt() unexpected error: %v", err)
	}

	if response.ModelsTested != 3 {
		t.Errorf("ModelsTested = %d, want 3 with every probe timing out", response.ModelsTested)
	}
	if response.ModelsMentioning != 0 {
		t.Errorf("ModelsMentioning = %d, want 0", response.ModelsMentioning)
	}
	for _, result := range response.Results {
		if result.BrandMentioned {
			t.Errorf("timed-out probe for %s marked as mention", result.ModelID)
		}
		if !strings.HasPrefix(result.ResponsePreview, "[Error:") {
			t.Errorf("timed-out probe for %s preview = %q, want error marker", result.ModelID, result.ResponsePreview)
		}
	}
}

func TestRunPromptPreviewKeepsValidUTF8(t *testing.T) {
	// A multibyte rune straddles the 300-byte preview cut
	long := strings.Repeat("a", 299) + strings.Repeat("日本語の回答", 30)
	responses := map[string]string{
		"gpt-4o":                  long,
		"claude-3-haiku-20240307": long,
		"gemini-2.0-flash":        long,
	}
	svc := newTestMultiModel(mockFactory(responses, nil))

	response, err := svc.RunPrompt(context.Background(), "prompt", "Acme Widgets", nil, testModelConfigs())
	if err != nil {
		t.Fatalf("RunPrompt() unexpected error: %v", err)
	}

	for _, result := range response.Results {
		if !utf8.ValidString(result.ResponsePreview) {
			t.Errorf("preview for %s is not valid UTF-8: %q", result.ModelID, result.ResponsePreview)
		}
		if !strings.HasSuffix(result.ResponsePreview, "...") {
			t.Errorf("preview for %s = %q, want truncation marker", result.ModelID, result.ResponsePreview)
		}
		if len(result.ResponsePreview) > 303 {
			t.Errorf("preview for %s is %d bytes, want at most 303", result.ModelID, len(result.ResponsePreview))
		}
	}
}

func TestRunPromptNoModels(t *testing.T) {
	svc := newTestMultiModel(mockFactory(nil, nil))

	response, err := svc.RunPrompt(context.Background(), "prompt", "Acme Widgets", nil, nil)
	if err != nil {
		t.Fatalf("RunPrompt() unexpected error: %v", err)
	}

	if response.ModelsTested != 0 {
		t.Errorf("ModelsTested = %d, want 0", response.ModelsTested)
	}
	if response.MentionRate != 0 {
		t.Errorf("MentionRate = %f, want 0 when no models tested", response.MentionRate)
	}
}

func TestRunPromptCancelledContext(t *testing.T) {
	svc := newTestMultiModel(mockFactory(nil, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.RunPrompt(ctx, "prompt", "Acme Widgets", nil, testModelConfigs()); err == nil {
		t.Error("RunPrompt() with cancelled context returned nil error")
	}
}

func TestRoundScore(t *testing.T) {
	tests := []struct {
		rate   float64
		expect int
	}{
		{0, 0},
		{100 * 2.0 / 3.0, 67},
		{100 * 1.0 / 3.0, 33},
		{50, 50},
		{100, 100},
	}
	for _, tt := range tests {
		if got := services.RoundScore(tt.rate); got != tt.expect {
			t.Errorf("RoundScore(%f) = %d, want %d", tt.rate, got, tt.expect)
		}
	}
}
