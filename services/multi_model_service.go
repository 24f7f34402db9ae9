// services/multi_model_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sourcegraph/conc/pool"

	"github.com/brandlens/visibility-workflows/internal/config"
	"github.com/brandlens/visibility-workflows/internal/models"
	"github.com/brandlens/visibility-workflows/internal/providers"
	"github.com/brandlens/visibility-workflows/internal/providers/common"
)

const previewLength = 300

// ProviderFactory creates an AIProvider for a model name. Swappable in tests.
type ProviderFactory func(modelName string, cfg *config.Config, costEstimator common.CostEstimator) (providers.AIProvider, error)

type multiModelService struct {
	cfg         *config.Config
	classifier  ClassifierService
	costService CostService
	newProvider ProviderFactory

	mu            sync.Mutex
	providerCache map[string]providers.AIProvider
}

func NewMultiModelService(cfg *config.Config, classifier ClassifierService, costService CostService) MultiModelService {
	return NewMultiModelServiceWithFactory(cfg, classifier, costService, providers.NewProvider)
}

// NewMultiModelServiceWithFactory injects the provider factory, used by tests
// to substitute mock providers.
func NewMultiModelServiceWithFactory(cfg *config.Config, classifier ClassifierService, costService CostService, factory ProviderFactory) MultiModelService {
	return &multiModelService{
		cfg:           cfg,
		classifier:    classifier,
		costService:   costService,
		newProvider:   factory,
		providerCache: make(map[string]providers.AIProvider),
	}
}

// RunPrompt fans the prompt out to every configured model concurrently and
// aggregates the classified results. Results keep the configured model order
// regardless of which provider responds first. A failed or timed-out probe
// still counts as tested: it is recorded as a non-mention so that scores stay
// comparable across runs.
func (s *multiModelService) RunPrompt(ctx context.Context, prompt, brand string, competitors []string, modelCfgs []*models.ModelConfig) (*models.MultiModelResponse, error) {
	fmt.Printf("[MultiModelRunner] Testing prompt across %d models for brand %s\n", len(modelCfgs), brand)

	results := make([]*models.ModelResult, len(modelCfgs))

	p := pool.New().WithMaxGoroutines(len(modelCfgs) + 1)
	for i, modelCfg := range modelCfgs {
		i, modelCfg := i, modelCfg
		p.Go(func() {
			results[i] = s.probeModel(ctx, prompt, brand, competitors, modelCfg)
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	response := &models.MultiModelResponse{
		Prompt:       prompt,
		Brand:        brand,
		ModelsTested: len(results),
		Results:      results,
		Summary:      map[string]models.ProviderStats{},
	}

	for _, result := range results {
		stats := response.Summary[result.Provider]
		stats.Tested++
		if result.BrandMentioned {
			stats.Mentioned++
			response.ModelsMentioning++
		}
		response.Summary[result.Provider] = stats
		response.TotalCost += result.Cost
	}

	if response.ModelsTested > 0 {
		response.MentionRate = 100 * float64(response.ModelsMentioning) / float64(response.ModelsTested)
	}

	fmt.Printf("[MultiModelRunner] %d/%d models mentioned %s (%.0f%%)\n",
		response.ModelsMentioning, response.ModelsTested, brand, response.MentionRate)
	return response, nil
}

func (s *multiModelService) probeModel(ctx context.Context, prompt, brand string, competitors []string, modelCfg *models.ModelConfig) *models.ModelResult {
	provider, err := s.getProvider(modelCfg)
	if err != nil {
		fmt.Printf("[MultiModelRunner] No provider for model %s: %v\n", modelCfg.ID, err)
		return s.failureResult(modelCfg, "[Model unavailable]")
	}

	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout())
	defer cancel()

	aiResponse, err := provider.RunPrompt(probeCtx, prompt)
	if err != nil {
		fmt.Printf("[MultiModelRunner] Probe failed for model %s: %v\n", modelCfg.ID, err)
		return s.failureResult(modelCfg, fmt.Sprintf("[Error: %s]", truncate(err.Error(), 50)))
	}
	if aiResponse == nil || aiResponse.Response == "" {
		return s.failureResult(modelCfg, "[Model unavailable]")
	}

	classification := s.classifier.Classify(aiResponse.Response, brand, competitors)

	fmt.Printf("[MultiModelRunner] Model %s responded (%d tokens in, %d out, Cost: $%.6f)\n",
		modelCfg.ID, aiResponse.InputTokens, aiResponse.OutputTokens, aiResponse.Cost)

	return &models.ModelResult{
		ModelID:              modelCfg.ID,
		ModelName:            modelCfg.Name,
		Provider:             providerName(modelCfg, provider),
		BrandMentioned:       classification.Mentioned,
		Position:             classification.Position,
		Sentiment:            classification.Sentiment,
		CompetitorsMentioned: classification.CompetitorsMentioned,
		ResponsePreview:      preview(aiResponse.Response),
		FullResponse:         aiResponse.Response,
		Cost:                 aiResponse.Cost,
	}
}

// failureResult is the conservative non-mention record for a failed probe
func (s *multiModelService) failureResult(modelCfg *models.ModelConfig, note string) *models.ModelResult {
	return &models.ModelResult{
		ModelID:              modelCfg.ID,
		ModelName:            modelCfg.Name,
		Provider:             providerName(modelCfg, nil),
		BrandMentioned:       false,
		Sentiment:            models.SentimentNeutral,
		CompetitorsMentioned: []string{},
		ResponsePreview:      note,
	}
}

func (s *multiModelService) getProvider(modelCfg *models.ModelConfig) (providers.AIProvider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if provider, ok := s.providerCache[modelCfg.Model]; ok {
		return provider, nil
	}

	provider, err := s.newProvider(modelCfg.Model, s.cfg, s.costService)
	if err != nil {
		return nil, err
	}

	s.providerCache[modelCfg.Model] = provider
	return provider, nil
}

func (s *multiModelService) probeTimeout() time.Duration {
	seconds := s.cfg.ProbeTimeoutSeconds
	if seconds <= 0 {
		seconds = 30
	}
	return time.Duration(seconds) * time.Second
}

func providerName(modelCfg *models.ModelConfig, provider providers.AIProvider) string {
	if modelCfg.Provider != "" {
		return modelCfg.Provider
	}
	if provider != nil {
		return provider.GetProviderName()
	}
	return "unknown"
}

// preview trims the response for display, backing up to a rune boundary so
// the cut never leaves invalid UTF-8.
func preview(response string) string {
	if len(response) <= previewLength {
		return response
	}
	cut := previewLength
	for cut > 0 && !utf8.RuneStart(response[cut]) {
		cut--
	}
	return response[:cut] + "..."
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// RoundScore converts a mention rate percentage to a 0-100 integer score
func RoundScore(rate float64) int {
	return int(math.Round(rate))
}
