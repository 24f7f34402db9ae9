// services/interfaces.go
package services

import (
	"context"

	"github.com/brandlens/visibility-workflows/internal/models"
)

// Classification is the outcome of analyzing one raw response for a brand
type Classification struct {
	Mentioned            bool
	Position             *int // 1-based rank among all recognized names, nil if absent
	Sentiment            models.Sentiment
	CompetitorsMentioned []string
}

// CategorySweep bundles the per-category results of a brand sweep with the
// secondary competitor-mention tallies gathered from the same responses.
// The tallies are an approximate signal and may disagree with the direct
// competitor probes; that is expected.
type CategorySweep struct {
	Results            []*models.CategoryResult
	CompetitorMentions map[string]map[models.Category]int
}

// ProgressFunc receives the partial category results after each category
// completes, in sweep order. Used to drive the wizard's live step indicator.
type ProgressFunc func(completed []*models.CategoryResult)

// ClassifierService detects brand and competitor mentions in raw responses
type ClassifierService interface {
	Classify(responseText, brandName string, competitorNames []string) Classification
}

// MultiModelService fans one prompt out to every configured model
type MultiModelService interface {
	RunPrompt(ctx context.Context, prompt, brand string, competitors []string, modelCfgs []*models.ModelConfig) (*models.MultiModelResponse, error)
}

// CategoryTestService drives the per-category brand sweep
type CategoryTestService interface {
	TestAllCategories(ctx context.Context, profile *models.BrandProfile, promptsByCategory map[models.Category]string, modelCfgs []*models.ModelConfig, onProgress ProgressFunc) (*CategorySweep, error)
}

// CompetitorScoreService probes each competitor once for a comparable score
type CompetitorScoreService interface {
	ScoreCompetitors(ctx context.Context, profile *models.BrandProfile, competitorNames []string, modelCfgs []*models.ModelConfig) ([]*models.CompetitorScore, error)
}

// ReportService assembles the final visibility report
type ReportService interface {
	Build(profile *models.BrandProfile, sweep *CategorySweep, competitorScores []*models.CompetitorScore) *models.VisibilityReport
	EmailPayload(report *models.VisibilityReport, email string) *models.EmailReportPayload
}

// PromptService generates category prompts from a brand profile
type PromptService interface {
	GeneratePrompts(profile *models.BrandProfile) []models.Prompt
	DefaultPrompt(profile *models.BrandProfile, category models.Category) string
}

// BrandAnalyzerService builds a BrandProfile from a website
type BrandAnalyzerService interface {
	AnalyzeBrand(ctx context.Context, brandName, websiteURL string, knownCompetitors []string) (*models.BrandProfile, error)
}

// EmailService delivers a finished report to the reader's inbox
type EmailService interface {
	SendReport(ctx context.Context, payload *models.EmailReportPayload) error
}

// CostService estimates the dollar cost of provider calls
type CostService interface {
	CalculateCost(provider, model string, inputTokens, outputTokens int) float64
}
