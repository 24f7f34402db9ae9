// internal/models/models.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category identifies one of the fixed query intents tested per brand
type Category string

const (
	CategoryRecommendation  Category = "recommendation"
	CategoryBestOf          Category = "best_of"
	CategoryComparison      Category = "comparison"
	CategoryProblemSolution Category = "problem_solution"
	CategoryReputation      Category = "reputation"
)

// TestCategories is the fixed category sweep order. Reports and partial
// progress both follow this order.
var TestCategories = []Category{
	CategoryRecommendation,
	CategoryBestOf,
	CategoryComparison,
	CategoryProblemSolution,
	CategoryReputation,
}

var categoryLabels = map[Category]string{
	CategoryRecommendation:  "Recommendations",
	CategoryBestOf:          "Best-of Lists",
	CategoryComparison:      "Comparisons",
	CategoryProblemSolution: "Problem Solving",
	CategoryReputation:      "Reputation",
}

// Label returns the human-readable category name shown in reports
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Sentiment expressed toward a brand in a model response
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// CategoryStatus is the qualitative band for a category score
type CategoryStatus string

const (
	StatusStrong   CategoryStatus = "strong"
	StatusModerate CategoryStatus = "moderate"
	StatusWeak     CategoryStatus = "weak"
)

// Prompt is one literal query for one category. Immutable once built;
// regenerated whenever the profile's industry or competitor list changes.
type Prompt struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// CompetitorInfo describes one detected or user-added competitor
type CompetitorInfo struct {
	Name         string  `json:"name"`
	Reason       string  `json:"reason,omitempty"`
	WebsiteURL   *string `json:"website_url,omitempty"`
	AutoDetected bool    `json:"auto_detected"`
}

// BrandProfile is the analyzed brand context that drives prompt generation.
// Competitor order is significant: the leading entries are the ones selected
// for testing, and moving a competitor to index 0 prioritizes it.
type BrandProfile struct {
	BrandName        string           `json:"brand_name"`
	WebsiteURL       string           `json:"website_url"`
	Industry         string           `json:"industry"`
	IsLocal          bool             `json:"is_local"`
	City             *string          `json:"city,omitempty"`
	Region           *string          `json:"region,omitempty"`
	Country          *string          `json:"country,omitempty"`
	ProductsServices []string         `json:"products_services"`
	ValueProposition string           `json:"value_proposition"`
	TargetAudience   string           `json:"target_audience"`
	Competitors      []CompetitorInfo `json:"competitors"`
	AnalyzedAt       time.Time        `json:"analyzed_at"`
}

// CompetitorNames returns competitor names in selection order
func (p *BrandProfile) CompetitorNames() []string {
	names := make([]string, 0, len(p.Competitors))
	for _, c := range p.Competitors {
		names = append(names, c.Name)
	}
	return names
}

// ModelConfig identifies one AI model to probe
type ModelConfig struct {
	ID       string `json:"id"`       // e.g. "gpt-4o", "claude-sonnet"
	Name     string `json:"name"`     // display name, e.g. "GPT-4o"
	Provider string `json:"provider"` // openai, anthropic, gemini
	Model    string `json:"model"`    // provider-side model identifier
}

// ModelResult is one provider's classified response to one prompt.
// Produced exactly once per (prompt, model) pair and never mutated.
type ModelResult struct {
	ModelID              string    `json:"model_id"`
	ModelName            string    `json:"model_name"`
	Provider             string    `json:"provider"`
	BrandMentioned       bool      `json:"brand_mentioned"`
	Position             *int      `json:"position,omitempty"` // 1-based rank of first mention
	Sentiment            Sentiment `json:"sentiment"`
	CompetitorsMentioned []string  `json:"competitors_mentioned"`
	ResponsePreview      string    `json:"response_preview"`
	FullResponse         string    `json:"full_response"`
	Cost                 float64   `json:"cost"` // estimated dollar cost of this probe
}

// ProviderStats is the typed per-provider breakdown carried in
// MultiModelResponse.Summary
type ProviderStats struct {
	Tested    int `json:"tested"`
	Mentioned int `json:"mentioned"`
}

// MultiModelResponse aggregates every model's result for one prompt.
// Invariant: ModelsMentioning <= ModelsTested, and MentionRate is 0 when
// ModelsTested is 0.
type MultiModelResponse struct {
	Prompt           string                   `json:"prompt"`
	Brand            string                   `json:"brand"`
	ModelsTested     int                      `json:"models_tested"`
	ModelsMentioning int                      `json:"models_mentioning"`
	MentionRate      float64                  `json:"mention_rate"` // percentage
	TotalCost        float64                  `json:"total_cost"`   // summed probe cost estimates
	Results          []*ModelResult           `json:"results"`
	Summary          map[string]ProviderStats `json:"summary"`
}

// CategoryResult is one category's outcome in the brand sweep
type CategoryResult struct {
	Category Category       `json:"category"`
	Label    string         `json:"label"`
	Prompt   string         `json:"prompt"`
	Score    int            `json:"score"` // 0-100, rounded mention rate
	Status   CategoryStatus `json:"status"`
	Insight  string         `json:"insight"`
	Results  []*ModelResult `json:"results"`
}

// CompetitorScore is one competitor's overall result from its single probe.
// CategoryScores carries the probed category's score at the first fixed
// category with the rest zeroed; only the user brand gets a full sweep.
type CompetitorScore struct {
	Name           string           `json:"name"`
	OverallScore   int              `json:"overall_score"`
	CategoryScores map[Category]int `json:"category_scores"`
	Grade          string           `json:"grade"`
}

// RankingEntry is one row of the score ranking. IsUser marks the user's
// brand for rendering only; it does not affect ordering.
type RankingEntry struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	IsUser bool   `json:"is_user"`
}

// VisibilityReport is the assembled end-of-wizard report. Held in session
// state only; nothing here is persisted.
type VisibilityReport struct {
	ReportID          uuid.UUID                   `json:"report_id"`
	Brand             string                      `json:"brand"`
	OverallScore      int                         `json:"overall_score"`
	Grade             string                      `json:"grade"`
	GradeLabel        string                      `json:"grade_label"`
	Ranking           []RankingEntry              `json:"ranking"`
	Categories        []*CategoryResult           `json:"categories"`
	CompetitorScores  []*CompetitorScore          `json:"competitor_scores"`
	Strengths         []string                    `json:"strengths"`
	Weaknesses        []string                    `json:"weaknesses"`
	Recommendations   []string                    `json:"recommendations"`
	CompetitorSignals map[string]map[Category]int `json:"competitor_signals,omitempty"`
	GeneratedAt       time.Time                   `json:"generated_at"`
}

// EmailCategoryResult is the per-category slice of the email payload
type EmailCategoryResult struct {
	Category Category       `json:"category"`
	Label    string         `json:"label"`
	Score    int            `json:"score"`
	Status   CategoryStatus `json:"status"`
}

// EmailReportPayload is the wire shape for the email-report delivery endpoint
type EmailReportPayload struct {
	Email           string                `json:"email"`
	FromAddress     string                `json:"from_address,omitempty"`
	BrandName       string                `json:"brand_name"`
	OverallScore    int                   `json:"overall_score"`
	Grade           string                `json:"grade"`
	CategoryResults []EmailCategoryResult `json:"category_results"`
	Strengths       []string              `json:"strengths"`
	Weaknesses      []string              `json:"weaknesses"`
	Recommendations []string              `json:"recommendations"`
}
