// services/report_service.go
package services

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/brandlens/visibility-workflows/internal/models"
)

const maxRecommendations = 3

// recommendationTable holds the fixed suggestion per weak category
var recommendationTable = map[models.Category]string{
	models.CategoryRecommendation:  "Publish direct answers to \"what should I use\" questions in your space - FAQ pages and comparison guides give AI models recommendation-ready content.",
	models.CategoryBestOf:          "Get listed in industry roundups and review sites - AI models lean on third-party best-of lists when building their own.",
	models.CategoryComparison:      "Create honest comparison pages against your main competitors so AI models can place you side by side.",
	models.CategoryProblemSolution: "Write content that names the problems your customers have and positions your product as the fix.",
	models.CategoryReputation:      "Build review volume and authoritative citations - AI models need reputation signal to speak confidently about you.",
}

// maintenanceRecommendations is emitted when no category is weak
var maintenanceRecommendations = []string{
	"Maintain your current content strategy - your brand is established with AI models.",
	"Monitor your AI visibility monthly to catch ranking shifts before they cost you pipeline.",
}

type reportService struct{}

func NewReportService() ReportService {
	return &reportService{}
}

// Build assembles the final report from already-collected data. No retries
// and no external calls happen at this layer.
func (s *reportService) Build(profile *models.BrandProfile, sweep *CategorySweep, competitorScores []*models.CompetitorScore) *models.VisibilityReport {
	overallScore := overallScore(sweep.Results)
	grade, gradeLabel := GradeForScore(overallScore)

	report := &models.VisibilityReport{
		ReportID:          uuid.New(),
		Brand:             profile.BrandName,
		OverallScore:      overallScore,
		Grade:             grade,
		GradeLabel:        gradeLabel,
		Ranking:           buildRanking(profile.BrandName, overallScore, competitorScores),
		Categories:        sweep.Results,
		CompetitorScores:  competitorScores,
		Strengths:         []string{},
		Weaknesses:        []string{},
		Recommendations:   []string{},
		CompetitorSignals: sweep.CompetitorMentions,
		GeneratedAt:       time.Now(),
	}

	for _, result := range sweep.Results {
		switch result.Status {
		case models.StatusStrong:
			report.Strengths = append(report.Strengths, result.Label)
		case models.StatusWeak:
			report.Weaknesses = append(report.Weaknesses, result.Label)
		}
	}

	report.Recommendations = buildRecommendations(sweep.Results)

	return report
}

// EmailPayload serializes a report into the email delivery shape, keeping
// category order and score/status associations intact.
func (s *reportService) EmailPayload(report *models.VisibilityReport, email string) *models.EmailReportPayload {
	categoryResults := make([]models.EmailCategoryResult, 0, len(report.Categories))
	for _, result := range report.Categories {
		categoryResults = append(categoryResults, models.EmailCategoryResult{
			Category: result.Category,
			Label:    result.Label,
			Score:    result.Score,
			Status:   result.Status,
		})
	}

	return &models.EmailReportPayload{
		Email:           email,
		BrandName:       report.Brand,
		OverallScore:    report.OverallScore,
		Grade:           report.Grade,
		CategoryResults: categoryResults,
		Strengths:       report.Strengths,
		Weaknesses:      report.Weaknesses,
		Recommendations: report.Recommendations,
	}
}

// overallScore is the rounded mean over completed categories only; a sweep
// with zero completed categories scores 0 rather than dividing by zero.
func overallScore(results []*models.CategoryResult) int {
	if len(results) == 0 {
		return 0
	}
	total := 0
	for _, result := range results {
		total += result.Score
	}
	return int(math.Round(float64(total) / float64(len(results))))
}

// GradeForScore maps a 0-100 score to its letter grade and label.
// Thresholds are inclusive lower bounds at 80/60/40/20.
func GradeForScore(score int) (string, string) {
	switch {
	case score >= 80:
		return "A", "Excellent"
	case score >= 60:
		return "B", "Good"
	case score >= 40:
		return "C", "Average"
	case score >= 20:
		return "D", "Poor"
	default:
		return "F", "Invisible"
	}
}

// buildRanking sorts user + competitors by score descending. The sort is
// stable so equal scores keep their input order, with the user brand listed
// before competitors.
func buildRanking(brandName string, brandScore int, competitorScores []*models.CompetitorScore) []models.RankingEntry {
	ranking := make([]models.RankingEntry, 0, len(competitorScores)+1)
	ranking = append(ranking, models.RankingEntry{Name: brandName, Score: brandScore, IsUser: true})
	for _, score := range competitorScores {
		ranking = append(ranking, models.RankingEntry{Name: score.Name, Score: score.OverallScore})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})

	return ranking
}

func buildRecommendations(results []*models.CategoryResult) []string {
	recommendations := []string{}
	seen := map[models.Category]bool{}

	for _, result := range results {
		if result.Status != models.StatusWeak || seen[result.Category] {
			continue
		}
		seen[result.Category] = true
		if text, ok := recommendationTable[result.Category]; ok {
			recommendations = append(recommendations, text)
		}
		if len(recommendations) == maxRecommendations {
			return recommendations
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, maintenanceRecommendations...)
	}

	return recommendations
}
