// services/category_test_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/brandlens/visibility-workflows/internal/models"
)

// Category score thresholds, inclusive lower bounds
const (
	strongThreshold   = 70
	moderateThreshold = 40
)

// insightTable maps (category, status) to the report insight line
var insightTable = map[models.Category]map[models.CategoryStatus]string{
	models.CategoryRecommendation: {
		models.StatusStrong:   "AI assistants actively recommend your brand to high-intent buyers.",
		models.StatusModerate: "Your brand shows up in some recommendation queries, but competitors appear more often.",
		models.StatusWeak:     "AI assistants rarely recommend your brand - high-intent buyers are hearing about competitors instead.",
	},
	models.CategoryBestOf: {
		models.StatusStrong:   "Your brand is a fixture in best-of lists generated by AI models.",
		models.StatusModerate: "Your brand makes some best-of lists but misses others.",
		models.StatusWeak:     "Your brand is missing from AI-generated best-of lists for your industry.",
	},
	models.CategoryComparison: {
		models.StatusStrong:   "When buyers compare options, AI models consistently include your brand.",
		models.StatusModerate: "Your brand appears in some comparison answers but is not a default pick.",
		models.StatusWeak:     "Comparison queries skip your brand - researchers never see you next to competitors.",
	},
	models.CategoryProblemSolution: {
		models.StatusStrong:   "AI models name your brand as a solution to the problems your customers describe.",
		models.StatusModerate: "Your brand is sometimes suggested as a solution, with room to own the problem space.",
		models.StatusWeak:     "Problem-solving queries never surface your brand - your use cases are invisible to AI.",
	},
	models.CategoryReputation: {
		models.StatusStrong:   "AI models speak confidently and favorably about your brand's reputation.",
		models.StatusModerate: "AI models know your brand but have limited reputation signal to draw on.",
		models.StatusWeak:     "AI models have little to say about your brand's reputation.",
	},
}

type categoryTestService struct {
	multiModel    MultiModelService
	promptService PromptService
}

func NewCategoryTestService(multiModel MultiModelService, promptService PromptService) CategoryTestService {
	return &categoryTestService{
		multiModel:    multiModel,
		promptService: promptService,
	}
}

// TestAllCategories runs the fixed category sweep sequentially so progress
// can be reported step by step. A category whose probe fails is logged and
// skipped; the sweep continues and the report is built over the categories
// that completed.
func (s *categoryTestService) TestAllCategories(ctx context.Context, profile *models.BrandProfile, promptsByCategory map[models.Category]string, modelCfgs []*models.ModelConfig, onProgress ProgressFunc) (*CategorySweep, error) {
	competitorNames := profile.CompetitorNames()

	sweep := &CategorySweep{
		Results:            []*models.CategoryResult{},
		CompetitorMentions: map[string]map[models.Category]int{},
	}

	for _, category := range models.TestCategories {
		if err := ctx.Err(); err != nil {
			return sweep, err
		}

		promptText := strings.TrimSpace(promptsByCategory[category])
		if promptText == "" {
			promptText = s.promptService.DefaultPrompt(profile, category)
		}

		fmt.Printf("[CategoryTester] Testing category %s: %s\n", category, promptText)

		response, err := s.multiModel.RunPrompt(ctx, promptText, profile.BrandName, competitorNames, modelCfgs)
		if err != nil {
			fmt.Printf("[CategoryTester] Category %s failed, continuing: %v\n", category, err)
			continue
		}

		score := RoundScore(response.MentionRate)
		status := statusForScore(score)

		sweep.Results = append(sweep.Results, &models.CategoryResult{
			Category: category,
			Label:    category.Label(),
			Prompt:   promptText,
			Score:    score,
			Status:   status,
			Insight:  insightFor(category, status, score),
			Results:  response.Results,
		})

		s.tallyCompetitorMentions(sweep, category, competitorNames, response.Results)

		if onProgress != nil {
			onProgress(sweep.Results)
		}
	}

	return sweep, nil
}

// tallyCompetitorMentions counts competitor appearances per category by
// substring-scanning each full response. This is a deliberately cheap signal
// next to the direct competitor probes and the two may disagree.
func (s *categoryTestService) tallyCompetitorMentions(sweep *CategorySweep, category models.Category, competitorNames []string, results []*models.ModelResult) {
	for _, competitor := range competitorNames {
		competitorLower := strings.ToLower(competitor)
		for _, result := range results {
			if result.FullResponse == "" {
				continue
			}
			if strings.Contains(strings.ToLower(result.FullResponse), competitorLower) {
				if sweep.CompetitorMentions[competitor] == nil {
					sweep.CompetitorMentions[competitor] = map[models.Category]int{}
				}
				sweep.CompetitorMentions[competitor][category]++
			}
		}
	}
}

func statusForScore(score int) models.CategoryStatus {
	switch {
	case score >= strongThreshold:
		return models.StatusStrong
	case score >= moderateThreshold:
		return models.StatusModerate
	default:
		return models.StatusWeak
	}
}

func insightFor(category models.Category, status models.CategoryStatus, score int) string {
	if byStatus, ok := insightTable[category]; ok {
		if insight, ok := byStatus[status]; ok {
			return insight
		}
	}
	return fmt.Sprintf("Score: %d%%", score)
}
