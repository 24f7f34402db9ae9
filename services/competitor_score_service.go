// services/competitor_score_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/brandlens/visibility-workflows/internal/models"
)

type competitorScoreService struct {
	multiModel MultiModelService
}

func NewCompetitorScoreService(multiModel MultiModelService) CompetitorScoreService {
	return &competitorScoreService{multiModel: multiModel}
}

// ScoreCompetitors probes each competitor once with a generic recommendation
// prompt, swapping the competitor in as the tested brand and the user's brand
// in as its competitor. One probe per competitor keeps API cost linear in the
// competitor count; only the user's brand gets the full category sweep, so
// competitor CategoryScores carry real data at the first category only.
func (s *competitorScoreService) ScoreCompetitors(ctx context.Context, profile *models.BrandProfile, competitorNames []string, modelCfgs []*models.ModelConfig) ([]*models.CompetitorScore, error) {
	scores := make([]*models.CompetitorScore, 0, len(competitorNames))

	industry := strings.TrimSpace(profile.Industry)
	if industry == "" {
		industry = "products"
	}
	prompt := fmt.Sprintf("What %s do you recommend?", industry)

	for _, competitor := range competitorNames {
		if err := ctx.Err(); err != nil {
			return scores, err
		}

		fmt.Printf("[CompetitorScorer] Probing competitor %s\n", competitor)

		response, err := s.multiModel.RunPrompt(ctx, prompt, competitor, []string{profile.BrandName}, modelCfgs)
		if err != nil {
			fmt.Printf("[CompetitorScorer] Probe failed for %s, continuing: %v\n", competitor, err)
			continue
		}

		overallScore := RoundScore(response.MentionRate)

		categoryScores := make(map[models.Category]int, len(models.TestCategories))
		for _, category := range models.TestCategories {
			categoryScores[category] = 0
		}
		categoryScores[models.TestCategories[0]] = overallScore

		grade, _ := GradeForScore(overallScore)

		scores = append(scores, &models.CompetitorScore{
			Name:           competitor,
			OverallScore:   overallScore,
			CategoryScores: categoryScores,
			Grade:          grade,
		})
	}

	return scores, nil
}
