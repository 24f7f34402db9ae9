// services/prompt_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/brandlens/visibility-workflows/internal/models"
)

type promptService struct{}

func NewPromptService() PromptService {
	return &promptService{}
}

// GeneratePrompts builds one prompt per fixed category from the profile.
// Prompts are deterministic for a given profile; the wizard regenerates them
// whenever the industry or competitor list changes.
func (s *promptService) GeneratePrompts(profile *models.BrandProfile) []models.Prompt {
	prompts := make([]models.Prompt, 0, len(models.TestCategories))
	for _, category := range models.TestCategories {
		prompts = append(prompts, models.Prompt{
			Category: category,
			Text:     s.DefaultPrompt(profile, category),
		})
	}
	return prompts
}

// DefaultPrompt is the profile-derived fallback used when a category has no
// user-edited prompt.
func (s *promptService) DefaultPrompt(profile *models.BrandProfile, category models.Category) string {
	industry := strings.TrimSpace(profile.Industry)
	if industry == "" {
		industry = "products"
	}

	switch category {
	case models.CategoryRecommendation:
		if audience := strings.TrimSpace(profile.TargetAudience); audience != "" {
			return localize(profile, fmt.Sprintf("What %s do you recommend for %s?", industry, audience))
		}
		return localize(profile, fmt.Sprintf("What %s do you recommend?", industry))
	case models.CategoryBestOf:
		return localize(profile, fmt.Sprintf("What are the best %s?", industry))
	case models.CategoryComparison:
		return localize(profile, fmt.Sprintf("Compare the top %s options - which should I choose?", industry))
	case models.CategoryProblemSolution:
		if need := primaryOffering(profile); need != "" {
			return localize(profile, fmt.Sprintf("I need %s - what should I use?", need))
		}
		return localize(profile, fmt.Sprintf("How do I choose a reliable %s provider?", industry))
	case models.CategoryReputation:
		return fmt.Sprintf("Is %s a good %s? What do people say about it?", profile.BrandName, industry)
	default:
		return fmt.Sprintf("What are the top %s brands to consider?", industry)
	}
}

// localize appends the profile's city or region for local businesses
func localize(profile *models.BrandProfile, prompt string) string {
	if !profile.IsLocal {
		return prompt
	}

	place := ""
	if profile.City != nil && *profile.City != "" {
		place = *profile.City
	} else if profile.Region != nil && *profile.Region != "" {
		place = *profile.Region
	} else if profile.Country != nil && *profile.Country != "" {
		place = *profile.Country
	}
	if place == "" {
		return prompt
	}

	return strings.TrimSuffix(prompt, "?") + " in " + place + "?"
}

func primaryOffering(profile *models.BrandProfile) string {
	for _, offering := range profile.ProductsServices {
		if trimmed := strings.TrimSpace(offering); trimmed != "" {
			return strings.ToLower(trimmed)
		}
	}
	return ""
}
