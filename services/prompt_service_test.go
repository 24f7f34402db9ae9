package services_test

import (
	"strings"
	"testing"

	"github.com/brandlens/visibility-workflows/internal/models"
	"github.com/brandlens/visibility-workflows/services"
)

func TestGeneratePromptsOnePerCategory(t *testing.T) {
	svc := services.NewPromptService()

	prompts := svc.GeneratePrompts(sampleProfile())

	if len(prompts) != len(models.TestCategories) {
		t.Fatalf("got %d prompts, want %d", len(prompts), len(models.TestCategories))
	}
	for i, category := range models.TestCategories {
		if prompts[i].Category != category {
			t.Errorf("prompt %d category = %s, want %s", i, prompts[i].Category, category)
		}
		if strings.TrimSpace(prompts[i].Text) == "" {
			t.Errorf("prompt for %s is empty", category)
		}
	}
}

func TestDefaultPromptContent(t *testing.T) {
	svc := services.NewPromptService()
	profile := sampleProfile()

	tests := []struct {
		name     string
		category models.Category
		contains []string
	}{
		{
			name:     "recommendation targets the audience",
			category: models.CategoryRecommendation,
			contains: []string{"widget manufacturers", "small factories", "recommend"},
		},
		{
			name:     "best of names the industry",
			category: models.CategoryBestOf,
			contains: []string{"best", "widget manufacturers"},
		},
		{
			name:     "comparison asks for a choice",
			category: models.CategoryComparison,
			contains: []string{"Compare", "widget manufacturers"},
		},
		{
			name:     "reputation names the brand",
			category: models.CategoryReputation,
			contains: []string{"Acme Widgets", "good"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := svc.DefaultPrompt(profile, tt.category)
			for _, want := range tt.contains {
				if !strings.Contains(prompt, want) {
					t.Errorf("DefaultPrompt(%s) = %q, missing %q", tt.category, prompt, want)
				}
			}
		})
	}
}

func TestDefaultPromptLocalization(t *testing.T) {
	svc := services.NewPromptService()

	city := "Portland"
	profile := sampleProfile()
	profile.IsLocal = true
	profile.City = &city

	prompt := svc.DefaultPrompt(profile, models.CategoryBestOf)
	if !strings.HasSuffix(prompt, "in Portland?") {
		t.Errorf("DefaultPrompt() = %q, want city suffix for local business", prompt)
	}

	// Non-local profiles never get a place suffix
	prompt = svc.DefaultPrompt(sampleProfile(), models.CategoryBestOf)
	if strings.Contains(prompt, "Portland") {
		t.Errorf("DefaultPrompt() = %q, unexpected place for non-local business", prompt)
	}
}

func TestDefaultPromptEmptyIndustry(t *testing.T) {
	svc := services.NewPromptService()

	profile := sampleProfile()
	profile.Industry = ""
	profile.TargetAudience = ""

	for _, category := range models.TestCategories {
		prompt := svc.DefaultPrompt(profile, category)
		if strings.TrimSpace(prompt) == "" {
			t.Errorf("DefaultPrompt(%s) empty for blank industry", category)
		}
		if strings.Contains(prompt, "  ") {
			t.Errorf("DefaultPrompt(%s) = %q has a gap from blank industry", category, prompt)
		}
	}
}

func TestGeneratePromptsDeterministic(t *testing.T) {
	svc := services.NewPromptService()
	profile := sampleProfile()

	first := svc.GeneratePrompts(profile)
	second := svc.GeneratePrompts(profile)

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("prompt %d differs across runs: %q vs %q", i, first[i].Text, second[i].Text)
		}
	}
}
