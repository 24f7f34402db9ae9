// Smoke test for the AI providers: probes every configured model with a
// sample visibility prompt and prints the classified result. Needs real API
// keys in the environment or a .env file.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/brandlens/visibility-workflows/internal/config"
	"github.com/brandlens/visibility-workflows/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	} else {
		fmt.Println("Loaded .env file")
	}

	cfg := config.Load()

	brand := getArg(1, "Notion")
	prompt := getArg(2, "What project management tools do you recommend?")
	competitors := []string{"Asana", "Trello", "Monday.com", "ClickUp"}

	fmt.Printf("\nBrand: %s\nPrompt: %s\nModels: %v\n\n", brand, prompt, cfg.DefaultModels)

	costService := services.NewCostService()
	classifier := services.NewClassifierService()
	multiModel := services.NewMultiModelService(cfg, classifier, costService)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	response, err := multiModel.RunPrompt(ctx, prompt, brand, competitors, services.ResolveModels(cfg.DefaultModels))
	if err != nil {
		fmt.Printf("Run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%d/%d models mentioned %s (%.0f%% mention rate)\n\n",
		response.ModelsMentioning, response.ModelsTested, brand, response.MentionRate)

	for _, result := range response.Results {
		position := "-"
		if result.Position != nil {
			position = fmt.Sprintf("#%d", *result.Position)
		}
		fmt.Printf("[%s] %s mentioned=%v position=%s sentiment=%s\n",
			result.Provider, result.ModelName, result.BrandMentioned, position, result.Sentiment)
		fmt.Printf("  %s\n", result.ResponsePreview)
		if len(result.CompetitorsMentioned) > 0 {
			fmt.Printf("  competitors seen: %v\n", result.CompetitorsMentioned)
		}
	}

	fmt.Println("\nPer-provider summary:")
	for provider, stats := range response.Summary {
		fmt.Printf("  %s: %d/%d mentioned\n", provider, stats.Mentioned, stats.Tested)
	}
	fmt.Printf("\nEstimated run cost: $%.6f\n", response.TotalCost)
}

func getArg(index int, fallback string) string {
	if len(os.Args) > index && os.Args[index] != "" {
		return os.Args[index]
	}
	return fallback
}
