// workflows/report_processor.go
package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"

	"github.com/brandlens/visibility-workflows/internal/config"
	"github.com/brandlens/visibility-workflows/internal/models"
	"github.com/brandlens/visibility-workflows/services"
)

type ReportProcessor struct {
	brandAnalyzer    services.BrandAnalyzerService
	promptService    services.PromptService
	categoryService  services.CategoryTestService
	competitorScorer services.CompetitorScoreService
	reportService    services.ReportService
	emailService     services.EmailService
	client           inngestgo.Client
	cfg              *config.Config
}

func NewReportProcessor(
	brandAnalyzer services.BrandAnalyzerService,
	promptService services.PromptService,
	categoryService services.CategoryTestService,
	competitorScorer services.CompetitorScoreService,
	reportService services.ReportService,
	emailService services.EmailService,
	cfg *config.Config,
) *ReportProcessor {
	return &ReportProcessor{
		brandAnalyzer:    brandAnalyzer,
		promptService:    promptService,
		categoryService:  categoryService,
		competitorScorer: competitorScorer,
		reportService:    reportService,
		emailService:     emailService,
		cfg:              cfg,
	}
}

func (p *ReportProcessor) SetClient(client inngestgo.Client) {
	p.client = client
}

// maxScoredCompetitors bounds the competitor probes per report
const maxScoredCompetitors = 3

func (p *ReportProcessor) GenerateReport() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:      "generate-visibility-report",
			Name:    "Generate Visibility Report - Full Brand Analysis Pipeline",
			Retries: inngestgo.IntPtr(3),
		},
		inngestgo.EventTrigger("visibility.report.requested", nil),
		func(ctx context.Context, input inngestgo.Input[VisibilityReportEvent]) (any, error) {
			brandName := input.Event.Data.BrandName
			fmt.Printf("[GenerateReport] Starting visibility pipeline for brand: %s\n", brandName)

			modelCfgs := services.ResolveModels(p.cfg.DefaultModels)

			// Step 1: Analyze the brand website
			profile, err := step.Run(ctx, "analyze-brand", func(ctx context.Context) (*models.BrandProfile, error) {
				fmt.Printf("[GenerateReport] Step 1: Analyzing brand website\n")
				profile, err := p.brandAnalyzer.AnalyzeBrand(ctx, brandName, input.Event.Data.WebsiteURL, input.Event.Data.KnownCompetitors)
				if err != nil {
					return nil, fmt.Errorf("failed to analyze brand: %w", err)
				}

				fmt.Printf("[GenerateReport] Profile built: industry=%s, %d competitors detected\n",
					profile.Industry, len(profile.Competitors))
				return profile, nil
			})
			if err != nil {
				return nil, fmt.Errorf("step 1 failed: %w", err)
			}

			// Step 2: Generate test prompts from the profile
			prompts, err := step.Run(ctx, "generate-prompts", func(ctx context.Context) (map[models.Category]string, error) {
				fmt.Printf("[GenerateReport] Step 2: Generating category prompts\n")
				byCategory := make(map[models.Category]string)
				for _, prompt := range p.promptService.GeneratePrompts(profile) {
					byCategory[prompt.Category] = prompt.Text
				}
				return byCategory, nil
			})
			if err != nil {
				return nil, fmt.Errorf("step 2 failed: %w", err)
			}

			// Step 3: Run the category sweep across all models
			sweep, err := step.Run(ctx, "test-categories", func(ctx context.Context) (*services.CategorySweep, error) {
				fmt.Printf("[GenerateReport] Step 3: Running category sweep across %d models\n", len(modelCfgs))
				sweep, err := p.categoryService.TestAllCategories(ctx, profile, prompts, modelCfgs, nil)
				if err != nil {
					return nil, fmt.Errorf("failed to run category sweep: %w", err)
				}

				fmt.Printf("[GenerateReport] Sweep completed: %d of %d categories produced results\n",
					len(sweep.Results), len(models.TestCategories))
				return sweep, nil
			})
			if err != nil {
				return nil, fmt.Errorf("step 3 failed: %w", err)
			}

			// Step 4: Score the leading competitors
			competitorScores, err := step.Run(ctx, "score-competitors", func(ctx context.Context) ([]*models.CompetitorScore, error) {
				names := profile.CompetitorNames()
				if len(names) > maxScoredCompetitors {
					names = names[:maxScoredCompetitors]
				}
				fmt.Printf("[GenerateReport] Step 4: Scoring %d competitors\n", len(names))

				scores, err := p.competitorScorer.ScoreCompetitors(ctx, profile, names, modelCfgs)
				if err != nil {
					return nil, fmt.Errorf("failed to score competitors: %w", err)
				}
				return scores, nil
			})
			if err != nil {
				return nil, fmt.Errorf("step 4 failed: %w", err)
			}

			// Step 5: Assemble the report
			report, err := step.Run(ctx, "build-report", func(ctx context.Context) (*models.VisibilityReport, error) {
				fmt.Printf("[GenerateReport] Step 5: Building visibility report\n")
				return p.reportService.Build(profile, sweep, competitorScores), nil
			})
			if err != nil {
				return nil, fmt.Errorf("step 5 failed: %w", err)
			}

			// Step 6: Email the report. Delivery failure does not fail the
			// pipeline; the report is still returned.
			emailStatus, err := step.Run(ctx, "email-report", func(ctx context.Context) (string, error) {
				if input.Event.Data.Email == "" {
					return "skipped", nil
				}
				fmt.Printf("[GenerateReport] Step 6: Emailing report to %s\n", input.Event.Data.Email)
				payload := p.reportService.EmailPayload(report, input.Event.Data.Email)
				if err := p.emailService.SendReport(ctx, payload); err != nil {
					fmt.Printf("[GenerateReport] Email delivery failed: %v\n", err)
					return "failed", nil
				}
				return "sent", nil
			})
			if err != nil {
				return nil, fmt.Errorf("step 6 failed: %w", err)
			}

			finalResult := map[string]interface{}{
				"report_id":     report.ReportID,
				"brand":         report.Brand,
				"overall_score": report.OverallScore,
				"grade":         report.Grade,
				"status":        "completed",
				"email_status":  emailStatus,
				"completed_at":  time.Now().UTC(),
			}

			fmt.Printf("[GenerateReport] COMPLETED: %s scored %d%% (grade %s)\n",
				report.Brand, report.OverallScore, report.Grade)

			return finalResult, nil
		},
	)
	if err != nil {
		panic(fmt.Errorf("failed to create GenerateReport function: %w", err))
	}
	return fn
}

// Event types
type VisibilityReportEvent struct {
	BrandName        string   `json:"brand_name"`
	WebsiteURL       string   `json:"website_url"`
	Email            string   `json:"email,omitempty"`
	KnownCompetitors []string `json:"known_competitors,omitempty"`
	TriggeredBy      string   `json:"triggered_by,omitempty"`
}
