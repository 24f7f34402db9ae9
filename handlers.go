// handlers.go
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/inngest/inngestgo"

	"github.com/brandlens/visibility-workflows/internal/config"
	"github.com/brandlens/visibility-workflows/internal/models"
	"github.com/brandlens/visibility-workflows/services"
)

type apiHandlers struct {
	cfg              *config.Config
	brandAnalyzer    services.BrandAnalyzerService
	promptService    services.PromptService
	multiModel       services.MultiModelService
	categoryService  services.CategoryTestService
	competitorScorer services.CompetitorScoreService
	reportService    services.ReportService
	emailService     services.EmailService
}

func newAPIHandlers(
	cfg *config.Config,
	brandAnalyzer services.BrandAnalyzerService,
	promptService services.PromptService,
	multiModel services.MultiModelService,
	categoryService services.CategoryTestService,
	competitorScorer services.CompetitorScoreService,
	reportService services.ReportService,
	emailService services.EmailService,
) *apiHandlers {
	return &apiHandlers{
		cfg:              cfg,
		brandAnalyzer:    brandAnalyzer,
		promptService:    promptService,
		multiModel:       multiModel,
		categoryService:  categoryService,
		competitorScorer: competitorScorer,
		reportService:    reportService,
		emailService:     emailService,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

type analyzeBrandRequest struct {
	BrandName        string   `json:"brand_name"`
	WebsiteURL       string   `json:"website_url"`
	KnownCompetitors []string `json:"known_competitors,omitempty"`
}

// analyzeBrand builds a brand profile plus suggested category prompts, the
// payload the wizard's profile and prompts steps run on.
func (h *apiHandlers) analyzeBrand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req analyzeBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.brandAnalyzer.AnalyzeBrand(r.Context(), req.BrandName, req.WebsiteURL, req.KnownCompetitors)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile": profile,
		"prompts": h.promptService.GeneratePrompts(profile),
	})
}

type testMultiModelRequest struct {
	Prompt      string   `json:"prompt"`
	Brand       string   `json:"brand"`
	Competitors []string `json:"competitors,omitempty"`
	Models      []string `json:"models,omitempty"`
}

// testMultiModel runs one prompt across the requested models
func (h *apiHandlers) testMultiModel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req testMultiModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" || req.Brand == "" {
		writeError(w, http.StatusBadRequest, "prompt and brand are required")
		return
	}

	modelIDs := req.Models
	if len(modelIDs) == 0 {
		modelIDs = h.cfg.DefaultModels
	}
	modelCfgs := services.ResolveModels(modelIDs)

	response, err := h.multiModel.RunPrompt(r.Context(), req.Prompt, req.Brand, req.Competitors, modelCfgs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, response)
}

type visibilityCheckRequest struct {
	BrandName        string   `json:"brand_name"`
	WebsiteURL       string   `json:"website_url"`
	Email            string   `json:"email,omitempty"`
	KnownCompetitors []string `json:"known_competitors,omitempty"`
	Models           []string `json:"models,omitempty"`
}

// runVisibilityCheck executes the full pipeline synchronously and returns
// the finished report. Long-running callers should prefer the Inngest
// workflow via /test/trigger-report.
func (h *apiHandlers) runVisibilityCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req visibilityCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	modelIDs := req.Models
	if len(modelIDs) == 0 {
		modelIDs = h.cfg.DefaultModels
	}
	modelCfgs := services.ResolveModels(modelIDs)

	profile, err := h.brandAnalyzer.AnalyzeBrand(r.Context(), req.BrandName, req.WebsiteURL, req.KnownCompetitors)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	promptsByCategory := make(map[models.Category]string)
	for _, prompt := range h.promptService.GeneratePrompts(profile) {
		promptsByCategory[prompt.Category] = prompt.Text
	}

	sweep, err := h.categoryService.TestAllCategories(r.Context(), profile, promptsByCategory, modelCfgs, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	competitorNames := profile.CompetitorNames()
	if len(competitorNames) > 3 {
		competitorNames = competitorNames[:3]
	}
	competitorScores, err := h.competitorScorer.ScoreCompetitors(r.Context(), profile, competitorNames, modelCfgs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	report := h.reportService.Build(profile, sweep, competitorScores)

	emailStatus := "skipped"
	if req.Email != "" {
		payload := h.reportService.EmailPayload(report, req.Email)
		if err := h.emailService.SendReport(r.Context(), payload); err != nil {
			log.Printf("Email delivery failed for %s: %v", req.Email, err)
			emailStatus = "failed"
		} else {
			emailStatus = "sent"
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"report":       report,
		"email_status": emailStatus,
	})
}

// emailReport delivers an already-built report payload
func (h *apiHandlers) emailReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var payload models.EmailReportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.emailService.SendReport(r.Context(), &payload); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// triggerReport fires the report workflow event for manual testing
func (h *apiHandlers) triggerReport(client inngestgo.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req visibilityCheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.BrandName == "" || req.WebsiteURL == "" {
			writeError(w, http.StatusBadRequest, "brand_name and website_url are required")
			return
		}

		evt := inngestgo.Event{
			Name: "visibility.report.requested",
			Data: map[string]interface{}{
				"brand_name":        req.BrandName,
				"website_url":       req.WebsiteURL,
				"email":             req.Email,
				"known_competitors": req.KnownCompetitors,
				"triggered_by":      "manual_test",
			},
		}
		result, err := client.Send(r.Context(), evt)
		if err != nil {
			log.Printf("Failed to send report event: %v", err)
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to send event: %v", err))
			return
		}

		log.Printf("Report event sent successfully: %+v", result)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "success",
			"message":  fmt.Sprintf("Report requested for %s", req.BrandName),
			"event_id": result,
		})
	}
}
