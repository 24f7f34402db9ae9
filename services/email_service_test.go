package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brandlens/visibility-workflows/internal/models"
	"github.com/brandlens/visibility-workflows/internal/providers/testutil"
	"github.com/brandlens/visibility-workflows/services"
)

func samplePayload() *models.EmailReportPayload {
	return &models.EmailReportPayload{
		Email:        "owner@acme.example",
		BrandName:    "Acme Widgets",
		OverallScore: 67,
		Grade:        "B",
		CategoryResults: []models.EmailCategoryResult{
			{Category: models.CategoryRecommendation, Label: models.CategoryRecommendation.Label(), Score: 67, Status: models.StatusModerate},
		},
	}
}

func TestSendReportPostsPayload(t *testing.T) {
	var received models.EmailReportPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("delivery request method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode delivery body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testutil.SampleConfig()
	cfg.Email.DeliveryURL = server.URL
	cfg.Email.FromAddress = "reports@acme.example"
	svc := services.NewEmailService(cfg)

	if err := svc.SendReport(context.Background(), samplePayload()); err != nil {
		t.Fatalf("SendReport() unexpected error: %v", err)
	}

	if received.Email != "owner@acme.example" || received.BrandName != "Acme Widgets" {
		t.Errorf("delivered payload = %+v, missing recipient or brand", received)
	}
	if received.FromAddress != "reports@acme.example" {
		t.Errorf("FromAddress = %s, want configured default", received.FromAddress)
	}
	if received.OverallScore != 67 || received.Grade != "B" {
		t.Errorf("delivered payload score/grade = %d/%s, want 67/B", received.OverallScore, received.Grade)
	}
}

func TestSendReportErrors(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()

	tests := []struct {
		name        string
		deliveryURL string
		payload     *models.EmailReportPayload
	}{
		{"missing delivery URL", "", samplePayload()},
		{"nil payload", failing.URL, nil},
		{
			"missing recipient",
			failing.URL,
			&models.EmailReportPayload{BrandName: "Acme Widgets"},
		},
		{"delivery endpoint failure", failing.URL, samplePayload()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testutil.SampleConfig()
			cfg.Email.DeliveryURL = tt.deliveryURL
			svc := services.NewEmailService(cfg)

			if err := svc.SendReport(context.Background(), tt.payload); err == nil {
				t.Error("SendReport() returned nil error")
			}
		})
	}
}
