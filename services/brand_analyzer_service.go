// services/brand_analyzer_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/brandlens/visibility-workflows/internal/config"
	"github.com/brandlens/visibility-workflows/internal/models"
)

const maxContextChars = 2000

type brandAnalyzerService struct {
	cfg          *config.Config
	openAIClient *openai.Client
	costService  CostService
	httpClient   *http.Client
}

func NewBrandAnalyzerService(cfg *config.Config, costService CostService) BrandAnalyzerService {
	client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))

	return &brandAnalyzerService{
		cfg:          cfg,
		openAIClient: &client,
		costService:  costService,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// websiteContext is the content extracted from the brand's site
type websiteContext struct {
	Title       string
	Description string
	Headings    []string
	BodyText    string
}

// brandAnalysisResponse is the structured output requested from the model
type brandAnalysisResponse struct {
	Industry         string   `json:"industry" jsonschema_description:"Specific business category, e.g. 'luxury jewelry' or 'project management SaaS', not just 'retail' or 'technology'"`
	ProductsServices []string `json:"products_services" jsonschema_description:"3-5 main offerings"`
	ValueProposition string   `json:"value_proposition" jsonschema_description:"One sentence unique selling point"`
	TargetAudience   string   `json:"target_audience" jsonschema_description:"Who the customers are"`
	IsLocalBusiness  bool     `json:"is_local_business" jsonschema_description:"True when the business serves a specific city or region"`
	City             string   `json:"city" jsonschema_description:"City served, empty when not local"`
	Country          string   `json:"country" jsonschema_description:"Country served, empty when unknown"`
	Competitors      []struct {
		Name   string `json:"name" jsonschema_description:"Competitor company name"`
		Reason string `json:"reason" jsonschema_description:"Why they compete with this brand"`
	} `json:"competitors" jsonschema_description:"3-5 direct competitors"`
}

var brandAnalysisSchema = generateSchema[brandAnalysisResponse]()

func generateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// AnalyzeBrand fetches the website, extracts business context with an AI
// call, and assembles the BrandProfile that drives prompt generation.
// Competitors the user already knows are merged ahead of detected ones.
func (s *brandAnalyzerService) AnalyzeBrand(ctx context.Context, brandName, websiteURL string, knownCompetitors []string) (*models.BrandProfile, error) {
	if strings.TrimSpace(brandName) == "" {
		return nil, fmt.Errorf("brand name is required")
	}
	if strings.TrimSpace(websiteURL) == "" {
		return nil, fmt.Errorf("website URL is required")
	}
	websiteURL = normalizeURL(websiteURL)

	siteContext, err := s.fetchWebsiteContext(ctx, websiteURL)
	if err != nil {
		fmt.Printf("[BrandAnalyzer] Website fetch failed, analyzing from name only: %v\n", err)
		siteContext = &websiteContext{}
	}

	analysis, err := s.analyzeWithAI(ctx, brandName, websiteURL, siteContext)
	if err != nil {
		fmt.Printf("[BrandAnalyzer] AI analysis failed, using fallback profile: %v\n", err)
		analysis = s.fallbackAnalysis(siteContext)
	}

	profile := &models.BrandProfile{
		BrandName:        brandName,
		WebsiteURL:       websiteURL,
		Industry:         analysis.Industry,
		IsLocal:          analysis.IsLocalBusiness,
		ProductsServices: analysis.ProductsServices,
		ValueProposition: analysis.ValueProposition,
		TargetAudience:   analysis.TargetAudience,
		Competitors:      mergeCompetitors(knownCompetitors, analysis),
		AnalyzedAt:       time.Now(),
	}
	if analysis.City != "" {
		city := analysis.City
		profile.City = &city
	}
	if analysis.Country != "" {
		country := analysis.Country
		profile.Country = &country
	}

	fmt.Printf("[BrandAnalyzer] Analysis complete for %s: industry=%s, %d competitors\n",
		brandName, profile.Industry, len(profile.Competitors))
	return profile, nil
}

func (s *brandAnalyzerService) fetchWebsiteContext(ctx context.Context, websiteURL string) (*websiteContext, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, websiteURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; BrandLensBot/1.0)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("website request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("website returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return extractWebsiteContext(doc), nil
}

func extractWebsiteContext(doc *goquery.Document) *websiteContext {
	context := &websiteContext{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	if description, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		context.Description = strings.TrimSpace(description)
	}

	doc.Find("h1, h2").Each(func(_ int, sel *goquery.Selection) {
		if heading := strings.TrimSpace(sel.Text()); heading != "" && len(context.Headings) < 10 {
			context.Headings = append(context.Headings, heading)
		}
	})

	doc.Find("script, style, nav, footer").Remove()
	body := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if len(body) > maxContextChars {
		body = body[:maxContextChars]
	}
	context.BodyText = body

	return context
}

func (s *brandAnalyzerService) analyzeWithAI(ctx context.Context, brandName, websiteURL string, siteContext *websiteContext) (*brandAnalysisResponse, error) {
	prompt := fmt.Sprintf(`Analyze this website and extract business information.

Brand: %s
Website: %s
Page title: %s
Meta description: %s
Headings: %s
Page content: %s

Identify the industry (be precise, e.g. "sustainable fashion e-commerce" rather than "retail"), main products or services, value proposition, target audience, whether this is a local business, and 3-5 direct competitors with a short reason for each.`,
		brandName, websiteURL, siteContext.Title, siteContext.Description,
		strings.Join(siteContext.Headings, "; "), siteContext.BodyText)

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "brand_analysis",
		Description: openai.String("Extract business context from a website"),
		Schema:      brandAnalysisSchema,
		Strict:      openai.Bool(true),
	}

	chatResponse, err := s.openAIClient.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a business analyst expert. Extract precise business information from websites and identify real competitor companies."),
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModelGPT4o,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Temperature: openai.Float(0), // Deterministic extraction
	})
	if err != nil {
		return nil, fmt.Errorf("failed to analyze brand: %w", err)
	}

	if len(chatResponse.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned from OpenAI")
	}

	var analysis brandAnalysisResponse
	if err := json.Unmarshal([]byte(chatResponse.Choices[0].Message.Content), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse brand analysis response: %w", err)
	}
	if strings.TrimSpace(analysis.Industry) == "" {
		analysis.Industry = "general"
	}

	return &analysis, nil
}

// fallbackAnalysis produces a usable profile when the AI call fails
func (s *brandAnalyzerService) fallbackAnalysis(siteContext *websiteContext) *brandAnalysisResponse {
	analysis := &brandAnalysisResponse{
		Industry:         "general",
		ValueProposition: siteContext.Description,
		TargetAudience:   "general consumers",
	}
	if analysis.ValueProposition == "" {
		analysis.ValueProposition = siteContext.Title
	}
	return analysis
}

func mergeCompetitors(knownCompetitors []string, analysis *brandAnalysisResponse) []models.CompetitorInfo {
	competitors := []models.CompetitorInfo{}
	seen := map[string]bool{}

	// User-supplied competitors come first: leading entries are the ones
	// selected for testing
	for _, name := range knownCompetitors {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		competitors = append(competitors, models.CompetitorInfo{
			Name:         name,
			Reason:       "Added by user",
			AutoDetected: false,
		})
	}

	for _, detected := range analysis.Competitors {
		name := strings.TrimSpace(detected.Name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		competitors = append(competitors, models.CompetitorInfo{
			Name:         name,
			Reason:       detected.Reason,
			AutoDetected: true,
		})
	}

	return competitors
}

func normalizeURL(websiteURL string) string {
	websiteURL = strings.TrimSpace(websiteURL)
	if !strings.HasPrefix(websiteURL, "http://") && !strings.HasPrefix(websiteURL, "https://") {
		return "https://" + websiteURL
	}
	return websiteURL
}
