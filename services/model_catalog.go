// services/model_catalog.go
package services

import "github.com/brandlens/visibility-workflows/internal/models"

// ModelCatalog lists every AI model the service can probe, in report order
var ModelCatalog = []*models.ModelConfig{
	{ID: "gpt-4o", Name: "GPT-4o", Provider: "openai", Model: "gpt-4o"},
	{ID: "gpt-4o-mini", Name: "GPT-4o Mini", Provider: "openai", Model: "gpt-4o-mini"},
	{ID: "claude-sonnet", Name: "Claude Sonnet", Provider: "anthropic", Model: "claude-sonnet-4-20250514"},
	{ID: "claude-haiku", Name: "Claude Haiku", Provider: "anthropic", Model: "claude-3-haiku-20240307"},
	{ID: "gemini-pro", Name: "Gemini Pro", Provider: "gemini", Model: "gemini-1.5-pro"},
	{ID: "gemini-flash", Name: "Gemini Flash", Provider: "gemini", Model: "gemini-2.0-flash"},
}

// ResolveModels maps configured model identifiers to catalog entries,
// preserving the configured order. Identifiers are matched against catalog
// IDs first, then provider-side model names, so both "claude-sonnet" and
// "claude-sonnet-4-20250514" resolve. Unknown identifiers are passed through
// as-is and left to the provider factory to accept or reject.
func ResolveModels(ids []string) []*models.ModelConfig {
	resolved := make([]*models.ModelConfig, 0, len(ids))
	for _, id := range ids {
		if entry := lookupModel(id); entry != nil {
			resolved = append(resolved, entry)
			continue
		}
		resolved = append(resolved, &models.ModelConfig{ID: id, Name: id, Model: id})
	}
	return resolved
}

func lookupModel(id string) *models.ModelConfig {
	for _, entry := range ModelCatalog {
		if entry.ID == id || entry.Model == id {
			return entry
		}
	}
	return nil
}
