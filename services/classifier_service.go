// services/classifier_service.go
package services

import (
	"sort"
	"strings"

	"github.com/brandlens/visibility-workflows/internal/models"
)

// Lexicons for the sentiment heuristic. Hits are counted over the sentences
// that mention the brand; the larger count wins, ties are neutral.
var positiveWords = []string{
	"best", "excellent", "great", "top", "leading", "recommended",
	"outstanding", "innovative", "quality", "trusted", "reliable",
	"popular", "favorite", "preferred", "award", "premium",
}

var negativeWords = []string{
	"bad", "poor", "avoid", "problem", "issue", "complaint",
	"expensive", "overpriced", "disappointing", "lacks", "limited",
	"controversy", "criticism", "negative",
}

type classifierService struct{}

func NewClassifierService() ClassifierService {
	return &classifierService{}
}

// Classify analyzes one raw response for brand mentions, position among all
// recognized names, sentiment, and competitor co-mentions. Pure and
// deterministic; never fails on malformed input.
func (s *classifierService) Classify(responseText, brandName string, competitorNames []string) Classification {
	result := Classification{
		Sentiment:            models.SentimentNeutral,
		CompetitorsMentioned: []string{},
	}

	if strings.TrimSpace(responseText) == "" || strings.TrimSpace(brandName) == "" {
		return result
	}

	responseLower := strings.ToLower(responseText)
	brandIdx := firstMentionIndex(responseLower, strings.ToLower(brandName))
	result.Mentioned = brandIdx >= 0

	// Competitor co-mentions, preserving input order
	type nameHit struct {
		name string
		idx  int
	}
	hits := []nameHit{}
	if brandIdx >= 0 {
		hits = append(hits, nameHit{brandName, brandIdx})
	}
	for _, competitor := range competitorNames {
		idx := firstMentionIndex(responseLower, strings.ToLower(competitor))
		if idx < 0 {
			continue
		}
		result.CompetitorsMentioned = append(result.CompetitorsMentioned, competitor)
		hits = append(hits, nameHit{competitor, idx})
	}

	// Position is the brand's 1-based rank among all first occurrences
	if result.Mentioned {
		sort.SliceStable(hits, func(i, j int) bool { return hits[i].idx < hits[j].idx })
		for i, hit := range hits {
			if hit.name == brandName {
				position := i + 1
				result.Position = &position
				break
			}
		}
		result.Sentiment = analyzeSentiment(responseText, brandName)
	}

	return result
}

// firstMentionIndex finds the first whole-word occurrence of name in text.
// Both arguments must already be lowercased. Returns -1 when absent.
// A brand name embedded inside a longer word does not count as a mention.
func firstMentionIndex(textLower, nameLower string) int {
	if nameLower == "" {
		return -1
	}

	offset := 0
	for {
		idx := strings.Index(textLower[offset:], nameLower)
		if idx < 0 {
			return -1
		}
		start := offset + idx
		end := start + len(nameLower)
		if isBoundary(textLower, start-1) && isBoundary(textLower, end) {
			return start
		}
		offset = start + 1
	}
}

// isBoundary reports whether the byte at pos (or the text edge) terminates a
// word. Letters and digits continue a word; everything else breaks it.
func isBoundary(text string, pos int) bool {
	if pos < 0 || pos >= len(text) {
		return true
	}
	c := text[pos]
	return !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9') && c < 0x80
}

// analyzeSentiment scores the sentences that mention the brand against the
// positive/negative lexicons.
func analyzeSentiment(responseText, brandName string) models.Sentiment {
	brandLower := strings.ToLower(brandName)

	var brandSentences []string
	for _, sentence := range strings.Split(responseText, ".") {
		if strings.Contains(strings.ToLower(sentence), brandLower) {
			brandSentences = append(brandSentences, sentence)
		}
	}
	if len(brandSentences) == 0 {
		return models.SentimentNeutral
	}

	text := strings.ToLower(strings.Join(brandSentences, " "))

	positiveCount := 0
	for _, word := range positiveWords {
		if strings.Contains(text, word) {
			positiveCount++
		}
	}
	negativeCount := 0
	for _, word := range negativeWords {
		if strings.Contains(text, word) {
			negativeCount++
		}
	}

	if positiveCount > negativeCount {
		return models.SentimentPositive
	}
	if negativeCount > positiveCount {
		return models.SentimentNegative
	}
	return models.SentimentNeutral
}
