package categorizer

import (
	"strings"

	"semcat/internal/models"
	"semcat/internal/taxonomy"
)

const (
	maxThemes           = 5
	themeKeywordFloor   = 0.1
	themeEntityFloor    = 0.7
	generalCategoryName = "General"
)

// Synthesizer derives narratives, the primary category, an aggregate
// confidence and themes from a finished analysis.
type Synthesizer struct {
	narratives []taxonomy.NarrativeRule
}

func NewSynthesizer(tables *taxonomy.Tables) *Synthesizer {
	rules := tables.Narratives()
	for i := range rules {
		for j, term := range rules[i].Terms {
			rules[i].Terms[j] = strings.ToLower(term)
		}
	}
	return &Synthesizer{narratives: rules}
}

func (s *Synthesizer) Synthesize(a models.SemanticAnalysis) models.CategorizationResult {
	return models.CategorizationResult{
		PrimaryCategory: PrimaryCategory(a.Categories),
		Narratives:      s.Narratives(a.Categories, a.Keywords),
		Confidence:      OverallConfidence(a.Categories),
		Themes:          Themes(a.Keywords, a.Entities),
	}
}

// Narratives returns, in dictionary order, every narrative whose terms occur
// in a category name or keyword word.
func (s *Synthesizer) Narratives(categories []models.Category, keywords []models.KeywordSignal) []string {
	out := []string{}
	for _, rule := range s.narratives {
		if matchesAny(rule.Terms, categories, keywords) {
			out = append(out, rule.Name)
		}
	}
	return out
}

func matchesAny(terms []string, categories []models.Category, keywords []models.KeywordSignal) bool {
	for _, c := range categories {
		if containsAny(strings.ToLower(c.Name), terms) {
			return true
		}
	}
	for _, k := range keywords {
		if containsAny(strings.ToLower(k.Word), terms) {
			return true
		}
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if t != "" && strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// PrimaryCategory picks the highest-confidence category name. Ties go to the
// earliest entry.
func PrimaryCategory(categories []models.Category) string {
	if len(categories) == 0 {
		return generalCategoryName
	}
	best := categories[0]
	for _, c := range categories[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	return best.Name
}

// OverallConfidence is the mean category confidence.
func OverallConfidence(categories []models.Category) float64 {
	if len(categories) == 0 {
		return 0
	}
	var sum float64
	for _, c := range categories {
		sum += c.Confidence
	}
	return sum / float64(len(categories))
}

// Themes lists important keyword words followed by confident entity names,
// without duplicates, capped at five.
func Themes(keywords []models.KeywordSignal, entities []models.EntityMention) []string {
	out := []string{}
	seen := make(map[string]struct{})
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, k := range keywords {
		if k.Importance > themeKeywordFloor {
			add(k.Word)
		}
	}
	for _, e := range entities {
		if e.Confidence > themeEntityFloor {
			add(e.Name)
		}
	}
	if len(out) > maxThemes {
		out = out[:maxThemes]
	}
	return out
}
