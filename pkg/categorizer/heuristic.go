package categorizer

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"semcat/internal/models"
	"semcat/internal/taxonomy"
)

const (
	triggerWeight        = 0.3
	maxHeuristicCategory = 0.9
	generalConfidence    = 0.5
	sentimentThreshold   = 0.1
	maxSentimentConf     = 0.8
	maxKeywords          = 10
)

// Heuristic is the dependency-free fallback classifier. It always succeeds.
type Heuristic struct {
	categories []taxonomy.CategoryRule
	positive   []string
	negative   []string
}

// NewHeuristic builds a classifier over the given tables. Trigger phrases are
// lower-cased once here so matching is case-insensitive.
func NewHeuristic(tables *taxonomy.Tables) *Heuristic {
	cats := tables.Categories()
	for i := range cats {
		for j, trig := range cats[i].Triggers {
			cats[i].Triggers[j] = strings.ToLower(trig)
		}
	}
	return &Heuristic{
		categories: cats,
		positive:   tables.PositiveWords(),
		negative:   tables.NegativeWords(),
	}
}

// Analyze classifies text without any external call. Entities are always empty.
func (h *Heuristic) Analyze(_ context.Context, text string) models.SemanticAnalysis {
	return h.analyze(text)
}

func (h *Heuristic) analyze(text string) models.SemanticAnalysis {
	return models.SemanticAnalysis{
		Text:       text,
		Categories: h.Categories(text),
		Sentiment:  h.Sentiment(text),
		Entities:   []models.EntityMention{},
		Keywords:   h.Keywords(text),
	}
}

// Categories emits one category per dictionary entry whose trigger phrases
// occur in text. Each distinct trigger present counts once. Without any match
// the single General category is returned.
func (h *Heuristic) Categories(text string) []models.Category {
	lower := strings.ToLower(text)
	var out []models.Category
	for _, rule := range h.categories {
		matches := countPresent(lower, rule.Triggers)
		if matches == 0 {
			continue
		}
		out = append(out, models.Category{
			ID:         rule.ID,
			Name:       titleCase(rule.ID),
			Confidence: math.Min(float64(matches)*triggerWeight, maxHeuristicCategory),
		})
	}
	if len(out) == 0 {
		return []models.Category{{ID: "general", Name: generalCategoryName, Confidence: generalConfidence}}
	}
	return out
}

// Sentiment scores text by the balance of positive and negative words present.
func (h *Heuristic) Sentiment(text string) models.SentimentScore {
	lower := strings.ToLower(text)
	pos := countPresent(lower, h.positive)
	neg := countPresent(lower, h.negative)

	score := float64(pos-neg) / math.Max(float64(pos+neg), 1)
	return models.SentimentScore{
		Score:      score,
		Label:      sentimentLabel(score),
		Confidence: math.Min(math.Abs(score), maxSentimentConf),
	}
}

// Keywords ranks raw word frequency. No stop-word filtering is applied on
// this path; the external path filters, the heuristic one never did.
func (h *Heuristic) Keywords(text string) []models.KeywordSignal {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return []models.KeywordSignal{}
	}

	counts := make(map[string]int, len(words))
	var order []string
	for _, w := range words {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}

	total := float64(len(words))
	out := make([]models.KeywordSignal, len(order))
	for i, w := range order {
		out[i] = models.KeywordSignal{Word: w, Importance: float64(counts[w]) / total}
	}
	return out
}

func sentimentLabel(score float64) string {
	switch {
	case score > sentimentThreshold:
		return models.SentimentPositive
	case score < -sentimentThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func countPresent(lower string, terms []string) int {
	n := 0
	for _, t := range terms {
		if t != "" && strings.Contains(lower, t) {
			n++
		}
	}
	return n
}

func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
