package categorizer

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"semcat/internal/models"
	"semcat/internal/taxonomy"
)

const (
	similarityFloor        = 0.3
	maxExternalCategories  = 6
	keywordRatioCeiling    = 0.7
	minKeywordRunes        = 4
	keywordFirstImportance = 0.5
	keywordRepeatBoost     = 0.1
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalizer maps a validated provider payload onto the canonical analysis
// shape. When the payload carries no usable category it delegates the whole
// analysis to the heuristic classifier.
type Normalizer struct {
	heuristic *Heuristic
	tables    *taxonomy.Tables
}

func NewNormalizer(tables *taxonomy.Tables, heuristic *Heuristic) *Normalizer {
	if heuristic == nil {
		heuristic = NewHeuristic(tables)
	}
	return &Normalizer{heuristic: heuristic, tables: tables}
}

// Normalize never returns an analysis without categories.
func (n *Normalizer) Normalize(body ResponseBody, text string) Outcome {
	categories := n.categories(body.Segments)
	if len(categories) == 0 {
		return Outcome{Analysis: n.heuristic.analyze(text), Reason: models.FallbackEmptyCategories}
	}

	sentimentText := body.Compressed()
	if sentimentText == "" {
		sentimentText = text
	}

	return Outcome{Analysis: models.SemanticAnalysis{
		Text:       text,
		Categories: categories,
		Sentiment:  n.heuristic.Sentiment(sentimentText),
		Entities:   []models.EntityMention{},
		Keywords:   n.keywords(body.Segments),
	}}
}

// categories keeps the maximum similarity per category across segments,
// excluding pairs at or below the floor. The list is sorted by descending
// confidence (ties keep first-seen order) before truncation.
func (n *Normalizer) categories(segments []Segment) []models.Category {
	best := make(map[string]float64)
	var order []string
	for _, seg := range segments {
		for _, sim := range seg.CategorySimilarities {
			if sim.Score <= similarityFloor {
				continue
			}
			existing, seen := best[sim.Category]
			if !seen {
				order = append(order, sim.Category)
			}
			if !seen || sim.Score > existing {
				best[sim.Category] = sim.Score
			}
		}
	}

	out := make([]models.Category, len(order))
	for i, name := range order {
		out[i] = models.Category{
			ID:         categoryID(name),
			Name:       name,
			Confidence: best[name],
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	if len(out) > maxExternalCategories {
		out = out[:maxExternalCategories]
	}
	return out
}

// keywords accumulates importance for meaningful words of segments that kept
// most of their content (low, non-zero compression ratio).
func (n *Normalizer) keywords(segments []Segment) []models.KeywordSignal {
	var out []models.KeywordSignal
	index := make(map[string]int)

	for _, seg := range segments {
		if seg.CompressionRatio == nil || *seg.CompressionRatio == 0 || *seg.CompressionRatio >= keywordRatioCeiling {
			continue
		}
		var tag string
		if len(seg.CategorySimilarities) > 0 {
			tag = seg.CategorySimilarities[0].Category
		}
		for _, word := range strings.Fields(strings.ToLower(seg.DetailText())) {
			if utf8.RuneCountInString(word) <= minKeywordRunes || n.tables.IsStopWord(word) {
				continue
			}
			if i, ok := index[word]; ok {
				out[i].Importance += keywordRepeatBoost
				continue
			}
			index[word] = len(out)
			out = append(out, models.KeywordSignal{
				Word:       word,
				Importance: keywordFirstImportance,
				Category:   tag,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Importance > out[j].Importance
	})
	if len(out) > maxKeywords {
		out = out[:maxKeywords]
	}
	if out == nil {
		return []models.KeywordSignal{}
	}
	return out
}

func categoryID(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}
