package services

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"semcat/internal/models"
	"semcat/internal/taxonomy"
	"semcat/pkg/categorizer"
)

// DefaultMinWordCount is the word count below which texts are classified
// locally without calling the provider.
const DefaultMinWordCount = 100

// Provider is the external semantic analysis backend.
type Provider interface {
	Analyze(ctx context.Context, text string) (categorizer.ResponseBody, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

type AnalysisServiceDeps struct {
	Provider     Provider
	Tables       *taxonomy.Tables
	Entities     categorizer.EntityExtractor // optional
	MinWordCount int
}

// AnalysisService exposes the public operations. None of its methods return
// errors: every failure below it degrades to a heuristic or default result.
type AnalysisService struct {
	provider     Provider
	tables       *taxonomy.Tables
	entities     categorizer.EntityExtractor
	minWordCount int

	heuristic   *categorizer.Heuristic
	normalizer  *categorizer.Normalizer
	synthesizer *categorizer.Synthesizer
}

func NewAnalysisService(deps AnalysisServiceDeps) *AnalysisService {
	tables := deps.Tables
	if tables == nil {
		tables = taxonomy.Default()
	}
	minWords := deps.MinWordCount
	if minWords <= 0 {
		minWords = DefaultMinWordCount
	}
	heuristic := categorizer.NewHeuristic(tables)
	return &AnalysisService{
		provider:     deps.Provider,
		tables:       tables,
		entities:     deps.Entities,
		minWordCount: minWords,
		heuristic:    heuristic,
		normalizer:   categorizer.NewNormalizer(tables, heuristic),
		synthesizer:  categorizer.NewSynthesizer(tables),
	}
}

// AnalyzeText produces a semantic analysis for text.
func (s *AnalysisService) AnalyzeText(ctx context.Context, text string) models.SemanticAnalysis {
	return s.safeAnalyze(ctx, text).Analysis
}

// CategorizeNarrative analyzes a titled content item and synthesizes its
// narrative labels. Any fault while doing so yields models.DefaultCategorization.
func (s *AnalysisService) CategorizeNarrative(ctx context.Context, content models.ContentInput) (result models.CategorizationResult) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"title": content.Title,
				"error": fmt.Errorf("%w: %v", models.ErrItemFailure, r),
			}).Error("Narrative categorization failed, using default result")
			result = models.DefaultCategorization()
		}
	}()

	outcome := s.dispatch(ctx, NarrativeText(content))
	if outcome.Reason == models.FallbackItemFailure {
		return models.DefaultCategorization()
	}
	return s.synthesizer.Synthesize(outcome.Analysis)
}

// NarrativeText joins the fields of a content item into the analyzed text.
func NarrativeText(content models.ContentInput) string {
	return content.Title + " " + content.Description + " " + strings.Join(content.Tags, " ")
}

// CategoryHierarchy returns the provider's category tree, or the static root
// list when the provider cannot supply one.
func (s *AnalysisService) CategoryHierarchy(ctx context.Context) []models.Category {
	if s.provider == nil {
		return s.tables.Hierarchy()
	}
	cats, err := s.provider.Categories(ctx)
	if err != nil {
		log.WithError(err).Warn("Category hierarchy unavailable, using static list")
		return s.tables.Hierarchy()
	}
	return cats
}

// ValidateContent rejects items with neither title nor description and
// normalizes missing tags to an empty list.
func ValidateContent(content models.ContentInput) (models.ContentInput, error) {
	if strings.TrimSpace(content.Title) == "" && strings.TrimSpace(content.Description) == "" {
		return content, fmt.Errorf("%w: content must have at least title or description", models.ErrValidation)
	}
	if content.Tags == nil {
		content.Tags = []string{}
	}
	return content, nil
}
