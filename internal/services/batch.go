package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"semcat/internal/models"
)

// AnalyzeBatch analyzes every text concurrently. The result at index i always
// belongs to texts[i]; a failing item is replaced by its heuristic analysis.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, texts []string) []models.SemanticAnalysis {
	out := make([]models.SemanticAnalysis, len(texts))
	var g errgroup.Group
	for i, text := range texts {
		g.Go(func() error {
			out[i] = s.safeAnalyze(ctx, text).Analysis
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// CategorizeBatch categorizes every content item concurrently, preserving
// input order. A failing item yields models.DefaultCategorization.
func (s *AnalysisService) CategorizeBatch(ctx context.Context, contents []models.ContentInput) []models.CategorizationResult {
	out := make([]models.CategorizationResult, len(contents))
	var g errgroup.Group
	for i, content := range contents {
		g.Go(func() error {
			out[i] = s.CategorizeNarrative(ctx, content)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
