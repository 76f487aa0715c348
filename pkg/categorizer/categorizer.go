// Package categorizer holds the classification core: the dictionary-based
// heuristic classifier, the normalizer for external analysis payloads and the
// narrative/theme synthesizer. Nothing in this package performs I/O except the
// optional LLM entity extractor.
package categorizer

import (
	"context"

	"semcat/internal/models"
)

// Outcome is the internal result of one analysis attempt. Reason is empty when
// the external analysis was used and names the cause otherwise. Outcomes are
// collapsed to a plain SemanticAnalysis before leaving the service layer.
type Outcome struct {
	Analysis models.SemanticAnalysis
	Reason   models.FallbackReason
}

// Fallback reports whether the analysis came from the heuristic path.
func (o Outcome) Fallback() bool {
	return o.Reason != models.FallbackNone
}

// TextAnalyzer produces a semantic analysis for a single text. Implementations
// never fail; degraded inputs yield heuristic analyses.
type TextAnalyzer interface {
	Analyze(ctx context.Context, text string) models.SemanticAnalysis
}

// EntityExtractor finds named entities in text.
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) ([]models.EntityMention, error)
}
