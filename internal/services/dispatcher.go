package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"semcat/internal/models"
	"semcat/pkg/categorizer"
)

// dispatch routes one text to the provider or the heuristic classifier and
// reports which path produced the analysis.
func (s *AnalysisService) dispatch(ctx context.Context, text string) categorizer.Outcome {
	words := len(strings.Fields(text))
	if words < s.minWordCount {
		return s.fallback(ctx, text, models.FallbackShortText, log.Fields{"words": words})
	}
	if s.provider == nil {
		return s.fallback(ctx, text, models.FallbackUpstreamUnavailable, log.Fields{"words": words})
	}

	body, err := s.provider.Analyze(ctx, text)
	if err != nil {
		return s.fallback(ctx, text, reasonFor(err), log.Fields{"words": words, "error": err})
	}

	outcome := s.normalizer.Normalize(body, text)
	if outcome.Fallback() {
		logFallback(outcome.Reason, log.Fields{"words": words})
		return outcome
	}
	s.enrich(ctx, &outcome.Analysis)
	return outcome
}

// safeAnalyze recovers a fault during dispatch and substitutes the heuristic
// analysis of the same text.
func (s *AnalysisService) safeAnalyze(ctx context.Context, text string) (outcome categorizer.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = s.fallback(ctx, text, models.FallbackItemFailure,
				log.Fields{"error": fmt.Errorf("%w: %v", models.ErrItemFailure, r)})
		}
	}()
	return s.dispatch(ctx, text)
}

// fallback runs the heuristic classifier. A fault inside it yields an empty
// analysis, so the recover in safeAnalyze never re-panics.
func (s *AnalysisService) fallback(ctx context.Context, text string, reason models.FallbackReason, fields log.Fields) (outcome categorizer.Outcome) {
	logFallback(reason, fields)
	defer func() {
		if r := recover(); r != nil {
			log.WithField("error", fmt.Errorf("%w: %v", models.ErrItemFailure, r)).Error("Heuristic analysis failed")
			outcome = categorizer.Outcome{Analysis: models.EmptyAnalysis(text), Reason: models.FallbackItemFailure}
		}
	}()
	return categorizer.Outcome{Analysis: s.heuristic.Analyze(ctx, text), Reason: reason}
}

// enrich fills entities on the external path. Extraction errors leave the
// entity list empty.
func (s *AnalysisService) enrich(ctx context.Context, a *models.SemanticAnalysis) {
	if s.entities == nil {
		return
	}
	entities, err := s.entities.ExtractEntities(ctx, a.Text)
	if err != nil {
		log.WithError(err).Warn("Entity extraction failed")
		return
	}
	if entities != nil {
		a.Entities = entities
	}
}

func reasonFor(err error) models.FallbackReason {
	if errors.Is(err, models.ErrContractViolation) {
		return models.FallbackContractViolation
	}
	return models.FallbackUpstreamUnavailable
}

func logFallback(reason models.FallbackReason, fields log.Fields) {
	entry := log.WithField("reason", string(reason))
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	// Short texts are the expected path, not a degradation.
	if reason == models.FallbackShortText {
		entry.Debug("Using heuristic analysis")
		return
	}
	entry.Warn("Falling back to heuristic analysis")
}
