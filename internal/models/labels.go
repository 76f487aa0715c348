package models

/*
Sentiment labels and fallback reasons used throughout the pipeline.
Centralizing these avoids magic strings.
*/

// Sentiment labels
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// FallbackReason records why an analysis came from the heuristic path.
type FallbackReason string

const (
	FallbackNone                FallbackReason = ""
	FallbackShortText           FallbackReason = "short_text"
	FallbackUpstreamUnavailable FallbackReason = "upstream_unavailable"
	FallbackContractViolation   FallbackReason = "contract_violation"
	FallbackEmptyCategories     FallbackReason = "empty_categories"
	FallbackItemFailure         FallbackReason = "item_failure"
)
