package models

// Category is a coarse topical label. Confidence is a similarity/overlap
// strength in [0,1], not a calibrated probability.
type Category struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Confidence float64  `json:"confidence"`
	Parent     string   `json:"parent,omitempty"`
	Children   []string `json:"children,omitempty"`
}

// SentimentScore holds a score in [-1,1] and a confidence in [0,0.8].
type SentimentScore struct {
	Score      float64 `json:"score"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type KeywordSignal struct {
	Word       string  `json:"word"`
	Importance float64 `json:"importance"`
	Category   string  `json:"category,omitempty"`
}

// EntityMention is only populated by the enriched external path.
type EntityMention struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// SemanticAnalysis is the canonical intermediate record produced for one text.
type SemanticAnalysis struct {
	Text       string          `json:"text"`
	Categories []Category      `json:"categories"`
	Sentiment  SentimentScore  `json:"sentiment"`
	Entities   []EntityMention `json:"entities"`
	Keywords   []KeywordSignal `json:"keywords"`
}

// CategorizationResult is the public record consumed by ranking and display.
type CategorizationResult struct {
	PrimaryCategory string   `json:"primaryCategory"`
	Narratives      []string `json:"narratives"`
	Confidence      float64  `json:"confidence"`
	Themes          []string `json:"themes"`
}

// ContentInput is a titled piece of content submitted for narrative categorization.
type ContentInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// SourceSentiment, CategoryMentions and NarrativeMindshare make up the
// realtime snapshot table.
type SourceSentiment struct {
	Source string  `json:"source"`
	Score  float64 `json:"score"`
	Trend  float64 `json:"trend"`
}

type CategoryMentions struct {
	Name     string  `json:"name"`
	Mentions int     `json:"mentions"`
	Change   float64 `json:"change"`
}

type NarrativeMindshare struct {
	Name      string  `json:"name"`
	Mindshare float64 `json:"mindshare"`
	Momentum  float64 `json:"momentum"`
}

type RealtimeSnapshot struct {
	Sentiment  []SourceSentiment    `json:"sentiment"`
	Categories []CategoryMentions   `json:"categories"`
	Narratives []NarrativeMindshare `json:"narratives"`
}

// DefaultCategorization returns the fixed result substituted when categorization
// of an item faults. The literal values are part of the wire contract.
func DefaultCategorization() CategorizationResult {
	return CategorizationResult{
		PrimaryCategory: "General",
		Narratives:      []string{"DeFi"},
		Confidence:      0.5,
		Themes:          []string{"Crypto"},
	}
}

// EmptyAnalysis is a neutral record with no signals, used when even the
// heuristic classifier cannot run.
func EmptyAnalysis(text string) SemanticAnalysis {
	return SemanticAnalysis{
		Text:       text,
		Categories: []Category{},
		Sentiment:  SentimentScore{Label: SentimentNeutral},
		Entities:   []EntityMention{},
		Keywords:   []KeywordSignal{},
	}
}
