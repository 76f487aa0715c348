package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"semcat/internal/models"
)

// DefaultSources are used when a caller names no realtime sources.
var DefaultSources = []string{"twitter", "news", "research"}

// TrackRealtimeData returns the trend snapshot. The provider has no realtime
// endpoint, so the snapshot is a fixed placeholder regardless of sources.
func (s *AnalysisService) TrackRealtimeData(_ context.Context, sources []string) models.RealtimeSnapshot {
	log.WithField("sources", sources).Debug("Serving placeholder realtime snapshot")
	return models.RealtimeSnapshot{
		Sentiment: []models.SourceSentiment{
			{Source: "twitter", Score: 0.65, Trend: 0.12},
			{Source: "news", Score: 0.45, Trend: -0.08},
			{Source: "research", Score: 0.78, Trend: 0.05},
		},
		Categories: []models.CategoryMentions{
			{Name: "DeFi", Mentions: 1247, Change: 12.3},
			{Name: "Layer 2", Mentions: 892, Change: -5.7},
			{Name: "AI", Mentions: 456, Change: 25.1},
		},
		Narratives: []models.NarrativeMindshare{
			{Name: "ETF", Mindshare: 8.5, Momentum: 2.1},
			{Name: "Halving", Mindshare: 6.2, Momentum: -1.3},
			{Name: "DeFi", Mindshare: 12.8, Momentum: 3.4},
		},
	}
}
