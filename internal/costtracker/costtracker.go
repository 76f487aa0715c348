package costtracker

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// CostEvent represents a single AI usage event and its cost.
type CostEvent struct {
	Operation string // e.g., "entity_extraction"
	AmountUSD float64
	Details   map[string]interface{}
}

// CostTracker provides methods to record and report costs.
type CostTracker interface {
	RecordCost(ctx context.Context, event CostEvent) error
	TotalCost(ctx context.Context) (float64, error)
}

// New returns a tracker that logs every event and keeps a running total for
// the life of the process.
func New() CostTracker {
	return &logCostTracker{}
}

type logCostTracker struct {
	mu    sync.Mutex
	total float64
}

func (t *logCostTracker) RecordCost(ctx context.Context, event CostEvent) error {
	t.mu.Lock()
	t.total += event.AmountUSD
	t.mu.Unlock()

	log.WithFields(log.Fields{
		"operation": event.Operation,
		"cost_usd":  event.AmountUSD,
		"model":     event.Details["model_name"],
	}).Debug("Recorded AI usage")
	return nil
}

func (t *logCostTracker) TotalCost(ctx context.Context) (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total, nil
}
