package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"semcat/internal/models"
	"semcat/internal/services"
	"semcat/internal/tasks"
)

// Completed tasks keep their result in Redis this long.
const retention = 24 * time.Hour

// Categorizer is the part of the analysis service the worker needs.
type Categorizer interface {
	CategorizeNarrative(ctx context.Context, content models.ContentInput) models.CategorizationResult
}

type CategorizePayload struct {
	Content models.ContentInput `json:"content"`
}

func NewCategorizeTask(content models.ContentInput) (*asynq.Task, error) {
	payload, err := json.Marshal(CategorizePayload{Content: content})
	if err != nil {
		return nil, fmt.Errorf("encode categorize payload: %w", err)
	}
	return asynq.NewTask(tasks.TypeCategorizeNarrative, payload), nil
}

func RegisterHandlers(mux *asynq.ServeMux, svc Categorizer) {
	log.Infof("Registering handler for %s", tasks.TypeCategorizeNarrative)
	mux.HandleFunc(tasks.TypeCategorizeNarrative, HandleCategorize(svc))
}

// HandleCategorize runs the categorization and stores the JSON result on the task.
// Malformed payloads are not retried.
func HandleCategorize(svc Categorizer) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		result, err := categorize(ctx, svc, t)
		if err != nil {
			return err
		}
		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("encode categorization result: %w", err)
		}
		if w := t.ResultWriter(); w != nil {
			if _, err := w.Write(data); err != nil {
				return fmt.Errorf("write categorization result: %w", err)
			}
		}
		return nil
	}
}

func categorize(ctx context.Context, svc Categorizer, t *asynq.Task) (models.CategorizationResult, error) {
	var p CategorizePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return models.CategorizationResult{}, fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	content, err := services.ValidateContent(p.Content)
	if err != nil {
		return models.CategorizationResult{}, fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	result := svc.CategorizeNarrative(ctx, content)
	log.WithFields(log.Fields{
		"title":   content.Title,
		"primary": result.PrimaryCategory,
	}).Info("Categorized content")
	return result, nil
}
