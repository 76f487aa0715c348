// Package jobs runs narrative categorization in the background through Asynq.
package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"semcat/internal/models"
	"semcat/internal/tasks"
)

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// AsynqJobClient enqueues categorization tasks.
type AsynqJobClient struct {
	client taskEnqueuer
}

func NewAsynqJobClient(redis asynq.RedisClientOpt) *AsynqJobClient {
	return &AsynqJobClient{client: asynq.NewClient(redis)}
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}

// EnqueueCategorize schedules CategorizeNarrative for content and returns the task id.
func (jc *AsynqJobClient) EnqueueCategorize(ctx context.Context, content models.ContentInput) (string, error) {
	if jc.client == nil {
		return "", fmt.Errorf("AsynqJobClient internal client is not initialized")
	}
	task, err := NewCategorizeTask(content)
	if err != nil {
		return "", err
	}
	info, err := jc.client.EnqueueContext(ctx, task,
		asynq.Queue(tasks.QueueCategorize),
		asynq.TaskID(uuid.NewString()),
		asynq.Retention(retention),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}
	log.WithFields(log.Fields{"task_id": info.ID, "queue": info.Queue}).Debug("Enqueued categorization task")
	return info.ID, nil
}
