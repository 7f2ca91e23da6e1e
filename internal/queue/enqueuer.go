package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

// NewDownloadSlidesTask builds a slide download task. The webhook call it
// triggers is not idempotent, so the task is never retried.
func NewDownloadSlidesTask(platformID string) (*asynq.Task, error) {
	payload, err := json.Marshal(DownloadSlidesPayload{PlatformID: platformID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDownloadSlides, payload, asynq.MaxRetry(0)), nil
}

type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueSlideDownload(ctx context.Context, platformID string) error {
	task, err := NewDownloadSlidesTask(platformID)
	if err != nil {
		return err
	}

	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	log.Printf("Task enqueued: %s %s", info.Type, platformID)
	return nil
}
