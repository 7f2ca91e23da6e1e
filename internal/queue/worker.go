package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

func (q *Queue) HandleDownloadSlidesTask(ctx context.Context, task *asynq.Task) error {
	var payload DownloadSlidesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", TaskTypeDownloadSlides, err, asynq.SkipRetry)
	}

	if err := q.cs.DownloadSlides(ctx, payload.PlatformID); err != nil {
		log.Printf("Error downloading slides for %s: %v", payload.PlatformID, err)
		return err
	}

	log.Printf("Slides downloaded for %s", payload.PlatformID)
	return nil
}
