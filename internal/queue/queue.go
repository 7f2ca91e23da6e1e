package queue

import (
	"github.com/maheshrc27/contentflow/internal/service"
)

type Queue struct {
	cs service.CallbackService
}

func NewQueue(cs service.CallbackService) *Queue {
	return &Queue{cs: cs}
}

const TaskTypeDownloadSlides = "slides:download"

type DownloadSlidesPayload struct {
	PlatformID string `json:"platform_id"`
}
