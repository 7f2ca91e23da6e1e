package job

import (
	"log/slog"
	"time"

	"github.com/maheshrc27/contentflow/internal/cache"
)

const CacheSweepSpec = "@every 10m"

type CacheSweepJob struct {
	cache *cache.EntryCache
	now   func() time.Time
}

func NewCacheSweepJob(c *cache.EntryCache) *CacheSweepJob {
	return &CacheSweepJob{cache: c, now: time.Now}
}

// Sweep drops cached entry lists that are past the cache window.
func (j *CacheSweepJob) Sweep() {
	if evicted := j.cache.Sweep(j.now()); evicted > 0 {
		slog.Info("entry cache swept", "evicted", evicted)
	}
}
