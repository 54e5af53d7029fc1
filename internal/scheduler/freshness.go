// Package scheduler runs the periodic job freshness sweep.
package scheduler

import (
	"context"
	"log"
	"time"

	"talenthub/internal/infrastructure/cache"
	"talenthub/internal/repository"

	"github.com/robfig/cron/v3"
)

// endingSoonWindow is how far before the deadline a job is flagged.
const endingSoonWindow = 72 * time.Hour

// Freshness keeps job statuses in step with their deadlines: active jobs
// near the deadline become "Ending Soon", past-deadline jobs close.
type Freshness struct {
	jobs   repository.JobRepository
	cache  *cache.Redis
	logger *log.Logger

	cron *cron.Cron
}

func NewFreshness(jobs repository.JobRepository, c *cache.Redis, logger *log.Logger) *Freshness {
	return &Freshness{jobs: jobs, cache: c, logger: logger, cron: cron.New()}
}

// Start schedules the hourly sweep and runs one immediately so a restart
// never leaves stale statuses for up to an hour.
func (f *Freshness) Start(ctx context.Context) error {
	_, err := f.cron.AddFunc("@hourly", func() { f.Sweep(ctx) })
	if err != nil {
		return err
	}
	f.cron.Start()
	go f.Sweep(ctx)
	return nil
}

func (f *Freshness) Stop() {
	<-f.cron.Stop().Done()
}

// Sweep applies both transitions and invalidates the job listing cache
// when anything changed.
func (f *Freshness) Sweep(ctx context.Context) {
	ending, err := f.jobs.MarkEndingSoon(ctx, endingSoonWindow)
	if err != nil {
		f.logf("freshness: mark ending soon failed | err=%v", err)
	}
	closed, err := f.jobs.CloseExpired(ctx)
	if err != nil {
		f.logf("freshness: close expired failed | err=%v", err)
	}

	if ending+closed > 0 {
		f.logf("freshness: sweep done | ending_soon=%d closed=%d", ending, closed)
		if f.cache != nil {
			if err := f.cache.InvalidateJobCaches(ctx); err != nil {
				f.logf("freshness: cache invalidation failed | err=%v", err)
			}
		}
	}
}

func (f *Freshness) logf(format string, args ...any) {
	if f.logger != nil {
		f.logger.Printf(format, args...)
	}
}
