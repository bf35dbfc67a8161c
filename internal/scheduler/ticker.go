package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/logger"
)

// job runs fn every interval and whenever trigger fires, until ctx is done or
// stop is called.
type job struct {
	name     string
	interval time.Duration
	trigger  <-chan struct{}
	log      logger.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
}

func newJob(name string, interval time.Duration, trigger <-chan struct{}, log logger.Logger) job {
	if interval <= 0 {
		interval = time.Hour
	}
	return job{
		name:     name,
		interval: interval,
		trigger:  trigger,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

func (j *job) run(ctx context.Context, fn func(context.Context) error) {
	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := fn(ctx); err != nil {
					j.log.Error(j.name+" failed", logger.Error(err))
				}
			case <-j.trigger:
				j.log.Info("manual " + j.name + " triggered")
				if err := fn(ctx); err != nil {
					j.log.Error(j.name+" failed", logger.Error(err))
				}
			case <-j.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (j *job) stop() {
	j.stopOnce.Do(func() { close(j.stopCh) })
}
