package service

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is used when a polling job is started without a
// positive interval.
const DefaultPollInterval = 5 * time.Minute

type pollingJob struct {
	tick func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPollingJob creates a job that calls tick on a ticker. The job is idle
// until Start is called.
func NewPollingJob(tick func(ctx context.Context)) PollingJob {
	return &pollingJob{tick: tick}
}

// Start implements PollingJob. It stops any previously running job, then
// launches a background goroutine that calls tick every interval. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *pollingJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

// Stop implements PollingJob. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited.
func (j *pollingJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
