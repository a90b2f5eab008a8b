package workers

import (
	"context"
	"errors"
	"sync"

	"github.com/flicsl/jsonsync/internal/logger"
)

type Workers struct {
	workers []Worker

	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error

	logger *logger.Logger
}

func New(log *logger.Logger, workers ...Worker) *Workers {
	if log == nil {
		log = logger.Nop()
	}
	return &Workers{workers: workers, logger: log}
}

// Run starts every worker on its own goroutine and returns immediately.
func (w *Workers) Run(ctx context.Context) {
	for i, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()

			err := worker.Run(ctx)
			if err == nil || errors.Is(err, context.Canceled) {
				return
			}

			w.logger.Err(err).Int("worker", i).Msg("worker stopped")
			w.mu.Lock()
			w.errs = append(w.errs, err)
			w.mu.Unlock()
		}()
	}
}

// Wait blocks until every worker returned and joins their failures.
// Cancellation is not a failure.
func (w *Workers) Wait() error {
	w.wg.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	return errors.Join(w.errs...)
}
