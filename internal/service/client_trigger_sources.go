package service

import (
	"context"
	"time"

	"github.com/flicsl/jsonsync/internal/logger"
)

// ChannelSource adapts a caller-owned channel to a [TriggerSource]. The
// expression is ignored. Values are delivered to one subscriber at a time.
type ChannelSource struct {
	values <-chan any
}

func NewChannelSource(values <-chan any) *ChannelSource {
	return &ChannelSource{values: values}
}

// Subscribe implements [TriggerSource]. The returned channel closes when ctx
// is done or the wrapped channel is closed.
func (c *ChannelSource) Subscribe(ctx context.Context, _ string) <-chan any {
	out := make(chan any)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-c.values:
				if !ok {
					return
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// PollingSource is a [TriggerSource] that asks a getter for the watched value
// on every tick and publishes the answer. Failed polls publish nothing.
type PollingSource struct {
	getter   func(ctx context.Context) (any, error)
	interval time.Duration
	job      PollingJob
	hub      *hub

	logger *logger.Logger
}

// pollingKey is the hub key every PollingSource subscriber shares.
const pollingKey = ""

// NewPollingSource creates an idle source polling getter every interval once
// started. A non-positive interval means [DefaultPollInterval].
func NewPollingSource(getter func(ctx context.Context) (any, error), interval time.Duration, log *logger.Logger) *PollingSource {
	if log == nil {
		log = logger.Nop()
	}

	p := &PollingSource{
		getter:   getter,
		interval: interval,
		hub:      newHub(),
		logger:   log,
	}
	p.job = NewPollingJob(p.poll)

	return p
}

// Start begins polling, restarting the ticker if it already runs.
func (p *PollingSource) Start(ctx context.Context) {
	p.job.Start(ctx, p.interval)
}

// Stop ends polling and waits for an in-flight poll to finish.
func (p *PollingSource) Stop() {
	p.job.Stop()
}

// Subscribe implements [TriggerSource]. The expression is ignored.
func (p *PollingSource) Subscribe(ctx context.Context, _ string) <-chan any {
	return p.hub.subscribe(ctx, pollingKey)
}

func (p *PollingSource) poll(ctx context.Context) {
	v, err := p.getter(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("poll failed")
		return
	}
	p.hub.publish(pollingKey, v)
}
