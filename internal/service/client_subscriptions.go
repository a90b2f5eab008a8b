package service

import (
	"context"
	"sync"
)

// subscription buffers published values for one subscriber so publishers
// never block on slow readers.
type subscription struct {
	mu     sync.Mutex
	queue  []any
	notify chan struct{}
}

func newSubscription() *subscription {
	return &subscription{notify: make(chan struct{}, 1)}
}

func (s *subscription) push(v any) {
	s.mu.Lock()
	s.queue = append(s.queue, v)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *subscription) drain() []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := s.queue
	s.queue = nil
	return values
}

// hub fans published values out to the subscribers of a key.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[*subscription]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[*subscription]struct{})}
}

// subscribe registers a subscriber for key, queues initial values first and
// returns the delivery channel. The channel is closed when ctx is done.
func (h *hub) subscribe(ctx context.Context, key string, initial ...any) <-chan any {
	sub := newSubscription()
	for _, v := range initial {
		sub.push(v)
	}

	h.mu.Lock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[*subscription]struct{})
	}
	h.subs[key][sub] = struct{}{}
	h.mu.Unlock()

	out := make(chan any)
	go func() {
		defer close(out)
		defer h.unsubscribe(key, sub)

		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.notify:
			}

			for _, v := range sub.drain() {
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

func (h *hub) publish(key string, v any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[key] {
		sub.push(v)
	}
}

func (h *hub) unsubscribe(key string, sub *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[key], sub)
	if len(h.subs[key]) == 0 {
		delete(h.subs, key)
	}
}

func (h *hub) subscribers(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[key])
}
