package service

import (
	"context"
	"time"

	"github.com/flicsl/jsonsync/models"
)

// ResourceSynchronizer binds one REST resource to a [ViewModel]. It owns a
// collection slot and an instance slot of the view-model, drives paginated
// loads into them and keeps the status flags current.
//
// Request failures are not returned as errors by Load, LoadMore and LoadOne:
// they are reported through the result, the IsLoadingError flag and the
// OnLoadError callback. Setting [SynchronizerConfig.RejectOnError] also
// returns them.
type ResourceSynchronizer interface {
	// Load fetches one page and writes it into the collection slot. The page
	// replaces the collection (resetting the current page to 0) unless the
	// merged query carries a truthy "union" key, in which case it is merged
	// into the collection without duplicates.
	Load(ctx context.Context, query models.Query, opts ...LoadOption) (LoadResult, error)

	// LoadMore loads the page after the current one and unions it into the
	// collection. It returns [ErrExhaustedPagination] without issuing a
	// request once the collection is fully loaded.
	LoadMore(ctx context.Context, query models.Query, opts ...LoadOption) (LoadResult, error)

	// LoadOne fetches a single element and writes it into the instance slot.
	LoadOne(ctx context.Context, id string) (InstanceResult, error)

	// Put upserts item on the backend and replaces the element with the same
	// id in the collection, or appends it.
	Put(ctx context.Context, item models.Item) (models.Item, error)

	// Destroy deletes the element on the backend and removes it from the
	// collection and, if it is there, from the instance slot.
	Destroy(ctx context.Context, id string) (models.Ack, error)

	// Reset empties the collection and clears the pagination state.
	Reset()

	// OnTriggerValueChanged routes one watched value to exactly one of the
	// custom trigger callback, LoadOne or Load.
	OnTriggerValueChanged(ctx context.Context, value any) error

	// Watch subscribes to the configured trigger source and routes every
	// change until ctx is cancelled or the source closes. The first value is
	// always routed; later ones only when they differ from the previous one.
	Watch(ctx context.Context) error
}

// TriggerSource is anything a synchronizer can watch. Subscribe returns a
// channel of values for expression; the channel is closed once ctx is done.
type TriggerSource interface {
	Subscribe(ctx context.Context, expression string) <-chan any
}

// PollingJob runs a function on a ticker in the background.
type PollingJob interface {
	// Start stops any running job and starts a new one ticking every
	// interval. A non-positive interval defaults to 5 minutes.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the job and waits for it to exit. It is a no-op when the
	// job is not running.
	Stop()
}
