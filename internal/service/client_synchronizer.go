package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/flicsl/jsonsync/internal/adapter"
	"github.com/flicsl/jsonsync/internal/logger"
	"github.com/flicsl/jsonsync/internal/utils"
	"github.com/flicsl/jsonsync/models"
	"github.com/google/uuid"
)

// LoadResult is the outcome of Load and LoadMore.
type LoadResult struct {
	// Items holds the page returned by the backend.
	Items []models.Item

	// IsFullyLoaded reports whether this page reached the end of the resource.
	IsFullyLoaded bool

	// IsLoadingError reports a request failure; Err holds it.
	IsLoadingError bool
	Err            error

	// Stale is set when a newer request superseded this one and nothing
	// was written.
	Stale bool
}

// InstanceResult is the outcome of LoadOne.
type InstanceResult struct {
	Item models.Item

	IsLoadingError bool
	Err            error

	Stale bool
}

// LoadOption adjusts the page window of a single Load call.
type LoadOption func(o *models.PageOptions)

// WithPage selects the zero-based page to load. LoadMore ignores it.
func WithPage(page int) LoadOption {
	return func(o *models.PageOptions) {
		o.Page = page
	}
}

// WithPageSize overrides the configured page size for one call.
func WithPageSize(size int) LoadOption {
	return func(o *models.PageOptions) {
		o.PageSize = size
	}
}

type resourceSynchronizer struct {
	client adapter.ResourceClient
	target *ViewModel
	cfg    SynchronizerConfig

	// collectionGen advances on every replacing Load. Union pages are fenced
	// only against it, so overlapping LoadMore calls all merge.
	collectionGen atomic.Uint64
	// instanceGen advances on every LoadOne.
	instanceGen atomic.Uint64
	// pending counts requests in flight; guarded by the target's lock.
	pending int

	logger *logger.Logger
}

// NewResourceSynchronizer binds client to target. It returns an error
// wrapping [ErrConfiguration] when client or target is nil, when the page
// size is negative or when a trigger has no source. On success the target's
// current page is set to 0.
func NewResourceSynchronizer(client adapter.ResourceClient, target *ViewModel, cfg SynchronizerConfig) (ResourceSynchronizer, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: resource client is required", ErrConfiguration)
	}
	if target == nil {
		return nil, fmt.Errorf("%w: target view-model is required", ErrConfiguration)
	}

	merged, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	target.update(func(vm *ViewModel) {
		vm.currentPage = 0
	})

	return &resourceSynchronizer{
		client: client,
		target: target,
		cfg:    merged,
		logger: merged.Logger.WithResource(client.Path()),
	}, nil
}

// Load implements [ResourceSynchronizer].
func (s *resourceSynchronizer) Load(ctx context.Context, query models.Query, opts ...LoadOption) (LoadResult, error) {
	window := models.PageOptions{Page: models.DefaultPage, PageSize: s.cfg.PageSize}
	for _, opt := range opts {
		opt(&window)
	}
	window = window.WithDefaults()

	merged := s.cfg.DefaultQuery.Merge(query)
	union := merged.Union()

	token := s.begin(&s.collectionGen, !union, func(vm *ViewModel) {
		vm.isFullyLoaded = false
	})

	ctx = withTrace(ctx)
	s.logger.Debug().
		Int("page", window.Page).
		Int("page_size", window.PageSize).
		Bool("union", union).
		Msg("loading page")

	page, err := s.client.Find(ctx, merged, window)
	if s.stale(&s.collectionGen, token) {
		s.logger.Debug().Int("page", window.Page).Msg("dropping stale page")
		s.finish()
		return LoadResult{Stale: true}, nil
	}

	if err != nil {
		s.fail(err)
		return LoadResult{IsLoadingError: true, Err: err}, s.rejection(err)
	}

	fullyLoaded := page.Exhausts(window)
	s.target.update(func(vm *ViewModel) {
		name := s.cfg.CollectionFieldName
		if union {
			vm.collections[name] = unionItems(vm.collections[name], page.Items)
		} else {
			vm.collections[name] = append([]models.Item{}, page.Items...)
			vm.currentPage = 0
		}
		if fullyLoaded {
			vm.isFullyLoaded = true
		}
	})

	if s.cfg.OnLoad != nil {
		s.cfg.OnLoad(page)
	}
	s.finish()

	return LoadResult{Items: page.Items, IsFullyLoaded: fullyLoaded}, nil
}

// LoadMore implements [ResourceSynchronizer].
func (s *resourceSynchronizer) LoadMore(ctx context.Context, query models.Query, opts ...LoadOption) (LoadResult, error) {
	var nextPage int
	exhausted := false
	s.target.update(func(vm *ViewModel) {
		if vm.isFullyLoaded {
			exhausted = true
			return
		}
		vm.currentPage++
		nextPage = vm.currentPage
	})
	if exhausted {
		return LoadResult{IsFullyLoaded: true}, ErrExhaustedPagination
	}

	unionQuery := query.Merge(models.Query{models.QueryUnion: true})
	opts = append(opts, WithPage(nextPage))

	return s.Load(ctx, unionQuery, opts...)
}

// LoadOne implements [ResourceSynchronizer].
func (s *resourceSynchronizer) LoadOne(ctx context.Context, id string) (InstanceResult, error) {
	token := s.begin(&s.instanceGen, true, nil)

	ctx = withTrace(ctx)
	s.logger.Debug().Str("id", id).Msg("loading instance")

	item, err := s.client.FindOne(ctx, id)
	if s.stale(&s.instanceGen, token) {
		s.logger.Debug().Str("id", id).Msg("dropping stale instance")
		s.finish()
		return InstanceResult{Stale: true}, nil
	}

	if err != nil {
		s.fail(err)
		return InstanceResult{IsLoadingError: true, Err: err}, s.rejection(err)
	}

	s.target.update(func(vm *ViewModel) {
		vm.instances[s.cfg.InstanceFieldName] = item
	})

	if s.cfg.OnLoad != nil {
		s.cfg.OnLoad(item)
	}
	s.finish()

	return InstanceResult{Item: item}, nil
}

// Put implements [ResourceSynchronizer].
func (s *resourceSynchronizer) Put(ctx context.Context, item models.Item) (models.Item, error) {
	stored, err := s.client.Put(withTrace(ctx), item)
	if err != nil {
		s.logger.Warn().Err(err).Msg("put failed")
		return nil, err
	}

	s.target.update(func(vm *ViewModel) {
		name := s.cfg.CollectionFieldName
		vm.collections[name] = upsertItem(vm.collections[name], stored)
	})

	return stored, nil
}

// Destroy implements [ResourceSynchronizer].
func (s *resourceSynchronizer) Destroy(ctx context.Context, id string) (models.Ack, error) {
	ack, err := s.client.Destroy(withTrace(ctx), id)
	if err != nil {
		s.logger.Warn().Err(err).Str("id", id).Msg("destroy failed")
		return nil, err
	}

	s.target.update(func(vm *ViewModel) {
		name := s.cfg.CollectionFieldName
		vm.collections[name] = removeItem(vm.collections[name], id)

		if instanceID, ok := models.ItemID(vm.instances[s.cfg.InstanceFieldName]); ok && instanceID == id {
			delete(vm.instances, s.cfg.InstanceFieldName)
		}
	})

	return ack, nil
}

// Reset implements [ResourceSynchronizer].
func (s *resourceSynchronizer) Reset() {
	s.target.update(func(vm *ViewModel) {
		delete(vm.collections, s.cfg.CollectionFieldName)
		vm.currentPage = 0
		vm.isFullyLoaded = false
		vm.isLoadingError = false
	})
}

// OnTriggerValueChanged implements [ResourceSynchronizer]. Values routed to
// Load become a query: maps are used as is, strings become a "textSearch"
// filter. Values routed to LoadOne become the id.
func (s *resourceSynchronizer) OnTriggerValueChanged(ctx context.Context, value any) error {
	trigger := s.cfg.Trigger
	switch {
	case trigger != nil && trigger.CustomCallback != nil:
		trigger.CustomCallback(ctx, value)
		return nil
	case trigger != nil && trigger.LoadOne:
		_, err := s.LoadOne(ctx, toID(value))
		return err
	default:
		_, err := s.Load(ctx, toQuery(value))
		return err
	}
}

// Watch implements [ResourceSynchronizer].
func (s *resourceSynchronizer) Watch(ctx context.Context) error {
	trigger := s.cfg.Trigger
	if trigger == nil {
		return fmt.Errorf("%w: no trigger configured", ErrConfiguration)
	}

	values := trigger.Source.Subscribe(ctx, trigger.Expression)

	var previous any
	fired := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case v, ok := <-values:
			if !ok {
				return ctx.Err()
			}
			if fired && sameValue(previous, v) {
				continue
			}
			fired = true
			previous = v

			if err := s.OnTriggerValueChanged(ctx, v); err != nil {
				s.logger.Warn().Err(err).Str("expression", trigger.Expression).Msg("trigger routing failed")
			}
		}
	}
}

// begin marks the target as loading and returns the request token taken
// from gen. A request that replaces the slot advances gen, which makes every
// earlier request on that slot stale. prepare, if set, runs under the same
// lock.
func (s *resourceSynchronizer) begin(gen *atomic.Uint64, replaces bool, prepare func(vm *ViewModel)) uint64 {
	var token uint64
	if replaces {
		token = gen.Add(1)
	} else {
		token = gen.Load()
	}
	s.target.update(func(vm *ViewModel) {
		s.pending++
		vm.isLoading = true
		vm.isLoadingError = false
		if prepare != nil {
			prepare(vm)
		}
	})
	return token
}

func (s *resourceSynchronizer) stale(gen *atomic.Uint64, token uint64) bool {
	return s.cfg.FenceStaleResponses && gen.Load() != token
}

func (s *resourceSynchronizer) fail(err error) {
	s.logger.Warn().Err(err).Msg("request failed")

	s.target.update(func(vm *ViewModel) {
		vm.isLoadingError = true
	})
	if s.cfg.OnLoadError != nil {
		s.cfg.OnLoadError(err)
	}
	s.finish()
}

func (s *resourceSynchronizer) finish() {
	s.target.update(func(vm *ViewModel) {
		if s.pending > 0 {
			s.pending--
		}
		vm.isLoading = s.pending > 0
	})
}

func (s *resourceSynchronizer) rejection(err error) error {
	if !s.cfg.RejectOnError {
		return nil
	}
	return err
}

// withTrace tags ctx with a fresh trace id unless it already carries one.
func withTrace(ctx context.Context) context.Context {
	if _, ok := utils.GetTraceIDFromContext(ctx); ok {
		return ctx
	}
	return utils.WithTraceID(ctx, uuid.NewString())
}

func toQuery(value any) models.Query {
	switch v := value.(type) {
	case nil:
		return nil
	case models.Query:
		return v
	case map[string]any:
		return models.Query(v)
	case string:
		if v == "" {
			return nil
		}
		return models.Query{models.QueryTextSearch: v}
	default:
		return models.Query{models.QueryTextSearch: fmt.Sprint(v)}
	}
}

func toID(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
