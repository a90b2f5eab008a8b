package service

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/flicsl/jsonsync/models"
)

// DefaultTriggerExpression is the watched value name used when a trigger
// does not name one.
const DefaultTriggerExpression = "query"

// ViewModel is the state a synchronizer writes into: named collections,
// named instances, arbitrary watched values and the loading flags. All
// methods are safe for concurrent use.
//
// ViewModel is also a [TriggerSource]: subscribing to a name yields the
// current value followed by every value later set under that name.
type ViewModel struct {
	mu sync.RWMutex

	collections map[string][]models.Item
	instances   map[string]models.Item
	values      map[string]any

	currentPage    int
	isLoading      bool
	isLoadingError bool
	isFullyLoaded  bool

	watchers *hub
}

// ViewModelSnapshot is a point-in-time copy of a [ViewModel].
type ViewModelSnapshot struct {
	Collections    map[string][]models.Item
	Instances      map[string]models.Item
	Values         map[string]any
	CurrentPage    int
	IsLoading      bool
	IsLoadingError bool
	IsFullyLoaded  bool
}

func NewViewModel() *ViewModel {
	return &ViewModel{
		collections: make(map[string][]models.Item),
		instances:   make(map[string]models.Item),
		values:      make(map[string]any),
		watchers:    newHub(),
	}
}

// Collection returns a copy of the named collection. A collection nothing
// was loaded into yet is nil.
func (vm *ViewModel) Collection(name string) []models.Item {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return slices.Clone(vm.collections[name])
}

// Instance returns the named instance and whether one was loaded.
func (vm *ViewModel) Instance(name string) (models.Item, bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	item, ok := vm.instances[name]
	return item, ok
}

// Value returns the named watched value, or nil.
func (vm *ViewModel) Value(name string) any {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.values[name]
}

// SetValue stores v under name and notifies the subscribers of name.
func (vm *ViewModel) SetValue(name string, v any) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.values[name] = v
	vm.watchers.publish(name, v)
}

// Subscribe implements [TriggerSource]. An empty expression watches
// [DefaultTriggerExpression].
func (vm *ViewModel) Subscribe(ctx context.Context, expression string) <-chan any {
	if expression == "" {
		expression = DefaultTriggerExpression
	}

	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.watchers.subscribe(ctx, expression, vm.values[expression])
}

func (vm *ViewModel) CurrentPage() int {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.currentPage
}

func (vm *ViewModel) IsLoading() bool {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.isLoading
}

func (vm *ViewModel) IsLoadingError() bool {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.isLoadingError
}

func (vm *ViewModel) IsFullyLoaded() bool {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.isFullyLoaded
}

// Snapshot copies the whole state under one lock.
func (vm *ViewModel) Snapshot() ViewModelSnapshot {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	collections := make(map[string][]models.Item, len(vm.collections))
	for name, items := range vm.collections {
		collections[name] = slices.Clone(items)
	}

	return ViewModelSnapshot{
		Collections:    collections,
		Instances:      maps.Clone(vm.instances),
		Values:         maps.Clone(vm.values),
		CurrentPage:    vm.currentPage,
		IsLoading:      vm.isLoading,
		IsLoadingError: vm.isLoadingError,
		IsFullyLoaded:  vm.isFullyLoaded,
	}
}

// update runs fn with the write lock held.
func (vm *ViewModel) update(fn func(vm *ViewModel)) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	fn(vm)
}
