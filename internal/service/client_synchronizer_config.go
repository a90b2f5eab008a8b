package service

import (
	"context"
	"fmt"
	"maps"

	"dario.cat/mergo"
	"github.com/flicsl/jsonsync/internal/logger"
	"github.com/flicsl/jsonsync/models"
)

// Defaults applied to a [SynchronizerConfig] for every field left zero.
const (
	DefaultPageSize            = models.DefaultPageSize
	DefaultCollectionFieldName = "resource"
	DefaultInstanceFieldName   = "instance"
)

// SynchronizerConfig tunes a [ResourceSynchronizer]. The synchronizer keeps
// its own copy, so changing a config after construction has no effect.
type SynchronizerConfig struct {
	// PageSize is the default number of elements per page.
	PageSize int

	// CollectionFieldName names the view-model collection the synchronizer owns.
	CollectionFieldName string

	// InstanceFieldName names the view-model instance slot LoadOne writes.
	InstanceFieldName string

	// DefaultQuery is merged under every query passed to Load.
	DefaultQuery models.Query

	// OnLoad receives the models.PageResponse of a collection load or the
	// element of a LoadOne.
	OnLoad func(response any)

	// OnLoadError receives every request failure.
	OnLoadError func(err error)

	// Trigger makes the synchronizer react to a watched value. Nil disables
	// Watch.
	Trigger *TriggerConfig

	// RejectOnError makes Load, LoadMore and LoadOne also return request
	// failures as errors.
	RejectOnError bool

	// FenceStaleResponses drops the outcome of a request superseded on its
	// slot: a replacing Load supersedes earlier collection loads, a LoadOne
	// supersedes earlier LoadOne calls. LoadMore pages are always merged.
	FenceStaleResponses bool

	Logger *logger.Logger
}

// TriggerConfig describes what a synchronizer watches and what it does on
// change. CustomCallback supersedes LoadOne, which supersedes Load.
type TriggerConfig struct {
	// Source emits the watched values. Required.
	Source TriggerSource

	// Expression names the watched value inside Source. Empty means
	// [DefaultTriggerExpression].
	Expression string

	// LoadOne routes changes to LoadOne instead of Load.
	LoadOne bool

	// CustomCallback, when set, receives every change instead of the
	// synchronizer's own loads.
	CustomCallback func(ctx context.Context, value any)
}

// withDefaults returns a copy of cfg merged over the defaults per field.
func (cfg SynchronizerConfig) withDefaults() (SynchronizerConfig, error) {
	if cfg.PageSize < 0 {
		return SynchronizerConfig{}, fmt.Errorf("%w: page size must be positive, got %d", ErrConfiguration, cfg.PageSize)
	}

	defaults := SynchronizerConfig{
		PageSize:            DefaultPageSize,
		CollectionFieldName: DefaultCollectionFieldName,
		InstanceFieldName:   DefaultInstanceFieldName,
	}

	merged := cfg
	merged.Logger = nil
	merged.Trigger = nil
	if err := mergo.Merge(&merged, defaults); err != nil {
		return SynchronizerConfig{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	merged.DefaultQuery = maps.Clone(cfg.DefaultQuery)

	merged.Logger = cfg.Logger
	if merged.Logger == nil {
		merged.Logger = logger.Nop()
	}

	if cfg.Trigger != nil {
		if cfg.Trigger.Source == nil {
			return SynchronizerConfig{}, fmt.Errorf("%w: trigger needs a source", ErrConfiguration)
		}
		trigger := *cfg.Trigger
		if trigger.Expression == "" {
			trigger.Expression = DefaultTriggerExpression
		}
		merged.Trigger = &trigger
	}

	return merged, nil
}
