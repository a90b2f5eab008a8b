package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/flicsl/jsonsync/internal/adapter"
	"github.com/flicsl/jsonsync/internal/config"
	"github.com/flicsl/jsonsync/internal/logger"
	"github.com/flicsl/jsonsync/internal/service"
	"github.com/flicsl/jsonsync/internal/tui"
	"github.com/flicsl/jsonsync/internal/workers"
	"github.com/flicsl/jsonsync/models"
)

type App struct {
	vm           *service.ViewModel
	synchronizer service.ResourceSynchronizer
	ui           UI
	poller       service.PollingJob
	cfg          config.Resource

	logger *logger.Logger
}

// NewApp wires the HTTP resource client, the view-model, the synchronizer
// and the terminal browser for cfg.Resource.Path.
func NewApp(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: client config is nil", service.ErrConfiguration)
	}
	if log == nil {
		log = logger.Nop()
	}

	client, err := adapter.NewHTTPResourceClient(cfg.Adapter, cfg.Resource.Path, log)
	if err != nil {
		return nil, err
	}

	vm := service.NewViewModel()
	browser, err := tui.New(vm, client.Path(), buildInfo, log)
	if err != nil {
		return nil, err
	}

	return newApp(client, vm, browser, cfg.Resource, log)
}

func newApp(client adapter.ResourceClient, vm *service.ViewModel, ui UI, cfg config.Resource, log *logger.Logger) (*App, error) {
	synchronizer, err := service.NewResourceSynchronizer(client, vm, service.SynchronizerConfig{
		PageSize:            cfg.PageSize,
		CollectionFieldName: tui.CollectionField,
		InstanceFieldName:   tui.InstanceField,
		OnLoad:              func(any) { ui.Refresh() },
		OnLoadError: func(err error) {
			log.Warn().Err(err).Msg("load failed")
			ui.Refresh()
		},
		Trigger: &service.TriggerConfig{
			Source:     vm,
			Expression: tui.QueryValue,
		},
		FenceStaleResponses: true,
		Logger:              log,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		vm:           vm,
		synchronizer: synchronizer,
		ui:           ui,
		cfg:          cfg,
		logger:       log,
	}
	if cfg.PollInterval > 0 {
		a.poller = service.NewPollingJob(a.reload)
	}

	return a, nil
}

// Run starts the trigger watch and the polling reload, then shows the UI.
// Background loops stop when the UI exits.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	background := workers.New(a.logger, workers.Func(a.synchronizer.Watch))
	background.Run(ctx)

	if a.poller != nil {
		a.poller.Start(ctx, a.cfg.PollInterval)
		defer a.poller.Stop()
	}

	a.logger.Info().
		Int("page_size", a.cfg.PageSize).
		Dur("poll_interval", a.cfg.PollInterval).
		Msg("client started")

	uiErr := a.ui.Run(ctx, a.synchronizer)

	cancel()
	if err := background.Wait(); err != nil {
		a.logger.Err(err).Msg("background workers failed")
	}

	if errors.Is(uiErr, context.Canceled) {
		return nil
	}
	return uiErr
}

// reload re-runs the current query from the first page.
func (a *App) reload(ctx context.Context) {
	if err := a.synchronizer.OnTriggerValueChanged(ctx, a.vm.Value(tui.QueryValue)); err != nil {
		a.logger.Warn().Err(err).Msg("polling reload failed")
	}
}
