// Package tui implements the terminal browser: a bubbletea program that
// renders a synchronizer's view-model and drives its operations from the
// keyboard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/flicsl/jsonsync/internal/logger"
	"github.com/flicsl/jsonsync/internal/service"
	"github.com/flicsl/jsonsync/models"
)

// View-model slots the browser reads and writes.
const (
	CollectionField = "items"
	InstanceField   = "selected"
	QueryValue      = service.DefaultTriggerExpression
)

var ErrNoViewModel = errors.New("terminal ui needs a view-model")

type TUI struct {
	vm        *service.ViewModel
	resource  string
	buildInfo models.AppBuildInfo

	mu      sync.Mutex
	program *tea.Program

	logger *logger.Logger
}

// New creates a browser over vm. resource is only used as the page title.
func New(vm *service.ViewModel, resource string, buildInfo models.AppBuildInfo, log *logger.Logger) (*TUI, error) {
	if vm == nil {
		return nil, ErrNoViewModel
	}
	if log == nil {
		log = logger.Nop()
	}

	return &TUI{
		vm:        vm,
		resource:  resource,
		buildInfo: buildInfo,
		logger:    log,
	}, nil
}

// Run shows the browser and blocks until the user quits or ctx is done.
func (t *TUI) Run(ctx context.Context, synchronizer service.ResourceSynchronizer) error {
	model := newBrowserModel(ctx, synchronizer, t.vm, t.resource, t.buildInfo)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	t.mu.Lock()
	t.program = program
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.program = nil
		t.mu.Unlock()
	}()

	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run terminal ui: %w", err)
	}

	t.logger.Debug().Msg("terminal ui closed")
	return nil
}

// Refresh asks a running browser to redraw from the view-model. It is safe
// for concurrent use and does nothing when no browser runs.
func (t *TUI) Refresh() {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		go program.Send(refreshMsg{})
	}
}
