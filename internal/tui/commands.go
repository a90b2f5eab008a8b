package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// statusTimeout is how long a status line stays visible.
var statusTimeout = 2 * time.Second

// writeClipboard is replaced in tests, where no clipboard is available.
var writeClipboard = clipboard.WriteAll

func (m browserModel) cmdReload() tea.Cmd {
	ctx, sync, query := m.ctx, m.sync, searchQuery(m.search.Value())
	return func() tea.Msg {
		res, err := sync.Load(ctx, query)
		return loadedMsg{result: res, err: err}
	}
}

func (m browserModel) cmdLoadMore() tea.Cmd {
	ctx, sync, query := m.ctx, m.sync, searchQuery(m.search.Value())
	return func() tea.Msg {
		res, err := sync.LoadMore(ctx, query)
		return loadedMsg{result: res, more: true, err: err}
	}
}

func (m browserModel) cmdLoadOne(id string) tea.Cmd {
	ctx, sync := m.ctx, m.sync
	return func() tea.Msg {
		res, err := sync.LoadOne(ctx, id)
		return instanceLoadedMsg{result: res, err: err}
	}
}

func (m browserModel) cmdDestroy(id string) tea.Cmd {
	ctx, sync := m.ctx, m.sync
	return func() tea.Msg {
		_, err := sync.Destroy(ctx, id)
		return destroyedMsg{id: id, err: err}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return failedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
