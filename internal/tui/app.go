package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/flicsl/jsonsync/internal/service"
	"github.com/flicsl/jsonsync/models"
)

type screen int

const (
	screenList screen = iota
	screenDetail
)

// browserModel is the root model. It never holds resource data itself: every
// View reads the view-model the synchronizer writes into.
type browserModel struct {
	ctx       context.Context
	sync      service.ResourceSynchronizer
	vm        *service.ViewModel
	resource  string
	buildInfo models.AppBuildInfo

	currentScreen screen
	list          listModel
	detail        detailModel
	search        textinput.Model
	spinner       spinner.Model
	height        int

	showBuildInfo bool
	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingDelete string
}

func newBrowserModel(ctx context.Context, sync service.ResourceSynchronizer, vm *service.ViewModel, resource string, buildInfo models.AppBuildInfo) browserModel {
	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "
	search.CharLimit = 256
	search.Cursor.SetMode(cursor.CursorStatic)
	if v, ok := vm.Value(QueryValue).(string); ok {
		search.SetValue(v)
	}

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return browserModel{
		ctx:       ctx,
		sync:      sync,
		vm:        vm,
		resource:  resource,
		buildInfo: buildInfo,
		search:    search,
		spinner:   s,
	}
}

func (m browserModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.forceQuit) {
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			return m.updateConfirm(msg)
		}
		if m.showBuildInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.info) {
				m.showBuildInfo = false
			}
			return m, nil
		}
		if m.search.Focused() {
			return m.updateSearch(msg)
		}

		switch m.currentScreen {
		case screenList:
			return m.updateList(msg)
		case screenDetail:
			return m.updateDetail(msg)
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case refreshMsg:
		m.list.clamp(len(m.items()))
		return m, nil
	case loadedMsg:
		return m.onLoaded(msg)
	case instanceLoadedMsg:
		return m.onInstanceLoaded(msg)
	case destroyedMsg:
		if msg.err != nil {
			m.showErrorf(humanizeError(msg.err))
			return m, nil
		}
		m.pendingDelete = ""
		if m.currentScreen == screenDetail {
			m.currentScreen = screenList
		}
		m.list.clamp(len(m.items()))
		m.list.status = statusDeleted
		return m, cmdClearStatus()
	case failedMsg:
		m.showErrorf(humanizeError(msg.err))
		return m, nil
	case copiedMsg:
		if m.currentScreen == screenDetail {
			m.detail.status = statusCopied
		} else {
			m.list.status = statusCopied
		}
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.list.status = ""
		m.detail.status = ""
		return m, nil
	}

	return m, nil
}

func (m browserModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	snap := m.vm.Snapshot()

	title := "jsonsync · " + m.resource
	if snap.IsLoading {
		title += "  " + m.spinner.View()
	}

	footer := " · v" + valueOrNA(m.buildInfo.BuildVersion())

	var body string
	switch m.currentScreen {
	case screenList:
		data := m.search.View() + "\n\n" + m.list.View(snap.Collections[CollectionField], snap.IsFullyLoaded, m.height)
		hotKeys := "/ search  enter open  m more  r reload  c copy  d delete  v about  q quit"
		body = renderPage(title, data, hotKeys, footer)
	case screenDetail:
		item, ok := snap.Instances[InstanceField]
		hotKeys := "esc back  r reload  c copy  d delete  q quit"
		body = renderPage(title, m.detail.View(item, ok), hotKeys, footer)
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *browserModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m browserModel) items() []models.Item {
	return m.vm.Collection(CollectionField)
}

func (m browserModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	// the synchronizer watches this value and reloads on change
	if after := m.search.Value(); after != before {
		m.vm.SetValue(QueryValue, after)
		m.list.idx = 0
	}

	return m, cmd
}

func (m browserModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.items()

	switch {
	case key.Matches(msg, keys.up):
		if m.list.idx > 0 {
			m.list.idx--
		}
	case key.Matches(msg, keys.down):
		if m.list.idx < len(items)-1 {
			m.list.idx++
		}
	case key.Matches(msg, keys.search):
		return m, m.search.Focus()
	case key.Matches(msg, keys.enter):
		id, ok := m.selectedID(items)
		if !ok {
			return m, nil
		}
		return m, m.cmdLoadOne(id)
	case key.Matches(msg, keys.loadMore):
		return m, m.cmdLoadMore()
	case key.Matches(msg, keys.reload):
		return m, m.cmdReload()
	case key.Matches(msg, keys.copy):
		item, ok := m.list.current(items)
		if !ok {
			return m, nil
		}
		return m, cmdCopyToClipboard(prettyJSON(item))
	case key.Matches(msg, keys.delete):
		item, _ := m.list.current(items)
		id, ok := m.selectedID(items)
		if !ok {
			return m, nil
		}
		m.askDelete(id, itemLabel(item))
	case key.Matches(msg, keys.info):
		m.showBuildInfo = true
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m browserModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item, loaded := m.vm.Instance(InstanceField)

	switch {
	case key.Matches(msg, keys.esc):
		m.currentScreen = screenList
		m.detail.status = ""
	case key.Matches(msg, keys.reload):
		if id, ok := models.ItemID(item); ok {
			return m, m.cmdLoadOne(id)
		}
	case key.Matches(msg, keys.copy):
		if loaded {
			return m, cmdCopyToClipboard(prettyJSON(item))
		}
	case key.Matches(msg, keys.delete):
		if id, ok := models.ItemID(item); ok {
			m.askDelete(id, itemLabel(item))
		}
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m browserModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.showConfirm = false
		if m.pendingDelete == "" {
			return m, nil
		}
		return m, m.cmdDestroy(m.pendingDelete)
	case key.Matches(msg, keys.no), key.Matches(msg, keys.esc):
		m.showConfirm = false
		m.pendingDelete = ""
	}
	return m, nil
}

func (m *browserModel) askDelete(id, label string) {
	m.showConfirm = true
	m.confirm.message = label
	m.pendingDelete = id
}

// selectedID reports the id of the element under the cursor. Elements
// without an id cannot be opened or deleted and raise the error overlay.
func (m *browserModel) selectedID(items []models.Item) (string, bool) {
	item, ok := m.list.current(items)
	if !ok {
		return "", false
	}
	id, ok := models.ItemID(item)
	if !ok {
		m.showErrorf("the selected item has no id")
		return "", false
	}
	return id, true
}

func (m browserModel) onLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, service.ErrExhaustedPagination):
		m.list.status = statusAllLoaded
		return m, cmdClearStatus()
	case msg.err != nil:
		m.showErrorf(humanizeError(msg.err))
	case msg.result.IsLoadingError:
		m.showErrorf(humanizeError(msg.result.Err))
	case msg.more && msg.result.IsFullyLoaded:
		m.list.status = statusAllLoaded
		m.list.clamp(len(m.items()))
		return m, cmdClearStatus()
	}

	m.list.clamp(len(m.items()))
	return m, nil
}

func (m browserModel) onInstanceLoaded(msg instanceLoadedMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err != nil:
		m.showErrorf(humanizeError(msg.err))
	case msg.result.IsLoadingError:
		m.showErrorf(humanizeError(msg.result.Err))
	case msg.result.Stale:
	default:
		m.currentScreen = screenDetail
		m.detail.status = ""
	}
	return m, nil
}
