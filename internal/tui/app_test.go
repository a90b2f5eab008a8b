package tui

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/flicsl/jsonsync/internal/adapter"
	"github.com/flicsl/jsonsync/internal/mock"
	"github.com/flicsl/jsonsync/internal/service"
	"github.com/flicsl/jsonsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	statusTimeout = time.Millisecond
	os.Exit(m.Run())
}

type testBrowser struct {
	t      *testing.T
	model  browserModel
	client *mock.MockResourceClient
	vm     *service.ViewModel
}

func newTestBrowser(t *testing.T) *testBrowser {
	t.Helper()

	client := mock.NewMockResourceClient(gomock.NewController(t))
	client.EXPECT().Path().Return("/players").AnyTimes()

	vm := service.NewViewModel()
	sync, err := service.NewResourceSynchronizer(client, vm, service.SynchronizerConfig{
		PageSize:            2,
		CollectionFieldName: CollectionField,
		InstanceFieldName:   InstanceField,
	})
	require.NoError(t, err)

	info := models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123")
	return &testBrowser{
		t:      t,
		model:  newBrowserModel(context.Background(), sync, vm, "/players", info),
		client: client,
		vm:     vm,
	}
}

// send feeds msg to the model and runs every command it returns, feeding
// the resulting messages back until the model settles. Ticks and quit
// messages are not followed.
func (b *testBrowser) send(msg tea.Msg) tea.Msg {
	b.t.Helper()

	queue := []tea.Msg{msg}
	var last tea.Msg
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		updated, cmd := b.model.Update(next)
		b.model = updated.(browserModel)
		queue = append(queue, b.run(cmd)...)
		last = next
	}
	return last
}

func (b *testBrowser) run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, b.run(c)...)
		}
		return out
	case spinner.TickMsg, clearStatusMsg, tea.QuitMsg, nil:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

func (b *testBrowser) press(keys ...string) {
	b.t.Helper()
	for _, k := range keys {
		b.send(keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func players(ids ...string) []models.Item {
	items := make([]models.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, map[string]any{"id": id, "name": "player " + id})
	}
	return items
}

func (b *testBrowser) loadFirstPage(total int, ids ...string) {
	b.t.Helper()

	b.client.EXPECT().
		Find(gomock.Any(), gomock.Any(), models.PageOptions{Page: 0, PageSize: 2}).
		Return(models.PageResponse{Items: players(ids...), TotalCount: total, HasTotalCount: true}, nil)
	b.press("r")
}

// ── list ────────────────────────────────────────────────────────────────────

func TestBrowser_ReloadRendersCollection(t *testing.T) {
	b := newTestBrowser(t)

	b.loadFirstPage(5, "1", "2")

	view := b.model.View()
	assert.Contains(t, view, "jsonsync · /players")
	assert.Contains(t, view, "1  player 1")
	assert.Contains(t, view, "2  player 2")
	assert.Contains(t, view, "2 items")
	assert.NotContains(t, view, statusAllLoaded)
	assert.Contains(t, view, "v1.2.3")
}

func TestBrowser_LoadMoreUntilAllLoaded(t *testing.T) {
	b := newTestBrowser(t)
	b.loadFirstPage(3, "1", "2")

	b.client.EXPECT().
		Find(gomock.Any(), models.Query{models.QueryUnion: true}, models.PageOptions{Page: 1, PageSize: 2}).
		Return(models.PageResponse{Items: players("3"), TotalCount: 3, HasTotalCount: true}, nil)

	b.press("m")
	assert.Equal(t, statusAllLoaded, b.model.list.status)
	assert.Len(t, b.vm.Collection(CollectionField), 3)

	// exhausted: no further request
	b.model.list.status = ""
	b.press("m")
	assert.Equal(t, statusAllLoaded, b.model.list.status)
	assert.Contains(t, b.model.View(), "3 items · "+statusAllLoaded)
}

func TestBrowser_CursorMovement(t *testing.T) {
	b := newTestBrowser(t)
	b.loadFirstPage(2, "1", "2")

	b.press("down", "down")
	assert.Equal(t, 1, b.model.list.idx)
	b.press("up", "up")
	assert.Equal(t, 0, b.model.list.idx)
}

func TestBrowser_SearchUpdatesWatchedValue(t *testing.T) {
	b := newTestBrowser(t)

	b.press("/", "a", "b")
	assert.True(t, b.model.search.Focused())
	assert.Equal(t, "ab", b.vm.Value(QueryValue))

	// keys are typed into the box while it has focus
	b.press("q")
	assert.Equal(t, "abq", b.vm.Value(QueryValue))

	b.press("esc")
	assert.False(t, b.model.search.Focused())
}

func TestBrowser_ReloadUsesSearchText(t *testing.T) {
	b := newTestBrowser(t)
	b.press("/", "x", "enter")

	b.client.EXPECT().
		Find(gomock.Any(), models.Query{models.QueryTextSearch: "x"}, gomock.Any()).
		Return(models.PageResponse{Items: players("9")}, nil)

	b.press("r")
	assert.Len(t, b.vm.Collection(CollectionField), 1)
}

func TestBrowser_LoadErrorShowsOverlay(t *testing.T) {
	b := newTestBrowser(t)

	b.client.EXPECT().
		Find(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.PageResponse{}, &adapter.RequestError{
			StatusCode: 503,
			Payload:    map[string]any{"message": "storage is temporarily unavailable"},
			Err:        adapter.ErrUnexpectedStatus,
		})

	b.press("r")
	require.True(t, b.model.showError)
	assert.Contains(t, b.model.View(), "503: storage is temporarily unavailable")

	// other keys are swallowed until the overlay is closed
	b.press("m", "enter")
	assert.False(t, b.model.showError)
}

// ── detail ──────────────────────────────────────────────────────────────────

func TestBrowser_EnterOpensDetail(t *testing.T) {
	b := newTestBrowser(t)
	b.loadFirstPage(2, "1", "2")

	b.client.EXPECT().
		FindOne(gomock.Any(), "2").
		Return(map[string]any{"id": "2", "name": "player 2", "score": 10.0}, nil)

	b.press("down", "enter")

	require.Equal(t, screenDetail, b.model.currentScreen)
	view := b.model.View()
	assert.Contains(t, view, `"score": 10`)

	b.press("esc")
	assert.Equal(t, screenList, b.model.currentScreen)
}

func TestBrowser_EnterOnItemWithoutID(t *testing.T) {
	b := newTestBrowser(t)

	b.client.EXPECT().
		Find(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.PageResponse{Items: []models.Item{"scalar"}}, nil)
	b.press("r")

	b.press("enter")
	assert.True(t, b.model.showError)
	assert.Equal(t, screenList, b.model.currentScreen)
}

// ── copy / delete ───────────────────────────────────────────────────────────

func TestBrowser_CopySelectedItem(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	b := newTestBrowser(t)
	b.loadFirstPage(2, "1")

	b.press("c")
	assert.JSONEq(t, `{"id": "1", "name": "player 1"}`, copied)
	assert.Equal(t, statusCopied, b.model.list.status)
}

func TestBrowser_CopyFailure(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { writeClipboard = orig })

	b := newTestBrowser(t)
	b.loadFirstPage(1, "1")

	b.press("c")
	assert.True(t, b.model.showError)
	assert.Contains(t, b.model.errorOverlay.message, "no clipboard")
}

func TestBrowser_DeleteAfterConfirm(t *testing.T) {
	b := newTestBrowser(t)
	b.loadFirstPage(2, "1", "2")

	b.client.EXPECT().Destroy(gomock.Any(), "1").Return(models.Ack{"success": true}, nil)

	b.press("d")
	require.True(t, b.model.showConfirm)
	assert.Contains(t, b.model.View(), `Delete "1  player 1"?`)

	b.press("y")
	assert.False(t, b.model.showConfirm)
	assert.Equal(t, statusDeleted, b.model.list.status)
	assert.Equal(t, players("2"), b.vm.Collection(CollectionField))
}

func TestBrowser_DeleteCancelled(t *testing.T) {
	b := newTestBrowser(t)
	b.loadFirstPage(1, "1")

	b.press("d", "n")
	assert.False(t, b.model.showConfirm)
	assert.Empty(t, b.model.pendingDelete)
	assert.Len(t, b.vm.Collection(CollectionField), 1)
}

func TestBrowser_DeleteFromDetailReturnsToList(t *testing.T) {
	b := newTestBrowser(t)
	b.loadFirstPage(1, "1")

	b.client.EXPECT().FindOne(gomock.Any(), "1").Return(players("1")[0], nil)
	b.client.EXPECT().Destroy(gomock.Any(), "1").Return(models.Ack{}, nil)

	b.press("enter", "d", "y")

	assert.Equal(t, screenList, b.model.currentScreen)
	_, ok := b.vm.Instance(InstanceField)
	assert.False(t, ok)
}

// ── misc ────────────────────────────────────────────────────────────────────

func TestBrowser_BuildInfo(t *testing.T) {
	b := newTestBrowser(t)

	b.press("v")
	view := b.model.View()
	assert.Contains(t, view, "Version: 1.2.3")
	assert.Contains(t, view, "Commit: abc123")

	b.press("esc")
	assert.False(t, b.model.showBuildInfo)
}

func TestBrowser_Quit(t *testing.T) {
	b := newTestBrowser(t)

	_, cmd := b.model.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = b.model.Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestBrowser_RefreshClampsCursor(t *testing.T) {
	b := newTestBrowser(t)
	b.loadFirstPage(2, "1", "2")
	b.press("down")

	b.client.EXPECT().Destroy(gomock.Any(), "2").Return(models.Ack{}, nil)
	_, err := b.model.sync.Destroy(context.Background(), "2")
	require.NoError(t, err)

	b.send(refreshMsg{})
	assert.Equal(t, 0, b.model.list.idx)
}
