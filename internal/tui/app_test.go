package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sstrand/romdeck/internal/backend"
	"github.com/sstrand/romdeck/internal/domain"
	"github.com/sstrand/romdeck/internal/log"
	"github.com/sstrand/romdeck/internal/ratelimit"
	"github.com/sstrand/romdeck/internal/service"
	"github.com/sstrand/romdeck/internal/store"
	"github.com/sstrand/romdeck/internal/thumbs"
)

type searchCall struct {
	query  string
	system string
}

type fakeFinder struct {
	mu       sync.Mutex
	searches []searchCall
	launches []string
	result   *domain.SearchResult
}

func (f *fakeFinder) BuildIndex(ctx context.Context) error { return nil }

func (f *fakeFinder) Search(ctx context.Context, query, system string) (*domain.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, searchCall{query: query, system: system})
	if f.result != nil {
		return f.result, nil
	}
	return &domain.SearchResult{}, nil
}

func (f *fakeFinder) Launch(ctx context.Context, game domain.GameEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.launches = append(f.launches, game.Path)
	return nil
}

func (f *fakeFinder) searchCalls() []searchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]searchCall(nil), f.searches...)
}

func testModel(t *testing.T, finder *fakeFinder) Model {
	t.Helper()

	st, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	gameSvc := service.NewGameService(finder, log.NullLogger())
	thumbCache := thumbs.NewCache(st, log.NullLogger())

	m := NewModel(gameSvc, nil, thumbCache, 4, 20, log.NullLogger())
	m.Width = 120
	m.Height = 40
	m.Ready = true
	m.State = StateReady
	m.updateLayout()
	return m
}

// run applies a message and executes any returned command synchronously,
// feeding resulting messages back until the model settles.
func run(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	model, cmd := m.Update(msg)
	m = model.(Model)
	for _, out := range collect(cmd) {
		m = run(t, m, out)
	}
	return m
}

// collect executes a command tree, skipping timers so tests stay instant.
// All real work here is against in-memory fakes and resolves immediately;
// anything slower than the cutoff is a tick or debounce timer.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(50 * time.Millisecond):
		return nil
	}

	switch v := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range v {
			out = append(out, collect(c)...)
		}
		return out
	case nil:
		return nil
	}
	if isTimer(msg) {
		return nil
	}
	return []tea.Msg{msg}
}

func isTimer(msg tea.Msg) bool {
	switch msg.(type) {
	case TickMsg, QueryDebouncedMsg, ClearStatusMsg:
		return true
	}
	return false
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeString(t *testing.T, m Model, text string) Model {
	for _, r := range text {
		m = run(t, m, keyPress(string(r)))
	}
	return m
}

func TestSystemSelectFetchesOnce(t *testing.T) {
	finder := &fakeFinder{result: &domain.SearchResult{
		Items: []domain.GameEntry{
			{System: domain.SystemRef{ID: "NES"}, Name: "Metroid", Path: "/games/NES/metroid.nes"},
			{System: domain.SystemRef{ID: "NES"}, Name: "Super Mario Bros.", Path: "/games/NES/smb.nes"},
		},
		Total: 2, PageSize: 500, Page: 1,
	}}
	m := testModel(t, finder)

	// Systems are sorted by name; walk the sidebar down to one and select it.
	m = run(t, m, keyPress("down"))
	m = run(t, m, keyPress("enter"))

	calls := finder.searchCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "", calls[0].query)
	assert.NotEmpty(t, calls[0].system)
	assert.Equal(t, 2, m.Grid.TotalGames())
	assert.False(t, m.Pending)
}

func TestLocalFilterIssuesNoRequest(t *testing.T) {
	finder := &fakeFinder{result: &domain.SearchResult{
		Items: []domain.GameEntry{
			{Name: "Super Mario Bros."},
			{Name: "The Legend of Zelda"},
			{Name: "Metroid"},
		},
		Total: 3,
	}}
	m := testModel(t, finder)

	m = run(t, m, keyPress("down"))
	m = run(t, m, keyPress("enter"))
	require.Len(t, finder.searchCalls(), 1)

	// Narrow with the grid filter. Everything stays local.
	m = run(t, m, keyPress("/"))
	m = typeString(t, m, "zelda")

	assert.Len(t, finder.searchCalls(), 1)
	require.Len(t, m.Grid.PageItems(), 1)
	assert.Equal(t, "The Legend of Zelda", m.Grid.PageItems()[0].Name)
}

func TestDebounceCollapsesKeystrokes(t *testing.T) {
	finder := &fakeFinder{}
	m := testModel(t, finder)

	m = run(t, m, keyPress("f"))
	m = typeString(t, m, "zelda")
	m = run(t, m, keyPress("backspace"))

	// No timer has fired yet, so nothing has hit the backend.
	assert.Empty(t, finder.searchCalls())

	// A timer armed by an earlier keystroke fires late and is ignored.
	m = run(t, m, QueryDebouncedMsg{Seq: m.debounceSeq - 1})
	assert.Empty(t, finder.searchCalls())

	// The current timer fires and exactly one search goes out.
	m = run(t, m, QueryDebouncedMsg{Seq: m.debounceSeq})
	calls := finder.searchCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, searchCall{query: "zeld", system: ""}, calls[0])
}

func TestOlderSearchResponseCannotOverwriteNewerQuery(t *testing.T) {
	finder := &fakeFinder{}
	m := testModel(t, finder)

	// Issue a search for "zelda" and leave its response in flight.
	m = run(t, m, keyPress("f"))
	m = typeString(t, m, "zelda")
	model, _ := m.Update(QueryDebouncedMsg{Seq: m.debounceSeq})
	m = model.(Model)
	require.True(t, m.Pending)
	gen := m.gen

	// Extend the query. Same scope, same generation, newer query.
	m = typeString(t, m, "x")
	require.Equal(t, "zeldax", m.Query)
	require.Equal(t, gen, m.gen)

	newer := SearchResultsMsg{
		Result: &domain.SearchResult{
			Items: []domain.GameEntry{{Name: "Zelda X"}},
			Total: 1,
		},
		Query: "zeldax",
		Gen:   gen,
	}
	m = run(t, m, newer)
	require.Equal(t, 1, m.Total)

	// The older query's response arrives last and must be dropped.
	older := SearchResultsMsg{
		Result: &domain.SearchResult{
			Items: []domain.GameEntry{{Name: "Zelda"}, {Name: "Zelda II"}},
			Total: 2,
		},
		Query: "zelda",
		Gen:   gen,
	}
	m = run(t, m, older)
	assert.Equal(t, 1, m.Total)
	assert.Equal(t, 1, m.Grid.TotalGames())

	// Same for a late failure of the abandoned query.
	m = run(t, m, SearchFailedMsg{Query: "zelda", Gen: gen, Err: domain.ErrDeviceOffline})
	assert.Empty(t, m.StatusMsg)
}

func TestIndexFailureBannerSurvivesStatusTimer(t *testing.T) {
	finder := &fakeFinder{}
	m := testModel(t, finder)
	m.State = StateIndexing

	m = run(t, m, IndexFailedMsg{Gen: m.gen, Err: domain.ErrDeviceOffline})
	require.Equal(t, StateIndexing, m.State)
	require.True(t, m.StatusIsErr)
	require.NotEmpty(t, m.StatusMsg)

	// A timer armed by an earlier transient status fires late.
	m = run(t, m, ClearStatusMsg{})
	assert.True(t, m.StatusIsErr)
	assert.NotEmpty(t, m.StatusMsg)
}

func TestScopeChangeDiscardsStaleResponse(t *testing.T) {
	finder := &fakeFinder{}
	m := testModel(t, finder)

	m = run(t, m, keyPress("down"))

	// Capture the generation of the in-flight fetch, then switch scope
	// before its response lands.
	model, _ := m.Update(keyPress("enter"))
	m = model.(Model)
	staleGen := m.gen
	require.True(t, m.Pending)

	sys := *m.Sidebar.SelectedSystem()
	m = run(t, m, keyPress("f")) // jump to global scope, bumping the generation

	stale := SystemGamesMsg{
		System: sys,
		Result: &domain.SearchResult{
			Items: []domain.GameEntry{{Name: "Stale Game"}},
			Total: 1,
		},
		Gen: staleGen,
	}
	m = run(t, m, stale)

	assert.Equal(t, 0, m.Grid.TotalGames())
	assert.Equal(t, 0, m.Total)
}

func TestAddressChangeDiscardsPendingResponse(t *testing.T) {
	finder := &fakeFinder{}
	m := testModel(t, finder)

	st, err := store.Open("")
	require.NoError(t, err)
	client := backend.NewClient("mister", ratelimit.New(3, time.Second), log.NullLogger())
	m.SessionSvc = service.NewSessionService(st, client, "mister", log.NullLogger())

	m = run(t, m, keyPress("down"))
	model, _ := m.Update(keyPress("enter"))
	m = model.(Model)
	staleGen := m.gen
	sys := *m.Sidebar.SelectedSystem()

	// Repointing the device invalidates the fetch still in flight.
	model, _ = m.applyAddress("192.168.1.44")
	m = model.(Model)
	require.Equal(t, StateIndexing, m.State)
	require.Equal(t, "192.168.1.44", m.SessionSvc.Address())

	stale := SystemGamesMsg{
		System: sys,
		Result: &domain.SearchResult{
			Items: []domain.GameEntry{{Name: "Stale Game"}},
			Total: 1,
		},
		Gen: staleGen,
	}
	m = run(t, m, stale)

	assert.Equal(t, 0, m.Grid.TotalGames())
	assert.Equal(t, 0, m.Total)
}

func TestEnterLaunchesFocusedGame(t *testing.T) {
	finder := &fakeFinder{result: &domain.SearchResult{
		Items: []domain.GameEntry{
			{System: domain.SystemRef{ID: "NES"}, Name: "Metroid", Path: "/games/NES/metroid.nes"},
		},
		Total: 1,
	}}
	m := testModel(t, finder)

	m = run(t, m, keyPress("down"))
	m = run(t, m, keyPress("enter"))
	require.Equal(t, 1, m.Grid.TotalGames())

	m = run(t, m, keyPress("enter"))
	require.Len(t, finder.launches, 1)
	assert.Equal(t, "/games/NES/metroid.nes", finder.launches[0])
}

func TestLaunchFailureBlocksUntilDismissed(t *testing.T) {
	finder := &fakeFinder{}
	m := testModel(t, finder)

	m = run(t, m, LaunchFailedMsg{
		Game: domain.GameEntry{Name: "Metroid"},
		Err:  domain.ErrDeviceOffline,
	})
	require.Equal(t, StateLaunchFailed, m.State)

	m = run(t, m, keyPress("x"))
	assert.Equal(t, StateReady, m.State)
	assert.Nil(t, m.LaunchErr)
}

func TestIndexingBlocksBrowsing(t *testing.T) {
	finder := &fakeFinder{}
	m := testModel(t, finder)
	m.State = StateIndexing

	m = run(t, m, keyPress("down"))
	m = run(t, m, keyPress("enter"))
	assert.Empty(t, finder.searchCalls())

	m = run(t, m, IndexBuiltMsg{Gen: m.gen})
	assert.Equal(t, StateReady, m.State)
}
