package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sstrand/romdeck/internal/domain"
	"github.com/sstrand/romdeck/internal/service"
	"github.com/sstrand/romdeck/internal/thumbs"
	"github.com/sstrand/romdeck/internal/tui/components"
	"github.com/sstrand/romdeck/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	// StateIndexing blocks browsing until the device reports a usable index.
	StateIndexing ApplicationState = iota
	StateReady
	StateSettings
	StateHelp
	StateLaunchFailed
)

// Pane identifies which pane has keyboard focus
type Pane int

const (
	PaneSidebar Pane = iota
	PaneGrid
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	GameSvc    *service.GameService
	SessionSvc *service.SessionService
	Thumbs     *thumbs.Cache

	// UI components
	Sidebar       components.Sidebar
	Grid          components.Grid
	SettingsModal components.SettingsModal
	searchInput   textinput.Model

	// Scope and results. Pending marks an in-flight fetch for the scope.
	Scope   domain.SearchScope
	Query   string
	Total   int
	Pending bool

	// gen is the request generation. Every async backend message carries the
	// generation it was issued under; a mismatch on arrival means the scope
	// or device address changed while the request was in flight, and the
	// message is dropped. Bumped on scope changes and address changes.
	gen uint64

	// debounceSeq identifies the newest search keystroke. Only the debounce
	// timer armed by that keystroke triggers a request.
	debounceSeq uint64

	// Dimensions
	Width  int
	Height int

	// UI state
	Focus        Pane
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
	LaunchErr    *LaunchFailedMsg
	prevState    ApplicationState

	logger *slog.Logger
}

// NewModel creates a new application model
func NewModel(
	gameSvc *service.GameService,
	sessionSvc *service.SessionService,
	thumbCache *thumbs.Cache,
	columns, pageSize int,
	logger *slog.Logger,
) Model {
	si := textinput.New()
	si.Placeholder = "search all systems..."
	si.Prompt = "🔍 "
	si.CharLimit = 100
	si.PromptStyle = styles.FilterPromptStyle

	return Model{
		State:       StateIndexing,
		GameSvc:     gameSvc,
		SessionSvc:  sessionSvc,
		Thumbs:      thumbCache,
		Sidebar:     components.NewSidebar(domain.Systems()),
		Grid:        components.NewGrid(columns, pageSize),
		searchInput: si,
		Scope:       domain.GlobalScope(),
		Focus:       PaneSidebar,
		logger:      logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		BuildIndexCmd(m.GameSvc, m.gen),
		TickCmd(),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		if m.State == StateIndexing || m.Pending {
			return m, TickCmd()
		}
		return m, nil

	case IndexBuiltMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.State = StateReady
		m.StatusMsg = "index ready"
		m.StatusIsErr = false
		return m, ClearStatusCmd()

	case IndexFailedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		// Stay in Indexing; browsing an unindexed device returns garbage.
		// The banner persists until a rebuild or address change succeeds.
		m.setError(domain.IndexingError{Err: msg.Err}.Error())
		return m, nil

	case QueryDebouncedMsg:
		// An older timer fired; a newer keystroke has rearmed it since.
		if msg.Seq != m.debounceSeq {
			return m, nil
		}
		return m.fireGlobalSearch()

	case SearchResultsMsg:
		// Overlapping global searches share a generation, so the query has
		// to match too or a slow older response would overwrite the newer
		// query's results.
		if msg.Gen != m.gen || msg.Query != m.Query {
			return m, nil
		}
		m.Pending = false
		m.Total = msg.Result.Total
		m.Grid.SetGames(msg.Result.Items)
		return m, nil

	case SearchFailedMsg:
		if msg.Gen != m.gen || msg.Query != m.Query {
			return m, nil
		}
		m.Pending = false
		m.setError(domain.SearchError{Scope: m.Scope, Err: msg.Err}.Error())
		return m, ClearStatusCmd()

	case SystemGamesMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.Pending = false
		m.Total = msg.Result.Total
		m.Sidebar.SetCount(msg.System.ID, msg.Result.Total)
		m.Grid.SetGames(msg.Result.Items)
		return m, nil

	case SystemGamesFailedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.Pending = false
		m.setError(domain.SearchError{Scope: domain.SystemScope(msg.System), Err: msg.Err}.Error())
		return m, ClearStatusCmd()

	case GameLaunchedMsg:
		m.StatusMsg = "launched " + msg.Game.Name
		m.StatusIsErr = false
		return m, ClearStatusCmd()

	case LaunchFailedMsg:
		// Launch failures block until acknowledged. There is no retry; the
		// user relaunches by hand once the device is reachable again.
		failed := msg
		m.LaunchErr = &failed
		m.prevState = m.State
		m.State = StateLaunchFailed
		return m, nil

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd()

	case ClearStatusMsg:
		// An indexing-failure banner persists; a timer armed by an earlier
		// transient status must not wipe it.
		if m.State == StateIndexing && m.StatusIsErr {
			return m, nil
		}
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case ErrMsg:
		m.setError(msg.Error())
		return m, ClearStatusCmd()
	}

	return m, nil
}

// handleKeyMsg routes keystrokes by application state.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always works unless a text input is capturing keys
	if key.Matches(msg, Keys.Quit) && !m.typingActive() {
		return m, tea.Quit
	}

	switch m.State {
	case StateIndexing:
		// Settings and rebuild stay reachable so a wrong address or a
		// failed build can be fixed without restarting.
		switch {
		case key.Matches(msg, Keys.Settings):
			return m.openSettings()
		case key.Matches(msg, Keys.Reindex):
			m.gen++
			m.StatusMsg = ""
			m.StatusIsErr = false
			return m, tea.Batch(BuildIndexCmd(m.GameSvc, m.gen), TickCmd())
		}
		return m, nil

	case StateSettings:
		return m.handleSettingsKey(msg)

	case StateHelp:
		m.State = m.prevState
		return m, nil

	case StateLaunchFailed:
		// Any key dismisses the failure notice
		m.LaunchErr = nil
		m.State = m.prevState
		return m, nil
	}

	return m.handleReadyKey(msg)
}

// typingActive reports whether a text input currently owns the keyboard.
func (m Model) typingActive() bool {
	if m.State == StateSettings {
		return true
	}
	return m.searchInput.Focused() || m.Grid.IsFilterTyping()
}

// handleReadyKey handles keys while browsing.
func (m Model) handleReadyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global search input captures keystrokes while focused
	if m.searchInput.Focused() {
		return m.handleSearchKey(msg)
	}

	// The grid's local filter input owns the keyboard while typing
	if m.Focus == PaneGrid && m.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Help):
		m.prevState = m.State
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Settings):
		return m.openSettings()

	case key.Matches(msg, Keys.GlobalSearch):
		return m.enterGlobalSearch()

	case key.Matches(msg, Keys.Filter):
		if m.Focus == PaneGrid && !m.Scope.IsGlobal() {
			m.Grid.ToggleFilter()
			return m, textinput.Blink
		}
		if m.Scope.IsGlobal() {
			return m.enterGlobalSearch()
		}
		return m, nil

	case key.Matches(msg, Keys.Reindex):
		m.gen++
		m.State = StateIndexing
		m.Grid.Clear()
		m.Total = 0
		return m, tea.Batch(BuildIndexCmd(m.GameSvc, m.gen), TickCmd())

	case key.Matches(msg, Keys.Tab):
		if m.Focus == PaneSidebar {
			m.Focus = PaneGrid
		} else {
			m.Focus = PaneSidebar
		}
		m.syncFocus()
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Focus == PaneGrid && m.Grid.IsFiltering() {
			m.Grid.ClearFilter()
			return m, nil
		}
		if m.Scope.IsGlobal() && m.Query != "" {
			return m.clearGlobalSearch()
		}
		if !m.Scope.IsGlobal() {
			// Back out of the system to the global scope
			m.switchScope(domain.GlobalScope())
			m.Sidebar.SelectSystem("")
			m.Focus = PaneSidebar
			m.syncFocus()
		}
		return m, nil

	case key.Matches(msg, Keys.Enter):
		if m.Focus == PaneSidebar {
			return m.selectSidebarScope()
		}
		if game := m.Grid.SelectedGame(); game != nil {
			return m, LaunchGameCmd(m.GameSvc, *game)
		}
		return m, nil
	}

	// Remaining keys go to the focused pane
	var cmd tea.Cmd
	if m.Focus == PaneSidebar {
		m.Sidebar, cmd = m.Sidebar.Update(msg)
	} else {
		m.Grid, cmd = m.Grid.Update(msg)
	}
	return m, cmd
}

// handleSearchKey handles keystrokes while the global search input is focused.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.clearGlobalSearch()
	case "enter":
		// Skip the debounce and search immediately
		m.searchInput.Blur()
		m.Focus = PaneGrid
		m.syncFocus()
		m.debounceSeq++
		return m.fireGlobalSearch()
	case "tab", "down":
		m.searchInput.Blur()
		m.Focus = PaneGrid
		m.syncFocus()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Rearm the debounce timer only when the text actually changed.
	if q := m.searchInput.Value(); q != m.Query {
		m.Query = q
		m.debounceSeq++
		if q == "" {
			m.Grid.Clear()
			m.Total = 0
			return m, cmd
		}
		return m, tea.Batch(cmd, DebounceCmd(m.debounceSeq))
	}
	return m, cmd
}

// handleSettingsKey handles keystrokes inside the settings modal.
func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.State = m.prevState
		return m, nil
	}

	var cmd tea.Cmd
	var submitted bool
	m.SettingsModal, cmd, submitted = m.SettingsModal.Update(msg)
	if !submitted {
		return m, cmd
	}

	if !m.SettingsModal.Changed() {
		m.State = m.prevState
		return m, nil
	}
	return m.applyAddress(m.SettingsModal.Value())
}

// applyAddress repoints the session at a new device. Everything in flight is
// answered by the old device, so the generation is bumped and all pending
// state discarded before the new device is indexed.
func (m Model) applyAddress(address string) (tea.Model, tea.Cmd) {
	if err := m.SessionSvc.SetAddress(address); err != nil {
		m.setError("saving address: " + err.Error())
		m.State = m.prevState
		return m, ClearStatusCmd()
	}

	m.gen++
	m.Pending = false
	m.Grid.Clear()
	m.Total = 0
	m.Query = ""
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.Scope = domain.GlobalScope()
	m.Sidebar.SelectSystem("")
	m.Focus = PaneSidebar
	m.syncFocus()

	m.State = StateIndexing
	return m, tea.Batch(BuildIndexCmd(m.GameSvc, m.gen), TickCmd())
}

// openSettings opens the device address modal.
func (m Model) openSettings() (tea.Model, tea.Cmd) {
	m.prevState = m.State
	m.State = StateSettings
	m.SettingsModal = components.NewSettingsModal(m.SessionSvc.Address())
	return m, textinput.Blink
}

// enterGlobalSearch switches to the global scope and focuses the search box.
func (m Model) enterGlobalSearch() (tea.Model, tea.Cmd) {
	if !m.Scope.IsGlobal() {
		m.switchScope(domain.GlobalScope())
	}
	m.Sidebar.SelectSystem("")
	m.searchInput.Focus()
	m.Focus = PaneGrid
	m.syncFocus()
	return m, textinput.Blink
}

// clearGlobalSearch abandons the global query and empties the grid.
func (m Model) clearGlobalSearch() (tea.Model, tea.Cmd) {
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.Query = ""
	m.debounceSeq++
	m.Grid.Clear()
	m.Total = 0
	m.Focus = PaneSidebar
	m.syncFocus()
	return m, nil
}

// selectSidebarScope applies the sidebar selection as the active scope.
func (m Model) selectSidebarScope() (tea.Model, tea.Cmd) {
	sys := m.Sidebar.SelectedSystem()
	if sys == nil {
		return m.enterGlobalSearch()
	}

	m.switchScope(domain.SystemScope(*sys))
	m.Focus = PaneGrid
	m.syncFocus()

	// One fetch per system selection. Narrowing afterwards is local.
	m.Pending = true
	return m, tea.Batch(SystemGamesCmd(m.GameSvc, *sys, m.gen), TickCmd())
}

// switchScope resets all result state for a new scope. The generation bump
// ensures responses to the old scope's requests are dropped on arrival.
func (m *Model) switchScope(scope domain.SearchScope) {
	m.Scope = scope
	m.gen++
	m.Pending = false
	m.Grid.Clear()
	m.Total = 0
	m.Query = ""
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.debounceSeq++
}

// fireGlobalSearch issues the debounced cross-system search.
func (m Model) fireGlobalSearch() (tea.Model, tea.Cmd) {
	query := m.searchInput.Value()
	m.Query = query
	if query == "" {
		m.Grid.Clear()
		m.Total = 0
		return m, nil
	}
	m.Pending = true
	return m, tea.Batch(GlobalSearchCmd(m.GameSvc, query, m.gen), TickCmd())
}

func (m *Model) setError(text string) {
	m.StatusMsg = text
	m.StatusIsErr = true
	m.logger.Error(text)
}

func (m *Model) syncFocus() {
	m.Sidebar.SetFocused(m.Focus == PaneSidebar && !m.searchInput.Focused())
	m.Grid.SetFocused(m.Focus == PaneGrid && !m.searchInput.Focused())
}

// Layout constants
const (
	sidebarWidth = 24
	headerHeight = 2
	footerHeight = 1
)

func (m *Model) updateLayout() {
	contentHeight := m.Height - headerHeight - footerHeight
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.Sidebar.SetSize(sidebarWidth, contentHeight)
	m.Grid.SetSize(m.Width-sidebarWidth, contentHeight)
	m.searchInput.Width = m.Width - sidebarWidth - 8
	m.syncFocus()
}
