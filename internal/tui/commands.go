package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sstrand/romdeck/internal/domain"
	"github.com/sstrand/romdeck/internal/service"
)

const (
	// debounceDelay is how long the global query must sit unchanged before
	// a search is issued.
	debounceDelay = 500 * time.Millisecond

	spinnerInterval = 100 * time.Millisecond
	statusLinger    = 3 * time.Second
)

// Command factories for async operations. Each factory captures the request
// generation it was issued under so Update can discard stale completions.

// BuildIndexCmd asks the device to rebuild its media index.
func BuildIndexCmd(svc *service.GameService, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := svc.BuildIndex(ctx); err != nil {
			return IndexFailedMsg{Gen: gen, Err: err}
		}
		return IndexBuiltMsg{Gen: gen}
	}
}

// GlobalSearchCmd runs a cross-system search for the given query.
func GlobalSearchCmd(svc *service.GameService, query string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := svc.SearchAll(ctx, query)
		if err != nil {
			return SearchFailedMsg{Query: query, Gen: gen, Err: err}
		}
		return SearchResultsMsg{Result: result, Query: query, Gen: gen}
	}
}

// SystemGamesCmd fetches the full game list for one system.
func SystemGamesCmd(svc *service.GameService, system domain.System, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second) // large systems take a while
		defer cancel()

		result, err := svc.SystemGames(ctx, system)
		if err != nil {
			return SystemGamesFailedMsg{System: system, Gen: gen, Err: err}
		}
		return SystemGamesMsg{System: system, Result: result, Gen: gen}
	}
}

// LaunchGameCmd sends a one-shot launch request. No retry: the device either
// takes it or the user tries again.
func LaunchGameCmd(svc *service.GameService, game domain.GameEntry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := svc.Launch(ctx, game); err != nil {
			return LaunchFailedMsg{Game: game, Err: err}
		}
		return GameLaunchedMsg{Game: game}
	}
}

// DebounceCmd arms the search debounce timer for a given keystroke sequence.
func DebounceCmd(seq uint64) tea.Cmd {
	return tea.Tick(debounceDelay, func(t time.Time) tea.Msg {
		return QueryDebouncedMsg{Seq: seq}
	})
}

// TickCmd drives the spinner while indexing
func TickCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd() tea.Cmd {
	return tea.Tick(statusLinger, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
