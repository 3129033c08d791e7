package tui

import (
	"github.com/sstrand/romdeck/internal/domain"
)

// Message types for the TUI. Every message produced by an async backend call
// carries the request generation it was issued under; Update drops any
// message whose generation no longer matches the model's.

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// IndexBuiltMsg signals that the device finished building its media index
type IndexBuiltMsg struct {
	Gen uint64
}

// IndexFailedMsg signals that the index build could not be started
type IndexFailedMsg struct {
	Gen uint64
	Err error
}

// QueryDebouncedMsg fires when the global search debounce timer expires.
// Seq identifies the keystroke that armed the timer; earlier timers arrive
// with stale sequence numbers and are ignored.
type QueryDebouncedMsg struct {
	Seq uint64
}

// SearchResultsMsg carries results of a global search
type SearchResultsMsg struct {
	Result *domain.SearchResult
	Query  string
	Gen    uint64
}

// SearchFailedMsg signals a failed global search
type SearchFailedMsg struct {
	Query string
	Gen   uint64
	Err   error
}

// SystemGamesMsg carries the full game list of one system
type SystemGamesMsg struct {
	System domain.System
	Result *domain.SearchResult
	Gen    uint64
}

// SystemGamesFailedMsg signals a failed per-system fetch
type SystemGamesFailedMsg struct {
	System domain.System
	Gen    uint64
	Err    error
}

// GameLaunchedMsg signals that the device accepted a launch request
type GameLaunchedMsg struct {
	Game domain.GameEntry
}

// LaunchFailedMsg signals that a launch request was rejected or lost
type LaunchFailedMsg struct {
	Game domain.GameEntry
	Err  error
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// TickMsg drives the indexing spinner
type TickMsg struct{}
