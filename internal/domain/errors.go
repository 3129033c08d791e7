package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for device operations
var (
	// ErrDeviceOffline indicates the game service is unreachable
	ErrDeviceOffline = errors.New("game service is unreachable")

	// ErrBadStatus indicates the game service answered with a non-success status
	ErrBadStatus = errors.New("game service request failed")
)

// IndexingError blocks entry to the ready state. It is shown as a persistent
// banner until the device address changes or the app restarts.
type IndexingError struct {
	Err error
}

func (e IndexingError) Error() string {
	return fmt.Sprintf("indexing failed: %v", e.Err)
}

func (e IndexingError) Unwrap() error { return e.Err }

// SearchError is scoped and transient. It surfaces a banner but leaves
// previously displayed results untouched.
type SearchError struct {
	Scope SearchScope
	Err   error
}

func (e SearchError) Error() string {
	return fmt.Sprintf("search failed (%s): %v", e.Scope.Label(), e.Err)
}

func (e SearchError) Unwrap() error { return e.Err }

// LaunchError is presented as a blocking notification and has no effect on
// any other state.
type LaunchError struct {
	Game GameEntry
	Err  error
}

func (e LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %q: %v", e.Game.Name, e.Err)
}

func (e LaunchError) Unwrap() error { return e.Err }
