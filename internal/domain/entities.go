package domain

// System describes a supported game platform. The system table is static,
// loaded once at startup and sorted by display name. Identity is the ID.
type System struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ThumbnailFolder string `json:"thumbnailFolder"`
	Logo            string `json:"logo,omitempty"`
}

// SystemRef is the subset of System attached to every game entry.
type SystemRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GameEntry is a single indexed game as reported by the device. Entries are
// immutable once received. Path is unique within a system and doubles as the
// launch identifier and the thumbnail cache key.
type GameEntry struct {
	System SystemRef `json:"system"`
	Name   string    `json:"name"`
	Path   string    `json:"path"`
}

// SearchResult is one response from the search endpoint. It is transient and
// replaced wholesale on each successful search.
type SearchResult struct {
	Items    []GameEntry
	Total    int
	PageSize int
	Page     int
}

// ScopeKind distinguishes global search from single-system browsing.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeSystem
)

// SearchScope selects the target of the active search. Exactly one scope is
// active at a time; switching scope discards the other scope's result set.
type SearchScope struct {
	Kind   ScopeKind
	System *System // set only when Kind == ScopeSystem
}

// GlobalScope returns the scope covering all systems.
func GlobalScope() SearchScope {
	return SearchScope{Kind: ScopeGlobal}
}

// SystemScope returns a scope restricted to a single system.
func SystemScope(s System) SearchScope {
	return SearchScope{Kind: ScopeSystem, System: &s}
}

// IsGlobal reports whether the scope covers all systems.
func (s SearchScope) IsGlobal() bool {
	return s.Kind == ScopeGlobal
}

// SystemID returns the selected system's ID, or "" for the global scope.
// The backend treats "" as a wildcard.
func (s SearchScope) SystemID() string {
	if s.System == nil {
		return ""
	}
	return s.System.ID
}

// Label returns a display name for the scope.
func (s SearchScope) Label() string {
	if s.System == nil {
		return "All Systems"
	}
	return s.System.Name
}
