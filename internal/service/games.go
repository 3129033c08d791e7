package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sstrand/romdeck/internal/domain"
)

// GameFinder is the backend surface the game service depends on.
type GameFinder interface {
	BuildIndex(ctx context.Context) error
	Search(ctx context.Context, query, system string) (*domain.SearchResult, error)
	Launch(ctx context.Context, game domain.GameEntry) error
}

// GameService wraps the game service client with result ranking.
type GameService struct {
	finder GameFinder
	logger *slog.Logger
}

// NewGameService creates a new game service
func NewGameService(finder GameFinder, logger *slog.Logger) *GameService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GameService{finder: finder, logger: logger}
}

// BuildIndex triggers or verifies the device's game index.
func (s *GameService) BuildIndex(ctx context.Context) error {
	s.logger.Info("building game index")
	return s.finder.BuildIndex(ctx)
}

// SearchAll searches every system and ranks the results locally so the best
// matches land at the top of the grid.
func (s *GameService) SearchAll(ctx context.Context, query string) (*domain.SearchResult, error) {
	s.logger.Debug("global search", "query", query)

	result, err := s.finder.Search(ctx, query, "")
	if err != nil {
		return nil, err
	}

	result.Items = rankResults(result.Items, query)
	return result, nil
}

// SystemGames fetches the full unfiltered list for one system. Free-text
// narrowing of this list happens locally in the grid, not here.
func (s *GameService) SystemGames(ctx context.Context, system domain.System) (*domain.SearchResult, error) {
	s.logger.Debug("loading system games", "system", system.ID)
	return s.finder.Search(ctx, "", system.ID)
}

// Launch asks the device to start a game.
func (s *GameService) Launch(ctx context.Context, game domain.GameEntry) error {
	s.logger.Info("launching game", "system", game.System.ID, "name", game.Name, "path", game.Path)
	return s.finder.Launch(ctx, game)
}

// rankResults orders server results by match quality against the query.
// Lower score is better.
func rankResults(items []domain.GameEntry, query string) []domain.GameEntry {
	if len(items) == 0 || query == "" {
		return items
	}

	query = strings.ToLower(query)

	type rankedItem struct {
		item  domain.GameEntry
		score int
	}

	ranked := make([]rankedItem, 0, len(items))
	for _, item := range items {
		ranked = append(ranked, rankedItem{
			item:  item,
			score: matchScore(strings.ToLower(item.Name), query),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]domain.GameEntry, len(ranked))
	for i, r := range ranked {
		results[i] = r.item
	}
	return results
}

// matchScore calculates a match score for ranking. Lower score = better.
func matchScore(name, query string) int {
	if name == query {
		return 0
	}
	if strings.HasPrefix(name, query) {
		return 10
	}
	if strings.Contains(name, query) {
		return 50
	}
	return 100 + fuzzy.LevenshteinDistance(query, name)
}
