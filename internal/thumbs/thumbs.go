// Package thumbs derives boxart URLs for games and memoizes them in the
// persistent store. Derivation is pure; persistence is a separate step, and
// no network call ever happens here. The rendering layer handles 404
// fallbacks at display time.
package thumbs

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/sstrand/romdeck/internal/domain"
)

// BaseURL points at the public libretro boxart repository.
const BaseURL = "https://thumbnails.libretro.com"

// ThumbStore is the slice of the KV store the cache needs.
type ThumbStore interface {
	GetThumbnail(key string) (string, bool)
	SetThumbnail(key, value string) error
}

// Cache memoizes derived thumbnail URLs per (system, game) pair.
type Cache struct {
	store  ThumbStore
	logger *slog.Logger
}

// NewCache creates a thumbnail cache backed by the given store.
func NewCache(store ThumbStore, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{store: store, logger: logger}
}

// NormalizeName rewrites characters the boxart repository does not use in
// file names.
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, "&", "_")
}

// CacheKey builds the persisted-store key for a (system, game) pair.
func CacheKey(systemID, gameName string) string {
	return fmt.Sprintf("thumbnail_%s_%s", systemID, NormalizeName(gameName))
}

// DeriveURL composes the boxart URL for a game. Pure: same inputs always
// yield the same URL.
func DeriveURL(system domain.System, gameName string) string {
	folder := url.PathEscape(system.ThumbnailFolder)
	name := url.PathEscape(NormalizeName(gameName))
	return fmt.Sprintf("%s/%s/Named_Boxarts/%s.png", BaseURL, folder, name)
}

// Resolve returns the thumbnail URL for a game, reading the persisted value
// when present and deriving plus persisting it otherwise.
func (c *Cache) Resolve(system domain.System, gameName string) string {
	key := CacheKey(system.ID, gameName)
	if cached, ok := c.store.GetThumbnail(key); ok {
		return cached
	}

	derived := DeriveURL(system, gameName)
	if err := c.store.SetThumbnail(key, derived); err != nil {
		c.logger.Warn("failed to persist thumbnail url", "key", key, "error", err)
	}
	return derived
}
