package thumbs

import (
	"testing"

	"github.com/sstrand/romdeck/internal/domain"
	"github.com/stretchr/testify/assert"
)

type countingStore struct {
	values map[string]string
	gets   int
	sets   int
}

func newCountingStore() *countingStore {
	return &countingStore{values: make(map[string]string)}
}

func (s *countingStore) GetThumbnail(key string) (string, bool) {
	s.gets++
	v, ok := s.values[key]
	return v, ok
}

func (s *countingStore) SetThumbnail(key, value string) error {
	s.sets++
	s.values[key] = value
	return nil
}

func TestDeriveURL(t *testing.T) {
	sys := domain.System{ID: "NES", Name: "NES", ThumbnailFolder: "Nintendo - Nintendo Entertainment System"}

	got := DeriveURL(sys, "Super Mario Bros. 3")
	assert.Equal(t,
		"https://thumbnails.libretro.com/Nintendo%20-%20Nintendo%20Entertainment%20System/Named_Boxarts/Super%20Mario%20Bros.%203.png",
		got)
}

func TestDeriveURLNormalizesAmpersand(t *testing.T) {
	sys := domain.System{ID: "SNES", ThumbnailFolder: "Nintendo - Super Nintendo Entertainment System"}

	got := DeriveURL(sys, "Shadowrun & Co")
	assert.NotContains(t, got, "&")
	assert.Contains(t, got, "Shadowrun%20_%20Co.png")
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "thumbnail_NES_Contra", CacheKey("NES", "Contra"))
	assert.Equal(t, "thumbnail_SNES_A_B", CacheKey("SNES", "A&B"))
}

func TestResolveIsIdempotent(t *testing.T) {
	store := newCountingStore()
	cache := NewCache(store, nil)
	sys := domain.System{ID: "NES", ThumbnailFolder: "Nintendo - Nintendo Entertainment System"}

	first := cache.Resolve(sys, "Contra")
	second := cache.Resolve(sys, "Contra")

	assert.Equal(t, first, second)
	// The second call is a pure cache hit: no recomputation, no new write.
	assert.Equal(t, 1, store.sets)
}

func TestResolveReturnsPersistedValueUnchanged(t *testing.T) {
	store := newCountingStore()
	store.values[CacheKey("NES", "Contra")] = "https://example.com/override.png"
	cache := NewCache(store, nil)
	sys := domain.System{ID: "NES", ThumbnailFolder: "Nintendo - Nintendo Entertainment System"}

	assert.Equal(t, "https://example.com/override.png", cache.Resolve(sys, "Contra"))
	assert.Zero(t, store.sets)
}
