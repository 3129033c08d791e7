package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		pageSize int
		want     int
	}{
		{"exact multiple", 20, 10, 2},
		{"partial last page", 23, 10, 3},
		{"empty list", 0, 10, 1},
		{"single item", 1, 10, 1},
		{"zero page size", 23, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.n, tt.pageSize))
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 3))
	assert.Equal(t, 1, Clamp(-5, 3))
	assert.Equal(t, 2, Clamp(2, 3))
	assert.Equal(t, 3, Clamp(7, 3))
}

func TestPage(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	assert.Len(t, Page(items, 10, 1), 10)
	assert.Len(t, Page(items, 10, 2), 10)

	last := Page(items, 10, 3)
	assert.Len(t, last, 3)
	assert.Equal(t, 20, last[0])

	// Out-of-range pages yield nothing; clamping is the caller's job.
	assert.Empty(t, Page(items, 10, 4))
	assert.Empty(t, Page(items, 10, 0))
}
