package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sstrand/romdeck/internal/domain"
	"github.com/sstrand/romdeck/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient points a Client at an httptest server, bypassing the
// http://<address>:8182 convention.
func testClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c := NewClient("unused", ratelimit.New(100, time.Second), nil)
	c.mu.Lock()
	c.baseURL = srv.URL
	c.mu.Unlock()
	return c
}

func TestSearchSendsQueryAndSystem(t *testing.T) {
	var got searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/games/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(searchResponse{
			Data: []gameDTO{
				{System: systemDTO{ID: "NES", Name: "NES"}, Name: "Contra", Path: "/media/fat/games/NES/Contra.nes"},
			},
			Total:    1,
			PageSize: 50,
			Page:     1,
		})
	}))
	defer srv.Close()

	c := testClient(t, srv)
	res, err := c.Search(context.Background(), "contra", "NES")
	require.NoError(t, err)

	assert.Equal(t, searchRequest{Query: "contra", System: "NES"}, got)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Contra", res.Items[0].Name)
	assert.Equal(t, "NES", res.Items[0].System.ID)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 50, res.PageSize)
}

func TestBuildIndexAcceptsAny2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/games/index", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	assert.NoError(t, c.BuildIndex(context.Background()))
}

func TestLaunchCarriesGamePath(t *testing.T) {
	var got launchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/games/launch", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	game := domain.GameEntry{
		System: domain.SystemRef{ID: "NES", Name: "NES"},
		Name:   "Contra",
		Path:   "/media/fat/games/NES/Contra.nes",
	}
	require.NoError(t, c.Launch(context.Background(), game))
	assert.Equal(t, "/media/fat/games/NES/Contra.nes", got.Path)
}

func TestNonSuccessStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index not ready", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	err := c.BuildIndex(context.Background())
	assert.ErrorIs(t, err, domain.ErrBadStatus)
}

func TestTransportErrorMapsToDeviceOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient("unused", ratelimit.New(100, time.Second), nil)
	c.mu.Lock()
	c.baseURL = srv.URL
	c.mu.Unlock()

	err := c.BuildIndex(context.Background())
	assert.ErrorIs(t, err, domain.ErrDeviceOffline)
}

func TestSetAddressBuildsServiceURL(t *testing.T) {
	c := NewClient("mister", ratelimit.New(3, time.Second), nil)
	assert.Equal(t, "http://mister:8182", c.BaseURL())

	c.SetAddress("10.0.0.201")
	assert.Equal(t, "http://10.0.0.201:8182", c.BaseURL())
}
