package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacecanva/spacecanva/internal/cache"
	"github.com/spacecanva/spacecanva/internal/catalog"
	"github.com/spacecanva/spacecanva/internal/scene"
)

const archiveBody = `{
  "metadata": [{"name":"pl_name"},{"name":"hostname"},{"name":"pl_status"},{"name":"ra"},{"name":"dec"},{"name":"st_dist"},{"name":"pl_eqt"}],
  "data": [["Kepler-22 b","Kepler-22","Confirmed",284.0,47.8,190.0,262]]
}`

func newCatalog(t *testing.T) *catalog.Client {
	t.Helper()
	archive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(archiveBody))
	}))
	t.Cleanup(archive.Close)
	return catalog.NewClient(catalog.Options{
		BaseURL: archive.URL,
		Cache:   cache.NewMemory(nil),
	})
}

func TestHealthCheck(t *testing.T) {
	srv := New(Config{Port: 0}, Deps{}, nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{Port: 0, AllowAll: true}, Deps{}, nil)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	srv := New(Config{AllowedOrigins: []string{"https://spacecanva.app"}}, Deps{}, nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestFeatureRoutesMounted(t *testing.T) {
	srv := New(Config{}, Deps{Catalog: newCatalog(t), Scene: scene.DefaultConfig()}, nil)

	for _, path := range []string{"/api/exoplanets", "/api/scene", "/api/scene/galaxy"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestUnconfiguredRoutesAbsent(t *testing.T) {
	srv := New(Config{}, Deps{}, nil)

	for _, path := range []string{"/api/exoplanets", "/api/exoplanets/search", "/api/backend/workspaces", "/ws/lab"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	srv := New(Config{Port: 0, ShutdownTimeout: time.Second}, Deps{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
