package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacecanva/spacecanva/internal/catalog"
	"github.com/spacecanva/spacecanva/internal/embeddings"
)

var f = catalog.Float

func fixturePlanets() []catalog.Exoplanet {
	year := 2011
	return []catalog.Exoplanet{
		{Name: "Kepler-22 b", Host: "Kepler-22", DiscMethod: "Transit", DiscYear: &year, RadiusEarth: f(2.4), EqTemperature: f(262), StarDistance: f(190)},
		{Name: "51 Peg b", Host: "51 Peg", DiscMethod: "Radial Velocity", EqTemperature: f(1284), SystemDistance: f(15.5)},
		{Name: "TRAPPIST-1 e", Host: "TRAPPIST-1", DiscMethod: "Transit", RadiusEarth: f(0.92), EqTemperature: f(251), StarDistance: f(12.4)},
		{Name: ""},
	}
}

type countingReporter struct {
	mu      sync.Mutex
	total   int
	last    int
	started bool
	done    bool
}

func (r *countingReporter) Start(total int) { r.mu.Lock(); r.total, r.started = total, true; r.mu.Unlock() }
func (r *countingReporter) Update(n int, _ string) {
	r.mu.Lock()
	r.last = n
	r.mu.Unlock()
}
func (r *countingReporter) Finish() { r.mu.Lock(); r.done = true; r.mu.Unlock() }

func newIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(embeddings.NewHashEmbedder(128), nil)
	require.NoError(t, err)
	n, err := idx.Index(context.Background(), fixturePlanets(), nil)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	return idx
}

func TestDescribe(t *testing.T) {
	d := Describe(fixturePlanets()[0])
	assert.Contains(t, d, "Kepler-22 b is an exoplanet orbiting the star Kepler-22.")
	assert.Contains(t, d, "Discovered by transit in 2011.")
	assert.Contains(t, d, "super-earth")
	assert.Contains(t, d, "cold")
	assert.Contains(t, d, "Distance 190.0 parsecs.")
}

func TestIndexAndSearch(t *testing.T) {
	idx := newIndex(t)
	assert.Equal(t, 3, idx.Count())

	hits, err := idx.Search(context.Background(), "51 Peg b radial velocity", 1, nil)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "51 Peg b", hits[0].Name)
	assert.Equal(t, "hot", hits[0].Bucket)
	assert.Equal(t, 15.5, hits[0].Distance)

	hits, err = idx.Search(context.Background(), "planet", 50, nil)
	require.NoError(t, err)
	assert.Len(t, hits, 3, "limit is capped at the collection size")
}

func TestSearchFilter(t *testing.T) {
	idx := newIndex(t)
	hits, err := idx.Search(context.Background(), "exoplanet", 3, &Filter{Method: "Transit"})
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	for _, h := range hits {
		assert.Equal(t, "transit", h.Method)
	}
}

func TestIndexReportsProgress(t *testing.T) {
	idx, err := NewIndex(embeddings.NewHashEmbedder(32), nil)
	require.NoError(t, err)
	rep := &countingReporter{}
	_, err = idx.Index(context.Background(), fixturePlanets(), rep)
	require.NoError(t, err)
	assert.True(t, rep.started)
	assert.True(t, rep.done)
	assert.Equal(t, 3, rep.total)
	assert.Equal(t, 3, rep.last)
}

func TestSearchEmptyIndex(t *testing.T) {
	idx, err := NewIndex(embeddings.NewHashEmbedder(32), nil)
	require.NoError(t, err)
	hits, err := idx.Search(context.Background(), "anything", 5, nil)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestPersistAndLoad(t *testing.T) {
	dir := t.TempDir()
	idx := newIndex(t)
	require.NoError(t, idx.Persist(dir))
	assert.True(t, Exists(dir))

	loaded, err := NewIndex(embeddings.NewHashEmbedder(128), nil)
	require.NoError(t, err)
	require.NoError(t, loaded.Load(dir))
	assert.Equal(t, 3, loaded.Count())

	hits, err := loaded.Search(context.Background(), "TRAPPIST-1 e", 1, nil)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "TRAPPIST-1 e", hits[0].Name)
}

func TestFormatHits(t *testing.T) {
	assert.Equal(t, "No results found.", FormatHits(nil))
	out := FormatHits([]Hit{{Name: "Kepler-22 b", Content: "desc", Similarity: 0.5}})
	assert.Contains(t, out, "Found 1 result(s)")
	assert.Contains(t, out, "Kepler-22 b")
}

func TestSearchRoute(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, newIndex(t))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/exoplanets/search?q=trappist&limit=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Results []Hit `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Results, 2)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/exoplanets/search", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
