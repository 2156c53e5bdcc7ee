package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacecanva/spacecanva/internal/cache"
)

const tapFixture = `{
  "metadata": [
    {"name": "pl_name", "type": "char"},
    {"name": "hostname", "type": "char"},
    {"name": "pl_status", "type": "char"},
    {"name": "pl_eqt", "type": "double"},
    {"name": "ra", "type": "double"},
    {"name": "dec", "type": "double"},
    {"name": "st_dist", "type": "double"},
    {"name": "sy_dist", "type": "double"},
    {"name": "pl_discmethod", "type": "char"},
    {"name": "disc_year", "type": "int"},
    {"name": "pl_facility", "type": "char"}
  ],
  "data": [
    ["Kepler-22 b", "Kepler-22", "Confirmed", 262, 284.3, 47.88, 190.0, null, "Transit", 2011, "Kepler"],
    ["51 Peg b", "51 Peg", "Confirmed", "1284.5", 0, 20.77, null, 15.46, "Radial Velocity", 1995, ""],
    ["KOI-123 b", "KOI-123", "Candidate", null, 12.0, -3.5, 900, null, "Transit", null, null]
  ]
}`

func TestDecodeTAP(t *testing.T) {
	planets, err := DecodeTAP([]byte(tapFixture))
	require.NoError(t, err)
	require.Len(t, planets, 3)

	k := planets[0]
	assert.Equal(t, "Kepler-22 b", k.Name)
	assert.Equal(t, "Kepler-22", k.Host)
	require.NotNil(t, k.EqTemperature)
	assert.Equal(t, 262.0, *k.EqTemperature)
	require.NotNil(t, k.DiscYear)
	assert.Equal(t, 2011, *k.DiscYear)
	assert.Equal(t, "Transit", k.DiscMethod)
	assert.Equal(t, "Kepler", k.Extra["pl_facility"])
	assert.True(t, k.IsConfirmed())

	peg := planets[1]
	require.NotNil(t, peg.EqTemperature, "numeric strings decode into numeric fields")
	assert.Equal(t, 1284.5, *peg.EqTemperature)
	require.NotNil(t, peg.RA, "zero is a present value")
	assert.Equal(t, 0.0, *peg.RA)
	assert.Nil(t, peg.StarDistance)
	require.NotNil(t, peg.Distance())
	assert.Equal(t, 15.46, *peg.Distance())
	_, hasFacility := peg.Extra["pl_facility"]
	assert.False(t, hasFacility, "empty strings are skipped")

	koi := planets[2]
	assert.Nil(t, koi.EqTemperature)
	assert.Nil(t, koi.DiscYear)
	assert.False(t, koi.IsConfirmed())
}

func TestDecodeTAPInvalid(t *testing.T) {
	for _, body := range []string{
		`{"metadata": []}`,
		`{"metadata": [], "data": {"rows": 1}}`,
		`{"metadata": [], "data": null}`,
	} {
		_, err := DecodeTAP([]byte(body))
		assert.ErrorIs(t, err, ErrInvalidResponse, body)
	}

	_, err := DecodeTAP([]byte(`not json`))
	assert.Error(t, err)
}

func TestDecodeTAPShortRow(t *testing.T) {
	planets, err := DecodeTAP([]byte(`{"metadata":[{"name":"pl_name"},{"name":"hostname"}],"data":[["solo"]]}`))
	require.NoError(t, err)
	require.Len(t, planets, 1)
	assert.Equal(t, "solo", planets[0].Name)
	assert.Empty(t, planets[0].Host)
}

func TestDecodeTAPKeepsRowsWithUnconvertibleCells(t *testing.T) {
	body := `{"metadata":[{"name":"pl_name"},{"name":"pl_rade"},{"name":"sy_pnum"}],
		"data":[["Good b",1.2,1],["Odd c","<1.5",2],["Float d",2.5,1.0]]}`

	planets, cells, err := decodeTAP([]byte(body))
	require.NoError(t, err)
	require.Len(t, planets, 3)

	require.NotNil(t, planets[0].RadiusEarth)
	assert.Equal(t, 1.2, *planets[0].RadiusEarth)

	odd := planets[1]
	assert.Equal(t, "Odd c", odd.Name)
	assert.Nil(t, odd.RadiusEarth)
	assert.Equal(t, "<1.5", odd.Extra["pl_rade"])
	require.NotNil(t, odd.PlanetCount)
	assert.Equal(t, 2, *odd.PlanetCount)

	require.NotNil(t, planets[2].PlanetCount, "integral floats fill int fields")
	assert.Equal(t, 1, *planets[2].PlanetCount)

	require.Len(t, cells, 1)
	assert.Equal(t, 1, cells[0].Row)
	assert.Equal(t, "pl_rade", cells[0].Column)

	viaPublic, err := DecodeTAP([]byte(body))
	require.NoError(t, err)
	assert.Len(t, viaPublic, 3)
}

func TestDecodeTAPFractionalIntGoesToExtra(t *testing.T) {
	planets, err := DecodeTAP([]byte(`{"metadata":[{"name":"pl_name"},{"name":"sy_pnum"}],"data":[["Half e",1.5]]}`))
	require.NoError(t, err)
	require.Len(t, planets, 1)
	assert.Nil(t, planets[0].PlanetCount)
	assert.Equal(t, json.Number("1.5"), planets[0].Extra["sy_pnum"])
}

func newArchive(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/exoplanets", r.URL.Path)
		assert.Equal(t, "ps", r.URL.Query().Get("table"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestClientCachesByTableAndFormat(t *testing.T) {
	srv, hits := newArchive(t, http.StatusOK, tapFixture)
	store := cache.NewMemory(nil)
	c := NewClient(Options{BaseURL: srv.URL, Cache: store})
	ctx := context.Background()

	first, err := c.FetchExoplanets(ctx, "", "")
	require.NoError(t, err)
	second, err := c.FetchExoplanets(ctx, "ps", "json")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	assert.Equal(t, len(first), len(second))
	assert.Equal(t, first[0].Name, second[0].Name)

	_, ok, err := store.Get(ctx, "ps_json")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.ClearCache(ctx))
	_, err = c.FetchExoplanets(ctx, "ps", "json")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestClientCacheExpires(t *testing.T) {
	srv, hits := newArchive(t, http.StatusOK, tapFixture)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := cache.NewMemory(func() time.Time { return now })
	c := NewClient(Options{BaseURL: srv.URL, Cache: store, TTL: time.Hour})
	ctx := context.Background()

	_, err := c.FetchExoplanets(ctx, "ps", "json")
	require.NoError(t, err)
	now = now.Add(2 * time.Hour)
	_, err = c.FetchExoplanets(ctx, "ps", "json")
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestClientNoExpiry(t *testing.T) {
	srv, hits := newArchive(t, http.StatusOK, tapFixture)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := cache.NewMemory(func() time.Time { return now })
	c := NewClient(Options{BaseURL: srv.URL, Cache: store, TTL: NoExpiry})
	ctx := context.Background()

	_, err := c.FetchExoplanets(ctx, "ps", "json")
	require.NoError(t, err)
	now = now.Add(24 * 365 * time.Hour)
	_, err = c.FetchExoplanets(ctx, "ps", "json")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestClientFetchConfirmed(t *testing.T) {
	srv, _ := newArchive(t, http.StatusOK, tapFixture)
	c := NewClient(Options{BaseURL: srv.URL})

	planets, err := c.FetchConfirmed(context.Background())
	require.NoError(t, err)
	require.Len(t, planets, 2)
	for _, p := range planets {
		assert.Equal(t, StatusConfirmed, p.Status)
	}
}

func TestClientHTTPError(t *testing.T) {
	srv, _ := newArchive(t, http.StatusBadGateway, `upstream down`)
	store := cache.NewMemory(nil)
	c := NewClient(Options{BaseURL: srv.URL, Cache: store})

	_, err := c.FetchExoplanets(context.Background(), "ps", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proxy API error: 502")

	_, ok, _ := store.Get(context.Background(), "ps_json")
	assert.False(t, ok, "failures are not cached")
}

type failingCache struct{ cache.Cache }

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("disk on fire")
}

func TestClientToleratesCacheFailures(t *testing.T) {
	srv, hits := newArchive(t, http.StatusOK, tapFixture)
	c := NewClient(Options{BaseURL: srv.URL, Cache: failingCache{}})

	planets, err := c.FetchExoplanets(context.Background(), "ps", "json")
	require.NoError(t, err)
	assert.Len(t, planets, 3)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestFilter(t *testing.T) {
	planets := []Exoplanet{
		{Name: "Kepler-22 b", Host: "Kepler-22", DiscMethod: "Transit"},
		{Name: "51 Peg b", Host: "51 Peg", DiscMethod: "Radial Velocity"},
		{Name: "TRAPPIST-1 e", Host: "TRAPPIST-1", DiscMethod: "Transit"},
	}

	assert.Len(t, Filter(planets, ""), 3)
	assert.Len(t, Filter(planets, "kepler"), 1)
	assert.Len(t, Filter(planets, "PEG"), 1)
	assert.Len(t, Filter(planets, "transit"), 2)
	assert.Len(t, Filter(planets, "radial"), 1)
	assert.Empty(t, Filter(planets, "hd 209458"))

	got := Filter(planets, "*-1 ?")
	require.Len(t, got, 1)
	assert.Equal(t, "TRAPPIST-1 e", got[0].Name)

	assert.Len(t, Filter(planets, "{kepler,trappist}-*"), 2)
	assert.Empty(t, Filter(planets, "transit*"), "patterns only match name and host")
}

func TestLimit(t *testing.T) {
	planets := make([]Exoplanet, 5)
	assert.Len(t, Limit(planets, 3), 3)
	assert.Len(t, Limit(planets, 0), 5)
	assert.Len(t, Limit(planets, 10), 5)
}

func TestRoutes(t *testing.T) {
	srv, hits := newArchive(t, http.StatusOK, tapFixture)
	c := NewClient(Options{BaseURL: srv.URL})

	r := chi.NewRouter()
	RegisterRoutes(r, c)

	req := httptest.NewRequest(http.MethodGet, "/api/exoplanets?confirmed=true&q=peg", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count      int         `json:"count"`
		Exoplanets []Exoplanet `json:"exoplanets"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "51 Peg b", body.Exoplanets[0].Name)

	req = httptest.NewRequest(http.MethodGet, "/api/exoplanets?limit=2", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))

	req = httptest.NewRequest(http.MethodDelete, "/api/exoplanets/cache", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/exoplanets", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}
