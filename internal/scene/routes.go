package scene

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/spacecanva/spacecanva/internal/catalog"
	"github.com/spacecanva/spacecanva/internal/httpjson"
)

// Source supplies the planets to place.
type Source interface {
	FetchConfirmed(ctx context.Context) ([]catalog.Exoplanet, error)
}

// Scene is the response of GET /api/scene.
type Scene struct {
	Config  Config   `json:"config"`
	Total   int      `json:"total"`
	Markers []Marker `json:"markers"`
}

// RegisterRoutes mounts the scene API under /api/scene. base supplies the
// defaults that query parameters override.
func RegisterRoutes(r chi.Router, src Source, base Config) {
	r.Route("/api/scene", func(r chi.Router) {
		r.Get("/", handleScene(src, base))
		r.Get("/galaxy", handleGalaxy())
	})
}

func handleScene(src Source, base Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		cfg := base

		if v := q.Get("max_distance"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
				cfg.MaxDistance = f
			}
		}
		if v := q.Get("size_scale"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
				cfg.PlanetSizeScale = f
			}
		}
		if v := q.Get("temperature_color"); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				cfg.TemperatureColor = b
			}
		}
		if v := q.Get("orbit_lines"); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				cfg.OrbitLines = b
			}
		}
		if v := q.Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				cfg.Limit = n
			}
		}

		planets, err := src.FetchConfirmed(r.Context())
		if err != nil {
			httpjson.Error(w, http.StatusBadGateway, err.Error())
			return
		}
		planets = catalog.Filter(planets, q.Get("q"))

		httpjson.Write(w, http.StatusOK, Scene{
			Config:  cfg,
			Total:   len(planets),
			Markers: Place(planets, cfg, q.Get("selected")),
		})
	}
}

func handleGalaxy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		arms, perArm := 4, 2000
		var seed uint64 = 1

		if n, err := strconv.Atoi(q.Get("arms")); err == nil && n > 0 && n <= 16 {
			arms = n
		}
		if n, err := strconv.Atoi(q.Get("points")); err == nil && n > 0 && n <= 10000 {
			perArm = n
		}
		if n, err := strconv.ParseUint(q.Get("seed"), 10, 64); err == nil {
			seed = n
		}

		httpjson.Write(w, http.StatusOK, Galaxy(arms, perArm, seed))
	}
}
