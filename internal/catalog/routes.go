package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/spacecanva/spacecanva/internal/httpjson"
)

// RegisterRoutes mounts the catalog API under /api/exoplanets.
func RegisterRoutes(r chi.Router, client *Client) {
	r.Route("/api/exoplanets", func(r chi.Router) {
		r.Get("/", handleList(client))
		r.Delete("/cache", handleClearCache(client))
	})
}

func handleList(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var (
			planets []Exoplanet
			err     error
		)
		if v, _ := strconv.ParseBool(q.Get("confirmed")); v {
			planets, err = client.FetchConfirmed(r.Context())
		} else {
			planets, err = client.FetchExoplanets(r.Context(), q.Get("table"), DefaultFormat)
		}
		if err != nil {
			httpjson.Error(w, http.StatusBadGateway, err.Error())
			return
		}

		planets = Filter(planets, q.Get("q"))
		if v := q.Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				planets = Limit(planets, n)
			}
		}

		httpjson.Write(w, http.StatusOK, map[string]any{
			"count":      len(planets),
			"exoplanets": planets,
		})
	}
}

func handleClearCache(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := client.ClearCache(r.Context()); err != nil {
			httpjson.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
