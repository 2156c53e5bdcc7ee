package search

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/spacecanva/spacecanva/internal/httpjson"
)

// RegisterRoutes mounts GET /api/exoplanets/search.
func RegisterRoutes(r chi.Router, idx *Index) {
	r.Get("/api/exoplanets/search", handleSearch(idx))
}

func handleSearch(idx *Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		query := q.Get("q")
		if query == "" {
			httpjson.Error(w, http.StatusBadRequest, "q parameter is required")
			return
		}
		limit := defaultLimit
		if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
			limit = n
		}
		filter := &Filter{Bucket: q.Get("bucket"), Method: q.Get("method")}

		hits, err := idx.Search(r.Context(), query, limit, filter)
		if err != nil {
			httpjson.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if hits == nil {
			hits = []Hit{}
		}
		httpjson.Write(w, http.StatusOK, map[string]any{"query": query, "results": hits})
	}
}
