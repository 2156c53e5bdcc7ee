package backend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/spacecanva/spacecanva/internal/httpjson"
)

const maxUploadBytes = 32 << 20

// RegisterRoutes mounts the backend gateway under /api/backend. The
// caller's user header is forwarded on every request.
func RegisterRoutes(r chi.Router, client *Client) {
	r.Route("/api/backend", func(r chi.Router) {
		r.Get("/workspaces", handleListWorkspaces(client))
		r.Post("/workspaces", handleCreateWorkspace(client))
		r.Post("/workspaces/join", handleJoinWorkspace(client))
		r.Post("/datasets", handleUploadDataset(client))
		r.Get("/training", handleListTraining(client))
		r.Post("/training", handleStartTraining(client))
		r.Get("/analysis", handleAnalysisHistory(client))
		r.Get("/overview", handleOverview(client))
		r.Post("/predict", handlePredict(client))
	})
}

func userClient(client *Client, r *http.Request) *Client {
	return client.ForUser(r.Header.Get(UserHeader))
}

func handleListWorkspaces(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaces, err := userClient(client, r).ListWorkspaces(r.Context())
		if err != nil {
			writeBackendError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]any{"workspaces": workspaces})
	}
}

func handleCreateWorkspace(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
		ws, err := userClient(client, r).CreateWorkspace(r.Context(), req.Name, req.Description)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, map[string]any{"workspace": ws})
	}
}

func handleJoinWorkspace(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			WorkspaceKey string `json:"workspace_key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
		ws, err := userClient(client, r).JoinWorkspace(r.Context(), req.WorkspaceKey)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]any{"workspace": ws})
	}
}

func handleUploadDataset(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		workspaceID, err := strconv.ParseInt(r.FormValue("workspace_id"), 10, 64)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "workspace_id is required")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()

		ds, err := userClient(client, r).UploadDataset(r.Context(), workspaceID, header.Filename, file)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, map[string]any{"dataset": ds})
	}
}

func handleListTraining(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, ok := workspaceParam(w, r)
		if !ok {
			return
		}
		sessions, err := userClient(client, r).ListTraining(r.Context(), workspaceID)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]any{"sessions": sessions, "active": AnyActive(sessions)})
	}
}

func handleStartTraining(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TrainingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
		session, err := userClient(client, r).StartTraining(r.Context(), req)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, map[string]any{"session": session})
	}
}

func handleAnalysisHistory(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, ok := workspaceParam(w, r)
		if !ok {
			return
		}
		history, err := userClient(client, r).AnalysisHistory(r.Context(), workspaceID)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, map[string]any{"history": history})
	}
}

func handleOverview(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, ok := workspaceParam(w, r)
		if !ok {
			return
		}
		ov, err := userClient(client, r).Overview(r.Context(), workspaceID)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ov)
	}
}

func handlePredict(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in PredictionInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := in.Validate(); err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		result, err := userClient(client, r).Predict(r.Context(), in)
		if err != nil {
			writeBackendError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, result)
	}
}

func workspaceParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("workspace_id"), 10, 64)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "workspace_id is required")
		return 0, false
	}
	return id, true
}

// writeBackendError relays backend status codes and maps local
// validation errors to 400.
func writeBackendError(w http.ResponseWriter, err error) {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		httpjson.Error(w, apiErr.Status, apiErr.Message)
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrKeyRequired), errors.Is(err, ErrDatasetRequired):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	default:
		httpjson.Error(w, http.StatusBadGateway, err.Error())
	}
}
