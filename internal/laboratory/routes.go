package laboratory

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/spacecanva/spacecanva/internal/httpjson"
)

// RegisterRoutes mounts the laboratory JSON API.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/lab", func(r chi.Router) {
		r.Post("/ask", h.handleAsk)
		r.Post("/conversations", h.handleCreateConversation)
		r.Get("/conversations/{id}", h.handleGetConversation)
	})
}

// RegisterWebSocket mounts the streaming chat endpoint. It is kept apart
// from RegisterRoutes so callers can leave it outside request timeouts.
func (h *Handler) RegisterWebSocket(r chi.Router) {
	r.Get("/ws/lab", h.handleWebSocket)
}

type askRequest struct {
	SessionID   string   `json:"session_id"`
	Question    string   `json:"question"`
	Temperature *float64 `json:"temperature,omitempty"`
}

type askResponse struct {
	SessionID string    `json:"session_id"`
	Reply     *Reply    `json:"reply"`
	Messages  []Message `json:"messages"`
}

type conversationResponse struct {
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		httpjson.Error(w, http.StatusBadRequest, ErrEmptyQuestion.Error())
		return
	}

	conv := h.sessions.GetOrCreate(req.SessionID)
	reply, msgs, err := h.service.Send(r.Context(), conv, Query{Question: req.Question, Temperature: req.Temperature})
	if errors.Is(err, ErrEmptyQuestion) {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("laboratory ask", zap.String("session_id", conv.ID), zap.Error(err))
		httpjson.Error(w, http.StatusBadGateway, err.Error())
		return
	}

	httpjson.Write(w, http.StatusOK, askResponse{SessionID: conv.ID, Reply: reply, Messages: msgs})
}

func (h *Handler) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	conv := h.sessions.Create()
	httpjson.Write(w, http.StatusCreated, conversationResponse{ID: conv.ID, Messages: conv.Messages()})
}

func (h *Handler) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		httpjson.Error(w, http.StatusNotFound, "conversation not found")
		return
	}
	httpjson.Write(w, http.StatusOK, conversationResponse{ID: conv.ID, Messages: conv.Messages()})
}
