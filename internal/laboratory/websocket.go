package laboratory

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/spacecanva/spacecanva/internal/backend"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Frame types.
const (
	frameAsk     = "ask"
	framePredict = "predict"
	frameSession = "session"
	frameTyping  = "typing"
	frameMessage = "message"
	frameError   = "error"
)

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type        string                   `json:"type"` // "ask" or "predict"
	SessionID   string                   `json:"session_id"`
	Content     string                   `json:"content"`
	Temperature *float64                 `json:"temperature,omitempty"`
	Prediction  *backend.PredictionInput `json:"prediction,omitempty"`
}

// wsFrame is the outgoing WebSocket message format.
type wsFrame struct {
	Type      string   `json:"type"`
	SessionID string   `json:"session_id"`
	Content   string   `json:"content,omitempty"`
	Message   *Message `json:"message,omitempty"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("laboratory: websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	userID := r.Header.Get(backend.UserHeader)
	if userID == "" {
		userID = r.URL.Query().Get("user_id")
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("laboratory: websocket read", zap.Error(err))
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(data, &req); err != nil {
			h.send(conn, wsFrame{Type: frameError, Content: "invalid message format"})
			continue
		}

		switch req.Type {
		case frameAsk:
			h.wsAsk(conn, r, req)
		case framePredict:
			h.wsPredict(conn, r, userID, req)
		default:
			h.send(conn, wsFrame{Type: frameError, SessionID: req.SessionID, Content: "unknown message type: " + req.Type})
		}
	}
}

func (h *Handler) wsAsk(conn *websocket.Conn, r *http.Request, req wsRequest) {
	if strings.TrimSpace(req.Content) == "" {
		h.send(conn, wsFrame{Type: frameError, SessionID: req.SessionID, Content: "content is required"})
		return
	}

	ctx := r.Context()
	conv := h.sessions.GetOrCreate(req.SessionID)
	if conv.ID != req.SessionID {
		h.send(conn, wsFrame{Type: frameSession, SessionID: conv.ID})
	}

	_, msgs, err := h.service.Send(ctx, conv, Query{Question: req.Content, Temperature: req.Temperature})
	if err != nil {
		h.send(conn, wsFrame{Type: frameError, SessionID: conv.ID, Content: "question failed: " + err.Error()})
		return
	}

	for i := range msgs {
		msg := msgs[i]
		if msg.Kind == KindText {
			err := h.typewriter.Type(ctx, msg.Text, func(partial string) error {
				return conn.WriteJSON(wsFrame{Type: frameTyping, SessionID: conv.ID, Content: partial})
			})
			if err != nil {
				h.logger.Debug("laboratory: typing interrupted", zap.Error(err))
				return
			}
		}
		h.send(conn, wsFrame{Type: frameMessage, SessionID: conv.ID, Message: &msg})
	}
}

func (h *Handler) wsPredict(conn *websocket.Conn, r *http.Request, userID string, req wsRequest) {
	if h.predictor == nil {
		h.send(conn, wsFrame{Type: frameError, SessionID: req.SessionID, Content: "prediction backend not configured"})
		return
	}
	if req.Prediction == nil {
		h.send(conn, wsFrame{Type: frameError, SessionID: req.SessionID, Content: "prediction parameters are required"})
		return
	}
	if err := req.Prediction.Validate(); err != nil {
		h.send(conn, wsFrame{Type: frameError, SessionID: req.SessionID, Content: err.Error()})
		return
	}

	conv := h.sessions.GetOrCreate(req.SessionID)
	if conv.ID != req.SessionID {
		h.send(conn, wsFrame{Type: frameSession, SessionID: conv.ID})
	}

	res, err := h.predictor.Predict(r.Context(), userID, *req.Prediction)
	if err != nil {
		h.send(conn, wsFrame{Type: frameError, SessionID: conv.ID, Content: "prediction failed: " + err.Error()})
		return
	}
	msg := h.service.RecordPrediction(conv, *req.Prediction, res)
	h.send(conn, wsFrame{Type: frameMessage, SessionID: conv.ID, Message: &msg})
}

func (h *Handler) send(conn *websocket.Conn, frame wsFrame) {
	if err := conn.WriteJSON(frame); err != nil {
		h.logger.Warn("laboratory: websocket write", zap.Error(err))
	}
}
