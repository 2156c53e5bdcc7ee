package laboratory

import (
	"context"

	"go.uber.org/zap"

	"github.com/spacecanva/spacecanva/internal/backend"
	"github.com/spacecanva/spacecanva/internal/logging"
)

// Predictor classifies transit candidates on behalf of a user.
type Predictor interface {
	Predict(ctx context.Context, userID string, in backend.PredictionInput) (*backend.PredictionResult, error)
}

// BackendPredictor forwards predictions to the backend client.
type BackendPredictor struct {
	Client *backend.Client
}

// Predict implements Predictor.
func (p BackendPredictor) Predict(ctx context.Context, userID string, in backend.PredictionInput) (*backend.PredictionResult, error) {
	return p.Client.ForUser(userID).Predict(ctx, in)
}

// Handler serves the laboratory over HTTP and WebSocket.
type Handler struct {
	service    *Service
	sessions   *Sessions
	predictor  Predictor
	typewriter Typewriter
	logger     *zap.Logger
}

// NewHandler creates a laboratory handler. predictor may be nil, in which
// case predict requests are rejected.
func NewHandler(service *Service, sessions *Sessions, predictor Predictor, tw Typewriter, logger *zap.Logger) *Handler {
	if sessions == nil {
		sessions = NewSessions()
	}
	return &Handler{
		service:    service,
		sessions:   sessions,
		predictor:  predictor,
		typewriter: tw,
		logger:     logging.OrNop(logger),
	}
}
