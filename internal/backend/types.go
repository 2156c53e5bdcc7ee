package backend

import "fmt"

// Workspace is a collaboration container owned by the backend.
type Workspace struct {
	ID           int64  `json:"id"`
	WorkspaceKey string `json:"workspace_key"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CreatedAt    string `json:"created_at"`
	IsActive     int    `json:"is_active"`
}

// Dataset is an uploaded observation file.
type Dataset struct {
	ID          int64  `json:"id"`
	WorkspaceID int64  `json:"workspace_id"`
	Filename    string `json:"filename"`
	Rows        int    `json:"rows,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Training session states reported by the backend.
const (
	TrainingPending   = "pending"
	TrainingRunning   = "running"
	TrainingCompleted = "completed"
	TrainingFailed    = "failed"
)

// TrainingSession is one model training job.
type TrainingSession struct {
	ID          int64              `json:"id"`
	WorkspaceID int64              `json:"workspace_id"`
	DatasetID   int64              `json:"dataset_id,omitempty"`
	ModelType   string             `json:"model_type,omitempty"`
	Status      string             `json:"status"`
	Progress    float64            `json:"progress,omitempty"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
	Error       string             `json:"error,omitempty"`
	CreatedAt   string             `json:"created_at,omitempty"`
	CompletedAt string             `json:"completed_at,omitempty"`
}

// Active reports whether the session is still pending or running.
func (s TrainingSession) Active() bool {
	return s.Status == TrainingPending || s.Status == TrainingRunning
}

// AnyActive reports whether any session is still pending or running.
func AnyActive(sessions []TrainingSession) bool {
	for _, s := range sessions {
		if s.Active() {
			return true
		}
	}
	return false
}

// TrainingRequest starts a training job on a dataset.
type TrainingRequest struct {
	WorkspaceID     int64              `json:"workspace_id"`
	DatasetID       int64              `json:"dataset_id"`
	ModelType       string             `json:"model_type,omitempty"`
	Hyperparameters map[string]float64 `json:"hyperparameters,omitempty"`
}

// PredictionInput holds the transit observation parameters of a candidate.
type PredictionInput struct {
	WorkspaceID     int64   `json:"workspace_id,omitempty"`
	OrbitalPeriod   float64 `json:"orbital_period"`   // days
	TransitDuration float64 `json:"transit_duration"` // hours
	TransitDepth    float64 `json:"transit_depth"`    // ppm
	ImpactParameter float64 `json:"impact_parameter"`
	SNR             float64 `json:"snr"`
	StellarTemp     float64 `json:"stellar_temperature"` // K
	StellarRadius   float64 `json:"stellar_radius"`      // solar radii
	StellarLogG     float64 `json:"stellar_logg"`
	Magnitude       float64 `json:"magnitude"`
}

// Validate checks the parameters that must be strictly positive.
func (in PredictionInput) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"orbital_period", in.OrbitalPeriod},
		{"transit_duration", in.TransitDuration},
		{"transit_depth", in.TransitDepth},
		{"stellar_temperature", in.StellarTemp},
		{"stellar_radius", in.StellarRadius},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("%s must be positive", c.name)
		}
	}
	if in.ImpactParameter < 0 {
		return fmt.Errorf("impact_parameter must not be negative")
	}
	return nil
}

// ModelInfo describes the model that produced a prediction.
type ModelInfo struct {
	Name              string             `json:"name,omitempty"`
	Version           string             `json:"version,omitempty"`
	Accuracy          float64            `json:"accuracy,omitempty"`
	FeatureImportance map[string]float64 `json:"feature_importance,omitempty"`
}

// PredictionResult is the backend's classification of a candidate.
type PredictionResult struct {
	Classification string             `json:"classification"`
	Probabilities  map[string]float64 `json:"probabilities"`
	Confidence     float64            `json:"confidence"`
	Model          ModelInfo          `json:"model_info"`
}

// AnalysisRecord is one past prediction stored by the backend.
type AnalysisRecord struct {
	ID             int64           `json:"id"`
	WorkspaceID    int64           `json:"workspace_id"`
	Input          PredictionInput `json:"input"`
	Classification string          `json:"classification"`
	Confidence     float64         `json:"confidence"`
	CreatedAt      string          `json:"created_at"`
}

// Overview bundles the training and analysis state of a workspace.
type Overview struct {
	WorkspaceID int64             `json:"workspace_id"`
	Training    []TrainingSession `json:"training"`
	Analysis    []AnalysisRecord  `json:"analysis"`
}
