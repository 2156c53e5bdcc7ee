// Package laboratory runs the AI chat laboratory: questions go to a chat
// model, answers are split into prose and visualization messages, and
// conversations are kept in memory per session.
package laboratory

import (
	"time"

	"github.com/google/uuid"

	"github.com/spacecanva/spacecanva/internal/backend"
	"github.com/spacecanva/spacecanva/internal/viz"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Kind is the content type of a message.
type Kind string

const (
	KindText     Kind = "text"
	KindChart    Kind = "chart"
	KindTable    Kind = "table"
	KindGauge    Kind = "gauge"
	KindCustom   Kind = "custom"
	KindForm     Kind = "form"
	KindAnalysis Kind = "analysis"
)

// Message is one entry of a conversation. Exactly one of Text,
// Visualization, Form or Analysis carries the content, matching Kind.
// Messages are never modified once appended.
type Message struct {
	ID            string             `json:"id"`
	Role          Role               `json:"role"`
	Kind          Kind               `json:"kind"`
	Text          string             `json:"text,omitempty"`
	HTML          string             `json:"html,omitempty"`
	Visualization *viz.Visualization `json:"visualization,omitempty"`
	Form          *Form              `json:"form,omitempty"`
	Analysis      *Analysis          `json:"analysis,omitempty"`
	Timestamp     time.Time          `json:"timestamp"`
}

// FormField is one input of a form message.
type FormField struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Unit  string `json:"unit,omitempty"`
	Hint  string `json:"hint,omitempty"`
}

// Form asks the user for structured input.
type Form struct {
	Title  string      `json:"title"`
	Action string      `json:"action"`
	Fields []FormField `json:"fields"`
}

// Analysis summarizes a prediction result.
type Analysis struct {
	Classification string                  `json:"classification"`
	Confidence     float64                 `json:"confidence"`
	Probabilities  map[string]float64      `json:"probabilities,omitempty"`
	Input          backend.PredictionInput `json:"input"`
	Model          backend.ModelInfo       `json:"model_info"`
	Summary        string                  `json:"summary"`
}

// predictionForm lists the parameters accepted by the prediction endpoint.
var predictionForm = Form{
	Title:  "Exoplanet candidate parameters",
	Action: "predict",
	Fields: []FormField{
		{Name: "orbital_period", Label: "Orbital period", Unit: "days", Hint: "3.52"},
		{Name: "transit_duration", Label: "Transit duration", Unit: "hours", Hint: "2.8"},
		{Name: "transit_depth", Label: "Transit depth", Unit: "ppm", Hint: "14000"},
		{Name: "impact_parameter", Label: "Impact parameter", Hint: "0.5"},
		{Name: "snr", Label: "Signal-to-noise ratio", Hint: "120"},
		{Name: "stellar_temperature", Label: "Stellar temperature", Unit: "K", Hint: "6065"},
		{Name: "stellar_radius", Label: "Stellar radius", Unit: "R☉", Hint: "1.2"},
		{Name: "stellar_logg", Label: "Stellar surface gravity", Unit: "log g", Hint: "4.36"},
		{Name: "magnitude", Label: "Magnitude", Hint: "7.6"},
	},
}

func newMessage(role Role, kind Kind, now time.Time) Message {
	return Message{ID: uuid.NewString(), Role: role, Kind: kind, Timestamp: now}
}

func textMessage(role Role, text string, now time.Time) Message {
	m := newMessage(role, KindText, now)
	m.Text = text
	return m
}

func vizMessage(v viz.Visualization, now time.Time) Message {
	m := newMessage(RoleAssistant, Kind(v.Type), now)
	m.Visualization = &v
	return m
}

func formMessage(now time.Time) Message {
	m := newMessage(RoleAssistant, KindForm, now)
	form := predictionForm
	form.Fields = append([]FormField(nil), predictionForm.Fields...)
	m.Form = &form
	return m
}
