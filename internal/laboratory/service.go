package laboratory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spacecanva/spacecanva/internal/backend"
	"github.com/spacecanva/spacecanva/internal/llm"
	"github.com/spacecanva/spacecanva/internal/logging"
	"github.com/spacecanva/spacecanva/internal/viz"
)

// Defaults for the chat model request.
const (
	DefaultModel       = "moonshot-v1-8k"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// ErrEmptyQuestion is returned for a blank question.
var ErrEmptyQuestion = errors.New("question is required")

// Options configures a Service. A nil Temperature takes the default; zero
// is a valid temperature.
type Options struct {
	Provider    llm.Provider
	Model       string
	Temperature *float64
	MaxTokens   int
	Logger      *zap.Logger
	Now         func() time.Time
}

// Service answers laboratory questions.
type Service struct {
	provider    llm.Provider
	model       string
	temperature float64
	maxTokens   int
	extractor   *viz.Extractor
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a laboratory service. Zero options take the defaults.
func NewService(opts Options) *Service {
	s := &Service{
		provider:    opts.Provider,
		model:       opts.Model,
		temperature: DefaultTemperature,
		maxTokens:   opts.MaxTokens,
		logger:      logging.OrNop(opts.Logger),
		now:         opts.Now,
	}
	if s.model == "" {
		s.model = DefaultModel
	}
	if opts.Temperature != nil {
		s.temperature = *opts.Temperature
	}
	if s.maxTokens == 0 {
		s.maxTokens = DefaultMaxTokens
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.extractor = viz.NewExtractor(s.logger)
	return s
}

// Query is a question with optional sampling overrides.
type Query struct {
	Question    string   `json:"question"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// Usage reports token consumption of one answer.
type Usage struct {
	Model        string  `json:"model"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	CostUSD      float64 `json:"cost_usd"`
}

// Reply is a processed model answer.
type Reply struct {
	Text           string              `json:"text"`
	HTML           string              `json:"html,omitempty"`
	Visualizations []viz.Visualization `json:"visualizations"`
	Hints          viz.Hints           `json:"hints"`
	Usage          Usage               `json:"usage"`
}

// Ask sends question to the model with the default temperature.
func (s *Service) Ask(ctx context.Context, question string) (*Reply, error) {
	return s.AskWith(ctx, Query{Question: question})
}

// AskWith sends q to the model and splits the answer into prose and
// visualizations.
func (s *Service) AskWith(ctx context.Context, q Query) (*Reply, error) {
	question := strings.TrimSpace(q.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if s.provider == nil {
		return nil, errors.New("LLM provider not configured")
	}

	temperature := s.temperature
	if q.Temperature != nil {
		temperature = clamp(*q.Temperature, 0, 1)
	}

	resp, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Model: s.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: question},
		},
		MaxTokens:   s.maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("asking %s: %w", s.provider.Name(), err)
	}

	res := s.extractor.Extract(resp.Content)
	html, err := viz.RenderProse(res.Text)
	if err != nil {
		s.logger.Warn("rendering answer prose", zap.Error(err))
	}

	model := resp.Model
	if model == "" {
		model = s.model
	}
	reply := &Reply{
		Text:           res.Text,
		HTML:           html,
		Visualizations: res.Visualizations,
		Hints:          viz.AnalyzeForUI(res.Text),
		Usage: Usage{
			Model:        model,
			InputTokens:  resp.InputTokens,
			OutputTokens: resp.OutputTokens,
			CostUSD:      llm.EstimateCost(model, resp.InputTokens, resp.OutputTokens),
		},
	}
	s.logger.Info("laboratory answer",
		zap.String("provider", s.provider.Name()),
		zap.Int("visualizations", len(reply.Visualizations)),
		zap.Int("input_tokens", resp.InputTokens),
		zap.Int("output_tokens", resp.OutputTokens))
	return reply, nil
}

// Send appends the question to conv, asks the model and appends the
// assistant text followed by one message per visualization in order. A
// question about prediction or classification also gets a parameter form.
// The returned messages are the ones appended after the user message.
func (s *Service) Send(ctx context.Context, conv *Conversation, q Query) (*Reply, []Message, error) {
	if strings.TrimSpace(q.Question) == "" {
		return nil, nil, ErrEmptyQuestion
	}
	conv.Append(textMessage(RoleUser, q.Question, s.now()))

	reply, err := s.AskWith(ctx, q)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	msgs := make([]Message, 0, len(reply.Visualizations)+2)
	if reply.Text != "" {
		m := textMessage(RoleAssistant, reply.Text, now)
		m.HTML = reply.HTML
		msgs = append(msgs, m)
	}
	for _, v := range reply.Visualizations {
		msgs = append(msgs, vizMessage(v, now))
	}
	if WantsPrediction(q.Question) {
		msgs = append(msgs, formMessage(now))
	}
	conv.Append(msgs...)
	return reply, msgs, nil
}

// RecordPrediction appends an analysis message summarizing res.
func (s *Service) RecordPrediction(conv *Conversation, in backend.PredictionInput, res *backend.PredictionResult) Message {
	m := newMessage(RoleAssistant, KindAnalysis, s.now())
	m.Analysis = &Analysis{
		Classification: res.Classification,
		Confidence:     res.Confidence,
		Probabilities:  res.Probabilities,
		Input:          in,
		Model:          res.Model,
		Summary:        summarize(res),
	}
	conv.Append(m)
	return m
}

// WantsPrediction reports whether question asks for a candidate to be
// predicted or classified.
func WantsPrediction(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range []string{"predict", "classify", "classification"} {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func summarize(res *backend.PredictionResult) string {
	s := fmt.Sprintf("Classified as %s with %.1f%% confidence.", res.Classification, res.Confidence*100)
	if res.Model.Name != "" {
		s += fmt.Sprintf(" Model: %s", res.Model.Name)
		if res.Model.Accuracy > 0 {
			s += fmt.Sprintf(" (accuracy %.1f%%)", res.Model.Accuracy*100)
		}
		s += "."
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
