package backend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spacecanva/spacecanva/internal/logging"
)

// DefaultPollInterval is the delay between training status refreshes.
const DefaultPollInterval = 5 * time.Second

// TrainingLister lists the training sessions of a workspace.
type TrainingLister interface {
	ListTraining(ctx context.Context, workspaceID int64) ([]TrainingSession, error)
}

// Poller refreshes a workspace's training sessions while any of them is
// pending or running.
type Poller struct {
	lister      TrainingLister
	workspaceID int64
	interval    time.Duration
	onUpdate    func([]TrainingSession)
	logger      *zap.Logger
}

// NewPoller creates a poller. onUpdate receives every successful refresh
// and may be nil. A non-positive interval uses DefaultPollInterval.
func NewPoller(lister TrainingLister, workspaceID int64, interval time.Duration, onUpdate func([]TrainingSession), logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if onUpdate == nil {
		onUpdate = func([]TrainingSession) {}
	}
	return &Poller{
		lister:      lister,
		workspaceID: workspaceID,
		interval:    interval,
		onUpdate:    onUpdate,
		logger:      logging.OrNop(logger),
	}
}

// Run polls until no session is active or ctx is done, and returns the
// last sessions seen. Fetch errors are logged and retried on the next tick.
func (p *Poller) Run(ctx context.Context) []TrainingSession {
	last, active := p.poll(ctx, nil)
	if !active {
		return last
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return last
		case <-ticker.C:
			last, active = p.poll(ctx, last)
			if !active {
				p.logger.Debug("training poller stopping", zap.Int64("workspace_id", p.workspaceID))
				return last
			}
		}
	}
}

// poll fetches once. On error it keeps prev and reports active so the
// next tick retries.
func (p *Poller) poll(ctx context.Context, prev []TrainingSession) ([]TrainingSession, bool) {
	sessions, err := p.lister.ListTraining(ctx, p.workspaceID)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("polling training sessions",
				zap.Int64("workspace_id", p.workspaceID),
				zap.Error(err))
		}
		return prev, true
	}
	p.onUpdate(sessions)
	return sessions, AnyActive(sessions)
}
