package backend

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Overview fetches the training sessions and analysis history of a
// workspace concurrently. Either failure fails the whole call.
func (c *Client) Overview(ctx context.Context, workspaceID int64) (*Overview, error) {
	ov := &Overview{WorkspaceID: workspaceID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sessions, err := c.ListTraining(gctx, workspaceID)
		if err != nil {
			return fmt.Errorf("listing training sessions: %w", err)
		}
		ov.Training = sessions
		return nil
	})
	g.Go(func() error {
		history, err := c.AnalysisHistory(gctx, workspaceID)
		if err != nil {
			return fmt.Errorf("loading analysis history: %w", err)
		}
		ov.Analysis = history
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ov, nil
}
