package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spacecanva/spacecanva/internal/logging"
)

// Purger removes expired entries in bulk.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// StartPurgeWorker purges p every interval until ctx is cancelled.
// Failures are logged and retried on the next tick.
func StartPurgeWorker(ctx context.Context, p Purger, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}
	logger = logging.OrNop(logger)
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := p.Purge(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					logger.Warn("cache purge failed", zap.Error(err))
					continue
				}
				if n > 0 {
					logger.Debug("purged expired cache entries", zap.Int64("removed", n))
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
