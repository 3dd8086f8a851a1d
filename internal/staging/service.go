package staging

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunSweeper removes expired workspaces every interval until ctx is done.
func RunSweeper(ctx context.Context, store Store, interval, ttl time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		logger.Warn("staging sweeper disabled", zap.Duration("interval", interval))
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := store.Sweep(now, ttl)
			if err != nil {
				logger.Error("staging sweep failed", zap.Error(err), zap.Int("removed", removed))
				continue
			}
			if removed > 0 {
				logger.Info("staging sweep", zap.Int("removed", removed))
			}
		}
	}
}
