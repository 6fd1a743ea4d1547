package worker

import (
	"context"
	"log/slog"
	"time"
)

// Refresher reloads wallet state from the chain when it has gone stale.
type Refresher interface {
	RefreshIfStale(ctx context.Context) error
}

// RefreshWorker periodically refreshes the connected wallet's balances.
type RefreshWorker struct {
	refresher Refresher
	interval  time.Duration
}

// NewRefreshWorker creates a new RefreshWorker.
func NewRefreshWorker(refresher Refresher, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		refresher: refresher,
		interval:  interval,
	}
}

// Run starts the refresh worker loop. It blocks until the context is cancelled.
func (w *RefreshWorker) Run(ctx context.Context) {
	slog.Info("RefreshWorker: starting")

	// Refresh immediately on startup
	if err := w.refresher.RefreshIfStale(ctx); err != nil {
		slog.Error("RefreshWorker: initial refresh failed", "error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("RefreshWorker: shutting down")
			return
		case <-ticker.C:
			if err := w.refresher.RefreshIfStale(ctx); err != nil {
				slog.Error("RefreshWorker: refresh failed", "error", err)
			}
		}
	}
}
