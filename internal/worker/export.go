package worker

import (
	"context"
	"log/slog"
	"time"
)

// Exporter generates a holdings report for the connected wallet.
type Exporter interface {
	Export(ctx context.Context) error
}

// AfterExportHook is called after each successful export.
type AfterExportHook func(ctx context.Context)

// ExportWorker periodically exports the wallet's holdings report.
type ExportWorker struct {
	exporter Exporter
	interval time.Duration
	hook     AfterExportHook // optional
}

// NewExportWorker creates a new ExportWorker with an optional post-run hook.
func NewExportWorker(exporter Exporter, interval time.Duration, hook AfterExportHook) *ExportWorker {
	return &ExportWorker{
		exporter: exporter,
		interval: interval,
		hook:     hook,
	}
}

// Run starts the export worker loop. It blocks until the context is cancelled.
func (w *ExportWorker) Run(ctx context.Context) {
	slog.Info("ExportWorker: starting")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("ExportWorker: shutting down")
			return
		case <-ticker.C:
			if err := w.exporter.Export(ctx); err != nil {
				slog.Error("ExportWorker: export failed", "error", err)
				continue
			}
			slog.Info("ExportWorker: export completed")
			if w.hook != nil {
				w.hook(ctx)
			}
		}
	}
}
