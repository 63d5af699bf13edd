package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded summaries. It is
// used when no webhook is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards summaries with a log
// message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// ExportCompleted logs and discards a run summary.
func (n *NoOpNotifier) ExportCompleted(_ context.Context, run RunSummary) error {
	n.log.Debug("notification discarded (no webhook configured)",
		"run_id", run.RunID,
		"store", run.Store,
		"products", run.Products,
	)
	return nil
}
