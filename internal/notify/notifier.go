// Package notify defines the notification interface and implementations
// for announcing completed export runs.
package notify

import (
	"context"
	"time"
)

// RunSummary contains the data needed to announce a finished export run.
type RunSummary struct {
	RunID      string        `json:"run_id"`
	Store      string        `json:"store"`
	Products   int           `json:"products"`
	Pages      int           `json:"pages"`
	StoppedAt  string        `json:"stopped_at"`
	OutputPath string        `json:"output_path"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
}

// Notifier delivers run-completion notifications.
type Notifier interface {
	ExportCompleted(ctx context.Context, run RunSummary) error
}
