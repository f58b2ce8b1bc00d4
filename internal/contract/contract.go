// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/gamelens/gamelens/schema"
)

// SourceAdapter loads raw telemetry rows from some origin into a
// Table. The pipeline treats the table as opaque input and never
// reaches back into the adapter.
type SourceAdapter interface {
	// Load reads the dataset at the given location.
	Load(ctx context.Context, location string) (*schema.Table, error)
}

// InsightBackend is the optional external insight collaborator. It is
// injected into the insight generator, never hard-imported, so the
// core compiles and is fully testable with no network dependency.
type InsightBackend interface {
	// GenerateInsights produces insight drafts for the given context.
	GenerateInsights(ctx context.Context, ic schema.InsightContext) (*schema.InsightResponse, error)
}

// RunStore records pipeline runs and their insights for later
// inspection and export. Implementations must be safe to call from a
// single pipeline run at a time.
type RunStore interface {
	// BeginRun creates a new run row and returns its unique ID.
	BeginRun(startTime time.Time, source string, configParams map[string]any) (int64, error)

	// EndRun finalizes a run with its outcome.
	EndRun(runID int64, endTime time.Time, result *schema.PipelineResult) error

	// RecordInsights stores the insights produced by a run.
	RecordInsights(runID int64, insights []schema.Insight) error

	// ListRuns returns persisted runs, most recent first.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunStatus, error)

	// Clear removes all persisted runs.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
