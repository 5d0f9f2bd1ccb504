package timesheet

import (
	"context"
	"time"
)

// WorkLogRepository defines data access methods for timesheet cells.
// All methods include organizationID parameter to prevent cross-tenant data access.
type WorkLogRepository interface {
	// Get returns the cell for (worker, date), or ErrWorkLogNotFound.
	Get(ctx context.Context, workerID string, organizationID string, date time.Time) (WorkLog, error)
	// Upsert writes the cell atomically (insert or row-level overwrite).
	Upsert(ctx context.Context, log WorkLog) (WorkLog, error)
	// Delete removes the cell if present; deleting an absent cell is not
	// an error.
	Delete(ctx context.Context, workerID string, organizationID string, date time.Time) error
	ListForMonth(ctx context.Context, organizationID string, year int, month int) ([]WorkLog, error)
	ListForWorkersOnDate(ctx context.Context, organizationID string, workerIDs []string, date time.Time) ([]WorkLog, error)
	// AssignProject points every positive-hours cell of the given workers
	// in the date range at projectID and returns the number of rows
	// updated.
	AssignProject(ctx context.Context, organizationID string, projectID string, workerIDs []string, from time.Time, to time.Time) (int64, error)
}

// HistoryRepository is append-only; there are no update or delete methods
// by design.
type HistoryRepository interface {
	Create(ctx context.Context, h TimesheetHistory) (TimesheetHistory, error)
	// ListByWorker returns entries ordered newest first.
	ListByWorker(ctx context.Context, workerID string, organizationID string) ([]TimesheetHistory, error)
}
