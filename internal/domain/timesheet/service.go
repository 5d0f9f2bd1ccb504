package timesheet

import (
	"context"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
)

// TimesheetService is the cell store's write and read surface. Writes
// re-check the closed-month lock inside the same transaction that
// performs the write.
type TimesheetService interface {
	// UpsertHours applies a single cell write. On ErrPayrollLocked the
	// returned result still carries the stored hours so the caller can
	// revert optimistic UI state.
	UpsertHours(ctx context.Context, actor user.Actor, req UpsertHoursRequest) (CellResult, error)
	// BulkUpsert applies the single-cell rule per worker and never lets
	// one worker's rejection abort the batch.
	BulkUpsert(ctx context.Context, actor user.Actor, req BulkUpsertRequest) (BulkResult, error)
	GetGrid(ctx context.Context, actor user.Actor, year int, month int) (GridResponse, error)
	ListHistory(ctx context.Context, actor user.Actor, workerID string) ([]HistoryEntryResponse, error)
	// AssignProject links existing positive-hours cells in a date range to
	// a project; returns the number of cells updated.
	AssignProject(ctx context.Context, actor user.Actor, req AssignProjectRequest) (int64, error)
}
