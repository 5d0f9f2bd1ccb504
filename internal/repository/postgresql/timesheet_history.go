package postgresql

import (
	"context"
	"fmt"

	"github.com/crewbase/crewbase-backend-go/internal/domain/timesheet"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
)

// timesheetHistoryRepository is append-only; rows are never updated or
// deleted.
type timesheetHistoryRepository struct {
	db *database.DB
}

func NewTimesheetHistoryRepository(db *database.DB) timesheet.HistoryRepository {
	return &timesheetHistoryRepository{db: db}
}

func (r *timesheetHistoryRepository) Create(ctx context.Context, h timesheet.TimesheetHistory) (timesheet.TimesheetHistory, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		INSERT INTO timesheet_history (id, organization_id, worker_id, date, old_hours, new_hours, changed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, organization_id, worker_id, date, old_hours, new_hours, changed_by, created_at
	`

	var created timesheet.TimesheetHistory
	err := q.QueryRow(ctx, query,
		h.ID, h.OrganizationID, h.WorkerID, h.Date, h.OldHours, h.NewHours, h.ChangedBy,
	).Scan(
		&created.ID, &created.OrganizationID, &created.WorkerID, &created.Date,
		&created.OldHours, &created.NewHours, &created.ChangedBy, &created.CreatedAt,
	)
	if err != nil {
		return timesheet.TimesheetHistory{}, fmt.Errorf("failed to create history entry: %w", err)
	}
	return created, nil
}

func (r *timesheetHistoryRepository) ListByWorker(ctx context.Context, workerID string, organizationID string) ([]timesheet.TimesheetHistory, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT id, organization_id, worker_id, date, old_hours, new_hours, changed_by, created_at
		 FROM timesheet_history
		 WHERE worker_id = $1 AND organization_id = $2
		 ORDER BY created_at DESC`,
		workerID, organizationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.TimesheetHistory
	for rows.Next() {
		var h timesheet.TimesheetHistory
		if err := rows.Scan(
			&h.ID, &h.OrganizationID, &h.WorkerID, &h.Date,
			&h.OldHours, &h.NewHours, &h.ChangedBy, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, h)
	}
	return entries, rows.Err()
}
