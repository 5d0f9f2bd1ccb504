package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/timesheet"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workLogRepository struct {
	db *database.DB
}

func NewWorkLogRepository(db *database.DB) timesheet.WorkLogRepository {
	return &workLogRepository{db: db}
}

const workLogColumns = `id, organization_id, worker_id, project_id, date, hours, created_by, created_at, updated_at`

func scanWorkLog(row pgx.Row) (timesheet.WorkLog, error) {
	var l timesheet.WorkLog
	err := row.Scan(
		&l.ID, &l.OrganizationID, &l.WorkerID, &l.ProjectID, &l.Date,
		&l.Hours, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func (r *workLogRepository) Get(ctx context.Context, workerID string, organizationID string, date time.Time) (timesheet.WorkLog, error) {
	q := database.QuerierFromContext(ctx, r.db)

	l, err := scanWorkLog(q.QueryRow(ctx,
		`SELECT `+workLogColumns+` FROM work_logs
		 WHERE worker_id = $1 AND organization_id = $2 AND date = $3`,
		workerID, organizationID, date,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.WorkLog{}, timesheet.ErrWorkLogNotFound
		}
		return timesheet.WorkLog{}, fmt.Errorf("failed to get work log: %w", err)
	}
	return l, nil
}

func (r *workLogRepository) Upsert(ctx context.Context, log timesheet.WorkLog) (timesheet.WorkLog, error) {
	q := database.QuerierFromContext(ctx, r.db)

	// One row per (worker, date); a concurrent insert loses to the
	// conflict clause rather than erroring.
	query := `
		INSERT INTO work_logs (id, organization_id, worker_id, project_id, date, hours, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (worker_id, date) DO UPDATE SET
			project_id = EXCLUDED.project_id,
			hours = EXCLUDED.hours,
			created_by = EXCLUDED.created_by,
			updated_at = NOW()
		RETURNING ` + workLogColumns

	saved, err := scanWorkLog(q.QueryRow(ctx, query,
		log.ID, log.OrganizationID, log.WorkerID, log.ProjectID, log.Date, log.Hours, log.CreatedBy,
	))
	if err != nil {
		return timesheet.WorkLog{}, fmt.Errorf("failed to upsert work log: %w", err)
	}
	return saved, nil
}

func (r *workLogRepository) Delete(ctx context.Context, workerID string, organizationID string, date time.Time) error {
	q := database.QuerierFromContext(ctx, r.db)

	_, err := q.Exec(ctx,
		`DELETE FROM work_logs WHERE worker_id = $1 AND organization_id = $2 AND date = $3`,
		workerID, organizationID, date,
	)
	if err != nil {
		return fmt.Errorf("failed to delete work log: %w", err)
	}
	return nil
}

func (r *workLogRepository) ListForMonth(ctx context.Context, organizationID string, year int, month int) ([]timesheet.WorkLog, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+workLogColumns+` FROM work_logs
		 WHERE organization_id = $1
		   AND EXTRACT(YEAR FROM date) = $2 AND EXTRACT(MONTH FROM date) = $3
		 ORDER BY date, worker_id`,
		organizationID, year, month,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list work logs: %w", err)
	}
	defer rows.Close()

	return collectWorkLogs(rows)
}

func (r *workLogRepository) ListForWorkersOnDate(ctx context.Context, organizationID string, workerIDs []string, date time.Time) ([]timesheet.WorkLog, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+workLogColumns+` FROM work_logs
		 WHERE organization_id = $1 AND worker_id = ANY($2) AND date = $3`,
		organizationID, workerIDs, date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list work logs for date: %w", err)
	}
	defer rows.Close()

	return collectWorkLogs(rows)
}

func collectWorkLogs(rows pgx.Rows) ([]timesheet.WorkLog, error) {
	var logs []timesheet.WorkLog
	for rows.Next() {
		l, err := scanWorkLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *workLogRepository) AssignProject(ctx context.Context, organizationID string, projectID string, workerIDs []string, from time.Time, to time.Time) (int64, error) {
	q := database.QuerierFromContext(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE work_logs SET project_id = $2, updated_at = NOW()
		 WHERE organization_id = $1 AND worker_id = ANY($3)
		   AND date BETWEEN $4 AND $5 AND hours > 0`,
		organizationID, projectID, workerIDs, from, to,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to assign project to work logs: %w", err)
	}
	return tag.RowsAffected(), nil
}
