package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/vacation"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type vacationRepository struct {
	db *database.DB
}

func NewVacationRepository(db *database.DB) vacation.VacationRepository {
	return &vacationRepository{db: db}
}

const vacationColumns = `id, organization_id, worker_id, start_date, end_date, description, created_at, updated_at`

func scanVacation(row pgx.Row) (vacation.Vacation, error) {
	var v vacation.Vacation
	err := row.Scan(
		&v.ID, &v.OrganizationID, &v.WorkerID, &v.StartDate, &v.EndDate,
		&v.Description, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

func (r *vacationRepository) Create(ctx context.Context, v vacation.Vacation) (vacation.Vacation, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		INSERT INTO vacations (id, organization_id, worker_id, start_date, end_date, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + vacationColumns

	created, err := scanVacation(q.QueryRow(ctx, query,
		v.ID, v.OrganizationID, v.WorkerID, v.StartDate, v.EndDate, v.Description,
	))
	if err != nil {
		return vacation.Vacation{}, fmt.Errorf("failed to create vacation: %w", err)
	}
	return created, nil
}

func (r *vacationRepository) Delete(ctx context.Context, id string, organizationID string) error {
	q := database.QuerierFromContext(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM vacations WHERE id = $1 AND organization_id = $2`,
		id, organizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete vacation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vacation.ErrVacationNotFound
	}
	return nil
}

func (r *vacationRepository) ListByWorker(ctx context.Context, workerID string, organizationID string) ([]vacation.Vacation, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+vacationColumns+` FROM vacations
		 WHERE worker_id = $1 AND organization_id = $2
		 ORDER BY start_date`,
		workerID, organizationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacations: %w", err)
	}
	defer rows.Close()

	return collectVacations(rows)
}

func (r *vacationRepository) ListOverlapping(ctx context.Context, workerID string, organizationID string, start time.Time, end time.Time, excludeID string) ([]vacation.Vacation, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `SELECT ` + vacationColumns + ` FROM vacations
		WHERE worker_id = $1 AND organization_id = $2
		  AND start_date <= $4 AND end_date >= $3`
	args := []interface{}{workerID, organizationID, start, end}
	if excludeID != "" {
		query += ` AND id <> $5`
		args = append(args, excludeID)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping vacations: %w", err)
	}
	defer rows.Close()

	return collectVacations(rows)
}

func collectVacations(rows pgx.Rows) ([]vacation.Vacation, error) {
	var vacations []vacation.Vacation
	for rows.Next() {
		v, err := scanVacation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacation: %w", err)
		}
		vacations = append(vacations, v)
	}
	return vacations, rows.Err()
}

func (r *vacationRepository) WorkerIDsOnDate(ctx context.Context, organizationID string, workerIDs []string, date time.Time) (map[string]bool, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT DISTINCT worker_id FROM vacations
		 WHERE organization_id = $1 AND worker_id = ANY($2)
		   AND start_date <= $3 AND end_date >= $3`,
		organizationID, workerIDs, date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacationing workers: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var workerID string
		if err := rows.Scan(&workerID); err != nil {
			return nil, fmt.Errorf("failed to scan worker id: %w", err)
		}
		out[workerID] = true
	}
	return out, rows.Err()
}
