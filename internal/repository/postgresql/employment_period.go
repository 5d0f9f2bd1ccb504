package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/worker"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employmentPeriodRepository struct {
	db *database.DB
}

func NewEmploymentPeriodRepository(db *database.DB) worker.EmploymentPeriodRepository {
	return &employmentPeriodRepository{db: db}
}

func (r *employmentPeriodRepository) Create(ctx context.Context, p worker.EmploymentPeriod) (worker.EmploymentPeriod, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		INSERT INTO employment_periods (id, worker_id, organization_id, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, worker_id, organization_id, start_date, end_date
	`

	var created worker.EmploymentPeriod
	err := q.QueryRow(ctx, query, p.ID, p.WorkerID, p.OrganizationID, p.StartDate, p.EndDate).Scan(
		&created.ID, &created.WorkerID, &created.OrganizationID, &created.StartDate, &created.EndDate,
	)
	if err != nil {
		return worker.EmploymentPeriod{}, fmt.Errorf("failed to create employment period: %w", err)
	}
	return created, nil
}

func (r *employmentPeriodRepository) ListByWorker(ctx context.Context, workerID string, organizationID string) ([]worker.EmploymentPeriod, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, worker_id, organization_id, start_date, end_date
		FROM employment_periods
		WHERE worker_id = $1 AND organization_id = $2
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, workerID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employment periods: %w", err)
	}
	defer rows.Close()

	var periods []worker.EmploymentPeriod
	for rows.Next() {
		var p worker.EmploymentPeriod
		if err := rows.Scan(&p.ID, &p.WorkerID, &p.OrganizationID, &p.StartDate, &p.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan employment period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (r *employmentPeriodRepository) GetByStartDate(ctx context.Context, workerID string, organizationID string, start time.Time) (worker.EmploymentPeriod, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, worker_id, organization_id, start_date, end_date
		FROM employment_periods
		WHERE worker_id = $1 AND organization_id = $2 AND start_date = $3
		LIMIT 1
	`

	var p worker.EmploymentPeriod
	err := q.QueryRow(ctx, query, workerID, organizationID, start).Scan(
		&p.ID, &p.WorkerID, &p.OrganizationID, &p.StartDate, &p.EndDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.EmploymentPeriod{}, worker.ErrPeriodNotFound
		}
		return worker.EmploymentPeriod{}, fmt.Errorf("failed to get employment period: %w", err)
	}
	return p, nil
}

func (r *employmentPeriodRepository) GetEarliest(ctx context.Context, workerID string, organizationID string) (worker.EmploymentPeriod, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT id, worker_id, organization_id, start_date, end_date
		FROM employment_periods
		WHERE worker_id = $1 AND organization_id = $2
		ORDER BY start_date
		LIMIT 1
	`

	var p worker.EmploymentPeriod
	err := q.QueryRow(ctx, query, workerID, organizationID).Scan(
		&p.ID, &p.WorkerID, &p.OrganizationID, &p.StartDate, &p.EndDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.EmploymentPeriod{}, worker.ErrPeriodNotFound
		}
		return worker.EmploymentPeriod{}, fmt.Errorf("failed to get earliest employment period: %w", err)
	}
	return p, nil
}

func (r *employmentPeriodRepository) UpdateStartDate(ctx context.Context, id string, organizationID string, start time.Time) error {
	q := database.QuerierFromContext(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE employment_periods SET start_date = $3 WHERE id = $1 AND organization_id = $2`,
		id, organizationID, start,
	)
	if err != nil {
		return fmt.Errorf("failed to update employment period start: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrPeriodNotFound
	}
	return nil
}

func (r *employmentPeriodRepository) CloseOpenPeriods(ctx context.Context, workerID string, organizationID string, end time.Time) (int64, error) {
	q := database.QuerierFromContext(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE employment_periods SET end_date = $3
		 WHERE worker_id = $1 AND organization_id = $2 AND end_date IS NULL`,
		workerID, organizationID, end,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to close open employment periods: %w", err)
	}
	return tag.RowsAffected(), nil
}
