package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/crewbase/crewbase-backend-go/internal/domain/worker"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workerRepository struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{db: db}
}

const workerColumns = `id, organization_id, user_id, first_name, last_name, hourly_rate,
	hired_at, phone, address, notes, is_active, created_at, updated_at`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID, &w.OrganizationID, &w.UserID, &w.FirstName, &w.LastName, &w.HourlyRate,
		&w.HiredAt, &w.Phone, &w.Address, &w.Notes, &w.IsActive, &w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}

func (r *workerRepository) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		INSERT INTO workers (
			id, organization_id, user_id, first_name, last_name, hourly_rate,
			hired_at, phone, address, notes, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + workerColumns

	created, err := scanWorker(q.QueryRow(ctx, query,
		w.ID, w.OrganizationID, w.UserID, w.FirstName, w.LastName, w.HourlyRate,
		w.HiredAt, w.Phone, w.Address, w.Notes, w.IsActive,
	))
	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return created, nil
}

func (r *workerRepository) GetByID(ctx context.Context, id string, organizationID string) (worker.Worker, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = $1 AND organization_id = $2`

	w, err := scanWorker(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}
	return w, nil
}

func (r *workerRepository) GetByOrganizationID(ctx context.Context, organizationID string, activeOnly bool) ([]worker.Worker, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `SELECT ` + workerColumns + ` FROM workers WHERE organization_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

func (r *workerRepository) Update(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		UPDATE workers SET
			user_id = $3, first_name = $4, last_name = $5, hourly_rate = $6,
			hired_at = $7, phone = $8, address = $9, notes = $10, is_active = $11,
			updated_at = NOW()
		WHERE id = $1 AND organization_id = $2
		RETURNING ` + workerColumns

	updated, err := scanWorker(q.QueryRow(ctx, query,
		w.ID, w.OrganizationID, w.UserID, w.FirstName, w.LastName, w.HourlyRate,
		w.HiredAt, w.Phone, w.Address, w.Notes, w.IsActive,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to update worker: %w", err)
	}
	return updated, nil
}

func (r *workerRepository) Delete(ctx context.Context, id string, organizationID string) error {
	q := database.QuerierFromContext(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM workers WHERE id = $1 AND organization_id = $2`, id, organizationID)
	if err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}
