package postgresql

import (
	"context"
	"fmt"

	"github.com/crewbase/crewbase-backend-go/internal/domain/bonus"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
)

type bonusDayRepository struct {
	db *database.DB
}

func NewBonusDayRepository(db *database.DB) bonus.BonusDayRepository {
	return &bonusDayRepository{db: db}
}

func (r *bonusDayRepository) Upsert(ctx context.Context, b bonus.BonusDay) (bonus.BonusDay, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		INSERT INTO bonus_days (id, organization_id, date, amount, description)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (organization_id, date) DO UPDATE SET
			amount = EXCLUDED.amount,
			description = EXCLUDED.description
		RETURNING id, organization_id, date, amount, description
	`

	var saved bonus.BonusDay
	err := q.QueryRow(ctx, query, b.ID, b.OrganizationID, b.Date, b.Amount, b.Description).Scan(
		&saved.ID, &saved.OrganizationID, &saved.Date, &saved.Amount, &saved.Description,
	)
	if err != nil {
		return bonus.BonusDay{}, fmt.Errorf("failed to upsert bonus day: %w", err)
	}
	return saved, nil
}

func (r *bonusDayRepository) Delete(ctx context.Context, id string, organizationID string) error {
	q := database.QuerierFromContext(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM bonus_days WHERE id = $1 AND organization_id = $2`,
		id, organizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete bonus day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return bonus.ErrBonusDayNotFound
	}
	return nil
}

func (r *bonusDayRepository) ListForMonth(ctx context.Context, organizationID string, year int, month int) ([]bonus.BonusDay, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT id, organization_id, date, amount, description
		 FROM bonus_days
		 WHERE organization_id = $1
		   AND EXTRACT(YEAR FROM date) = $2 AND EXTRACT(MONTH FROM date) = $3
		 ORDER BY date`,
		organizationID, year, month,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonus days: %w", err)
	}
	defer rows.Close()

	var days []bonus.BonusDay
	for rows.Next() {
		var b bonus.BonusDay
		if err := rows.Scan(&b.ID, &b.OrganizationID, &b.Date, &b.Amount, &b.Description); err != nil {
			return nil, fmt.Errorf("failed to scan bonus day: %w", err)
		}
		days = append(days, b)
	}
	return days, rows.Err()
}

func (r *bonusDayRepository) TotalsForWorkersInMonth(ctx context.Context, organizationID string, year int, month int) (map[string]int64, error) {
	q := database.QuerierFromContext(ctx, r.db)

	// A worker qualifies for a bonus day by logging positive hours on it.
	rows, err := q.Query(ctx,
		`SELECT wl.worker_id, SUM(bd.amount)
		 FROM bonus_days bd
		 JOIN work_logs wl
		   ON wl.organization_id = bd.organization_id AND wl.date = bd.date AND wl.hours > 0
		 WHERE bd.organization_id = $1
		   AND EXTRACT(YEAR FROM bd.date) = $2 AND EXTRACT(MONTH FROM bd.date) = $3
		 GROUP BY wl.worker_id`,
		organizationID, year, month,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bonus totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var workerID string
		var total int64
		if err := rows.Scan(&workerID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan bonus total: %w", err)
		}
		totals[workerID] = total
	}
	return totals, rows.Err()
}
