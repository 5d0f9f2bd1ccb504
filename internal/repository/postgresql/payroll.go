package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/crewbase/crewbase-backend-go/internal/domain/payroll"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `p.id, p.organization_id, p.worker_id, p.year, p.month, p.status,
	p.total_hours, p.hourly_rate_snapshot, p.bonuses, p.gross_pay, p.advances_deducted, p.net_pay,
	p.created_at, p.updated_at`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.WorkerID, &p.Year, &p.Month, &p.Status,
		&p.TotalHours, &p.HourlyRateSnapshot, &p.Bonuses, &p.GrossPay, &p.AdvancesDeducted, &p.NetPay,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payrollRepository) GetByWorkerPeriod(ctx context.Context, workerID string, organizationID string, year int, month int) (payroll.Payroll, error) {
	q := database.QuerierFromContext(ctx, r.db)

	p, err := scanPayroll(q.QueryRow(ctx,
		`SELECT `+payrollColumns+` FROM payrolls p
		 WHERE p.worker_id = $1 AND p.organization_id = $2 AND p.year = $3 AND p.month = $4`,
		workerID, organizationID, year, month,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}
	return p, nil
}

func (r *payrollRepository) listForMonth(ctx context.Context, organizationID string, year int, month int, closedOnly bool) ([]payroll.Payroll, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `, w.first_name, w.last_name
		FROM payrolls p
		JOIN workers w ON w.id = p.worker_id
		WHERE p.organization_id = $1 AND p.year = $2 AND p.month = $3`
	if closedOnly {
		query += ` AND p.status = 'CLOSED'`
	}
	query += ` ORDER BY w.last_name, w.first_name`

	rows, err := q.Query(ctx, query, organizationID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []payroll.Payroll
	for rows.Next() {
		var p payroll.Payroll
		if err := rows.Scan(
			&p.ID, &p.OrganizationID, &p.WorkerID, &p.Year, &p.Month, &p.Status,
			&p.TotalHours, &p.HourlyRateSnapshot, &p.Bonuses, &p.GrossPay, &p.AdvancesDeducted, &p.NetPay,
			&p.CreatedAt, &p.UpdatedAt,
			&p.WorkerFirstName, &p.WorkerLastName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}
	return payrolls, rows.Err()
}

func (r *payrollRepository) ListForMonth(ctx context.Context, organizationID string, year int, month int) ([]payroll.Payroll, error) {
	return r.listForMonth(ctx, organizationID, year, month, false)
}

func (r *payrollRepository) ListClosedForMonth(ctx context.Context, organizationID string, year int, month int) ([]payroll.Payroll, error) {
	return r.listForMonth(ctx, organizationID, year, month, true)
}

func (r *payrollRepository) Upsert(ctx context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		INSERT INTO payrolls (
			id, organization_id, worker_id, year, month, status,
			total_hours, hourly_rate_snapshot, bonuses, gross_pay, advances_deducted, net_pay
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (worker_id, year, month) DO UPDATE SET
			status = EXCLUDED.status,
			total_hours = EXCLUDED.total_hours,
			hourly_rate_snapshot = EXCLUDED.hourly_rate_snapshot,
			bonuses = EXCLUDED.bonuses,
			gross_pay = EXCLUDED.gross_pay,
			advances_deducted = EXCLUDED.advances_deducted,
			net_pay = EXCLUDED.net_pay,
			updated_at = NOW()
		RETURNING id, organization_id, worker_id, year, month, status,
			total_hours, hourly_rate_snapshot, bonuses, gross_pay, advances_deducted, net_pay,
			created_at, updated_at
	`

	var saved payroll.Payroll
	err := q.QueryRow(ctx, query,
		p.ID, p.OrganizationID, p.WorkerID, p.Year, p.Month, p.Status,
		p.TotalHours, p.HourlyRateSnapshot, p.Bonuses, p.GrossPay, p.AdvancesDeducted, p.NetPay,
	).Scan(
		&saved.ID, &saved.OrganizationID, &saved.WorkerID, &saved.Year, &saved.Month, &saved.Status,
		&saved.TotalHours, &saved.HourlyRateSnapshot, &saved.Bonuses, &saved.GrossPay, &saved.AdvancesDeducted, &saved.NetPay,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to upsert payroll: %w", err)
	}
	return saved, nil
}

func (r *payrollRepository) UpdateStatusForMonth(ctx context.Context, organizationID string, year int, month int, from payroll.Status, to payroll.Status) (int64, error) {
	q := database.QuerierFromContext(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE payrolls SET status = $5, updated_at = NOW()
		 WHERE organization_id = $1 AND year = $2 AND month = $3 AND status = $4`,
		organizationID, year, month, from, to,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update payroll statuses: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *payrollRepository) HasClosed(ctx context.Context, workerID string, organizationID string, year int, month int) (bool, error) {
	q := database.QuerierFromContext(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM payrolls
			WHERE worker_id = $1 AND organization_id = $2 AND year = $3 AND month = $4 AND status = 'CLOSED'
		)`,
		workerID, organizationID, year, month,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check closed payroll: %w", err)
	}
	return exists, nil
}

func (r *payrollRepository) HasClosedInMonth(ctx context.Context, organizationID string, year int, month int) (bool, error) {
	q := database.QuerierFromContext(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM payrolls
			WHERE organization_id = $1 AND year = $2 AND month = $3 AND status = 'CLOSED'
		)`,
		organizationID, year, month,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check closed payrolls: %w", err)
	}
	return exists, nil
}

func (r *payrollRepository) ClosedWorkerIDs(ctx context.Context, organizationID string, year int, month int, workerIDs []string) (map[string]bool, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT worker_id FROM payrolls
		 WHERE organization_id = $1 AND year = $2 AND month = $3
		   AND status = 'CLOSED' AND worker_id = ANY($4)`,
		organizationID, year, month, workerIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed payroll workers: %w", err)
	}
	defer rows.Close()

	closed := make(map[string]bool)
	for rows.Next() {
		var workerID string
		if err := rows.Scan(&workerID); err != nil {
			return nil, fmt.Errorf("failed to scan worker id: %w", err)
		}
		closed[workerID] = true
	}
	return closed, rows.Err()
}

func (r *payrollRepository) WorkerMonthlyTotals(ctx context.Context, organizationID string, year int, month int) ([]payroll.WorkerMonthlyTotals, error) {
	q := database.QuerierFromContext(ctx, r.db)

	// Workers qualify with positive hours or positive advances in the
	// month.
	query := `
		SELECT w.id, w.hourly_rate,
			COALESCE(h.total_hours, 0),
			COALESCE(a.total_advances, 0)
		FROM workers w
		LEFT JOIN (
			SELECT worker_id, SUM(hours) AS total_hours
			FROM work_logs
			WHERE organization_id = $1
			  AND EXTRACT(YEAR FROM date) = $2 AND EXTRACT(MONTH FROM date) = $3
			GROUP BY worker_id
		) h ON h.worker_id = w.id
		LEFT JOIN (
			SELECT worker_id, SUM(amount) AS total_advances
			FROM wallet_transactions
			WHERE organization_id = $1 AND type = 'ADVANCE' AND worker_id IS NOT NULL
			  AND EXTRACT(YEAR FROM date) = $2 AND EXTRACT(MONTH FROM date) = $3
			GROUP BY worker_id
		) a ON a.worker_id = w.id
		WHERE w.organization_id = $1
		  AND (COALESCE(h.total_hours, 0) > 0 OR COALESCE(a.total_advances, 0) > 0)
		ORDER BY w.id
	`

	rows, err := q.Query(ctx, query, organizationID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly totals: %w", err)
	}
	defer rows.Close()

	var totals []payroll.WorkerMonthlyTotals
	for rows.Next() {
		var t payroll.WorkerMonthlyTotals
		if err := rows.Scan(&t.WorkerID, &t.HourlyRate, &t.TotalHours, &t.TotalAdvances); err != nil {
			return nil, fmt.Errorf("failed to scan monthly totals: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
