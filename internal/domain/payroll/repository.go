package payroll

import "context"

// PayrollRepository defines data access methods for payroll rows.
// All methods include organizationID parameter to prevent cross-tenant data access.
type PayrollRepository interface {
	GetByWorkerPeriod(ctx context.Context, workerID string, organizationID string, year int, month int) (Payroll, error)
	ListForMonth(ctx context.Context, organizationID string, year int, month int) ([]Payroll, error)
	ListClosedForMonth(ctx context.Context, organizationID string, year int, month int) ([]Payroll, error)
	// Upsert creates or replaces the row for (worker, year, month).
	Upsert(ctx context.Context, p Payroll) (Payroll, error)
	// UpdateStatusForMonth bulk-transitions every row of the month in
	// status from to status to and returns the number of rows changed.
	UpdateStatusForMonth(ctx context.Context, organizationID string, year int, month int, from Status, to Status) (int64, error)

	// Lock checks. Callers re-check these inside the same transaction as
	// the write they gate.
	HasClosed(ctx context.Context, workerID string, organizationID string, year int, month int) (bool, error)
	HasClosedInMonth(ctx context.Context, organizationID string, year int, month int) (bool, error)
	ClosedWorkerIDs(ctx context.Context, organizationID string, year int, month int, workerIDs []string) (map[string]bool, error)

	// WorkerMonthlyTotals returns every worker with positive hours or
	// positive advances in the month.
	WorkerMonthlyTotals(ctx context.Context, organizationID string, year int, month int) ([]WorkerMonthlyTotals, error)
}
