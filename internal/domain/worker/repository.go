package worker

import (
	"context"
	"time"
)

// WorkerRepository defines data access methods for workers.
// All methods include organizationID parameter to prevent cross-tenant data access.
type WorkerRepository interface {
	Create(ctx context.Context, w Worker) (Worker, error)
	GetByID(ctx context.Context, id string, organizationID string) (Worker, error)
	GetByOrganizationID(ctx context.Context, organizationID string, activeOnly bool) ([]Worker, error)
	Update(ctx context.Context, w Worker) (Worker, error)
	Delete(ctx context.Context, id string, organizationID string) error
}

// EmploymentPeriodRepository stores the derived employment history.
// Periods are only ever deleted together with their worker.
type EmploymentPeriodRepository interface {
	Create(ctx context.Context, p EmploymentPeriod) (EmploymentPeriod, error)
	// ListByWorker returns periods ordered by start date ascending.
	ListByWorker(ctx context.Context, workerID string, organizationID string) ([]EmploymentPeriod, error)
	// GetByStartDate returns the period whose start date equals start, or
	// ErrPeriodNotFound.
	GetByStartDate(ctx context.Context, workerID string, organizationID string, start time.Time) (EmploymentPeriod, error)
	// GetEarliest returns the period with the lowest start date, or
	// ErrPeriodNotFound when the worker has no periods.
	GetEarliest(ctx context.Context, workerID string, organizationID string) (EmploymentPeriod, error)
	UpdateStartDate(ctx context.Context, id string, organizationID string, start time.Time) error
	// CloseOpenPeriods sets end to every open period of the worker and
	// returns how many rows it touched.
	CloseOpenPeriods(ctx context.Context, workerID string, organizationID string, end time.Time) (int64, error)
}
