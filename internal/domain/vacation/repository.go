package vacation

import (
	"context"
	"time"
)

// VacationRepository defines data access methods for vacations.
// All methods include organizationID parameter to prevent cross-tenant data access.
type VacationRepository interface {
	Create(ctx context.Context, v Vacation) (Vacation, error)
	Delete(ctx context.Context, id string, organizationID string) error
	ListByWorker(ctx context.Context, workerID string, organizationID string) ([]Vacation, error)
	// ListOverlapping returns the worker's vacations intersecting
	// [start, end], excluding excludeID when non-empty.
	ListOverlapping(ctx context.Context, workerID string, organizationID string, start time.Time, end time.Time, excludeID string) ([]Vacation, error)
	// WorkerIDsOnDate reports which of the given workers have a vacation
	// covering the date.
	WorkerIDsOnDate(ctx context.Context, organizationID string, workerIDs []string, date time.Time) (map[string]bool, error)
}
