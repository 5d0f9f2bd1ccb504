package bonus

import (
	"context"
)

// BonusDayRepository defines data access methods for bonus days.
// All methods include organizationID parameter to prevent cross-tenant data access.
type BonusDayRepository interface {
	// Upsert writes the bonus for (organization, date), replacing amount
	// and description when the date already has one.
	Upsert(ctx context.Context, b BonusDay) (BonusDay, error)
	Delete(ctx context.Context, id string, organizationID string) error
	ListForMonth(ctx context.Context, organizationID string, year int, month int) ([]BonusDay, error)
	// TotalsForWorkersInMonth sums, per worker, the bonus amounts of every
	// bonus date in the month on which the worker logged positive hours.
	TotalsForWorkersInMonth(ctx context.Context, organizationID string, year int, month int) (map[string]int64, error)
}
