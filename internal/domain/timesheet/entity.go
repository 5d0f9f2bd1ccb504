package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkLog - one day's hour entry for one worker. Unique per (worker,
// date); a cell with zero hours is represented by the absence of a row.
type WorkLog struct {
	ID             string
	OrganizationID string
	WorkerID       string
	ProjectID      *string
	Date           time.Time
	// Hours is in (0, 24] with one fractional digit.
	Hours decimal.Decimal
	// CreatedBy is the account that last wrote the value.
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimesheetHistory - append-only record of an overwrite of an existing
// cell. Creating a brand-new cell writes no history; rows are never
// updated or deleted.
type TimesheetHistory struct {
	ID             string
	OrganizationID string
	WorkerID       string
	Date           time.Time
	OldHours       decimal.Decimal
	NewHours       decimal.Decimal
	ChangedBy      string
	CreatedAt      time.Time
}
