package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusDraft  Status = "DRAFT"
	StatusClosed Status = "CLOSED"
)

// Payroll - one worker's computed pay for one calendar month, unique per
// (worker, year, month). DRAFT rows are recomputed freely; a CLOSED row
// is an immutable snapshot and gates timesheet and bonus writes for its
// month.
type Payroll struct {
	ID             string
	OrganizationID string
	WorkerID       string
	Year           int
	Month          int
	Status         Status

	TotalHours decimal.Decimal
	// HourlyRateSnapshot is the worker's rate at generation time; later
	// rate edits do not touch it until the month is regenerated.
	HourlyRateSnapshot int64
	Bonuses            decimal.Decimal
	GrossPay           decimal.Decimal
	AdvancesDeducted   decimal.Decimal
	NetPay             decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	WorkerFirstName *string
	WorkerLastName  *string
}

// WorkerMonthlyTotals - per-worker aggregation feeding generation: hour
// and advance sums for one month, plus the worker's current rate.
type WorkerMonthlyTotals struct {
	WorkerID      string
	HourlyRate    int64
	TotalHours    decimal.Decimal
	TotalAdvances decimal.Decimal
}
