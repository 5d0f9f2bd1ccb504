package bonus

import "time"

// BonusDay - an organization-wide extra payment for a date. Every worker
// with positive hours on that date receives the full amount once, added
// to that month's payroll bonus total.
type BonusDay struct {
	ID             string
	OrganizationID string
	Date           time.Time
	Amount         int64
	Description    string
}
