package bonus

import "errors"

var (
	// ErrMonthClosed rejects bonus mutations in a month that has any
	// CLOSED payroll; changing a bonus would silently change historical
	// pay.
	ErrMonthClosed = errors.New("bonus days cannot change in a closed month")

	ErrBonusDayNotFound = errors.New("bonus day not found")
)
