package timesheet

import "errors"

var (
	// ErrFutureDate rejects hour entries dated after today.
	ErrFutureDate = errors.New("cannot record hours for a future date")
	// ErrPayrollLocked rejects writes into a month whose payroll is CLOSED
	// for the worker.
	ErrPayrollLocked = errors.New("payroll for this month is closed")
	// ErrForbidden rejects a non-owner touching a worker linked to a
	// different account.
	ErrForbidden = errors.New("not allowed to edit this worker's hours")

	ErrWorkLogNotFound = errors.New("work log not found")
)
