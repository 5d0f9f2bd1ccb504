package payroll

import "errors"

var (
	ErrPayrollNotFound = errors.New("payroll not found")
	// ErrNoClosedPayrolls is returned when an export asks for a month with
	// nothing closed; the transport maps it to a not-found response.
	ErrNoClosedPayrolls = errors.New("no closed payrolls for this month")
)
