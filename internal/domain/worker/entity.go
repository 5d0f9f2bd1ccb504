package worker

import "time"

// Worker - a person whose hours and pay are tracked. May optionally be
// linked to a login account (foremen record their own hours).
type Worker struct {
	ID             string
	OrganizationID string
	// UserID links the worker to a login account; nil for workers
	// without one.
	UserID     *string
	FirstName  string
	LastName   string
	HourlyRate int64
	HiredAt    time.Time
	Phone      *string
	Address    *string
	Notes      *string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (w Worker) FullName() string {
	return w.FirstName + " " + w.LastName
}

// EmploymentPeriod - one continuous stretch of employment. At most one
// period per worker is open (EndDate == nil), and exactly then the worker
// is active.
type EmploymentPeriod struct {
	ID             string
	WorkerID       string
	OrganizationID string
	StartDate      time.Time
	EndDate        *time.Time
}
