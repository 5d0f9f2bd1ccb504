package project

import "time"

// Status enum
type Status string

const (
	StatusPlanned   Status = "PLANNED"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
)

// Project - a job site hours and expenses can be booked against. Each
// organization has at most one default project, used when a timesheet
// cell is created without an explicit project.
type Project struct {
	ID             string
	OrganizationID string
	Name           string
	Address        *string
	StartDate      *time.Time
	EndDate        *time.Time
	Status         Status
	IsDefault      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
