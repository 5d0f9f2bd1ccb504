package vacation

import "time"

// Vacation - a planned absence. Ranges never overlap for one worker;
// hours recorded inside a vacation still succeed but carry a warning.
type Vacation struct {
	ID             string
	OrganizationID string
	WorkerID       string
	StartDate      time.Time
	EndDate        time.Time
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
