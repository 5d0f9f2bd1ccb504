package worker

import (
	"github.com/crewbase/crewbase-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateWorkerRequest struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	HourlyRate int64   `json:"hourly_rate"`
	HiredAt    string  `json:"hired_at"` // "YYYY-MM-DD"
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
	UserID     *string `json:"user_id,omitempty"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "is required"})
	}
	if r.HourlyRate < 0 {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}
	if _, ok := validator.IsValidDate(r.HiredAt); !ok {
		errs = append(errs, validator.ValidationError{Field: "hired_at", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateWorkerRequest carries only the fields the caller wants to change.
// Hire-date and active-status changes cascade into employment periods.
type UpdateWorkerRequest struct {
	ID         string  `json:"-"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	HourlyRate *int64  `json:"hourly_rate,omitempty"`
	HiredAt    *string `json:"hired_at,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "must not be empty"})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "must not be empty"})
	}
	if r.HourlyRate != nil && *r.HourlyRate < 0 {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}
	if r.HiredAt != nil {
		if _, ok := validator.IsValidDate(*r.HiredAt); !ok {
			errs = append(errs, validator.ValidationError{Field: "hired_at", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkerResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	UserID         *string `json:"user_id,omitempty"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	HourlyRate     int64   `json:"hourly_rate"`
	HiredAt        string  `json:"hired_at"`
	Phone          *string `json:"phone,omitempty"`
	Address        *string `json:"address,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	IsActive       bool    `json:"is_active"`

	TotalAdvances *decimal.Decimal `json:"total_advances,omitempty"`
}

type EmploymentPeriodResponse struct {
	ID        string  `json:"id"`
	WorkerID  string  `json:"worker_id"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
}
