package project

import (
	"github.com/crewbase/crewbase-backend-go/internal/pkg/validator"
)

var statuses = []string{
	string(StatusPlanned), string(StatusActive), string(StatusCompleted),
}

type CreateProjectRequest struct {
	Name      string  `json:"name"`
	Address   *string `json:"address,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Status    string  `json:"status,omitempty"`
	IsDefault bool    `json:"is_default,omitempty"`
}

func (r *CreateProjectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.Status != "" && !validator.IsInSlice(r.Status, statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is not a known project status"})
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProjectRequest struct {
	ID        string  `json:"-"`
	Name      *string `json:"name,omitempty"`
	Address   *string `json:"address,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Status    *string `json:"status,omitempty"`
	IsDefault *bool   `json:"is_default,omitempty"`
}

func (r *UpdateProjectRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is not a known project status"})
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProjectResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   *string `json:"address,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Status    string  `json:"status"`
	IsDefault bool    `json:"is_default"`
}
