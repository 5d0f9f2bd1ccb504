package vacation

import (
	"github.com/crewbase/crewbase-backend-go/internal/pkg/validator"
)

type CreateVacationRequest struct {
	WorkerID    string `json:"worker_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description,omitempty"`
}

func (r *CreateVacationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkerID == "" {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "is required"})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must not be after end_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type VacationResponse struct {
	ID          string `json:"id"`
	WorkerID    string `json:"worker_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description,omitempty"`
}
