package bonus

import (
	"github.com/crewbase/crewbase-backend-go/internal/pkg/validator"
)

type UpsertBonusDayRequest struct {
	Date        string `json:"date"` // "YYYY-MM-DD"
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
}

func (r *UpsertBonusDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.Amount <= 0 {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BonusDayResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Amount      int64  `json:"amount"`
	Description string `json:"description,omitempty"`
}
