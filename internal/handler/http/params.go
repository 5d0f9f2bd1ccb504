package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/pkg/validator"
)

// monthFromQuery reads the year and month query parameters, defaulting to
// the current calendar month when absent.
func monthFromQuery(r *http.Request) (int, int, error) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	var errs validator.ValidationErrors
	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a number"})
		} else {
			year = n
		}
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a number"})
		} else {
			month = n
		}
	}
	if len(errs) == 0 && !validator.IsValidMonth(year, month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "is not a valid calendar month"})
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return year, month, nil
}
