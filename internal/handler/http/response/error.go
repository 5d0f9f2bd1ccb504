package response

import (
	"errors"
	"net/http"

	"github.com/crewbase/crewbase-backend-go/internal/domain/bonus"
	"github.com/crewbase/crewbase-backend-go/internal/domain/payroll"
	"github.com/crewbase/crewbase-backend-go/internal/domain/project"
	"github.com/crewbase/crewbase-backend-go/internal/domain/timesheet"
	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/domain/vacation"
	"github.com/crewbase/crewbase-backend-go/internal/domain/wallet"
	"github.com/crewbase/crewbase-backend-go/internal/domain/worker"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, err.Error())

	case errors.Is(err, user.ErrOwnerAccessRequired),
		errors.Is(err, timesheet.ErrForbidden),
		errors.Is(err, wallet.ErrWalletForbidden):
		Forbidden(w, err.Error())

	case errors.Is(err, worker.ErrWorkerNotFound),
		errors.Is(err, worker.ErrPeriodNotFound),
		errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, timesheet.ErrWorkLogNotFound),
		errors.Is(err, bonus.ErrBonusDayNotFound),
		errors.Is(err, payroll.ErrPayrollNotFound),
		errors.Is(err, payroll.ErrNoClosedPayrolls),
		errors.Is(err, wallet.ErrWalletNotFound),
		errors.Is(err, wallet.ErrTransactionNotFound),
		errors.Is(err, vacation.ErrVacationNotFound):
		NotFound(w, err.Error())

	case errors.Is(err, timesheet.ErrPayrollLocked),
		errors.Is(err, bonus.ErrMonthClosed),
		errors.Is(err, vacation.ErrVacationOverlap):
		Conflict(w, err.Error())

	case errors.Is(err, timesheet.ErrFutureDate):
		BadRequest(w, err.Error(), nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
