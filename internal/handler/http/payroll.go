package http

import (
	"log/slog"
	"net/http"

	"github.com/crewbase/crewbase-backend-go/internal/domain/payroll"
	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	ListForMonth(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	Reopen(w http.ResponseWriter, r *http.Request)
	ListClosed(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

func (h *PayrollHandlerImpl) ListForMonth(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, month, err := monthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.payrollService.ListForMonth(r.Context(), actor, year, month)
	if err != nil {
		slog.Error("Failed to list payrolls", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, month, err := monthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.Generate(r.Context(), actor, year, month)
	if err != nil {
		slog.Error("Failed to generate payrolls", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payrolls generated", result)
}

func (h *PayrollHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, month, err := monthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	closed, err := h.payrollService.Close(r.Context(), actor, year, month)
	if err != nil {
		slog.Error("Failed to close payrolls", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Month closed", map[string]int64{"closed": closed})
}

func (h *PayrollHandlerImpl) Reopen(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, month, err := monthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	reopened, err := h.payrollService.Reopen(r.Context(), actor, year, month)
	if err != nil {
		slog.Error("Failed to reopen payrolls", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Month reopened", map[string]int64{"reopened": reopened})
}

func (h *PayrollHandlerImpl) ListClosed(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, month, err := monthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	payrolls, err := h.payrollService.ListClosed(r.Context(), actor, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payrolls)
}
