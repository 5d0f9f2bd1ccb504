package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/domain/vacation"
	"github.com/crewbase/crewbase-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type VacationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListByWorker(w http.ResponseWriter, r *http.Request)
}

type VacationHandlerImpl struct {
	vacationService vacation.VacationService
}

func NewVacationHandler(vacationService vacation.VacationService) VacationHandler {
	return &VacationHandlerImpl{vacationService: vacationService}
}

func (h *VacationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req vacation.CreateVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.WorkerID = chi.URLParam(r, "workerID")

	created, err := h.vacationService.Create(r.Context(), actor, req)
	if err != nil {
		slog.Error("Failed to create vacation", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Vacation created successfully", created)
}

func (h *VacationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.vacationService.Delete(r.Context(), actor, chi.URLParam(r, "vacationID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation deleted successfully", nil)
}

func (h *VacationHandlerImpl) ListByWorker(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	vacations, err := h.vacationService.ListByWorker(r.Context(), actor, chi.URLParam(r, "workerID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, vacations)
}
