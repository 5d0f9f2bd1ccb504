package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/domain/worker"
	"github.com/crewbase/crewbase-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkerHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListPeriods(w http.ResponseWriter, r *http.Request)
}

type WorkerHandlerImpl struct {
	workerService worker.WorkerService
}

func NewWorkerHandler(workerService worker.WorkerService) WorkerHandler {
	return &WorkerHandlerImpl{workerService: workerService}
}

func (h *WorkerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req worker.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.workerService.Create(r.Context(), actor, req)
	if err != nil {
		slog.Error("Failed to create worker", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worker created successfully", created)
}

func (h *WorkerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"

	workers, err := h.workerService.List(r.Context(), actor, activeOnly)
	if err != nil {
		slog.Error("Failed to list workers", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, workers)
}

func (h *WorkerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.workerService.Get(r.Context(), actor, chi.URLParam(r, "workerID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *WorkerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req worker.UpdateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "workerID")

	updated, err := h.workerService.Update(r.Context(), actor, req)
	if err != nil {
		slog.Error("Failed to update worker", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker updated successfully", updated)
}

func (h *WorkerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.workerService.Delete(r.Context(), actor, chi.URLParam(r, "workerID")); err != nil {
		slog.Error("Failed to delete worker", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker deleted successfully", nil)
}

func (h *WorkerHandlerImpl) ListPeriods(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	periods, err := h.workerService.ListEmploymentPeriods(r.Context(), actor, chi.URLParam(r, "workerID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, periods)
}
