package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crewbase/crewbase-backend-go/internal/domain/timesheet"
	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimesheetHandler interface {
	GetGrid(w http.ResponseWriter, r *http.Request)
	UpsertCell(w http.ResponseWriter, r *http.Request)
	BulkUpsert(w http.ResponseWriter, r *http.Request)
	ListHistory(w http.ResponseWriter, r *http.Request)
	AssignProject(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &TimesheetHandlerImpl{timesheetService: timesheetService}
}

func (h *TimesheetHandlerImpl) GetGrid(w http.ResponseWriter, r *http.Request) {
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

	grid, err := h.timesheetService.GetGrid(r.Context(), actor, year, month)
	if err != nil {
		slog.Error("Failed to build timesheet grid", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, grid)
}

func (h *TimesheetHandlerImpl) UpsertCell(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.UpsertHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timesheetService.UpsertHours(r.Context(), actor, req)
	if err != nil {
		// A locked cell still reports the stored hours so the client can
		// roll back its optimistic edit.
		if errors.Is(err, timesheet.ErrPayrollLocked) {
			response.ConflictWithData(w, err.Error(), result)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *TimesheetHandlerImpl) BulkUpsert(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.BulkUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timesheetService.BulkUpsert(r.Context(), actor, req)
	if err != nil {
		slog.Error("Failed to apply bulk hours", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *TimesheetHandlerImpl) ListHistory(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entries, err := h.timesheetService.ListHistory(r.Context(), actor, chi.URLParam(r, "workerID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

func (h *TimesheetHandlerImpl) AssignProject(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timesheet.AssignProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.timesheetService.AssignProject(r.Context(), actor, req)
	if err != nil {
		slog.Error("Failed to assign project", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int64{"updated_cells": updated})
}
