package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/crewbase/crewbase-backend-go/internal/domain/project"
	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ProjectHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type ProjectHandlerImpl struct {
	projectService project.ProjectService
}

func NewProjectHandler(projectService project.ProjectService) ProjectHandler {
	return &ProjectHandlerImpl{projectService: projectService}
}

func (h *ProjectHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req project.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.projectService.Create(r.Context(), actor, req)
	if err != nil {
		slog.Error("Failed to create project", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Project created successfully", created)
}

func (h *ProjectHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	projects, err := h.projectService.List(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, projects)
}

func (h *ProjectHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.projectService.Get(r.Context(), actor, chi.URLParam(r, "projectID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *ProjectHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req project.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "projectID")

	updated, err := h.projectService.Update(r.Context(), actor, req)
	if err != nil {
		slog.Error("Failed to update project", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Project updated successfully", updated)
}
