package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/project"
	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type ProjectServiceImpl struct {
	tx          database.TxManager
	projectRepo project.ProjectRepository
}

func NewProjectService(
	tx database.TxManager,
	projectRepo project.ProjectRepository,
) project.ProjectService {
	return &ProjectServiceImpl{
		tx:          tx,
		projectRepo: projectRepo,
	}
}

func (s *ProjectServiceImpl) Create(ctx context.Context, actor user.Actor, req project.CreateProjectRequest) (project.ProjectResponse, error) {
	if !actor.IsOwner() {
		return project.ProjectResponse{}, user.ErrOwnerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return project.ProjectResponse{}, err
	}

	status := project.StatusActive
	if req.Status != "" {
		status = project.Status(req.Status)
	}

	p := project.Project{
		ID:             uuid.New().String(),
		OrganizationID: actor.OrganizationID,
		Name:           req.Name,
		Address:        req.Address,
		StartDate:      parseDatePtr(req.StartDate),
		EndDate:        parseDatePtr(req.EndDate),
		Status:         status,
		IsDefault:      req.IsDefault,
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if p.IsDefault {
			if err := s.demoteDefault(ctx, actor.OrganizationID, p.ID); err != nil {
				return err
			}
		}
		created, err := s.projectRepo.Create(ctx, p)
		if err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		p = created
		return nil
	})
	if err != nil {
		return project.ProjectResponse{}, err
	}

	return toResponse(p), nil
}

func (s *ProjectServiceImpl) Get(ctx context.Context, actor user.Actor, id string) (project.ProjectResponse, error) {
	p, err := s.projectRepo.GetByID(ctx, id, actor.OrganizationID)
	if err != nil {
		return project.ProjectResponse{}, err
	}
	return toResponse(p), nil
}

func (s *ProjectServiceImpl) List(ctx context.Context, actor user.Actor) ([]project.ProjectResponse, error) {
	projects, err := s.projectRepo.GetByOrganizationID(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	responses := make([]project.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, toResponse(p))
	}
	return responses, nil
}

func (s *ProjectServiceImpl) Update(ctx context.Context, actor user.Actor, req project.UpdateProjectRequest) (project.ProjectResponse, error) {
	if !actor.IsOwner() {
		return project.ProjectResponse{}, user.ErrOwnerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return project.ProjectResponse{}, err
	}

	var updated project.Project
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.projectRepo.GetByID(ctx, req.ID, actor.OrganizationID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Address != nil {
			p.Address = req.Address
		}
		if req.StartDate != nil {
			p.StartDate = parseDatePtr(req.StartDate)
		}
		if req.EndDate != nil {
			p.EndDate = parseDatePtr(req.EndDate)
		}
		if req.Status != nil {
			p.Status = project.Status(*req.Status)
		}
		if req.IsDefault != nil {
			if *req.IsDefault && !p.IsDefault {
				if err := s.demoteDefault(ctx, actor.OrganizationID, p.ID); err != nil {
					return err
				}
			}
			p.IsDefault = *req.IsDefault
		}

		updated, err = s.projectRepo.Update(ctx, p)
		if err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		return nil
	})
	if err != nil {
		return project.ProjectResponse{}, err
	}

	return toResponse(updated), nil
}

// demoteDefault clears the current default so the organization keeps at
// most one.
func (s *ProjectServiceImpl) demoteDefault(ctx context.Context, organizationID string, exceptID string) error {
	current, err := s.projectRepo.GetDefault(ctx, organizationID)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return nil
		}
		return fmt.Errorf("get default project: %w", err)
	}
	if current.ID == exceptID {
		return nil
	}

	current.IsDefault = false
	if _, err := s.projectRepo.Update(ctx, current); err != nil {
		return fmt.Errorf("demote default project: %w", err)
	}
	return nil
}

func toResponse(p project.Project) project.ProjectResponse {
	return project.ProjectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		StartDate: formatDatePtr(p.StartDate),
		EndDate:   formatDatePtr(p.EndDate),
		Status:    string(p.Status),
		IsDefault: p.IsDefault,
	}
}

func parseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
