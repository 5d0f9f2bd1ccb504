package project

import "context"

// ProjectRepository defines data access methods for projects.
// All methods include organizationID parameter to prevent cross-tenant data access.
type ProjectRepository interface {
	Create(ctx context.Context, p Project) (Project, error)
	GetByID(ctx context.Context, id string, organizationID string) (Project, error)
	// GetDefault returns the organization's default project, or
	// ErrProjectNotFound when none is configured.
	GetDefault(ctx context.Context, organizationID string) (Project, error)
	GetByOrganizationID(ctx context.Context, organizationID string) ([]Project, error)
	Update(ctx context.Context, p Project) (Project, error)
}
