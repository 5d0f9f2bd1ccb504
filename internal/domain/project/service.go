package project

import (
	"context"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
)

// ProjectService manages job sites. At most one project per organization
// is the default; marking another one default demotes the previous one in
// the same transaction.
type ProjectService interface {
	Create(ctx context.Context, actor user.Actor, req CreateProjectRequest) (ProjectResponse, error)
	Get(ctx context.Context, actor user.Actor, id string) (ProjectResponse, error)
	List(ctx context.Context, actor user.Actor) ([]ProjectResponse, error)
	Update(ctx context.Context, actor user.Actor, req UpdateProjectRequest) (ProjectResponse, error)
}
