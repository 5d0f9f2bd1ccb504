package project

import (
	"context"
	"testing"

	"github.com/crewbase/crewbase-backend-go/internal/domain/project"
	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orgID = "org-1"

var (
	owner   = user.Actor{ID: "user-owner", Role: user.RoleOwner, OrganizationID: orgID}
	foreman = user.Actor{ID: "user-foreman", Role: user.RoleForeman, OrganizationID: orgID}
)

func newTestService() (*ProjectServiceImpl, *servicetest.ProjectRepo) {
	projects := servicetest.NewProjectRepo()
	svc := &ProjectServiceImpl{
		tx:          servicetest.Tx{},
		projectRepo: projects,
	}
	return svc, projects
}

func TestCreate_DefaultsToActiveStatus(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), owner, project.CreateProjectRequest{Name: "Warehouse"})
	require.NoError(t, err)

	assert.Equal(t, "Warehouse", resp.Name)
	assert.Equal(t, string(project.StatusActive), resp.Status)
	assert.False(t, resp.IsDefault)
}

func TestCreate_DemotesPreviousDefault(t *testing.T) {
	svc, projects := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, owner, project.CreateProjectRequest{Name: "Site A", IsDefault: true})
	require.NoError(t, err)

	second, err := svc.Create(ctx, owner, project.CreateProjectRequest{Name: "Site B", IsDefault: true})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	assert.False(t, projects.Projects[first.ID].IsDefault)

	current, err := projects.GetDefault(ctx, orgID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
}

func TestUpdate_SetDefaultDemotesCurrent(t *testing.T) {
	svc, projects := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, owner, project.CreateProjectRequest{Name: "Site A", IsDefault: true})
	require.NoError(t, err)
	second, err := svc.Create(ctx, owner, project.CreateProjectRequest{Name: "Site B"})
	require.NoError(t, err)

	isDefault := true
	updated, err := svc.Update(ctx, owner, project.UpdateProjectRequest{ID: second.ID, IsDefault: &isDefault})
	require.NoError(t, err)

	assert.True(t, updated.IsDefault)
	assert.False(t, projects.Projects[first.ID].IsDefault)
}

func TestMutations_RequireOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, foreman, project.CreateProjectRequest{Name: "Site A"})
	assert.ErrorIs(t, err, user.ErrOwnerAccessRequired)

	name := "Renamed"
	_, err = svc.Update(ctx, foreman, project.UpdateProjectRequest{ID: "p1", Name: &name})
	assert.ErrorIs(t, err, user.ErrOwnerAccessRequired)
}

func TestList_ForemanCanRead(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, project.CreateProjectRequest{Name: "Site A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner, project.CreateProjectRequest{Name: "Site B"})
	require.NoError(t, err)

	list, err := svc.List(ctx, foreman)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestUpdate_UnknownProject(t *testing.T) {
	svc, _ := newTestService()

	name := "Renamed"
	_, err := svc.Update(context.Background(), owner, project.UpdateProjectRequest{ID: "missing", Name: &name})
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}
