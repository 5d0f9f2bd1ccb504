package worker

import (
	"context"
	"testing"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/domain/worker"
	"github.com/crewbase/crewbase-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orgID = "org-1"

var owner = user.Actor{ID: "user-owner", Role: user.RoleOwner, OrganizationID: orgID}

func newTestService() (*WorkerServiceImpl, *servicetest.WorkerRepo, *servicetest.PeriodRepo) {
	workers := servicetest.NewWorkerRepo()
	periods := servicetest.NewPeriodRepo()
	svc := &WorkerServiceImpl{
		tx:         servicetest.Tx{},
		workerRepo: workers,
		periodRepo: periods,
		walletRepo: servicetest.NewWalletRepo(),
		now:        func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) },
	}
	return svc, workers, periods
}

func createWorker(t *testing.T, svc *WorkerServiceImpl, hiredAt string, active bool) worker.WorkerResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), owner, worker.CreateWorkerRequest{
		FirstName:  "Jan",
		LastName:   "Kowalski",
		HourlyRate: 30,
		HiredAt:    hiredAt,
		IsActive:   &active,
	})
	require.NoError(t, err)
	return resp
}

func TestCreate_OpensInitialPeriod(t *testing.T) {
	svc, _, periods := newTestService()
	ctx := context.Background()

	resp := createWorker(t, svc, "2026-01-10", true)

	got, err := periods.ListByWorker(ctx, resp.ID, orgID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2026-01-10", got[0].StartDate.Format("2006-01-02"))
	assert.Nil(t, got[0].EndDate)
}

func TestCreate_InactiveGetsClosedPeriod(t *testing.T) {
	svc, _, periods := newTestService()
	ctx := context.Background()

	resp := createWorker(t, svc, "2026-01-10", false)

	got, err := periods.ListByWorker(ctx, resp.ID, orgID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].EndDate)
	assert.Equal(t, "2026-01-10", got[0].EndDate.Format("2006-01-02"))
}

func TestCreate_RequiresOwner(t *testing.T) {
	svc, _, _ := newTestService()
	foreman := user.Actor{ID: "user-f", Role: user.RoleForeman, OrganizationID: orgID}

	_, err := svc.Create(context.Background(), foreman, worker.CreateWorkerRequest{
		FirstName: "Jan", LastName: "Kowalski", HiredAt: "2026-01-10",
	})
	assert.ErrorIs(t, err, user.ErrOwnerAccessRequired)
}

func TestUpdate_HiredAtMovesPeriodStart(t *testing.T) {
	svc, _, periods := newTestService()
	ctx := context.Background()
	resp := createWorker(t, svc, "2026-01-10", true)

	newHired := "2026-01-05"
	_, err := svc.Update(ctx, owner, worker.UpdateWorkerRequest{ID: resp.ID, HiredAt: &newHired})
	require.NoError(t, err)

	got, err := periods.ListByWorker(ctx, resp.ID, orgID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2026-01-05", got[0].StartDate.Format("2006-01-02"))
	assert.Nil(t, got[0].EndDate)
}

func TestUpdate_DeactivateClosesOpenPeriod(t *testing.T) {
	svc, _, periods := newTestService()
	ctx := context.Background()
	resp := createWorker(t, svc, "2026-01-10", true)

	inactive := false
	_, err := svc.Update(ctx, owner, worker.UpdateWorkerRequest{ID: resp.ID, IsActive: &inactive})
	require.NoError(t, err)

	got, _ := periods.ListByWorker(ctx, resp.ID, orgID)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].EndDate)
	assert.Equal(t, "2026-03-15", got[0].EndDate.Format("2006-01-02"))
}

func TestUpdate_ReactivateOpensNewPeriod(t *testing.T) {
	svc, _, periods := newTestService()
	ctx := context.Background()
	resp := createWorker(t, svc, "2026-01-10", true)

	inactive := false
	_, err := svc.Update(ctx, owner, worker.UpdateWorkerRequest{ID: resp.ID, IsActive: &inactive})
	require.NoError(t, err)

	active := true
	_, err = svc.Update(ctx, owner, worker.UpdateWorkerRequest{ID: resp.ID, IsActive: &active})
	require.NoError(t, err)

	got, _ := periods.ListByWorker(ctx, resp.ID, orgID)
	require.Len(t, got, 2)
	assert.NotNil(t, got[0].EndDate)
	assert.Equal(t, "2026-03-15", got[1].StartDate.Format("2006-01-02"))
	assert.Nil(t, got[1].EndDate)
}

// When one update changes both the hire date and the active flag, the
// hire-date cascade runs and the status cascade does not.
func TestUpdate_HiredAtWinsOverStatusChange(t *testing.T) {
	svc, workers, periods := newTestService()
	ctx := context.Background()
	resp := createWorker(t, svc, "2026-01-10", true)

	newHired := "2026-01-02"
	inactive := false
	updated, err := svc.Update(ctx, owner, worker.UpdateWorkerRequest{
		ID:       resp.ID,
		HiredAt:  &newHired,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	got, _ := periods.ListByWorker(ctx, resp.ID, orgID)
	require.Len(t, got, 1)
	assert.Equal(t, "2026-01-02", got[0].StartDate.Format("2006-01-02"))
	// The open period stays open; only the worker row records the flag.
	assert.Nil(t, got[0].EndDate)
	assert.False(t, workers.Workers[resp.ID].IsActive)
}

func TestUpdate_WorkerFromOtherOrganizationNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	resp := createWorker(t, svc, "2026-01-10", true)

	otherOwner := user.Actor{ID: "user-2", Role: user.RoleOwner, OrganizationID: "org-2"}
	rate := int64(99)
	_, err := svc.Update(context.Background(), otherOwner, worker.UpdateWorkerRequest{ID: resp.ID, HourlyRate: &rate})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestList_ActiveOnlyFilters(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	createWorker(t, svc, "2026-01-10", true)
	createWorker(t, svc, "2026-01-10", false)

	all, err := svc.List(ctx, owner, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.List(ctx, owner, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
