package vacation

import (
	"context"
	"testing"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/domain/vacation"
	"github.com/crewbase/crewbase-backend-go/internal/domain/worker"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/validator"
	"github.com/crewbase/crewbase-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orgID = "org-1"

var owner = user.Actor{ID: "user-owner", Role: user.RoleOwner, OrganizationID: orgID}

func newTestService() (*VacationServiceImpl, *servicetest.VacationRepo) {
	workers := servicetest.NewWorkerRepo()
	workers.Workers["w1"] = worker.Worker{
		ID: "w1", OrganizationID: orgID, FirstName: "Jan", LastName: "Kowalski",
		HiredAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), IsActive: true,
	}
	vacations := servicetest.NewVacationRepo()
	svc := &VacationServiceImpl{
		tx:           servicetest.Tx{},
		vacationRepo: vacations,
		workerRepo:   workers,
	}
	return svc, vacations
}

func TestCreate_RejectsOverlap(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, vacation.CreateVacationRequest{
		WorkerID: "w1", StartDate: "2026-07-01", EndDate: "2026-07-14",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, owner, vacation.CreateVacationRequest{
		WorkerID: "w1", StartDate: "2026-07-10", EndDate: "2026-07-20",
	})
	assert.ErrorIs(t, err, vacation.ErrVacationOverlap)

	// Touching ranges at the boundary day also collide.
	_, err = svc.Create(ctx, owner, vacation.CreateVacationRequest{
		WorkerID: "w1", StartDate: "2026-07-14", EndDate: "2026-07-16",
	})
	assert.ErrorIs(t, err, vacation.ErrVacationOverlap)

	created, err := svc.Create(ctx, owner, vacation.CreateVacationRequest{
		WorkerID: "w1", StartDate: "2026-07-15", EndDate: "2026-07-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-07-15", created.StartDate)
}

func TestCreate_StartAfterEndRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), owner, vacation.CreateVacationRequest{
		WorkerID: "w1", StartDate: "2026-07-10", EndDate: "2026-07-01",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestCreate_UnknownWorkerRejected(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), owner, vacation.CreateVacationRequest{
		WorkerID: "w-missing", StartDate: "2026-07-01", EndDate: "2026-07-05",
	})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestDeleteAndList(t *testing.T) {
	svc, vacations := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, vacation.CreateVacationRequest{
		WorkerID: "w1", StartDate: "2026-07-01", EndDate: "2026-07-14",
	})
	require.NoError(t, err)

	list, err := svc.ListByWorker(ctx, owner, "w1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, owner, created.ID))
	assert.Empty(t, vacations.Vacations)

	err = svc.Delete(ctx, owner, created.ID)
	assert.ErrorIs(t, err, vacation.ErrVacationNotFound)
}
