package bonus

import (
	"context"
	"testing"

	"github.com/crewbase/crewbase-backend-go/internal/domain/bonus"
	"github.com/crewbase/crewbase-backend-go/internal/domain/payroll"
	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/validator"
	"github.com/crewbase/crewbase-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orgID = "org-1"

var owner = user.Actor{ID: "user-owner", Role: user.RoleOwner, OrganizationID: orgID}

func newTestService() (*BonusServiceImpl, *servicetest.BonusRepo, *servicetest.PayrollRepo) {
	workers := servicetest.NewWorkerRepo()
	logs := servicetest.NewWorkLogRepo()
	wallets := servicetest.NewWalletRepo()
	bonuses := servicetest.NewBonusRepo(logs)
	payrolls := servicetest.NewPayrollRepo(workers, logs, wallets)

	svc := &BonusServiceImpl{
		tx:          servicetest.Tx{},
		bonusRepo:   bonuses,
		payrollRepo: payrolls,
	}
	return svc, bonuses, payrolls
}

func TestUpsert_CreatesAndReplaces(t *testing.T) {
	svc, bonuses, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Upsert(ctx, owner, 2026, 2, bonus.UpsertBonusDayRequest{
		Date: "2026-02-10", Amount: 50, Description: "roof done",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), first.Amount)

	second, err := svc.Upsert(ctx, owner, 2026, 2, bonus.UpsertBonusDayRequest{
		Date: "2026-02-10", Amount: 80,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same date replaces the bonus")
	assert.Equal(t, int64(80), second.Amount)
	assert.Len(t, bonuses.Bonuses, 1)
}

func TestUpsert_DateMustFallInsideMonth(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Upsert(context.Background(), owner, 2026, 2, bonus.UpsertBonusDayRequest{
		Date: "2026-03-01", Amount: 50,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "date", verrs[0].Field)
}

func TestUpsert_ClosedMonthRejected(t *testing.T) {
	svc, _, payrolls := newTestService()
	payrolls.Payrolls["x"] = payroll.Payroll{
		ID: "pr1", OrganizationID: orgID, WorkerID: "w1",
		Year: 2026, Month: 2, Status: payroll.StatusClosed,
	}

	_, err := svc.Upsert(context.Background(), owner, 2026, 2, bonus.UpsertBonusDayRequest{
		Date: "2026-02-10", Amount: 50,
	})
	assert.ErrorIs(t, err, bonus.ErrMonthClosed)
}

func TestDelete_ClosedMonthRejected(t *testing.T) {
	svc, bonuses, payrolls := newTestService()
	ctx := context.Background()

	created, err := svc.Upsert(ctx, owner, 2026, 2, bonus.UpsertBonusDayRequest{
		Date: "2026-02-10", Amount: 50,
	})
	require.NoError(t, err)

	payrolls.Payrolls["x"] = payroll.Payroll{
		ID: "pr1", OrganizationID: orgID, WorkerID: "w1",
		Year: 2026, Month: 2, Status: payroll.StatusClosed,
	}
	err = svc.Delete(ctx, owner, 2026, 2, created.ID)
	assert.ErrorIs(t, err, bonus.ErrMonthClosed)
	assert.Len(t, bonuses.Bonuses, 1)

	payrolls.Payrolls = map[string]payroll.Payroll{}
	err = svc.Delete(ctx, owner, 2026, 2, created.ID)
	require.NoError(t, err)
	assert.Empty(t, bonuses.Bonuses)
}

func TestListForMonth_SortedByDate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, owner, 2026, 2, bonus.UpsertBonusDayRequest{Date: "2026-02-20", Amount: 40})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, owner, 2026, 2, bonus.UpsertBonusDayRequest{Date: "2026-02-05", Amount: 60})
	require.NoError(t, err)

	days, err := svc.ListForMonth(ctx, owner, 2026, 2)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-02-05", days[0].Date)
	assert.Equal(t, "2026-02-20", days[1].Date)
}

func TestMutations_RequireOwner(t *testing.T) {
	svc, _, _ := newTestService()
	foreman := user.Actor{ID: "user-f", Role: user.RoleForeman, OrganizationID: orgID}

	_, err := svc.Upsert(context.Background(), foreman, 2026, 2, bonus.UpsertBonusDayRequest{
		Date: "2026-02-10", Amount: 50,
	})
	assert.ErrorIs(t, err, user.ErrOwnerAccessRequired)

	err = svc.Delete(context.Background(), foreman, 2026, 2, "b1")
	assert.ErrorIs(t, err, user.ErrOwnerAccessRequired)
}
