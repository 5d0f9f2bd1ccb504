package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/bonus"
	"github.com/crewbase/crewbase-backend-go/internal/domain/payroll"
	"github.com/crewbase/crewbase-backend-go/internal/domain/timesheet"
	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/domain/wallet"
	"github.com/crewbase/crewbase-backend-go/internal/domain/worker"
	"github.com/crewbase/crewbase-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orgID = "org-1"

var owner = user.Actor{ID: "user-owner", Role: user.RoleOwner, OrganizationID: orgID}

type fixture struct {
	svc      *PayrollServiceImpl
	workers  *servicetest.WorkerRepo
	logs     *servicetest.WorkLogRepo
	wallets  *servicetest.WalletRepo
	bonuses  *servicetest.BonusRepo
	payrolls *servicetest.PayrollRepo
}

func newFixture() *fixture {
	workers := servicetest.NewWorkerRepo()
	logs := servicetest.NewWorkLogRepo()
	wallets := servicetest.NewWalletRepo()
	bonuses := servicetest.NewBonusRepo(logs)
	payrolls := servicetest.NewPayrollRepo(workers, logs, wallets)

	svc := &PayrollServiceImpl{
		tx:          servicetest.Tx{},
		payrollRepo: payrolls,
		bonusRepo:   bonuses,
	}
	return &fixture{svc: svc, workers: workers, logs: logs, wallets: wallets, bonuses: bonuses, payrolls: payrolls}
}

func (f *fixture) addWorker(id string, rate int64) {
	f.workers.Workers[id] = worker.Worker{
		ID: id, OrganizationID: orgID, FirstName: "Jan", LastName: "Kowalski",
		HourlyRate: rate, IsActive: true,
	}
}

func (f *fixture) addHours(workerID string, date time.Time, hours string) {
	h, _ := decimal.NewFromString(hours)
	f.logs.Upsert(context.Background(), timesheet.WorkLog{
		ID: workerID + date.Format("20060102"), OrganizationID: orgID,
		WorkerID: workerID, Date: date, Hours: h, CreatedBy: owner.ID,
	})
}

func (f *fixture) addAdvance(workerID string, date time.Time, amount string) {
	a, _ := decimal.NewFromString(amount)
	f.wallets.CreateTransaction(context.Background(), wallet.WalletTransaction{
		ID: "adv-" + workerID + date.Format("20060102"), WalletID: "wal-1",
		OrganizationID: orgID, Type: wallet.TypeAdvance,
		Amount: a, Date: date, WorkerID: &workerID,
	})
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// A worker at rate 20 with two 8-hour days in February 2026, a 50 bonus
// on one of them and a 30 advance must come out at 16 hours, 370 gross
// and 340 net.
func TestGenerate_ComputesMonthlyPay(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", 20)
	f.addHours("w1", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), "8")
	f.addHours("w1", time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC), "8")
	f.bonuses.Upsert(context.Background(), bonus.BonusDay{
		ID: "b1", OrganizationID: orgID,
		Date: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), Amount: 50,
	})
	f.addAdvance("w1", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), "30")

	res, err := f.svc.Generate(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Generated)
	assert.Equal(t, 0, res.Skipped)

	p, err := f.payrolls.GetByWorkerPeriod(context.Background(), "w1", orgID, 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusDraft, p.Status)
	assert.True(t, p.TotalHours.Equal(dec("16")), "hours: %s", p.TotalHours)
	assert.Equal(t, int64(20), p.HourlyRateSnapshot)
	assert.True(t, p.Bonuses.Equal(dec("50")), "bonuses: %s", p.Bonuses)
	assert.True(t, p.GrossPay.Equal(dec("370")), "gross: %s", p.GrossPay)
	assert.True(t, p.AdvancesDeducted.Equal(dec("30")))
	assert.True(t, p.NetPay.Equal(dec("340")), "net: %s", p.NetPay)
}

func TestGenerate_SelectsWorkersWithAdvancesOnly(t *testing.T) {
	f := newFixture()
	f.addWorker("w-hours", 20)
	f.addWorker("w-advance", 25)
	f.addWorker("w-idle", 30)
	f.addHours("w-hours", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), "8")
	f.addAdvance("w-advance", time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), "100")

	res, err := f.svc.Generate(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Generated)

	p, err := f.payrolls.GetByWorkerPeriod(context.Background(), "w-advance", orgID, 2026, 2)
	require.NoError(t, err)
	assert.True(t, p.TotalHours.IsZero())
	assert.True(t, p.NetPay.Equal(dec("-100")), "net: %s", p.NetPay)

	_, err = f.payrolls.GetByWorkerPeriod(context.Background(), "w-idle", orgID, 2026, 2)
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}

func TestGenerate_IsIdempotent(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", 20)
	f.addHours("w1", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), "8")

	_, err := f.svc.Generate(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	first, _ := f.payrolls.GetByWorkerPeriod(context.Background(), "w1", orgID, 2026, 2)

	_, err = f.svc.Generate(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	second, _ := f.payrolls.GetByWorkerPeriod(context.Background(), "w1", orgID, 2026, 2)

	assert.Equal(t, first.ID, second.ID, "regeneration updates the same row")
	assert.True(t, first.NetPay.Equal(second.NetPay))
	assert.Len(t, f.payrolls.Payrolls, 1)
}

func TestGenerate_SkipsClosedRows(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", 20)
	f.addHours("w1", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), "8")

	_, err := f.svc.Generate(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	_, err = f.svc.Close(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	before, _ := f.payrolls.GetByWorkerPeriod(context.Background(), "w1", orgID, 2026, 2)

	// More hours arrive after the close; regeneration must not touch the
	// closed snapshot.
	f.addHours("w1", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), "8")
	res, err := f.svc.Generate(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Generated)
	assert.Equal(t, 1, res.Skipped)

	after, _ := f.payrolls.GetByWorkerPeriod(context.Background(), "w1", orgID, 2026, 2)
	assert.True(t, before.TotalHours.Equal(after.TotalHours))
	assert.True(t, before.NetPay.Equal(after.NetPay))
}

func TestGenerate_SnapshotsCurrentRate(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", 20)
	f.addHours("w1", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), "8")

	_, err := f.svc.Generate(context.Background(), owner, 2026, 2)
	require.NoError(t, err)

	w := f.workers.Workers["w1"]
	w.HourlyRate = 40
	f.workers.Workers["w1"] = w

	p, _ := f.payrolls.GetByWorkerPeriod(context.Background(), "w1", orgID, 2026, 2)
	assert.Equal(t, int64(20), p.HourlyRateSnapshot, "rate edits do not touch the stored snapshot")

	_, err = f.svc.Generate(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	p, _ = f.payrolls.GetByWorkerPeriod(context.Background(), "w1", orgID, 2026, 2)
	assert.Equal(t, int64(40), p.HourlyRateSnapshot, "regeneration re-snapshots")
	assert.True(t, p.GrossPay.Equal(dec("320")))
}

func TestCloseAndReopen_TransitionCounts(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", 20)
	f.addWorker("w2", 20)
	f.addHours("w1", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), "8")
	f.addHours("w2", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), "8")

	_, err := f.svc.Generate(context.Background(), owner, 2026, 2)
	require.NoError(t, err)

	closed, err := f.svc.Close(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), closed)

	closedAgain, err := f.svc.Close(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), closedAgain)

	reopened, err := f.svc.Reopen(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), reopened)

	month, err := f.svc.ListForMonth(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, payroll.MonthDraft, month.Stats.Status)
}

func TestListForMonth_Stats(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", 20)
	f.addHours("w1", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), "8")
	f.addAdvance("w1", time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), "30")

	empty, err := f.svc.ListForMonth(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, payroll.MonthEmpty, empty.Stats.Status)

	_, err = f.svc.Generate(context.Background(), owner, 2026, 2)
	require.NoError(t, err)

	month, err := f.svc.ListForMonth(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	assert.Equal(t, payroll.MonthDraft, month.Stats.Status)
	assert.True(t, month.Stats.TotalEarned.Equal(dec("160")))
	assert.True(t, month.Stats.TotalAdvances.Equal(dec("30")))
	assert.True(t, month.Stats.TotalPayout.Equal(dec("130")))
}

func TestListClosed_EmptyMonthFails(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", 20)
	f.addHours("w1", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), "8")
	_, err := f.svc.Generate(context.Background(), owner, 2026, 2)
	require.NoError(t, err)

	_, err = f.svc.ListClosed(context.Background(), owner, 2026, 2)
	assert.ErrorIs(t, err, payroll.ErrNoClosedPayrolls)

	_, err = f.svc.Close(context.Background(), owner, 2026, 2)
	require.NoError(t, err)

	rows, err := f.svc.ListClosed(context.Background(), owner, 2026, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestGenerate_RequiresOwner(t *testing.T) {
	f := newFixture()
	foreman := user.Actor{ID: "user-f", Role: user.RoleForeman, OrganizationID: orgID}

	_, err := f.svc.Generate(context.Background(), foreman, 2026, 2)
	assert.ErrorIs(t, err, user.ErrOwnerAccessRequired)
}
