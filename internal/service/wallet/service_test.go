package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/domain/wallet"
	"github.com/crewbase/crewbase-backend-go/internal/domain/worker"
	"github.com/crewbase/crewbase-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orgID = "org-1"

var (
	owner   = user.Actor{ID: "user-owner", Role: user.RoleOwner, OrganizationID: orgID}
	foreman = user.Actor{ID: "user-f", Role: user.RoleForeman, OrganizationID: orgID}
)

func newTestService() (*WalletServiceImpl, *servicetest.WalletRepo, *servicetest.WorkerRepo) {
	wallets := servicetest.NewWalletRepo()
	workers := servicetest.NewWorkerRepo()
	svc := &WalletServiceImpl{
		walletRepo: wallets,
		workerRepo: workers,
		now:        func() time.Time { return time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC) },
	}
	return svc, wallets, workers
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestEnsureWallet_CreatesOnce(t *testing.T) {
	svc, wallets, _ := newTestService()
	ctx := context.Background()

	first, err := svc.EnsureWallet(ctx, foreman)
	require.NoError(t, err)
	second, err := svc.EnsureWallet(ctx, foreman)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, wallets.Wallets, 1)
}

func TestBalance_ComputedFromTransactions(t *testing.T) {
	svc, _, workers := newTestService()
	ctx := context.Background()
	workers.Workers["w1"] = worker.Worker{ID: "w1", OrganizationID: orgID, IsActive: true}

	w, err := svc.EnsureWallet(ctx, foreman)
	require.NoError(t, err)

	_, err = svc.Refill(ctx, owner, wallet.CreateTransactionRequest{
		WalletID: w.ID, Amount: dec("500"), Date: "2026-02-01",
	})
	require.NoError(t, err)

	cat := "FUEL"
	_, err = svc.Expense(ctx, foreman, wallet.CreateTransactionRequest{
		Amount: dec("120"), Date: "2026-02-05", Category: &cat,
	})
	require.NoError(t, err)

	workerID := "w1"
	_, err = svc.Advance(ctx, foreman, wallet.CreateTransactionRequest{
		Amount: dec("80"), Date: "2026-02-10", WorkerID: &workerID,
	})
	require.NoError(t, err)

	detail, err := svc.GetDetail(ctx, foreman, w.ID)
	require.NoError(t, err)
	assert.True(t, detail.Wallet.TotalRefills.Equal(dec("500")))
	assert.True(t, detail.Wallet.TotalExpenses.Equal(dec("120")))
	assert.True(t, detail.Wallet.TotalAdvances.Equal(dec("80")))
	assert.True(t, detail.Wallet.CurrentBalance.Equal(dec("300")))
	assert.True(t, detail.MonthlyExpenses.Equal(dec("120")))
	assert.Len(t, detail.Transactions, 3)
}

// The per-wallet advance total and the per-worker monthly aggregation the
// payroll engine reads must describe the same rows.
func TestAdvances_DualAggregationAgrees(t *testing.T) {
	svc, wallets, workers := newTestService()
	ctx := context.Background()
	workers.Workers["w1"] = worker.Worker{ID: "w1", OrganizationID: orgID, IsActive: true}

	w, err := svc.EnsureWallet(ctx, foreman)
	require.NoError(t, err)

	workerID := "w1"
	for _, amount := range []string{"50", "25"} {
		_, err = svc.Advance(ctx, foreman, wallet.CreateTransactionRequest{
			Amount: dec(amount), Date: "2026-02-10", WorkerID: &workerID,
		})
		require.NoError(t, err)
	}

	balance, err := wallets.GetBalance(ctx, w.ID, orgID)
	require.NoError(t, err)
	byWorker, err := wallets.AdvancesByWorkerForMonth(ctx, orgID, 2026, 2)
	require.NoError(t, err)
	total, err := wallets.TotalAdvancesForWorker(ctx, "w1", orgID)
	require.NoError(t, err)

	assert.True(t, balance.TotalAdvances.Equal(dec("75")))
	assert.True(t, byWorker["w1"].Equal(dec("75")))
	assert.True(t, total.Equal(dec("75")))
}

func TestRefill_RequiresOwner(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	w, err := svc.EnsureWallet(ctx, foreman)
	require.NoError(t, err)

	_, err = svc.Refill(ctx, foreman, wallet.CreateTransactionRequest{
		WalletID: w.ID, Amount: dec("100"), Date: "2026-02-01",
	})
	assert.ErrorIs(t, err, user.ErrOwnerAccessRequired)
}

func TestAdvance_RequiresWorker(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Advance(context.Background(), foreman, wallet.CreateTransactionRequest{
		Amount: dec("100"), Date: "2026-02-01",
	})
	assert.Error(t, err)

	missing := "w-missing"
	_, err = svc.Advance(context.Background(), foreman, wallet.CreateTransactionRequest{
		Amount: dec("100"), Date: "2026-02-01", WorkerID: &missing,
	})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestGetDetail_ForemanCannotReadForeignWallet(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	other := user.Actor{ID: "user-other", Role: user.RoleForeman, OrganizationID: orgID}
	w, err := svc.EnsureWallet(ctx, other)
	require.NoError(t, err)

	_, err = svc.GetDetail(ctx, foreman, w.ID)
	assert.ErrorIs(t, err, wallet.ErrWalletForbidden)
}

func TestList_OwnerSeesAllWallets(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.EnsureWallet(ctx, foreman)
	require.NoError(t, err)
	other := user.Actor{ID: "user-other", Role: user.RoleForeman, OrganizationID: orgID}
	w2, err := svc.EnsureWallet(ctx, other)
	require.NoError(t, err)

	_, err = svc.Refill(ctx, owner, wallet.CreateTransactionRequest{
		WalletID: w2.ID, Amount: dec("200"), Date: "2026-02-01",
	})
	require.NoError(t, err)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list.Wallets, 2)
	assert.True(t, list.TotalBalance.Equal(dec("200")))
	assert.Len(t, list.RecentTransactions, 1)

	own, err := svc.List(ctx, foreman)
	require.NoError(t, err)
	assert.Len(t, own.Wallets, 1)
}
