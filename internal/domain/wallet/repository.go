package wallet

import (
	"context"

	"github.com/shopspring/decimal"
)

// WalletRepository defines data access methods for wallets and their
// transactions.
// All methods include organizationID parameter to prevent cross-tenant data access.
type WalletRepository interface {
	Create(ctx context.Context, w Wallet) (Wallet, error)
	GetByID(ctx context.Context, id string, organizationID string) (Wallet, error)
	// GetByUserID returns the user's wallet in the organization, or
	// ErrWalletNotFound.
	GetByUserID(ctx context.Context, userID string, organizationID string) (Wallet, error)
	GetByOrganizationID(ctx context.Context, organizationID string) ([]Wallet, error)

	CreateTransaction(ctx context.Context, t WalletTransaction) (WalletTransaction, error)
	// ListTransactions returns entries ordered by date descending, capped
	// at limit (0 means no cap).
	ListTransactions(ctx context.Context, walletID string, organizationID string, limit int) ([]WalletTransaction, error)
	ListRecentByOrganization(ctx context.Context, organizationID string, limit int) ([]WalletTransaction, error)

	// GetBalance aggregates the wallet's full transaction set; nothing is
	// cached.
	GetBalance(ctx context.Context, walletID string, organizationID string) (Balance, error)
	// MonthlyExpenseSum totals EXPENSE transactions in the given month.
	MonthlyExpenseSum(ctx context.Context, walletID string, organizationID string, year int, month int) (decimal.Decimal, error)
	// AdvancesByWorkerForMonth sums ADVANCE transactions per worker; the
	// payroll engine deducts these from net pay.
	AdvancesByWorkerForMonth(ctx context.Context, organizationID string, year int, month int) (map[string]decimal.Decimal, error)
	// TotalAdvancesForWorker sums every ADVANCE recorded against the
	// worker across all wallets.
	TotalAdvancesForWorker(ctx context.Context, workerID string, organizationID string) (decimal.Decimal, error)
}
