package wallet

import (
	"context"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
)

// WalletService manages foreman petty-cash ledgers. Balances are
// aggregated on every read; advances feed the payroll engine's net-pay
// deduction through the same transaction rows.
type WalletService interface {
	// EnsureWallet returns the actor's wallet, creating it when missing.
	EnsureWallet(ctx context.Context, actor user.Actor) (Wallet, error)
	List(ctx context.Context, actor user.Actor) (WalletListResponse, error)
	GetDetail(ctx context.Context, actor user.Actor, walletID string) (WalletDetailResponse, error)
	// Refill is owner-only; Expense and Advance are recorded by the
	// wallet's foreman (or the owner on their behalf).
	Refill(ctx context.Context, actor user.Actor, req CreateTransactionRequest) (TransactionResponse, error)
	Expense(ctx context.Context, actor user.Actor, req CreateTransactionRequest) (TransactionResponse, error)
	Advance(ctx context.Context, actor user.Actor, req CreateTransactionRequest) (TransactionResponse, error)
}
