package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet - petty-cash ledger, 1:1 with a foreman account inside an
// organization. There is no stored running balance; the balance is
// always computed from the transaction rows.
type Wallet struct {
	ID             string
	UserID         string
	OrganizationID string
	IsActive       bool
}

// TransactionType enum
type TransactionType string

const (
	TypeRefill  TransactionType = "REFILL"
	TypeExpense TransactionType = "EXPENSE"
	TypeAdvance TransactionType = "ADVANCE"
)

// Category enum for expenses
type Category string

const (
	CategoryFuel      Category = "FUEL"
	CategoryMaterial  Category = "MATERIAL"
	CategoryEquipment Category = "EQUIPMENT"
	CategoryFood      Category = "FOOD"
	CategoryOther     Category = "OTHER"
)

// WalletTransaction - one ledger entry. Expenses may reference a project;
// advances reference the worker the cash was handed to, and that worker's
// payroll deducts them in the month they fall in.
type WalletTransaction struct {
	ID             string
	WalletID       string
	OrganizationID string
	Type           TransactionType
	Category       *Category
	Amount         decimal.Decimal
	Date           time.Time
	Description    string
	ProjectID      *string
	WorkerID       *string
}

// Balance - the wallet totals computed on read:
// refills − expenses − advances.
type Balance struct {
	TotalRefills  decimal.Decimal
	TotalExpenses decimal.Decimal
	TotalAdvances decimal.Decimal
}

func (b Balance) Current() decimal.Decimal {
	return b.TotalRefills.Sub(b.TotalExpenses).Sub(b.TotalAdvances)
}
