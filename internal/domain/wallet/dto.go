package wallet

import (
	"github.com/crewbase/crewbase-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	WalletID    string          `json:"-"`
	Type        string          `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"` // "YYYY-MM-DD"
	Description string          `json:"description,omitempty"`
	Category    *string         `json:"category,omitempty"`   // expenses only
	ProjectID   *string         `json:"project_id,omitempty"` // expenses only
	WorkerID    *string         `json:"worker_id,omitempty"`  // advances only
}

var expenseCategories = []string{
	string(CategoryFuel), string(CategoryMaterial), string(CategoryEquipment),
	string(CategoryFood), string(CategoryOther),
}

func (r *CreateTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.Category != nil && !validator.IsInSlice(*r.Category, expenseCategories) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "is not a known expense category"})
	}
	if TransactionType(r.Type) == TypeAdvance && (r.WorkerID == nil || *r.WorkerID == "") {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "is required for advances"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TransactionResponse struct {
	ID          string          `json:"id"`
	WalletID    string          `json:"wallet_id"`
	Type        string          `json:"type"`
	Category    *string         `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	ProjectID   *string         `json:"project_id,omitempty"`
	WorkerID    *string         `json:"worker_id,omitempty"`
}

type WalletResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	TotalRefills   decimal.Decimal `json:"total_refills"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	TotalAdvances  decimal.Decimal `json:"total_advances"`
}

type WalletDetailResponse struct {
	Wallet WalletResponse `json:"wallet"`
	// MonthlyExpenses sums this calendar month's expenses.
	MonthlyExpenses decimal.Decimal       `json:"monthly_expenses"`
	Transactions    []TransactionResponse `json:"transactions"`
}

type WalletListResponse struct {
	Wallets            []WalletResponse      `json:"wallets"`
	TotalBalance       decimal.Decimal       `json:"total_balance"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}
