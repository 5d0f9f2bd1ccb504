package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/domain/wallet"
	"github.com/crewbase/crewbase-backend-go/internal/domain/worker"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

const recentTransactionLimit = 10

type WalletServiceImpl struct {
	walletRepo wallet.WalletRepository
	workerRepo worker.WorkerRepository
	now        func() time.Time
}

func NewWalletService(
	walletRepo wallet.WalletRepository,
	workerRepo worker.WorkerRepository,
) wallet.WalletService {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		workerRepo: workerRepo,
		now:        time.Now,
	}
}

func (s *WalletServiceImpl) EnsureWallet(ctx context.Context, actor user.Actor) (wallet.Wallet, error) {
	w, err := s.walletRepo.GetByUserID(ctx, actor.ID, actor.OrganizationID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, wallet.ErrWalletNotFound) {
		return wallet.Wallet{}, err
	}

	return s.walletRepo.Create(ctx, wallet.Wallet{
		ID:             uuid.New().String(),
		UserID:         actor.ID,
		OrganizationID: actor.OrganizationID,
		IsActive:       true,
	})
}

func (s *WalletServiceImpl) List(ctx context.Context, actor user.Actor) (wallet.WalletListResponse, error) {
	var wallets []wallet.Wallet
	if actor.IsOwner() {
		all, err := s.walletRepo.GetByOrganizationID(ctx, actor.OrganizationID)
		if err != nil {
			return wallet.WalletListResponse{}, err
		}
		wallets = all
	} else {
		own, err := s.EnsureWallet(ctx, actor)
		if err != nil {
			return wallet.WalletListResponse{}, err
		}
		wallets = []wallet.Wallet{own}
	}

	resp := wallet.WalletListResponse{Wallets: make([]wallet.WalletResponse, 0, len(wallets))}
	for _, w := range wallets {
		wr, err := s.toWalletResponse(ctx, w)
		if err != nil {
			return wallet.WalletListResponse{}, err
		}
		resp.Wallets = append(resp.Wallets, wr)
		resp.TotalBalance = resp.TotalBalance.Add(wr.CurrentBalance)
	}

	recent, err := s.recentTransactions(ctx, actor, wallets)
	if err != nil {
		return wallet.WalletListResponse{}, err
	}
	resp.RecentTransactions = recent
	return resp, nil
}

func (s *WalletServiceImpl) recentTransactions(ctx context.Context, actor user.Actor, wallets []wallet.Wallet) ([]wallet.TransactionResponse, error) {
	var txns []wallet.WalletTransaction
	var err error
	if actor.IsOwner() {
		txns, err = s.walletRepo.ListRecentByOrganization(ctx, actor.OrganizationID, recentTransactionLimit)
	} else if len(wallets) > 0 {
		txns, err = s.walletRepo.ListTransactions(ctx, wallets[0].ID, actor.OrganizationID, recentTransactionLimit)
	}
	if err != nil {
		return nil, err
	}

	out := make([]wallet.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, toTransactionResponse(t))
	}
	return out, nil
}

func (s *WalletServiceImpl) GetDetail(ctx context.Context, actor user.Actor, walletID string) (wallet.WalletDetailResponse, error) {
	w, err := s.walletRepo.GetByID(ctx, walletID, actor.OrganizationID)
	if err != nil {
		return wallet.WalletDetailResponse{}, err
	}
	if !actor.IsOwner() && w.UserID != actor.ID {
		return wallet.WalletDetailResponse{}, wallet.ErrWalletForbidden
	}

	wr, err := s.toWalletResponse(ctx, w)
	if err != nil {
		return wallet.WalletDetailResponse{}, err
	}

	n := s.now()
	monthly, err := s.walletRepo.MonthlyExpenseSum(ctx, w.ID, actor.OrganizationID, n.Year(), int(n.Month()))
	if err != nil {
		return wallet.WalletDetailResponse{}, fmt.Errorf("monthly expense sum: %w", err)
	}

	txns, err := s.walletRepo.ListTransactions(ctx, w.ID, actor.OrganizationID, 0)
	if err != nil {
		return wallet.WalletDetailResponse{}, err
	}
	responses := make([]wallet.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		responses = append(responses, toTransactionResponse(t))
	}

	return wallet.WalletDetailResponse{
		Wallet:          wr,
		MonthlyExpenses: monthly,
		Transactions:    responses,
	}, nil
}

func (s *WalletServiceImpl) Refill(ctx context.Context, actor user.Actor, req wallet.CreateTransactionRequest) (wallet.TransactionResponse, error) {
	if !actor.IsOwner() {
		return wallet.TransactionResponse{}, user.ErrOwnerAccessRequired
	}
	req.Type = string(wallet.TypeRefill)
	if err := req.Validate(); err != nil {
		return wallet.TransactionResponse{}, err
	}

	w, err := s.walletRepo.GetByID(ctx, req.WalletID, actor.OrganizationID)
	if err != nil {
		return wallet.TransactionResponse{}, err
	}

	return s.createTransaction(ctx, actor, w, wallet.TypeRefill, req)
}

func (s *WalletServiceImpl) Expense(ctx context.Context, actor user.Actor, req wallet.CreateTransactionRequest) (wallet.TransactionResponse, error) {
	req.Type = string(wallet.TypeExpense)
	if err := req.Validate(); err != nil {
		return wallet.TransactionResponse{}, err
	}

	w, err := s.resolveWallet(ctx, actor, req.WalletID)
	if err != nil {
		return wallet.TransactionResponse{}, err
	}

	return s.createTransaction(ctx, actor, w, wallet.TypeExpense, req)
}

func (s *WalletServiceImpl) Advance(ctx context.Context, actor user.Actor, req wallet.CreateTransactionRequest) (wallet.TransactionResponse, error) {
	req.Type = string(wallet.TypeAdvance)
	if err := req.Validate(); err != nil {
		return wallet.TransactionResponse{}, err
	}

	if _, err := s.workerRepo.GetByID(ctx, *req.WorkerID, actor.OrganizationID); err != nil {
		return wallet.TransactionResponse{}, err
	}

	w, err := s.resolveWallet(ctx, actor, req.WalletID)
	if err != nil {
		return wallet.TransactionResponse{}, err
	}

	return s.createTransaction(ctx, actor, w, wallet.TypeAdvance, req)
}

// resolveWallet picks the wallet a spend lands in. A foreman always
// spends from their own wallet; an owner names the wallet explicitly.
func (s *WalletServiceImpl) resolveWallet(ctx context.Context, actor user.Actor, walletID string) (wallet.Wallet, error) {
	if !actor.IsOwner() {
		return s.EnsureWallet(ctx, actor)
	}
	if walletID == "" {
		return wallet.Wallet{}, validator.ValidationErrors{
			{Field: "wallet_id", Message: "is required"},
		}
	}
	return s.walletRepo.GetByID(ctx, walletID, actor.OrganizationID)
}

func (s *WalletServiceImpl) createTransaction(ctx context.Context, actor user.Actor, w wallet.Wallet, txType wallet.TransactionType, req wallet.CreateTransactionRequest) (wallet.TransactionResponse, error) {
	date, _ := time.Parse("2006-01-02", req.Date)

	t := wallet.WalletTransaction{
		ID:             uuid.New().String(),
		WalletID:       w.ID,
		OrganizationID: actor.OrganizationID,
		Type:           txType,
		Amount:         req.Amount,
		Date:           date,
		Description:    req.Description,
	}
	switch txType {
	case wallet.TypeExpense:
		if req.Category != nil {
			c := wallet.Category(*req.Category)
			t.Category = &c
		}
		t.ProjectID = req.ProjectID
	case wallet.TypeAdvance:
		t.WorkerID = req.WorkerID
	}

	created, err := s.walletRepo.CreateTransaction(ctx, t)
	if err != nil {
		return wallet.TransactionResponse{}, fmt.Errorf("create transaction: %w", err)
	}
	return toTransactionResponse(created), nil
}

func (s *WalletServiceImpl) toWalletResponse(ctx context.Context, w wallet.Wallet) (wallet.WalletResponse, error) {
	b, err := s.walletRepo.GetBalance(ctx, w.ID, w.OrganizationID)
	if err != nil {
		return wallet.WalletResponse{}, fmt.Errorf("wallet balance: %w", err)
	}
	return wallet.WalletResponse{
		ID:             w.ID,
		UserID:         w.UserID,
		CurrentBalance: b.Current(),
		TotalRefills:   b.TotalRefills,
		TotalExpenses:  b.TotalExpenses,
		TotalAdvances:  b.TotalAdvances,
	}, nil
}

func toTransactionResponse(t wallet.WalletTransaction) wallet.TransactionResponse {
	resp := wallet.TransactionResponse{
		ID:          t.ID,
		WalletID:    t.WalletID,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Date:        t.Date.Format("2006-01-02"),
		Description: t.Description,
		ProjectID:   t.ProjectID,
		WorkerID:    t.WorkerID,
	}
	if t.Category != nil {
		c := string(*t.Category)
		resp.Category = &c
	}
	return resp
}
