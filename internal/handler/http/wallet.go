package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/domain/wallet"
	"github.com/crewbase/crewbase-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WalletHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
	GetDetail(w http.ResponseWriter, r *http.Request)
	Refill(w http.ResponseWriter, r *http.Request)
	CreateExpense(w http.ResponseWriter, r *http.Request)
	CreateAdvance(w http.ResponseWriter, r *http.Request)
}

type WalletHandlerImpl struct {
	walletService wallet.WalletService
}

func NewWalletHandler(walletService wallet.WalletService) WalletHandler {
	return &WalletHandlerImpl{walletService: walletService}
}

func (h *WalletHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.walletService.List(r.Context(), actor)
	if err != nil {
		slog.Error("Failed to list wallets", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *WalletHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	own, err := h.walletService.EnsureWallet(r.Context(), actor)
	if err != nil {
		slog.Error("Failed to ensure wallet", "error", err)
		response.HandleError(w, err)
		return
	}

	detail, err := h.walletService.GetDetail(r.Context(), actor, own.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

func (h *WalletHandlerImpl) GetDetail(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	detail, err := h.walletService.GetDetail(r.Context(), actor, chi.URLParam(r, "walletID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

func (h *WalletHandlerImpl) Refill(w http.ResponseWriter, r *http.Request) {
	h.createTransaction(w, r, string(wallet.TypeRefill), h.walletService.Refill)
}

func (h *WalletHandlerImpl) CreateExpense(w http.ResponseWriter, r *http.Request) {
	h.createTransaction(w, r, string(wallet.TypeExpense), h.walletService.Expense)
}

func (h *WalletHandlerImpl) CreateAdvance(w http.ResponseWriter, r *http.Request) {
	h.createTransaction(w, r, string(wallet.TypeAdvance), h.walletService.Advance)
}

type transactionFunc func(ctx context.Context, actor user.Actor, req wallet.CreateTransactionRequest) (wallet.TransactionResponse, error)

func (h *WalletHandlerImpl) createTransaction(w http.ResponseWriter, r *http.Request, txType string, record transactionFunc) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req wallet.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Type = txType
	// Owners address a specific foreman's wallet through the route; a
	// foreman's own wallet is resolved implicitly.
	req.WalletID = chi.URLParam(r, "walletID")

	created, err := record(r.Context(), actor, req)
	if err != nil {
		slog.Error("Failed to record wallet transaction", "error", err, "type", txType)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Transaction recorded", created)
}
