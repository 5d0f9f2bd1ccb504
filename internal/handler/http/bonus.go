package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/crewbase/crewbase-backend-go/internal/domain/bonus"
	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BonusHandler interface {
	ListForMonth(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type BonusHandlerImpl struct {
	bonusService bonus.BonusService
}

func NewBonusHandler(bonusService bonus.BonusService) BonusHandler {
	return &BonusHandlerImpl{bonusService: bonusService}
}

func (h *BonusHandlerImpl) ListForMonth(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, month, err := monthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	days, err := h.bonusService.ListForMonth(r.Context(), actor, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, days)
}

func (h *BonusHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, month, err := monthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req bonus.UpsertBonusDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	saved, err := h.bonusService.Upsert(r.Context(), actor, year, month, req)
	if err != nil {
		slog.Error("Failed to upsert bonus day", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bonus day saved", saved)
}

func (h *BonusHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := user.ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, month, err := monthFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.bonusService.Delete(r.Context(), actor, year, month, chi.URLParam(r, "bonusDayID")); err != nil {
		slog.Error("Failed to delete bonus day", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bonus day deleted", nil)
}
