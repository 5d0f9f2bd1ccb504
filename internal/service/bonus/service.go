package bonus

import (
	"context"
	"fmt"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/bonus"
	"github.com/crewbase/crewbase-backend-go/internal/domain/payroll"
	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type BonusServiceImpl struct {
	tx          database.TxManager
	bonusRepo   bonus.BonusDayRepository
	payrollRepo payroll.PayrollRepository
}

func NewBonusService(
	tx database.TxManager,
	bonusRepo bonus.BonusDayRepository,
	payrollRepo payroll.PayrollRepository,
) bonus.BonusService {
	return &BonusServiceImpl{
		tx:          tx,
		bonusRepo:   bonusRepo,
		payrollRepo: payrollRepo,
	}
}

func (s *BonusServiceImpl) Upsert(ctx context.Context, actor user.Actor, year int, month int, req bonus.UpsertBonusDayRequest) (bonus.BonusDayResponse, error) {
	if !actor.IsOwner() {
		return bonus.BonusDayResponse{}, user.ErrOwnerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return bonus.BonusDayResponse{}, err
	}
	if !validator.IsValidMonth(year, month) {
		return bonus.BonusDayResponse{}, validator.ValidationErrors{
			{Field: "month", Message: "is not a valid month"},
		}
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	if date.Year() != year || int(date.Month()) != month {
		return bonus.BonusDayResponse{}, validator.ValidationErrors{
			{Field: "date", Message: "must fall inside the addressed month"},
		}
	}

	var saved bonus.BonusDay
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		closed, err := s.payrollRepo.HasClosedInMonth(ctx, actor.OrganizationID, year, month)
		if err != nil {
			return fmt.Errorf("check closed payrolls: %w", err)
		}
		if closed {
			return bonus.ErrMonthClosed
		}

		saved, err = s.bonusRepo.Upsert(ctx, bonus.BonusDay{
			ID:             uuid.New().String(),
			OrganizationID: actor.OrganizationID,
			Date:           date,
			Amount:         req.Amount,
			Description:    req.Description,
		})
		return err
	})
	if err != nil {
		return bonus.BonusDayResponse{}, err
	}

	return toResponse(saved), nil
}

func (s *BonusServiceImpl) Delete(ctx context.Context, actor user.Actor, year int, month int, id string) error {
	if !actor.IsOwner() {
		return user.ErrOwnerAccessRequired
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		closed, err := s.payrollRepo.HasClosedInMonth(ctx, actor.OrganizationID, year, month)
		if err != nil {
			return fmt.Errorf("check closed payrolls: %w", err)
		}
		if closed {
			return bonus.ErrMonthClosed
		}
		return s.bonusRepo.Delete(ctx, id, actor.OrganizationID)
	})
}

func (s *BonusServiceImpl) ListForMonth(ctx context.Context, actor user.Actor, year int, month int) ([]bonus.BonusDayResponse, error) {
	if !actor.IsOwner() {
		return nil, user.ErrOwnerAccessRequired
	}

	days, err := s.bonusRepo.ListForMonth(ctx, actor.OrganizationID, year, month)
	if err != nil {
		return nil, err
	}

	responses := make([]bonus.BonusDayResponse, 0, len(days))
	for _, b := range days {
		responses = append(responses, toResponse(b))
	}
	return responses, nil
}

func toResponse(b bonus.BonusDay) bonus.BonusDayResponse {
	return bonus.BonusDayResponse{
		ID:          b.ID,
		Date:        b.Date.Format("2006-01-02"),
		Amount:      b.Amount,
		Description: b.Description,
	}
}
