package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/crewbase/crewbase-backend-go/internal/domain/bonus"
	"github.com/crewbase/crewbase-backend-go/internal/domain/payroll"
	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	tx          database.TxManager
	payrollRepo payroll.PayrollRepository
	bonusRepo   bonus.BonusDayRepository
}

func NewPayrollService(
	tx database.TxManager,
	payrollRepo payroll.PayrollRepository,
	bonusRepo bonus.BonusDayRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:          tx,
		payrollRepo: payrollRepo,
		bonusRepo:   bonusRepo,
	}
}

func validMonth(year, month int) error {
	if !validator.IsValidMonth(year, month) {
		return validator.ValidationErrors{{Field: "month", Message: "is not a valid month"}}
	}
	return nil
}

func (s *PayrollServiceImpl) Generate(ctx context.Context, actor user.Actor, year int, month int) (payroll.GenerateResult, error) {
	if !actor.IsOwner() {
		return payroll.GenerateResult{}, user.ErrOwnerAccessRequired
	}
	if err := validMonth(year, month); err != nil {
		return payroll.GenerateResult{}, err
	}

	var result payroll.GenerateResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		totals, err := s.payrollRepo.WorkerMonthlyTotals(ctx, actor.OrganizationID, year, month)
		if err != nil {
			return fmt.Errorf("aggregate monthly totals: %w", err)
		}

		bonuses, err := s.bonusRepo.TotalsForWorkersInMonth(ctx, actor.OrganizationID, year, month)
		if err != nil {
			return fmt.Errorf("aggregate bonuses: %w", err)
		}

		for _, t := range totals {
			existing, err := s.payrollRepo.GetByWorkerPeriod(ctx, t.WorkerID, actor.OrganizationID, year, month)
			hasExisting := err == nil
			if err != nil && !errors.Is(err, payroll.ErrPayrollNotFound) {
				return err
			}
			if hasExisting && existing.Status == payroll.StatusClosed {
				result.Skipped++
				continue
			}

			rate := decimal.NewFromInt(t.HourlyRate)
			bonusSum := decimal.NewFromInt(bonuses[t.WorkerID])
			gross := t.TotalHours.Mul(rate).Add(bonusSum)
			net := gross.Sub(t.TotalAdvances)

			row := payroll.Payroll{
				ID:                 uuid.New().String(),
				OrganizationID:     actor.OrganizationID,
				WorkerID:           t.WorkerID,
				Year:               year,
				Month:              month,
				Status:             payroll.StatusDraft,
				TotalHours:         t.TotalHours,
				HourlyRateSnapshot: t.HourlyRate,
				Bonuses:            bonusSum,
				GrossPay:           gross,
				AdvancesDeducted:   t.TotalAdvances,
				NetPay:             net,
			}
			if hasExisting {
				row.ID = existing.ID
			}
			if _, err := s.payrollRepo.Upsert(ctx, row); err != nil {
				return fmt.Errorf("upsert payroll: %w", err)
			}
			result.Generated++
		}
		return nil
	})
	if err != nil {
		return payroll.GenerateResult{}, err
	}
	return result, nil
}

func (s *PayrollServiceImpl) Close(ctx context.Context, actor user.Actor, year int, month int) (int64, error) {
	return s.transition(ctx, actor, year, month, payroll.StatusDraft, payroll.StatusClosed)
}

func (s *PayrollServiceImpl) Reopen(ctx context.Context, actor user.Actor, year int, month int) (int64, error) {
	return s.transition(ctx, actor, year, month, payroll.StatusClosed, payroll.StatusDraft)
}

func (s *PayrollServiceImpl) transition(ctx context.Context, actor user.Actor, year, month int, from, to payroll.Status) (int64, error) {
	if !actor.IsOwner() {
		return 0, user.ErrOwnerAccessRequired
	}
	if err := validMonth(year, month); err != nil {
		return 0, err
	}

	var n int64
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var txErr error
		n, txErr = s.payrollRepo.UpdateStatusForMonth(ctx, actor.OrganizationID, year, month, from, to)
		return txErr
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *PayrollServiceImpl) ListForMonth(ctx context.Context, actor user.Actor, year int, month int) (payroll.MonthResponse, error) {
	if !actor.IsOwner() {
		return payroll.MonthResponse{}, user.ErrOwnerAccessRequired
	}
	if err := validMonth(year, month); err != nil {
		return payroll.MonthResponse{}, err
	}

	rows, err := s.payrollRepo.ListForMonth(ctx, actor.OrganizationID, year, month)
	if err != nil {
		return payroll.MonthResponse{}, err
	}

	resp := payroll.MonthResponse{
		Year:     year,
		Month:    month,
		Payrolls: make([]payroll.PayrollResponse, 0, len(rows)),
		Stats:    monthStats(rows),
	}
	for _, p := range rows {
		resp.Payrolls = append(resp.Payrolls, toResponse(p))
	}
	return resp, nil
}

func (s *PayrollServiceImpl) ListClosed(ctx context.Context, actor user.Actor, year int, month int) ([]payroll.PayrollResponse, error) {
	if !actor.IsOwner() {
		return nil, user.ErrOwnerAccessRequired
	}
	if err := validMonth(year, month); err != nil {
		return nil, err
	}

	rows, err := s.payrollRepo.ListClosedForMonth(ctx, actor.OrganizationID, year, month)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, payroll.ErrNoClosedPayrolls
	}

	responses := make([]payroll.PayrollResponse, 0, len(rows))
	for _, p := range rows {
		responses = append(responses, toResponse(p))
	}
	return responses, nil
}

// monthStats folds the month's rows into the aggregate the payroll list
// shows: EMPTY with no rows, CLOSED only when every row is closed.
func monthStats(rows []payroll.Payroll) payroll.MonthStats {
	stats := payroll.MonthStats{Status: payroll.MonthEmpty}
	hasDraft, hasClosed := false, false
	for _, p := range rows {
		stats.TotalEarned = stats.TotalEarned.Add(p.GrossPay)
		stats.TotalBonuses = stats.TotalBonuses.Add(p.Bonuses)
		stats.TotalAdvances = stats.TotalAdvances.Add(p.AdvancesDeducted)
		stats.TotalPayout = stats.TotalPayout.Add(p.NetPay)
		if p.Status == payroll.StatusDraft {
			hasDraft = true
		}
		if p.Status == payroll.StatusClosed {
			hasClosed = true
		}
	}
	switch {
	case hasDraft:
		stats.Status = payroll.MonthDraft
	case hasClosed:
		stats.Status = payroll.MonthClosed
	}
	return stats
}

func toResponse(p payroll.Payroll) payroll.PayrollResponse {
	resp := payroll.PayrollResponse{
		ID:                 p.ID,
		WorkerID:           p.WorkerID,
		Year:               p.Year,
		Month:              p.Month,
		Status:             string(p.Status),
		TotalHours:         p.TotalHours,
		HourlyRateSnapshot: p.HourlyRateSnapshot,
		Bonuses:            p.Bonuses,
		GrossPay:           p.GrossPay,
		AdvancesDeducted:   p.AdvancesDeducted,
		NetPay:             p.NetPay,
	}
	if p.WorkerFirstName != nil && p.WorkerLastName != nil {
		resp.WorkerName = *p.WorkerFirstName + " " + *p.WorkerLastName
	}
	return resp
}
