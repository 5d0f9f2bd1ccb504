package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/domain/wallet"
	"github.com/crewbase/crewbase-backend-go/internal/domain/worker"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WorkerServiceImpl struct {
	tx         database.TxManager
	workerRepo worker.WorkerRepository
	periodRepo worker.EmploymentPeriodRepository
	walletRepo wallet.WalletRepository
	now        func() time.Time
}

func NewWorkerService(
	tx database.TxManager,
	workerRepo worker.WorkerRepository,
	periodRepo worker.EmploymentPeriodRepository,
	walletRepo wallet.WalletRepository,
) worker.WorkerService {
	return &WorkerServiceImpl{
		tx:         tx,
		workerRepo: workerRepo,
		periodRepo: periodRepo,
		walletRepo: walletRepo,
		now:        time.Now,
	}
}

func (s *WorkerServiceImpl) Create(ctx context.Context, actor user.Actor, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if !actor.IsOwner() {
		return worker.WorkerResponse{}, user.ErrOwnerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	hiredAt, _ := time.Parse("2006-01-02", req.HiredAt)
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	w := worker.Worker{
		ID:             uuid.New().String(),
		OrganizationID: actor.OrganizationID,
		UserID:         req.UserID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		HourlyRate:     req.HourlyRate,
		HiredAt:        hiredAt,
		Phone:          req.Phone,
		Address:        req.Address,
		Notes:          req.Notes,
		IsActive:       isActive,
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err := s.workerRepo.Create(ctx, w)
		if err != nil {
			return fmt.Errorf("create worker: %w", err)
		}
		w = created

		// The first employment period mirrors the hire date. An inactive
		// hire gets a zero-length period so history still records it.
		period := worker.EmploymentPeriod{
			ID:             uuid.New().String(),
			WorkerID:       w.ID,
			OrganizationID: actor.OrganizationID,
			StartDate:      hiredAt,
		}
		if !isActive {
			end := hiredAt
			period.EndDate = &end
		}
		if _, err := s.periodRepo.Create(ctx, period); err != nil {
			return fmt.Errorf("create employment period: %w", err)
		}
		return nil
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return toWorkerResponse(w, nil), nil
}

func (s *WorkerServiceImpl) Get(ctx context.Context, actor user.Actor, id string) (worker.WorkerResponse, error) {
	w, err := s.workerRepo.GetByID(ctx, id, actor.OrganizationID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	advances, err := s.walletRepo.TotalAdvancesForWorker(ctx, w.ID, actor.OrganizationID)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("total advances: %w", err)
	}

	return toWorkerResponse(w, &advances), nil
}

func (s *WorkerServiceImpl) List(ctx context.Context, actor user.Actor, activeOnly bool) ([]worker.WorkerResponse, error) {
	workers, err := s.workerRepo.GetByOrganizationID(ctx, actor.OrganizationID, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, toWorkerResponse(w, nil))
	}
	return responses, nil
}

func (s *WorkerServiceImpl) Update(ctx context.Context, actor user.Actor, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if !actor.IsOwner() {
		return worker.WorkerResponse{}, user.ErrOwnerAccessRequired
	}
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	var updated worker.Worker
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		w, err := s.workerRepo.GetByID(ctx, req.ID, actor.OrganizationID)
		if err != nil {
			return err
		}

		oldHiredAt := w.HiredAt
		oldActive := w.IsActive

		if req.FirstName != nil {
			w.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			w.LastName = *req.LastName
		}
		if req.HourlyRate != nil {
			w.HourlyRate = *req.HourlyRate
		}
		if req.HiredAt != nil {
			w.HiredAt, _ = time.Parse("2006-01-02", *req.HiredAt)
		}
		if req.Phone != nil {
			w.Phone = req.Phone
		}
		if req.Address != nil {
			w.Address = req.Address
		}
		if req.Notes != nil {
			w.Notes = req.Notes
		}
		if req.IsActive != nil {
			w.IsActive = *req.IsActive
		}

		updated, err = s.workerRepo.Update(ctx, w)
		if err != nil {
			return fmt.Errorf("update worker: %w", err)
		}

		return s.cascadePeriods(ctx, actor.OrganizationID, updated, oldHiredAt, oldActive)
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return toWorkerResponse(updated, nil), nil
}

// cascadePeriods keeps the employment history consistent with the
// worker row. A hire-date change moves the matching period's start and
// wins over a simultaneous status change; otherwise a status flip closes
// the open period and, on reactivation, opens a new one from today.
func (s *WorkerServiceImpl) cascadePeriods(ctx context.Context, organizationID string, w worker.Worker, oldHiredAt time.Time, oldActive bool) error {
	today := dateOnly(s.now())

	switch {
	case !w.HiredAt.Equal(oldHiredAt):
		period, err := s.periodRepo.GetByStartDate(ctx, w.ID, organizationID, oldHiredAt)
		if errors.Is(err, worker.ErrPeriodNotFound) {
			period, err = s.periodRepo.GetEarliest(ctx, w.ID, organizationID)
		}
		if errors.Is(err, worker.ErrPeriodNotFound) {
			p := worker.EmploymentPeriod{
				ID:             uuid.New().String(),
				WorkerID:       w.ID,
				OrganizationID: organizationID,
				StartDate:      w.HiredAt,
			}
			if !w.IsActive {
				end := w.HiredAt
				p.EndDate = &end
			}
			_, err = s.periodRepo.Create(ctx, p)
			return err
		}
		if err != nil {
			return err
		}
		return s.periodRepo.UpdateStartDate(ctx, period.ID, organizationID, w.HiredAt)

	case w.IsActive != oldActive:
		if _, err := s.periodRepo.CloseOpenPeriods(ctx, w.ID, organizationID, today); err != nil {
			return err
		}
		if w.IsActive {
			start := today
			if w.HiredAt.After(start) {
				start = w.HiredAt
			}
			_, err := s.periodRepo.Create(ctx, worker.EmploymentPeriod{
				ID:             uuid.New().String(),
				WorkerID:       w.ID,
				OrganizationID: organizationID,
				StartDate:      start,
			})
			return err
		}
	}

	return nil
}

func (s *WorkerServiceImpl) Delete(ctx context.Context, actor user.Actor, id string) error {
	if !actor.IsOwner() {
		return user.ErrOwnerAccessRequired
	}
	if _, err := s.workerRepo.GetByID(ctx, id, actor.OrganizationID); err != nil {
		return err
	}
	return s.workerRepo.Delete(ctx, id, actor.OrganizationID)
}

func (s *WorkerServiceImpl) ListEmploymentPeriods(ctx context.Context, actor user.Actor, workerID string) ([]worker.EmploymentPeriodResponse, error) {
	if _, err := s.workerRepo.GetByID(ctx, workerID, actor.OrganizationID); err != nil {
		return nil, err
	}

	periods, err := s.periodRepo.ListByWorker(ctx, workerID, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	responses := make([]worker.EmploymentPeriodResponse, 0, len(periods))
	for _, p := range periods {
		resp := worker.EmploymentPeriodResponse{
			ID:        p.ID,
			WorkerID:  p.WorkerID,
			StartDate: p.StartDate.Format("2006-01-02"),
		}
		if p.EndDate != nil {
			end := p.EndDate.Format("2006-01-02")
			resp.EndDate = &end
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func toWorkerResponse(w worker.Worker, totalAdvances *decimal.Decimal) worker.WorkerResponse {
	resp := worker.WorkerResponse{
		ID:             w.ID,
		OrganizationID: w.OrganizationID,
		UserID:         w.UserID,
		FirstName:      w.FirstName,
		LastName:       w.LastName,
		HourlyRate:     w.HourlyRate,
		HiredAt:        w.HiredAt.Format("2006-01-02"),
		Phone:          w.Phone,
		Address:        w.Address,
		Notes:          w.Notes,
		IsActive:       w.IsActive,
	}
	if totalAdvances != nil {
		resp.TotalAdvances = totalAdvances
	}
	return resp
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
