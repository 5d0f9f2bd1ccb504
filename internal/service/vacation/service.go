package vacation

import (
	"context"
	"fmt"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/domain/vacation"
	"github.com/crewbase/crewbase-backend-go/internal/domain/worker"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type VacationServiceImpl struct {
	tx           database.TxManager
	vacationRepo vacation.VacationRepository
	workerRepo   worker.WorkerRepository
}

func NewVacationService(
	tx database.TxManager,
	vacationRepo vacation.VacationRepository,
	workerRepo worker.WorkerRepository,
) vacation.VacationService {
	return &VacationServiceImpl{
		tx:           tx,
		vacationRepo: vacationRepo,
		workerRepo:   workerRepo,
	}
}

func (s *VacationServiceImpl) Create(ctx context.Context, actor user.Actor, req vacation.CreateVacationRequest) (vacation.VacationResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.VacationResponse{}, err
	}

	if _, err := s.workerRepo.GetByID(ctx, req.WorkerID, actor.OrganizationID); err != nil {
		return vacation.VacationResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	var created vacation.Vacation
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		overlapping, err := s.vacationRepo.ListOverlapping(ctx, req.WorkerID, actor.OrganizationID, start, end, "")
		if err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if len(overlapping) > 0 {
			return vacation.ErrVacationOverlap
		}

		created, err = s.vacationRepo.Create(ctx, vacation.Vacation{
			ID:             uuid.New().String(),
			OrganizationID: actor.OrganizationID,
			WorkerID:       req.WorkerID,
			StartDate:      start,
			EndDate:        end,
			Description:    req.Description,
		})
		return err
	})
	if err != nil {
		return vacation.VacationResponse{}, err
	}

	return toResponse(created), nil
}

func (s *VacationServiceImpl) Delete(ctx context.Context, actor user.Actor, id string) error {
	return s.vacationRepo.Delete(ctx, id, actor.OrganizationID)
}

func (s *VacationServiceImpl) ListByWorker(ctx context.Context, actor user.Actor, workerID string) ([]vacation.VacationResponse, error) {
	if _, err := s.workerRepo.GetByID(ctx, workerID, actor.OrganizationID); err != nil {
		return nil, err
	}

	vacations, err := s.vacationRepo.ListByWorker(ctx, workerID, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	responses := make([]vacation.VacationResponse, 0, len(vacations))
	for _, v := range vacations {
		responses = append(responses, toResponse(v))
	}
	return responses, nil
}

func toResponse(v vacation.Vacation) vacation.VacationResponse {
	return vacation.VacationResponse{
		ID:          v.ID,
		WorkerID:    v.WorkerID,
		StartDate:   v.StartDate.Format("2006-01-02"),
		EndDate:     v.EndDate.Format("2006-01-02"),
		Description: v.Description,
	}
}
