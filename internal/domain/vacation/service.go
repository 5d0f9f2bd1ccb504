package vacation

import (
	"context"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
)

type VacationService interface {
	// Create rejects with ErrVacationOverlap when the worker already has
	// a vacation intersecting the range.
	Create(ctx context.Context, actor user.Actor, req CreateVacationRequest) (VacationResponse, error)
	Delete(ctx context.Context, actor user.Actor, id string) error
	ListByWorker(ctx context.Context, actor user.Actor, workerID string) ([]VacationResponse, error)
}
