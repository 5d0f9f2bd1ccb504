package worker

import (
	"context"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
)

// WorkerService orchestrates worker writes together with the employment
// period cascade; both happen inside one transaction per call.
type WorkerService interface {
	Create(ctx context.Context, actor user.Actor, req CreateWorkerRequest) (WorkerResponse, error)
	Get(ctx context.Context, actor user.Actor, id string) (WorkerResponse, error)
	List(ctx context.Context, actor user.Actor, activeOnly bool) ([]WorkerResponse, error)
	Update(ctx context.Context, actor user.Actor, req UpdateWorkerRequest) (WorkerResponse, error)
	Delete(ctx context.Context, actor user.Actor, id string) error
	ListEmploymentPeriods(ctx context.Context, actor user.Actor, workerID string) ([]EmploymentPeriodResponse, error)
}
