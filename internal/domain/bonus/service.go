package bonus

import (
	"context"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
)

// BonusService mutates the bonus registry. Both mutations re-check the
// closed-month condition inside the transaction that performs the write.
type BonusService interface {
	// Upsert requires the bonus date to fall inside (year, month) and the
	// month to have no CLOSED payroll.
	Upsert(ctx context.Context, actor user.Actor, year int, month int, req UpsertBonusDayRequest) (BonusDayResponse, error)
	Delete(ctx context.Context, actor user.Actor, year int, month int, id string) error
	ListForMonth(ctx context.Context, actor user.Actor, year int, month int) ([]BonusDayResponse, error)
}
