package payroll

import (
	"context"

	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
)

// PayrollService computes and gates monthly pay. Generate, Close and
// Reopen each run as one atomic transaction; a failure partway rolls back
// every write of the invocation.
type PayrollService interface {
	// Generate creates or recomputes DRAFT rows for every worker with
	// hours or advances in the month. CLOSED rows are skipped, not
	// failed. Repeated calls with unchanged inputs produce identical
	// rows.
	Generate(ctx context.Context, actor user.Actor, year int, month int) (GenerateResult, error)
	// Close transitions every DRAFT row of the month to CLOSED and
	// returns how many it closed.
	Close(ctx context.Context, actor user.Actor, year int, month int) (int64, error)
	// Reopen transitions every CLOSED row back to DRAFT, lifting the edit
	// gate without recomputing anything.
	Reopen(ctx context.Context, actor user.Actor, year int, month int) (int64, error)
	ListForMonth(ctx context.Context, actor user.Actor, year int, month int) (MonthResponse, error)
	// ListClosed feeds the export collaborator; it fails with
	// ErrNoClosedPayrolls when the month has nothing closed.
	ListClosed(ctx context.Context, actor user.Actor, year int, month int) ([]PayrollResponse, error)
}
