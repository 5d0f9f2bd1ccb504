package timesheet

import (
	"github.com/crewbase/crewbase-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// CellStatus partitions the outcome of a cell write.
type CellStatus string

const (
	CellApplied   CellStatus = "APPLIED"
	CellUnchanged CellStatus = "UNCHANGED"
	CellLocked    CellStatus = "SKIPPED_LOCKED"
	CellForbidden CellStatus = "SKIPPED_FORBIDDEN"
)

type UpsertHoursRequest struct {
	WorkerID string          `json:"worker_id"`
	Date     string          `json:"date"` // "YYYY-MM-DD"
	Hours    decimal.Decimal `json:"hours"`
}

func (r *UpsertHoursRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkerID == "" {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkUpsertRequest struct {
	WorkerIDs []string        `json:"worker_ids"`
	Date      string          `json:"date"`
	Hours     decimal.Decimal `json:"hours"`
}

func (r *BulkUpsertRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.WorkerIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "worker_ids", Message: "must not be empty"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CellResult is the structured outcome of a single cell write. The
// overwrite warning is a first-class value: when a change replaces hours
// last written by a different account, PreviousAuthor names it and the
// write still goes through (last writer wins).
type CellResult struct {
	WorkerID string     `json:"worker_id"`
	Date     string     `json:"date"`
	Status   CellStatus `json:"status"`
	// Hours is the stored value after the operation; zero means the cell
	// no longer exists. On a locked rejection it echoes the prior stored
	// value so the caller can restore optimistic UI state.
	Hours         decimal.Decimal `json:"hours"`
	PreviousHours decimal.Decimal `json:"previous_hours"`
	// PreviousAuthor is set when this write overwrote a value recorded by
	// a different account.
	PreviousAuthor *string `json:"previous_author,omitempty"`
	// OnVacation warns that hours were recorded inside a planned vacation.
	OnVacation bool `json:"on_vacation,omitempty"`
}

// BulkResult aggregates per-worker outcomes; one worker's rejection never
// aborts the rest of the batch.
type BulkResult struct {
	Applied          int          `json:"applied"`
	SkippedUnchanged int          `json:"skipped_unchanged"`
	SkippedForbidden int          `json:"skipped_forbidden"`
	SkippedLocked    int          `json:"skipped_locked"`
	Cells            []CellResult `json:"cells"`
}

type AssignProjectRequest struct {
	ProjectID string   `json:"project_id"`
	WorkerIDs []string `json:"worker_ids"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
}

func (r *AssignProjectRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ProjectID == "" {
		errs = append(errs, validator.ValidationError{Field: "project_id", Message: "is required"})
	}
	if len(r.WorkerIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "worker_ids", Message: "must not be empty"})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must not be after end_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GridCell is one day's entry in the grid read model.
type GridCell struct {
	WorkerID  string          `json:"worker_id"`
	Day       int             `json:"day"`
	Hours     decimal.Decimal `json:"hours"`
	ProjectID *string         `json:"project_id,omitempty"`
	CreatedBy string          `json:"created_by"`
}

type GridWorker struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	UserID    *string `json:"user_id,omitempty"`
}

type GridResponse struct {
	Year    int          `json:"year"`
	Month   int          `json:"month"`
	Days    []int        `json:"days"`
	Workers []GridWorker `json:"workers"`
	Cells   []GridCell   `json:"cells"`
	// FutureDays lists days of the month after today; the presentation
	// layer renders them read-only.
	FutureDays []int `json:"future_days"`
}

type HistoryEntryResponse struct {
	ID        string          `json:"id"`
	WorkerID  string          `json:"worker_id"`
	Date      string          `json:"date"`
	OldHours  decimal.Decimal `json:"old_hours"`
	NewHours  decimal.Decimal `json:"new_hours"`
	ChangedBy string          `json:"changed_by"`
	CreatedAt string          `json:"created_at"`
}
