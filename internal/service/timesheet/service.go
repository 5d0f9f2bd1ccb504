package timesheet

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/payroll"
	"github.com/crewbase/crewbase-backend-go/internal/domain/project"
	"github.com/crewbase/crewbase-backend-go/internal/domain/timesheet"
	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/domain/vacation"
	"github.com/crewbase/crewbase-backend-go/internal/domain/worker"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TimesheetServiceImpl struct {
	tx           database.TxManager
	workerRepo   worker.WorkerRepository
	logRepo      timesheet.WorkLogRepository
	historyRepo  timesheet.HistoryRepository
	projectRepo  project.ProjectRepository
	payrollRepo  payroll.PayrollRepository
	vacationRepo vacation.VacationRepository
	now          func() time.Time
}

func NewTimesheetService(
	tx database.TxManager,
	workerRepo worker.WorkerRepository,
	logRepo timesheet.WorkLogRepository,
	historyRepo timesheet.HistoryRepository,
	projectRepo project.ProjectRepository,
	payrollRepo payroll.PayrollRepository,
	vacationRepo vacation.VacationRepository,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		tx:           tx,
		workerRepo:   workerRepo,
		logRepo:      logRepo,
		historyRepo:  historyRepo,
		projectRepo:  projectRepo,
		payrollRepo:  payrollRepo,
		vacationRepo: vacationRepo,
		now:          time.Now,
	}
}

var maxHours = decimal.NewFromInt(24)

// clampHours forces the stored value into [0, 24] with one fractional
// digit. Out-of-range input is clamped, not rejected.
func clampHours(h decimal.Decimal) decimal.Decimal {
	if h.IsNegative() {
		return decimal.Zero
	}
	if h.GreaterThan(maxHours) {
		return maxHours.Round(1)
	}
	return h.Round(1)
}

func (s *TimesheetServiceImpl) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// canEdit reports whether the actor may write this worker's cells. An
// owner edits anyone; a foreman edits unlinked workers and themselves.
func canEdit(actor user.Actor, w worker.Worker) bool {
	if actor.IsOwner() {
		return true
	}
	return w.UserID == nil || *w.UserID == actor.ID
}

func (s *TimesheetServiceImpl) UpsertHours(ctx context.Context, actor user.Actor, req timesheet.UpsertHoursRequest) (timesheet.CellResult, error) {
	if err := req.Validate(); err != nil {
		return timesheet.CellResult{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	if date.After(s.today()) {
		return timesheet.CellResult{}, timesheet.ErrFutureDate
	}

	w, err := s.workerRepo.GetByID(ctx, req.WorkerID, actor.OrganizationID)
	if err != nil {
		return timesheet.CellResult{}, err
	}
	if !canEdit(actor, w) {
		return timesheet.CellResult{WorkerID: w.ID, Date: req.Date, Status: timesheet.CellForbidden}, timesheet.ErrForbidden
	}

	hours := clampHours(req.Hours)

	var result timesheet.CellResult
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var txErr error
		result, txErr = s.applyCell(ctx, actor, w, date, hours)
		return txErr
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

// applyCell runs the single-cell rule. It must be called inside the
// writing transaction so the closed-month check and the write see the
// same state.
func (s *TimesheetServiceImpl) applyCell(ctx context.Context, actor user.Actor, w worker.Worker, date time.Time, hours decimal.Decimal) (timesheet.CellResult, error) {
	result := timesheet.CellResult{
		WorkerID: w.ID,
		Date:     date.Format("2006-01-02"),
	}

	existing, err := s.logRepo.Get(ctx, w.ID, actor.OrganizationID, date)
	hasExisting := err == nil
	if err != nil && !errors.Is(err, timesheet.ErrWorkLogNotFound) {
		return result, err
	}

	oldHours := decimal.Zero
	if hasExisting {
		oldHours = existing.Hours
	}
	result.PreviousHours = oldHours

	closed, err := s.payrollRepo.HasClosed(ctx, w.ID, actor.OrganizationID, date.Year(), int(date.Month()))
	if err != nil {
		return result, fmt.Errorf("check closed payroll: %w", err)
	}
	if closed {
		result.Status = timesheet.CellLocked
		result.Hours = oldHours
		return result, timesheet.ErrPayrollLocked
	}

	if oldHours.Equal(hours) {
		result.Status = timesheet.CellUnchanged
		result.Hours = oldHours
		return result, nil
	}

	if hasExisting {
		if _, err := s.historyRepo.Create(ctx, timesheet.TimesheetHistory{
			ID:             uuid.New().String(),
			OrganizationID: actor.OrganizationID,
			WorkerID:       w.ID,
			Date:           date,
			OldHours:       oldHours,
			NewHours:       hours,
			ChangedBy:      actor.ID,
		}); err != nil {
			return result, fmt.Errorf("append history: %w", err)
		}
		if existing.CreatedBy != actor.ID {
			author := existing.CreatedBy
			result.PreviousAuthor = &author
		}
	}

	if hours.IsPositive() {
		projectID := s.resolveProjectID(ctx, actor.OrganizationID, existing, hasExisting)
		if _, err := s.logRepo.Upsert(ctx, timesheet.WorkLog{
			ID:             uuid.New().String(),
			OrganizationID: actor.OrganizationID,
			WorkerID:       w.ID,
			ProjectID:      projectID,
			Date:           date,
			Hours:          hours,
			CreatedBy:      actor.ID,
		}); err != nil {
			return result, fmt.Errorf("upsert work log: %w", err)
		}

		onVacation, err := s.vacationRepo.WorkerIDsOnDate(ctx, actor.OrganizationID, []string{w.ID}, date)
		if err != nil {
			return result, fmt.Errorf("check vacations: %w", err)
		}
		result.OnVacation = onVacation[w.ID]
	} else {
		if err := s.logRepo.Delete(ctx, w.ID, actor.OrganizationID, date); err != nil {
			return result, fmt.Errorf("delete work log: %w", err)
		}
	}

	result.Status = timesheet.CellApplied
	result.Hours = hours
	return result, nil
}

// resolveProjectID keeps an existing cell's project and falls back to the
// organization default for new cells.
func (s *TimesheetServiceImpl) resolveProjectID(ctx context.Context, organizationID string, existing timesheet.WorkLog, hasExisting bool) *string {
	if hasExisting {
		return existing.ProjectID
	}
	def, err := s.projectRepo.GetDefault(ctx, organizationID)
	if err != nil {
		return nil
	}
	id := def.ID
	return &id
}

func (s *TimesheetServiceImpl) BulkUpsert(ctx context.Context, actor user.Actor, req timesheet.BulkUpsertRequest) (timesheet.BulkResult, error) {
	if err := req.Validate(); err != nil {
		return timesheet.BulkResult{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	if date.After(s.today()) {
		return timesheet.BulkResult{}, timesheet.ErrFutureDate
	}

	hours := clampHours(req.Hours)
	dateStr := date.Format("2006-01-02")

	var result timesheet.BulkResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		closedIDs, err := s.payrollRepo.ClosedWorkerIDs(ctx, actor.OrganizationID, date.Year(), int(date.Month()), req.WorkerIDs)
		if err != nil {
			return fmt.Errorf("check closed payrolls: %w", err)
		}

		for _, workerID := range req.WorkerIDs {
			cell := timesheet.CellResult{WorkerID: workerID, Date: dateStr}

			w, err := s.workerRepo.GetByID(ctx, workerID, actor.OrganizationID)
			if err != nil || !canEdit(actor, w) {
				cell.Status = timesheet.CellForbidden
				result.SkippedForbidden++
				result.Cells = append(result.Cells, cell)
				continue
			}

			if closedIDs[workerID] {
				cell.Status = timesheet.CellLocked
				if existing, err := s.logRepo.Get(ctx, workerID, actor.OrganizationID, date); err == nil {
					cell.Hours = existing.Hours
					cell.PreviousHours = existing.Hours
				}
				result.SkippedLocked++
				result.Cells = append(result.Cells, cell)
				continue
			}

			cell, err = s.applyCell(ctx, actor, w, date, hours)
			if err != nil {
				return err
			}
			switch cell.Status {
			case timesheet.CellApplied:
				result.Applied++
			case timesheet.CellUnchanged:
				result.SkippedUnchanged++
			}
			result.Cells = append(result.Cells, cell)
		}
		return nil
	})
	if err != nil {
		return timesheet.BulkResult{}, err
	}
	return result, nil
}

func (s *TimesheetServiceImpl) GetGrid(ctx context.Context, actor user.Actor, year int, month int) (timesheet.GridResponse, error) {
	workers, err := s.workerRepo.GetByOrganizationID(ctx, actor.OrganizationID, true)
	if err != nil {
		return timesheet.GridResponse{}, err
	}

	visible := make([]worker.Worker, 0, len(workers))
	for _, w := range workers {
		if canEdit(actor, w) {
			visible = append(visible, w)
		}
	}
	// The actor's own row sorts first.
	sort.SliceStable(visible, func(i, j int) bool {
		return isOwnWorker(actor, visible[i]) && !isOwnWorker(actor, visible[j])
	})

	logs, err := s.logRepo.ListForMonth(ctx, actor.OrganizationID, year, month)
	if err != nil {
		return timesheet.GridResponse{}, err
	}

	visibleIDs := make(map[string]bool, len(visible))
	gridWorkers := make([]timesheet.GridWorker, 0, len(visible))
	for _, w := range visible {
		visibleIDs[w.ID] = true
		gridWorkers = append(gridWorkers, timesheet.GridWorker{
			ID:        w.ID,
			FirstName: w.FirstName,
			LastName:  w.LastName,
			UserID:    w.UserID,
		})
	}

	cells := make([]timesheet.GridCell, 0, len(logs))
	for _, l := range logs {
		if !visibleIDs[l.WorkerID] {
			continue
		}
		cells = append(cells, timesheet.GridCell{
			WorkerID:  l.WorkerID,
			Day:       l.Date.Day(),
			Hours:     l.Hours,
			ProjectID: l.ProjectID,
			CreatedBy: l.CreatedBy,
		})
	}

	lastDay := daysInMonth(year, month)
	days := make([]int, 0, lastDay)
	for d := 1; d <= lastDay; d++ {
		days = append(days, d)
	}

	return timesheet.GridResponse{
		Year:       year,
		Month:      month,
		Days:       days,
		Workers:    gridWorkers,
		Cells:      cells,
		FutureDays: s.futureDays(year, month, lastDay),
	}, nil
}

func isOwnWorker(actor user.Actor, w worker.Worker) bool {
	return w.UserID != nil && *w.UserID == actor.ID
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (s *TimesheetServiceImpl) futureDays(year, month, lastDay int) []int {
	today := s.today()
	out := []int{}
	for d := 1; d <= lastDay; d++ {
		if time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC).After(today) {
			out = append(out, d)
		}
	}
	return out
}

func (s *TimesheetServiceImpl) ListHistory(ctx context.Context, actor user.Actor, workerID string) ([]timesheet.HistoryEntryResponse, error) {
	if _, err := s.workerRepo.GetByID(ctx, workerID, actor.OrganizationID); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.ListByWorker(ctx, workerID, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	responses := make([]timesheet.HistoryEntryResponse, 0, len(entries))
	for _, h := range entries {
		responses = append(responses, timesheet.HistoryEntryResponse{
			ID:        h.ID,
			WorkerID:  h.WorkerID,
			Date:      h.Date.Format("2006-01-02"),
			OldHours:  h.OldHours,
			NewHours:  h.NewHours,
			ChangedBy: h.ChangedBy,
			CreatedAt: h.CreatedAt.Format(time.RFC3339),
		})
	}
	return responses, nil
}

func (s *TimesheetServiceImpl) AssignProject(ctx context.Context, actor user.Actor, req timesheet.AssignProjectRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID, actor.OrganizationID); err != nil {
		return 0, err
	}

	from, _ := time.Parse("2006-01-02", req.StartDate)
	to, _ := time.Parse("2006-01-02", req.EndDate)

	var updated int64
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = s.logRepo.AssignProject(ctx, actor.OrganizationID, req.ProjectID, req.WorkerIDs, from, to)
		return txErr
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
