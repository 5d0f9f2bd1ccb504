package timesheet

import (
	"context"
	"testing"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/payroll"
	"github.com/crewbase/crewbase-backend-go/internal/domain/project"
	"github.com/crewbase/crewbase-backend-go/internal/domain/timesheet"
	"github.com/crewbase/crewbase-backend-go/internal/domain/user"
	"github.com/crewbase/crewbase-backend-go/internal/domain/vacation"
	"github.com/crewbase/crewbase-backend-go/internal/domain/worker"
	"github.com/crewbase/crewbase-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orgID = "org-1"

var owner = user.Actor{ID: "user-owner", Role: user.RoleOwner, OrganizationID: orgID}

type fixture struct {
	svc       *TimesheetServiceImpl
	workers   *servicetest.WorkerRepo
	logs      *servicetest.WorkLogRepo
	history   *servicetest.HistoryRepo
	projects  *servicetest.ProjectRepo
	payrolls  *servicetest.PayrollRepo
	vacations *servicetest.VacationRepo
}

func newFixture() *fixture {
	workers := servicetest.NewWorkerRepo()
	logs := servicetest.NewWorkLogRepo()
	history := servicetest.NewHistoryRepo()
	projects := servicetest.NewProjectRepo()
	wallets := servicetest.NewWalletRepo()
	payrolls := servicetest.NewPayrollRepo(workers, logs, wallets)
	vacations := servicetest.NewVacationRepo()

	svc := &TimesheetServiceImpl{
		tx:           servicetest.Tx{},
		workerRepo:   workers,
		logRepo:      logs,
		historyRepo:  history,
		projectRepo:  projects,
		payrollRepo:  payrolls,
		vacationRepo: vacations,
		now:          func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) },
	}
	return &fixture{svc: svc, workers: workers, logs: logs, history: history, projects: projects, payrolls: payrolls, vacations: vacations}
}

func (f *fixture) addWorker(id string, userID *string) worker.Worker {
	w := worker.Worker{
		ID:             id,
		OrganizationID: orgID,
		UserID:         userID,
		FirstName:      "Jan",
		LastName:       "Kowalski",
		HourlyRate:     30,
		HiredAt:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
	}
	f.workers.Workers[id] = w
	return w
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func upsert(t *testing.T, f *fixture, actor user.Actor, workerID, date, hours string) timesheet.CellResult {
	t.Helper()
	res, err := f.svc.UpsertHours(context.Background(), actor, timesheet.UpsertHoursRequest{
		WorkerID: workerID, Date: date, Hours: dec(hours),
	})
	require.NoError(t, err)
	return res
}

func TestUpsertHours_CreatesCell(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)

	res := upsert(t, f, owner, "w1", "2026-03-10", "8")

	assert.Equal(t, timesheet.CellApplied, res.Status)
	assert.True(t, res.Hours.Equal(dec("8")))
	assert.True(t, res.PreviousHours.IsZero())
	assert.Nil(t, res.PreviousAuthor)
	assert.Empty(t, f.history.Entries, "creating a new cell writes no history")
}

func TestUpsertHours_NewCellGetsDefaultProject(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)
	f.projects.Projects["p1"] = project.Project{ID: "p1", OrganizationID: orgID, Name: "Base", IsDefault: true}

	upsert(t, f, owner, "w1", "2026-03-10", "8")

	log, err := f.logs.Get(context.Background(), "w1", orgID, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, log.ProjectID)
	assert.Equal(t, "p1", *log.ProjectID)
}

func TestUpsertHours_FutureDateRejected(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)

	_, err := f.svc.UpsertHours(context.Background(), owner, timesheet.UpsertHoursRequest{
		WorkerID: "w1", Date: "2026-03-16", Hours: dec("8"),
	})
	assert.ErrorIs(t, err, timesheet.ErrFutureDate)
}

func TestUpsertHours_SameValueIsNoOp(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)
	upsert(t, f, owner, "w1", "2026-03-10", "8")

	res := upsert(t, f, owner, "w1", "2026-03-10", "8")

	assert.Equal(t, timesheet.CellUnchanged, res.Status)
	assert.Empty(t, f.history.Entries)
}

func TestUpsertHours_OverwriteRecordsHistoryAndNamesAuthor(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)
	foreman := user.Actor{ID: "user-f", Role: user.RoleForeman, OrganizationID: orgID}
	upsert(t, f, foreman, "w1", "2026-03-10", "8")

	res := upsert(t, f, owner, "w1", "2026-03-10", "6")

	assert.Equal(t, timesheet.CellApplied, res.Status)
	assert.True(t, res.Hours.Equal(dec("6")))
	assert.True(t, res.PreviousHours.Equal(dec("8")))
	require.NotNil(t, res.PreviousAuthor)
	assert.Equal(t, "user-f", *res.PreviousAuthor)

	require.Len(t, f.history.Entries, 1)
	h := f.history.Entries[0]
	assert.True(t, h.OldHours.Equal(dec("8")))
	assert.True(t, h.NewHours.Equal(dec("6")))
	assert.Equal(t, owner.ID, h.ChangedBy)
}

func TestUpsertHours_OverwriteBySameAuthorCarriesNoWarning(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)
	upsert(t, f, owner, "w1", "2026-03-10", "8")

	res := upsert(t, f, owner, "w1", "2026-03-10", "6")

	assert.Equal(t, timesheet.CellApplied, res.Status)
	assert.Nil(t, res.PreviousAuthor)
	assert.Len(t, f.history.Entries, 1)
}

func TestUpsertHours_ZeroDeletesCell(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)
	upsert(t, f, owner, "w1", "2026-03-10", "8")

	res := upsert(t, f, owner, "w1", "2026-03-10", "0")

	assert.Equal(t, timesheet.CellApplied, res.Status)
	assert.True(t, res.Hours.IsZero())

	_, err := f.logs.Get(context.Background(), "w1", orgID, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, timesheet.ErrWorkLogNotFound)
	require.Len(t, f.history.Entries, 1)
	assert.True(t, f.history.Entries[0].NewHours.IsZero())
}

func TestUpsertHours_ZeroOnAbsentCellIsNoOp(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)

	res := upsert(t, f, owner, "w1", "2026-03-10", "0")

	assert.Equal(t, timesheet.CellUnchanged, res.Status)
	assert.Empty(t, f.history.Entries)
}

func TestUpsertHours_ClampsAndRounds(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)

	res := upsert(t, f, owner, "w1", "2026-03-10", "30")
	assert.True(t, res.Hours.Equal(dec("24")), "got %s", res.Hours)

	res = upsert(t, f, owner, "w1", "2026-03-11", "8.25")
	assert.True(t, res.Hours.Equal(dec("8.3")), "got %s", res.Hours)

	// Negative input clamps to zero, which deletes the cell.
	res = upsert(t, f, owner, "w1", "2026-03-10", "-5")
	assert.Equal(t, timesheet.CellApplied, res.Status)
	assert.True(t, res.Hours.IsZero())
}

func TestUpsertHours_ClosedMonthLocksCell(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)
	upsert(t, f, owner, "w1", "2026-03-10", "8")

	f.payrolls.Payrolls["x"] = payroll.Payroll{
		ID: "pr1", OrganizationID: orgID, WorkerID: "w1",
		Year: 2026, Month: 3, Status: payroll.StatusClosed,
	}

	res, err := f.svc.UpsertHours(context.Background(), owner, timesheet.UpsertHoursRequest{
		WorkerID: "w1", Date: "2026-03-10", Hours: dec("6"),
	})
	assert.ErrorIs(t, err, timesheet.ErrPayrollLocked)
	assert.Equal(t, timesheet.CellLocked, res.Status)
	assert.True(t, res.Hours.Equal(dec("8")), "locked rejection echoes the stored value")

	stored, getErr := f.logs.Get(context.Background(), "w1", orgID, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, getErr)
	assert.True(t, stored.Hours.Equal(dec("8")))
	assert.Empty(t, f.history.Entries)
}

func TestUpsertHours_ReopenUnlocksCell(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)
	f.payrolls.Payrolls["x"] = payroll.Payroll{
		ID: "pr1", OrganizationID: orgID, WorkerID: "w1",
		Year: 2026, Month: 3, Status: payroll.StatusClosed,
	}

	_, err := f.svc.UpsertHours(context.Background(), owner, timesheet.UpsertHoursRequest{
		WorkerID: "w1", Date: "2026-03-10", Hours: dec("6"),
	})
	require.ErrorIs(t, err, timesheet.ErrPayrollLocked)

	p := f.payrolls.Payrolls["x"]
	p.Status = payroll.StatusDraft
	f.payrolls.Payrolls["x"] = p

	res := upsert(t, f, owner, "w1", "2026-03-10", "6")
	assert.Equal(t, timesheet.CellApplied, res.Status)
}

func TestUpsertHours_ForemanCannotEditLinkedWorker(t *testing.T) {
	f := newFixture()
	otherUser := "user-other"
	f.addWorker("w1", &otherUser)
	foreman := user.Actor{ID: "user-f", Role: user.RoleForeman, OrganizationID: orgID}

	res, err := f.svc.UpsertHours(context.Background(), foreman, timesheet.UpsertHoursRequest{
		WorkerID: "w1", Date: "2026-03-10", Hours: dec("8"),
	})
	assert.ErrorIs(t, err, timesheet.ErrForbidden)
	assert.Equal(t, timesheet.CellForbidden, res.Status)
}

func TestUpsertHours_VacationWarning(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)
	f.vacations.Vacations = append(f.vacations.Vacations, vacation.Vacation{
		ID: "v1", OrganizationID: orgID, WorkerID: "w1",
		StartDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	})

	res := upsert(t, f, owner, "w1", "2026-03-10", "8")
	assert.Equal(t, timesheet.CellApplied, res.Status)
	assert.True(t, res.OnVacation)
}

func TestBulkUpsert_PartitionsOutcomes(t *testing.T) {
	f := newFixture()
	foremanUser := "user-f"
	foreman := user.Actor{ID: foremanUser, Role: user.RoleForeman, OrganizationID: orgID}

	f.addWorker("w-plain", nil)
	f.addWorker("w-own", &foremanUser)
	otherUser := "user-other"
	f.addWorker("w-linked", &otherUser)
	f.addWorker("w-closed", nil)
	f.addWorker("w-same", nil)

	upsert(t, f, owner, "w-same", "2026-03-10", "8")
	f.payrolls.Payrolls["x"] = payroll.Payroll{
		ID: "pr1", OrganizationID: orgID, WorkerID: "w-closed",
		Year: 2026, Month: 3, Status: payroll.StatusClosed,
	}

	res, err := f.svc.BulkUpsert(context.Background(), foreman, timesheet.BulkUpsertRequest{
		WorkerIDs: []string{"w-plain", "w-own", "w-linked", "w-closed", "w-same"},
		Date:      "2026-03-10",
		Hours:     dec("8"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, 1, res.SkippedUnchanged)
	assert.Equal(t, 1, res.SkippedForbidden)
	assert.Equal(t, 1, res.SkippedLocked)
	require.Len(t, res.Cells, 5)

	statuses := make(map[string]timesheet.CellStatus, len(res.Cells))
	for _, c := range res.Cells {
		statuses[c.WorkerID] = c.Status
	}
	assert.Equal(t, timesheet.CellApplied, statuses["w-plain"])
	assert.Equal(t, timesheet.CellApplied, statuses["w-own"])
	assert.Equal(t, timesheet.CellForbidden, statuses["w-linked"])
	assert.Equal(t, timesheet.CellLocked, statuses["w-closed"])
	assert.Equal(t, timesheet.CellUnchanged, statuses["w-same"])
}

func TestBulkUpsert_OverwriteNamesPreviousAuthorPerCell(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)
	f.addWorker("w2", nil)
	foreman := user.Actor{ID: "user-f", Role: user.RoleForeman, OrganizationID: orgID}
	upsert(t, f, foreman, "w1", "2026-03-10", "6")

	res, err := f.svc.BulkUpsert(context.Background(), owner, timesheet.BulkUpsertRequest{
		WorkerIDs: []string{"w1", "w2"},
		Date:      "2026-03-10",
		Hours:     dec("8"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)

	for _, c := range res.Cells {
		if c.WorkerID == "w1" {
			require.NotNil(t, c.PreviousAuthor)
			assert.Equal(t, "user-f", *c.PreviousAuthor)
		} else {
			assert.Nil(t, c.PreviousAuthor)
		}
	}
	assert.Len(t, f.history.Entries, 1, "only the overwritten cell gets history")
}

func TestGetGrid_ForemanSeesUnlinkedAndOwnWorkers(t *testing.T) {
	f := newFixture()
	foremanUser := "user-f"
	f.addWorker("w-plain", nil)
	f.addWorker("w-own", &foremanUser)
	otherUser := "user-other"
	f.addWorker("w-linked", &otherUser)

	foreman := user.Actor{ID: foremanUser, Role: user.RoleForeman, OrganizationID: orgID, WorkerID: strPtr("w-own")}
	grid, err := f.svc.GetGrid(context.Background(), foreman, 2026, 3)
	require.NoError(t, err)

	require.Len(t, grid.Workers, 2)
	assert.Equal(t, "w-own", grid.Workers[0].ID, "own row sorts first")
	assert.Equal(t, 31, len(grid.Days))
	assert.Equal(t, 16, len(grid.FutureDays), "March 16-31 lie after the fixed clock")
}

func TestListHistory_NewestFirst(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)
	upsert(t, f, owner, "w1", "2026-03-10", "8")
	upsert(t, f, owner, "w1", "2026-03-10", "6")
	upsert(t, f, owner, "w1", "2026-03-10", "4")

	entries, err := f.svc.ListHistory(context.Background(), owner, "w1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].NewHours.Equal(dec("4")))
	assert.True(t, entries[1].NewHours.Equal(dec("6")))
}

func TestAssignProject_OnlyTouchesCellsInRange(t *testing.T) {
	f := newFixture()
	f.addWorker("w1", nil)
	f.projects.Projects["p1"] = project.Project{ID: "p1", OrganizationID: orgID, Name: "Site A"}
	upsert(t, f, owner, "w1", "2026-03-05", "8")
	upsert(t, f, owner, "w1", "2026-03-10", "8")

	n, err := f.svc.AssignProject(context.Background(), owner, timesheet.AssignProjectRequest{
		ProjectID: "p1",
		WorkerIDs: []string{"w1"},
		StartDate: "2026-03-08",
		EndDate:   "2026-03-12",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	log, _ := f.logs.Get(context.Background(), "w1", orgID, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, log.ProjectID)
	assert.Equal(t, "p1", *log.ProjectID)
}

func strPtr(s string) *string { return &s }
