// Package servicetest provides in-memory repository implementations and a
// pass-through transaction manager for service tests.
package servicetest

import (
	"context"
	"sort"
	"time"

	"github.com/crewbase/crewbase-backend-go/internal/domain/bonus"
	"github.com/crewbase/crewbase-backend-go/internal/domain/payroll"
	"github.com/crewbase/crewbase-backend-go/internal/domain/project"
	"github.com/crewbase/crewbase-backend-go/internal/domain/timesheet"
	"github.com/crewbase/crewbase-backend-go/internal/domain/vacation"
	"github.com/crewbase/crewbase-backend-go/internal/domain/wallet"
	"github.com/crewbase/crewbase-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

// Tx satisfies database.TxManager without a database. Everything the
// callback writes lands in the fakes immediately, which is the behavior
// the services observe inside a real committed transaction.
type Tx struct{}

func (Tx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ---- workers ----

type WorkerRepo struct {
	Workers map[string]worker.Worker
}

func NewWorkerRepo() *WorkerRepo {
	return &WorkerRepo{Workers: make(map[string]worker.Worker)}
}

func (r *WorkerRepo) Create(_ context.Context, w worker.Worker) (worker.Worker, error) {
	r.Workers[w.ID] = w
	return w, nil
}

func (r *WorkerRepo) GetByID(_ context.Context, id, organizationID string) (worker.Worker, error) {
	w, ok := r.Workers[id]
	if !ok || w.OrganizationID != organizationID {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (r *WorkerRepo) GetByOrganizationID(_ context.Context, organizationID string, activeOnly bool) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range r.Workers {
		if w.OrganizationID != organizationID {
			continue
		}
		if activeOnly && !w.IsActive {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

func (r *WorkerRepo) Update(_ context.Context, w worker.Worker) (worker.Worker, error) {
	existing, ok := r.Workers[w.ID]
	if !ok || existing.OrganizationID != w.OrganizationID {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	r.Workers[w.ID] = w
	return w, nil
}

func (r *WorkerRepo) Delete(_ context.Context, id, organizationID string) error {
	w, ok := r.Workers[id]
	if !ok || w.OrganizationID != organizationID {
		return worker.ErrWorkerNotFound
	}
	delete(r.Workers, id)
	return nil
}

// ---- employment periods ----

type PeriodRepo struct {
	Periods []worker.EmploymentPeriod
}

func NewPeriodRepo() *PeriodRepo {
	return &PeriodRepo{}
}

func (r *PeriodRepo) Create(_ context.Context, p worker.EmploymentPeriod) (worker.EmploymentPeriod, error) {
	r.Periods = append(r.Periods, p)
	return p, nil
}

func (r *PeriodRepo) ListByWorker(_ context.Context, workerID, organizationID string) ([]worker.EmploymentPeriod, error) {
	var out []worker.EmploymentPeriod
	for _, p := range r.Periods {
		if p.WorkerID == workerID && p.OrganizationID == organizationID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *PeriodRepo) GetByStartDate(_ context.Context, workerID, organizationID string, start time.Time) (worker.EmploymentPeriod, error) {
	for _, p := range r.Periods {
		if p.WorkerID == workerID && p.OrganizationID == organizationID && p.StartDate.Equal(start) {
			return p, nil
		}
	}
	return worker.EmploymentPeriod{}, worker.ErrPeriodNotFound
}

func (r *PeriodRepo) GetEarliest(ctx context.Context, workerID, organizationID string) (worker.EmploymentPeriod, error) {
	all, _ := r.ListByWorker(ctx, workerID, organizationID)
	if len(all) == 0 {
		return worker.EmploymentPeriod{}, worker.ErrPeriodNotFound
	}
	return all[0], nil
}

func (r *PeriodRepo) UpdateStartDate(_ context.Context, id, organizationID string, start time.Time) error {
	for i, p := range r.Periods {
		if p.ID == id && p.OrganizationID == organizationID {
			r.Periods[i].StartDate = start
			return nil
		}
	}
	return worker.ErrPeriodNotFound
}

func (r *PeriodRepo) CloseOpenPeriods(_ context.Context, workerID, organizationID string, end time.Time) (int64, error) {
	var n int64
	for i, p := range r.Periods {
		if p.WorkerID == workerID && p.OrganizationID == organizationID && p.EndDate == nil {
			e := end
			r.Periods[i].EndDate = &e
			n++
		}
	}
	return n, nil
}

// ---- projects ----

type ProjectRepo struct {
	Projects map[string]project.Project
}

func NewProjectRepo() *ProjectRepo {
	return &ProjectRepo{Projects: make(map[string]project.Project)}
}

func (r *ProjectRepo) Create(_ context.Context, p project.Project) (project.Project, error) {
	r.Projects[p.ID] = p
	return p, nil
}

func (r *ProjectRepo) GetByID(_ context.Context, id, organizationID string) (project.Project, error) {
	p, ok := r.Projects[id]
	if !ok || p.OrganizationID != organizationID {
		return project.Project{}, project.ErrProjectNotFound
	}
	return p, nil
}

func (r *ProjectRepo) GetDefault(_ context.Context, organizationID string) (project.Project, error) {
	for _, p := range r.Projects {
		if p.OrganizationID == organizationID && p.IsDefault {
			return p, nil
		}
	}
	return project.Project{}, project.ErrProjectNotFound
}

func (r *ProjectRepo) GetByOrganizationID(_ context.Context, organizationID string) ([]project.Project, error) {
	var out []project.Project
	for _, p := range r.Projects {
		if p.OrganizationID == organizationID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProjectRepo) Update(_ context.Context, p project.Project) (project.Project, error) {
	existing, ok := r.Projects[p.ID]
	if !ok || existing.OrganizationID != p.OrganizationID {
		return project.Project{}, project.ErrProjectNotFound
	}
	r.Projects[p.ID] = p
	return p, nil
}

// ---- work logs ----

type WorkLogRepo struct {
	// Logs is keyed by organizationID + workerID + date.
	Logs map[string]timesheet.WorkLog
}

func NewWorkLogRepo() *WorkLogRepo {
	return &WorkLogRepo{Logs: make(map[string]timesheet.WorkLog)}
}

func logKey(organizationID, workerID string, date time.Time) string {
	return organizationID + "|" + workerID + "|" + dateKey(date)
}

func (r *WorkLogRepo) Get(_ context.Context, workerID, organizationID string, date time.Time) (timesheet.WorkLog, error) {
	l, ok := r.Logs[logKey(organizationID, workerID, date)]
	if !ok {
		return timesheet.WorkLog{}, timesheet.ErrWorkLogNotFound
	}
	return l, nil
}

func (r *WorkLogRepo) Upsert(_ context.Context, log timesheet.WorkLog) (timesheet.WorkLog, error) {
	key := logKey(log.OrganizationID, log.WorkerID, log.Date)
	if existing, ok := r.Logs[key]; ok {
		log.ID = existing.ID
		log.CreatedAt = existing.CreatedAt
	}
	r.Logs[key] = log
	return log, nil
}

func (r *WorkLogRepo) Delete(_ context.Context, workerID, organizationID string, date time.Time) error {
	delete(r.Logs, logKey(organizationID, workerID, date))
	return nil
}

func (r *WorkLogRepo) ListForMonth(_ context.Context, organizationID string, year, month int) ([]timesheet.WorkLog, error) {
	var out []timesheet.WorkLog
	for _, l := range r.Logs {
		if l.OrganizationID == organizationID && l.Date.Year() == year && int(l.Date.Month()) == month {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *WorkLogRepo) ListForWorkersOnDate(_ context.Context, organizationID string, workerIDs []string, date time.Time) ([]timesheet.WorkLog, error) {
	ids := make(map[string]bool, len(workerIDs))
	for _, id := range workerIDs {
		ids[id] = true
	}
	var out []timesheet.WorkLog
	for _, l := range r.Logs {
		if l.OrganizationID == organizationID && ids[l.WorkerID] && sameDate(l.Date, date) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *WorkLogRepo) AssignProject(_ context.Context, organizationID, projectID string, workerIDs []string, from, to time.Time) (int64, error) {
	ids := make(map[string]bool, len(workerIDs))
	for _, id := range workerIDs {
		ids[id] = true
	}
	var n int64
	for key, l := range r.Logs {
		if l.OrganizationID != organizationID || !ids[l.WorkerID] {
			continue
		}
		if l.Date.Before(from) || l.Date.After(to) {
			continue
		}
		if !l.Hours.IsPositive() {
			continue
		}
		pid := projectID
		l.ProjectID = &pid
		r.Logs[key] = l
		n++
	}
	return n, nil
}

func sameDate(a, b time.Time) bool {
	return dateKey(a) == dateKey(b)
}

// ---- timesheet history ----

type HistoryRepo struct {
	Entries []timesheet.TimesheetHistory
}

func NewHistoryRepo() *HistoryRepo {
	return &HistoryRepo{}
}

func (r *HistoryRepo) Create(_ context.Context, h timesheet.TimesheetHistory) (timesheet.TimesheetHistory, error) {
	r.Entries = append(r.Entries, h)
	return h, nil
}

func (r *HistoryRepo) ListByWorker(_ context.Context, workerID, organizationID string) ([]timesheet.TimesheetHistory, error) {
	var out []timesheet.TimesheetHistory
	for i := len(r.Entries) - 1; i >= 0; i-- {
		h := r.Entries[i]
		if h.WorkerID == workerID && h.OrganizationID == organizationID {
			out = append(out, h)
		}
	}
	return out, nil
}

// ---- bonus days ----

type BonusRepo struct {
	Bonuses map[string]bonus.BonusDay
	// Logs backs TotalsForWorkersInMonth, which needs to know which
	// workers had positive hours on a bonus date.
	Logs *WorkLogRepo
}

func NewBonusRepo(logs *WorkLogRepo) *BonusRepo {
	return &BonusRepo{Bonuses: make(map[string]bonus.BonusDay), Logs: logs}
}

func bonusKey(organizationID string, date time.Time) string {
	return organizationID + "|" + dateKey(date)
}

func (r *BonusRepo) Upsert(_ context.Context, b bonus.BonusDay) (bonus.BonusDay, error) {
	key := bonusKey(b.OrganizationID, b.Date)
	if existing, ok := r.Bonuses[key]; ok {
		b.ID = existing.ID
	}
	r.Bonuses[key] = b
	return b, nil
}

func (r *BonusRepo) Delete(_ context.Context, id, organizationID string) error {
	for key, b := range r.Bonuses {
		if b.ID == id && b.OrganizationID == organizationID {
			delete(r.Bonuses, key)
			return nil
		}
	}
	return bonus.ErrBonusDayNotFound
}

func (r *BonusRepo) ListForMonth(_ context.Context, organizationID string, year, month int) ([]bonus.BonusDay, error) {
	var out []bonus.BonusDay
	for _, b := range r.Bonuses {
		if b.OrganizationID == organizationID && b.Date.Year() == year && int(b.Date.Month()) == month {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *BonusRepo) TotalsForWorkersInMonth(ctx context.Context, organizationID string, year, month int) (map[string]int64, error) {
	totals := make(map[string]int64)
	days, _ := r.ListForMonth(ctx, organizationID, year, month)
	for _, b := range days {
		for _, l := range r.Logs.Logs {
			if l.OrganizationID == organizationID && sameDate(l.Date, b.Date) && l.Hours.IsPositive() {
				totals[l.WorkerID] += b.Amount
			}
		}
	}
	return totals, nil
}

// ---- payrolls ----

type PayrollRepo struct {
	Payrolls map[string]payroll.Payroll
	// Cross-references backing WorkerMonthlyTotals.
	Workers *WorkerRepo
	Logs    *WorkLogRepo
	Wallets *WalletRepo
}

func NewPayrollRepo(workers *WorkerRepo, logs *WorkLogRepo, wallets *WalletRepo) *PayrollRepo {
	return &PayrollRepo{
		Payrolls: make(map[string]payroll.Payroll),
		Workers:  workers,
		Logs:     logs,
		Wallets:  wallets,
	}
}

func payrollKey(organizationID, workerID string, year, month int) string {
	return organizationID + "|" + workerID + "|" + time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (r *PayrollRepo) GetByWorkerPeriod(_ context.Context, workerID, organizationID string, year, month int) (payroll.Payroll, error) {
	if p, ok := r.Payrolls[payrollKey(organizationID, workerID, year, month)]; ok {
		return p, nil
	}
	for _, p := range r.Payrolls {
		if p.OrganizationID == organizationID && p.WorkerID == workerID && p.Year == year && p.Month == month {
			return p, nil
		}
	}
	return payroll.Payroll{}, payroll.ErrPayrollNotFound
}

func (r *PayrollRepo) ListForMonth(_ context.Context, organizationID string, year, month int) ([]payroll.Payroll, error) {
	var out []payroll.Payroll
	for _, p := range r.Payrolls {
		if p.OrganizationID == organizationID && p.Year == year && p.Month == month {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkerID < out[j].WorkerID })
	return out, nil
}

func (r *PayrollRepo) ListClosedForMonth(ctx context.Context, organizationID string, year, month int) ([]payroll.Payroll, error) {
	all, _ := r.ListForMonth(ctx, organizationID, year, month)
	var out []payroll.Payroll
	for _, p := range all {
		if p.Status == payroll.StatusClosed {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PayrollRepo) Upsert(_ context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	key := payrollKey(p.OrganizationID, p.WorkerID, p.Year, p.Month)
	if existing, ok := r.Payrolls[key]; ok {
		p.ID = existing.ID
	}
	r.Payrolls[key] = p
	return p, nil
}

func (r *PayrollRepo) UpdateStatusForMonth(_ context.Context, organizationID string, year, month int, from, to payroll.Status) (int64, error) {
	var n int64
	for key, p := range r.Payrolls {
		if p.OrganizationID == organizationID && p.Year == year && p.Month == month && p.Status == from {
			p.Status = to
			r.Payrolls[key] = p
			n++
		}
	}
	return n, nil
}

func (r *PayrollRepo) HasClosed(ctx context.Context, workerID, organizationID string, year, month int) (bool, error) {
	p, err := r.GetByWorkerPeriod(ctx, workerID, organizationID, year, month)
	if err != nil {
		return false, nil
	}
	return p.Status == payroll.StatusClosed, nil
}

func (r *PayrollRepo) HasClosedInMonth(ctx context.Context, organizationID string, year, month int) (bool, error) {
	closed, _ := r.ListClosedForMonth(ctx, organizationID, year, month)
	return len(closed) > 0, nil
}

func (r *PayrollRepo) ClosedWorkerIDs(ctx context.Context, organizationID string, year, month int, workerIDs []string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, id := range workerIDs {
		closed, _ := r.HasClosed(ctx, id, organizationID, year, month)
		if closed {
			out[id] = true
		}
	}
	return out, nil
}

func (r *PayrollRepo) WorkerMonthlyTotals(ctx context.Context, organizationID string, year, month int) ([]payroll.WorkerMonthlyTotals, error) {
	hours := make(map[string]decimal.Decimal)
	logs, _ := r.Logs.ListForMonth(ctx, organizationID, year, month)
	for _, l := range logs {
		hours[l.WorkerID] = hours[l.WorkerID].Add(l.Hours)
	}

	advances, _ := r.Wallets.AdvancesByWorkerForMonth(ctx, organizationID, year, month)

	seen := make(map[string]bool)
	var out []payroll.WorkerMonthlyTotals
	for workerID, h := range hours {
		w, ok := r.Workers.Workers[workerID]
		if !ok {
			continue
		}
		out = append(out, payroll.WorkerMonthlyTotals{
			WorkerID:      workerID,
			HourlyRate:    w.HourlyRate,
			TotalHours:    h,
			TotalAdvances: advances[workerID],
		})
		seen[workerID] = true
	}
	for workerID, adv := range advances {
		if seen[workerID] || !adv.IsPositive() {
			continue
		}
		w, ok := r.Workers.Workers[workerID]
		if !ok {
			continue
		}
		out = append(out, payroll.WorkerMonthlyTotals{
			WorkerID:      workerID,
			HourlyRate:    w.HourlyRate,
			TotalAdvances: adv,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkerID < out[j].WorkerID })
	return out, nil
}

// ---- wallets ----

type WalletRepo struct {
	Wallets      map[string]wallet.Wallet
	Transactions []wallet.WalletTransaction
}

func NewWalletRepo() *WalletRepo {
	return &WalletRepo{Wallets: make(map[string]wallet.Wallet)}
}

func (r *WalletRepo) Create(_ context.Context, w wallet.Wallet) (wallet.Wallet, error) {
	r.Wallets[w.ID] = w
	return w, nil
}

func (r *WalletRepo) GetByID(_ context.Context, id, organizationID string) (wallet.Wallet, error) {
	w, ok := r.Wallets[id]
	if !ok || w.OrganizationID != organizationID {
		return wallet.Wallet{}, wallet.ErrWalletNotFound
	}
	return w, nil
}

func (r *WalletRepo) GetByUserID(_ context.Context, userID, organizationID string) (wallet.Wallet, error) {
	for _, w := range r.Wallets {
		if w.UserID == userID && w.OrganizationID == organizationID {
			return w, nil
		}
	}
	return wallet.Wallet{}, wallet.ErrWalletNotFound
}

func (r *WalletRepo) GetByOrganizationID(_ context.Context, organizationID string) ([]wallet.Wallet, error) {
	var out []wallet.Wallet
	for _, w := range r.Wallets {
		if w.OrganizationID == organizationID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *WalletRepo) CreateTransaction(_ context.Context, t wallet.WalletTransaction) (wallet.WalletTransaction, error) {
	r.Transactions = append(r.Transactions, t)
	return t, nil
}

func (r *WalletRepo) ListTransactions(_ context.Context, walletID, organizationID string, limit int) ([]wallet.WalletTransaction, error) {
	var out []wallet.WalletTransaction
	for _, t := range r.Transactions {
		if t.WalletID == walletID && t.OrganizationID == organizationID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *WalletRepo) ListRecentByOrganization(_ context.Context, organizationID string, limit int) ([]wallet.WalletTransaction, error) {
	var out []wallet.WalletTransaction
	for _, t := range r.Transactions {
		if t.OrganizationID == organizationID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *WalletRepo) GetBalance(_ context.Context, walletID, organizationID string) (wallet.Balance, error) {
	var b wallet.Balance
	for _, t := range r.Transactions {
		if t.WalletID != walletID || t.OrganizationID != organizationID {
			continue
		}
		switch t.Type {
		case wallet.TypeRefill:
			b.TotalRefills = b.TotalRefills.Add(t.Amount)
		case wallet.TypeExpense:
			b.TotalExpenses = b.TotalExpenses.Add(t.Amount)
		case wallet.TypeAdvance:
			b.TotalAdvances = b.TotalAdvances.Add(t.Amount)
		}
	}
	return b, nil
}

func (r *WalletRepo) MonthlyExpenseSum(_ context.Context, walletID, organizationID string, year, month int) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range r.Transactions {
		if t.WalletID == walletID && t.OrganizationID == organizationID &&
			t.Type == wallet.TypeExpense && t.Date.Year() == year && int(t.Date.Month()) == month {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

func (r *WalletRepo) AdvancesByWorkerForMonth(_ context.Context, organizationID string, year, month int) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, t := range r.Transactions {
		if t.OrganizationID == organizationID && t.Type == wallet.TypeAdvance &&
			t.WorkerID != nil && t.Date.Year() == year && int(t.Date.Month()) == month {
			out[*t.WorkerID] = out[*t.WorkerID].Add(t.Amount)
		}
	}
	return out, nil
}

func (r *WalletRepo) TotalAdvancesForWorker(_ context.Context, workerID, organizationID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, t := range r.Transactions {
		if t.OrganizationID == organizationID && t.Type == wallet.TypeAdvance &&
			t.WorkerID != nil && *t.WorkerID == workerID {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

// ---- vacations ----

type VacationRepo struct {
	Vacations []vacation.Vacation
}

func NewVacationRepo() *VacationRepo {
	return &VacationRepo{}
}

func (r *VacationRepo) Create(_ context.Context, v vacation.Vacation) (vacation.Vacation, error) {
	r.Vacations = append(r.Vacations, v)
	return v, nil
}

func (r *VacationRepo) Delete(_ context.Context, id, organizationID string) error {
	for i, v := range r.Vacations {
		if v.ID == id && v.OrganizationID == organizationID {
			r.Vacations = append(r.Vacations[:i], r.Vacations[i+1:]...)
			return nil
		}
	}
	return vacation.ErrVacationNotFound
}

func (r *VacationRepo) ListByWorker(_ context.Context, workerID, organizationID string) ([]vacation.Vacation, error) {
	var out []vacation.Vacation
	for _, v := range r.Vacations {
		if v.WorkerID == workerID && v.OrganizationID == organizationID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *VacationRepo) ListOverlapping(_ context.Context, workerID, organizationID string, start, end time.Time, excludeID string) ([]vacation.Vacation, error) {
	var out []vacation.Vacation
	for _, v := range r.Vacations {
		if v.WorkerID != workerID || v.OrganizationID != organizationID {
			continue
		}
		if excludeID != "" && v.ID == excludeID {
			continue
		}
		if !v.StartDate.After(end) && !v.EndDate.Before(start) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *VacationRepo) WorkerIDsOnDate(_ context.Context, organizationID string, workerIDs []string, date time.Time) (map[string]bool, error) {
	ids := make(map[string]bool, len(workerIDs))
	for _, id := range workerIDs {
		ids[id] = true
	}
	out := make(map[string]bool)
	for _, v := range r.Vacations {
		if v.OrganizationID != organizationID || !ids[v.WorkerID] {
			continue
		}
		if !v.StartDate.After(date) && !v.EndDate.Before(date) {
			out[v.WorkerID] = true
		}
	}
	return out, nil
}
