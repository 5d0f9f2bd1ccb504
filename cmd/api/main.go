package main

import (
	"fmt"
	"net/http"

	"github.com/crewbase/crewbase-backend-go/internal/config"
	appHTTP "github.com/crewbase/crewbase-backend-go/internal/handler/http"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/jwt"
	"github.com/crewbase/crewbase-backend-go/internal/repository/postgresql"
	bonusService "github.com/crewbase/crewbase-backend-go/internal/service/bonus"
	payrollService "github.com/crewbase/crewbase-backend-go/internal/service/payroll"
	projectService "github.com/crewbase/crewbase-backend-go/internal/service/project"
	timesheetService "github.com/crewbase/crewbase-backend-go/internal/service/timesheet"
	vacationService "github.com/crewbase/crewbase-backend-go/internal/service/vacation"
	walletService "github.com/crewbase/crewbase-backend-go/internal/service/wallet"
	workerService "github.com/crewbase/crewbase-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	workerRepo := postgresql.NewWorkerRepository(db)
	periodRepo := postgresql.NewEmploymentPeriodRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	workLogRepo := postgresql.NewWorkLogRepository(db)
	historyRepo := postgresql.NewTimesheetHistoryRepository(db)
	bonusRepo := postgresql.NewBonusDayRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	walletRepo := postgresql.NewWalletRepository(db)
	vacationRepo := postgresql.NewVacationRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	workerSvc := workerService.NewWorkerService(db, workerRepo, periodRepo, walletRepo)
	timesheetSvc := timesheetService.NewTimesheetService(db, workerRepo, workLogRepo, historyRepo, projectRepo, payrollRepo, vacationRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, bonusRepo)
	bonusSvc := bonusService.NewBonusService(db, bonusRepo, payrollRepo)
	walletSvc := walletService.NewWalletService(walletRepo, workerRepo)
	vacationSvc := vacationService.NewVacationService(db, vacationRepo, workerRepo)
	projectSvc := projectService.NewProjectService(db, projectRepo)

	router := appHTTP.NewRouter(cfg, jwtSvc, appHTTP.Handlers{
		Worker:    appHTTP.NewWorkerHandler(workerSvc),
		Timesheet: appHTTP.NewTimesheetHandler(timesheetSvc),
		Payroll:   appHTTP.NewPayrollHandler(payrollSvc),
		Bonus:     appHTTP.NewBonusHandler(bonusSvc),
		Wallet:    appHTTP.NewWalletHandler(walletSvc),
		Vacation:  appHTTP.NewVacationHandler(vacationSvc),
		Project:   appHTTP.NewProjectHandler(projectSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
