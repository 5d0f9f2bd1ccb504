package http

import (
	"log/slog"
	"os"

	"github.com/crewbase/crewbase-backend-go/internal/config"
	"github.com/crewbase/crewbase-backend-go/internal/handler/http/middleware"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Worker    WorkerHandler
	Timesheet TimesheetHandler
	Payroll   PayrollHandler
	Bonus     BonusHandler
	Wallet    WalletHandler
	Vacation  VacationHandler
	Project   ProjectHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "crewbase"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/workers", func(r chi.Router) {
				r.Get("/", h.Worker.List)
				r.With(middleware.RequireOwner).Post("/", h.Worker.Create)

				r.Route("/{workerID}", func(r chi.Router) {
					r.Get("/", h.Worker.Get)
					r.Get("/periods", h.Worker.ListPeriods)
					r.Get("/history", h.Timesheet.ListHistory)
					r.Get("/vacations", h.Vacation.ListByWorker)
					r.Post("/vacations", h.Vacation.Create)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireOwner)
						r.Put("/", h.Worker.Update)
						r.Delete("/", h.Worker.Delete)
					})
				})
			})

			r.Route("/vacations", func(r chi.Router) {
				r.Delete("/{vacationID}", h.Vacation.Delete)
			})

			r.Route("/timesheet", func(r chi.Router) {
				r.Get("/grid", h.Timesheet.GetGrid)
				r.Put("/cells", h.Timesheet.UpsertCell)
				r.Put("/cells/bulk", h.Timesheet.BulkUpsert)
				r.With(middleware.RequireOwner).Post("/assign-project", h.Timesheet.AssignProject)
			})

			r.Route("/payrolls", func(r chi.Router) {
				r.Get("/", h.Payroll.ListForMonth)
				r.Get("/closed", h.Payroll.ListClosed)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Post("/generate", h.Payroll.Generate)
					r.Post("/close", h.Payroll.Close)
					r.Post("/reopen", h.Payroll.Reopen)
				})
			})

			r.Route("/bonus-days", func(r chi.Router) {
				r.Get("/", h.Bonus.ListForMonth)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Put("/", h.Bonus.Upsert)
					r.Delete("/{bonusDayID}", h.Bonus.Delete)
				})
			})

			r.Route("/wallets", func(r chi.Router) {
				r.Get("/", h.Wallet.List)
				r.Get("/my", h.Wallet.GetMy)
				r.Post("/expenses", h.Wallet.CreateExpense)
				r.Post("/advances", h.Wallet.CreateAdvance)

				r.Route("/{walletID}", func(r chi.Router) {
					r.Get("/", h.Wallet.GetDetail)
					r.Post("/expenses", h.Wallet.CreateExpense)
					r.Post("/advances", h.Wallet.CreateAdvance)
					r.With(middleware.RequireOwner).Post("/refill", h.Wallet.Refill)
				})
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Project.List)
				r.With(middleware.RequireOwner).Post("/", h.Project.Create)

				r.Route("/{projectID}", func(r chi.Router) {
					r.Get("/", h.Project.Get)
					r.With(middleware.RequireOwner).Put("/", h.Project.Update)
				})
			})
		})
	})

	return r
}
