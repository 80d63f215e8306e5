package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/handler/http/middleware"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/jwt"
)

// RouterOptions carries the deployment settings the router needs.
type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
	LogLevel       slog.Level
}

// Handlers groups every HTTP handler mounted under /api/v1.
type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Reward     RewardHandler
	Payroll    PayrollHandler
	Advance    AdvanceHandler
	Evaluation EvaluationHandler
	Hierarchy  HierarchyHandler
	Insight    InsightHandler
	Events     EventsHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "madar-hrms"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", h.Auth.Login)

		// The stream authenticates with its own short-lived token
		r.Get("/events", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", h.Auth.Logout)
				r.Get("/me", h.Auth.Me)
				r.Post("/sse-token", h.Auth.SSEToken)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Get("/{id}", h.Employee.GetEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleSuperAdmin, employee.RoleBranchManager))
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
				})
			})

			r.Route("/hierarchy/branches", func(r chi.Router) {
				r.Get("/", h.Hierarchy.ListBranches)
				r.Get("/{id}", h.Hierarchy.GetBranch)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleSuperAdmin))
					r.Post("/", h.Hierarchy.SaveBranch)
					r.Put("/{id}", h.Hierarchy.SaveBranch)
					r.Delete("/{id}", h.Hierarchy.DeleteBranch)
				})

				r.Route("/{id}/departments", func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleSuperAdmin, employee.RoleBranchManager))
					r.Use(middleware.RequireOwnBranch("id"))
					r.Post("/", h.Hierarchy.SaveDepartment)
					r.Put("/{deptID}", h.Hierarchy.SaveDepartment)
					r.Delete("/{deptID}", h.Hierarchy.DeleteDepartment)
					r.Post("/{deptID}/positions", h.Hierarchy.AddPosition)
					r.Delete("/{deptID}/positions/{name}", h.Hierarchy.RemovePosition)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Get("/day", h.Attendance.Day)
				r.Get("/stats", h.Attendance.Stats)
				r.Get("/{id}", h.Attendance.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Attendance.Save)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/rewards", func(r chi.Router) {
				r.Get("/", h.Reward.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Reward.Create)
					r.Post("/{id}/cancel", h.Reward.Cancel)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/entries/{id}", func(r chi.Router) {
					r.Get("/", h.Payroll.GetEntry)
					r.Put("/notes", h.Payroll.UpdateNotes)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/pay", h.Payroll.PayEntry)
						r.Post("/reverse", h.Payroll.ReverseEntry)
					})
				})

				r.Route("/{month}", func(r chi.Router) {
					r.Get("/", h.Payroll.GetMonth)
					r.Get("/summary", h.Payroll.GetSummary)
					r.Get("/export", h.Payroll.Export)
					r.Get("/insight", h.Insight.PayrollInsight)

					r.With(middleware.AdminOnly).Post("/pay-all", h.Payroll.PayAll)
				})
			})

			r.Route("/advances", func(r chi.Router) {
				r.Get("/", h.Advance.List)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Advance.Create)
					r.Post("/{id}/reject", h.Advance.Reject)
					r.Post("/{id}/installments", h.Advance.RecordInstallment)
				})
			})

			r.Route("/evaluations", func(r chi.Router) {
				r.Get("/", h.Evaluation.List)
				r.Get("/report", h.Evaluation.Report)
				r.Get("/criteria", h.Evaluation.ListCriteria)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", h.Evaluation.Create)
					r.Post("/criteria", h.Evaluation.CreateCriteria)
					r.Put("/criteria/{id}", h.Evaluation.UpdateCriteria)
					r.Delete("/criteria/{id}", h.Evaluation.DeleteCriteria)
				})
			})

			r.Post("/assistant/ask", h.Insight.Ask)
		})
	})
	return r
}
