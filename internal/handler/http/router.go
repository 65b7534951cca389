package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kayaops/backoffice-backend-go/internal/config"
	"github.com/kayaops/backoffice-backend-go/internal/handler/http/middleware"
	"github.com/kayaops/backoffice-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	loanHandler LoanHandler,
	payslipHandler PayslipHandler,
	payrollHandler PayrollHandler,
	ledgerHandler LedgerHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "backoffice-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/me", authHandler.Me)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.ListEmployees)
				r.Post("/", employeeHandler.CreateEmployee)
				r.Get("/{id}", employeeHandler.GetEmployee)
				r.Put("/{id}", employeeHandler.UpdateEmployee)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Delete("/{id}", employeeHandler.DeleteEmployee)
				})
			})

			r.Route("/loans", func(r chi.Router) {
				r.Get("/", loanHandler.ListLoans)
				r.Post("/", loanHandler.CreateLoan)
				r.Get("/{id}", loanHandler.GetLoan)
				r.Put("/{id}", loanHandler.UpdateLoan)
				r.Get("/{id}/payments", loanHandler.ListPayments)
				r.Post("/{id}/payments", loanHandler.RecordPayment)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Delete("/{id}", loanHandler.DeleteLoan)
				})
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Get("/", payslipHandler.ListPayslips)
				r.Post("/", payslipHandler.CreatePayslip)
				r.Get("/defaults", payslipHandler.GetDefaults)
				r.Get("/{id}", payslipHandler.GetPayslip)
				r.Put("/{id}", payslipHandler.UpdatePayslip)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Delete("/{id}", payslipHandler.DeletePayslip)
				})
			})

			// Bulk generation is admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/payroll/generate", payrollHandler.GeneratePayroll)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", ledgerHandler.ListTransactions)
				r.Post("/", ledgerHandler.CreateTransaction)
				r.Get("/summary", ledgerHandler.GetMonthlySummary)
				r.Get("/{id}", ledgerHandler.GetTransaction)
				r.Put("/{id}", ledgerHandler.UpdateTransaction)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Delete("/{id}", ledgerHandler.DeleteTransaction)
				})
			})
		})
	})
	return r
}
