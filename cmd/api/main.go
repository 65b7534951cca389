package main

import (
	"fmt"
	"net/http"

	"github.com/kayaops/backoffice-backend-go/internal/config"
	appHTTP "github.com/kayaops/backoffice-backend-go/internal/handler/http"
	"github.com/kayaops/backoffice-backend-go/internal/pkg/database"
	"github.com/kayaops/backoffice-backend-go/internal/pkg/jwt"
	"github.com/kayaops/backoffice-backend-go/internal/repository/postgresql"
	authService "github.com/kayaops/backoffice-backend-go/internal/service/auth"
	employeeService "github.com/kayaops/backoffice-backend-go/internal/service/employee"
	ledgerService "github.com/kayaops/backoffice-backend-go/internal/service/ledger"
	loanService "github.com/kayaops/backoffice-backend-go/internal/service/loan"
	payrollService "github.com/kayaops/backoffice-backend-go/internal/service/payroll"
	payslipService "github.com/kayaops/backoffice-backend-go/internal/service/payslip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	loanRepo := postgresql.NewLoanRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	transactionRepo := postgresql.NewTransactionRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	linker := payrollService.NewTransactionLinker(transactionRepo)
	authSvc := authService.NewAuthService(userRepo, jwtSvc)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	loanSvc := loanService.NewLoanService(loanRepo, employeeRepo)
	payslipSvc := payslipService.NewPayslipService(payslipRepo, employeeRepo, loanSvc, linker)
	payrollSvc := payrollService.NewPayrollService(employeeRepo, payslipRepo, transactionRepo, loanSvc)
	ledgerSvc := ledgerService.NewLedgerService(transactionRepo)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	loanHandler := appHTTP.NewLoanHandler(loanSvc)
	payslipHandler := appHTTP.NewPayslipHandler(payslipSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	ledgerHandler := appHTTP.NewLedgerHandler(ledgerSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtSvc,
		authHandler,
		employeeHandler,
		loanHandler,
		payslipHandler,
		payrollHandler,
		ledgerHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
