package response

import (
	"errors"
	"net/http"

	"github.com/kayaops/backoffice-backend-go/internal/domain/employee"
	"github.com/kayaops/backoffice-backend-go/internal/domain/ledger"
	"github.com/kayaops/backoffice-backend-go/internal/domain/loan"
	"github.com/kayaops/backoffice-backend-go/internal/domain/payroll"
	"github.com/kayaops/backoffice-backend-go/internal/domain/payslip"
	"github.com/kayaops/backoffice-backend-go/internal/domain/user"
	"github.com/kayaops/backoffice-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Storage errors fall
// through to the default branch with their full message so the operator
// console can surface exactly which write step failed.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, user.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrAdminRequired):
		Forbidden(w, "Admin role required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNoBaseSalary):
		BadRequest(w, err.Error(), nil)

	// Loan domain errors
	case errors.Is(err, loan.ErrLoanNotFound):
		NotFound(w, "Loan not found")
	case errors.Is(err, loan.ErrLoanNotActive):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, loan.ErrInvalidDeduction):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, loan.ErrInvalidAmount):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, loan.ErrInsufficientBalance):
		BadRequest(w, err.Error(), nil)

	// Payslip domain errors
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Ledger domain errors
	case errors.Is(err, ledger.ErrTransactionNotFound):
		NotFound(w, "Transaction not found")

	// Payroll generation errors
	case errors.Is(err, payroll.ErrNoEmployeesSelected):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrLinkMismatch):
		InternalServerError(w, err.Error())

	// Default
	default:
		InternalServerError(w, err.Error())
	}
}
