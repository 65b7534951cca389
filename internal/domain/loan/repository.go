package loan

import (
	"context"
	"time"
)

type LoanRepository interface {
	Create(ctx context.Context, newLoan Loan) (Loan, error)
	GetByID(ctx context.Context, id string) (Loan, error)
	List(ctx context.Context, filter LoanFilter) ([]Loan, error)
	ListActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) ([]Loan, error)
	ListActiveByEmployees(ctx context.Context, employeeIDs []string, asOf time.Time) ([]Loan, error)
	Update(ctx context.Context, id string, req UpdateLoanRequest) error
	UpdateBalance(ctx context.Context, id string, balance BalanceUpdate) error
	// Delete removes the loan together with its payment history rows.
	Delete(ctx context.Context, id string) error

	InsertPayment(ctx context.Context, payment LoanPayment) (LoanPayment, error)
	ListPaymentsByLoan(ctx context.Context, loanID string) ([]LoanPayment, error)
}
