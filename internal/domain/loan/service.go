package loan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LoanService defines business logic for loans and their repayment ledger.
type LoanService interface {
	CreateLoan(ctx context.Context, req CreateLoanRequest) (LoanResponse, error)
	GetLoan(ctx context.Context, id string) (LoanResponse, error)
	ListLoans(ctx context.Context, filter LoanFilter) ([]LoanResponse, error)
	UpdateLoan(ctx context.Context, req UpdateLoanRequest) (LoanResponse, error)

	// DeleteLoan removes the loan and cascades its payment history.
	DeleteLoan(ctx context.Context, id string) error

	ListPayments(ctx context.Context, loanID string) ([]LoanPaymentResponse, error)

	// RecordManualPayment applies an operator-entered payment against a loan.
	RecordManualPayment(ctx context.Context, req RecordPaymentRequest) (LoanPaymentResponse, error)

	// ActiveLoansFor returns the employee's loans eligible for deduction
	// on asOf: status active and start_deduction_date on or before asOf.
	ActiveLoansFor(ctx context.Context, employeeID string, asOf time.Time) ([]Loan, error)

	// ActiveLoansForMany loads the deduction-eligible loans for a set of
	// employees in one read, grouped by employee id. Bulk generation
	// snapshots loans once at the start of a run instead of re-reading
	// them mid-pass.
	ActiveLoansForMany(ctx context.Context, employeeIDs []string, asOf time.Time) (map[string][]Loan, error)

	// TotalDeductionFor sums the per-period deduction across ActiveLoansFor.
	TotalDeductionFor(ctx context.Context, employeeID string, asOf time.Time) (decimal.Decimal, error)

	// ApplyPayment validates and persists a payment against the given loan
	// snapshot and returns the updated loan. The payment row is written
	// before the balance update; a failure between the two is reported as
	// a partial-failure error, never swallowed.
	ApplyPayment(ctx context.Context, ln Loan, amount decimal.Decimal, date time.Time, payslipID *string, paymentType PaymentType) (Loan, error)
}
