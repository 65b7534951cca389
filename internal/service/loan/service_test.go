package loan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kayaops/backoffice-backend-go/internal/domain/employee"
	"github.com/kayaops/backoffice-backend-go/internal/domain/loan"
	loanService "github.com/kayaops/backoffice-backend-go/internal/service/loan"
)

type fakeLoanRepository struct {
	createFn                func(ctx context.Context, newLoan loan.Loan) (loan.Loan, error)
	getByIDFn               func(ctx context.Context, id string) (loan.Loan, error)
	listFn                  func(ctx context.Context, filter loan.LoanFilter) ([]loan.Loan, error)
	listActiveByEmployeeFn  func(ctx context.Context, employeeID string, asOf time.Time) ([]loan.Loan, error)
	listActiveByEmployeesFn func(ctx context.Context, employeeIDs []string, asOf time.Time) ([]loan.Loan, error)
	updateFn                func(ctx context.Context, id string, req loan.UpdateLoanRequest) error
	updateBalanceFn         func(ctx context.Context, id string, balance loan.BalanceUpdate) error
	deleteFn                func(ctx context.Context, id string) error
	insertPaymentFn         func(ctx context.Context, payment loan.LoanPayment) (loan.LoanPayment, error)
	listPaymentsByLoanFn    func(ctx context.Context, loanID string) ([]loan.LoanPayment, error)
}

func (f *fakeLoanRepository) Create(ctx context.Context, newLoan loan.Loan) (loan.Loan, error) {
	if f.createFn != nil {
		return f.createFn(ctx, newLoan)
	}
	return newLoan, nil
}

func (f *fakeLoanRepository) GetByID(ctx context.Context, id string) (loan.Loan, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return loan.Loan{}, loan.ErrLoanNotFound
}

func (f *fakeLoanRepository) List(ctx context.Context, filter loan.LoanFilter) ([]loan.Loan, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeLoanRepository) ListActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) ([]loan.Loan, error) {
	if f.listActiveByEmployeeFn != nil {
		return f.listActiveByEmployeeFn(ctx, employeeID, asOf)
	}
	return nil, nil
}

func (f *fakeLoanRepository) ListActiveByEmployees(ctx context.Context, employeeIDs []string, asOf time.Time) ([]loan.Loan, error) {
	if f.listActiveByEmployeesFn != nil {
		return f.listActiveByEmployeesFn(ctx, employeeIDs, asOf)
	}
	return nil, nil
}

func (f *fakeLoanRepository) Update(ctx context.Context, id string, req loan.UpdateLoanRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}
	return nil
}

func (f *fakeLoanRepository) UpdateBalance(ctx context.Context, id string, balance loan.BalanceUpdate) error {
	if f.updateBalanceFn != nil {
		return f.updateBalanceFn(ctx, id, balance)
	}
	return nil
}

func (f *fakeLoanRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeLoanRepository) InsertPayment(ctx context.Context, payment loan.LoanPayment) (loan.LoanPayment, error) {
	if f.insertPaymentFn != nil {
		return f.insertPaymentFn(ctx, payment)
	}
	payment.ID = "payment-1"
	return payment, nil
}

func (f *fakeLoanRepository) ListPaymentsByLoan(ctx context.Context, loanID string) ([]loan.LoanPayment, error) {
	if f.listPaymentsByLoanFn != nil {
		return f.listPaymentsByLoanFn(ctx, loanID)
	}
	return nil, nil
}

type fakeEmployeeRepository struct {
	createFn   func(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error)
	getByIDFn  func(ctx context.Context, id string) (employee.Employee, error)
	getByIDsFn func(ctx context.Context, ids []string) ([]employee.Employee, error)
	listFn     func(ctx context.Context, activeOnly bool) ([]employee.Employee, error)
	updateFn   func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	if f.createFn != nil {
		return f.createFn(ctx, newEmployee)
	}
	return newEmployee, nil
}

func (f *fakeEmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return employee.Employee{ID: id, FullName: "Test Employee"}, nil
}

func (f *fakeEmployeeRepository) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	if f.getByIDsFn != nil {
		return f.getByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	if f.listFn != nil {
		return f.listFn(ctx, activeOnly)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func TestCreateLoan_ComputesTotalAndBalance(t *testing.T) {
	var createdLoan loan.Loan
	loanRepo := &fakeLoanRepository{
		createFn: func(ctx context.Context, newLoan loan.Loan) (loan.Loan, error) {
			createdLoan = newLoan
			newLoan.ID = "loan-1"
			return newLoan, nil
		},
	}
	svc := loanService.NewLoanService(loanRepo, &fakeEmployeeRepository{})

	_, err := svc.CreateLoan(context.Background(), loan.CreateLoanRequest{
		EmployeeID:         "emp-1",
		Category:           "cash_advance",
		Principal:          d("10000"),
		InterestRate:       d("5"),
		MonthlyDeduction:   d("1000"),
		LoanDate:           "2025-01-10",
		StartDeductionDate: "2025-02-01",
	})
	require.NoError(t, err)

	// 10 periods of simple interest: 10000 + 10000*5*10/1200
	want := d("10416.6666666666666667")
	assert.True(t, want.Equal(createdLoan.TotalAmount), "total %s", createdLoan.TotalAmount)
	assert.True(t, createdLoan.TotalAmount.Equal(createdLoan.RemainingBalance))
	assert.Equal(t, loan.StatusActive, createdLoan.Status)
}

func TestTotalDeductionFor_SumsCappedDeductions(t *testing.T) {
	loanRepo := &fakeLoanRepository{
		listActiveByEmployeeFn: func(ctx context.Context, employeeID string, asOf time.Time) ([]loan.Loan, error) {
			return []loan.Loan{
				{ID: "loan-1", MonthlyDeduction: d("1000"), RemainingBalance: d("5000")},
				{ID: "loan-2", MonthlyDeduction: d("2000"), RemainingBalance: d("300")},
			}, nil
		},
	}
	svc := loanService.NewLoanService(loanRepo, &fakeEmployeeRepository{})

	total, err := svc.TotalDeductionFor(context.Background(), "emp-1", time.Now())
	require.NoError(t, err)

	// 1000 plus the second loan capped at its 300 remaining balance.
	assert.True(t, d("1300").Equal(total), "total %s", total)
}

func TestRecordManualPayment_RejectsInactiveLoan(t *testing.T) {
	loanRepo := &fakeLoanRepository{
		getByIDFn: func(ctx context.Context, id string) (loan.Loan, error) {
			return loan.Loan{ID: id, Status: loan.StatusCompleted, RemainingBalance: decimal.Zero}, nil
		},
	}
	svc := loanService.NewLoanService(loanRepo, &fakeEmployeeRepository{})

	_, err := svc.RecordManualPayment(context.Background(), loan.RecordPaymentRequest{
		LoanID:      "loan-1",
		Amount:      d("100"),
		PaymentDate: "2025-03-01",
	})
	assert.ErrorIs(t, err, loan.ErrLoanNotActive)
}

func TestRecordManualPayment_WritesPaymentBeforeBalance(t *testing.T) {
	var order []string
	loanRepo := &fakeLoanRepository{
		getByIDFn: func(ctx context.Context, id string) (loan.Loan, error) {
			return loan.Loan{ID: id, Status: loan.StatusActive, RemainingBalance: d("5000"), MonthlyDeduction: d("1000")}, nil
		},
		insertPaymentFn: func(ctx context.Context, payment loan.LoanPayment) (loan.LoanPayment, error) {
			order = append(order, "payment")
			payment.ID = "payment-1"
			return payment, nil
		},
		updateBalanceFn: func(ctx context.Context, id string, balance loan.BalanceUpdate) error {
			order = append(order, "balance")
			assert.True(t, d("4000").Equal(balance.RemainingBalance))
			return nil
		},
	}
	svc := loanService.NewLoanService(loanRepo, &fakeEmployeeRepository{})

	result, err := svc.RecordManualPayment(context.Background(), loan.RecordPaymentRequest{
		LoanID:      "loan-1",
		Amount:      d("1000"),
		PaymentDate: "2025-03-01",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"payment", "balance"}, order)
	assert.Equal(t, "manual_payment", result.PaymentType)
	assert.Nil(t, result.PayslipID)
}

func TestApplyPayment_ReportsPartialFailure(t *testing.T) {
	boom := errors.New("connection reset")
	loanRepo := &fakeLoanRepository{
		updateBalanceFn: func(ctx context.Context, id string, balance loan.BalanceUpdate) error {
			return boom
		},
	}
	svc := loanService.NewLoanService(loanRepo, &fakeEmployeeRepository{})

	ln := loan.Loan{ID: "loan-1", Status: loan.StatusActive, RemainingBalance: d("5000")}
	_, err := svc.ApplyPayment(context.Background(), ln, d("1000"), time.Now(), nil, loan.PaymentTypePayrollDeduction)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "payment recorded but balance update failed")
}

func TestApplyPayment_RejectsOverpaymentBeforeAnyWrite(t *testing.T) {
	loanRepo := &fakeLoanRepository{
		insertPaymentFn: func(ctx context.Context, payment loan.LoanPayment) (loan.LoanPayment, error) {
			t.Fatal("payment must not be written for a rejected amount")
			return loan.LoanPayment{}, nil
		},
	}
	svc := loanService.NewLoanService(loanRepo, &fakeEmployeeRepository{})

	ln := loan.Loan{ID: "loan-1", Status: loan.StatusActive, RemainingBalance: d("100")}
	_, err := svc.ApplyPayment(context.Background(), ln, d("500"), time.Now(), nil, loan.PaymentTypePayrollDeduction)
	assert.ErrorIs(t, err, loan.ErrInsufficientBalance)
}

func TestActiveLoansForMany_GroupsByEmployee(t *testing.T) {
	loanRepo := &fakeLoanRepository{
		listActiveByEmployeesFn: func(ctx context.Context, employeeIDs []string, asOf time.Time) ([]loan.Loan, error) {
			return []loan.Loan{
				{ID: "loan-1", EmployeeID: "emp-1"},
				{ID: "loan-2", EmployeeID: "emp-2"},
				{ID: "loan-3", EmployeeID: "emp-1"},
			}, nil
		},
	}
	svc := loanService.NewLoanService(loanRepo, &fakeEmployeeRepository{})

	grouped, err := svc.ActiveLoansForMany(context.Background(), []string{"emp-1", "emp-2"}, time.Now())
	require.NoError(t, err)

	assert.Len(t, grouped["emp-1"], 2)
	assert.Len(t, grouped["emp-2"], 1)
}
