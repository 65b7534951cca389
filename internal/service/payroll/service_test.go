package payroll_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kayaops/backoffice-backend-go/internal/domain/employee"
	"github.com/kayaops/backoffice-backend-go/internal/domain/ledger"
	"github.com/kayaops/backoffice-backend-go/internal/domain/loan"
	"github.com/kayaops/backoffice-backend-go/internal/domain/payroll"
	"github.com/kayaops/backoffice-backend-go/internal/domain/payslip"
	payrollService "github.com/kayaops/backoffice-backend-go/internal/service/payroll"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

type fakeEmployeeRepository struct {
	getByIDsFn func(ctx context.Context, ids []string) ([]employee.Employee, error)
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	return newEmployee, nil
}

func (f *fakeEmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return employee.Employee{ID: id}, nil
}

func (f *fakeEmployeeRepository) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	if f.getByIDsFn != nil {
		return f.getByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	return nil
}

type fakePayslipRepository struct {
	insertManyFn          func(ctx context.Context, payslips []payslip.Payslip) ([]payslip.Payslip, error)
	getLatestByEmployeeFn func(ctx context.Context, employeeID string) (payslip.Payslip, error)
}

func (f *fakePayslipRepository) Insert(ctx context.Context, newPayslip payslip.Payslip) (payslip.Payslip, error) {
	return newPayslip, nil
}

func (f *fakePayslipRepository) InsertMany(ctx context.Context, payslips []payslip.Payslip) ([]payslip.Payslip, error) {
	if f.insertManyFn != nil {
		return f.insertManyFn(ctx, payslips)
	}
	created := make([]payslip.Payslip, len(payslips))
	for i, p := range payslips {
		p.ID = fmt.Sprintf("payslip-%d", i+1)
		created[i] = p
	}
	return created, nil
}

func (f *fakePayslipRepository) GetByID(ctx context.Context, id string) (payslip.Payslip, error) {
	return payslip.Payslip{}, payslip.ErrPayslipNotFound
}

func (f *fakePayslipRepository) GetLatestByEmployee(ctx context.Context, employeeID string) (payslip.Payslip, error) {
	if f.getLatestByEmployeeFn != nil {
		return f.getLatestByEmployeeFn(ctx, employeeID)
	}
	return payslip.Payslip{}, payslip.ErrPayslipNotFound
}

func (f *fakePayslipRepository) List(ctx context.Context, filter payslip.PayslipFilter) ([]payslip.Payslip, error) {
	return nil, nil
}

func (f *fakePayslipRepository) Update(ctx context.Context, updated payslip.Payslip) error {
	return nil
}

func (f *fakePayslipRepository) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeTransactionRepository struct {
	insertManyFn func(ctx context.Context, transactions []ledger.Transaction) ([]ledger.Transaction, error)
}

func (f *fakeTransactionRepository) Insert(ctx context.Context, newTransaction ledger.Transaction) (ledger.Transaction, error) {
	newTransaction.ID = "txn-1"
	return newTransaction, nil
}

func (f *fakeTransactionRepository) InsertMany(ctx context.Context, transactions []ledger.Transaction) ([]ledger.Transaction, error) {
	if f.insertManyFn != nil {
		return f.insertManyFn(ctx, transactions)
	}
	created := make([]ledger.Transaction, len(transactions))
	for i, t := range transactions {
		t.ID = fmt.Sprintf("txn-%d", i+1)
		created[i] = t
	}
	return created, nil
}

func (f *fakeTransactionRepository) GetByID(ctx context.Context, id string) (ledger.Transaction, error) {
	return ledger.Transaction{}, ledger.ErrTransactionNotFound
}

func (f *fakeTransactionRepository) List(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionRepository) Update(ctx context.Context, id string, req ledger.UpdateTransactionRequest) error {
	return nil
}

func (f *fakeTransactionRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakeTransactionRepository) MonthlySummary(ctx context.Context, year int) ([]ledger.MonthlySummary, error) {
	return nil, nil
}

type appliedPayment struct {
	loanID    string
	amount    decimal.Decimal
	payslipID *string
}

type fakeLoanService struct {
	activeLoansForManyFn func(ctx context.Context, employeeIDs []string, asOf time.Time) (map[string][]loan.Loan, error)
	applyPaymentFn       func(ctx context.Context, ln loan.Loan, amount decimal.Decimal, date time.Time, payslipID *string, paymentType loan.PaymentType) (loan.Loan, error)
	applied              []appliedPayment
}

func (f *fakeLoanService) CreateLoan(ctx context.Context, req loan.CreateLoanRequest) (loan.LoanResponse, error) {
	return loan.LoanResponse{}, nil
}

func (f *fakeLoanService) GetLoan(ctx context.Context, id string) (loan.LoanResponse, error) {
	return loan.LoanResponse{}, nil
}

func (f *fakeLoanService) ListLoans(ctx context.Context, filter loan.LoanFilter) ([]loan.LoanResponse, error) {
	return nil, nil
}

func (f *fakeLoanService) UpdateLoan(ctx context.Context, req loan.UpdateLoanRequest) (loan.LoanResponse, error) {
	return loan.LoanResponse{}, nil
}

func (f *fakeLoanService) DeleteLoan(ctx context.Context, id string) error {
	return nil
}

func (f *fakeLoanService) ListPayments(ctx context.Context, loanID string) ([]loan.LoanPaymentResponse, error) {
	return nil, nil
}

func (f *fakeLoanService) RecordManualPayment(ctx context.Context, req loan.RecordPaymentRequest) (loan.LoanPaymentResponse, error) {
	return loan.LoanPaymentResponse{}, nil
}

func (f *fakeLoanService) ActiveLoansFor(ctx context.Context, employeeID string, asOf time.Time) ([]loan.Loan, error) {
	return nil, nil
}

func (f *fakeLoanService) ActiveLoansForMany(ctx context.Context, employeeIDs []string, asOf time.Time) (map[string][]loan.Loan, error) {
	if f.activeLoansForManyFn != nil {
		return f.activeLoansForManyFn(ctx, employeeIDs, asOf)
	}
	return map[string][]loan.Loan{}, nil
}

func (f *fakeLoanService) TotalDeductionFor(ctx context.Context, employeeID string, asOf time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeLoanService) ApplyPayment(ctx context.Context, ln loan.Loan, amount decimal.Decimal, date time.Time, payslipID *string, paymentType loan.PaymentType) (loan.Loan, error) {
	f.applied = append(f.applied, appliedPayment{loanID: ln.ID, amount: amount, payslipID: payslipID})
	if f.applyPaymentFn != nil {
		return f.applyPaymentFn(ctx, ln, amount, date, payslipID, paymentType)
	}
	return ln, nil
}

func salaried(id, name, salary string) employee.Employee {
	base := d(salary)
	return employee.Employee{ID: id, FullName: name, BaseSalary: &base, EmploymentStatus: employee.EmploymentStatusActive}
}

func generateRequest(ids ...string) payroll.GeneratePayrollRequest {
	return payroll.GeneratePayrollRequest{
		PeriodStart: "2025-01-01",
		PeriodEnd:   "2025-01-15",
		IssueDate:   "2025-01-15",
		EmployeeIDs: ids,
	}
}

func TestGeneratePayroll_OnePayslipAndExpensePerEmployee(t *testing.T) {
	employeeRepo := &fakeEmployeeRepository{
		getByIDsFn: func(ctx context.Context, ids []string) ([]employee.Employee, error) {
			return []employee.Employee{
				salaried("emp-1", "Maria Santos", "30000"),
				salaried("emp-2", "Juan Dela Cruz", "24000"),
				salaried("emp-3", "Ana Reyes", "40000"),
			}, nil
		},
	}

	var insertedExpenses []ledger.Transaction
	transactionRepo := &fakeTransactionRepository{
		insertManyFn: func(ctx context.Context, transactions []ledger.Transaction) ([]ledger.Transaction, error) {
			created := make([]ledger.Transaction, len(transactions))
			for i, tx := range transactions {
				tx.ID = fmt.Sprintf("txn-%d", i+1)
				created[i] = tx
			}
			insertedExpenses = created
			return created, nil
		},
	}

	var insertedPayslips []payslip.Payslip
	payslipRepo := &fakePayslipRepository{
		insertManyFn: func(ctx context.Context, payslips []payslip.Payslip) ([]payslip.Payslip, error) {
			created := make([]payslip.Payslip, len(payslips))
			for i, p := range payslips {
				p.ID = fmt.Sprintf("payslip-%d", i+1)
				created[i] = p
			}
			insertedPayslips = created
			return created, nil
		},
	}

	svc := payrollService.NewPayrollService(employeeRepo, payslipRepo, transactionRepo, &fakeLoanService{})

	result, err := svc.GeneratePayroll(context.Background(), generateRequest("emp-1", "emp-2", "emp-3"))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Generated)
	assert.Len(t, result.PayslipIDs, 3)
	assert.Empty(t, result.Skipped)
	require.Len(t, insertedExpenses, 3)
	require.Len(t, insertedPayslips, 3)

	// Each payslip links a distinct expense row.
	seen := map[string]bool{}
	for i, p := range insertedPayslips {
		require.NotNil(t, p.TransactionID)
		assert.False(t, seen[*p.TransactionID], "transaction %s linked twice", *p.TransactionID)
		seen[*p.TransactionID] = true
		assert.Equal(t, insertedExpenses[i].ID, *p.TransactionID)
	}

	// Half-month period pays half the base salary; expense matches gross.
	assert.True(t, d("15000").Equal(insertedPayslips[0].GrossSalary))
	assert.True(t, d("15000").Equal(insertedExpenses[0].Amount))
	assert.Equal(t, ledger.TypeExpense, insertedExpenses[0].Type)
	assert.Equal(t, ledger.CategoryPayroll, insertedExpenses[0].Category)
}

func TestGeneratePayroll_CapsLoanDeductionAtRemainingBalance(t *testing.T) {
	employeeRepo := &fakeEmployeeRepository{
		getByIDsFn: func(ctx context.Context, ids []string) ([]employee.Employee, error) {
			return []employee.Employee{salaried("emp-1", "Maria Santos", "40000")}, nil
		},
	}
	loanSvc := &fakeLoanService{
		activeLoansForManyFn: func(ctx context.Context, employeeIDs []string, asOf time.Time) (map[string][]loan.Loan, error) {
			return map[string][]loan.Loan{
				"emp-1": {{
					ID:               "loan-1",
					EmployeeID:       "emp-1",
					Status:           loan.StatusActive,
					MonthlyDeduction: d("5000"),
					RemainingBalance: d("3000"),
				}},
			}, nil
		},
	}

	var insertedPayslips []payslip.Payslip
	payslipRepo := &fakePayslipRepository{
		insertManyFn: func(ctx context.Context, payslips []payslip.Payslip) ([]payslip.Payslip, error) {
			created := make([]payslip.Payslip, len(payslips))
			for i, p := range payslips {
				p.ID = fmt.Sprintf("payslip-%d", i+1)
				created[i] = p
			}
			insertedPayslips = created
			return created, nil
		},
	}

	svc := payrollService.NewPayrollService(employeeRepo, payslipRepo, &fakeTransactionRepository{}, loanSvc)

	result, err := svc.GeneratePayroll(context.Background(), generateRequest("emp-1"))
	require.NoError(t, err)
	require.Equal(t, 1, result.Generated)

	// Deduction capped at the 3000 remaining, not the 5000 term.
	require.Len(t, insertedPayslips, 1)
	assert.True(t, d("3000").Equal(insertedPayslips[0].LoanDeduction))

	require.Len(t, loanSvc.applied, 1)
	assert.Equal(t, "loan-1", loanSvc.applied[0].loanID)
	assert.True(t, d("3000").Equal(loanSvc.applied[0].amount))
	require.NotNil(t, loanSvc.applied[0].payslipID)
	assert.Equal(t, "payslip-1", *loanSvc.applied[0].payslipID)
}

func TestGeneratePayroll_LinkMismatchAbortsBeforePayslips(t *testing.T) {
	employeeRepo := &fakeEmployeeRepository{
		getByIDsFn: func(ctx context.Context, ids []string) ([]employee.Employee, error) {
			return []employee.Employee{
				salaried("emp-1", "Maria Santos", "30000"),
				salaried("emp-2", "Juan Dela Cruz", "24000"),
			}, nil
		},
	}
	transactionRepo := &fakeTransactionRepository{
		insertManyFn: func(ctx context.Context, transactions []ledger.Transaction) ([]ledger.Transaction, error) {
			// Partial write: only the first row came back.
			first := transactions[0]
			first.ID = "txn-1"
			return []ledger.Transaction{first}, nil
		},
	}
	payslipRepo := &fakePayslipRepository{
		insertManyFn: func(ctx context.Context, payslips []payslip.Payslip) ([]payslip.Payslip, error) {
			t.Fatal("payslips must not be inserted after a link mismatch")
			return nil, nil
		},
	}

	svc := payrollService.NewPayrollService(employeeRepo, payslipRepo, transactionRepo, &fakeLoanService{})

	_, err := svc.GeneratePayroll(context.Background(), generateRequest("emp-1", "emp-2"))
	assert.ErrorIs(t, err, payroll.ErrLinkMismatch)
}

func TestGeneratePayroll_SkipsEmployeesWithoutBaseSalary(t *testing.T) {
	employeeRepo := &fakeEmployeeRepository{
		getByIDsFn: func(ctx context.Context, ids []string) ([]employee.Employee, error) {
			noSalary := employee.Employee{ID: "emp-2", FullName: "Juan Dela Cruz"}
			zero := decimal.Zero
			zeroSalary := employee.Employee{ID: "emp-3", FullName: "Ana Reyes", BaseSalary: &zero}
			return []employee.Employee{
				salaried("emp-1", "Maria Santos", "30000"),
				noSalary,
				zeroSalary,
			}, nil
		},
	}

	svc := payrollService.NewPayrollService(employeeRepo, &fakePayslipRepository{}, &fakeTransactionRepository{}, &fakeLoanService{})

	result, err := svc.GeneratePayroll(context.Background(), generateRequest("emp-1", "emp-2", "emp-3"))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Generated)
	assert.ElementsMatch(t, []string{"emp-2", "emp-3"}, result.Skipped)
}

func TestGeneratePayroll_NoEmployeesSelected(t *testing.T) {
	svc := payrollService.NewPayrollService(&fakeEmployeeRepository{}, &fakePayslipRepository{}, &fakeTransactionRepository{}, &fakeLoanService{})

	_, err := svc.GeneratePayroll(context.Background(), generateRequest("emp-unknown"))
	assert.ErrorIs(t, err, payroll.ErrNoEmployeesSelected)
}

func TestGeneratePayroll_SeedsRecurringDeductionsFromLatestPayslip(t *testing.T) {
	employeeRepo := &fakeEmployeeRepository{
		getByIDsFn: func(ctx context.Context, ids []string) ([]employee.Employee, error) {
			return []employee.Employee{salaried("emp-1", "Maria Santos", "30000")}, nil
		},
	}
	payslipRepo := &fakePayslipRepository{
		getLatestByEmployeeFn: func(ctx context.Context, employeeID string) (payslip.Payslip, error) {
			return payslip.Payslip{
				EmployeeID:  employeeID,
				SSS:         d("675"),
				Pagibig:     d("100"),
				Philhealth:  d("225"),
				Tax:         d("1200"),
				CashAdvance: d("2000"),
			}, nil
		},
	}

	var inserted []payslip.Payslip
	payslipRepo.insertManyFn = func(ctx context.Context, payslips []payslip.Payslip) ([]payslip.Payslip, error) {
		created := make([]payslip.Payslip, len(payslips))
		for i, p := range payslips {
			p.ID = fmt.Sprintf("payslip-%d", i+1)
			created[i] = p
		}
		inserted = created
		return created, nil
	}

	svc := payrollService.NewPayrollService(employeeRepo, payslipRepo, &fakeTransactionRepository{}, &fakeLoanService{})

	_, err := svc.GeneratePayroll(context.Background(), generateRequest("emp-1"))
	require.NoError(t, err)

	require.Len(t, inserted, 1)
	p := inserted[0]
	assert.True(t, d("675").Equal(p.SSS))
	assert.True(t, d("1200").Equal(p.Tax))
	// Cash advance is one-time; never carried into a generated payslip.
	assert.True(t, p.CashAdvance.IsZero())

	// Net: 15000 gross - (675 + 100 + 225 + 1200)
	assert.True(t, d("12800").Equal(p.NetSalary), "net %s", p.NetSalary)
}
