package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kayaops/backoffice-backend-go/internal/domain/employee"
	"github.com/kayaops/backoffice-backend-go/internal/domain/ledger"
	"github.com/kayaops/backoffice-backend-go/internal/domain/loan"
	"github.com/kayaops/backoffice-backend-go/internal/domain/payroll"
	"github.com/kayaops/backoffice-backend-go/internal/domain/payslip"
	loanService "github.com/kayaops/backoffice-backend-go/internal/service/loan"
	payslipService "github.com/kayaops/backoffice-backend-go/internal/service/payslip"
)

type PayrollServiceImpl struct {
	employeeRepo    employee.EmployeeRepository
	payslipRepo     payslip.PayslipRepository
	transactionRepo ledger.TransactionRepository
	loanSvc         loan.LoanService
	now             func() time.Time
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	payslipRepo payslip.PayslipRepository,
	transactionRepo ledger.TransactionRepository,
	loanSvc loan.LoanService,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		employeeRepo:    employeeRepo,
		payslipRepo:     payslipRepo,
		transactionRepo: transactionRepo,
		loanSvc:         loanSvc,
		now:             time.Now,
	}
}

// GeneratePayroll creates one payslip plus one linked ledger expense per
// selected employee for the declared pay period, then applies loan
// payments once per active loan. The store has no cross-table
// transaction, so the steps are strictly ordered: build everything in
// memory, insert the expense batch, verify the one-to-one link, insert
// the payslip batch, then pay down loans. Any failure aborts with an
// error naming the step instead of leaving a silent partial batch.
func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)
	issueDate := s.now().Truncate(24 * time.Hour)
	if req.IssueDate != "" {
		issueDate, _ = time.Parse("2006-01-02", req.IssueDate)
	}

	// Read-only snapshot for the whole run: employees, their active
	// loans, and their most recent payslips. No re-reads mid-pass.
	employees, err := s.employeeRepo.GetByIDs(ctx, req.EmployeeIDs)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to load employees: %w", err)
	}
	if len(employees) == 0 {
		return payroll.GeneratePayrollResponse{}, payroll.ErrNoEmployeesSelected
	}

	loansByEmployee, err := s.loanSvc.ActiveLoansForMany(ctx, req.EmployeeIDs, s.now())
	if err != nil {
		return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to load active loans: %w", err)
	}

	var skipped []string
	var batch []payslip.Payslip
	var names []string

	for _, emp := range employees {
		if emp.BaseSalary == nil || emp.BaseSalary.IsZero() {
			skipped = append(skipped, emp.ID)
			continue
		}

		gross := payslipService.PeriodGross(periodStart, periodEnd, *emp.BaseSalary)

		loanDeduction := decimal.Zero
		for _, ln := range loansByEmployee[emp.ID] {
			loanDeduction = loanDeduction.Add(loanService.DeductionAmount(ln))
		}

		var prior *payslip.Payslip
		latest, err := s.payslipRepo.GetLatestByEmployee(ctx, emp.ID)
		if err == nil {
			prior = &latest
		} else if !errors.Is(err, payslip.ErrPayslipNotFound) {
			return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to load prior payslip for employee %s: %w", emp.ID, err)
		}
		defaults := payslipService.SeedDefaults(prior)

		p := payslip.Payslip{
			EmployeeID:    emp.ID,
			PeriodStart:   periodStart,
			PeriodEnd:     periodEnd,
			IssueDate:     issueDate,
			GrossSalary:   gross,
			Bonuses:       defaults.Bonuses,
			Allowances:    defaults.Allowances,
			SSS:           defaults.SSS,
			Pagibig:       defaults.Pagibig,
			Philhealth:    defaults.Philhealth,
			Tax:           defaults.Tax,
			CashAdvance:   decimal.Zero,
			LoanDeduction: loanDeduction,
		}
		p = payslipService.Recompute(p)

		batch = append(batch, p)
		names = append(names, emp.FullName)
	}

	if len(batch) == 0 {
		return payroll.GeneratePayrollResponse{Skipped: skipped}, nil
	}

	// Step one: create all ledger expenses as one batch.
	expenses := make([]ledger.Transaction, len(batch))
	for i, p := range batch {
		expenses[i] = BuildExpense(p, names[i])
	}
	createdExpenses, err := s.transactionRepo.InsertMany(ctx, expenses)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to create payroll expense transactions: %w", err)
	}

	// A count mismatch means a partial write; abort before any payslip
	// exists rather than persist unlinked payslips.
	if len(createdExpenses) != len(batch) {
		return payroll.GeneratePayrollResponse{}, fmt.Errorf("%w: %d transactions for %d payslips",
			payroll.ErrLinkMismatch, len(createdExpenses), len(batch))
	}

	for i := range batch {
		id := createdExpenses[i].ID
		batch[i].TransactionID = &id
	}

	createdPayslips, err := s.payslipRepo.InsertMany(ctx, batch)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, fmt.Errorf("expense transactions created but payslip batch insert failed: %w", err)
	}

	// Pay down loans once per active loan per generated payslip, each
	// capped at min(per-period deduction, remaining balance).
	for _, p := range createdPayslips {
		if p.LoanDeduction.IsZero() {
			continue
		}
		for _, ln := range loansByEmployee[p.EmployeeID] {
			amount := loanService.DeductionAmount(ln)
			if amount.IsZero() {
				continue
			}
			payslipID := p.ID
			if _, err := s.loanSvc.ApplyPayment(ctx, ln, amount, issueDate, &payslipID, loan.PaymentTypePayrollDeduction); err != nil {
				return payroll.GeneratePayrollResponse{}, fmt.Errorf("payslips created but loan payment failed for loan %s (employee %s): %w", ln.ID, p.EmployeeID, err)
			}
		}
	}

	ids := make([]string, len(createdPayslips))
	for i, p := range createdPayslips {
		ids[i] = p.ID
	}

	return payroll.GeneratePayrollResponse{
		Generated:  len(createdPayslips),
		PayslipIDs: ids,
		Skipped:    skipped,
	}, nil
}
