package payslip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kayaops/backoffice-backend-go/internal/domain/employee"
	"github.com/kayaops/backoffice-backend-go/internal/domain/loan"
	"github.com/kayaops/backoffice-backend-go/internal/domain/payslip"
)

type PayslipServiceImpl struct {
	payslipRepo  payslip.PayslipRepository
	employeeRepo employee.EmployeeRepository
	loanService  loan.LoanService
	linker       payslip.TransactionLinker
	now          func() time.Time
}

func NewPayslipService(
	payslipRepo payslip.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
	loanService loan.LoanService,
	linker payslip.TransactionLinker,
) payslip.PayslipService {
	return &PayslipServiceImpl{
		payslipRepo:  payslipRepo,
		employeeRepo: employeeRepo,
		loanService:  loanService,
		linker:       linker,
		now:          time.Now,
	}
}

func (s *PayslipServiceImpl) CreatePayslip(ctx context.Context, req payslip.SavePayslipRequest) (payslip.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.PayslipResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	p := payslipFromRequest(req)
	p = Recompute(p)

	// The expense transaction is written first; the payslip is never
	// committed "saved" without its linked ledger entry.
	if _, err := s.linker.LinkOrUpdate(ctx, &p, emp.FullName); err != nil {
		return payslip.PayslipResponse{}, err
	}

	created, err := s.payslipRepo.Insert(ctx, p)
	if err != nil {
		return payslip.PayslipResponse{}, fmt.Errorf("payroll expense %s created but payslip insert failed: %w", *p.TransactionID, err)
	}

	return mapToPayslipResponse(created), nil
}

func (s *PayslipServiceImpl) UpdatePayslip(ctx context.Context, req payslip.SavePayslipRequest) (payslip.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payslip.PayslipResponse{}, err
	}

	existing, err := s.payslipRepo.GetByID(ctx, req.ID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	p := payslipFromRequest(req)
	p.ID = existing.ID
	p.TransactionID = existing.TransactionID
	p = Recompute(p)

	// Edits update the linked transaction in place, never a second row.
	if _, err := s.linker.LinkOrUpdate(ctx, &p, emp.FullName); err != nil {
		return payslip.PayslipResponse{}, err
	}

	if err := s.payslipRepo.Update(ctx, p); err != nil {
		return payslip.PayslipResponse{}, fmt.Errorf("failed to update payslip %s: %w", p.ID, err)
	}

	return mapToPayslipResponse(p), nil
}

func (s *PayslipServiceImpl) GetPayslip(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	p, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	return mapToPayslipResponse(p), nil
}

func (s *PayslipServiceImpl) ListPayslips(ctx context.Context, filter payslip.PayslipFilter) ([]payslip.PayslipResponse, error) {
	payslips, err := s.payslipRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]payslip.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		result = append(result, mapToPayslipResponse(p))
	}
	return result, nil
}

func (s *PayslipServiceImpl) DeletePayslip(ctx context.Context, id string) error {
	if _, err := s.payslipRepo.GetByID(ctx, id); err != nil {
		return err
	}
	// The linked ledger transaction stays behind for audit continuity.
	return s.payslipRepo.Delete(ctx, id)
}

func (s *PayslipServiceImpl) GetDefaults(ctx context.Context, employeeID string) (payslip.PayslipDefaults, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return payslip.PayslipDefaults{}, err
	}

	var prior *payslip.Payslip
	latest, err := s.payslipRepo.GetLatestByEmployee(ctx, employeeID)
	if err == nil {
		prior = &latest
	} else if !errors.Is(err, payslip.ErrPayslipNotFound) {
		return payslip.PayslipDefaults{}, err
	}

	defaults := SeedDefaults(prior)

	// Loan deduction is always computed fresh, never carried over.
	loanDeduction, err := s.loanService.TotalDeductionFor(ctx, employeeID, s.now())
	if err != nil {
		return payslip.PayslipDefaults{}, err
	}
	defaults.LoanDeduction = loanDeduction

	return defaults, nil
}

func payslipFromRequest(req payslip.SavePayslipRequest) payslip.Payslip {
	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)
	issueDate, _ := time.Parse("2006-01-02", req.IssueDate)

	return payslip.Payslip{
		EmployeeID:      req.EmployeeID,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		IssueDate:       issueDate,
		GrossSalary:     req.GrossSalary,
		Bonuses:         req.Bonuses,
		Allowances:      req.Allowances,
		SSS:             req.SSS,
		Pagibig:         req.Pagibig,
		Philhealth:      req.Philhealth,
		Tax:             req.Tax,
		CashAdvance:     req.CashAdvance,
		LoanDeduction:   req.LoanDeduction,
		OtherDeductions: req.OtherDeductions,
		Notes:           req.Notes,
	}
}

func mapToPayslipResponse(p payslip.Payslip) payslip.PayslipResponse {
	employeeName := ""
	if p.EmployeeName != nil {
		employeeName = *p.EmployeeName
	}

	return payslip.PayslipResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		EmployeeName:    employeeName,
		PeriodStart:     p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       p.PeriodEnd.Format("2006-01-02"),
		IssueDate:       p.IssueDate.Format("2006-01-02"),
		GrossSalary:     p.GrossSalary,
		Bonuses:         p.Bonuses,
		Allowances:      p.Allowances,
		SSS:             p.SSS,
		Pagibig:         p.Pagibig,
		Philhealth:      p.Philhealth,
		Tax:             p.Tax,
		CashAdvance:     p.CashAdvance,
		LoanDeduction:   p.LoanDeduction,
		OtherDeductions: p.OtherDeductions,
		NetSalary:       p.NetSalary,
		Notes:           p.Notes,
		TransactionID:   p.TransactionID,
	}
}
