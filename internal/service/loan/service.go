package loan

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kayaops/backoffice-backend-go/internal/domain/employee"
	"github.com/kayaops/backoffice-backend-go/internal/domain/loan"
)

type LoanServiceImpl struct {
	loanRepo     loan.LoanRepository
	employeeRepo employee.EmployeeRepository
}

func NewLoanService(loanRepo loan.LoanRepository, employeeRepo employee.EmployeeRepository) loan.LoanService {
	return &LoanServiceImpl{
		loanRepo:     loanRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *LoanServiceImpl) CreateLoan(ctx context.Context, req loan.CreateLoanRequest) (loan.LoanResponse, error) {
	if err := req.Validate(); err != nil {
		return loan.LoanResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return loan.LoanResponse{}, err
	}

	totalAmount, err := TotalPayable(req.Principal, req.InterestRate, req.MonthlyDeduction)
	if err != nil {
		return loan.LoanResponse{}, err
	}

	loanDate, _ := time.Parse("2006-01-02", req.LoanDate)
	startDeduction, _ := time.Parse("2006-01-02", req.StartDeductionDate)

	newLoan := loan.Loan{
		EmployeeID:         req.EmployeeID,
		Category:           loan.Category(req.Category),
		Principal:          req.Principal,
		InterestRate:       req.InterestRate,
		TotalAmount:        totalAmount,
		MonthlyDeduction:   req.MonthlyDeduction,
		RemainingBalance:   totalAmount,
		LoanDate:           loanDate,
		StartDeductionDate: startDeduction,
		Status:             loan.StatusActive,
		Purpose:            req.Purpose,
	}

	created, err := s.loanRepo.Create(ctx, newLoan)
	if err != nil {
		return loan.LoanResponse{}, fmt.Errorf("failed to create loan: %w", err)
	}

	return mapToLoanResponse(created), nil
}

func (s *LoanServiceImpl) GetLoan(ctx context.Context, id string) (loan.LoanResponse, error) {
	ln, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		return loan.LoanResponse{}, err
	}
	return mapToLoanResponse(ln), nil
}

func (s *LoanServiceImpl) ListLoans(ctx context.Context, filter loan.LoanFilter) ([]loan.LoanResponse, error) {
	loans, err := s.loanRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]loan.LoanResponse, 0, len(loans))
	for _, ln := range loans {
		result = append(result, mapToLoanResponse(ln))
	}
	return result, nil
}

func (s *LoanServiceImpl) UpdateLoan(ctx context.Context, req loan.UpdateLoanRequest) (loan.LoanResponse, error) {
	if err := req.Validate(); err != nil {
		return loan.LoanResponse{}, err
	}

	if _, err := s.loanRepo.GetByID(ctx, req.ID); err != nil {
		return loan.LoanResponse{}, err
	}

	if err := s.loanRepo.Update(ctx, req.ID, req); err != nil {
		return loan.LoanResponse{}, fmt.Errorf("failed to update loan: %w", err)
	}

	updated, err := s.loanRepo.GetByID(ctx, req.ID)
	if err != nil {
		return loan.LoanResponse{}, err
	}
	return mapToLoanResponse(updated), nil
}

func (s *LoanServiceImpl) DeleteLoan(ctx context.Context, id string) error {
	if _, err := s.loanRepo.GetByID(ctx, id); err != nil {
		return err
	}
	// Cascades the loan's payment history; no orphaned payments survive.
	return s.loanRepo.Delete(ctx, id)
}

func (s *LoanServiceImpl) ListPayments(ctx context.Context, loanID string) ([]loan.LoanPaymentResponse, error) {
	if _, err := s.loanRepo.GetByID(ctx, loanID); err != nil {
		return nil, err
	}

	payments, err := s.loanRepo.ListPaymentsByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	result := make([]loan.LoanPaymentResponse, 0, len(payments))
	for _, p := range payments {
		result = append(result, mapToPaymentResponse(p))
	}
	return result, nil
}

func (s *LoanServiceImpl) RecordManualPayment(ctx context.Context, req loan.RecordPaymentRequest) (loan.LoanPaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return loan.LoanPaymentResponse{}, err
	}

	ln, err := s.loanRepo.GetByID(ctx, req.LoanID)
	if err != nil {
		return loan.LoanPaymentResponse{}, err
	}
	if ln.Status != loan.StatusActive {
		return loan.LoanPaymentResponse{}, loan.ErrLoanNotActive
	}

	paymentDate, _ := time.Parse("2006-01-02", req.PaymentDate)

	result, err := ComputePayment(ln, req.Amount, paymentDate, nil, loan.PaymentTypeManual)
	if err != nil {
		return loan.LoanPaymentResponse{}, err
	}
	result.Payment.Notes = req.Notes

	created, err := s.persistPayment(ctx, result)
	if err != nil {
		return loan.LoanPaymentResponse{}, err
	}
	return mapToPaymentResponse(created), nil
}

func (s *LoanServiceImpl) ActiveLoansFor(ctx context.Context, employeeID string, asOf time.Time) ([]loan.Loan, error) {
	return s.loanRepo.ListActiveByEmployee(ctx, employeeID, asOf)
}

func (s *LoanServiceImpl) ActiveLoansForMany(ctx context.Context, employeeIDs []string, asOf time.Time) (map[string][]loan.Loan, error) {
	loans, err := s.loanRepo.ListActiveByEmployees(ctx, employeeIDs, asOf)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]loan.Loan)
	for _, ln := range loans {
		grouped[ln.EmployeeID] = append(grouped[ln.EmployeeID], ln)
	}
	return grouped, nil
}

func (s *LoanServiceImpl) TotalDeductionFor(ctx context.Context, employeeID string, asOf time.Time) (decimal.Decimal, error) {
	loans, err := s.loanRepo.ListActiveByEmployee(ctx, employeeID, asOf)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, ln := range loans {
		total = total.Add(DeductionAmount(ln))
	}
	return total, nil
}

func (s *LoanServiceImpl) ApplyPayment(ctx context.Context, ln loan.Loan, amount decimal.Decimal, date time.Time, payslipID *string, paymentType loan.PaymentType) (loan.Loan, error) {
	result, err := ComputePayment(ln, amount, date, payslipID, paymentType)
	if err != nil {
		return loan.Loan{}, err
	}

	if _, err := s.persistPayment(ctx, result); err != nil {
		return loan.Loan{}, err
	}
	return result.Loan, nil
}

// persistPayment writes the payment row first, then the loan balance and
// status. The store offers no cross-table transaction, so a failure
// between the two writes is reported as a distinct partial failure
// instead of being silently absorbed.
func (s *LoanServiceImpl) persistPayment(ctx context.Context, result PaymentResult) (loan.LoanPayment, error) {
	created, err := s.loanRepo.InsertPayment(ctx, result.Payment)
	if err != nil {
		return loan.LoanPayment{}, fmt.Errorf("failed to record loan payment: %w", err)
	}

	balance := loan.BalanceUpdate{
		RemainingBalance: result.Loan.RemainingBalance,
		Status:           result.Loan.Status,
		EndDate:          result.Loan.EndDate,
	}
	if err := s.loanRepo.UpdateBalance(ctx, result.Loan.ID, balance); err != nil {
		return loan.LoanPayment{}, fmt.Errorf("payment recorded but balance update failed for loan %s: %w", result.Loan.ID, err)
	}

	return created, nil
}

func mapToLoanResponse(ln loan.Loan) loan.LoanResponse {
	var endDateStr *string
	if ln.EndDate != nil {
		str := ln.EndDate.Format("2006-01-02")
		endDateStr = &str
	}

	employeeName := ""
	if ln.EmployeeName != nil {
		employeeName = *ln.EmployeeName
	}

	return loan.LoanResponse{
		ID:                 ln.ID,
		EmployeeID:         ln.EmployeeID,
		EmployeeName:       employeeName,
		Category:           string(ln.Category),
		Principal:          ln.Principal,
		InterestRate:       ln.InterestRate,
		TotalAmount:        ln.TotalAmount,
		MonthlyDeduction:   ln.MonthlyDeduction,
		RemainingBalance:   ln.RemainingBalance,
		LoanDate:           ln.LoanDate.Format("2006-01-02"),
		StartDeductionDate: ln.StartDeductionDate.Format("2006-01-02"),
		Status:             string(ln.Status),
		EndDate:            endDateStr,
		Purpose:            ln.Purpose,
	}
}

func mapToPaymentResponse(p loan.LoanPayment) loan.LoanPaymentResponse {
	return loan.LoanPaymentResponse{
		ID:            p.ID,
		LoanID:        p.LoanID,
		PayslipID:     p.PayslipID,
		PaymentDate:   p.PaymentDate.Format("2006-01-02"),
		Amount:        p.Amount,
		BalanceBefore: p.BalanceBefore,
		BalanceAfter:  p.BalanceAfter,
		PaymentType:   string(p.PaymentType),
		Notes:         p.Notes,
	}
}
