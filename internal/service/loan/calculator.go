package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kayaops/backoffice-backend-go/internal/domain/loan"
)

var twelveHundred = decimal.NewFromInt(1200)

// TotalPayable estimates the total repayable amount at loan creation.
// The repayment duration is estimated as ceil(principal / deduction)
// periods and simple interest is applied over that duration:
// principal × rate × periods / (12 × 100). This is a deliberate
// approximation, not amortized or compound interest.
func TotalPayable(principal, annualRatePercent, deduction decimal.Decimal) (decimal.Decimal, error) {
	if !deduction.IsPositive() {
		return decimal.Zero, loan.ErrInvalidDeduction
	}

	periods := principal.Div(deduction).Ceil()
	interest := principal.Mul(annualRatePercent).Mul(periods).Div(twelveHundred)
	return principal.Add(interest), nil
}

// PaymentResult carries the computed payment row and the post-payment
// loan state. Persistence is the caller's responsibility.
type PaymentResult struct {
	Payment loan.LoanPayment
	Loan    loan.Loan
}

// ComputePayment applies a payment against a loan snapshot. The full
// balance/status/payment triple is computed together or not at all:
// validation failures leave the loan untouched.
func ComputePayment(ln loan.Loan, amount decimal.Decimal, date time.Time, payslipID *string, paymentType loan.PaymentType) (PaymentResult, error) {
	if !amount.IsPositive() {
		return PaymentResult{}, loan.ErrInvalidAmount
	}
	if amount.GreaterThan(ln.RemainingBalance) {
		return PaymentResult{}, loan.ErrInsufficientBalance
	}

	balanceBefore := ln.RemainingBalance
	balanceAfter := balanceBefore.Sub(amount)

	ln.RemainingBalance = balanceAfter
	if balanceAfter.LessThanOrEqual(decimal.Zero) {
		ln.Status = loan.StatusCompleted
		endDate := date
		ln.EndDate = &endDate
	}

	payment := loan.LoanPayment{
		LoanID:        ln.ID,
		PayslipID:     payslipID,
		PaymentDate:   date,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		PaymentType:   paymentType,
	}

	return PaymentResult{Payment: payment, Loan: ln}, nil
}

// DeductionAmount caps a loan's per-period deduction at its remaining
// balance so the final payment completes the loan without overpaying.
func DeductionAmount(ln loan.Loan) decimal.Decimal {
	if ln.MonthlyDeduction.GreaterThan(ln.RemainingBalance) {
		return ln.RemainingBalance
	}
	return ln.MonthlyDeduction
}
