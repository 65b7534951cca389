package loan_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kayaops/backoffice-backend-go/internal/domain/loan"
	loanService "github.com/kayaops/backoffice-backend-go/internal/service/loan"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestTotalPayable(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		deduction string
		want      string
	}{
		{
			// 10000 / 1000 = 10 periods, interest 10000*5*10/1200 = 416.67
			name:      "even division",
			principal: "10000",
			rate:      "5",
			deduction: "1000",
			want:      "10416.6666666666666667",
		},
		{
			// 10000 / 3000 = 3.33 -> 4 periods, interest 10000*5*4/1200 = 166.67
			name:      "partial final period rounds up",
			principal: "10000",
			rate:      "5",
			deduction: "3000",
			want:      "10166.6666666666666667",
		},
		{
			name:      "zero interest rate",
			principal: "5000",
			rate:      "0",
			deduction: "500",
			want:      "5000",
		},
		{
			name:      "deduction exceeds principal",
			principal: "1000",
			rate:      "12",
			deduction: "5000",
			want:      "1010",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loanService.TotalPayable(d(tt.principal), d(tt.rate), d(tt.deduction))
			require.NoError(t, err)
			assert.True(t, d(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestTotalPayable_InvalidDeduction(t *testing.T) {
	_, err := loanService.TotalPayable(d("10000"), d("5"), decimal.Zero)
	assert.ErrorIs(t, err, loan.ErrInvalidDeduction)

	_, err = loanService.TotalPayable(d("10000"), d("5"), d("-100"))
	assert.ErrorIs(t, err, loan.ErrInvalidDeduction)
}

func TestComputePayment(t *testing.T) {
	paymentDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	ln := loan.Loan{
		ID:               "loan-1",
		EmployeeID:       "emp-1",
		Status:           loan.StatusActive,
		RemainingBalance: d("5000"),
		MonthlyDeduction: d("1000"),
	}

	result, err := loanService.ComputePayment(ln, d("1000"), paymentDate, nil, loan.PaymentTypeManual)
	require.NoError(t, err)

	assert.True(t, d("5000").Equal(result.Payment.BalanceBefore))
	assert.True(t, d("4000").Equal(result.Payment.BalanceAfter))
	assert.True(t, d("4000").Equal(result.Loan.RemainingBalance))
	assert.Equal(t, loan.StatusActive, result.Loan.Status)
	assert.Nil(t, result.Loan.EndDate)
	assert.Equal(t, loan.PaymentTypeManual, result.Payment.PaymentType)
}

func TestComputePayment_CompletesLoanAtZero(t *testing.T) {
	paymentDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	ln := loan.Loan{
		ID:               "loan-1",
		Status:           loan.StatusActive,
		RemainingBalance: d("1000"),
		MonthlyDeduction: d("1000"),
	}

	result, err := loanService.ComputePayment(ln, d("1000"), paymentDate, nil, loan.PaymentTypePayrollDeduction)
	require.NoError(t, err)

	assert.True(t, result.Loan.RemainingBalance.IsZero())
	assert.Equal(t, loan.StatusCompleted, result.Loan.Status)
	require.NotNil(t, result.Loan.EndDate)
	assert.Equal(t, paymentDate, *result.Loan.EndDate)
}

func TestComputePayment_RejectsOverpayment(t *testing.T) {
	ln := loan.Loan{
		ID:               "loan-1",
		Status:           loan.StatusActive,
		RemainingBalance: d("500"),
	}

	_, err := loanService.ComputePayment(ln, d("501"), time.Now(), nil, loan.PaymentTypeManual)
	assert.ErrorIs(t, err, loan.ErrInsufficientBalance)

	// The snapshot is untouched on rejection.
	assert.True(t, d("500").Equal(ln.RemainingBalance))
	assert.Equal(t, loan.StatusActive, ln.Status)
}

func TestComputePayment_RejectsNonPositiveAmount(t *testing.T) {
	ln := loan.Loan{RemainingBalance: d("500")}

	_, err := loanService.ComputePayment(ln, decimal.Zero, time.Now(), nil, loan.PaymentTypeManual)
	assert.ErrorIs(t, err, loan.ErrInvalidAmount)

	_, err = loanService.ComputePayment(ln, d("-10"), time.Now(), nil, loan.PaymentTypeManual)
	assert.ErrorIs(t, err, loan.ErrInvalidAmount)
}

func TestDeductionAmount(t *testing.T) {
	full := loan.Loan{MonthlyDeduction: d("1000"), RemainingBalance: d("5000")}
	assert.True(t, d("1000").Equal(loanService.DeductionAmount(full)))

	capped := loan.Loan{MonthlyDeduction: d("1000"), RemainingBalance: d("300")}
	assert.True(t, d("300").Equal(loanService.DeductionAmount(capped)))

	exact := loan.Loan{MonthlyDeduction: d("1000"), RemainingBalance: d("1000")}
	assert.True(t, d("1000").Equal(loanService.DeductionAmount(exact)))
}
