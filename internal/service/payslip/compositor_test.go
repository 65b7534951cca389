package payslip_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kayaops/backoffice-backend-go/internal/domain/payslip"
	payslipService "github.com/kayaops/backoffice-backend-go/internal/service/payslip"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func date(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func TestPeriodGross(t *testing.T) {
	base := d("30000")

	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"first half of month", "2025-01-01", "2025-01-15", "15000"},
		{"second half of 31-day month", "2025-01-16", "2025-01-31", "15000"},
		{"second half of 30-day month", "2025-04-16", "2025-04-30", "15000"},
		{"second half of february", "2025-02-16", "2025-02-28", "15000"},
		{"second half of leap february", "2024-02-16", "2024-02-29", "15000"},
		{"full month", "2025-01-01", "2025-01-31", "30000"},
		{"irregular period pays full", "2025-01-05", "2025-01-20", "30000"},
		{"second half ending early pays full", "2025-01-16", "2025-01-30", "30000"},
		{"period spanning months pays full", "2025-01-16", "2025-02-15", "30000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payslipService.PeriodGross(date(tt.start), date(tt.end), base)
			assert.True(t, d(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestRecompute(t *testing.T) {
	p := payslip.Payslip{
		GrossSalary:     d("30000"),
		Bonuses:         d("2000"),
		Allowances:      d("1500"),
		SSS:             d("1350"),
		Pagibig:         d("200"),
		Philhealth:      d("450"),
		Tax:             d("2500"),
		CashAdvance:     d("1000"),
		LoanDeduction:   d("1500"),
		OtherDeductions: d("300"),
		NetSalary:       d("999999"), // client-supplied value is discarded
	}

	got := payslipService.Recompute(p)

	// 30000 + 3500 - 7300
	assert.True(t, d("26200").Equal(got.NetSalary), "net %s", got.NetSalary)
}

func TestRecompute_AllZeroes(t *testing.T) {
	got := payslipService.Recompute(payslip.Payslip{})
	assert.True(t, got.NetSalary.IsZero())
}

func TestSeedDefaults_NoPriorPayslip(t *testing.T) {
	defaults := payslipService.SeedDefaults(nil)

	assert.True(t, defaults.GrossSalary.IsZero())
	assert.True(t, defaults.SSS.IsZero())
	assert.True(t, defaults.CashAdvance.IsZero())
	assert.True(t, defaults.LoanDeduction.IsZero())
}

func TestSeedDefaults_CopiesRecurringResetsOneTime(t *testing.T) {
	prior := &payslip.Payslip{
		GrossSalary:     d("30000"),
		Bonuses:         d("2000"),
		Allowances:      d("1500"),
		SSS:             d("1350"),
		Pagibig:         d("200"),
		Philhealth:      d("450"),
		Tax:             d("2500"),
		CashAdvance:     d("5000"),
		LoanDeduction:   d("1500"),
		OtherDeductions: d("300"),
	}

	defaults := payslipService.SeedDefaults(prior)

	assert.True(t, d("30000").Equal(defaults.GrossSalary))
	assert.True(t, d("2000").Equal(defaults.Bonuses))
	assert.True(t, d("1500").Equal(defaults.Allowances))
	assert.True(t, d("1350").Equal(defaults.SSS))
	assert.True(t, d("200").Equal(defaults.Pagibig))
	assert.True(t, d("450").Equal(defaults.Philhealth))
	assert.True(t, d("2500").Equal(defaults.Tax))

	// One-time fields never carry over; the loan deduction is computed
	// fresh from the loan ledger by the caller.
	assert.True(t, defaults.CashAdvance.IsZero())
	assert.True(t, defaults.LoanDeduction.IsZero())
}
