package payslip

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kayaops/backoffice-backend-go/internal/domain/payslip"
)

var two = decimal.NewFromInt(2)

// PeriodGross returns the gross pay for a period. A period that is
// exactly the first half of a month (day 1 to 15) or exactly the second
// half (day 16 to the month's last day) pays half the base salary;
// anything else is treated as a full month.
func PeriodGross(periodStart, periodEnd time.Time, baseSalary decimal.Decimal) decimal.Decimal {
	if isFirstHalf(periodStart, periodEnd) || isSecondHalf(periodStart, periodEnd) {
		return baseSalary.Div(two)
	}
	return baseSalary
}

func isFirstHalf(start, end time.Time) bool {
	return sameMonth(start, end) && start.Day() == 1 && end.Day() == 15
}

func isSecondHalf(start, end time.Time) bool {
	return sameMonth(start, end) && start.Day() == 16 && end.Day() == lastDayOfMonth(end)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, -1).Day()
}

// Recompute derives the payslip's net salary from its parts. It runs on
// every save path; a client-computed net is never trusted.
func Recompute(p payslip.Payslip) payslip.Payslip {
	additions := p.Bonuses.Add(p.Allowances)
	deductions := p.SSS.
		Add(p.Pagibig).
		Add(p.Philhealth).
		Add(p.Tax).
		Add(p.CashAdvance).
		Add(p.LoanDeduction).
		Add(p.OtherDeductions)
	p.NetSalary = p.GrossSalary.Add(additions).Sub(deductions)
	return p
}

// SeedDefaults prefills a new payslip from the employee's most recent
// one: recurring fields (statutory deductions, tax, bonuses, allowances)
// carry over, one-time fields (cash advance, other deductions) reset to
// zero. The loan deduction is never copied; callers fill it in from the
// loan ledger.
func SeedDefaults(prior *payslip.Payslip) payslip.PayslipDefaults {
	defaults := payslip.PayslipDefaults{
		GrossSalary:   decimal.Zero,
		Bonuses:       decimal.Zero,
		Allowances:    decimal.Zero,
		SSS:           decimal.Zero,
		Pagibig:       decimal.Zero,
		Philhealth:    decimal.Zero,
		Tax:           decimal.Zero,
		CashAdvance:   decimal.Zero,
		LoanDeduction: decimal.Zero,
	}
	if prior == nil {
		return defaults
	}

	defaults.GrossSalary = prior.GrossSalary
	defaults.Bonuses = prior.Bonuses
	defaults.Allowances = prior.Allowances
	defaults.SSS = prior.SSS
	defaults.Pagibig = prior.Pagibig
	defaults.Philhealth = prior.Philhealth
	defaults.Tax = prior.Tax
	return defaults
}
