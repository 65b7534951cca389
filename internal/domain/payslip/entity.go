package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payslip is one employee's computed pay record for one period.
// NetSalary is always derived server-side:
// gross + bonuses + allowances − (sss + pagibig + philhealth + tax +
// cash_advance + loan_deduction + other_deductions).
// TransactionID links the payslip to its single bookkeeping expense row.
type Payslip struct {
	ID              string
	EmployeeID      string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	IssueDate       time.Time
	GrossSalary     decimal.Decimal
	Bonuses         decimal.Decimal
	Allowances      decimal.Decimal
	SSS             decimal.Decimal
	Pagibig         decimal.Decimal
	Philhealth      decimal.Decimal
	Tax             decimal.Decimal
	CashAdvance     decimal.Decimal
	LoanDeduction   decimal.Decimal
	OtherDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	Notes           *string
	TransactionID   *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
}
