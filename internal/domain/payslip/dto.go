package payslip

import (
	"github.com/shopspring/decimal"

	"github.com/kayaops/backoffice-backend-go/internal/pkg/validator"
)

type SavePayslipRequest struct {
	ID              string          `json:"-"`
	EmployeeID      string          `json:"employee_id"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	IssueDate       string          `json:"issue_date"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	Bonuses         decimal.Decimal `json:"bonuses"`
	Allowances      decimal.Decimal `json:"allowances"`
	SSS             decimal.Decimal `json:"sss"`
	Pagibig         decimal.Decimal `json:"pagibig"`
	Philhealth      decimal.Decimal `json:"philhealth"`
	Tax             decimal.Decimal `json:"tax"`
	CashAdvance     decimal.Decimal `json:"cash_advance"`
	LoanDeduction   decimal.Decimal `json:"loan_deduction"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	Notes           *string         `json:"notes,omitempty"`
}

func (r *SavePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}
	if _, ok := validator.IsValidDate(r.IssueDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "issue_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.GrossSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "gross_salary", Message: "must be non-negative"})
	}
	for field, amount := range map[string]decimal.Decimal{
		"bonuses":          r.Bonuses,
		"allowances":       r.Allowances,
		"sss":              r.SSS,
		"pagibig":          r.Pagibig,
		"philhealth":       r.Philhealth,
		"tax":              r.Tax,
		"cash_advance":     r.CashAdvance,
		"loan_deduction":   r.LoanDeduction,
		"other_deductions": r.OtherDeductions,
	} {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipFilter struct {
	EmployeeID  *string
	PeriodStart *string
	PeriodEnd   *string
}

type PayslipResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	IssueDate       string          `json:"issue_date"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	Bonuses         decimal.Decimal `json:"bonuses"`
	Allowances      decimal.Decimal `json:"allowances"`
	SSS             decimal.Decimal `json:"sss"`
	Pagibig         decimal.Decimal `json:"pagibig"`
	Philhealth      decimal.Decimal `json:"philhealth"`
	Tax             decimal.Decimal `json:"tax"`
	CashAdvance     decimal.Decimal `json:"cash_advance"`
	LoanDeduction   decimal.Decimal `json:"loan_deduction"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	Notes           *string         `json:"notes,omitempty"`
	TransactionID   *string         `json:"transaction_id,omitempty"`
}

// PayslipDefaults prefills the create-payslip form: recurring fields
// copied from the employee's most recent payslip, one-time fields
// zeroed, and the loan deduction freshly computed from active loans.
type PayslipDefaults struct {
	GrossSalary   decimal.Decimal `json:"gross_salary"`
	Bonuses       decimal.Decimal `json:"bonuses"`
	Allowances    decimal.Decimal `json:"allowances"`
	SSS           decimal.Decimal `json:"sss"`
	Pagibig       decimal.Decimal `json:"pagibig"`
	Philhealth    decimal.Decimal `json:"philhealth"`
	Tax           decimal.Decimal `json:"tax"`
	CashAdvance   decimal.Decimal `json:"cash_advance"`
	LoanDeduction decimal.Decimal `json:"loan_deduction"`
}
