package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kayaops/backoffice-backend-go/internal/pkg/validator"
)

type CreateLoanRequest struct {
	EmployeeID         string          `json:"employee_id"`
	Category           string          `json:"category"`
	Principal          decimal.Decimal `json:"principal"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyDeduction   decimal.Decimal `json:"monthly_deduction"`
	LoanDate           string          `json:"loan_date"`
	StartDeductionDate string          `json:"start_deduction_date"`
	Purpose            *string         `json:"purpose,omitempty"`
}

func (r *CreateLoanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsInSlice(r.Category, []string{"cash_advance", "emergency", "salary", "equipment", "other"}) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "must be one of 'cash_advance', 'emergency', 'salary', 'equipment', 'other'"})
	}
	if !r.Principal.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "principal", Message: "must be positive"})
	}
	if r.InterestRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "interest_rate", Message: "must be non-negative"})
	}
	if !r.MonthlyDeduction.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "monthly_deduction", Message: "must be positive"})
	}
	if _, ok := validator.IsValidDate(r.LoanDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "loan_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.StartDeductionDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_deduction_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateLoanRequest edits loan terms in place. It never rewrites prior
// payments; balance changes flow through payment application only.
type UpdateLoanRequest struct {
	ID                 string           `json:"-"`
	Category           *string          `json:"category,omitempty"`
	MonthlyDeduction   *decimal.Decimal `json:"monthly_deduction,omitempty"`
	StartDeductionDate *string          `json:"start_deduction_date,omitempty"`
	Status             *string          `json:"status,omitempty"`
	Purpose            *string          `json:"purpose,omitempty"`
}

func (r *UpdateLoanRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Category != nil && !validator.IsInSlice(*r.Category, []string{"cash_advance", "emergency", "salary", "equipment", "other"}) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "must be one of 'cash_advance', 'emergency', 'salary', 'equipment', 'other'"})
	}
	if r.MonthlyDeduction != nil && !r.MonthlyDeduction.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "monthly_deduction", Message: "must be positive"})
	}
	if r.StartDeductionDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDeductionDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_deduction_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{"active", "cancelled"}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active' or 'cancelled'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordPaymentRequest struct {
	LoanID      string          `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	Notes       *string         `json:"notes,omitempty"`
}

func (r *RecordPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if _, ok := validator.IsValidDate(r.PaymentDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoanFilter struct {
	EmployeeID *string
	Status     *string
}

type LoanResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name,omitempty"`
	Category           string          `json:"category"`
	Principal          decimal.Decimal `json:"principal"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	MonthlyDeduction   decimal.Decimal `json:"monthly_deduction"`
	RemainingBalance   decimal.Decimal `json:"remaining_balance"`
	LoanDate           string          `json:"loan_date"`
	StartDeductionDate string          `json:"start_deduction_date"`
	Status             string          `json:"status"`
	EndDate            *string         `json:"end_date,omitempty"`
	Purpose            *string         `json:"purpose,omitempty"`
}

type LoanPaymentResponse struct {
	ID            string          `json:"id"`
	LoanID        string          `json:"loan_id"`
	PayslipID     *string         `json:"payslip_id,omitempty"`
	PaymentDate   string          `json:"payment_date"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	PaymentType   string          `json:"payment_type"`
	Notes         *string         `json:"notes,omitempty"`
}

// BalanceUpdate carries the post-payment loan state to be persisted.
type BalanceUpdate struct {
	RemainingBalance decimal.Decimal
	Status           Status
	EndDate          *time.Time
}
