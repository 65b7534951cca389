package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryCashAdvance Category = "cash_advance"
	CategoryEmergency   Category = "emergency"
	CategorySalary      Category = "salary"
	CategoryEquipment   Category = "equipment"
	CategoryOther       Category = "other"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Loan is an employee loan repaid through per-period payroll deductions.
// RemainingBalance stays within [0, TotalAmount]; Status is completed
// exactly when RemainingBalance reaches zero, and EndDate is set at that
// moment.
type Loan struct {
	ID                 string
	EmployeeID         string
	Category           Category
	Principal          decimal.Decimal
	InterestRate       decimal.Decimal // annual rate in percent
	TotalAmount        decimal.Decimal
	MonthlyDeduction   decimal.Decimal
	RemainingBalance   decimal.Decimal
	LoanDate           time.Time
	StartDeductionDate time.Time
	Status             Status
	EndDate            *time.Time
	Purpose            *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	EmployeeName *string
}

type PaymentType string

const (
	PaymentTypePayrollDeduction PaymentType = "payroll_deduction"
	PaymentTypeManual           PaymentType = "manual_payment"
	PaymentTypeAdjustment       PaymentType = "adjustment"
)

// LoanPayment is one row of a loan's append-only repayment history.
// Rows are never edited; corrections are recorded as new payments.
type LoanPayment struct {
	ID            string
	LoanID        string
	PayslipID     *string
	PaymentDate   time.Time
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	PaymentType   PaymentType
	Notes         *string
	CreatedAt     time.Time
}
