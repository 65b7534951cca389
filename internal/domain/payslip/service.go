package payslip

import "context"

// PayslipService defines business logic for single-payslip operations.
// Every save path recomputes the net salary server-side and keeps the
// payslip linked to exactly one bookkeeping expense transaction.
type PayslipService interface {
	CreatePayslip(ctx context.Context, req SavePayslipRequest) (PayslipResponse, error)
	UpdatePayslip(ctx context.Context, req SavePayslipRequest) (PayslipResponse, error)
	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	ListPayslips(ctx context.Context, filter PayslipFilter) ([]PayslipResponse, error)

	// DeletePayslip removes the payslip; its linked ledger transaction is
	// intentionally retained.
	DeletePayslip(ctx context.Context, id string) error

	// GetDefaults seeds a new payslip form from the employee's most
	// recent payslip plus a freshly computed loan deduction.
	GetDefaults(ctx context.Context, employeeID string) (PayslipDefaults, error)
}
