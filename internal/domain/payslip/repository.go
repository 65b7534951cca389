package payslip

import "context"

type PayslipRepository interface {
	Insert(ctx context.Context, newPayslip Payslip) (Payslip, error)
	InsertMany(ctx context.Context, payslips []Payslip) ([]Payslip, error)
	GetByID(ctx context.Context, id string) (Payslip, error)
	GetLatestByEmployee(ctx context.Context, employeeID string) (Payslip, error)
	List(ctx context.Context, filter PayslipFilter) ([]Payslip, error)
	Update(ctx context.Context, updated Payslip) error
	// Delete removes the payslip row only; the linked ledger transaction
	// is retained for audit continuity.
	Delete(ctx context.Context, id string) error
}
