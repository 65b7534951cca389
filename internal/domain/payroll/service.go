package payroll

import "context"

// PayrollService runs bulk payslip generation: one payslip plus one
// linked ledger expense per selected employee for a declared pay period,
// with loan payments applied once per active loan.
type PayrollService interface {
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) (GeneratePayrollResponse, error)
}
