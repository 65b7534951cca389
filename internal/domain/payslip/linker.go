package payslip

import "context"

// TransactionLinker maintains the one-to-one link between a payslip and
// its bookkeeping expense transaction: created on first save, updated in
// place on edit, never duplicated.
type TransactionLinker interface {
	// LinkOrUpdate writes the ledger expense for the payslip and sets
	// TransactionID on it when unset. The caller persists the payslip.
	LinkOrUpdate(ctx context.Context, p *Payslip, employeeName string) (string, error)
}
