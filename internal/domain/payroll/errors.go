package payroll

import "errors"

var (
	// ErrLinkMismatch means the batch of created ledger transactions did
	// not line up one-to-one with the payslip batch. The whole bulk run
	// is aborted before any payslip is persisted.
	ErrLinkMismatch = errors.New("created transaction count does not match payslip count")

	ErrNoEmployeesSelected = errors.New("no employees selected for payroll generation")
)
