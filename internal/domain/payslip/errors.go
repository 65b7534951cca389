package payslip

import "errors"

var (
	ErrPayslipNotFound = errors.New("payslip not found")
	ErrInvalidPeriod   = errors.New("period end must not be before period start")
)
