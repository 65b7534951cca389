package loan

import "errors"

var (
	ErrLoanNotFound        = errors.New("loan not found")
	ErrLoanNotActive       = errors.New("loan is not active")
	ErrInvalidDeduction    = errors.New("deduction amount must be positive")
	ErrInvalidAmount       = errors.New("payment amount must be positive")
	ErrInsufficientBalance = errors.New("payment amount exceeds remaining loan balance")
)
