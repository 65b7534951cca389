package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// CategoryPayroll marks expense rows written by the payroll subsystem.
const CategoryPayroll = "Payroll"

// Transaction is one cash-flow ledger entry. Payroll-origin rows carry
// type expense and category "Payroll"; the owning payslip holds the
// foreign key, the transaction itself does not know about it.
type Transaction struct {
	ID        string
	Date      time.Time
	Type      TransactionType
	Amount    decimal.Decimal
	Category  string
	Note      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
