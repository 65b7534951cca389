package payroll

import (
	"context"
	"fmt"

	"github.com/kayaops/backoffice-backend-go/internal/domain/ledger"
	"github.com/kayaops/backoffice-backend-go/internal/domain/payslip"
)

// TransactionLinker keeps every payslip tied to exactly one ledger
// expense row for its whole lifetime. Deleting a payslip does not
// delete its transaction; the expense stays in the books.
type TransactionLinker struct {
	transactionRepo ledger.TransactionRepository
}

func NewTransactionLinker(transactionRepo ledger.TransactionRepository) *TransactionLinker {
	return &TransactionLinker{transactionRepo: transactionRepo}
}

var _ payslip.TransactionLinker = (*TransactionLinker)(nil)

// BuildExpense maps a payslip to its ledger expense row: the gross
// salary under the "Payroll" category, with a note naming the employee
// and the pay period.
func BuildExpense(p payslip.Payslip, employeeName string) ledger.Transaction {
	note := fmt.Sprintf("Payroll - %s (%s to %s)",
		employeeName,
		p.PeriodStart.Format("2006-01-02"),
		p.PeriodEnd.Format("2006-01-02"),
	)
	return ledger.Transaction{
		Date:     p.IssueDate,
		Type:     ledger.TypeExpense,
		Amount:   p.GrossSalary,
		Category: ledger.CategoryPayroll,
		Note:     &note,
	}
}

func (l *TransactionLinker) LinkOrUpdate(ctx context.Context, p *payslip.Payslip, employeeName string) (string, error) {
	expense := BuildExpense(*p, employeeName)

	if p.TransactionID == nil {
		created, err := l.transactionRepo.Insert(ctx, expense)
		if err != nil {
			return "", fmt.Errorf("failed to create payroll expense transaction: %w", err)
		}
		p.TransactionID = &created.ID
		return created.ID, nil
	}

	update := ledger.UpdateTransactionRequest{ID: *p.TransactionID}
	dateStr := expense.Date.Format("2006-01-02")
	update.Date = &dateStr
	update.Amount = &expense.Amount
	update.Note = expense.Note

	if err := l.transactionRepo.Update(ctx, *p.TransactionID, update); err != nil {
		return "", fmt.Errorf("failed to update payroll expense transaction %s: %w", *p.TransactionID, err)
	}
	return *p.TransactionID, nil
}
