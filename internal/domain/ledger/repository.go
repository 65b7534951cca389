package ledger

import "context"

type TransactionRepository interface {
	Insert(ctx context.Context, newTransaction Transaction) (Transaction, error)
	// InsertMany inserts the batch in order and returns the created rows
	// in the same order as the input.
	InsertMany(ctx context.Context, transactions []Transaction) ([]Transaction, error)
	GetByID(ctx context.Context, id string) (Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
	Update(ctx context.Context, id string, req UpdateTransactionRequest) error
	Delete(ctx context.Context, id string) error
	MonthlySummary(ctx context.Context, year int) ([]MonthlySummary, error)
}
