package ledger

import "context"

// LedgerService defines business logic for cash-flow ledger screens.
type LedgerService interface {
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (TransactionResponse, error)
	GetTransaction(ctx context.Context, id string) (TransactionResponse, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]TransactionResponse, error)
	UpdateTransaction(ctx context.Context, req UpdateTransactionRequest) (TransactionResponse, error)
	DeleteTransaction(ctx context.Context, id string) error
	GetMonthlySummary(ctx context.Context, year int) ([]MonthlySummary, error)
}
