package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/kayaops/backoffice-backend-go/internal/domain/ledger"
)

type LedgerServiceImpl struct {
	transactionRepo ledger.TransactionRepository
}

func NewLedgerService(transactionRepo ledger.TransactionRepository) ledger.LedgerService {
	return &LedgerServiceImpl{transactionRepo: transactionRepo}
}

func (s *LedgerServiceImpl) CreateTransaction(ctx context.Context, req ledger.CreateTransactionRequest) (ledger.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.TransactionResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	created, err := s.transactionRepo.Insert(ctx, ledger.Transaction{
		Date:     date,
		Type:     ledger.TransactionType(req.Type),
		Amount:   req.Amount,
		Category: req.Category,
		Note:     req.Note,
	})
	if err != nil {
		return ledger.TransactionResponse{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	return mapToTransactionResponse(created), nil
}

func (s *LedgerServiceImpl) GetTransaction(ctx context.Context, id string) (ledger.TransactionResponse, error) {
	txn, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return ledger.TransactionResponse{}, err
	}
	return mapToTransactionResponse(txn), nil
}

func (s *LedgerServiceImpl) ListTransactions(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.TransactionResponse, error) {
	transactions, err := s.transactionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]ledger.TransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		result = append(result, mapToTransactionResponse(txn))
	}
	return result, nil
}

func (s *LedgerServiceImpl) UpdateTransaction(ctx context.Context, req ledger.UpdateTransactionRequest) (ledger.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.TransactionResponse{}, err
	}

	if _, err := s.transactionRepo.GetByID(ctx, req.ID); err != nil {
		return ledger.TransactionResponse{}, err
	}

	if err := s.transactionRepo.Update(ctx, req.ID, req); err != nil {
		return ledger.TransactionResponse{}, fmt.Errorf("failed to update transaction: %w", err)
	}

	updated, err := s.transactionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return ledger.TransactionResponse{}, err
	}
	return mapToTransactionResponse(updated), nil
}

func (s *LedgerServiceImpl) DeleteTransaction(ctx context.Context, id string) error {
	if _, err := s.transactionRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.transactionRepo.Delete(ctx, id)
}

func (s *LedgerServiceImpl) GetMonthlySummary(ctx context.Context, year int) ([]ledger.MonthlySummary, error) {
	return s.transactionRepo.MonthlySummary(ctx, year)
}

func mapToTransactionResponse(txn ledger.Transaction) ledger.TransactionResponse {
	return ledger.TransactionResponse{
		ID:       txn.ID,
		Date:     txn.Date.Format("2006-01-02"),
		Type:     string(txn.Type),
		Amount:   txn.Amount,
		Category: txn.Category,
		Note:     txn.Note,
	}
}
