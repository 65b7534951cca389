package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/kayaops/backoffice-backend-go/internal/domain/ledger"
	"github.com/kayaops/backoffice-backend-go/internal/pkg/database"
)

type transactionRepository struct {
	db database.Querier
}

func NewTransactionRepository(db *database.DB) ledger.TransactionRepository {
	return &transactionRepository{db: db.Pool}
}

const transactionColumns = `id, date, type, amount, category, note, created_at, updated_at`

func scanTransaction(row pgx.Row) (ledger.Transaction, error) {
	var t ledger.Transaction
	err := row.Scan(
		&t.ID, &t.Date, &t.Type, &t.Amount, &t.Category, &t.Note,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *transactionRepository) Insert(ctx context.Context, newTransaction ledger.Transaction) (ledger.Transaction, error) {
	query := `
		INSERT INTO transactions (date, type, amount, category, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + transactionColumns

	created, err := scanTransaction(r.db.QueryRow(ctx, query,
		newTransaction.Date, newTransaction.Type, newTransaction.Amount,
		newTransaction.Category, newTransaction.Note,
	))
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return created, nil
}

func (r *transactionRepository) InsertMany(ctx context.Context, transactions []ledger.Transaction) ([]ledger.Transaction, error) {
	created := make([]ledger.Transaction, 0, len(transactions))
	for i, t := range transactions {
		inserted, err := r.Insert(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("transaction batch insert failed at row %d of %d: %w", i+1, len(transactions), err)
		}
		created = append(created, inserted)
	}
	return created, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (ledger.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	t, err := scanTransaction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.Transaction{}, ledger.ErrTransactionNotFound
		}
		return ledger.Transaction{}, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

func (r *transactionRepository) List(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argPos))
		args = append(args, *filter.Type)
		argPos++
	}
	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, *filter.Category)
		argPos++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argPos))
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argPos))
		args = append(args, *filter.DateTo)
		argPos++
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []ledger.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *transactionRepository) Update(ctx context.Context, id string, req ledger.UpdateTransactionRequest) error {
	var setClauses []string
	var args []interface{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.Date != nil {
		addSet("date", *req.Date)
	}
	if req.Amount != nil {
		addSet("amount", *req.Amount)
	}
	if req.Category != nil {
		addSet("category", *req.Category)
	}
	if req.Note != nil {
		addSet("note", *req.Note)
	}
	if len(setClauses) == 0 {
		return nil
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE transactions SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) MonthlySummary(ctx context.Context, year int) ([]ledger.MonthlySummary, error) {
	query := `
		SELECT
			EXTRACT(MONTH FROM date)::int AS month,
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS total_expense
		FROM transactions
		WHERE EXTRACT(YEAR FROM date)::int = $1
		GROUP BY month
		ORDER BY month
	`

	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	defer rows.Close()

	var summaries []ledger.MonthlySummary
	for rows.Next() {
		s := ledger.MonthlySummary{Year: year}
		if err := rows.Scan(&s.Month, &s.TotalIncome, &s.TotalExpense); err != nil {
			return nil, fmt.Errorf("failed to scan monthly summary: %w", err)
		}
		s.Net = s.TotalIncome.Sub(s.TotalExpense)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
