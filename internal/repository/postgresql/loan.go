package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kayaops/backoffice-backend-go/internal/domain/loan"
	"github.com/kayaops/backoffice-backend-go/internal/pkg/database"
)

type loanRepository struct {
	db database.Querier
}

func NewLoanRepository(db *database.DB) loan.LoanRepository {
	return &loanRepository{db: db.Pool}
}

const loanColumns = `l.id, l.employee_id, l.category, l.principal, l.interest_rate, l.total_amount,
	l.monthly_deduction, l.remaining_balance, l.loan_date, l.start_deduction_date,
	l.status, l.end_date, l.purpose, l.created_at, l.updated_at`

func scanLoan(row pgx.Row, withEmployeeName bool) (loan.Loan, error) {
	var l loan.Loan
	dest := []interface{}{
		&l.ID, &l.EmployeeID, &l.Category, &l.Principal, &l.InterestRate, &l.TotalAmount,
		&l.MonthlyDeduction, &l.RemainingBalance, &l.LoanDate, &l.StartDeductionDate,
		&l.Status, &l.EndDate, &l.Purpose, &l.CreatedAt, &l.UpdatedAt,
	}
	if withEmployeeName {
		dest = append(dest, &l.EmployeeName)
	}
	err := row.Scan(dest...)
	return l, err
}

func (r *loanRepository) Create(ctx context.Context, newLoan loan.Loan) (loan.Loan, error) {
	query := `
		INSERT INTO loans (
			employee_id, category, principal, interest_rate, total_amount,
			monthly_deduction, remaining_balance, loan_date, start_deduction_date, status, purpose
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, employee_id, category, principal, interest_rate, total_amount,
			monthly_deduction, remaining_balance, loan_date, start_deduction_date,
			status, end_date, purpose, created_at, updated_at`

	created, err := scanLoan(r.db.QueryRow(ctx, query,
		newLoan.EmployeeID, newLoan.Category, newLoan.Principal, newLoan.InterestRate, newLoan.TotalAmount,
		newLoan.MonthlyDeduction, newLoan.RemainingBalance, newLoan.LoanDate, newLoan.StartDeductionDate,
		newLoan.Status, newLoan.Purpose,
	), false)
	if err != nil {
		return loan.Loan{}, fmt.Errorf("failed to create loan: %w", err)
	}
	return created, nil
}

func (r *loanRepository) GetByID(ctx context.Context, id string) (loan.Loan, error) {
	query := `
		SELECT ` + loanColumns + `, e.full_name
		FROM loans l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	l, err := scanLoan(r.db.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return loan.Loan{}, loan.ErrLoanNotFound
		}
		return loan.Loan{}, fmt.Errorf("failed to get loan: %w", err)
	}
	return l, nil
}

func (r *loanRepository) List(ctx context.Context, filter loan.LoanFilter) ([]loan.Loan, error) {
	query := `
		SELECT ` + loanColumns + `, e.full_name
		FROM loans l
		JOIN employees e ON e.id = l.employee_id
	`
	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("l.employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("l.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY l.loan_date DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []loan.Loan
	for rows.Next() {
		l, err := scanLoan(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

func (r *loanRepository) ListActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) ([]loan.Loan, error) {
	return r.listActive(ctx, []string{employeeID}, asOf)
}

func (r *loanRepository) ListActiveByEmployees(ctx context.Context, employeeIDs []string, asOf time.Time) ([]loan.Loan, error) {
	return r.listActive(ctx, employeeIDs, asOf)
}

func (r *loanRepository) listActive(ctx context.Context, employeeIDs []string, asOf time.Time) ([]loan.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans l
		WHERE l.employee_id = ANY($1)
		  AND l.status = 'active'
		  AND l.start_deduction_date <= $2
		ORDER BY l.loan_date
	`

	rows, err := r.db.Query(ctx, query, employeeIDs, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}
	defer rows.Close()

	var loans []loan.Loan
	for rows.Next() {
		l, err := scanLoan(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

func (r *loanRepository) Update(ctx context.Context, id string, req loan.UpdateLoanRequest) error {
	var sets []string
	var args []interface{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.Category != nil {
		addSet("category", *req.Category)
	}
	if req.MonthlyDeduction != nil {
		addSet("monthly_deduction", *req.MonthlyDeduction)
	}
	if req.StartDeductionDate != nil {
		addSet("start_deduction_date", *req.StartDeductionDate)
	}
	if req.Status != nil {
		addSet("status", *req.Status)
	}
	if req.Purpose != nil {
		addSet("purpose", *req.Purpose)
	}

	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE loans SET %s WHERE id = $%d", strings.Join(sets, ", "), argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return loan.ErrLoanNotFound
	}
	return nil
}

func (r *loanRepository) UpdateBalance(ctx context.Context, id string, balance loan.BalanceUpdate) error {
	query := `
		UPDATE loans
		SET remaining_balance = $1, status = $2, end_date = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := r.db.Exec(ctx, query, balance.RemainingBalance, balance.Status, balance.EndDate, id)
	if err != nil {
		return fmt.Errorf("failed to update loan balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return loan.ErrLoanNotFound
	}
	return nil
}

// Delete removes the loan's payment history before the loan itself so no
// orphaned payment rows survive.
func (r *loanRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM loan_payments WHERE loan_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete loan payments: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return loan.ErrLoanNotFound
	}
	return nil
}

func (r *loanRepository) InsertPayment(ctx context.Context, payment loan.LoanPayment) (loan.LoanPayment, error) {
	query := `
		INSERT INTO loan_payments (
			loan_id, payslip_id, payment_date, amount, balance_before, balance_after, payment_type, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, loan_id, payslip_id, payment_date, amount, balance_before, balance_after, payment_type, notes, created_at
	`

	var p loan.LoanPayment
	err := r.db.QueryRow(ctx, query,
		payment.LoanID, payment.PayslipID, payment.PaymentDate, payment.Amount,
		payment.BalanceBefore, payment.BalanceAfter, payment.PaymentType, payment.Notes,
	).Scan(
		&p.ID, &p.LoanID, &p.PayslipID, &p.PaymentDate, &p.Amount,
		&p.BalanceBefore, &p.BalanceAfter, &p.PaymentType, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		return loan.LoanPayment{}, fmt.Errorf("failed to insert loan payment: %w", err)
	}
	return p, nil
}

func (r *loanRepository) ListPaymentsByLoan(ctx context.Context, loanID string) ([]loan.LoanPayment, error) {
	query := `
		SELECT id, loan_id, payslip_id, payment_date, amount, balance_before, balance_after, payment_type, notes, created_at
		FROM loan_payments
		WHERE loan_id = $1
		ORDER BY payment_date, created_at
	`

	rows, err := r.db.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan payments: %w", err)
	}
	defer rows.Close()

	var payments []loan.LoanPayment
	for rows.Next() {
		var p loan.LoanPayment
		if err := rows.Scan(
			&p.ID, &p.LoanID, &p.PayslipID, &p.PaymentDate, &p.Amount,
			&p.BalanceBefore, &p.BalanceAfter, &p.PaymentType, &p.Notes, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan loan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
