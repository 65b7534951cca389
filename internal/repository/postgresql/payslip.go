package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/kayaops/backoffice-backend-go/internal/domain/payslip"
	"github.com/kayaops/backoffice-backend-go/internal/pkg/database"
)

type payslipRepository struct {
	db database.Querier
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepository{db: db.Pool}
}

const payslipColumns = `p.id, p.employee_id, p.period_start, p.period_end, p.issue_date,
	p.gross_salary, p.bonuses, p.allowances, p.sss, p.pagibig, p.philhealth, p.tax,
	p.cash_advance, p.loan_deduction, p.other_deductions, p.net_salary, p.notes,
	p.transaction_id, p.created_at, p.updated_at`

const payslipInsertColumns = `employee_id, period_start, period_end, issue_date,
	gross_salary, bonuses, allowances, sss, pagibig, philhealth, tax,
	cash_advance, loan_deduction, other_deductions, net_salary, notes, transaction_id`

const payslipReturning = `id, employee_id, period_start, period_end, issue_date,
	gross_salary, bonuses, allowances, sss, pagibig, philhealth, tax,
	cash_advance, loan_deduction, other_deductions, net_salary, notes,
	transaction_id, created_at, updated_at`

func scanPayslip(row pgx.Row, withEmployeeName bool) (payslip.Payslip, error) {
	var p payslip.Payslip
	dest := []interface{}{
		&p.ID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd, &p.IssueDate,
		&p.GrossSalary, &p.Bonuses, &p.Allowances, &p.SSS, &p.Pagibig, &p.Philhealth, &p.Tax,
		&p.CashAdvance, &p.LoanDeduction, &p.OtherDeductions, &p.NetSalary, &p.Notes,
		&p.TransactionID, &p.CreatedAt, &p.UpdatedAt,
	}
	if withEmployeeName {
		dest = append(dest, &p.EmployeeName)
	}
	err := row.Scan(dest...)
	return p, err
}

func payslipInsertArgs(p payslip.Payslip) []interface{} {
	return []interface{}{
		p.EmployeeID, p.PeriodStart, p.PeriodEnd, p.IssueDate,
		p.GrossSalary, p.Bonuses, p.Allowances, p.SSS, p.Pagibig, p.Philhealth, p.Tax,
		p.CashAdvance, p.LoanDeduction, p.OtherDeductions, p.NetSalary, p.Notes, p.TransactionID,
	}
}

func (r *payslipRepository) Insert(ctx context.Context, newPayslip payslip.Payslip) (payslip.Payslip, error) {
	query := `
		INSERT INTO payslips (` + payslipInsertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + payslipReturning

	created, err := scanPayslip(r.db.QueryRow(ctx, query, payslipInsertArgs(newPayslip)...), false)
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("failed to insert payslip: %w", err)
	}
	return created, nil
}

// InsertMany inserts the batch one row at a time in input order; pgx
// pipelines the round-trips. Created rows come back in the same order.
func (r *payslipRepository) InsertMany(ctx context.Context, payslips []payslip.Payslip) ([]payslip.Payslip, error) {
	created := make([]payslip.Payslip, 0, len(payslips))
	for i, p := range payslips {
		inserted, err := r.Insert(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("payslip batch insert failed at row %d of %d: %w", i+1, len(payslips), err)
		}
		created = append(created, inserted)
	}
	return created, nil
}

func (r *payslipRepository) GetByID(ctx context.Context, id string) (payslip.Payslip, error) {
	query := `
		SELECT ` + payslipColumns + `, e.full_name
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	p, err := scanPayslip(r.db.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return p, nil
}

func (r *payslipRepository) GetLatestByEmployee(ctx context.Context, employeeID string) (payslip.Payslip, error) {
	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		WHERE p.employee_id = $1
		ORDER BY p.period_end DESC, p.created_at DESC
		LIMIT 1
	`

	p, err := scanPayslip(r.db.QueryRow(ctx, query, employeeID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, fmt.Errorf("failed to get latest payslip: %w", err)
	}
	return p, nil
}

func (r *payslipRepository) List(ctx context.Context, filter payslip.PayslipFilter) ([]payslip.Payslip, error) {
	query := `
		SELECT ` + payslipColumns + `, e.full_name
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
	`
	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.PeriodStart != nil {
		conditions = append(conditions, fmt.Sprintf("p.period_start >= $%d", argPos))
		args = append(args, *filter.PeriodStart)
		argPos++
	}
	if filter.PeriodEnd != nil {
		conditions = append(conditions, fmt.Sprintf("p.period_end <= $%d", argPos))
		args = append(args, *filter.PeriodEnd)
		argPos++
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.period_start DESC, e.full_name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payslip.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	return payslips, rows.Err()
}

func (r *payslipRepository) Update(ctx context.Context, updated payslip.Payslip) error {
	query := `
		UPDATE payslips
		SET employee_id = $1, period_start = $2, period_end = $3, issue_date = $4,
			gross_salary = $5, bonuses = $6, allowances = $7, sss = $8, pagibig = $9,
			philhealth = $10, tax = $11, cash_advance = $12, loan_deduction = $13,
			other_deductions = $14, net_salary = $15, notes = $16, updated_at = NOW()
		WHERE id = $17
	`

	tag, err := r.db.Exec(ctx, query,
		updated.EmployeeID, updated.PeriodStart, updated.PeriodEnd, updated.IssueDate,
		updated.GrossSalary, updated.Bonuses, updated.Allowances, updated.SSS, updated.Pagibig,
		updated.Philhealth, updated.Tax, updated.CashAdvance, updated.LoanDeduction,
		updated.OtherDeductions, updated.NetSalary, updated.Notes, updated.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}
	return nil
}

func (r *payslipRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payslips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}
	return nil
}
