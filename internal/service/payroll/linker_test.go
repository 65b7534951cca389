package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kayaops/backoffice-backend-go/internal/domain/ledger"
	"github.com/kayaops/backoffice-backend-go/internal/domain/payslip"
	payrollService "github.com/kayaops/backoffice-backend-go/internal/service/payroll"
)

func linkerPayslip() payslip.Payslip {
	return payslip.Payslip{
		ID:          "payslip-1",
		EmployeeID:  "emp-1",
		PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		IssueDate:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		GrossSalary: d("15000"),
	}
}

func TestBuildExpense(t *testing.T) {
	tx := payrollService.BuildExpense(linkerPayslip(), "Maria Santos")

	assert.Equal(t, ledger.TypeExpense, tx.Type)
	assert.Equal(t, ledger.CategoryPayroll, tx.Category)
	assert.True(t, d("15000").Equal(tx.Amount))
	require.NotNil(t, tx.Note)
	assert.Equal(t, "Payroll - Maria Santos (2025-01-01 to 2025-01-15)", *tx.Note)
}

func TestLinkOrUpdate_InsertsForUnlinkedPayslip(t *testing.T) {
	var inserted *ledger.Transaction
	repo := &fakeTransactionRepositoryWithInsert{
		fakeTransactionRepository: &fakeTransactionRepository{},
		insertFn: func(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
			tx.ID = "txn-55"
			inserted = &tx
			return tx, nil
		},
	}
	linker := payrollService.NewTransactionLinker(repo)

	p := linkerPayslip()
	id, err := linker.LinkOrUpdate(context.Background(), &p, "Maria Santos")
	require.NoError(t, err)

	assert.Equal(t, "txn-55", id)
	require.NotNil(t, p.TransactionID)
	assert.Equal(t, "txn-55", *p.TransactionID)
	require.NotNil(t, inserted)
	assert.True(t, d("15000").Equal(inserted.Amount))
}

func TestLinkOrUpdate_UpdatesLinkedPayslipInPlace(t *testing.T) {
	var updatedID string
	var updateReq ledger.UpdateTransactionRequest
	repo := &fakeTransactionRepositoryWithInsert{
		fakeTransactionRepository: &fakeTransactionRepository{},
		insertFn: func(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
			t.Fatal("a linked payslip must never create a second transaction")
			return ledger.Transaction{}, nil
		},
		updateFn: func(ctx context.Context, id string, req ledger.UpdateTransactionRequest) error {
			updatedID = id
			updateReq = req
			return nil
		},
	}
	linker := payrollService.NewTransactionLinker(repo)

	existing := "txn-7"
	p := linkerPayslip()
	p.TransactionID = &existing
	p.GrossSalary = d("16000")

	id, err := linker.LinkOrUpdate(context.Background(), &p, "Maria Santos")
	require.NoError(t, err)

	assert.Equal(t, "txn-7", id)
	assert.Equal(t, "txn-7", updatedID)
	require.NotNil(t, updateReq.Amount)
	assert.True(t, d("16000").Equal(*updateReq.Amount))
	require.NotNil(t, updateReq.Date)
	assert.Equal(t, "2025-01-15", *updateReq.Date)
}

// fakeTransactionRepositoryWithInsert overrides single-row writes on top
// of the batch fake.
type fakeTransactionRepositoryWithInsert struct {
	*fakeTransactionRepository
	insertFn func(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error)
	updateFn func(ctx context.Context, id string, req ledger.UpdateTransactionRequest) error
}

func (f *fakeTransactionRepositoryWithInsert) Insert(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	if f.insertFn != nil {
		return f.insertFn(ctx, tx)
	}
	return f.fakeTransactionRepository.Insert(ctx, tx)
}

func (f *fakeTransactionRepositoryWithInsert) Update(ctx context.Context, id string, req ledger.UpdateTransactionRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}
	return f.fakeTransactionRepository.Update(ctx, id, req)
}
