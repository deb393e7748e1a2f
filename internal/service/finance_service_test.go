package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/finance"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

var today = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newFinance(t *testing.T) (*FinanceService, *testClock) {
	t.Helper()
	clock := newClock(today.Add(9 * time.Hour))
	return NewFinanceService(newStore(t), logger.Nop(), clock.Now), clock
}

func expense(description string, amount string, due time.Time) EntryInput {
	return EntryInput{
		BusinessCategory: "retail",
		Kind:             finance.KindExpense,
		Amount:           dec(amount),
		Description:      description,
		DueDate:          due,
	}
}

func TestFinanceStatusFollowsClock(t *testing.T) {
	svc, clock := newFinance(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, tenantID, expense("Fornecedor", "250.00", today.AddDate(0, 0, 3)))
	require.NoError(t, err)
	require.Equal(t, finance.StatusNearDue, e.Status)

	clock.Advance(4 * 24 * time.Hour)
	got, err := svc.Get(ctx, tenantID, e.ID)
	require.NoError(t, err)
	require.Equal(t, finance.StatusOverdue, got.Status)

	paid, err := svc.MarkPaid(ctx, tenantID, e.ID, clock.Now(), "pix", "")
	require.NoError(t, err)
	require.Equal(t, finance.StatusPaid, paid.Status)
	require.True(t, paid.UpdatedAt.Equal(clock.Now()))

	clock.Advance(90 * 24 * time.Hour)
	got, err = svc.Get(ctx, tenantID, e.ID)
	require.NoError(t, err)
	require.Equal(t, finance.StatusPaid, got.Status)
	require.Equal(t, "pix", got.PaymentMethod)
}

func TestFinanceRevertPayment(t *testing.T) {
	svc, _ := newFinance(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, tenantID, expense("Energia", "180.00", today.AddDate(0, 0, 30)))
	require.NoError(t, err)
	require.Equal(t, finance.StatusPending, e.Status)

	_, err = svc.RevertPayment(ctx, tenantID, e.ID)
	require.ErrorIs(t, err, finance.ErrNotPaid)

	_, err = svc.MarkPaid(ctx, tenantID, e.ID, today, "boleto", "https://comprovantes/1")
	require.NoError(t, err)
	_, err = svc.MarkPaid(ctx, tenantID, e.ID, today.AddDate(0, 0, 1), "pix", "")
	require.NoError(t, err, "pagar de novo substitui o pagamento anterior")

	reverted, err := svc.RevertPayment(ctx, tenantID, e.ID)
	require.NoError(t, err)
	require.Equal(t, finance.StatusPending, reverted.Status)
	require.Nil(t, reverted.PaymentDate)
	require.Empty(t, reverted.PaymentMethod)

	income := expense("Venda", "90.00", today.AddDate(0, 0, 1))
	income.Kind = finance.KindIncome
	income.PaymentDate = &today
	income.PaymentMethod = "dinheiro"
	in, err := svc.Create(ctx, tenantID, income)
	require.NoError(t, err)
	require.Equal(t, finance.StatusPaid, in.Status)

	_, err = svc.RevertPayment(ctx, tenantID, in.ID)
	require.ErrorIs(t, err, finance.ErrRevertIncome)
	require.ErrorIs(t, err, shared.ErrBusinessRule)
}

func TestFinanceMarkPaidValidation(t *testing.T) {
	svc, _ := newFinance(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, tenantID, expense("Internet", "99.90", today))
	require.NoError(t, err)

	_, err = svc.MarkPaid(ctx, tenantID, e.ID, time.Time{}, "pix", "")
	require.ErrorIs(t, err, shared.ErrValidation)
	_, err = svc.MarkPaid(ctx, tenantID, e.ID, today, " ", "")
	require.ErrorIs(t, err, finance.ErrEmptyPaymentMethod)

	_, err = svc.MarkPaid(ctx, tenantID, "missing", today, "pix", "")
	require.ErrorIs(t, err, shared.ErrNotFound)

	got, err := svc.Get(ctx, tenantID, e.ID)
	require.NoError(t, err)
	require.Equal(t, finance.StatusOverdue, got.Status)
}

func TestFinanceListFiltersByResolvedStatus(t *testing.T) {
	svc, clock := newFinance(t)
	ctx := context.Background()

	for i, days := range []int{-2, 1, 5, 20, 40} {
		_, err := svc.Create(ctx, tenantID, expense("Conta", "10.00", today.AddDate(0, 0, days)))
		require.NoError(t, err, i)
	}

	near, err := svc.List(ctx, tenantID, EntryFilter{Status: finance.StatusNearDue})
	require.NoError(t, err)
	require.Len(t, near, 2)

	pageOne, err := svc.List(ctx, tenantID, EntryFilter{Status: finance.StatusNearDue, ListFilter: finance.ListFilter{Limit: 1}})
	require.NoError(t, err)
	require.Len(t, pageOne, 1)

	clock.Advance(15 * 24 * time.Hour)
	overdue, err := svc.List(ctx, tenantID, EntryFilter{Status: finance.StatusOverdue})
	require.NoError(t, err)
	require.Len(t, overdue, 3)

	all, err := svc.List(ctx, tenantID, EntryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
}

func TestFinanceInstallmentsAreAtomic(t *testing.T) {
	svc, _ := newFinance(t)
	ctx := context.Background()

	entries, err := svc.CreateInstallments(ctx, tenantID, InstallmentInput{
		Kind:        finance.KindExpense,
		Total:       dec("100.00"),
		Description: "Freezer",
		FirstDue:    today.AddDate(0, 1, 0),
		Count:       3,
		IsBoleto:    true,
	})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.True(t, entries[0].Amount.Equal(dec("33.34")))
	require.True(t, entries[2].IsBoleto)

	_, err = svc.CreateInstallments(ctx, tenantID, InstallmentInput{
		Kind: finance.KindExpense, Total: dec("100"), Description: "x", FirstDue: today, Count: 0,
	})
	require.ErrorIs(t, err, finance.ErrInvalidInstallment)

	all, err := svc.List(ctx, tenantID, EntryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestFinanceUpdateAndSummary(t *testing.T) {
	svc, _ := newFinance(t)
	ctx := context.Background()

	rent, err := svc.Create(ctx, tenantID, expense("Aluguel", "1000.00", today.AddDate(0, 0, 20)))
	require.NoError(t, err)

	in := expense("Aluguel março", "1100.00", today.AddDate(0, 0, 2))
	in.Notes = "reajuste"
	updated, err := svc.Update(ctx, tenantID, rent.ID, in)
	require.NoError(t, err)
	require.Equal(t, finance.StatusNearDue, updated.Status)
	require.Equal(t, "reajuste", updated.Notes)

	_, err = svc.Update(ctx, tenantID, rent.ID, expense("", "1", today))
	require.ErrorIs(t, err, finance.ErrEmptyDescription)

	sale := expense("Venda", "3000.00", today)
	sale.Kind = finance.KindIncome
	sale.PaymentDate = &today
	sale.PaymentMethod = "cartão"
	_, err = svc.Create(ctx, tenantID, sale)
	require.NoError(t, err)

	sum, err := svc.Summary(ctx, tenantID, nil, nil)
	require.NoError(t, err)
	require.True(t, sum.IncomePaid.Equal(dec("3000")))
	require.True(t, sum.ExpenseTotal.Equal(dec("1100")))
	require.True(t, sum.Balance.Equal(dec("3000")))
	require.Equal(t, 1, sum.CountByStatus[finance.StatusNearDue])

	require.NoError(t, svc.Delete(ctx, tenantID, rent.ID))
	_, err = svc.Get(ctx, tenantID, rent.ID)
	require.ErrorIs(t, err, finance.ErrEntryNotFound)
}

type failingStore struct {
	storage.Storage
}

func (failingStore) WithinTx(context.Context, storage.TxFunc) error {
	return shared.Unavailable("iniciar transação", errors.New("connection refused"))
}

func TestFinanceSurfacesStorageUnavailable(t *testing.T) {
	svc := NewFinanceService(failingStore{newStore(t)}, logger.Nop(), nil)
	_, err := svc.MarkPaid(context.Background(), tenantID, "x", today, "pix", "")
	require.ErrorIs(t, err, shared.ErrStorageUnavailable)
}
