package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/branch"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/transfer"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

func seedBranch(t *testing.T, s storage.Storage, name string, main bool) *branch.Branch {
	t.Helper()
	b, err := branch.NewBranch(tenantID, name, "", "", "", branch.Address{}, "", "", main)
	require.NoError(t, err)
	require.NoError(t, s.Repositories().Branches.Create(context.Background(), b))
	return b
}

func TestAdjustStock(t *testing.T) {
	s := newStore(t)
	clock := newClock(time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC))
	svc := NewInventoryService(s, logger.Nop(), clock.Now)
	ctx := context.Background()
	p := seedProduct(t, s, "Ração", "alimenticio", "25", "10")

	got, err := svc.AdjustStock(ctx, tenantID, p.ID, dec("5.5"))
	require.NoError(t, err)
	require.True(t, got.Stock.Equal(dec("15.5")))
	require.True(t, got.UpdatedAt.Equal(clock.Now()))

	_, err = svc.AdjustStock(ctx, tenantID, p.ID, dec("-20"))
	var shortage *product.InsufficientStockError
	require.ErrorAs(t, err, &shortage)
	require.True(t, stockOf(t, s, p.ID).Equal(dec("15.5")))

	_, err = svc.AdjustStock(ctx, tenantID, p.ID, dec("0"))
	require.ErrorIs(t, err, product.ErrInvalidAdjustment)

	_, err = svc.AdjustStock(ctx, tenantID, "ghost", dec("1"))
	require.ErrorIs(t, err, product.ErrProductNotFound)

	got, err = svc.AdjustStock(ctx, tenantID, p.ID, dec("-15.5"))
	require.NoError(t, err)
	require.True(t, got.Stock.IsZero())
}

func TestTransferLifecycle(t *testing.T) {
	s := newStore(t)
	clock := newClock(time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC))
	svc := NewInventoryService(s, logger.Nop(), clock.Now)
	ctx := context.Background()

	matriz := seedBranch(t, s, "Matriz", true)
	centro := seedBranch(t, s, "Centro", false)
	p := seedProduct(t, s, "Ração", "alimenticio", "25", "10")

	tr, err := svc.CreateTransfer(ctx, tenantID, matriz.ID, centro.ID, p.ID, dec("4"), "reposição")
	require.NoError(t, err)
	require.Equal(t, transfer.StatusPending, tr.Status)
	require.Equal(t, "Ração", tr.ProductName)

	done, err := svc.CompleteTransfer(ctx, tenantID, tr.ID)
	require.NoError(t, err)
	require.Equal(t, transfer.StatusCompleted, done.Status)
	require.True(t, done.CompletedAt.Equal(clock.Now()))
	require.True(t, stockOf(t, s, p.ID).Equal(dec("10")), "o estoque é único por produto")

	_, err = svc.CancelTransfer(ctx, tenantID, tr.ID)
	require.ErrorIs(t, err, transfer.ErrNotPending)

	other, err := svc.CreateTransfer(ctx, tenantID, centro.ID, matriz.ID, p.ID, dec("1"), "")
	require.NoError(t, err)
	cancelled, err := svc.CancelTransfer(ctx, tenantID, other.ID)
	require.NoError(t, err)
	require.Equal(t, transfer.StatusCancelled, cancelled.Status)
}

func TestCreateTransferValidation(t *testing.T) {
	s := newStore(t)
	svc := NewInventoryService(s, logger.Nop(), nil)
	ctx := context.Background()

	matriz := seedBranch(t, s, "Matriz", true)
	p := seedProduct(t, s, "Ração", "alimenticio", "25", "10")

	_, err := svc.CreateTransfer(ctx, tenantID, matriz.ID, matriz.ID, p.ID, dec("1"), "")
	require.ErrorIs(t, err, transfer.ErrSameBranch)

	_, err = svc.CreateTransfer(ctx, tenantID, matriz.ID, "ghost", p.ID, dec("1"), "")
	require.ErrorIs(t, err, branch.ErrBranchNotFound)

	_, err = svc.CreateTransfer(ctx, tenantID, matriz.ID, "ghost", "nope", dec("1"), "")
	require.ErrorIs(t, err, product.ErrProductNotFound)

	_, err = svc.CompleteTransfer(ctx, tenantID, "nope")
	require.ErrorIs(t, err, transfer.ErrTransferNotFound)
}
