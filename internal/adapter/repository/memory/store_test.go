package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/repository/memory"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/coupon"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/internal/storage/storagetest"
)

func TestStorageContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		return memory.New()
	})
}

func TestReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	repo := s.Repositories().Products

	p, err := product.NewProduct("t1", "retail", "Caderno", "papelaria", decimal.NewFromInt(20), decimal.NewFromInt(5), decimal.Zero, "un")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	p.Name = "alterado fora do repositório"
	found, err := repo.FindByID(ctx, "t1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Caderno", found.Name)

	found.Stock = decimal.NewFromInt(999)
	again, err := repo.FindByID(ctx, "t1", p.ID)
	require.NoError(t, err)
	assert.True(t, again.Stock.Equal(decimal.NewFromInt(5)))
}

func TestConcurrentCouponRedemptionNeverExceedsCap(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	c, err := coupon.NewCoupon("t1", "retail", "LIMITE", "Limitado", coupon.CampaignTotalPurchase,
		coupon.DiscountFixed, decimal.NewFromInt(5), decimal.Zero, nil, 3)
	require.NoError(t, err)
	require.NoError(t, s.Repositories().Coupons.Create(ctx, c))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.WithinTx(ctx, func(ctx context.Context, tx storage.Repositories) error {
				return tx.Coupons.IncrementUsage(ctx, "t1", c.ID)
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, ok)
	found, err := s.Repositories().Coupons.FindByID(ctx, "t1", c.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, found.UsageCount)
	assert.False(t, found.Active)
}
