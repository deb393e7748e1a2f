package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/client"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/coupon"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/sale"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

var saleTime = time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC)

func newCheckout(t *testing.T) (*CheckoutService, storage.Storage) {
	t.Helper()
	s := newStore(t)
	return NewCheckoutService(s, logger.Nop(), func() time.Time { return saleTime }), s
}

func seedCoupon(t *testing.T, s storage.Storage, code string, campaign coupon.CampaignType, kind coupon.DiscountType, value, minPurchase string, targets []string, maxUses int) *coupon.Coupon {
	t.Helper()
	c, err := coupon.NewCoupon(tenantID, "pet_clinic", code, code, campaign, kind, dec(value), dec(minPurchase), targets, maxUses)
	require.NoError(t, err)
	saveCoupon(t, s, c)
	return c
}

func saveCoupon(t *testing.T, s storage.Storage, c *coupon.Coupon) {
	t.Helper()
	require.NoError(t, s.Repositories().Coupons.Create(context.Background(), c))
}

func usageOf(t *testing.T, s storage.Storage, id string) *coupon.Coupon {
	t.Helper()
	c, err := s.Repositories().Coupons.FindByID(context.Background(), tenantID, id)
	require.NoError(t, err)
	return c
}

func TestCheckoutSeasonalCouponUsesMatchingLinesOnly(t *testing.T) {
	svc, s := newCheckout(t)
	ctx := context.Background()

	racao := seedProduct(t, s, "Ração", "alimenticio", "25.00", "10")
	shampoo := seedProduct(t, s, "Shampoo", "higiene", "40.00", "5")
	c := seedCoupon(t, s, "verao2025", coupon.CampaignSeasonalPromotion, coupon.DiscountPercentage, "20", "80", []string{"alimenticio"}, 0)

	receipt, err := svc.Checkout(ctx, tenantID, CheckoutInput{
		Items:         []CartLine{{ProductID: racao.ID, Quantity: 2}, {ProductID: shampoo.ID, Quantity: 1}},
		CouponCode:    " Verao2025 ",
		PaymentMethod: "pix",
	})
	require.NoError(t, err)

	sl := receipt.Sale
	require.True(t, sl.Subtotal.Equal(dec("90")))
	require.True(t, sl.CouponDiscount.Equal(dec("10")), sl.CouponDiscount.String())
	require.True(t, sl.Total.Equal(dec("80")))
	require.Equal(t, "VERAO2025", sl.CouponCode)
	require.Len(t, receipt.Deductions, 2)

	require.True(t, stockOf(t, s, racao.ID).Equal(dec("8")))
	require.True(t, stockOf(t, s, shampoo.ID).Equal(dec("4")))
	require.Equal(t, 1, usageOf(t, s, c.ID).UsageCount)

	stored, err := s.Repositories().Sales.FindByID(ctx, tenantID, sl.ID)
	require.NoError(t, err)
	require.True(t, stored.Total.Equal(dec("80")))
}

func TestCheckoutCompositeShortageChangesNothing(t *testing.T) {
	svc, s := newCheckout(t)
	ctx := context.Background()

	farinha := seedProduct(t, s, "Farinha", "insumo", "0", "150")
	queijo := seedProduct(t, s, "Queijo", "insumo", "0", "1000")

	pizza, err := product.NewProduct(tenantID, "restaurant", "Pizza", "pratos", dec("45"), decimal.Zero, decimal.Zero, "un")
	require.NoError(t, err)
	require.NoError(t, pizza.SetIngredients([]product.Ingredient{
		{ProductID: farinha.ID, Name: "Farinha", UsedQuantity: dec("200"), Unit: "g"},
		{ProductID: queijo.ID, Name: "Queijo", UsedQuantity: dec("100"), Unit: "g"},
	}))
	require.NoError(t, s.Repositories().Products.Create(ctx, pizza))

	c := seedCoupon(t, s, "PIZZA10", coupon.CampaignTotalPurchase, coupon.DiscountFixed, "10", "0", nil, 0)

	_, err = svc.Checkout(ctx, tenantID, CheckoutInput{
		Items:         []CartLine{{ProductID: pizza.ID, Quantity: 1}},
		CouponCode:    "PIZZA10",
		PaymentMethod: "dinheiro",
	})
	var shortage *product.InsufficientStockError
	require.ErrorAs(t, err, &shortage)
	require.Len(t, shortage.Shortages, 1)
	require.Equal(t, farinha.ID, shortage.Shortages[0].ProductID)
	require.True(t, shortage.Shortages[0].Required.Equal(dec("200")))
	require.True(t, shortage.Shortages[0].Available.Equal(dec("150")))

	require.True(t, stockOf(t, s, farinha.ID).Equal(dec("150")))
	require.True(t, stockOf(t, s, queijo.ID).Equal(dec("1000")))
	require.Equal(t, 0, usageOf(t, s, c.ID).UsageCount)

	sales, err := s.Repositories().Sales.List(ctx, tenantID, sale.ListFilter{})
	require.NoError(t, err)
	require.Empty(t, sales)
}

func TestCheckoutCompositeDeductsIngredients(t *testing.T) {
	svc, s := newCheckout(t)

	farinha := seedProduct(t, s, "Farinha", "insumo", "0", "1000")
	pizza, err := product.NewProduct(tenantID, "restaurant", "Pizza", "pratos", dec("45"), decimal.Zero, decimal.Zero, "un")
	require.NoError(t, err)
	require.NoError(t, pizza.SetIngredients([]product.Ingredient{
		{ProductID: farinha.ID, Name: "Farinha", UsedQuantity: dec("200"), Unit: "g"},
	}))
	require.NoError(t, s.Repositories().Products.Create(context.Background(), pizza))

	receipt, err := svc.Checkout(context.Background(), tenantID, CheckoutInput{
		Items:          []CartLine{{ProductID: pizza.ID, Quantity: 3}},
		ManualDiscount: dec("200"),
		PaymentMethod:  "cartão",
	})
	require.NoError(t, err)
	require.True(t, receipt.Sale.Total.IsZero(), "total nunca fica negativo")
	require.True(t, stockOf(t, s, farinha.ID).Equal(dec("400")))
	require.True(t, stockOf(t, s, pizza.ID).IsZero())
}

func TestCheckoutRejections(t *testing.T) {
	svc, s := newCheckout(t)
	ctx := context.Background()

	racao := seedProduct(t, s, "Ração", "alimenticio", "25.00", "10")
	off := seedProduct(t, s, "Brinquedo", "acessorios", "15.00", "10")
	off.Available = false
	require.NoError(t, s.Repositories().Products.Update(ctx, off))

	seedCoupon(t, s, "MIN100", coupon.CampaignTotalPurchase, coupon.DiscountFixed, "10", "100", nil, 0)
	seedCoupon(t, s, "HIGIENE", coupon.CampaignCategoryDiscount, coupon.DiscountPercentage, "10", "0", []string{"higiene"}, 0)

	tests := []struct {
		name  string
		input CheckoutInput
		want  error
	}{
		{"empty cart", CheckoutInput{PaymentMethod: "pix"}, sale.ErrEmptyCart},
		{"zero quantity", CheckoutInput{Items: []CartLine{{ProductID: racao.ID}}, PaymentMethod: "pix"}, sale.ErrInvalidQuantity},
		{"unknown product", CheckoutInput{Items: []CartLine{{ProductID: "nope", Quantity: 1}}, PaymentMethod: "pix"}, product.ErrProductNotFound},
		{"unavailable product", CheckoutInput{Items: []CartLine{{ProductID: off.ID, Quantity: 1}}, PaymentMethod: "pix"}, product.ErrProductUnavailable},
		{"missing payment", CheckoutInput{Items: []CartLine{{ProductID: racao.ID, Quantity: 1}}}, sale.ErrEmptyPaymentMethod},
		{"unknown coupon", CheckoutInput{Items: []CartLine{{ProductID: racao.ID, Quantity: 1}}, CouponCode: "X", PaymentMethod: "pix"}, coupon.ErrCouponNotFound},
		{"minimum not met", CheckoutInput{Items: []CartLine{{ProductID: racao.ID, Quantity: 1}}, CouponCode: "min100", PaymentMethod: "pix"}, coupon.ErrMinimumNotMet},
		{"no eligible items", CheckoutInput{Items: []CartLine{{ProductID: racao.ID, Quantity: 1}}, CouponCode: "higiene", PaymentMethod: "pix"}, coupon.ErrNoEligibleItems},
		{"insufficient stock", CheckoutInput{Items: []CartLine{{ProductID: racao.ID, Quantity: 11}}, PaymentMethod: "pix"}, product.ErrInsufficientStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Checkout(ctx, tenantID, tt.input)
			require.ErrorIs(t, err, tt.want)
		})
	}

	require.True(t, stockOf(t, s, racao.ID).Equal(dec("10")))
}

func TestCheckoutUpdatesClientLastPurchase(t *testing.T) {
	svc, s := newCheckout(t)
	ctx := context.Background()

	cl, err := client.NewClient(tenantID, "pet_clinic", "Ana", "+5511999990000", "")
	require.NoError(t, err)
	require.NoError(t, s.Repositories().Clients.Create(ctx, cl))
	racao := seedProduct(t, s, "Ração", "alimenticio", "25.00", "10")

	_, err = svc.Checkout(ctx, tenantID, CheckoutInput{
		ClientID:      cl.ID,
		Items:         []CartLine{{ProductID: racao.ID, Quantity: 1}},
		PaymentMethod: "pix",
	})
	require.NoError(t, err)

	got, err := s.Repositories().Clients.FindByID(ctx, tenantID, cl.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastPurchaseAt)
	require.True(t, got.LastPurchaseAt.Equal(saleTime))

	_, err = svc.Checkout(ctx, tenantID, CheckoutInput{
		ClientID:      "ghost",
		Items:         []CartLine{{ProductID: racao.ID, Quantity: 1}},
		PaymentMethod: "pix",
	})
	require.ErrorIs(t, err, client.ErrClientNotFound)
	require.True(t, stockOf(t, s, racao.ID).Equal(dec("9")), "venda com cliente inexistente não baixa estoque")
}

func TestValidateAndPreviewDoNotCountUsage(t *testing.T) {
	svc, s := newCheckout(t)
	ctx := context.Background()

	racao := seedProduct(t, s, "Ração", "alimenticio", "25.00", "10")
	c := seedCoupon(t, s, "DEZ", coupon.CampaignTotalPurchase, coupon.DiscountFixed, "100", "0", nil, 1)

	for i := 0; i < 3; i++ {
		_, err := svc.ValidateCoupon(ctx, tenantID, "dez")
		require.NoError(t, err)
	}
	preview, err := svc.PreviewDiscount(ctx, tenantID, "DEZ", []CartLine{{ProductID: racao.ID, Quantity: 2}})
	require.NoError(t, err)
	require.True(t, preview.Discount.Equal(dec("50")), "desconto fixo limitado ao subtotal")
	require.True(t, preview.Total.IsZero())
	require.Equal(t, 0, usageOf(t, s, c.ID).UsageCount)

	_, err = svc.ValidateCoupon(ctx, tenantID, "  ")
	require.ErrorIs(t, err, coupon.ErrEmptyCode)
}

func TestValidateCouponStates(t *testing.T) {
	svc, s := newCheckout(t)
	ctx := context.Background()

	past := saleTime.Add(-time.Hour)
	future := saleTime.Add(time.Hour)

	expired, err := coupon.NewCoupon(tenantID, "", "EXPIRADO", "x", coupon.CampaignTotalPurchase, coupon.DiscountFixed, dec("1"), decimal.Zero, nil, 0)
	require.NoError(t, err)
	require.NoError(t, expired.SetValidity(nil, &past))
	saveCoupon(t, s, expired)

	early, err := coupon.NewCoupon(tenantID, "", "CEDO", "x", coupon.CampaignTotalPurchase, coupon.DiscountFixed, dec("1"), decimal.Zero, nil, 0)
	require.NoError(t, err)
	require.NoError(t, early.SetValidity(&future, nil))
	saveCoupon(t, s, early)

	inactive, err := coupon.NewCoupon(tenantID, "", "PAUSADO", "x", coupon.CampaignTotalPurchase, coupon.DiscountFixed, dec("1"), decimal.Zero, nil, 0)
	require.NoError(t, err)
	inactive.Deactivate(time.Now())
	saveCoupon(t, s, inactive)

	_, err = svc.ValidateCoupon(ctx, tenantID, "expirado")
	require.ErrorIs(t, err, coupon.ErrExpired)
	_, err = svc.ValidateCoupon(ctx, tenantID, "cedo")
	require.ErrorIs(t, err, coupon.ErrNotYetValid)
	_, err = svc.ValidateCoupon(ctx, tenantID, "pausado")
	require.ErrorIs(t, err, coupon.ErrInactive)
	require.Equal(t, "coupon_inactive", shared.CodeOf(err))
}

func TestConcurrentCheckoutsRespectCouponCap(t *testing.T) {
	svc, s := newCheckout(t)
	ctx := context.Background()

	racao := seedProduct(t, s, "Ração", "alimenticio", "25.00", "100")
	c := seedCoupon(t, s, "TRES", coupon.CampaignTotalPurchase, coupon.DiscountPercentage, "10", "0", nil, 3)

	const buyers = 12
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Checkout(ctx, tenantID, CheckoutInput{
				Items:         []CartLine{{ProductID: racao.ID, Quantity: 1}},
				CouponCode:    "TRES",
				PaymentMethod: "pix",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, coupon.ErrInactive), errors.Is(err, coupon.ErrExhausted):
				rejected++
			default:
				t.Errorf("erro inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 3, ok)
	require.Equal(t, buyers-3, rejected)

	final := usageOf(t, s, c.ID)
	require.Equal(t, 3, final.UsageCount)
	require.False(t, final.Active)
	require.True(t, stockOf(t, s, racao.ID).Equal(dec("97")))
}
