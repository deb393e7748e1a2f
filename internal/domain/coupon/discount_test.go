package coupon

import (
	"testing"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/sale"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(t require.TestingT, productID string, qty int, price string) sale.CartItem {
	it, err := sale.NewCartItem(productID, productID, qty, dec(price))
	require.NoError(t, err)
	return it
}

var catalog = Catalog{
	"arroz":   "alimenticio",
	"feijao":  "alimenticio",
	"sabao":   "limpeza",
	"shampoo": "higiene",
}

func newCoupon(t *testing.T, campaign CampaignType, discount DiscountType, value, min string, targets ...string) *Coupon {
	t.Helper()
	c, err := NewCoupon("tenant-1", "retail", "promo", "Promoção", campaign, discount, dec(value), dec(min), targets, 0)
	require.NoError(t, err)
	return c
}

func TestComputeDiscountSeasonalScenario(t *testing.T) {
	c, err := NewCoupon("tenant-1", "retail", "verao2025", "Verão", CampaignSeasonalPromotion, DiscountPercentage,
		dec("20"), dec("80"), []string{"alimenticio"}, 0)
	require.NoError(t, err)
	require.Equal(t, "VERAO2025", c.Code)

	cart := []sale.CartItem{
		line(t, "arroz", 2, "15"),  // 30
		line(t, "feijao", 1, "20"), // 20
		line(t, "sabao", 4, "10"),  // 40
	}

	got, err := ComputeDiscount(c, cart, catalog)
	require.NoError(t, err)
	require.True(t, got.Equal(dec("10")), "discount %s", got)
}

func TestComputeDiscount(t *testing.T) {
	cart := []sale.CartItem{line(t, "arroz", 1, "50"), line(t, "sabao", 1, "30")}

	tests := []struct {
		name    string
		coupon  *Coupon
		cart    []sale.CartItem
		want    string
		wantErr error
	}{
		{
			name:   "total purchase percentage",
			coupon: newCoupon(t, CampaignTotalPurchase, DiscountPercentage, "10", "0"),
			cart:   cart,
			want:   "8",
		},
		{
			name:   "total purchase fixed",
			coupon: newCoupon(t, CampaignTotalPurchase, DiscountFixed, "15", "0"),
			cart:   cart,
			want:   "15",
		},
		{
			name:   "fixed larger than subtotal is clamped",
			coupon: newCoupon(t, CampaignTotalPurchase, DiscountFixed, "500", "0"),
			cart:   cart,
			want:   "80",
		},
		{
			name:   "category discount uses matching lines only",
			coupon: newCoupon(t, CampaignCategoryDiscount, DiscountPercentage, "50", "0", "limpeza"),
			cart:   cart,
			want:   "15",
		},
		{
			name:   "category fixed capped at eligible base",
			coupon: newCoupon(t, CampaignCategoryDiscount, DiscountFixed, "40", "0", "limpeza"),
			cart:   cart,
			want:   "30",
		},
		{
			name:   "category match ignores case",
			coupon: newCoupon(t, CampaignCategoryDiscount, DiscountFixed, "5", "0", "LIMPEZA"),
			cart:   cart,
			want:   "5",
		},
		{
			name:    "category discount without eligible items",
			coupon:  newCoupon(t, CampaignCategoryDiscount, DiscountPercentage, "10", "0", "higiene"),
			cart:    cart,
			wantErr: ErrNoEligibleItems,
		},
		{
			name:   "seasonal without eligible items gives zero",
			coupon: newCoupon(t, CampaignSeasonalPromotion, DiscountPercentage, "10", "0", "higiene"),
			cart:   cart,
			want:   "0",
		},
		{
			name:   "reactivation falls back to total purchase",
			coupon: newCoupon(t, CampaignClientReactivation, DiscountPercentage, "25", "0"),
			cart:   cart,
			want:   "20",
		},
		{
			name:   "unknown campaign falls back to total purchase",
			coupon: newCoupon(t, CampaignType("aniversario"), DiscountFixed, "10", "0"),
			cart:   cart,
			want:   "10",
		},
		{
			name:    "minimum not met",
			coupon:  newCoupon(t, CampaignTotalPurchase, DiscountPercentage, "10", "100"),
			cart:    cart,
			wantErr: ErrMinimumNotMet,
		},
		{
			name:   "minimum met exactly",
			coupon: newCoupon(t, CampaignTotalPurchase, DiscountFixed, "1", "80"),
			cart:   cart,
			want:   "1",
		},
		{
			name:   "percentage rounds to cents",
			coupon: newCoupon(t, CampaignTotalPurchase, DiscountPercentage, "15", "0"),
			cart:   []sale.CartItem{line(t, "arroz", 1, "9.99")},
			want:   "1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeDiscount(tt.coupon, tt.cart, catalog)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, shared.ErrBusinessRule)
				return
			}
			require.NoError(t, err)
			require.True(t, got.Equal(dec(tt.want)), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestFixedDiscountNeverExceedsSubtotal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(1, 10_000_00).Draw(t, "subtotal_cents")
		valueCents := rapid.Int64Range(1, 20_000_00).Draw(t, "value_cents")
		qty := rapid.IntRange(1, 5).Draw(t, "quantity")

		c, err := NewCoupon("t", "retail", "fix", "Fixo", CampaignTotalPurchase, DiscountFixed,
			decimal.New(valueCents, -2), decimal.Zero, nil, 0)
		if err != nil {
			t.Fatal(err)
		}
		cart := []sale.CartItem{line(t, "arroz", qty, decimal.New(cents, -2).String())}

		got, err := ComputeDiscount(c, cart, catalog)
		if err != nil {
			t.Fatal(err)
		}
		if got.GreaterThan(sale.Subtotal(cart)) {
			t.Fatalf("discount %s exceeds subtotal %s", got, sale.Subtotal(cart))
		}
	})
}

func TestCategoryVersusTotalPurchaseOnUnrelatedCart(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		qty := rapid.IntRange(1, 10).Draw(t, "quantity")
		cents := rapid.Int64Range(1, 100_000).Draw(t, "price_cents")
		cart := []sale.CartItem{line(t, "sabao", qty, decimal.New(cents, -2).String())}

		category, err := NewCoupon("t", "retail", "cat", "Categoria", CampaignCategoryDiscount, DiscountPercentage,
			dec("10"), decimal.Zero, []string{"higiene"}, 0)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := ComputeDiscount(category, cart, catalog); err != ErrNoEligibleItems {
			t.Fatalf("expected ErrNoEligibleItems, got %v", err)
		}

		total := *category
		total.CampaignType = CampaignTotalPurchase
		if _, err := ComputeDiscount(&total, cart, catalog); err != nil {
			t.Fatalf("total purchase should apply: %v", err)
		}
	})
}
