package sale

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func item(t *testing.T, id string, qty int, price string) CartItem {
	t.Helper()
	it, err := NewCartItem(id, "Produto "+id, qty, decimal.RequireFromString(price))
	require.NoError(t, err)
	return it
}

func TestNewCartItem(t *testing.T) {
	it := item(t, "p1", 3, "2.50")
	require.True(t, it.TotalPrice.Equal(decimal.RequireFromString("7.50")))

	_, err := NewCartItem("p1", "x", 0, decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewCartItem("p1", "x", 1, decimal.NewFromInt(-1))
	require.ErrorIs(t, err, ErrInvalidUnitPrice)

	_, err = NewCartItem("", "x", 1, decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrEmptyProduct)
}

func TestNewSaleTotals(t *testing.T) {
	now := time.Now()
	items := []CartItem{item(t, "p1", 2, "10"), item(t, "p2", 1, "5.50")}

	tests := []struct {
		name      string
		manual    string
		coupon    string
		wantTotal string
	}{
		{"no discount", "0", "0", "25.5"},
		{"manual and coupon", "5", "0.50", "20"},
		{"discounts above subtotal clamp to zero", "20", "10", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSale("t", "retail", "", "", items, decimal.RequireFromString(tt.manual), "pix", now)
			require.NoError(t, err)
			s.ApplyCoupon("c1", "VERAO", decimal.RequireFromString(tt.coupon))
			require.True(t, s.Subtotal.Equal(decimal.RequireFromString("25.50")))
			require.True(t, s.Total.Equal(decimal.RequireFromString(tt.wantTotal)), "total %s", s.Total)
			require.Equal(t, 3, s.ItemCount())
		})
	}
}

func TestNewSaleValidation(t *testing.T) {
	_, err := NewSale("t", "retail", "", "", nil, decimal.Zero, "pix", time.Now())
	require.ErrorIs(t, err, ErrEmptyCart)

	items := []CartItem{item(t, "p1", 1, "1")}
	_, err = NewSale("t", "retail", "", "", items, decimal.NewFromInt(-1), "pix", time.Now())
	require.ErrorIs(t, err, ErrInvalidDiscount)

	_, err = NewSale("t", "retail", "", "", items, decimal.Zero, "", time.Now())
	require.ErrorIs(t, err, ErrEmptyPaymentMethod)
}
