package coupon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewCouponValidation(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		campaign CampaignType
		discount DiscountType
		value    string
		min      string
		targets  []string
		maxUses  int
		wantErr  error
	}{
		{"empty code", "  ", CampaignTotalPurchase, DiscountFixed, "10", "0", nil, 0, ErrEmptyCode},
		{"zero value", "A", CampaignTotalPurchase, DiscountFixed, "0", "0", nil, 0, ErrInvalidValue},
		{"percentage above 100", "A", CampaignTotalPurchase, DiscountPercentage, "101", "0", nil, 0, ErrPercentageTooHigh},
		{"unknown discount type", "A", CampaignTotalPurchase, DiscountType("bogo"), "10", "0", nil, 0, ErrInvalidDiscount},
		{"negative minimum", "A", CampaignTotalPurchase, DiscountFixed, "10", "-1", nil, 0, ErrInvalidMinPurchase},
		{"negative max uses", "A", CampaignTotalPurchase, DiscountFixed, "10", "0", nil, -1, ErrInvalidMaxUses},
		{"category without targets", "A", CampaignCategoryDiscount, DiscountFixed, "10", "0", []string{" "}, 0, ErrMissingCategories},
		{"valid", "a1", CampaignCategoryDiscount, DiscountFixed, "10", "0", []string{"pet", "Pet"}, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCoupon("t", "pet_clinic", tt.code, "Cupom", tt.campaign, tt.discount, dec(tt.value), dec(tt.min), tt.targets, tt.maxUses)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "A1", c.Code)
			require.Equal(t, []string{"pet"}, c.TargetCategories)
			require.True(t, c.Active)
		})
	}
}

func TestCheckRedeemable(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -10)
	end := now.AddDate(0, 0, 10)

	base := func() *Coupon {
		c, err := NewCoupon("t", "retail", "X", "X", CampaignTotalPurchase, DiscountFixed, decimal.NewFromInt(5), decimal.Zero, nil, 2)
		require.NoError(t, err)
		require.NoError(t, c.SetValidity(&start, &end))
		return c
	}

	require.NoError(t, base().CheckRedeemable(now))

	inactive := base()
	inactive.Deactivate(now)
	require.ErrorIs(t, inactive.CheckRedeemable(now), ErrInactive)

	require.ErrorIs(t, base().CheckRedeemable(start.Add(-time.Minute)), ErrNotYetValid)
	require.ErrorIs(t, base().CheckRedeemable(end.Add(time.Minute)), ErrExpired)

	used := base()
	used.UsageCount = 2
	require.ErrorIs(t, used.CheckRedeemable(now), ErrExhausted)

	c := base()
	require.ErrorIs(t, c.SetValidity(&end, &start), ErrInvalidWindow)
}

func TestRedeemDeactivatesAtCap(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	c, err := NewCoupon("t", "retail", "X", "X", CampaignTotalPurchase, DiscountFixed, decimal.NewFromInt(5), decimal.Zero, nil, 2)
	require.NoError(t, err)

	require.NoError(t, c.Redeem(now))
	require.Equal(t, 1, c.UsageCount)
	require.True(t, c.Active)

	require.NoError(t, c.Redeem(now.Add(time.Hour)))
	require.Equal(t, 2, c.UsageCount)
	require.False(t, c.Active)
	require.Equal(t, now.Add(time.Hour), c.UpdatedAt)

	require.ErrorIs(t, c.Redeem(now), ErrInactive)
	require.Equal(t, 2, c.UsageCount)

	unlimited, err := NewCoupon("t", "retail", "Y", "Y", CampaignTotalPurchase, DiscountFixed, decimal.NewFromInt(5), decimal.Zero, nil, 0)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		require.NoError(t, unlimited.Redeem(now))
	}
	require.True(t, unlimited.Active)

	unlimited.Deactivate(now.Add(2 * time.Hour))
	require.False(t, unlimited.Active)
	require.Equal(t, now.Add(2*time.Hour), unlimited.UpdatedAt)
	unlimited.Activate(now.Add(3 * time.Hour))
	require.True(t, unlimited.Active)
	require.Equal(t, now.Add(3*time.Hour), unlimited.UpdatedAt)
}
