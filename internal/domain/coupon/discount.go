package coupon

import (
	"strings"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/sale"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Catalog associa o ID de cada produto à sua categoria de catálogo
type Catalog map[string]string

// ComputeDiscount calcula o desconto do cupom sobre o carrinho.
// A validade do cupom (ativo, janela, limite) é verificada à parte por CheckRedeemable.
func ComputeDiscount(c *Coupon, cart []sale.CartItem, catalog Catalog) (decimal.Decimal, error) {
	subtotal := sale.Subtotal(cart)
	if subtotal.LessThan(c.MinPurchaseAmount) {
		return decimal.Zero, ErrMinimumNotMet
	}

	base := subtotal
	switch c.CampaignType {
	case CampaignCategoryDiscount, CampaignSeasonalPromotion:
		base = c.eligibleSubtotal(cart, catalog)
		if base.IsZero() {
			if c.CampaignType == CampaignCategoryDiscount {
				return decimal.Zero, ErrNoEligibleItems
			}
			return decimal.Zero, nil
		}
	}

	var discount decimal.Decimal
	switch c.DiscountType {
	case DiscountPercentage:
		discount = base.Mul(c.DiscountValue).Div(hundred).Round(2)
	default:
		discount = decimal.Min(c.DiscountValue, base)
	}

	return decimal.Min(discount, subtotal), nil
}

// eligibleSubtotal soma as linhas cujo produto pertence a uma categoria alvo
func (c *Coupon) eligibleSubtotal(cart []sale.CartItem, catalog Catalog) decimal.Decimal {
	total := decimal.Zero
	for _, it := range cart {
		if c.targets(catalog[it.ProductID]) {
			total = total.Add(it.TotalPrice)
		}
	}
	return total
}

func (c *Coupon) targets(category string) bool {
	if category == "" {
		return false
	}
	for _, t := range c.TargetCategories {
		if strings.EqualFold(t, category) {
			return true
		}
	}
	return false
}
