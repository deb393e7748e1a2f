package dto

import (
	"github.com/shopspring/decimal"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/coupon"
)

// CouponRequest representa os dados de cadastro e edição de um cupom
type CouponRequest struct {
	BusinessCategory  string          `json:"business_category"`
	Code              string          `json:"code" binding:"required"`
	Name              string          `json:"name" binding:"required"`
	Description       string          `json:"description"`
	CampaignType      string          `json:"campaign_type"`
	DiscountType      string          `json:"discount_type" binding:"required"`
	DiscountValue     decimal.Decimal `json:"discount_value"`
	MinPurchaseAmount decimal.Decimal `json:"min_purchase_amount"`
	TargetCategories  []string        `json:"target_categories"`
	MaxUses           int             `json:"max_uses"`
	ValidFrom         string          `json:"valid_from"`
	ValidUntil        string          `json:"valid_until"`
	Active            *bool           `json:"active"`
}

// ValidateCouponRequest consulta se um código pode ser usado
type ValidateCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// PreviewDiscountRequest calcula o desconto de um cupom para um carrinho
type PreviewDiscountRequest struct {
	Code  string            `json:"code" binding:"required"`
	Items []CartLineRequest `json:"items"`
}

// CouponResponse acrescenta ao cupom os indicadores calculados
type CouponResponse struct {
	*coupon.Coupon
	Expired   bool `json:"expired"`
	Exhausted bool `json:"exhausted"`
}
